// Package metrics records evaluation counters on a private Prometheus
// registry and writes them in the node-exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric name.
const Namespace = "powmod"

// Evaluation modes used as the "mode" label.
const (
	ModeStandard = "standard"
	ModeWide     = "wide"
	ModeExact    = "exact"
)

// Observation is one finished evaluation.
type Observation struct {
	Mode      string
	FellBack  bool
	Undefined bool
	Steps     int
	Duration  time.Duration
}

// Recorder owns the metrics of a run.
type Recorder struct {
	registry    *prometheus.Registry
	evaluations *prometheus.CounterVec
	fallbacks   prometheus.Counter
	undefined   prometheus.Counter
	duration    prometheus.Histogram
	steps       prometheus.Gauge
	heapAlloc   prometheus.Gauge
	gcCycles    prometheus.Gauge
	readMemory  func() MemorySnapshot
}

// NewRecorder creates a Recorder with its own registry, so repeated
// construction in tests never collides with the default registerer.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		evaluations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "evaluations_total",
				Help:      "Number of evaluated powers, by arithmetic mode",
			},
			[]string{"mode"},
		),
		fallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "fallback_total",
			Help:      "Number of results reduced by the 10^9+7 fallback modulus",
		}),
		undefined: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "undefined_total",
			Help:      "Number of 0^0 requests reported as undefined",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "evaluation_duration_seconds",
			Help:      "Time spent computing a single power",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 10, 9),
		}),
		steps: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "schedule_steps",
			Help:      "Square and multiply steps of the last evaluation",
		}),
		heapAlloc: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "heap_alloc_bytes",
			Help:      "Heap in use after the last evaluation",
		}),
		gcCycles: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "gc_cycles",
			Help:      "Completed GC cycles at the last evaluation",
		}),
		readMemory: readMemory,
	}
}

// Observe records one evaluation.
func (r *Recorder) Observe(o Observation) {
	r.evaluations.WithLabelValues(o.Mode).Inc()
	if o.Undefined {
		r.undefined.Inc()
		return
	}
	if o.FellBack {
		r.fallbacks.Inc()
	}
	r.duration.Observe(o.Duration.Seconds())
	r.steps.Set(float64(o.Steps))
	mem := r.readMemory()
	r.heapAlloc.Set(float64(mem.HeapAlloc))
	r.gcCycles.Set(float64(mem.NumGC))
}

// WriteTextfile writes every metric to path in the text exposition format.
// The file is written to a temporary name and renamed into place.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
