package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder_Observe(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	r.readMemory = func() MemorySnapshot { return MemorySnapshot{HeapAlloc: 4096, NumGC: 3} }

	r.Observe(Observation{Mode: ModeStandard, FellBack: true, Steps: 13, Duration: time.Microsecond})
	r.Observe(Observation{Mode: ModeStandard, Steps: 5})
	r.Observe(Observation{Mode: ModeWide, Steps: 7})
	r.Observe(Observation{Mode: ModeStandard, Undefined: true})

	if got := testutil.ToFloat64(r.evaluations.WithLabelValues(ModeStandard)); got != 3 {
		t.Errorf("standard evaluations = %v, want 3", got)
	}
	if got := testutil.ToFloat64(r.evaluations.WithLabelValues(ModeWide)); got != 1 {
		t.Errorf("wide evaluations = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.fallbacks); got != 1 {
		t.Errorf("fallbacks = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.undefined); got != 1 {
		t.Errorf("undefined = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.steps); got != 7 {
		t.Errorf("schedule steps = %v, want 7 from the last computed value", got)
	}
	if got := testutil.ToFloat64(r.heapAlloc); got != 4096 {
		t.Errorf("heap alloc = %v, want 4096", got)
	}
	if got := testutil.ToFloat64(r.gcCycles); got != 3 {
		t.Errorf("gc cycles = %v, want 3", got)
	}
	if got := testutil.CollectAndCount(r.duration); got != 1 {
		t.Errorf("duration collectors = %d, want 1", got)
	}
}

func TestRecorder_IndependentRegistries(t *testing.T) {
	t.Parallel()

	a, b := NewRecorder(), NewRecorder()
	a.Observe(Observation{Mode: ModeExact, Steps: 1})
	if got := testutil.ToFloat64(b.evaluations.WithLabelValues(ModeExact)); got != 0 {
		t.Errorf("second recorder saw %v evaluations", got)
	}
}

func TestRecorder_WriteTextfile(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	r.Observe(Observation{Mode: ModeStandard, FellBack: true, Steps: 13, Duration: 2 * time.Microsecond})

	path := filepath.Join(t.TempDir(), "powmod.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	body := string(data)
	for _, want := range []string{
		`powmod_evaluations_total{mode="standard"} 1`,
		"powmod_fallback_total 1",
		"powmod_undefined_total 0",
		"powmod_schedule_steps 13",
		"powmod_evaluation_duration_seconds_count 1",
		"powmod_heap_alloc_bytes",
		"powmod_gc_cycles",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("textfile should contain %q, got:\n%s", want, body)
		}
	}
}

func TestRecorder_WriteTextfile_BadPath(t *testing.T) {
	t.Parallel()
	r := NewRecorder()
	if err := r.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "m.prom")); err == nil {
		t.Error("writing into a missing directory should fail")
	}
}

func TestReadMemory(t *testing.T) {
	t.Parallel()
	if readMemory().HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
}
