// Package app wires configuration, logging, metrics and tracing around the
// powmod front ends and maps every outcome to an exit code.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/big"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/agbru/powmod/internal/cli"
	"github.com/agbru/powmod/internal/config"
	apperrors "github.com/agbru/powmod/internal/errors"
	"github.com/agbru/powmod/internal/logging"
	"github.com/agbru/powmod/internal/metrics"
	"github.com/agbru/powmod/internal/powmod"
	"github.com/agbru/powmod/internal/tui"
	"github.com/agbru/powmod/internal/ui"
)

const tracerName = "github.com/agbru/powmod/internal/app"

// Application represents the powmod application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	In        io.Reader
	Logger    logging.Logger

	recorder  *metrics.Recorder
	logCloser io.Closer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger replaces the default console logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithInput sets the reader the operand prompt consumes. Defaults to os.Stdin.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.In = in }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	programName := "powmod"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app := &Application{Config: cfg, ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}
	if app.Logger == nil {
		if app.Logger, app.logCloser, err = newLogger(cfg, errWriter); err != nil {
			fmt.Fprintf(errWriter, "Error: %v\n", err)
			return nil, err
		}
	}
	if cfg.MetricsFile != "" {
		app.recorder = metrics.NewRecorder()
	}
	return app, nil
}

// newLogger builds the default logger. JSON lines go to -log-file when it
// is set; otherwise console lines go to errWriter, except under the TUI,
// which owns the terminal and gets no logger output at all.
func newLogger(cfg config.AppConfig, errWriter io.Writer) (logging.Logger, io.Closer, error) {
	level := zerolog.WarnLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, apperrors.ConfigError{Message: fmt.Sprintf("cannot open -log-file: %v", err)}
		}
		return logging.NewLogger(f, "powmod", level), f, nil
	case cfg.TUI:
		return logging.NewZerologAdapter(zerolog.Nop()), nil, nil
	default:
		return logging.NewConsoleLogger(errWriter, "powmod", level, cfg.NoColor), nil, nil
	}
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.logCloser != nil {
		defer a.logCloser.Close()
	}
	ui.InitTheme(a.Config.NoColor)

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	var code int
	switch {
	case a.Config.TUI:
		code = a.runTUI(ctx)
	case a.Config.Exact:
		code = a.runExact(ctx, out)
	default:
		code = a.runCalculate(ctx, out)
	}

	if err := a.writeMetrics(); err != nil && code == apperrors.ExitSuccess {
		code = apperrors.ExitErrorGeneric
	}
	return code
}

// outputConfig derives the CLI output options.
func (a *Application) outputConfig() cli.OutputConfig {
	return cli.OutputConfig{Quiet: a.Config.Quiet, Verbose: a.Config.Verbose}
}

// operands returns the configured operands, or prompts for them on out.
// Prompts are suppressed in quiet mode. The prompt gives up when ctx is done.
func (a *Application) operands(ctx context.Context, out io.Writer) (uint64, uint64, error) {
	if a.Config.HasOperands() {
		return a.Config.Base, a.Config.Exponent, nil
	}
	promptOut := out
	if a.Config.Quiet {
		promptOut = io.Discard
	}
	return cli.ReadOperands(ctx, a.In, promptOut)
}

// fail reports err and returns its exit code. Cancellation starts a fresh
// line after the interrupted prompt.
func (a *Application) fail(msg string, err error) int {
	a.Logger.Debug(msg, logging.Err(err))
	if apperrors.IsContextError(err) {
		fmt.Fprintln(a.ErrWriter)
		err = apperrors.WrapError(err, "input canceled")
	}
	cli.DisplayError(a.ErrWriter, err)
	return apperrors.ExitCodeFor(err)
}

// runCalculate handles the prompt and flag front ends.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	base, exponent, err := a.operands(ctx, out)
	if err != nil {
		return a.fail("failed to read operands", err)
	}

	r, details := a.evaluate(ctx, base, exponent)
	cfg := a.outputConfig()
	cli.DisplayResult(out, r, cfg)
	if !r.Undefined {
		cli.DisplayDetails(out, details, cfg)
	}
	return apperrors.ExitSuccess
}

// evaluate computes one power in a traced span and records it.
func (a *Application) evaluate(ctx context.Context, base, exponent uint64) (powmod.Result, cli.Details) {
	mod, _ := a.Config.PowModulus() // validated by ParseConfig
	power, mode := powmod.PowerFunc(powmod.PowerMod), metrics.ModeStandard
	if a.Config.Wide {
		power, mode = powmod.PowerModWide, metrics.ModeWide
	}

	_, span := otel.Tracer(tracerName).Start(ctx, "powmod.Evaluate")
	defer span.End()
	span.SetAttributes(
		attribute.String("powmod.base", strconv.FormatUint(base, 10)),
		attribute.String("powmod.exponent", strconv.FormatUint(exponent, 10)),
		attribute.String("powmod.modulus", mod.String()),
		attribute.String("powmod.mode", mode),
	)

	start := time.Now()
	r := powmod.Evaluate(base, exponent, mod, power)
	elapsed := time.Since(start)

	details := cli.Details{Mode: mode, Steps: len(powmod.Schedule(exponent)), Duration: elapsed}
	if base != 0 {
		details.Digits, _ = powmod.DigitCount(base, exponent)
	}
	span.SetAttributes(
		attribute.Bool("powmod.undefined", r.Undefined),
		attribute.Bool("powmod.fell_back", r.FellBack),
		attribute.Int("powmod.steps", details.Steps),
	)

	switch {
	case r.Undefined:
		a.Logger.Info("0^0 requested, reporting undefined")
	case r.FellBack:
		a.Logger.Info("result exceeds 19 digits, reduced modulo 10^9+7",
			logging.Uint64("base", base), logging.Uint64("exponent", exponent), logging.Uint64("digits", details.Digits))
	}
	a.Logger.Debug("evaluated",
		logging.Uint64("base", base),
		logging.Uint64("exponent", exponent),
		logging.String("modulus", mod.String()),
		logging.String("mode", mode),
		logging.Int("steps", details.Steps),
		logging.Duration("elapsed", elapsed),
	)

	a.observe(metrics.Observation{
		Mode: mode, FellBack: r.FellBack, Undefined: r.Undefined,
		Steps: details.Steps, Duration: elapsed,
	})
	return r, details
}

// runExact prints the full value without any modulus.
func (a *Application) runExact(ctx context.Context, out io.Writer) int {
	base, exponent, err := a.operands(ctx, out)
	if err != nil {
		return a.fail("failed to read operands", err)
	}

	_, span := otel.Tracer(tracerName).Start(ctx, "powmod.Exact")
	defer span.End()
	span.SetAttributes(
		attribute.String("powmod.base", strconv.FormatUint(base, 10)),
		attribute.String("powmod.exponent", strconv.FormatUint(exponent, 10)),
		attribute.String("powmod.backend", powmod.ExactBackend),
	)

	var value *big.Int
	start := time.Now()
	compute := func() { value, err = powmod.Exact(base, exponent, a.Config.MaxExactDigits) }
	if a.Config.Quiet {
		compute()
	} else {
		cli.WithSpinner(a.ErrWriter, fmt.Sprintf("computing %d^%d exactly", base, exponent), compute)
	}
	elapsed := time.Since(start)

	cfg := a.outputConfig()
	if errors.Is(err, apperrors.ErrUndefinedResult) {
		a.observe(metrics.Observation{Mode: metrics.ModeExact, Undefined: true})
		cli.DisplayResult(out, powmod.Result{Base: base, Exponent: exponent, Undefined: true}, cfg)
		return apperrors.ExitSuccess
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return a.fail("exact evaluation refused", err)
	}

	details := cli.Details{
		Mode:     metrics.ModeExact,
		Steps:    len(powmod.Schedule(exponent)),
		Digits:   uint64(len(value.String())),
		Duration: elapsed,
	}
	a.Logger.Debug("evaluated exactly",
		logging.Uint64("base", base),
		logging.Uint64("exponent", exponent),
		logging.String("backend", powmod.ExactBackend),
		logging.Uint64("digits", details.Digits),
		logging.Duration("elapsed", elapsed),
	)
	a.observe(metrics.Observation{Mode: metrics.ModeExact, Steps: details.Steps, Duration: elapsed})

	cli.DisplayExactResult(out, base, exponent, value, cfg)
	cli.DisplayDetails(out, details, cfg)
	return apperrors.ExitSuccess
}

// runTUI launches the interactive form.
func (a *Application) runTUI(ctx context.Context) int {
	mod, _ := a.Config.PowModulus()
	mode := metrics.ModeStandard
	if a.Config.Wide {
		mode = metrics.ModeWide
	}
	eval := func(base, exponent uint64) powmod.Result {
		r, _ := a.evaluate(ctx, base, exponent)
		return r
	}
	return tui.Run(ctx, eval, Version, fmt.Sprintf("%s, modulus %s", mode, mod))
}

func (a *Application) observe(o metrics.Observation) {
	if a.recorder != nil {
		a.recorder.Observe(o)
	}
}

// writeMetrics flushes the recorder to the configured textfile.
func (a *Application) writeMetrics() error {
	if a.recorder == nil {
		return nil
	}
	if err := a.recorder.WriteTextfile(a.Config.MetricsFile); err != nil {
		a.Logger.Error("failed to write metrics", err, logging.String("path", a.Config.MetricsFile))
		return err
	}
	a.Logger.Debug("metrics written", logging.String("path", a.Config.MetricsFile))
	return nil
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
