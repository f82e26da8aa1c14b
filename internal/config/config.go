// Package config parses command-line flags and environment overrides into
// the application configuration.
package config

import (
	"flag"
	"fmt"
	"io"

	apperrors "github.com/agbru/powmod/internal/errors"
	"github.com/agbru/powmod/internal/powmod"
)

// EnvPrefix is prepended to every environment override key.
const EnvPrefix = "POWMOD_"

// AppConfig holds the resolved configuration of a run.
type AppConfig struct {
	// Base and Exponent are the operands, meaningful when HasOperands is true.
	Base     uint64
	Exponent uint64
	// Modulus is the explicit modulus; meaningful when HasModulus is true.
	Modulus uint64
	// Wide selects the 256-bit intermediate arithmetic.
	Wide bool
	// Exact prints the full arbitrary-precision value.
	Exact bool
	// MaxExactDigits bounds the size of exact results.
	MaxExactDigits uint64
	// TUI launches the interactive terminal form.
	TUI bool
	// Quiet prints only the result value.
	Quiet bool
	// Verbose enables debug logging.
	Verbose bool
	// NoColor disables colored output.
	NoColor bool
	// MetricsFile, when set, receives a Prometheus textfile after the run.
	MetricsFile string
	// LogFile, when set, receives JSON log lines instead of stderr.
	LogFile string

	baseSet     bool
	exponentSet bool
	modulusSet  bool
}

// HasOperands reports whether both operands were supplied by flags or the
// environment, in which case no prompt is shown.
func (c AppConfig) HasOperands() bool { return c.baseSet && c.exponentSet }

// HasModulus reports whether an explicit modulus was supplied.
func (c AppConfig) HasModulus() bool { return c.modulusSet }

// WithOperands returns a copy of c with both operands set.
func (c AppConfig) WithOperands(base, exponent uint64) AppConfig {
	c.Base, c.Exponent = base, exponent
	c.baseSet, c.exponentSet = true, true
	return c
}

// WithModulus returns a copy of c with an explicit modulus.
func (c AppConfig) WithModulus(m uint64) AppConfig {
	c.Modulus = m
	c.modulusSet = true
	return c
}

// PowModulus converts the configured modulus to a powmod.Modulus.
func (c AppConfig) PowModulus() (powmod.Modulus, error) {
	if !c.modulusSet {
		return powmod.Modulus{}, nil
	}
	m, err := powmod.NewModulus(c.Modulus)
	if err != nil {
		return powmod.Modulus{}, apperrors.ConfigError{Message: fmt.Sprintf("invalid -mod %d: %v", c.Modulus, err)}
	}
	return m, nil
}

// Validate checks flag combinations.
func (c AppConfig) Validate() error {
	if _, err := c.PowModulus(); err != nil {
		return err
	}
	if c.Exact && c.modulusSet {
		return apperrors.NewConfigError("-exact cannot be combined with -mod")
	}
	if c.Exact && c.Wide {
		return apperrors.NewConfigError("-exact cannot be combined with -wide")
	}
	if c.Exact && c.TUI {
		return apperrors.NewConfigError("-exact cannot be combined with -tui")
	}
	if c.MaxExactDigits == 0 {
		return apperrors.NewConfigError("-max-exact-digits must be positive")
	}
	return nil
}

// ParseConfig parses args (without the program name) into an AppConfig.
// Priority is: command-line flags, then POWMOD_* environment variables, then
// defaults. Invalid operands are returned as ValidationError, other flag
// syntax errors and -h as produced by the flag package, and invalid
// combinations as ConfigError.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	cfg := AppConfig{MaxExactDigits: powmod.DefaultExactDigitLimit}
	var operandErr error
	fs.Var(&operandFlag{field: "base", dst: &cfg.Base, failed: &operandErr}, "base", "Base B; with -exp, skips the interactive prompt.")
	fs.Var(&operandFlag{field: "exponent", dst: &cfg.Exponent, failed: &operandErr}, "exp", "Exponent E; with -base, skips the interactive prompt.")
	fs.Uint64Var(&cfg.Modulus, "mod", 0, "Explicit modulus M (> 0). Unset by default.")
	fs.BoolVar(&cfg.Wide, "wide", false, "Use 256-bit intermediates so large moduli never overflow.")
	fs.BoolVar(&cfg.Exact, "exact", false, "Print the full value instead of reducing by 10^9+7.")
	fs.Uint64Var(&cfg.MaxExactDigits, "max-exact-digits", powmod.DefaultExactDigitLimit, "Largest result accepted by -exact, in decimal digits.")
	fs.BoolVar(&cfg.TUI, "tui", false, "Launch the interactive terminal form.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print only the result value.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for -quiet.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging on stderr.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for -verbose.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output (also honours NO_COLOR).")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write Prometheus metrics in textfile format to this path.")
	fs.StringVar(&cfg.LogFile, "log-file", "", "Append JSON logs to this path instead of stderr.")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags]\n\n", programName)
		fmt.Fprintf(errWriter, "Computes B^E by exponentiation by squaring. Without -base and -exp the\n")
		fmt.Fprintf(errWriter, "operands are read interactively.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if operandErr != nil {
			return AppConfig{}, operandErr
		}
		return AppConfig{}, err
	}

	cfg.baseSet = isFlagSet(fs, "base")
	cfg.exponentSet = isFlagSet(fs, "exp")
	cfg.modulusSet = isFlagSet(fs, "mod")
	if err := applyEnvOverrides(&cfg, fs); err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return AppConfig{}, err
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return AppConfig{}, err
	}
	return cfg, nil
}
