// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayResult], [DisplayExactResult], [DisplayDetails].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatResult], [FormatExactResult].

package cli

import (
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/agbru/powmod/internal/format"
	"github.com/agbru/powmod/internal/powmod"
	"github.com/agbru/powmod/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// Quiet prints the bare value, for scripting.
	Quiet bool
	// Verbose adds a details line after the result.
	Verbose bool
}

// FormatResult formats r as "<base>^<exponent> = <value>", followed by
// " (<annotation>)" when the value was reduced.
func FormatResult(r powmod.Result) string {
	line := fmt.Sprintf("%d^%d = %s", r.Base, r.Exponent, r.ValueString())
	if note := r.Annotation(); note != "" {
		line += " (" + note + ")"
	}
	return line
}

// FormatExactResult formats an exact value as "<base>^<exponent> = <value>".
func FormatExactResult(base, exponent uint64, value *big.Int) string {
	return fmt.Sprintf("%d^%d = %s", base, exponent, value.String())
}

// DisplayResult writes the result line, preceded by a blank line, or the
// bare value in quiet mode.
func DisplayResult(out io.Writer, r powmod.Result, cfg OutputConfig) {
	if cfg.Quiet {
		fmt.Fprintln(out, r.ValueString())
		return
	}
	fmt.Fprintf(out, "\n%s\n", FormatResult(r))
}

// DisplayExactResult is DisplayResult for exact mode.
func DisplayExactResult(out io.Writer, base, exponent uint64, value *big.Int, cfg OutputConfig) {
	if cfg.Quiet {
		fmt.Fprintln(out, value.String())
		return
	}
	fmt.Fprintf(out, "\n%s\n", FormatExactResult(base, exponent, value))
}

// Details describes how a value was computed, for verbose output.
type Details struct {
	// Mode is "standard", "wide" or "exact".
	Mode string
	// Steps is the length of the square-and-multiply schedule.
	Steps int
	// Digits is the estimated digit count of the unreduced power; 0 if unknown.
	Digits uint64
	// Duration is the time spent computing.
	Duration time.Duration
}

// DisplayDetails writes a dimmed details line. Nothing is written in quiet
// mode or when verbose output is off.
func DisplayDetails(out io.Writer, d Details, cfg OutputConfig) {
	if cfg.Quiet || !cfg.Verbose {
		return
	}
	digits := "n/a"
	if d.Digits > 0 {
		digits = format.FormatGrouped(d.Digits)
	}
	fmt.Fprintf(out, "%smode=%s steps=%d digits=%s duration=%s%s\n",
		ui.ColorDim(), d.Mode, d.Steps, digits, format.FormatExecutionDuration(d.Duration), ui.ColorReset())
}

// DisplayError writes err in the error color.
func DisplayError(out io.Writer, err error) {
	fmt.Fprintf(out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
}
