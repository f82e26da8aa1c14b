// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/agbru/powmod/internal/errors"
)

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the POWMOD_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string) error
}

// envOverrides is the declarative table of all environment variable overrides.
// Operands are validated like their flags; other unparsable values are ignored.
var envOverrides = []envOverride{
	{"BASE", []string{"base"}, func(c *AppConfig, v string) error {
		parsed, err := ParseOperand("base", v)
		if err != nil {
			return err
		}
		c.Base, c.baseSet = parsed, true
		return nil
	}},
	{"EXP", []string{"exp"}, func(c *AppConfig, v string) error {
		parsed, err := ParseOperand("exponent", v)
		if err != nil {
			return err
		}
		c.Exponent, c.exponentSet = parsed, true
		return nil
	}},
	{"MOD", []string{"mod"}, func(c *AppConfig, v string) error {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Modulus, c.modulusSet = parsed, true
		}
		return nil
	}},
	{"MAX_EXACT_DIGITS", []string{"max-exact-digits"}, func(c *AppConfig, v string) error {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.MaxExactDigits = parsed
		}
		return nil
	}},

	{"METRICS_FILE", []string{"metrics-file"}, func(c *AppConfig, v string) error {
		c.MetricsFile = v
		return nil
	}},
	{"LOG_FILE", []string{"log-file"}, func(c *AppConfig, v string) error {
		c.LogFile = v
		return nil
	}},

	{"WIDE", []string{"wide"}, func(c *AppConfig, v string) error {
		c.Wide = parseBoolEnv(v, c.Wide)
		return nil
	}},
	{"EXACT", []string{"exact"}, func(c *AppConfig, v string) error {
		c.Exact = parseBoolEnv(v, c.Exact)
		return nil
	}},
	{"TUI", []string{"tui"}, func(c *AppConfig, v string) error {
		c.TUI = parseBoolEnv(v, c.TUI)
		return nil
	}},
	{"QUIET", []string{"quiet", "q"}, func(c *AppConfig, v string) error {
		c.Quiet = parseBoolEnv(v, c.Quiet)
		return nil
	}},
	{"VERBOSE", []string{"verbose", "v"}, func(c *AppConfig, v string) error {
		c.Verbose = parseBoolEnv(v, c.Verbose)
		return nil
	}},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) error {
		c.NoColor = parseBoolEnv(v, c.NoColor)
		return nil
	}},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line. It stops at
// the first invalid operand.
//
// Supported environment variables (all prefixed with POWMOD_):
//   - BASE, EXP, MOD, MAX_EXACT_DIGITS, METRICS_FILE, LOG_FILE,
//     WIDE, EXACT, TUI, QUIET, VERBOSE, NO_COLOR
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) error {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		val := os.Getenv(EnvPrefix + o.envKey)
		if val == "" {
			continue
		}
		if err := o.apply(config, val); err != nil {
			return apperrors.WrapError(err, "invalid %s%s", EnvPrefix, o.envKey)
		}
	}
	return nil
}
