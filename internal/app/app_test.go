package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/agbru/powmod/internal/cli"
	apperrors "github.com/agbru/powmod/internal/errors"
	"github.com/agbru/powmod/internal/logging/mocks"
)

// quietLogger returns a mock that accepts any Info and Debug call.
func quietLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	logger := mocks.NewMockLogger(gomock.NewController(t))
	logger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	return logger
}

func runApp(t *testing.T, args []string, stdin string, opts ...AppOption) (code int, stdout, stderr string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	opts = append([]AppOption{WithInput(strings.NewReader(stdin))}, opts...)
	application, err := New(append([]string{"powmod"}, args...), &errBuf, opts...)
	if err != nil {
		t.Fatalf("New(%v) error: %v", args, err)
	}
	code = application.Run(context.Background(), &out)
	return code, out.String(), errBuf.String()
}

func TestRun_Outputs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		stdin   string
		wantOut string
	}{
		{
			name:    "flags with fallback",
			args:    []string{"-base", "2", "-exp", "100"},
			wantOut: "\n2^100 = 976371285 (modulo 10^9+7)\n",
		},
		{
			name:    "prompted operands",
			stdin:   "2\n10\n",
			wantOut: cli.BasePrompt + cli.ExponentPrompt + "\n2^10 = 1024\n",
		},
		{
			name:    "prompted operands on one line",
			stdin:   "3 40",
			wantOut: cli.BasePrompt + cli.ExponentPrompt + "\n3^40 = 953271190 (modulo 10^9+7)\n",
		},
		{
			name:    "undefined",
			args:    []string{"-base", "0", "-exp", "0"},
			wantOut: "\n0^0 = undefined\n",
		},
		{
			name:    "explicit modulus",
			args:    []string{"-base", "3", "-exp", "200", "-mod", "13"},
			wantOut: "\n3^200 = 9 (modulo 13)\n",
		},
		{
			name:    "wide mode",
			args:    []string{"-base", "18446744073709551615", "-exp", "3", "-wide"},
			wantOut: "\n18446744073709551615^3 = 722586148 (modulo 10^9+7)\n",
		},
		{
			name:    "quiet",
			args:    []string{"-q", "-base", "3", "-exp", "5"},
			wantOut: "243\n",
		},
		{
			name:    "quiet prompt hides prompts",
			args:    []string{"-quiet"},
			stdin:   "2 64",
			wantOut: "582344008\n",
		},
		{
			name:    "exact",
			args:    []string{"-exact", "-base", "2", "-exp", "100"},
			wantOut: "\n2^100 = 1267650600228229401496703205376\n",
		},
		{
			name:    "exact undefined",
			args:    []string{"-exact", "-q", "-base", "0", "-exp", "0"},
			wantOut: "undefined\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, stderr := runApp(t, tt.args, tt.stdin, WithLogger(quietLogger(t)))
			if code != apperrors.ExitSuccess {
				t.Fatalf("exit code = %d, stderr: %s", code, stderr)
			}
			if out != tt.wantOut {
				t.Errorf("stdout = %q, want %q", out, tt.wantOut)
			}
		})
	}
}

func TestRun_InputErrors(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		stdin     string
		wantField string
	}{
		{"negative exponent", nil, "2 -3", "exponent"},
		{"malformed base", nil, "abc 3", "base"},
		{"missing exponent", nil, "2", "exponent"},
		{"exact over the digit limit", []string{"-exact", "-max-exact-digits", "10", "-base", "2", "-exp", "100"}, "", "exponent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runApp(t, tt.args, tt.stdin, WithLogger(quietLogger(t)))
			if code != apperrors.ExitErrorInput {
				t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorInput)
			}
			if !strings.Contains(stderr, tt.wantField) {
				t.Errorf("stderr should name %q, got: %s", tt.wantField, stderr)
			}
		})
	}
}

func TestRun_LogsFallback(t *testing.T) {
	logger := mocks.NewMockLogger(gomock.NewController(t))
	logger.EXPECT().Info("result exceeds 19 digits, reduced modulo 10^9+7", gomock.Any()).Times(1)
	logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

	if code, _, _ := runApp(t, []string{"-base", "7", "-exp", "1000"}, "", WithLogger(logger)); code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
}

func TestRun_LogsUndefined(t *testing.T) {
	logger := mocks.NewMockLogger(gomock.NewController(t))
	logger.EXPECT().Info("0^0 requested, reporting undefined").Times(1)
	logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

	runApp(t, []string{"-base", "0", "-exp", "0"}, "", WithLogger(logger))
}

func TestRun_Verbose(t *testing.T) {
	code, out, _ := runApp(t, []string{"-v", "-no-color", "-base", "2", "-exp", "10"}, "", WithLogger(quietLogger(t)))
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.HasPrefix(out, "\n2^10 = 1024\nmode=standard steps=5 digits=4 duration=") {
		t.Errorf("verbose output = %q", out)
	}
}

func TestRun_DefaultLoggerVerbose(t *testing.T) {
	code, _, stderr := runApp(t, []string{"-v", "-no-color", "-base", "2", "-exp", "100"}, "")
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stderr, "evaluated") || !strings.Contains(stderr, "reduced modulo 10^9+7") {
		t.Errorf("debug log missing from stderr: %s", stderr)
	}
}

func TestRun_DefaultLoggerIsQuiet(t *testing.T) {
	_, _, stderr := runApp(t, []string{"-base", "2", "-exp", "100"}, "")
	if stderr != "" {
		t.Errorf("default level should hide info and debug, got: %s", stderr)
	}
}

func TestRun_MetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "powmod.prom")
	code, _, _ := runApp(t, []string{"-metrics-file", path, "-base", "2", "-exp", "100"}, "", WithLogger(quietLogger(t)))
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	for _, want := range []string{`powmod_evaluations_total{mode="standard"} 1`, "powmod_fallback_total 1"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("metrics should contain %q, got:\n%s", want, data)
		}
	}
}

func TestRun_MetricsFileError(t *testing.T) {
	logger := quietLogger(t)
	logger.EXPECT().Error("failed to write metrics", gomock.Any(), gomock.Any()).Times(1)

	path := filepath.Join(t.TempDir(), "missing", "powmod.prom")
	code, out, _ := runApp(t, []string{"-metrics-file", path, "-base", "2", "-exp", "10"}, "", WithLogger(logger))
	if code != apperrors.ExitErrorGeneric {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorGeneric)
	}
	if !strings.Contains(out, "2^10 = 1024") {
		t.Errorf("the result should still be printed, got %q", out)
	}
}

func TestRun_PromptCanceled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	var out, errBuf bytes.Buffer
	application, err := New([]string{"powmod"}, &errBuf, WithInput(pr), WithLogger(quietLogger(t)))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan int, 1)
	go func() { done <- application.Run(ctx, &out) }()
	cancel()

	select {
	case code := <-done:
		if code != apperrors.ExitErrorCanceled {
			t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorCanceled)
		}
		if !strings.Contains(errBuf.String(), "input canceled") {
			t.Errorf("stderr = %q", errBuf.String())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run still blocked on the prompt after cancel")
	}
}

func TestNew_TUIDefaultLoggerIsSilent(t *testing.T) {
	var errBuf bytes.Buffer
	application, err := New([]string{"powmod", "-tui", "-v"}, &errBuf)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	application.Logger.Debug("evaluated")
	application.Logger.Error("failed to write metrics", errors.New("boom"))
	if errBuf.Len() != 0 {
		t.Errorf("the form owns the terminal, nothing should reach stderr, got: %s", errBuf.String())
	}
}

func TestRun_LogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "powmod.log")
	code, _, stderr := runApp(t, []string{"-log-file", path, "-v", "-base", "2", "-exp", "100"}, "")
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if stderr != "" {
		t.Errorf("logs should go to the file, stderr: %s", stderr)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	for _, want := range []string{`"message":"evaluated"`, `"level":"debug"`, `"component":"powmod"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log file should contain %q, got:\n%s", want, data)
		}
	}
}

func TestNew_LogFileError(t *testing.T) {
	var errBuf bytes.Buffer
	path := filepath.Join(t.TempDir(), "missing", "powmod.log")
	_, err := New([]string{"powmod", "-log-file", path}, &errBuf)
	if got := apperrors.ExitCodeFor(err); got != apperrors.ExitErrorConfig {
		t.Errorf("ExitCodeFor = %d, want %d (err: %v)", got, apperrors.ExitErrorConfig, err)
	}
	if !strings.Contains(errBuf.String(), "log-file") {
		t.Errorf("stderr = %q", errBuf.String())
	}
}

func TestNew_ConfigErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{"zero modulus", []string{"-mod", "0"}, apperrors.ExitErrorConfig},
		{"exact with modulus", []string{"-exact", "-mod", "5"}, apperrors.ExitErrorConfig},
		{"negative exponent flag", []string{"-exp", "-1"}, apperrors.ExitErrorInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errBuf bytes.Buffer
			_, err := New(append([]string{"powmod"}, tt.args...), &errBuf)
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := apperrors.ExitCodeFor(err); got != tt.wantCode {
				t.Errorf("ExitCodeFor = %d, want %d (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestIsHelpError(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := New([]string{"powmod", "-h"}, &errBuf)
	if !IsHelpError(err) {
		t.Errorf("IsHelpError(%v) = false", err)
	}
	if !strings.Contains(errBuf.String(), "Usage: powmod") {
		t.Errorf("usage not printed: %s", errBuf.String())
	}
	if IsHelpError(errors.New("other")) {
		t.Error("IsHelpError should reject other errors")
	}
}

func TestVersion(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"--version"}, true},
		{[]string{"-base", "2", "-version"}, true},
		{[]string{"-V"}, true},
		{[]string{"-base", "2"}, false},
		{[]string{"--", "--version"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}

	var out bytes.Buffer
	PrintVersion(&out)
	if !strings.HasPrefix(out.String(), "powmod "+Version+"\n") {
		t.Errorf("PrintVersion = %q", out.String())
	}
}
