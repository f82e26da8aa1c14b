package cli

import (
	"io"
	"testing"
)

type fakeSpinner struct {
	started, stopped bool
	suffix           string
}

func (f *fakeSpinner) Start()                     { f.started = true }
func (f *fakeSpinner) Stop()                      { f.stopped = true }
func (f *fakeSpinner) UpdateSuffix(suffix string) { f.suffix = suffix }

func TestWithSpinner(t *testing.T) {
	fake := &fakeSpinner{}
	orig := newSpinner
	newSpinner = func(io.Writer) Spinner { return fake }
	t.Cleanup(func() { newSpinner = orig })

	ran := false
	WithSpinner(io.Discard, "computing 2^100", func() {
		if !fake.started || fake.stopped {
			t.Error("spinner should be running while fn executes")
		}
		ran = true
	})

	if !ran {
		t.Fatal("fn was not called")
	}
	if !fake.stopped {
		t.Error("spinner should be stopped after fn returns")
	}
	if fake.suffix != " computing 2^100" {
		t.Errorf("suffix = %q", fake.suffix)
	}
}

func TestNewSpinner_Real(t *testing.T) {
	t.Parallel()
	if _, ok := newSpinner(io.Discard).(*realSpinner); !ok {
		t.Error("default newSpinner should wrap briandowns/spinner")
	}
}
