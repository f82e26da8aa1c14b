// Package cli provides the line-oriented front end: the operand prompt,
// result formatting and the progress spinner of exact mode.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/agbru/powmod/internal/config"
	apperrors "github.com/agbru/powmod/internal/errors"
)

const (
	// BasePrompt is written before the base is read.
	BasePrompt = "Enter the base : "
	// ExponentPrompt is written before the exponent is read.
	ExponentPrompt = "Enter the exponent : "
)

// Session reads operands from an input stream, writing prompts to out.
// Input is split on whitespace, so both operands may share one line.
type Session struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewSession creates a prompt session over in and out.
func NewSession(in io.Reader, out io.Writer) *Session {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)
	return &Session{scanner: scanner, out: out}
}

// ReadOperands prompts for the base and then the exponent.
//
// Returns:
//   - uint64: The base.
//   - uint64: The exponent.
//   - error: A ValidationError naming the offending field, or a read error.
func (s *Session) ReadOperands() (base, exponent uint64, err error) {
	if base, err = s.read("base", BasePrompt); err != nil {
		return 0, 0, err
	}
	if exponent, err = s.read("exponent", ExponentPrompt); err != nil {
		return 0, 0, err
	}
	return base, exponent, nil
}

func (s *Session) read(field, prompt string) (uint64, error) {
	fmt.Fprint(s.out, prompt)
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return 0, apperrors.WrapError(err, "failed to read %s", field)
		}
		return 0, apperrors.ValidationError{
			Field:   field,
			Message: "no value provided",
			Cause:   io.ErrUnexpectedEOF,
		}
	}
	return config.ParseOperand(field, s.scanner.Text())
}

// ReadOperandsContext is ReadOperands abandoned when ctx is done, in which
// case ctx.Err() is returned. A read already blocked on the input is left to
// finish in the background; the session must not be reused after that.
func (s *Session) ReadOperandsContext(ctx context.Context) (base, exponent uint64, err error) {
	type operands struct {
		base, exponent uint64
		err            error
	}
	done := make(chan operands, 1)
	go func() {
		b, e, err := s.ReadOperands()
		done <- operands{b, e, err}
	}()

	select {
	case r := <-done:
		return r.base, r.exponent, r.err
	case <-ctx.Done():
		return 0, 0, ctx.Err()
	}
}

// ReadOperands runs a one-shot Session over in and out until ctx is done.
func ReadOperands(ctx context.Context, in io.Reader, out io.Writer) (base, exponent uint64, err error) {
	return NewSession(in, out).ReadOperandsContext(ctx)
}
