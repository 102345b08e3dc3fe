package xenon

import (
	"encoding/xml"
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors returned by the name and value accessors when the
// current cursor position has no such property.
var (
	ErrNoName  = errors.New("failed to get element name")
	ErrNoValue = errors.New("failed to get a value")
)

// ErrParseError is returned by Read and the attribute navigation
// calls when the engine reports a genuine well-formedness problem in
// the document. LineNumber is 1-based.
type ErrParseError struct {
	Err        error
	LineNumber int
}

func (e ErrParseError) Error() string {
	return fmt.Sprintf("%s at line %d", e.Err, e.LineNumber)
}

func (e ErrParseError) Unwrap() error {
	return e.Err
}

// ErrWriteError is returned by Writer operations when the engine or
// the destination reports a failure. Unlike parse errors it carries
// no position: the writer has no meaningful source line.
type ErrWriteError struct {
	Err error
}

func (e ErrWriteError) Error() string {
	return e.Err.Error()
}

func (e ErrWriteError) Unwrap() error {
	return e.Err
}

// asParseError decides whether err belongs to the engine's own
// parse-error family and translates it when it does. Both engines
// bottom out in encoding/xml, whose well-formedness failures are
// *xml.SyntaxError values carrying a line; any other error in the
// chain (stream I/O, OS) belongs to an unrelated subsystem and must
// not be reported as a document error. The line check is the
// validity predicate: a syntax error without a position is not
// trusted as one.
func asParseError(err error) (ErrParseError, bool) {
	var syn *xml.SyntaxError
	if !errors.As(err, &syn) {
		return ErrParseError{}, false
	}
	if syn.Line < 1 {
		return ErrParseError{}, false
	}
	return ErrParseError{Err: errors.New(syn.Msg), LineNumber: syn.Line}, true
}

// wrapWrite attaches the operation context to an engine failure and
// lifts it into the public write-error type. Returns nil for a nil
// err so call sites can return it unconditionally.
func wrapWrite(op string, err error) error {
	if err == nil {
		return nil
	}
	return ErrWriteError{Err: errors.Wrap(err, op)}
}
