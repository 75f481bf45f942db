package editor

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds returned by Engine. Match them with errors.Is.
var (
	ErrLoadFailed    = errors.New("load failed")
	ErrSaveFailed    = errors.New("save failed")
	ErrInvalidRegion = errors.New("invalid region")
	ErrInvalidScale  = errors.New("invalid scale")
	ErrInvalidFilter = errors.New("invalid filter")
	ErrNoImage       = errors.New("no image loaded")
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
	// ErrProcessingFailed reports a pixel kernel failure unrelated to the arguments.
	ErrProcessingFailed = errors.New("processing failed")
)

// OpError describes a failed engine operation.
// Both the kind and the underlying cause are reachable through errors.Is and errors.As.
type OpError struct {
	// Op is the engine operation, e.g. "load" or "crop".
	Op string
	// Path is the file involved, if any.
	Path string
	// Kind is one of the Err* sentinels.
	Kind error
	// Err is the underlying cause, if any.
	Err error
}

func (e *OpError) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	msg += ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause.
func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// opError builds an *OpError, formatting an optional detail message as the cause.
func opError(op string, kind error, cause error, detail string, args ...any) error {
	if detail != "" {
		if cause != nil {
			cause = errors.Wrapf(cause, detail, args...)
		} else {
			cause = fmt.Errorf(detail, args...)
		}
	}
	return &OpError{Op: op, Kind: kind, Err: cause}
}

// kindOf returns kind when err wraps target, ErrProcessingFailed otherwise.
func kindOf(err, target, kind error) error {
	if errors.Is(err, target) {
		return kind
	}
	return ErrProcessingFailed
}
