package count

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorKind classifies why a directory could not be counted.
type ErrorKind int

const (
	ErrNone ErrorKind = iota
	ErrPermissionDenied
	ErrNotFound
	ErrIO
	ErrInvalidRoot
)

func (k ErrorKind) String() string {
	switch k {
	case ErrNone:
		return "none"
	case ErrPermissionDenied:
		return "permission denied"
	case ErrNotFound:
		return "not found"
	case ErrIO:
		return "i/o error"
	case ErrInvalidRoot:
		return "invalid root"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Classify maps a filesystem error to an ErrorKind. A nil error is ErrNone.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrNone
	case errors.Is(err, fs.ErrPermission):
		return ErrPermissionDenied
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	default:
		return ErrIO
	}
}

// RootError reports a start path that cannot be explored.
type RootError struct {
	Path string
	Err  error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("%s %q: %v", ErrInvalidRoot, e.Path, e.Err)
}

func (e *RootError) Unwrap() error { return e.Err }

var errNotDirectory = errors.New("not a directory")
