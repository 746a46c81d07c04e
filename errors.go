package dirtar

import "errors"

// ErrorKind identifies which stage of producing an archive response failed.
type ErrorKind int

const (
	// KindDirectoryIO covers listing the root directory and finalizing the archive.
	KindDirectoryIO ErrorKind = iota + 1
	// KindResponseConstruction covers assembling the HTTP response around an archive.
	KindResponseConstruction
)

func (k ErrorKind) String() string {
	switch k {
	case KindDirectoryIO:
		return "directory_io"
	case KindResponseConstruction:
		return "response_construction"
	default:
		return "unknown"
	}
}

// Error is a failure that aborts an archive request.
// Per-entry problems never produce an Error; they are logged and skipped.
type Error struct {
	Kind ErrorKind
	Err  error
}

// DirectoryIOError wraps err as a KindDirectoryIO failure.
func DirectoryIOError(err error) error {
	return &Error{Kind: KindDirectoryIO, Err: err}
}

// ResponseConstructionError wraps err as a KindResponseConstruction failure.
func ResponseConstructionError(err error) error {
	return &Error{Kind: KindResponseConstruction, Err: err}
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindDirectoryIO:
		return "tar error: " + e.Err.Error()
	case KindResponseConstruction:
		return "response error: " + e.Err.Error()
	default:
		return e.Err.Error()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
