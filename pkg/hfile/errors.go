package hfile

import (
	"errors"
	"fmt"
)

// Kind classifies a trailer read failure. New kinds may be appended.
type Kind int

const (
	KindStorage Kind = iota
	KindMissingFile
	KindIO
	KindInvalidTrailer
	KindInvalidMajorVersion
	KindDecode
	KindUnsupportedFile
)

func (k Kind) String() string {
	switch k {
	case KindStorage:
		return "storage"
	case KindMissingFile:
		return "missing_file"
	case KindIO:
		return "io"
	case KindInvalidTrailer:
		return "invalid_trailer"
	case KindInvalidMajorVersion:
		return "invalid_major_version"
	case KindDecode:
		return "decode"
	case KindUnsupportedFile:
		return "unsupported_file"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the single error type returned by this package.
//
// Msg carries the human-readable detail for message-bearing kinds, Version
// the offending byte for KindInvalidMajorVersion, and Err the underlying
// cause for KindIO and KindDecode.
type Error struct {
	Kind    Kind
	Msg     string
	Version uint8
	Err     error
}

// Sentinels for errors.Is. Matching is by Kind only.
var (
	ErrStorage             = &Error{Kind: KindStorage}
	ErrMissingFile         = &Error{Kind: KindMissingFile}
	ErrIO                  = &Error{Kind: KindIO}
	ErrInvalidTrailer      = &Error{Kind: KindInvalidTrailer}
	ErrInvalidMajorVersion = &Error{Kind: KindInvalidMajorVersion}
	ErrDecode              = &Error{Kind: KindDecode}
	ErrUnsupportedFile     = &Error{Kind: KindUnsupportedFile}
)

func (e *Error) Error() string {
	switch e.Kind {
	case KindStorage:
		return "hfile: storage error: " + e.Msg
	case KindMissingFile:
		return "hfile: file not found: " + e.Msg
	case KindIO:
		return "hfile: io error: " + e.detail()
	case KindInvalidTrailer:
		return "hfile: invalid trailer: " + e.Msg
	case KindInvalidMajorVersion:
		return fmt.Sprintf("hfile: invalid major version: %d", e.Version)
	case KindDecode:
		return "hfile: trailer payload decode error: " + e.detail()
	case KindUnsupportedFile:
		return "hfile: unsupported file: " + e.Msg
	default:
		return fmt.Sprintf("hfile: %s: %s", e.Kind, e.detail())
	}
}

func (e *Error) detail() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Msg
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var he *Error
	if errors.As(err, &he) {
		return he.Kind, true
	}
	return 0, false
}

func errStorage(format string, args ...any) error {
	return &Error{Kind: KindStorage, Msg: fmt.Sprintf(format, args...)}
}

func errMissingFile(path string, cause error) error {
	return &Error{Kind: KindMissingFile, Msg: path, Err: cause}
}

func errIO(msg string, cause error) error {
	return &Error{Kind: KindIO, Msg: msg, Err: cause}
}

func errInvalidTrailer(format string, args ...any) error {
	return &Error{Kind: KindInvalidTrailer, Msg: fmt.Sprintf(format, args...)}
}

func errInvalidMajorVersion(v uint8) error {
	return &Error{Kind: KindInvalidMajorVersion, Version: v}
}

func errDecode(msg string, cause error) error {
	return &Error{Kind: KindDecode, Msg: msg, Err: cause}
}

func errUnsupported(format string, args ...any) error {
	return &Error{Kind: KindUnsupportedFile, Msg: fmt.Sprintf(format, args...)}
}
