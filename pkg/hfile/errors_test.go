package hfile

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestErrorMessagesAreDistinct(t *testing.T) {
	t.Parallel()

	errs := []error{
		errStorage("disk on fire"),
		errMissingFile("/tmp/x.hfile", nil),
		errIO("read", io.ErrUnexpectedEOF),
		errInvalidTrailer("bad magic"),
		errInvalidMajorVersion(9),
		errDecode("payload", io.ErrUnexpectedEOF),
		errUnsupported("encryption unsupported"),
	}
	seen := map[string]bool{}
	for _, err := range errs {
		msg := err.Error()
		prefix := msg[:strings.LastIndex(msg, ":")]
		if seen[prefix] {
			t.Fatalf("duplicate message prefix %q", prefix)
		}
		seen[prefix] = true
	}

	if got := errInvalidMajorVersion(9).Error(); got != "hfile: invalid major version: 9" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestErrorIsMatchesKind(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("open table: %w", errDecode("payload", io.ErrUnexpectedEOF))
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected errors.Is(err, ErrDecode)")
	}
	if errors.Is(err, ErrIO) {
		t.Fatalf("decode error must not match ErrIO")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected cause to be reachable through Unwrap")
	}
	kind, ok := KindOf(err)
	if !ok || kind != KindDecode {
		t.Fatalf("KindOf: got (%v, %v) want (decode, true)", kind, ok)
	}
	if _, ok := KindOf(io.EOF); ok {
		t.Fatalf("KindOf(io.EOF) should not report a kind")
	}
}
