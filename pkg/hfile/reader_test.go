package hfile

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samcharles93/hfinspect/internal/hfiletest"
	"github.com/samcharles93/hfinspect/pkg/hfile/trailerpb"
)

func TestReadTrailerFileRoundTrip(t *testing.T) {
	t.Parallel()

	payload := hfiletest.Payload(&trailerpb.FileTrailer{FileInfoOffset: hfiletest.U64(12345)})
	path := hfiletest.WriteFile(t, t.TempDir(), "t.hfile",
		bytes.Repeat([]byte{0x5a}, 300), hfiletest.ProtobufTrailer(2, 2, payload))

	got, err := ReadTrailerFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadTrailerFile: %v", err)
	}
	want := Trailer{MajorVersion: 2, MinorVersion: 2, FileInfoOffset: 12345}
	if got != want {
		t.Fatalf("trailer mismatch:\n got %+v\nwant %+v", got, want)
	}
	if got.Comparator.Kind() != ComparatorKV || got.Compression.Kind() != CodecNone {
		t.Fatalf("expected default comparator and codec, got %v %v", got.Comparator, got.Compression)
	}
	if got.Version() != "2.2" {
		t.Fatalf("version string: got %q", got.Version())
	}

	again, err := ReadTrailerFile(context.Background(), path)
	if err != nil {
		t.Fatalf("second ReadTrailerFile: %v", err)
	}
	if again != got {
		t.Fatalf("reads differ: %+v vs %+v", again, got)
	}
}

func TestReadTrailerFileLargeV3(t *testing.T) {
	t.Parallel()

	payload := hfiletest.Payload(&trailerpb.FileTrailer{
		EntryCount:       hfiletest.U64(1_000_000),
		CompressionCodec: hfiletest.U32(6),
	})
	path := hfiletest.WriteFile(t, t.TempDir(), "big.hfile",
		make([]byte, 64*1024), hfiletest.ProtobufTrailer(3, 0, payload))

	got, err := ReadTrailerFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadTrailerFile: %v", err)
	}
	if got.MajorVersion != 3 || got.EntryCount != 1_000_000 || got.Compression.Kind() != CodecZSTD {
		t.Fatalf("unexpected trailer: %+v", got)
	}
}

func TestReadTrailerFileMissing(t *testing.T) {
	t.Parallel()

	_, err := ReadTrailerFile(context.Background(), filepath.Join(t.TempDir(), "nope.hfile"))
	if !errors.Is(err, ErrMissingFile) {
		t.Fatalf("got %v want missing file", err)
	}
	if errors.Is(err, ErrIO) {
		t.Fatalf("missing file must not be reported as a generic io error")
	}
}

func TestReadTrailerFileBadMagic(t *testing.T) {
	t.Parallel()

	payload := hfiletest.Payload(&trailerpb.FileTrailer{EncryptionKey: []byte("k")})
	window := hfiletest.ProtobufTrailer(2, 2, payload)
	copy(window, "XXXXXXXX")
	path := hfiletest.WriteFile(t, t.TempDir(), "bad.hfile", nil, window)

	// The payload would be rejected as encrypted if it were ever decoded.
	_, err := ReadTrailerFile(context.Background(), path)
	if !errors.Is(err, ErrInvalidTrailer) {
		t.Fatalf("got %v want invalid trailer", err)
	}
}

func TestReadTrailerFileCancelled(t *testing.T) {
	t.Parallel()

	path := hfiletest.WriteFile(t, t.TempDir(), "t.hfile", nil, hfiletest.ProtobufTrailer(2, 2, nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadTrailerFile(ctx, path)
	if !errors.Is(err, context.Canceled) || !errors.Is(err, ErrIO) {
		t.Fatalf("got %v want io error wrapping context.Canceled", err)
	}
}

func TestReadTrailerWithLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	window := hfiletest.ProtobufTrailer(2, 2, hfiletest.Payload(&trailerpb.FileTrailer{EntryCount: hfiletest.U64(1)}))

	if _, err := ReadTrailer(bytes.NewReader(window), int64(len(window)), WithLogger(log)); err != nil {
		t.Fatalf("ReadTrailer: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "located trailer") || !strings.Contains(out, "decoding trailer payload") {
		t.Fatalf("expected debug events, got: %s", out)
	}
}
