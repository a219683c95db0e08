// Package blockcodec returns decompressors for HFile block payloads, keyed by
// the compression codec recorded in the trailer.
//
// GZ blocks are plain gzip streams. SNAPPY and ZSTD blocks use Hadoop's
// block framing: a big-endian uint32 raw length, followed by big-endian
// uint32 length-prefixed compressed chunks until that many bytes have been
// produced. A block payload may hold several such frames back to back.
//
// HBase's own ZstdCodec writes that framing, while Hadoop's ZStandardCodec
// writes a bare zstd stream. ZSTD payloads that start with the zstd frame
// magic are read as a stream.
package blockcodec

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"

	"github.com/samcharles93/hfinspect/pkg/hfile"
)

var (
	ErrUnsupportedCodec = errors.New("blockcodec: unsupported codec")
	ErrCorruptBlock     = errors.New("blockcodec: corrupt block")
)

// zstdMagic is the first four bytes of a zstd frame, little-endian.
const zstdMagic = 0xFD2FB528

// maxChunkSize bounds a single compressed chunk; HBase writes 64 KiB blocks.
const maxChunkSize = 64 << 20

// Supported reports whether NewReader can decode blocks written with codec.
func Supported(codec hfile.Codec) bool {
	switch codec.Kind() {
	case hfile.CodecNone, hfile.CodecGZ, hfile.CodecSnappy, hfile.CodecZSTD:
		return true
	}
	return false
}

// NewReader wraps r with a decompressor for codec.
func NewReader(codec hfile.Codec, r io.Reader) (io.ReadCloser, error) {
	if !Supported(codec) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCodec, codec)
	}
	switch codec.Kind() {
	case hfile.CodecNone:
		return io.NopCloser(r), nil
	case hfile.CodecGZ:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: gzip header: %v", ErrCorruptBlock, err)
		}
		return zr, nil
	case hfile.CodecSnappy:
		return &framedReader{r: r, decode: s2.Decode}, nil
	case hfile.CodecZSTD:
		br := bufio.NewReader(r)
		if hdr, err := br.Peek(4); err == nil && binary.LittleEndian.Uint32(hdr) == zstdMagic {
			dec, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
			if err != nil {
				return nil, fmt.Errorf("%w: zstd stream: %v", ErrCorruptBlock, err)
			}
			return dec.IOReadCloser(), nil
		}
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		return &framedReader{
			r: br,
			decode: func(dst, src []byte) ([]byte, error) {
				return dec.DecodeAll(src, dst[:0])
			},
			close: dec.Close,
		}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedCodec, codec)
}

// Decompress decodes a whole block payload and checks that it expands to
// exactly rawSize bytes.
func Decompress(codec hfile.Codec, src []byte, rawSize int) ([]byte, error) {
	rc, err := NewReader(codec, bytes.NewReader(src))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	out := make([]byte, 0, rawSize)
	buf := bytes.NewBuffer(out)
	// Read one byte past rawSize so oversize payloads are caught.
	if _, err := io.Copy(buf, io.LimitReader(rc, int64(rawSize)+1)); err != nil {
		return nil, err
	}
	if buf.Len() != rawSize {
		return nil, fmt.Errorf("%w: decompressed %d bytes, want %d", ErrCorruptBlock, buf.Len(), rawSize)
	}
	return buf.Bytes(), nil
}

// framedReader decodes Hadoop block-framed chunks.
type framedReader struct {
	r         io.Reader
	decode    func(dst, src []byte) ([]byte, error)
	close     func()
	remaining uint32 // raw bytes still expected from the current frame
	pending   []byte // decoded bytes not yet returned
	scratch   []byte
	chunk     []byte
}

func (f *framedReader) Read(p []byte) (int, error) {
	for len(f.pending) == 0 {
		if err := f.fill(); err != nil {
			return 0, err
		}
	}
	n := copy(p, f.pending)
	f.pending = f.pending[n:]
	return n, nil
}

func (f *framedReader) fill() error {
	if f.remaining == 0 {
		raw, err := f.readLen()
		if err == io.EOF {
			return io.EOF
		}
		if err != nil {
			return fmt.Errorf("%w: frame header: %v", ErrCorruptBlock, err)
		}
		f.remaining = raw
		return nil
	}

	size, err := f.readLen()
	if err != nil {
		return fmt.Errorf("%w: chunk header: %v", ErrCorruptBlock, err)
	}
	if size > maxChunkSize {
		return fmt.Errorf("%w: chunk of %d bytes", ErrCorruptBlock, size)
	}
	if cap(f.chunk) < int(size) {
		f.chunk = make([]byte, size)
	}
	f.chunk = f.chunk[:size]
	if _, err := io.ReadFull(f.r, f.chunk); err != nil {
		return fmt.Errorf("%w: chunk body: %v", ErrCorruptBlock, err)
	}

	out, err := f.decode(f.scratch[:0], f.chunk)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptBlock, err)
	}
	if uint64(len(out)) > uint64(f.remaining) {
		return fmt.Errorf("%w: chunk expands past frame length", ErrCorruptBlock)
	}
	f.scratch = out
	f.remaining -= uint32(len(out))
	f.pending = out
	return nil
}

// readLen reads a big-endian uint32. A clean end of input before any byte is
// io.EOF.
func (f *framedReader) readLen() (uint32, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(f.r, hdr[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(hdr[:]), nil
}

func (f *framedReader) Close() error {
	if f.close != nil {
		f.close()
		f.close = nil
	}
	return nil
}
