package hfile

import (
	"bytes"
	"encoding/binary"
	"io"
)

// location is a validated trailer window.
type location struct {
	major  uint8
	minor  uint8
	offset int64  // file offset of the magic
	body   []byte // bytes between the magic and the version integer
}

// locate reads the tail of the file, validates the version and the magic and
// returns the trailer body for decoding.
func locate(r io.ReaderAt, size int64) (location, error) {
	if size < 0 {
		return location{}, errStorage("negative file size %d", size)
	}

	bufSize := int64(MaxTrailerSize)
	var start int64
	if size < bufSize {
		bufSize = size
	} else {
		start = size - bufSize
	}
	if bufSize < versionSize {
		return location{}, errIO("read trailer version", io.ErrUnexpectedEOF)
	}

	buf := make([]byte, bufSize)
	if err := readFullAt(r, buf, start); err != nil {
		return location{}, errIO("read trailer window", err)
	}

	major, minor := DecodeVersion(binary.BigEndian.Uint32(buf[len(buf)-versionSize:]))
	if err := CheckVersion(major); err != nil {
		return location{}, err
	}

	trailerSize := TrailerSize(major)
	if trailerSize > len(buf) {
		return location{}, errInvalidTrailer("file is %d bytes, shorter than a v%d trailer (%d bytes)", size, major, trailerSize)
	}
	window := buf[len(buf)-trailerSize:]

	if magic := window[:len(Magic)]; !bytes.Equal(magic, []byte(Magic)) {
		return location{}, errInvalidTrailer("bad magic %q, want %q", magic, Magic)
	}

	return location{
		major:  major,
		minor:  minor,
		offset: start + int64(len(buf)-trailerSize),
		body:   window[len(Magic) : trailerSize-versionSize],
	}, nil
}

// readFullAt fills p from r starting at off. A read that ends early is
// reported as io.ErrUnexpectedEOF.
func readFullAt(r io.ReaderAt, p []byte, off int64) error {
	var done int
	for done < len(p) {
		n, err := r.ReadAt(p[done:], off+int64(done))
		done += n
		if err == nil {
			continue
		}
		if err == io.EOF {
			if done == len(p) {
				break
			}
			return io.ErrUnexpectedEOF
		}
		return err
	}
	return nil
}
