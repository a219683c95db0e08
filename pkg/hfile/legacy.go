package hfile

import (
	"bytes"
	"encoding/binary"
)

// Pre-protobuf v2 trailers store their fields at fixed big-endian offsets
// after the magic:
//
//	fileInfoOffset            u64
//	loadOnOpenDataOffset      u64
//	dataIndexCount            u32
//	uncompressedDataIndexSize u64
//	metaIndexCount            u32
//	totalUncompressedBytes    u64
//	entryCount                u64
//	compressionCodec          u32
//	numDataIndexLevels        u32
//	firstDataBlockOffset      u64
//	lastDataBlockOffset       u64
//	comparatorClassName       [128]byte, NUL padded
const (
	comparatorNameSize = 128
	legacyBodySize     = 72 + comparatorNameSize
)

func decodeLegacy(t *Trailer, body []byte) error {
	if t.MajorVersion != 2 {
		return errUnsupported("legacy trailer layout for major version %d", t.MajorVersion)
	}
	if len(body) < legacyBodySize {
		return errInvalidTrailer("legacy trailer body is %d bytes, want %d", len(body), legacyBodySize)
	}

	c := beCursor{b: body}
	t.FileInfoOffset = c.u64()
	t.LoadOnOpenDataOffset = c.u64()
	t.DataIndexCount = c.u32()
	t.UncompressedDataIndexSize = c.u64()
	t.MetaIndexCount = c.u32()
	t.TotalUncompressedBytes = c.u64()
	t.EntryCount = c.u64()
	t.Compression = CodecFromCode(c.u32())
	t.NumDataIndexLevels = c.u32()
	t.FirstDataBlockOffset = c.u64()
	t.LastDataBlockOffset = c.u64()

	// An all-zero name field means no comparator was recorded.
	name := c.next(comparatorNameSize)
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	if len(name) > 0 {
		t.Comparator = ComparatorFromClassName(string(name))
	}
	return nil
}

// beCursor walks a buffer already checked to be long enough.
type beCursor struct {
	b   []byte
	off int
}

func (c *beCursor) next(n int) []byte {
	p := c.b[c.off : c.off+n]
	c.off += n
	return p
}

func (c *beCursor) u32() uint32 { return binary.BigEndian.Uint32(c.next(4)) }
func (c *beCursor) u64() uint64 { return binary.BigEndian.Uint64(c.next(8)) }
