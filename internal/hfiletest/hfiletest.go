// Package hfiletest builds synthetic HFile trailers for tests.
//
// It encodes the on-disk layout independently of pkg/hfile so tests check the
// reader against the format rather than against itself.
package hfiletest

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/samcharles93/hfinspect/pkg/hfile/trailerpb"
)

const magic = "TRABLK\"$"

// EncodeVersion packs a version the way trailers store it.
func EncodeVersion(major, minor uint8) uint32 {
	return uint32(minor)<<24 | uint32(major)
}

// TrailerSize mirrors the format rule: 212 bytes for v2, 4 KiB otherwise.
func TrailerSize(major uint8) int {
	if major == 2 {
		return 212
	}
	return 4096
}

// Payload encodes m as a FileTrailerProto.
func Payload(m *trailerpb.FileTrailer) []byte {
	var b []byte
	u64 := func(num protowire.Number, v *uint64) {
		if v != nil {
			b = protowire.AppendTag(b, num, protowire.VarintType)
			b = protowire.AppendVarint(b, *v)
		}
	}
	u32 := func(num protowire.Number, v *uint32) {
		if v != nil {
			b = protowire.AppendTag(b, num, protowire.VarintType)
			b = protowire.AppendVarint(b, uint64(*v))
		}
	}
	u64(trailerpb.FieldFileInfoOffset, m.FileInfoOffset)
	u64(trailerpb.FieldLoadOnOpenDataOffset, m.LoadOnOpenDataOffset)
	u64(trailerpb.FieldUncompressedDataIndexSize, m.UncompressedDataIndexSize)
	u64(trailerpb.FieldTotalUncompressedBytes, m.TotalUncompressedBytes)
	u32(trailerpb.FieldDataIndexCount, m.DataIndexCount)
	u32(trailerpb.FieldMetaIndexCount, m.MetaIndexCount)
	u64(trailerpb.FieldEntryCount, m.EntryCount)
	u32(trailerpb.FieldNumDataIndexLevels, m.NumDataIndexLevels)
	u64(trailerpb.FieldFirstDataBlockOffset, m.FirstDataBlockOffset)
	u64(trailerpb.FieldLastDataBlockOffset, m.LastDataBlockOffset)
	if m.ComparatorClassName != nil {
		b = protowire.AppendTag(b, trailerpb.FieldComparatorClassName, protowire.BytesType)
		b = protowire.AppendString(b, *m.ComparatorClassName)
	}
	u32(trailerpb.FieldCompressionCodec, m.CompressionCodec)
	if m.EncryptionKey != nil {
		b = protowire.AppendTag(b, trailerpb.FieldEncryptionKey, protowire.BytesType)
		b = protowire.AppendBytes(b, m.EncryptionKey)
	}
	return b
}

// ProtobufTrailer lays out a full trailer window: magic, varint length,
// payload, zero padding and the encoded version.
func ProtobufTrailer(major, minor uint8, payload []byte) []byte {
	body := protowire.AppendVarint(nil, uint64(len(payload)))
	body = append(body, payload...)
	return Window(major, minor, body)
}

// Window wraps an arbitrary body in magic and version. The body is zero
// padded, or truncated, to fit the trailer size for major.
func Window(major, minor uint8, body []byte) []byte {
	size := TrailerSize(major)
	w := make([]byte, size)
	copy(w, magic)
	copy(w[len(magic):size-4], body)
	binary.BigEndian.PutUint32(w[size-4:], EncodeVersion(major, minor))
	return w
}

// Legacy holds the fixed fields of a pre-protobuf v2 trailer.
type Legacy struct {
	FileInfoOffset            uint64
	LoadOnOpenDataOffset      uint64
	DataIndexCount            uint32
	UncompressedDataIndexSize uint64
	MetaIndexCount            uint32
	TotalUncompressedBytes    uint64
	EntryCount                uint64
	CompressionCodec          uint32
	NumDataIndexLevels        uint32
	FirstDataBlockOffset      uint64
	LastDataBlockOffset       uint64
	ComparatorClassName       string
}

// LegacyTrailer lays out a 212-byte v2 trailer with the fixed field layout.
func LegacyTrailer(minor uint8, l Legacy) []byte {
	be := binary.BigEndian
	b := make([]byte, 0, 200)
	b = be.AppendUint64(b, l.FileInfoOffset)
	b = be.AppendUint64(b, l.LoadOnOpenDataOffset)
	b = be.AppendUint32(b, l.DataIndexCount)
	b = be.AppendUint64(b, l.UncompressedDataIndexSize)
	b = be.AppendUint32(b, l.MetaIndexCount)
	b = be.AppendUint64(b, l.TotalUncompressedBytes)
	b = be.AppendUint64(b, l.EntryCount)
	b = be.AppendUint32(b, l.CompressionCodec)
	b = be.AppendUint32(b, l.NumDataIndexLevels)
	b = be.AppendUint64(b, l.FirstDataBlockOffset)
	b = be.AppendUint64(b, l.LastDataBlockOffset)
	name := make([]byte, 128)
	copy(name, l.ComparatorClassName)
	b = append(b, name...)
	return Window(2, minor, b)
}

// WriteFile writes prefix followed by trailer to a new file under dir and
// returns its path.
func WriteFile(t testing.TB, dir, name string, prefix, trailer []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	data := append(append([]byte{}, prefix...), trailer...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func U64(v uint64) *uint64 { return &v }
func U32(v uint32) *uint32 { return &v }
func Str(v string) *string { return &v }
