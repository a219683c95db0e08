// Package trailerpb decodes the FileTrailerProto message embedded in HFile
// v2.2+ trailers.
//
// The message is small and flat, so it is decoded straight off the protobuf
// wire format instead of through generated code. Unknown fields are skipped.
package trailerpb

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers from hbase-protocol HFile.proto.
const (
	FieldFileInfoOffset            protowire.Number = 1
	FieldLoadOnOpenDataOffset      protowire.Number = 2
	FieldUncompressedDataIndexSize protowire.Number = 3
	FieldTotalUncompressedBytes    protowire.Number = 4
	FieldDataIndexCount            protowire.Number = 5
	FieldMetaIndexCount            protowire.Number = 6
	FieldEntryCount                protowire.Number = 7
	FieldNumDataIndexLevels        protowire.Number = 8
	FieldFirstDataBlockOffset      protowire.Number = 9
	FieldLastDataBlockOffset       protowire.Number = 10
	FieldComparatorClassName       protowire.Number = 11
	FieldCompressionCodec          protowire.Number = 12
	FieldEncryptionKey             protowire.Number = 13
)

// FileTrailer mirrors FileTrailerProto. A nil field was absent on the wire.
type FileTrailer struct {
	FileInfoOffset            *uint64
	LoadOnOpenDataOffset      *uint64
	UncompressedDataIndexSize *uint64
	TotalUncompressedBytes    *uint64
	DataIndexCount            *uint32
	MetaIndexCount            *uint32
	EntryCount                *uint64
	NumDataIndexLevels        *uint32
	FirstDataBlockOffset      *uint64
	LastDataBlockOffset       *uint64
	ComparatorClassName       *string
	CompressionCodec          *uint32

	// EncryptionKey is non-nil whenever the field was present, even when the
	// encoded key is empty.
	EncryptionKey []byte
}

// HasEncryptionKey reports whether the message carried an encryption key.
func (m *FileTrailer) HasEncryptionKey() bool {
	return m.EncryptionKey != nil
}

// Unmarshal decodes a FileTrailerProto. Repeated scalar fields keep the last
// value, as protobuf requires.
func Unmarshal(b []byte) (*FileTrailer, error) {
	m := &FileTrailer{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("trailerpb: tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch num {
		case FieldComparatorClassName:
			v, n, err := consumeBytes(num, typ, b)
			if err != nil {
				return nil, err
			}
			s := string(v)
			m.ComparatorClassName = &s
			b = b[n:]
		case FieldEncryptionKey:
			v, n, err := consumeBytes(num, typ, b)
			if err != nil {
				return nil, err
			}
			m.EncryptionKey = append([]byte{}, v...)
			b = b[n:]
		default:
			dst64, dst32 := m.varintField(num)
			if dst64 == nil && dst32 == nil {
				n := protowire.ConsumeFieldValue(num, typ, b)
				if n < 0 {
					return nil, fmt.Errorf("trailerpb: field %d: %w", num, protowire.ParseError(n))
				}
				b = b[n:]
				continue
			}
			v, n, err := consumeVarint(num, typ, b)
			if err != nil {
				return nil, err
			}
			if dst64 != nil {
				*dst64 = &v
			} else {
				v32 := uint32(v)
				*dst32 = &v32
			}
			b = b[n:]
		}
	}
	return m, nil
}

// varintField returns the destination of a varint-encoded field, or nils when
// num is not one.
func (m *FileTrailer) varintField(num protowire.Number) (**uint64, **uint32) {
	switch num {
	case FieldFileInfoOffset:
		return &m.FileInfoOffset, nil
	case FieldLoadOnOpenDataOffset:
		return &m.LoadOnOpenDataOffset, nil
	case FieldUncompressedDataIndexSize:
		return &m.UncompressedDataIndexSize, nil
	case FieldTotalUncompressedBytes:
		return &m.TotalUncompressedBytes, nil
	case FieldDataIndexCount:
		return nil, &m.DataIndexCount
	case FieldMetaIndexCount:
		return nil, &m.MetaIndexCount
	case FieldEntryCount:
		return &m.EntryCount, nil
	case FieldNumDataIndexLevels:
		return nil, &m.NumDataIndexLevels
	case FieldFirstDataBlockOffset:
		return &m.FirstDataBlockOffset, nil
	case FieldLastDataBlockOffset:
		return &m.LastDataBlockOffset, nil
	case FieldCompressionCodec:
		return nil, &m.CompressionCodec
	}
	return nil, nil
}

func consumeVarint(num protowire.Number, typ protowire.Type, b []byte) (uint64, int, error) {
	if typ != protowire.VarintType {
		return 0, 0, fmt.Errorf("trailerpb: field %d: wire type %d, want varint", num, typ)
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, fmt.Errorf("trailerpb: field %d: %w", num, protowire.ParseError(n))
	}
	return v, n, nil
}

func consumeBytes(num protowire.Number, typ protowire.Type, b []byte) ([]byte, int, error) {
	if typ != protowire.BytesType {
		return nil, 0, fmt.Errorf("trailerpb: field %d: wire type %d, want bytes", num, typ)
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, fmt.Errorf("trailerpb: field %d: %w", num, protowire.ParseError(n))
	}
	return v, n, nil
}
