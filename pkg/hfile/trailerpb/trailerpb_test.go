package trailerpb_test

import (
	"testing"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/samcharles93/hfinspect/internal/hfiletest"
	"github.com/samcharles93/hfinspect/pkg/hfile/trailerpb"
)

func TestUnmarshalPresence(t *testing.T) {
	t.Parallel()

	b := hfiletest.Payload(&trailerpb.FileTrailer{
		FileInfoOffset:      hfiletest.U64(12345),
		DataIndexCount:      hfiletest.U32(0),
		ComparatorClassName: hfiletest.Str(""),
	})
	m, err := trailerpb.Unmarshal(b)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if m.FileInfoOffset == nil || *m.FileInfoOffset != 12345 {
		t.Fatalf("file_info_offset: got %v", m.FileInfoOffset)
	}
	if m.DataIndexCount == nil || *m.DataIndexCount != 0 {
		t.Fatalf("explicit zero data_index_count must be present, got %v", m.DataIndexCount)
	}
	if m.ComparatorClassName == nil || *m.ComparatorClassName != "" {
		t.Fatalf("explicit empty comparator must be present, got %v", m.ComparatorClassName)
	}
	if m.EntryCount != nil || m.CompressionCodec != nil || m.HasEncryptionKey() {
		t.Fatalf("absent fields decoded as present: %+v", m)
	}
}

func TestUnmarshalEmptyEncryptionKey(t *testing.T) {
	t.Parallel()

	b := protowire.AppendTag(nil, trailerpb.FieldEncryptionKey, protowire.BytesType)
	b = protowire.AppendBytes(b, nil)
	m, err := trailerpb.Unmarshal(b)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !m.HasEncryptionKey() || len(m.EncryptionKey) != 0 {
		t.Fatalf("expected present empty key, got %v", m.EncryptionKey)
	}
}

func TestUnmarshalSkipsUnknownFields(t *testing.T) {
	t.Parallel()

	b := protowire.AppendTag(nil, 99, protowire.BytesType)
	b = protowire.AppendString(b, "future")
	b = protowire.AppendTag(b, 100, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, 1)
	b = append(b, hfiletest.Payload(&trailerpb.FileTrailer{EntryCount: hfiletest.U64(3)})...)

	m, err := trailerpb.Unmarshal(b)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if m.EntryCount == nil || *m.EntryCount != 3 {
		t.Fatalf("entry_count: got %v", m.EntryCount)
	}
}

func TestUnmarshalLastValueWins(t *testing.T) {
	t.Parallel()

	b := hfiletest.Payload(&trailerpb.FileTrailer{CompressionCodec: hfiletest.U32(1)})
	b = append(b, hfiletest.Payload(&trailerpb.FileTrailer{CompressionCodec: hfiletest.U32(3)})...)
	m, err := trailerpb.Unmarshal(b)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if *m.CompressionCodec != 3 {
		t.Fatalf("compression_codec: got %d want 3", *m.CompressionCodec)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		b    []byte
	}{
		{"truncated tag", []byte{0x80}},
		{"field zero", []byte{0x00, 0x01}},
		{"varint as bytes", protowire.AppendBytes(protowire.AppendTag(nil, trailerpb.FieldEntryCount, protowire.BytesType), []byte{1})},
		{"string as varint", protowire.AppendVarint(protowire.AppendTag(nil, trailerpb.FieldComparatorClassName, protowire.VarintType), 1)},
		{"bytes past end", []byte{0x6a, 0x05, 'a'}},
		{"truncated unknown field", []byte{0xa2, 0x06, 0x09}},
	}
	for _, tc := range tests {
		if _, err := trailerpb.Unmarshal(tc.b); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}
