package hfile

import (
	"fmt"
	"io"
	"log/slog"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/samcharles93/hfinspect/pkg/hfile/trailerpb"
)

// decodeBody decodes the trailer body that follows the magic. The layout is
// chosen by version: protobuf from v2.2 on, the fixed legacy layout before.
// On error the returned Trailer is always the zero value.
func decodeBody(major, minor uint8, body []byte, log *slog.Logger) (Trailer, error) {
	t := Trailer{MajorVersion: major, MinorVersion: minor}

	var err error
	if UsesProtobuf(major, minor) {
		err = decodeProtobuf(&t, body, log)
	} else {
		log.Debug("decoding legacy trailer", "major", major, "minor", minor)
		err = decodeLegacy(&t, body)
	}
	if err != nil {
		return Trailer{}, err
	}
	return t, nil
}

func decodeProtobuf(t *Trailer, body []byte, log *slog.Logger) error {
	size, n := protowire.ConsumeVarint(body)
	if n < 0 {
		return errDecode("payload length", protowire.ParseError(n))
	}
	rest := body[n:]
	if size > uint64(len(rest)) {
		return errDecode(fmt.Sprintf("payload length %d exceeds %d remaining trailer bytes", size, len(rest)), io.ErrUnexpectedEOF)
	}
	log.Debug("decoding trailer payload", "length", size)

	m, err := trailerpb.Unmarshal(rest[:size])
	if err != nil {
		return errDecode("FileTrailerProto", err)
	}
	applyProto(t, m)

	if m.HasEncryptionKey() {
		return errUnsupported("encryption unsupported")
	}
	return nil
}

// applyProto copies the fields present in m. Absent fields keep their zero
// defaults.
func applyProto(t *Trailer, m *trailerpb.FileTrailer) {
	if m.FileInfoOffset != nil {
		t.FileInfoOffset = *m.FileInfoOffset
	}
	if m.LoadOnOpenDataOffset != nil {
		t.LoadOnOpenDataOffset = *m.LoadOnOpenDataOffset
	}
	if m.UncompressedDataIndexSize != nil {
		t.UncompressedDataIndexSize = *m.UncompressedDataIndexSize
	}
	if m.TotalUncompressedBytes != nil {
		t.TotalUncompressedBytes = *m.TotalUncompressedBytes
	}
	if m.DataIndexCount != nil {
		t.DataIndexCount = *m.DataIndexCount
	}
	if m.MetaIndexCount != nil {
		t.MetaIndexCount = *m.MetaIndexCount
	}
	if m.EntryCount != nil {
		t.EntryCount = *m.EntryCount
	}
	if m.NumDataIndexLevels != nil {
		t.NumDataIndexLevels = *m.NumDataIndexLevels
	}
	if m.FirstDataBlockOffset != nil {
		t.FirstDataBlockOffset = *m.FirstDataBlockOffset
	}
	if m.LastDataBlockOffset != nil {
		t.LastDataBlockOffset = *m.LastDataBlockOffset
	}
	if m.ComparatorClassName != nil {
		t.Comparator = ComparatorFromClassName(*m.ComparatorClassName)
	}
	if m.CompressionCodec != nil {
		t.Compression = CodecFromCode(*m.CompressionCodec)
	}
}
