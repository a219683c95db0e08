package api

import (
	"github.com/samcharles93/hfinspect/pkg/blockcodec"
	"github.com/samcharles93/hfinspect/pkg/hfile"
)

// TrailerResponse is the serialised form of a trailer. The CLI prints the
// same shape.
type TrailerResponse struct {
	Path         string `json:"path" yaml:"path"`
	Version      string `json:"version" yaml:"version"`
	MajorVersion uint8  `json:"major_version" yaml:"major_version"`
	MinorVersion uint8  `json:"minor_version" yaml:"minor_version"`

	FileInfoOffset            uint64 `json:"file_info_offset" yaml:"file_info_offset"`
	LoadOnOpenDataOffset      uint64 `json:"load_on_open_data_offset" yaml:"load_on_open_data_offset"`
	UncompressedDataIndexSize uint64 `json:"uncompressed_data_index_size" yaml:"uncompressed_data_index_size"`
	TotalUncompressedBytes    uint64 `json:"total_uncompressed_bytes" yaml:"total_uncompressed_bytes"`
	DataIndexCount            uint32 `json:"data_index_count" yaml:"data_index_count"`
	MetaIndexCount            uint32 `json:"meta_index_count" yaml:"meta_index_count"`
	EntryCount                uint64 `json:"entry_count" yaml:"entry_count"`
	NumDataIndexLevels        uint32 `json:"num_data_index_levels" yaml:"num_data_index_levels"`
	FirstDataBlockOffset      uint64 `json:"first_data_block_offset" yaml:"first_data_block_offset"`
	LastDataBlockOffset       uint64 `json:"last_data_block_offset" yaml:"last_data_block_offset"`

	Comparator          string `json:"comparator" yaml:"comparator"`
	ComparatorClassName string `json:"comparator_class_name,omitempty" yaml:"comparator_class_name,omitempty"`
	CompressionCodec    string `json:"compression_codec" yaml:"compression_codec"`
	CompressionCode     uint32 `json:"compression_code" yaml:"compression_code"`

	// BlockDecodable reports whether hfinspect can decompress this file's
	// blocks.
	BlockDecodable bool `json:"block_decodable" yaml:"block_decodable"`
}

func NewTrailerResponse(path string, t hfile.Trailer) TrailerResponse {
	return TrailerResponse{
		Path:                      path,
		Version:                   t.Version(),
		MajorVersion:              t.MajorVersion,
		MinorVersion:              t.MinorVersion,
		FileInfoOffset:            t.FileInfoOffset,
		LoadOnOpenDataOffset:      t.LoadOnOpenDataOffset,
		UncompressedDataIndexSize: t.UncompressedDataIndexSize,
		TotalUncompressedBytes:    t.TotalUncompressedBytes,
		DataIndexCount:            t.DataIndexCount,
		MetaIndexCount:            t.MetaIndexCount,
		EntryCount:                t.EntryCount,
		NumDataIndexLevels:        t.NumDataIndexLevels,
		FirstDataBlockOffset:      t.FirstDataBlockOffset,
		LastDataBlockOffset:       t.LastDataBlockOffset,
		Comparator:                t.Comparator.Kind().String(),
		ComparatorClassName:       t.Comparator.ClassName(),
		CompressionCodec:          t.Compression.String(),
		CompressionCode:           t.Compression.Code(),
		BlockDecodable:            blockcodec.Supported(t.Compression),
	}
}
