package hfile

import "fmt"

// Trailer is the decoded footer of an HFile.
//
// Counts and offsets that the file does not record are zero. A Trailer is
// built once per successful read and is never modified afterwards.
type Trailer struct {
	MajorVersion uint8
	MinorVersion uint8

	// FileInfoOffset is the offset of the file-info block.
	FileInfoOffset uint64
	// LoadOnOpenDataOffset is the start of the section a reader loads at open:
	// the root data index, meta index, file info and bloom metadata.
	LoadOnOpenDataOffset uint64

	UncompressedDataIndexSize uint64
	TotalUncompressedBytes    uint64

	DataIndexCount     uint32
	MetaIndexCount     uint32
	EntryCount         uint64
	NumDataIndexLevels uint32

	FirstDataBlockOffset uint64
	LastDataBlockOffset  uint64

	Comparator  Comparator
	Compression Codec
}

// Version returns the "major.minor" form of the trailer version.
func (t Trailer) Version() string {
	return fmt.Sprintf("%d.%d", t.MajorVersion, t.MinorVersion)
}
