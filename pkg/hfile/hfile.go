// Package hfile reads the fixed trailer at the end of an HFile.
//
// An HFile is the immutable columnar data file of an HBase region store. The
// trailer records where the data blocks, the block index and the file-info
// block live, so readers can open a file without scanning it. This package
// only locates and decodes the trailer; it never writes files.
package hfile

// Trailer format constants. These are fixed by the on-disk format.
const (
	// Magic opens every trailer window.
	Magic = "TRABLK\"$"

	MinFormatVersion uint8 = 2
	MaxFormatVersion uint8 = 3

	// MaxTrailerSize is the largest trailer window of any supported version.
	MaxTrailerSize = 4 * 1024

	// ProtobufTrailerMinorVersion is the first v2 minor version whose trailer
	// body is a length-prefixed FileTrailerProto message.
	ProtobufTrailerMinorVersion uint8 = 2

	// v2 trailers are a fixed 212 bytes; later versions pad to 4 KiB.
	trailerSizeV2 = 212

	versionSize = 4
)
