package hfile

import "strconv"

// CodecKind enumerates block compression algorithms. The zero value is
// CodecNone so an unset Codec means "uncompressed".
type CodecKind uint8

const (
	CodecNone CodecKind = iota
	CodecLZO
	CodecGZ
	CodecSnappy
	CodecLZ4
	CodecBZIP2
	CodecZSTD
	CodecUnknown
)

// Wire codes are the ordinals of HBase's Compression.Algorithm enum.
const (
	codeLZO    uint32 = 0
	codeGZ     uint32 = 1
	codeNone   uint32 = 2
	codeSnappy uint32 = 3
	codeLZ4    uint32 = 4
	codeBZIP2  uint32 = 5
	codeZSTD   uint32 = 6
)

var codecByCode = map[uint32]CodecKind{
	codeLZO:    CodecLZO,
	codeGZ:     CodecGZ,
	codeNone:   CodecNone,
	codeSnappy: CodecSnappy,
	codeLZ4:    CodecLZ4,
	codeBZIP2:  CodecBZIP2,
	codeZSTD:   CodecZSTD,
}

var codecNames = [...]string{
	CodecNone:   "none",
	CodecLZO:    "lzo",
	CodecGZ:     "gz",
	CodecSnappy: "snappy",
	CodecLZ4:    "lz4",
	CodecBZIP2:  "bzip2",
	CodecZSTD:   "zstd",
}

// Codec is the compression algorithm of a file's blocks.
type Codec struct {
	kind CodecKind
	code uint32
}

// CodecFromCode maps a compression ordinal read from a trailer. Codes with no
// known algorithm yield CodecUnknown with the raw code preserved.
func CodecFromCode(code uint32) Codec {
	if k, ok := codecByCode[code]; ok {
		return Codec{kind: k, code: code}
	}
	return Codec{kind: CodecUnknown, code: code}
}

func (c Codec) Kind() CodecKind { return c.kind }

// Code returns the wire ordinal of the codec.
func (c Codec) Code() uint32 {
	if c.kind == CodecNone {
		return codeNone
	}
	return c.code
}

func (c Codec) String() string {
	if c.kind == CodecUnknown {
		return "unknown(" + strconv.FormatUint(uint64(c.code), 10) + ")"
	}
	return codecNames[c.kind]
}
