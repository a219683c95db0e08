package hfile

// DecodeVersion splits the trailing version integer of a trailer.
// The low byte is the major version and the top byte the minor version.
func DecodeVersion(encoded uint32) (major, minor uint8) {
	return uint8(encoded & 0x00ffffff), uint8(encoded >> 24)
}

// CheckVersion rejects major versions outside [MinFormatVersion, MaxFormatVersion].
func CheckVersion(major uint8) error {
	if major < MinFormatVersion || major > MaxFormatVersion {
		return errInvalidMajorVersion(major)
	}
	return nil
}

// TrailerSize returns the trailer window length for a validated major version.
func TrailerSize(major uint8) int {
	if major == 2 {
		return trailerSizeV2
	}
	return MaxTrailerSize
}

// UsesProtobuf reports whether a trailer of this version stores its body as
// a length-prefixed FileTrailerProto rather than the fixed legacy layout.
func UsesProtobuf(major, minor uint8) bool {
	return major > 2 || (major == 2 && minor >= ProtobufTrailerMinorVersion)
}
