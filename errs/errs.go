// Package errs defines the sentinel errors returned by the fcs packages.
//
// Every malformed-input path in the codecs returns one of these values, either
// directly or wrapped, so callers can dispatch with errors.Is.
package errs

import "errors"

// Header errors.
var (
	// ErrInvalidHeaderSize is returned when the header slice is shorter than 58 bytes.
	ErrInvalidHeaderSize = errors.New("invalid header size")
	// ErrInvalidHeaderField is matched by every HeaderFieldError.
	ErrInvalidHeaderField = errors.New("invalid header field")
	// ErrInvalidVersion is returned when a version does not fit in the 6-byte version field.
	ErrInvalidVersion = errors.New("invalid header version")
	// ErrOffsetOverflow is returned when an offset needs more than 8 decimal digits.
	ErrOffsetOverflow = errors.New("segment offset does not fit in header field")
)

// Text errors.
var (
	// ErrInvalidText is returned for any text segment that does not follow the
	// delimited key-value grammar. The grammar does not distinguish causes.
	ErrInvalidText = errors.New("invalid text segment")
	// ErrUnencodableText is returned when a key or value cannot be written
	// so that it decodes back to itself.
	ErrUnencodableText = errors.New("text pair cannot be encoded")
)

// Data errors.
var (
	ErrUnsupportedMode      = errors.New("unsupported mode, only list mode is supported")
	ErrUnsupportedDataType  = errors.New("unsupported data type, only 32-bit floats are supported")
	ErrUnsupportedByteOrder = errors.New("unsupported byte order, only 1,2,3,4 and 4,3,2,1 are supported")
	// ErrShortRead is returned when a data buffer holds fewer bytes than the
	// number of values requested from it.
	ErrShortRead = errors.New("data segment could not be exactly read into allocated events")
)

// File level errors.
var (
	ErrSegmentOutOfRange      = errors.New("segment offsets out of file range")
	ErrMissingParameterCount  = errors.New("number of parameters not set")
	ErrInvalidParameterCount  = errors.New("invalid number of parameters")
	ErrLayoutUnstable         = errors.New("segment layout did not converge")
	ErrInvalidCompressionType = errors.New("invalid compression type")

	// ErrEventCountMismatch is returned by strict decoding when the number of
	// values does not match $PAR and $TOT.
	ErrEventCountMismatch = errors.New("event count does not match $PAR and $TOT")
)
