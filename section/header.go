package section

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/arloliu/fcs/errs"
)

// HeaderField identifies one of the six numeric header fields.
type HeaderField uint8

const (
	FieldTextStart HeaderField = iota + 1
	FieldTextEnd
	FieldDataStart
	FieldDataEnd
	FieldAnalysisStart
	FieldAnalysisEnd
)

func (f HeaderField) String() string {
	switch f {
	case FieldTextStart:
		return "text start"
	case FieldTextEnd:
		return "text end"
	case FieldDataStart:
		return "data start"
	case FieldDataEnd:
		return "data end"
	case FieldAnalysisStart:
		return "analysis start"
	case FieldAnalysisEnd:
		return "analysis end"
	default:
		return "unknown"
	}
}

// pos returns the byte offset of the field within the header.
func (f HeaderField) pos() int {
	switch f {
	case FieldTextStart:
		return textStartPos
	case FieldTextEnd:
		return textEndPos
	case FieldDataStart:
		return dataStartPos
	case FieldDataEnd:
		return dataEndPos
	case FieldAnalysisStart:
		return analysisStartPos
	default:
		return analysisEndPos
	}
}

// isAnalysis reports whether a blank value is allowed for the field.
func (f HeaderField) isAnalysis() bool {
	return f == FieldAnalysisStart || f == FieldAnalysisEnd
}

// HeaderFieldError reports a header offset field that is not a non-negative
// decimal integer. It matches errs.ErrInvalidHeaderField.
type HeaderFieldError struct {
	Field HeaderField
	// Value is the raw 8-byte field content.
	Value string
}

func (e *HeaderFieldError) Error() string {
	return fmt.Sprintf("invalid header field %s: %q", e.Field, e.Value)
}

func (e *HeaderFieldError) Unwrap() error {
	return errs.ErrInvalidHeaderField
}

// Segment is an inclusive byte range [Start, End] into the file.
// The range 0..=0 means the segment is absent.
type Segment struct {
	Start int
	End   int
}

// IsEmpty reports whether the segment is the absent range 0..=0.
func (s Segment) IsEmpty() bool {
	return s.Start == 0 && s.End == 0
}

// Len returns the number of bytes covered by the segment, 0 for an absent or
// inverted range.
func (s Segment) Len() int {
	if s.IsEmpty() || s.End < s.Start {
		return 0
	}

	return s.End - s.Start + 1
}

// Slice returns the bytes of file covered by the segment. The returned slice
// aliases file. An absent segment yields an empty slice.
//
// Returns:
//   - error: errs.ErrSegmentOutOfRange if the range is inverted or ends past the file
func (s Segment) Slice(file []byte) ([]byte, error) {
	if s.IsEmpty() {
		return file[:0:0], nil
	}
	if s.Start < 0 || s.End < s.Start || s.End >= len(file) {
		return nil, fmt.Errorf("%w: %d..=%d in %d bytes", errs.ErrSegmentOutOfRange, s.Start, s.End, len(file))
	}

	return file[s.Start : s.End+1], nil
}

func (s Segment) String() string {
	return fmt.Sprintf("%d..=%d", s.Start, s.End)
}

// Header is the decoded fixed-width preamble of an FCS file.
type Header struct {
	// Version is the format identifier of up to 6 characters, e.g. "FCS3.0".
	Version string
	// Text is the byte range of the text segment.
	Text Segment
	// Data is the byte range of the data segment.
	Data Segment
	// Analysis is the byte range of the analysis segment, 0..=0 when absent.
	Analysis Segment
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 58 bytes)
//
// Returns:
//   - error: errs.ErrInvalidHeaderSize if data is not 58 bytes, or a *HeaderFieldError
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	var offsets [6]int
	for i := range offsets {
		field := HeaderField(i + 1)
		v, err := parseOffsetField(data, field)
		if err != nil {
			return err
		}
		offsets[i] = v
	}

	// trailing pad spaces are not part of the version
	h.Version = strings.TrimRight(string(data[:VersionSize]), " ")
	h.Text = Segment{Start: offsets[0], End: offsets[1]}
	h.Data = Segment{Start: offsets[2], End: offsets[3]}
	h.Analysis = Segment{Start: offsets[4], End: offsets[5]}

	return nil
}

// parseOffsetField decodes one right-justified decimal field.
//
// Leading whitespace is trimmed. A field that is empty after trimming is 0
// for the two analysis fields and an error for every other field.
func parseOffsetField(data []byte, field HeaderField) (int, error) {
	pos := field.pos()
	raw := string(data[pos : pos+OffsetWidth])
	value := strings.TrimLeftFunc(raw, unicode.IsSpace)

	if value == "" && field.isAnalysis() {
		return 0, nil
	}

	if !isDecimal(value) {
		return 0, &HeaderFieldError{Field: field, Value: raw}
	}

	n, err := strconv.ParseUint(value, 10, 63)
	if err != nil {
		return 0, &HeaderFieldError{Field: field, Value: raw}
	}

	return int(n), nil
}

// isDecimal reports whether s is a non-empty run of ASCII digits.
func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// String returns the 58-character encoding of the header: the version
// left-justified in 10 characters followed by the six offsets, each
// right-justified in 8 characters.
func (h Header) String() string {
	return fmt.Sprintf("%-*s%*d%*d%*d%*d%*d%*d",
		VersionPadSize, h.Version,
		OffsetWidth, h.Text.Start,
		OffsetWidth, h.Text.End,
		OffsetWidth, h.Data.Start,
		OffsetWidth, h.Data.End,
		OffsetWidth, h.Analysis.Start,
		OffsetWidth, h.Analysis.End,
	)
}

// Bytes serializes the header. The result is exactly 58 bytes for any header
// that passes Validate.
func (h Header) Bytes() []byte {
	return []byte(h.String())
}

// Validate reports whether the header can be encoded into 58 bytes and decoded
// back unchanged.
//
// Returns:
//   - error: errs.ErrInvalidVersion or errs.ErrOffsetOverflow
func (h Header) Validate() error {
	if len(h.Version) > VersionSize {
		return fmt.Errorf("%w: %q is longer than %d bytes", errs.ErrInvalidVersion, h.Version, VersionSize)
	}

	for _, s := range []Segment{h.Text, h.Data, h.Analysis} {
		if s.Start < 0 || s.End < 0 || s.Start > MaxHeaderOffset || s.End > MaxHeaderOffset {
			return fmt.Errorf("%w: %s", errs.ErrOffsetOverflow, s)
		}
	}

	return nil
}

// ParseHeader parses a Header from the first 58 bytes of data.
//
// Parameters:
//   - data: Byte slice starting with the header (must be at least 58 bytes)
//
// Returns:
//   - Header: Parsed header
//   - error: errs.ErrInvalidHeaderSize or a *HeaderFieldError
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
