package section

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/arloliu/fcs/errs"
	"github.com/arloliu/fcs/internal/pool"
)

// Text is the decoded key/value metadata of the text segment.
type Text struct {
	// Delimiter is the first byte of the segment. Any value is legal.
	Delimiter byte
	// Pairs maps upper-case keys to their values.
	Pairs map[string]string
}

// NewText creates an empty Text using the given delimiter.
func NewText(delimiter byte) Text {
	return Text{Delimiter: delimiter, Pairs: make(map[string]string)}
}

// Get returns the value stored for key. The lookup is case-insensitive.
func (t Text) Get(key string) (string, bool) {
	v, ok := t.Pairs[strings.ToUpper(key)]
	return v, ok
}

// Set stores value under the upper-case form of key, replacing any previous value.
func (t *Text) Set(key, value string) {
	if t.Pairs == nil {
		t.Pairs = make(map[string]string)
	}
	t.Pairs[strings.ToUpper(key)] = value
}

// Keys returns all keys in ascending order.
func (t Text) Keys() []string {
	return slices.Sorted(maps.Keys(t.Pairs))
}

// Len returns the number of pairs.
func (t Text) Len() int {
	return len(t.Pairs)
}

// Clone returns a copy that shares no state with t.
func (t Text) Clone() Text {
	return Text{Delimiter: t.Delimiter, Pairs: maps.Clone(t.Pairs)}
}

type scanState uint8

const (
	// inField consumes literal bytes into the current field.
	inField scanState = iota
	// sawDelimiter holds one delimiter until the next byte tells whether it
	// is the first half of an escape or a field separator.
	sawDelimiter
)

// ParseText decodes a text segment.
//
// The first byte is the delimiter. The remaining bytes are scanned left to
// right: two consecutive delimiters contribute one literal delimiter to the
// current field, a single delimiter ends the field. A delimiter that is the
// last byte of the segment ends the last field without starting a new one.
// The fields must come in key/value pairs, and there must be at least one
// pair. Keys are upper-cased; when a key repeats the last value wins.
//
// Returns:
//   - Text: Decoded metadata, copied out of data
//   - error: errs.ErrInvalidText for any input that does not follow the grammar
func ParseText(data []byte) (Text, error) {
	if len(data) == 0 {
		return Text{}, errs.ErrInvalidText
	}

	delimiter := data[0]
	fields := splitFields(data[1:], delimiter)
	if len(fields) < 2 || len(fields)%2 != 0 {
		return Text{}, fmt.Errorf("%w: %d fields", errs.ErrInvalidText, len(fields))
	}

	pairs := make(map[string]string, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		pairs[strings.ToUpper(fields[i])] = fields[i+1]
	}

	return Text{Delimiter: delimiter, Pairs: pairs}, nil
}

// splitFields splits the body of a text segment into unescaped fields.
func splitFields(body []byte, delimiter byte) []string {
	var fields []string
	field := make([]byte, 0, 64)
	state := inField

	for _, c := range body {
		switch state {
		case inField:
			if c == delimiter {
				state = sawDelimiter
				continue
			}
			field = append(field, c)
		case sawDelimiter:
			state = inField
			if c == delimiter {
				field = append(field, delimiter)
				continue
			}
			fields = append(fields, string(field))
			field = append(field[:0], c)
		}
	}

	if state == sawDelimiter || len(field) > 0 {
		fields = append(fields, string(field))
	}

	return fields
}

// Encode serializes the text segment: the delimiter, then every key and value,
// each followed by a delimiter. Delimiters inside keys and values are doubled.
//
// Keys are written in ascending order, except for one key that is empty or
// begins with the delimiter: the scan only reads such a field back right after
// the leading delimiter, so it is written first. A second such key, and any
// value that is empty or begins with the delimiter, would decode differently
// and is rejected.
//
// Returns:
//   - []byte: Encoded segment owned by the caller
//   - error: errs.ErrUnencodableText for an empty Text or an ambiguous key or value
func (t Text) Encode() ([]byte, error) {
	if len(t.Pairs) == 0 {
		return nil, fmt.Errorf("%w: no pairs", errs.ErrUnencodableText)
	}

	keys, err := t.encodeOrder()
	if err != nil {
		return nil, err
	}

	buf := pool.GetSegmentBuffer()
	defer pool.PutSegmentBuffer(buf)

	_ = buf.WriteByte(t.Delimiter)
	for _, key := range keys {
		value := t.Pairs[key]
		if err := t.checkField(value); err != nil {
			return nil, fmt.Errorf("value of %q: %w", key, err)
		}

		t.writeField(buf, key)
		t.writeField(buf, value)
	}

	return bytes.Clone(buf.Bytes()), nil
}

// encodeOrder returns the keys in write order, with the one key that may only
// be written first moved to the front.
func (t Text) encodeOrder() ([]string, error) {
	keys := t.Keys()

	lead := -1
	for i, key := range keys {
		if t.checkField(key) == nil {
			continue
		}
		if lead >= 0 {
			return nil, fmt.Errorf("%w: keys %q and %q cannot both lead the segment",
				errs.ErrUnencodableText, keys[lead], key)
		}
		lead = i
	}

	if lead > 0 {
		key := keys[lead]
		copy(keys[1:lead+1], keys[:lead])
		keys[0] = key
	}

	return keys, nil
}

func (t Text) checkField(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty field", errs.ErrUnencodableText)
	}
	if s[0] == t.Delimiter {
		return fmt.Errorf("%w: %q starts with the delimiter", errs.ErrUnencodableText, s)
	}

	return nil
}

func (t Text) writeField(buf *pool.ByteBuffer, s string) {
	for i := 0; i < len(s); i++ {
		if s[i] == t.Delimiter {
			_ = buf.WriteByte(t.Delimiter)
		}
		_ = buf.WriteByte(s[i])
	}
	_ = buf.WriteByte(t.Delimiter)
}
