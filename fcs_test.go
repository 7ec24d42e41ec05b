package fcs

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fcs/errs"
	"github.com/arloliu/fcs/internal/hash"
	"github.com/arloliu/fcs/section"
)

// buildFile lays out a header, text and data segment back to back.
func buildFile(t *testing.T, text string, data []byte) []byte {
	t.Helper()

	h := section.Header{
		Version: "FCS3.0",
		Text:    section.Segment{Start: section.HeaderSize, End: section.HeaderSize + len(text) - 1},
	}
	if len(data) > 0 {
		start := section.HeaderSize + len(text)
		h.Data = section.Segment{Start: start, End: start + len(data) - 1}
	}

	out := append(h.Bytes(), text...)
	out = append(out, data...)
	require.Len(t, out, section.HeaderSize+len(text)+len(data))

	return out
}

const listModeText = "/$MODE/L/$DATATYPE/F/$BYTEORD/1,2,3,4/$PAR/2/$P1N/FSC-A/$P2S/Side Scatter/"

// 1.0, 2.0, 3.0 little-endian.
var threeValuesLE = []byte{
	0x00, 0x00, 0x80, 0x3f,
	0x00, 0x00, 0x00, 0x40,
	0x00, 0x00, 0x40, 0x40,
}

func TestDecode(t *testing.T) {
	contents := buildFile(t, listModeText, threeValuesLE)

	file, err := Decode(contents)
	require.NoError(t, err)

	require.Equal(t, "FCS3.0", file.Header.Version)
	require.Equal(t, section.HeaderSize, file.Header.Text.Start)
	require.Equal(t, byte('/'), file.Text.Delimiter)
	require.Equal(t, "L", file.Text.Pairs["$MODE"])
	require.Equal(t, []float32{1, 2, 3}, file.Data.Events)

	require.Equal(t, hash.Fingerprint([]byte(listModeText)), file.TextFingerprint)
	require.Equal(t, hash.Fingerprint(threeValuesLE), file.DataFingerprint)

	t.Run("Without fingerprints", func(t *testing.T) {
		file, err := Decode(contents, WithFingerprints(false))
		require.NoError(t, err)
		require.Zero(t, file.TextFingerprint)
		require.Zero(t, file.DataFingerprint)
	})

	t.Run("Decoded file does not alias input", func(t *testing.T) {
		buf := buildFile(t, listModeText, threeValuesLE)
		file, err := Decode(buf)
		require.NoError(t, err)

		for i := range buf {
			buf[i] = 0
		}
		require.Equal(t, "L", file.Text.Pairs["$MODE"])
		require.Equal(t, []float32{1, 2, 3}, file.Data.Events)
	})
}

func TestDecodeErrors(t *testing.T) {
	t.Run("Short header", func(t *testing.T) {
		_, err := Decode([]byte("FCS3.0"))
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("Invalid header field", func(t *testing.T) {
		contents := buildFile(t, listModeText, threeValuesLE)
		copy(contents[10:18], "     abc")
		_, err := Decode(contents)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderField)

		var fieldErr *section.HeaderFieldError
		require.True(t, errors.As(err, &fieldErr))
		require.Equal(t, section.FieldTextStart, fieldErr.Field)
	})

	t.Run("Text segment past end of file", func(t *testing.T) {
		contents := buildFile(t, listModeText, threeValuesLE)
		_, err := Decode(contents[:section.HeaderSize+10])
		require.ErrorIs(t, err, errs.ErrSegmentOutOfRange)
	})

	t.Run("Data segment past end of file", func(t *testing.T) {
		contents := buildFile(t, listModeText, threeValuesLE)
		truncated := contents[:len(contents)-1]

		_, err := Decode(truncated)
		require.ErrorIs(t, err, errs.ErrSegmentOutOfRange)

		// the metadata alone is still readable
		meta, err := DecodeMetadata(truncated)
		require.NoError(t, err)
		require.Equal(t, "2", meta.Text.Pairs["$PAR"])
	})

	t.Run("Malformed text", func(t *testing.T) {
		contents := buildFile(t, "/$MODE/L/$PAR/", nil)
		_, err := Decode(contents)
		require.ErrorIs(t, err, errs.ErrInvalidText)
	})

	t.Run("Unsupported mode", func(t *testing.T) {
		contents := buildFile(t, "/$MODE/C/$DATATYPE/F/$BYTEORD/1,2,3,4/", threeValuesLE)
		_, err := Decode(contents)
		require.ErrorIs(t, err, errs.ErrUnsupportedMode)
	})

	t.Run("Unsupported byte order", func(t *testing.T) {
		contents := buildFile(t, "/$MODE/L/$DATATYPE/F/$BYTEORD/3,4,1,2/", threeValuesLE)
		_, err := Decode(contents)
		require.ErrorIs(t, err, errs.ErrUnsupportedByteOrder)
	})
}

func TestDecodeStrictEventCount(t *testing.T) {
	t.Run("Partial event", func(t *testing.T) {
		contents := buildFile(t, listModeText, threeValuesLE)
		_, err := Decode(contents, WithStrictEventCount(true))
		require.ErrorIs(t, err, errs.ErrEventCountMismatch)
	})

	t.Run("Matching TOT", func(t *testing.T) {
		contents := buildFile(t, listModeText+"$TOT/1/", threeValuesLE[:8])
		file, err := Decode(contents, WithStrictEventCount(true))
		require.NoError(t, err)
		require.Equal(t, []float32{1, 2}, file.Data.Events)
	})

	t.Run("Mismatched TOT", func(t *testing.T) {
		contents := buildFile(t, listModeText+"$TOT/5/", threeValuesLE[:8])
		_, err := Decode(contents, WithStrictEventCount(true))
		require.ErrorIs(t, err, errs.ErrEventCountMismatch)
	})
}

func TestParameters(t *testing.T) {
	file, err := Decode(buildFile(t, listModeText, threeValuesLE))
	require.NoError(t, err)

	par, err := file.ParameterCount()
	require.NoError(t, err)
	require.Equal(t, 2, par)

	names, err := file.ParameterNames()
	require.NoError(t, err)
	require.Equal(t, []string{"FSC-A", "Side Scatter"}, names)

	t.Run("Missing PAR", func(t *testing.T) {
		meta := &Metadata{Text: section.Text{Delimiter: '/', Pairs: map[string]string{}}}
		_, err := meta.ParameterCount()
		require.ErrorIs(t, err, errs.ErrMissingParameterCount)
	})

	t.Run("Invalid PAR", func(t *testing.T) {
		for _, v := range []string{"abc", "0", "-3"} {
			meta := &Metadata{Text: section.Text{Delimiter: '/', Pairs: map[string]string{"$PAR": v}}}
			_, err := meta.ParameterCount()
			require.ErrorIs(t, err, errs.ErrInvalidParameterCount, v)
		}
	})

	t.Run("Name fallback", func(t *testing.T) {
		meta := &Metadata{Text: section.Text{Delimiter: '/', Pairs: map[string]string{"$PAR": "3", "$P2N": "SSC"}}}
		names, err := meta.ParameterNames()
		require.NoError(t, err)
		require.Equal(t, []string{"P1", "SSC", "P3"}, names)
	})
}

func TestEvents(t *testing.T) {
	file, err := Decode(buildFile(t, listModeText, threeValuesLE))
	require.NoError(t, err)

	events, err := file.Events()
	require.NoError(t, err)

	var rows [][]float32
	for event := range events {
		rows = append(rows, event)
	}
	require.Equal(t, [][]float32{{1, 2}, {3}}, rows)

	count, err := file.EventCount()
	require.NoError(t, err)
	require.Equal(t, 2, count)

	t.Run("Early break", func(t *testing.T) {
		n := 0
		for range events {
			n++
			break
		}
		require.Equal(t, 1, n)
	})

	t.Run("Rows are capped", func(t *testing.T) {
		for event := range events {
			require.Equal(t, len(event), cap(event))
		}
	})

	t.Run("Missing PAR", func(t *testing.T) {
		f := &File{Metadata: Metadata{Text: section.NewText('/')}}
		_, err := f.Events()
		require.ErrorIs(t, err, errs.ErrMissingParameterCount)
	})
}

func TestEncode(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		original, err := Decode(buildFile(t, listModeText, threeValuesLE))
		require.NoError(t, err)

		encoded, err := original.Encode()
		require.NoError(t, err)

		decoded, err := Decode(encoded)
		require.NoError(t, err)
		require.Equal(t, original.Header, decoded.Header)
		require.Equal(t, original.Text, decoded.Text)
		require.Equal(t, original.Data, decoded.Data)
		require.Equal(t, original.DataFingerprint, decoded.DataFingerprint)
	})

	t.Run("Offset keywords follow layout", func(t *testing.T) {
		text := section.NewText('|')
		text.Set("$MODE", "L")
		text.Set("$DATATYPE", "F")
		text.Set("$BYTEORD", "4,3,2,1")
		text.Set("$PAR", "1")
		text.Set("$BEGINDATA", "0")
		text.Set("$ENDDATA", "0")
		text.Set("$BEGINANALYSIS", "123")
		text.Set("$ENDANALYSIS", "456")

		events := make([]float32, 2000)
		for i := range events {
			events[i] = float32(i)
		}

		file := &File{Metadata: Metadata{Text: text}, Data: section.Data{Events: events}}
		encoded, err := file.Encode()
		require.NoError(t, err)

		decoded, err := Decode(encoded)
		require.NoError(t, err)
		require.Equal(t, DefaultVersion, decoded.Header.Version)
		require.Equal(t, events, decoded.Data.Events)

		h := decoded.Header
		require.Equal(t, h.Text.End+1, h.Data.Start)
		require.Equal(t, len(encoded)-1, h.Data.End)
		require.Equal(t, strconv.Itoa(h.Data.Start), decoded.Text.Pairs["$BEGINDATA"])
		require.Equal(t, strconv.Itoa(h.Data.End), decoded.Text.Pairs["$ENDDATA"])
		require.Equal(t, "0", decoded.Text.Pairs["$BEGINANALYSIS"])
		require.Equal(t, "0", decoded.Text.Pairs["$ENDANALYSIS"])

		// the caller's text is left untouched
		require.Equal(t, "0", file.Text.Pairs["$BEGINDATA"])
	})

	t.Run("No events", func(t *testing.T) {
		text := section.NewText('/')
		text.Set("$MODE", "L")
		text.Set("$DATATYPE", "F")
		text.Set("$BYTEORD", "1,2,3,4")
		text.Set("$PAR", "1")

		encoded, err := (&File{Metadata: Metadata{Text: text}}).Encode()
		require.NoError(t, err)

		decoded, err := Decode(encoded)
		require.NoError(t, err)
		require.True(t, decoded.Header.Data.IsEmpty())
		require.Empty(t, decoded.Data.Events)
	})

	t.Run("Version too long", func(t *testing.T) {
		file, err := Decode(buildFile(t, listModeText, threeValuesLE))
		require.NoError(t, err)

		file.Header.Version = "FCS3.1-beta"
		_, err = file.Encode()
		require.ErrorIs(t, err, errs.ErrInvalidVersion)
	})

	t.Run("Unsupported data type", func(t *testing.T) {
		file, err := Decode(buildFile(t, listModeText, threeValuesLE))
		require.NoError(t, err)

		file.Text.Set("$DATATYPE", "I")
		_, err = file.Encode()
		require.ErrorIs(t, err, errs.ErrUnsupportedDataType)
	})
}

func BenchmarkDecode(b *testing.B) {
	text := section.NewText('/')
	text.Set("$MODE", "L")
	text.Set("$DATATYPE", "F")
	text.Set("$BYTEORD", "1,2,3,4")
	text.Set("$PAR", "8")

	events := make([]float32, 8*10_000)
	for i := range events {
		events[i] = float32(i) * 0.5
	}

	contents, err := (&File{Metadata: Metadata{Text: text}, Data: section.Data{Events: events}}).Encode()
	require.NoError(b, err)

	b.ReportAllocs()
	b.SetBytes(int64(len(contents)))
	for b.Loop() {
		if _, err := Decode(contents); err != nil {
			b.Fatal(err)
		}
	}
}
