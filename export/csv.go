package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/arloliu/fcs/compress"
	"github.com/arloliu/fcs/format"
	"github.com/arloliu/fcs/internal/options"
	"github.com/arloliu/fcs/internal/pool"
)

// DefaultSeparator separates columns unless WithSeparator is given.
const DefaultSeparator = ','

// ShortestPrecision writes every value in plain decimal notation, never with an
// exponent, using the fewest digits that still parse back to the same float32.
const ShortestPrecision = -1

var (
	// ErrInvalidSeparator is returned for a separator that would be ambiguous
	// inside a row.
	ErrInvalidSeparator = errors.New("invalid column separator")
	// ErrInvalidPrecision is returned for a precision below ShortestPrecision
	// or above 9 significant digits.
	ErrInvalidPrecision = errors.New("invalid float precision")
)

// maxPrecision is the number of significant digits that identifies any float32.
const maxPrecision = 9

// CSVWriter renders event rows as a delimited text table.
type CSVWriter struct {
	separator   byte
	precision   int
	header      []string
	compression format.CompressionType
	codec       compress.Codec
}

// CSVOption configures a CSVWriter.
type CSVOption = options.Option[*CSVWriter]

// WithSeparator sets the column separator. It must be a tab or a printable
// ASCII byte that cannot appear in a formatted value or a quoted name.
func WithSeparator(sep byte) CSVOption {
	return options.New(func(w *CSVWriter) error {
		if !validSeparator(sep) {
			return fmt.Errorf("%w: %q", ErrInvalidSeparator, sep)
		}
		w.separator = sep

		return nil
	})
}

// WithPrecision sets the number of significant digits per value.
// ShortestPrecision restores the default.
func WithPrecision(digits int) CSVOption {
	return options.New(func(w *CSVWriter) error {
		if digits == 0 || digits < ShortestPrecision || digits > maxPrecision {
			return fmt.Errorf("%w: %d", ErrInvalidPrecision, digits)
		}
		w.precision = digits

		return nil
	})
}

// WithHeaderRow writes names as the first row. Names that contain the
// separator, a double quote or a line break are quoted.
func WithHeaderRow(names []string) CSVOption {
	return options.NoError(func(w *CSVWriter) {
		w.header = names
	})
}

// WithCompression compresses the rendered table.
func WithCompression(compressionType format.CompressionType) CSVOption {
	return options.New(func(w *CSVWriter) error {
		codec, err := compress.CreateCodec(compressionType)
		if err != nil {
			return err
		}
		w.compression = compressionType
		w.codec = codec

		return nil
	})
}

// NewCSVWriter creates a writer with the given options applied over the
// defaults: comma separated, shortest precision, no header row, no compression.
func NewCSVWriter(opts ...CSVOption) (*CSVWriter, error) {
	w := &CSVWriter{
		separator:   DefaultSeparator,
		precision:   ShortestPrecision,
		compression: format.CompressionNone,
		codec:       compress.NewNoOpCompressor(),
	}
	if err := options.Apply(w, opts...); err != nil {
		return nil, err
	}

	return w, nil
}

// Compression returns the codec applied to rendered tables.
func (w *CSVWriter) Compression() format.CompressionType {
	return w.compression
}

// Render formats all rows and compresses the result.
//
// Returns:
//   - []byte: Table owned by the caller
//   - error: Compression errors
func (w *CSVWriter) Render(rows iter.Seq[[]float32]) ([]byte, error) {
	buf := pool.GetTableBuffer()
	defer pool.PutTableBuffer(buf)

	w.render(buf, rows)

	if w.compression == format.CompressionNone {
		return bytes.Clone(buf.Bytes()), nil
	}

	out, err := w.codec.Compress(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to compress table with %s: %w", w.compression, err)
	}

	return out, nil
}

// WriteTable renders rows and writes the result to dst.
func (w *CSVWriter) WriteTable(dst io.Writer, rows iter.Seq[[]float32]) (int64, error) {
	if w.compression == format.CompressionNone {
		buf := pool.GetTableBuffer()
		defer pool.PutTableBuffer(buf)

		w.render(buf, rows)

		return buf.WriteTo(dst)
	}

	table, err := w.Render(rows)
	if err != nil {
		return 0, err
	}

	n, err := dst.Write(table)

	return int64(n), err
}

func (w *CSVWriter) render(buf *pool.ByteBuffer, rows iter.Seq[[]float32]) {
	if len(w.header) > 0 {
		for i, name := range w.header {
			if i > 0 {
				_ = buf.WriteByte(w.separator)
			}
			w.writeName(buf, name)
		}
		_ = buf.WriteByte('\n')
	}

	scratch := make([]byte, 0, 32)
	for row := range rows {
		for i, v := range row {
			if i > 0 {
				_ = buf.WriteByte(w.separator)
			}
			scratch = w.appendValue(scratch[:0], v)
			_, _ = buf.Write(scratch)
		}
		_ = buf.WriteByte('\n')
	}
}

func (w *CSVWriter) appendValue(dst []byte, v float32) []byte {
	if w.precision == ShortestPrecision {
		return strconv.AppendFloat(dst, float64(v), 'f', -1, 32)
	}

	return strconv.AppendFloat(dst, float64(v), 'g', w.precision, 32)
}

func (w *CSVWriter) writeName(buf *pool.ByteBuffer, name string) {
	if !strings.ContainsAny(name, "\"\r\n") && strings.IndexByte(name, w.separator) < 0 {
		_, _ = buf.WriteString(name)
		return
	}

	_ = buf.WriteByte('"')
	_, _ = buf.WriteString(strings.ReplaceAll(name, `"`, `""`))
	_ = buf.WriteByte('"')
}

func validSeparator(sep byte) bool {
	if sep == '\t' {
		return true
	}
	if sep < ' ' || sep > '~' {
		return false
	}

	return strings.IndexByte("0123456789+-.eEinfaINFA\"", sep) < 0
}
