package encoding

import (
	"math"

	"github.com/arloliu/fcs/endian"
	"github.com/arloliu/fcs/errs"
	"github.com/arloliu/fcs/internal/pool"
)

// Float32Size is the encoded width of one value in bytes.
const Float32Size = 4

// Float32RawEncoder encodes 32-bit float values in their IEEE 754 binary
// representation using the byte order of its endian engine.
type Float32RawEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

var _ ColumnarEncoder[float32] = (*Float32RawEncoder)(nil)

// NewFloat32RawEncoder creates a new raw float32 encoder using the specified endian engine.
// The encoder borrows a buffer from the segment pool until Finish is called.
func NewFloat32RawEncoder(engine endian.EndianEngine) *Float32RawEncoder {
	return &Float32RawEncoder{
		engine: engine,
		buf:    pool.GetSegmentBuffer(),
	}
}

// Write encodes a single value.
//
// Panics if Finish() has been called.
func (e *Float32RawEncoder) Write(val float32) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count++
	e.buf.Grow(Float32Size)
	e.buf.B = e.engine.AppendUint32(e.buf.B, math.Float32bits(val))
}

// WriteSlice encodes all values with a single buffer growth.
//
// Panics if Finish() has been called.
func (e *Float32RawEncoder) WriteSlice(values []float32) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	valLen := len(values)
	if valLen == 0 {
		return
	}
	e.count += valLen

	startIdx := e.buf.Len()
	e.buf.ExtendOrGrow(valLen * Float32Size)

	for i, v := range values {
		offset := startIdx + i*Float32Size
		e.engine.PutUint32(e.buf.Slice(offset, offset+Float32Size), math.Float32bits(v))
	}
}

// Bytes returns the encoded payload. The slice references the pooled buffer and
// is only valid until Finish.
//
// Panics if Finish() has been called.
func (e *Float32RawEncoder) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// Len returns the number of encoded values.
func (e *Float32RawEncoder) Len() int {
	return e.count
}

// Size returns the size in bytes of the encoded values.
//
// Panics if Finish() has been called.
func (e *Float32RawEncoder) Size() int {
	if e.buf == nil {
		panic("encoder already finished - cannot access size after Finish()")
	}

	return e.buf.Len()
}

// Finish returns the buffer to the pool. The encoder is unusable afterwards.
func (e *Float32RawEncoder) Finish() {
	if e.buf != nil {
		pool.PutSegmentBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// Float32RawDecoder decodes raw 32-bit float values.
//
// The decoder is immutable and stateless, so it is returned and passed by value.
type Float32RawDecoder struct {
	engine endian.EndianEngine
}

var _ ColumnarDecoder[float32] = Float32RawDecoder{}

// NewFloat32RawDecoder creates a new raw float32 decoder using the specified endian engine.
func NewFloat32RawDecoder(engine endian.EndianEngine) Float32RawDecoder {
	return Float32RawDecoder{engine: engine}
}

// DecodeInto fills dst with len(dst) values decoded from the start of data.
// Trailing bytes beyond len(dst) values are ignored.
//
// Returns:
//   - error: errs.ErrShortRead if data holds fewer than len(dst) complete values
func (d Float32RawDecoder) DecodeInto(dst []float32, data []byte) error {
	if len(data) < len(dst)*Float32Size {
		return errs.ErrShortRead
	}

	for i := range dst {
		start := i * Float32Size
		dst[i] = math.Float32frombits(d.engine.Uint32(data[start : start+Float32Size]))
	}

	return nil
}
