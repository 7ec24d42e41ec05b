package encoding

// ColumnarEncoder accumulates fixed-width values into a byte payload.
type ColumnarEncoder[T comparable] interface {
	// Bytes returns the encoded byte slice.
	// The returned slice is valid until the next call to Write, WriteSlice, or Finish.
	// The caller should not modify the returned slice.
	Bytes() []byte

	// Len returns the number of encoded values.
	Len() int

	// Size returns the size in bytes of the encoded values.
	Size() int

	// Finish finalizes the encoding process and returns buffer resources to the pool.
	//
	// After calling Finish(), the encoder is no longer usable. Use defer to ensure
	// it's called even in error paths:
	//
	//	encoder := NewFloat32RawEncoder(engine)
	//	defer encoder.Finish()
	//
	//	encoder.WriteSlice(events)
	//	out := bytes.Clone(encoder.Bytes()) // copy before Finish
	Finish()

	// Write a single value.
	Write(data T)

	// WriteSlice encodes a slice of values.
	WriteSlice(values []T)
}

// ColumnarDecoder reads fixed-width values back out of a byte payload.
type ColumnarDecoder[T comparable] interface {
	// DecodeInto fills dst with the first len(dst) values of data.
	// It returns errs.ErrShortRead when data holds fewer than len(dst) values.
	DecodeInto(dst []T, data []byte) error
}
