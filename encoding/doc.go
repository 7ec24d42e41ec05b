// Package encoding provides the raw value codecs used for the FCS data segment.
//
// A list mode data segment with $DATATYPE F is a flat run of 32-bit IEEE 754
// floats written in the byte order named by $BYTEORD. Float32RawDecoder turns
// such a payload back into values and Float32RawEncoder produces one from
// values. Both are parameterized by an endian.EndianEngine so the same code
// serves little-endian ("1,2,3,4") and big-endian ("4,3,2,1") files.
//
// # Usage
//
//	engine, _ := endian.FromByteOrd("1,2,3,4")
//	decoder := encoding.NewFloat32RawDecoder(engine)
//
//	events := make([]float32, len(payload)/encoding.Float32Size)
//	if err := decoder.DecodeInto(events, payload); err != nil {
//	    return err
//	}
//
// Most users should call section.ParseData instead, which performs the
// $MODE/$DATATYPE/$BYTEORD dispatch before decoding.
//
// # Thread Safety
//
// Decoders are immutable values and safe for concurrent use. Encoders own a
// pooled buffer and must not be shared between goroutines.
package encoding
