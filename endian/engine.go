// Package endian provides byte order utilities for the FCS data segment.
//
// The data segment declares its byte order with the $BYTEORD keyword as a
// comma separated permutation of byte positions. This package maps the two
// permutations that describe 32-bit words ("1,2,3,4" and "4,3,2,1") onto
// EndianEngine values, which combine the ByteOrder and AppendByteOrder
// interfaces from encoding/binary.
//
// # Basic Usage
//
//	engine, ok := endian.FromByteOrd(text.Pairs["$BYTEORD"])
//	if !ok {
//	    return errs.ErrUnsupportedByteOrder
//	}
//	decoder := encoding.NewFloat32RawDecoder(engine)
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
)

// $BYTEORD keywords for 32-bit words.
const (
	ByteOrdLittleEndian = "1,2,3,4"
	ByteOrdBigEndian    = "4,3,2,1"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// FromByteOrd returns the engine described by a $BYTEORD keyword value.
//
// Only the exact strings "1,2,3,4" (little-endian) and "4,3,2,1" (big-endian)
// are recognized; mixed orders such as "2,1,4,3" and any other value,
// including the empty string, report false.
func FromByteOrd(keyword string) (EndianEngine, bool) {
	switch keyword {
	case ByteOrdLittleEndian:
		return GetLittleEndianEngine(), true
	case ByteOrdBigEndian:
		return GetBigEndianEngine(), true
	default:
		return nil, false
	}
}

// ByteOrdKeyword returns the $BYTEORD keyword value for an engine.
// It reports false for engines other than the two standard library byte orders.
func ByteOrdKeyword(engine EndianEngine) (string, bool) {
	switch engine {
	case binary.LittleEndian:
		return ByteOrdLittleEndian, true
	case binary.BigEndian:
		return ByteOrdBigEndian, true
	default:
		return "", false
	}
}
