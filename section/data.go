package section

import (
	"bytes"
	"fmt"

	"github.com/arloliu/fcs/encoding"
	"github.com/arloliu/fcs/endian"
	"github.com/arloliu/fcs/errs"
	"github.com/arloliu/fcs/format"
)

// undefinedKeyword stands in for a missing dispatch keyword in error messages.
const undefinedKeyword = "undefined"

// Data holds the decoded values of a list mode data segment.
//
// Events is the flattened row-major matrix of events × $PAR parameters.
type Data struct {
	Events []float32
}

// Len returns the number of values.
func (d Data) Len() int {
	return len(d.Events)
}

// ParseData decodes a data segment as described by text.
//
// The keywords are checked in order: $MODE must be "L", $DATATYPE must be "F"
// and $BYTEORD must be "1,2,3,4" or "4,3,2,1". The segment then decodes into
// len(data)/4 values; 1 to 3 trailing bytes that do not form a whole value
// are dropped.
//
// Returns:
//   - Data: Decoded values
//   - error: errs.ErrUnsupportedMode, errs.ErrUnsupportedDataType,
//     errs.ErrUnsupportedByteOrder or errs.ErrShortRead
func ParseData(text Text, data []byte) (Data, error) {
	engine, err := dataEngine(text)
	if err != nil {
		return Data{}, err
	}

	events := make([]float32, len(data)/encoding.Float32Size)
	if err := encoding.NewFloat32RawDecoder(engine).DecodeInto(events, data); err != nil {
		return Data{}, err
	}

	return Data{Events: events}, nil
}

// EncodeData serializes data with the layout text describes. It applies the
// same keyword checks as ParseData.
//
// Returns:
//   - []byte: Encoded segment owned by the caller
//   - error: errs.ErrUnsupportedMode, errs.ErrUnsupportedDataType or errs.ErrUnsupportedByteOrder
func EncodeData(text Text, data Data) ([]byte, error) {
	engine, err := dataEngine(text)
	if err != nil {
		return nil, err
	}

	encoder := encoding.NewFloat32RawEncoder(engine)
	defer encoder.Finish()

	encoder.WriteSlice(data.Events)

	return bytes.Clone(encoder.Bytes()), nil
}

// dataEngine validates the dispatch keywords and returns the byte order engine.
func dataEngine(text Text) (endian.EndianEngine, error) {
	mode := lookupOr(text, KeyMode, undefinedKeyword)
	if format.Mode(mode) != format.ModeList {
		return nil, fmt.Errorf("%w: %s %q", errs.ErrUnsupportedMode, KeyMode, mode)
	}

	dataType := lookupOr(text, KeyDataType, undefinedKeyword)
	if format.DataType(dataType) != format.DataTypeFloat {
		return nil, fmt.Errorf("%w: %s %q", errs.ErrUnsupportedDataType, KeyDataType, dataType)
	}

	byteOrd, ok := text.Pairs[KeyByteOrd]
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", errs.ErrUnsupportedByteOrder, KeyByteOrd, undefinedKeyword)
	}
	engine, ok := endian.FromByteOrd(byteOrd)
	if !ok {
		return nil, fmt.Errorf("%w: %s %q", errs.ErrUnsupportedByteOrder, KeyByteOrd, byteOrd)
	}

	return engine, nil
}

func lookupOr(text Text, key, fallback string) string {
	if v, ok := text.Pairs[key]; ok {
		return v
	}

	return fallback
}
