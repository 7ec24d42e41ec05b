package format

import (
	"fmt"
	"strings"

	"github.com/arloliu/fcs/errs"
)

type (
	// Mode is the value of the $MODE keyword.
	Mode string
	// DataType is the value of the $DATATYPE keyword.
	DataType string
	// CompressionType selects the codec applied to exported tables.
	CompressionType uint8
)

const (
	ModeList        Mode = "L" // ModeList stores one record per event.
	ModeCorrelated  Mode = "C" // ModeCorrelated stores correlated histograms (deprecated in FCS 3.1).
	ModeUncorrelate Mode = "U" // ModeUncorrelate stores univariate histograms (deprecated in FCS 3.1).

	DataTypeInteger DataType = "I" // DataTypeInteger stores unsigned binary integers.
	DataTypeFloat   DataType = "F" // DataTypeFloat stores 32-bit IEEE 754 floats.
	DataTypeDouble  DataType = "D" // DataTypeDouble stores 64-bit IEEE 754 floats.
	DataTypeASCII   DataType = "A" // DataTypeASCII stores ASCII encoded numbers.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
	CompressionXZ   CompressionType = 0x5 // CompressionXZ represents xz (LZMA2) compression.
)

func (m Mode) String() string {
	switch m {
	case ModeList:
		return "List"
	case ModeCorrelated:
		return "Correlated"
	case ModeUncorrelate:
		return "Uncorrelated"
	default:
		return "Unknown"
	}
}

func (d DataType) String() string {
	switch d {
	case DataTypeInteger:
		return "Integer"
	case DataTypeFloat:
		return "Float"
	case DataTypeDouble:
		return "Double"
	case DataTypeASCII:
		return "ASCII"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionXZ:
		return "XZ"
	default:
		return "Unknown"
	}
}

// ParseCompressionType maps a case-insensitive name ("none", "zstd", "s2", "lz4", "xz")
// to its CompressionType. An empty name means CompressionNone.
func ParseCompressionType(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	case "xz":
		return CompressionXZ, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidCompressionType, name)
	}
}

// Extension returns the file name suffix conventionally used for the compression.
func (c CompressionType) Extension() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionS2:
		return ".s2"
	case CompressionLZ4:
		return ".lz4"
	case CompressionXZ:
		return ".xz"
	default:
		return ""
	}
}
