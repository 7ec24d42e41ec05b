package format

import (
	"testing"

	"github.com/arloliu/fcs/errs"
	"github.com/stretchr/testify/require"
)

func TestModeString(t *testing.T) {
	require.Equal(t, "List", ModeList.String())
	require.Equal(t, "Correlated", ModeCorrelated.String())
	require.Equal(t, "Uncorrelated", ModeUncorrelate.String())
	require.Equal(t, "Unknown", Mode("H").String())
}

func TestDataTypeString(t *testing.T) {
	require.Equal(t, "Float", DataTypeFloat.String())
	require.Equal(t, "Integer", DataTypeInteger.String())
	require.Equal(t, "Double", DataTypeDouble.String())
	require.Equal(t, "ASCII", DataTypeASCII.String())
	require.Equal(t, "Unknown", DataType("").String())
}

func TestParseCompressionType(t *testing.T) {
	tests := []struct {
		name string
		want CompressionType
	}{
		{"", CompressionNone},
		{"none", CompressionNone},
		{"ZSTD", CompressionZstd},
		{" s2 ", CompressionS2},
		{"lz4", CompressionLZ4},
		{"Xz", CompressionXZ},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCompressionType(tt.name)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := ParseCompressionType("gzip")
	require.ErrorIs(t, err, errs.ErrInvalidCompressionType)
}

func TestCompressionTypeExtension(t *testing.T) {
	require.Equal(t, "", CompressionNone.Extension())
	require.Equal(t, ".zst", CompressionZstd.Extension())
	require.Equal(t, ".s2", CompressionS2.Extension())
	require.Equal(t, ".lz4", CompressionLZ4.Extension())
	require.Equal(t, ".xz", CompressionXZ.Extension())
	require.Equal(t, "XZ", CompressionXZ.String())
	require.Equal(t, "Unknown", CompressionType(0).String())
}
