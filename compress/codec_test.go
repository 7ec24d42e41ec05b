package compress

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/arloliu/fcs/errs"
	"github.com/arloliu/fcs/format"
	"github.com/klauspost/compress/s2"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
)

func getAllCodecs() map[string]Codec {
	return map[string]Codec{
		"NoOp": NewNoOpCompressor(),
		"S2":   NewS2Compressor(),
		"LZ4":  NewLZ4Compressor(),
		"Zstd": NewZstdCompressor(),
		"XZ":   NewXZCompressor(),
	}
}

// csvTable builds an event table like the export package writes.
func csvTable(rows int) []byte {
	var sb strings.Builder
	sb.WriteString("FSC-A,SSC-A,FL1-A\n")
	for i := range rows {
		fmt.Fprintf(&sb, "%d.25,%d.5,%d\n", i*3, i*7%1000, i%17)
	}

	return []byte(sb.String())
}

func TestCreateCodec(t *testing.T) {
	tests := []struct {
		compression format.CompressionType
		want        Codec
	}{
		{format.CompressionNone, NewNoOpCompressor()},
		{format.CompressionZstd, NewZstdCompressor()},
		{format.CompressionS2, NewS2Compressor()},
		{format.CompressionLZ4, NewLZ4Compressor()},
		{format.CompressionXZ, NewXZCompressor()},
	}

	for _, tt := range tests {
		t.Run(tt.compression.String(), func(t *testing.T) {
			codec, err := CreateCodec(tt.compression)
			require.NoError(t, err)
			require.IsType(t, tt.want, codec)
		})
	}

	_, err := CreateCodec(format.CompressionType(0x9))
	require.ErrorIs(t, err, errs.ErrInvalidCompressionType)
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(nil)
			require.NoError(t, err)
			require.Nil(t, compressed)

			decompressed, err := codec.Decompress(nil)
			require.NoError(t, err)
			require.Nil(t, decompressed)

			compressed, err = codec.Compress([]byte{})
			require.NoError(t, err)

			decompressed, err = codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{"single_byte", []byte{0x42}},
		{"header_row", []byte("FSC-A,SSC-A\n")},
		{"binary_data", []byte{0x00, 0x00, 0x80, 0x3f, 0x00, 0x00, 0x00, 0x40}},
		{"small_table", csvTable(10)},
		{"large_table", csvTable(20_000)},
	}

	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			for _, tc := range testCases {
				t.Run(tc.name, func(t *testing.T) {
					compressed, err := codec.Compress(tc.data)
					require.NoError(t, err)

					decompressed, err := codec.Decompress(compressed)
					require.NoError(t, err)
					require.True(t, bytes.Equal(tc.data, decompressed))
				})
			}
		})
	}
}

func TestAllCodecs_CompressTables(t *testing.T) {
	table := csvTable(5_000)

	for name, codec := range getAllCodecs() {
		if name == "NoOp" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(table)
			require.NoError(t, err)
			require.Less(t, len(compressed), len(table))
		})
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	invalidInputs := map[string][]byte{
		"random_bytes":       {0xFF, 0xFF, 0xFF, 0xFF},
		"text_as_compressed": []byte("this is not compressed data"),
	}

	for codecName, codec := range getAllCodecs() {
		if codecName == "NoOp" {
			continue
		}
		t.Run(codecName, func(t *testing.T) {
			for name, data := range invalidInputs {
				t.Run(name, func(t *testing.T) {
					_, err := codec.Decompress(data)
					require.Error(t, err)
				})
			}
		})
	}
}

func TestStreamCodecs_Framing(t *testing.T) {
	table := csvTable(1_000)

	t.Run("S2", func(t *testing.T) {
		compressed, err := NewS2Compressor().Compress(table)
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(compressed, []byte("\xff\x06\x00\x00S2sTwO")), "s2 stream identifier")

		decompressed, err := io.ReadAll(s2.NewReader(bytes.NewReader(compressed)))
		require.NoError(t, err)
		require.Equal(t, table, decompressed)
	})

	t.Run("LZ4", func(t *testing.T) {
		compressed, err := NewLZ4Compressor().Compress(table)
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(compressed, []byte{0x04, 0x22, 0x4d, 0x18}), "lz4 frame magic")

		decompressed, err := io.ReadAll(lz4.NewReader(bytes.NewReader(compressed)))
		require.NoError(t, err)
		require.Equal(t, table, decompressed)

		_, err = NewLZ4Compressor().Decompress(compressed[:len(compressed)/2])
		require.Error(t, err, "truncated frame")
	})
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	const numGoroutines = 16
	table := csvTable(200)

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			var wg sync.WaitGroup
			errCh := make(chan error, numGoroutines)

			for range numGoroutines {
				wg.Add(1)
				go func() {
					defer wg.Done()
					compressed, err := codec.Compress(table)
					if err != nil {
						errCh <- err
						return
					}
					decompressed, err := codec.Decompress(compressed)
					if err != nil {
						errCh <- err
						return
					}
					if !bytes.Equal(table, decompressed) {
						errCh <- fmt.Errorf("%s: round trip mismatch", codecName)
					}
				}()
			}
			wg.Wait()
			close(errCh)

			for err := range errCh {
				require.NoError(t, err)
			}
		})
	}
}

func BenchmarkZstdCompress(b *testing.B) {
	table := csvTable(10_000)
	codec := NewZstdCompressor()

	b.SetBytes(int64(len(table)))
	b.ResetTimer()
	for b.Loop() {
		_, _ = codec.Compress(table)
	}
}
