package hash

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty segment", "", 0xef46db3751d8e999},
		{"short segment", "test", 0x4fdcca5ddb678139},
		{"long segment", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, Fingerprint([]byte(tt.data)))
		})
	}
}

func TestDigest(t *testing.T) {
	assert.Equal(t, "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262", Digest(nil))

	d := Digest([]byte("/$MODE/L/"))
	assert.Len(t, d, 64)
	assert.Equal(t, d, Digest([]byte("/$MODE/L/")))
	assert.NotEqual(t, d, Digest([]byte("/$MODE/C/")))
}

func BenchmarkFingerprint(b *testing.B) {
	data := make([]byte, 64*1024)
	rnd := rand.New(rand.NewSource(1))
	_, _ = rnd.Read(data)

	b.SetBytes(int64(len(data)))
	for b.Loop() {
		Fingerprint(data)
	}
}

func BenchmarkDigest(b *testing.B) {
	data := make([]byte, 64*1024)
	rnd := rand.New(rand.NewSource(1))
	_, _ = rnd.Read(data)

	b.SetBytes(int64(len(data)))
	for b.Loop() {
		Digest(data)
	}
}
