package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOctalRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 7, 8, 511, 4096, 1<<33 - 1}
	for _, n := range cases {
		enc := encodeOctal(n)
		assert.Equal(t, byte(0), enc[11], "field must be NUL-terminated")
		assert.Equal(t, n, decodeOctal(enc[:]))
	}
}

func TestDecodeOctalStopsAtNul(t *testing.T) {
	buf := []byte("17\x0000000000")
	assert.Equal(t, uint64(017), decodeOctal(buf))
}

func TestDecodeOctalEmptyField(t *testing.T) {
	buf := make([]byte, octalFieldLen)
	assert.Equal(t, uint64(0), decodeOctal(buf))
}

func TestBlocksNeeded(t *testing.T) {
	assert.Equal(t, uint64(0), blocksNeeded(0))
	assert.Equal(t, uint64(1), blocksNeeded(1))
	assert.Equal(t, uint64(1), blocksNeeded(PayloadSize))
	assert.Equal(t, uint64(2), blocksNeeded(PayloadSize+1))
}
