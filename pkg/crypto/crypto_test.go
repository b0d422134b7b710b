package crypto

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomBuffer(t *testing.T, n int, seed int64) []byte {
	t.Helper()
	buf := make([]byte, n)
	r := rand.New(rand.NewSource(seed))
	_, err := r.Read(buf)
	require.NoError(t, err)
	return buf
}

func TestNextSeed(t *testing.T) {
	assert.Equal(t, uint32(0x6073), NextSeed(0))
	assert.Equal(t, uint32(0x41C64E6D+0x6073), NextSeed(1))
}

func TestCryptWords_Involution(t *testing.T) {
	orig := randomBuffer(t, 224, 1)
	buf := bytes.Clone(orig)

	CryptWords(buf, 0xDEADBEEF)
	assert.NotEqual(t, orig, buf)

	CryptWords(buf, 0xDEADBEEF)
	assert.Equal(t, orig, buf)
}

func TestCryptWords_FirstWord(t *testing.T) {
	buf := make([]byte, 2)
	CryptWords(buf, 0)
	// first post-step state is 0x00006073, high half is zero
	assert.Equal(t, []byte{0, 0}, buf)

	buf = make([]byte, 4)
	CryptWords(buf, 0)
	second := NextSeed(NextSeed(0)) >> 16
	assert.Equal(t, byte(second), buf[2])
	assert.Equal(t, byte(second>>8), buf[3])
}

func TestCryptWords_ReturnsFinalSeed(t *testing.T) {
	buf := make([]byte, 6)
	got := CryptWords(buf, 7)
	assert.Equal(t, NextSeed(NextSeed(NextSeed(7))), got)
}

func TestCryptGen3_Involution(t *testing.T) {
	orig := randomBuffer(t, 48, 2)
	buf := bytes.Clone(orig)
	CryptGen3(buf, 0x12345678)
	assert.NotEqual(t, orig, buf)
	CryptGen3(buf, 0x12345678)
	assert.Equal(t, orig, buf)
}

func TestSum16(t *testing.T) {
	assert.Equal(t, uint16(0), Sum16(nil))
	assert.Equal(t, uint16(0x0403), Sum16([]byte{0x01, 0x02, 0x02, 0x02}))
	// wraps modulo 2^16
	assert.Equal(t, uint16(0x0000), Sum16([]byte{0xFF, 0xFF, 0x01, 0x00}))
}

func TestCRC16CCITT(t *testing.T) {
	// CRC-16/CCITT-FALSE check value
	assert.Equal(t, uint16(0x29B1), CRC16CCITT([]byte("123456789")))
	assert.Equal(t, uint16(0xFFFF), CRC16CCITT(nil))
}

func TestSelector(t *testing.T) {
	assert.Equal(t, 0, Selector(0))
	assert.Equal(t, 31, Selector(0xFFFFFFFF))
	assert.Equal(t, 1, Selector(1<<13))
}

func TestBlockShuffle_Involution(t *testing.T) {
	for _, blockLen := range []int{12, 32, 56, 80} {
		orig := randomBuffer(t, 8+blockLen*BlockCount, int64(blockLen))
		for sel := 0; sel < 32; sel++ {
			buf := bytes.Clone(orig)
			BlockShuffle(buf, 8, blockLen, sel)
			BlockUnshuffle(buf, 8, blockLen, sel)
			require.Equal(t, orig, buf, "blockLen=%d selector=%d", blockLen, sel)
		}
	}
}

func TestBlockShuffle_HeaderUntouched(t *testing.T) {
	orig := randomBuffer(t, 8+4*56, 3)
	buf := bytes.Clone(orig)
	BlockShuffle(buf, 8, 56, 23)
	assert.Equal(t, orig[:8], buf[:8])
}

func TestBlockShuffle_AliasedSelectors(t *testing.T) {
	orig := randomBuffer(t, 4*32, 4)
	for sel := 24; sel < 32; sel++ {
		a := bytes.Clone(orig)
		b := bytes.Clone(orig)
		BlockUnshuffle(a, 0, 32, sel)
		BlockUnshuffle(b, 0, 32, sel-24)
		assert.Equal(t, b, a, "selector %d", sel)
	}
}

func TestBlockUnshuffle_Order(t *testing.T) {
	buf := []byte{0, 1, 2, 3}
	// row 9 = {3, 0, 1, 2}
	BlockUnshuffle(buf, 0, 1, 9)
	assert.Equal(t, []byte{3, 0, 1, 2}, buf)
}
