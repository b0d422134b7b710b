//go:build fuzz
// +build fuzz

package codec

import (
	"bytes"
	"testing"

	"github.com/ssargent/pkcore/pkg/game"
)

// FuzzDecryptEncrypt feeds arbitrary buffers through construction and a full
// encryption cycle
func FuzzDecryptEncrypt(f *testing.F) {
	f.Add(uint8(game.Six), make([]byte, 232))
	f.Add(uint8(game.Three), make([]byte, 100))
	f.Add(uint8(game.Eight), bytes.Repeat([]byte{0xA5}, 344))

	f.Fuzz(func(t *testing.T, gen uint8, data []byte) {
		r, err := New(game.Generation(gen), data)
		if err != nil {
			return
		}
		r.RefreshChecksum()
		plain := append([]byte(nil), r.Bytes()...)

		r.Encrypt()
		r.Decrypt()
		if !bytes.Equal(plain, r.Bytes()) {
			t.Fatalf("round trip mismatch for generation %d", gen)
		}
	})
}
