//go:build bench
// +build bench

package codec

import (
	"testing"

	"github.com/ssargent/pkcore/pkg/game"
)

func BenchmarkEncryptDecrypt(b *testing.B) {
	for _, gen := range allGenerations {
		b.Run(gen.String(), func(b *testing.B) {
			r, err := Blank(gen, true)
			if err != nil {
				b.Fatal(err)
			}
			r.SetEncryptionConstant(0x12345678)
			r.SetPID(0x87654321)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				r.Encrypt()
				r.Decrypt()
			}
		})
	}
}

func BenchmarkNew(b *testing.B) {
	r, _ := Blank(game.Eight, true)
	r.SetEncryptionConstant(0xDEADBEEF)
	r.Encrypt()
	data := r.Bytes()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := New(game.Eight, data); err != nil {
			b.Fatal(err)
		}
	}
}
