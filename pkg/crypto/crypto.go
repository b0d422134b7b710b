// Package crypto implements the keyed stream cipher, block permutation and
// checksums used by PKM record buffers and save containers.
package crypto

import "encoding/binary"

const (
	lcgMult = 0x41C64E6D
	lcgAdd  = 0x00006073
)

// NextSeed advances the record LCG by one step
func NextSeed(seed uint32) uint32 {
	return seed*lcgMult + lcgAdd
}

// CryptWords XORs every little-endian 16-bit word of buf with the high half of
// the post-step LCG state. The operation is its own inverse. The final seed is
// returned so callers can continue a stream.
func CryptWords(buf []byte, seed uint32) uint32 {
	for i := 0; i+1 < len(buf); i += 2 {
		seed = NextSeed(seed)
		w := binary.LittleEndian.Uint16(buf[i:])
		binary.LittleEndian.PutUint16(buf[i:], w^uint16(seed>>16))
	}
	return seed
}

// CryptGen3 XORs every little-endian 32-bit word of buf with key. Generation
// three records use PID^OTID as the key.
func CryptGen3(buf []byte, key uint32) {
	for i := 0; i+3 < len(buf); i += 4 {
		w := binary.LittleEndian.Uint32(buf[i:])
		binary.LittleEndian.PutUint32(buf[i:], w^key)
	}
}

// Sum16 sums buf as little-endian 16-bit words modulo 2^16
func Sum16(buf []byte) uint16 {
	var sum uint16
	for i := 0; i+1 < len(buf); i += 2 {
		sum += binary.LittleEndian.Uint16(buf[i:])
	}
	return sum
}

// CRC16CCITT computes CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF).
func CRC16CCITT(buf []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range buf {
		crc = crcTable[byte(crc>>8)^b] ^ (crc << 8)
	}
	return crc
}

var crcTable = func() [256]uint16 {
	var t [256]uint16
	for i := range t {
		c := uint16(i) << 8
		for j := 0; j < 8; j++ {
			if c&0x8000 != 0 {
				c = c<<1 ^ 0x1021
			} else {
				c <<= 1
			}
		}
		t[i] = c
	}
	return t
}()
