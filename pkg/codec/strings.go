package codec

import (
	"encoding/binary"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

const (
	terminator3 = 0xFF
	terminator4 = 0xFFFF
	terminator5 = 0xFFFF
	terminator6 = 0x0000
)

// Western subset of the generation three character set
var (
	g3Decode = map[byte]rune{
		0x00: ' ', 0xAB: '!', 0xAC: '?', 0xAD: '.', 0xAE: '-', 0xB0: '…',
		0xB1: '“', 0xB2: '”', 0xB3: '‘', 0xB4: '’', 0xB5: '♂', 0xB6: '♀',
		0xB8: ',', 0xBA: '/',
	}
	g3Encode = map[rune]byte{}
)

// Alphanumeric subset of the generation four character set
var (
	g4Decode = map[uint16]rune{0x1DE: ' '}
	g4Encode = map[rune]uint16{}
)

func init() {
	for i := 0; i < 10; i++ {
		g3Decode[byte(0xA1+i)] = rune('0' + i)
		g4Decode[uint16(0x121+i)] = rune('0' + i)
	}
	for i := 0; i < 26; i++ {
		g3Decode[byte(0xBB+i)] = rune('A' + i)
		g3Decode[byte(0xD5+i)] = rune('a' + i)
		g4Decode[uint16(0x12B+i)] = rune('A' + i)
		g4Decode[uint16(0x145+i)] = rune('a' + i)
	}
	for k, v := range g3Decode {
		g3Encode[v] = k
	}
	for k, v := range g4Decode {
		g4Encode[v] = k
	}
}

func decodeGen3(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		if c == terminator3 {
			break
		}
		if r, ok := g3Decode[c]; ok {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// encodeGen3 writes s into dst followed by a terminator when room remains.
// Characters outside the table are dropped.
func encodeGen3(dst []byte, s string) {
	n := 0
	for _, r := range s {
		c, ok := g3Encode[r]
		if !ok {
			continue
		}
		if n >= len(dst) {
			break
		}
		dst[n] = c
		n++
	}
	for ; n < len(dst); n++ {
		dst[n] = terminator3
	}
}

func decodeGen4(b []byte) string {
	var sb strings.Builder
	for i := 0; i+1 < len(b); i += 2 {
		c := binary.LittleEndian.Uint16(b[i:])
		if c == terminator4 {
			break
		}
		if r, ok := g4Decode[c]; ok {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func encodeGen4(dst []byte, s string) {
	clear(dst)
	n := 0
	for _, r := range s {
		c, ok := g4Encode[r]
		if !ok {
			continue
		}
		if n+4 > len(dst) {
			break
		}
		binary.LittleEndian.PutUint16(dst[n:], c)
		n += 2
	}
	binary.LittleEndian.PutUint16(dst[n:], terminator4)
}

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

func decodeUTF16(b []byte, term uint16) string {
	n := 0
	for n+1 < len(b) && binary.LittleEndian.Uint16(b[n:]) != term {
		n += 2
	}
	s, err := utf16le.NewDecoder().Bytes(b[:n])
	if err != nil {
		return ""
	}
	return string(s)
}

// encodeUTF16 writes s into dst, truncated so that a terminator always fits
func encodeUTF16(dst []byte, s string, term uint16) {
	clear(dst)
	enc, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		enc = nil
	}
	if limit := len(dst) - 2; len(enc) > limit {
		enc = enc[:limit&^1]
	}
	copy(dst, enc)
	binary.LittleEndian.PutUint16(dst[len(enc):], term)
}
