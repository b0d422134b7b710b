package codec

import (
	"encoding/binary"
	"time"

	"github.com/ssargent/pkcore/pkg/crypto"
	"github.com/ssargent/pkcore/pkg/derive"
	"github.com/ssargent/pkcore/pkg/game"
)

type scheme uint8

const (
	// 32-bit XOR keyed by PID^OTID, order PID%24, unencrypted party tail
	schemeGen3 scheme = iota
	// box keyed by the checksum, tail keyed by the PID
	schemeGen45
	// box and tail both keyed by the encryption constant
	schemeModern
)

// layout holds the per-generation geometry shared by every accessor
type layout struct {
	gen      Generation
	boxLen   int
	partyLen int
	header   int
	blockLen int
	checksum int
	scheme   scheme

	// sentinel offsets of words that are zero in decrypted records
	sentinels []int
	sentinel  int // 2 or 4

	level int
	hp    int
	stats int
}

func (l *layout) cryptEnd() int {
	return l.header + crypto.BlockCount*l.blockLen
}

var layouts = map[Generation]*layout{
	game.Three: {gen: game.Three, boxLen: 80, partyLen: 100, header: 0x20, blockLen: 12, checksum: 0x1C,
		scheme: schemeGen3, level: 0x54, hp: 0x56, stats: 0x58},
	game.Four: {gen: game.Four, boxLen: 136, partyLen: 236, header: 8, blockLen: 32, checksum: 6,
		scheme: schemeGen45, sentinels: []int{0x64}, sentinel: 4, level: 0x8C, hp: 0x8E, stats: 0x90},
	game.Five: {gen: game.Five, boxLen: 136, partyLen: 220, header: 8, blockLen: 32, checksum: 6,
		scheme: schemeGen45, sentinels: []int{0x64}, sentinel: 4, level: 0x8C, hp: 0x8E, stats: 0x90},
	game.Six: {gen: game.Six, boxLen: 232, partyLen: 260, header: 8, blockLen: 56, checksum: 6,
		scheme: schemeModern, sentinels: []int{0x58, 0xC8}, sentinel: 2, level: 0xEC, hp: 0xF0, stats: 0xF2},
	game.Seven: {gen: game.Seven, boxLen: 232, partyLen: 260, header: 8, blockLen: 56, checksum: 6,
		scheme: schemeModern, sentinels: []int{0x58, 0xC8}, sentinel: 2, level: 0xEC, hp: 0xF0, stats: 0xF2},
	game.LGPE: {gen: game.LGPE, boxLen: 260, partyLen: 260, header: 8, blockLen: 56, checksum: 6,
		scheme: schemeModern, sentinels: []int{0x58, 0xC8}, sentinel: 2, level: 0xEC, hp: 0xF0, stats: 0xF2},
	game.Eight: {gen: game.Eight, boxLen: 328, partyLen: 344, header: 8, blockLen: 80, checksum: 6,
		scheme: schemeModern, sentinels: []int{0x70, 0x110}, sentinel: 2, level: 0x148, hp: 0x8A, stats: 0x14A},
}

func layoutFor(gen Generation) *layout {
	return layouts[gen]
}

// looksEncrypted applies the sentinel heuristic. Generation three has no
// sentinel words, so a record whose checksum does not verify is taken as
// encrypted.
func (l *layout) looksEncrypted(data []byte) bool {
	if l.scheme == schemeGen3 {
		sum := crypto.Sum16(data[l.header:l.cryptEnd()])
		return sum != binary.LittleEndian.Uint16(data[l.checksum:])
	}
	for _, off := range l.sentinels {
		var v uint32
		if l.sentinel == 4 {
			v = binary.LittleEndian.Uint32(data[off:])
		} else {
			v = uint32(binary.LittleEndian.Uint16(data[off:]))
		}
		if v == 0 {
			return false
		}
	}
	return true
}

// base owns the buffer and the encryption state of a record
type base struct {
	data      []byte
	owned     bool
	encrypted bool
	l         *layout
}

func (b *base) Generation() Generation { return b.l.gen }
func (b *base) Bytes() []byte          { return b.data }
func (b *base) Length() int            { return len(b.data) }
func (b *base) Owned() bool            { return b.owned }
func (b *base) IsEncrypted() bool      { return b.encrypted }

// IsParty reports whether the record carries party data. LGPE records are
// always party-length.
func (b *base) IsParty() bool {
	return len(b.data) == b.l.partyLen && b.l.partyLen > b.l.cryptEnd()
}

func (b *base) clone() base {
	return base{data: append([]byte(nil), b.data...), owned: true, encrypted: b.encrypted, l: b.l}
}

// Checksum computes the checksum of the decrypted data region. The value is
// meaningless while the record is encrypted.
func (b *base) Checksum() uint16 {
	return crypto.Sum16(b.data[b.l.header:b.l.cryptEnd()])
}

func (b *base) StoredChecksum() uint16 {
	return b.u16(b.l.checksum)
}

func (b *base) RefreshChecksum() {
	if b.encrypted {
		return
	}
	b.put16(b.l.checksum, b.Checksum())
}

func (b *base) ChecksumValid() bool {
	if b.encrypted {
		c := b.clone()
		c.Decrypt()
		return c.Checksum() == c.StoredChecksum()
	}
	return b.Checksum() == b.StoredChecksum()
}

// Encrypt refreshes the checksum, shuffles the blocks and applies the
// keystream. It does nothing when the record is already encrypted.
func (b *base) Encrypt() {
	if b.encrypted {
		return
	}
	b.RefreshChecksum()
	l := b.l
	key := b.u32(0)
	switch l.scheme {
	case schemeGen3:
		crypto.BlockShuffle(b.data, l.header, l.blockLen, int(key%24))
		crypto.CryptGen3(b.data[l.header:l.cryptEnd()], key^b.u32(4))
	case schemeGen45:
		crypto.BlockShuffle(b.data, l.header, l.blockLen, crypto.Selector(key))
		crypto.CryptWords(b.data[l.header:l.cryptEnd()], uint32(b.u16(l.checksum)))
		if b.hasTail() {
			crypto.CryptWords(b.data[l.cryptEnd():], key)
		}
	case schemeModern:
		crypto.BlockShuffle(b.data, l.header, l.blockLen, crypto.Selector(key))
		crypto.CryptWords(b.data[l.header:l.cryptEnd()], key)
		if b.hasTail() {
			crypto.CryptWords(b.data[l.cryptEnd():], key)
		}
	}
	b.encrypted = true
}

// Decrypt reverses Encrypt. It does not validate the checksum.
func (b *base) Decrypt() {
	if !b.encrypted {
		return
	}
	l := b.l
	key := b.u32(0)
	switch l.scheme {
	case schemeGen3:
		crypto.CryptGen3(b.data[l.header:l.cryptEnd()], key^b.u32(4))
		crypto.BlockUnshuffle(b.data, l.header, l.blockLen, int(key%24))
	case schemeGen45:
		if b.hasTail() {
			crypto.CryptWords(b.data[l.cryptEnd():], key)
		}
		crypto.CryptWords(b.data[l.header:l.cryptEnd()], uint32(b.u16(l.checksum)))
		crypto.BlockUnshuffle(b.data, l.header, l.blockLen, crypto.Selector(key))
	case schemeModern:
		if b.hasTail() {
			crypto.CryptWords(b.data[l.cryptEnd():], key)
		}
		crypto.CryptWords(b.data[l.header:l.cryptEnd()], key)
		crypto.BlockUnshuffle(b.data, l.header, l.blockLen, crypto.Selector(key))
	}
	b.encrypted = false
}

func (b *base) hasTail() bool {
	return b.l.scheme != schemeGen3 && len(b.data) > b.l.cryptEnd()
}

func (b *base) Level() int {
	if !b.IsParty() {
		return NotApplicable
	}
	return int(b.data[b.l.level])
}

func (b *base) SetLevel(v int) {
	if b.IsParty() {
		b.data[b.l.level] = uint8(v)
	}
}

func (b *base) CurrentHP() int {
	if !b.IsParty() {
		return NotApplicable
	}
	return int(b.u16(b.l.hp))
}

func (b *base) SetCurrentHP(v int) {
	if b.IsParty() {
		b.put16(b.l.hp, uint16(v))
	}
}

func (b *base) PartyStat(s Stat) int {
	if !b.IsParty() || !validStat(s) {
		return NotApplicable
	}
	return int(b.u16(b.l.stats + 2*int(s)))
}

func (b *base) SetPartyStat(s Stat, v int) {
	if b.IsParty() && validStat(s) {
		b.put16(b.l.stats+2*int(s), uint16(v))
	}
}

func validStat(s Stat) bool {
	return s >= 0 && int(s) < derive.StatCount
}

func (b *base) u16(off int) uint16 { return binary.LittleEndian.Uint16(b.data[off:]) }
func (b *base) u32(off int) uint32 { return binary.LittleEndian.Uint32(b.data[off:]) }

func (b *base) put16(off int, v uint16) { binary.LittleEndian.PutUint16(b.data[off:], v) }
func (b *base) put32(off int, v uint32) { binary.LittleEndian.PutUint32(b.data[off:], v) }

func (b *base) flag(off int, bit uint) bool { return b.data[off]>>bit&1 == 1 }

func (b *base) setFlag(off int, bit uint, on bool) {
	if on {
		b.data[off] |= 1 << bit
	} else {
		b.data[off] &^= 1 << bit
	}
}

// packed IV word: 5 bits per stat in HP, Atk, Def, Spe, SpA, SpD order
func (b *base) packedIV(off int, s Stat) int {
	if !validStat(s) {
		return 0
	}
	return int(b.u32(off) >> (5 * uint(s)) & 0x1F)
}

func (b *base) setPackedIV(off int, s Stat, v int) {
	if !validStat(s) {
		return
	}
	shift := 5 * uint(s)
	w := b.u32(off) &^ (0x1F << shift)
	b.put32(off, w|uint32(clamp(v, 0, 31))<<shift)
}

func (b *base) byteStat(off int, s Stat) int {
	if !validStat(s) {
		return 0
	}
	return int(b.data[off+int(s)])
}

func (b *base) setByteStat(off int, s Stat, v int) {
	if validStat(s) {
		b.data[off+int(s)] = uint8(clamp(v, 0, 255))
	}
}

// dates are stored as year-2000, month, day; all zero means unset
func (b *base) date(off int) time.Time {
	y, m, d := b.data[off], b.data[off+1], b.data[off+2]
	if y == 0 && m == 0 && d == 0 {
		return time.Time{}
	}
	return time.Date(2000+int(y), time.Month(m), int(d), 0, 0, 0, 0, time.UTC)
}

func (b *base) setDate(off int, t time.Time) {
	if t.IsZero() {
		b.data[off], b.data[off+1], b.data[off+2] = 0, 0, 0
		return
	}
	b.data[off] = uint8(clamp(t.Year()-2000, 0, 255))
	b.data[off+1] = uint8(t.Month())
	b.data[off+2] = uint8(t.Day())
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func moveSlot(i int) bool {
	return i >= 0 && i < 4
}

// display IDs split the 32-bit trainer ID into six decimal digits
func displayTID(tid, sid uint16) uint32 {
	return (uint32(sid)<<16 | uint32(tid)) % 1_000_000
}

func displaySID(tid, sid uint16) uint32 {
	return (uint32(sid)<<16 | uint32(tid)) / 1_000_000
}

func joinDisplay(dtid, dsid uint32) (tid, sid uint16) {
	id := dsid*1_000_000 + dtid
	return uint16(id), uint16(id >> 16)
}
