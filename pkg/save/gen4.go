package save

import (
	"encoding/binary"
	"fmt"

	"github.com/go-restruct/restruct"

	"github.com/ssargent/pkcore/pkg/codec"
	"github.com/ssargent/pkcore/pkg/crypto"
	"github.com/ssargent/pkcore/pkg/game"
)

const (
	gen4Partition  = 0x40000
	gen4FooterSize = 0x14
	gen4Boxes      = 18
	gen4BoxSlots   = 30

	magicDP = 0x20060623
	magicPt = 0x20070903
)

// gen4Layout places the general and storage blocks of one game inside a
// partition
type gen4Layout struct {
	version     Version
	general     int
	storage     int
	storageSize int
	magic       uint32
	party       int
	boxStart    int
	boxStride   int
}

var gen4Layouts = []gen4Layout{
	{version: DP, general: 0xC100, storage: 0xC100, storageSize: 0x121E0, magic: magicDP, party: 0x94, boxStart: 4, boxStride: 0xFF0},
	{version: Pt, general: 0xCF2C, storage: 0xCF2C, storageSize: 0x121E4, magic: magicPt, party: 0x9C, boxStart: 4, boxStride: 0xFF0},
	{version: HGSS, general: 0xF628, storage: 0xF700, storageSize: 0x12310, magic: magicDP, party: 0x94, boxStart: 0, boxStride: 0x1000},
}

// blockFooter4 closes every general and storage block
type blockFooter4 struct {
	Link     uint32
	Counter  uint32
	Size     uint32
	Magic    uint32
	Reserved uint16
	Checksum uint16
}

func readBlockFooter4(data []byte, start, size int) (blockFooter4, error) {
	var f blockFooter4
	off := start + size - gen4FooterSize
	err := restruct.Unpack(data[off:off+gen4FooterSize], binary.LittleEndian, &f)
	return f, err
}

// sealBlock4 rewrites the footer checksum of the block at start
func sealBlock4(data []byte, start, size int) error {
	f, err := readBlockFooter4(data, start, size)
	if err != nil {
		return err
	}
	f.Checksum = crypto.CRC16CCITT(data[start : start+size-gen4FooterSize])
	b, err := restruct.Pack(binary.LittleEndian, &f)
	if err != nil {
		return err
	}
	copy(data[start+size-gen4FooterSize:], b)
	return nil
}

// generalValid checks the general block footer of the partition at base
func (l gen4Layout) generalValid(data []byte, base int) (blockFooter4, bool) {
	f, err := readBlockFooter4(data, base, l.general)
	if err != nil {
		return f, false
	}
	ok := f.Size == uint32(l.general) && f.Magic == l.magic &&
		f.Checksum == crypto.CRC16CCITT(data[base:base+l.general-gen4FooterSize])
	return f, ok
}

// detectGen4 returns the matching layout and the base of its newer
// partition
func detectGen4(data []byte) (gen4Layout, int, bool) {
	for _, l := range gen4Layouts {
		a, okA := l.generalValid(data, 0)
		b, okB := l.generalValid(data, gen4Partition)
		switch {
		case okA && okB:
			if b.Counter > a.Counter {
				return l, gen4Partition, true
			}
			return l, 0, true
		case okA:
			return l, 0, true
		case okB:
			return l, gen4Partition, true
		}
	}
	return gen4Layout{}, 0, false
}

type gen4 struct {
	data []byte
	base int
	l    gen4Layout
}

func openGen4(data []byte, v Version) (*gen4, error) {
	l, base, ok := detectGen4(data)
	if !ok || l.version != v {
		return nil, fmt.Errorf("%w: no valid generation four partition", ErrUnknownFormat)
	}
	return &gen4{data: data, base: base, l: l}, nil
}

func (g *gen4) boxes() int { return gen4Boxes }
func (g *gen4) slots() int { return gen4BoxSlots }

func (g *gen4) boxOffset(box, slot int) int {
	return g.base + g.l.storage + g.l.boxStart + box*g.l.boxStride + slot*codec.BoxLength(game.Four)
}

func (g *gen4) box(box, slot int) []byte {
	off := g.boxOffset(box, slot)
	return append([]byte(nil), g.data[off:off+codec.BoxLength(game.Four)]...)
}

func (g *gen4) setBox(box, slot int, b []byte) { copy(g.data[g.boxOffset(box, slot):], b) }

func (g *gen4) partyOffset(i int) int {
	return g.base + g.l.party + 4 + i*codec.PartyLength(game.Four)
}

func (g *gen4) partyCount() int { return int(g.data[g.base+g.l.party]) }

func (g *gen4) setPartyCount(n int) {
	binary.LittleEndian.PutUint32(g.data[g.base+g.l.party:], uint32(n))
}

func (g *gen4) party(i int) ([]byte, error) {
	off := g.partyOffset(i)
	return append([]byte(nil), g.data[off:off+codec.PartyLength(game.Four)]...), nil
}

func (g *gen4) setParty(i int, b []byte) error {
	copy(g.data[g.partyOffset(i):], b)
	return nil
}

// finalize reseals both blocks of the active partition
func (g *gen4) finalize() {
	_ = sealBlock4(g.data, g.base, g.l.general)
	_ = sealBlock4(g.data, g.base+g.l.storage, g.l.storageSize)
}
