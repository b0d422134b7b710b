package save

import (
	"encoding/binary"
	"fmt"

	"github.com/go-restruct/restruct"

	"github.com/ssargent/pkcore/pkg/codec"
	"github.com/ssargent/pkcore/pkg/game"
)

const (
	gen3SectionSize  = 0x1000
	gen3Sections     = 14
	gen3SlotSize     = gen3SectionSize * gen3Sections
	gen3FooterOffset = 0xFF4
	gen3Signature    = 0x08012025

	gen3GameCode  = 0xAC
	gen3PCFirst   = 5
	gen3PCChunk   = 0xF80
	gen3Boxes     = 14
	gen3BoxSlots  = 30
	gen3PartyRSE  = 0x234
	gen3PartyFRLG = 0x34
)

// Bytes of each section covered by its checksum, by section id
var gen3SectionLength = [gen3Sections]int{
	0xF2C, 0xF80, 0xF80, 0xF80, 0xF08, 0xF80, 0xF80,
	0xF80, 0xF80, 0xF80, 0xF80, 0xF80, 0xF80, 0x7D0,
}

type sectionFooter struct {
	ID        uint16
	Checksum  uint16
	Signature uint32
	SaveIndex uint32
}

func readSectionFooter(data []byte, off int) (sectionFooter, error) {
	var f sectionFooter
	err := restruct.Unpack(data[off+gen3FooterOffset:off+gen3SectionSize], binary.LittleEndian, &f)
	return f, err
}

func writeSectionFooter(data []byte, off int, f sectionFooter) error {
	b, err := restruct.Pack(binary.LittleEndian, &f)
	if err != nil {
		return err
	}
	copy(data[off+gen3FooterOffset:], b)
	return nil
}

// readGen3Slot maps section ids to their offsets in the save slot at base
func readGen3Slot(data []byte, base int) (sections [gen3Sections]int, index uint32, ok bool) {
	if base+gen3SlotSize > len(data) {
		return sections, 0, false
	}
	var seen [gen3Sections]bool
	for i := 0; i < gen3Sections; i++ {
		off := base + i*gen3SectionSize
		f, err := readSectionFooter(data, off)
		if err != nil || f.Signature != gen3Signature || f.ID >= gen3Sections || seen[f.ID] {
			return sections, 0, false
		}
		seen[f.ID] = true
		sections[f.ID] = off
		index = f.SaveIndex
	}
	return sections, index, true
}

// activeGen3Slot picks the valid slot with the highest save index
func activeGen3Slot(data []byte) ([gen3Sections]int, bool) {
	a, ia, okA := readGen3Slot(data, 0)
	b, ib, okB := readGen3Slot(data, gen3SlotSize)
	switch {
	case okA && okB:
		if ib > ia {
			return b, true
		}
		return a, true
	case okA:
		return a, true
	case okB:
		return b, true
	}
	return a, false
}

func detectGen3(data []byte) (Version, bool) {
	sections, ok := activeGen3Slot(data)
	if !ok {
		return VersionUnknown, false
	}
	switch binary.LittleEndian.Uint32(data[sections[0]+gen3GameCode:]) {
	case 0:
		return RS, true
	case 1:
		return FRLG, true
	}
	return E, true
}

func sectionChecksum(b []byte) uint16 {
	var sum uint32
	for i := 0; i+4 <= len(b); i += 4 {
		sum += binary.LittleEndian.Uint32(b[i:])
	}
	return uint16(sum>>16) + uint16(sum)
}

type gen3 struct {
	data     []byte
	sections [gen3Sections]int
	partyAt  int
}

func openGen3(data []byte, v Version) (*gen3, error) {
	sections, ok := activeGen3Slot(data)
	if !ok {
		return nil, fmt.Errorf("%w: no valid generation three slot", ErrUnknownFormat)
	}
	g := &gen3{data: data, sections: sections, partyAt: gen3PartyRSE}
	if v == FRLG {
		g.partyAt = gen3PartyFRLG
	}
	return g, nil
}

func (g *gen3) boxes() int { return gen3Boxes }
func (g *gen3) slots() int { return gen3BoxSlots }

// pcAddr maps an offset in the PC buffer, which is spread over sections
// five to thirteen, to an offset in the save.
func (g *gen3) pcAddr(off int) int {
	return g.sections[gen3PCFirst+off/gen3PCChunk] + off%gen3PCChunk
}

func (g *gen3) pcOffset(box, slot int) int {
	return 4 + (box*gen3BoxSlots+slot)*codec.BoxLength(game.Three)
}

func (g *gen3) box(box, slot int) []byte {
	off := g.pcOffset(box, slot)
	b := make([]byte, codec.BoxLength(game.Three))
	for i := range b {
		b[i] = g.data[g.pcAddr(off+i)]
	}
	return b
}

func (g *gen3) setBox(box, slot int, b []byte) {
	off := g.pcOffset(box, slot)
	for i, c := range b {
		g.data[g.pcAddr(off+i)] = c
	}
}

func (g *gen3) partyOffset(i int) int {
	return g.sections[1] + g.partyAt + 4 + i*codec.PartyLength(game.Three)
}

func (g *gen3) partyCount() int {
	return int(g.data[g.sections[1]+g.partyAt])
}

func (g *gen3) setPartyCount(n int) {
	binary.LittleEndian.PutUint32(g.data[g.sections[1]+g.partyAt:], uint32(n))
}

func (g *gen3) party(i int) ([]byte, error) {
	off := g.partyOffset(i)
	return append([]byte(nil), g.data[off:off+codec.PartyLength(game.Three)]...), nil
}

func (g *gen3) setParty(i int, b []byte) error {
	copy(g.data[g.partyOffset(i):], b)
	return nil
}

func (g *gen3) finalize() {
	for id, off := range g.sections {
		f, err := readSectionFooter(g.data, off)
		if err != nil {
			continue
		}
		f.Checksum = sectionChecksum(g.data[off : off+gen3SectionLength[id]])
		_ = writeSectionFooter(g.data, off, f)
	}
}
