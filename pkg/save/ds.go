package save

import (
	"encoding/binary"
	"fmt"

	"github.com/ssargent/pkcore/pkg/codec"
	"github.com/ssargent/pkcore/pkg/crypto"
)

const (
	blockAlign       = 0x200
	blockTableHeader = 0x14
	blockEntrySize   = 8

	lgpePartyCount = 0x0E
	lgpeEmptySlot  = 0xFFFF
)

// dsLayout describes the 3DS and Switch era saves. Those keep a block
// table near the end of the file holding the length and CRC of every block;
// blocks follow each other from offset zero, each aligned to 0x200.
type dsLayout struct {
	version Version
	size    int
	box     int
	party   int
	boxes   int
	slots   int
}

var dsLayouts = map[Version]dsLayout{
	XY:   {version: XY, size: sizeXY, box: 0x22600, party: 0x14200, boxes: 31, slots: 30},
	ORAS: {version: ORAS, size: sizeORAS, box: 0x33000, party: 0x14200, boxes: 31, slots: 30},
	SM:   {version: SM, size: sizeSM, box: 0x4E00, party: 0x1400, boxes: 32, slots: 30},
	USUM: {version: USUM, size: sizeUSUM, box: 0x5200, party: 0x1600, boxes: 32, slots: 30},
	LGPE: {version: LGPE, size: sizeLGPE, box: 0x5C00, party: 0x5A00, boxes: 40, slots: 25},
}

func (l dsLayout) table() int { return l.size - blockAlign }

type ds struct {
	data []byte
	l    dsLayout
	gen  codec.Generation
}

func open3DS(data []byte, v Version) (*ds, error) {
	l, ok := dsLayouts[v]
	if !ok || len(data) != l.size {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, v)
	}
	return &ds{data: data, l: l, gen: v.Generation()}, nil
}

func (d *ds) boxes() int { return d.l.boxes }
func (d *ds) slots() int { return d.l.slots }

func (d *ds) storageOffset(index int) int {
	return d.l.box + index*codec.BoxLength(d.gen)
}

func (d *ds) box(box, slot int) []byte {
	off := d.storageOffset(box*d.l.slots + slot)
	return append([]byte(nil), d.data[off:off+codec.BoxLength(d.gen)]...)
}

func (d *ds) setBox(box, slot int, b []byte) {
	copy(d.data[d.storageOffset(box*d.l.slots+slot):], b)
}

func (d *ds) lgpe() bool { return d.l.version == LGPE }

// The side format keeps its party in box storage; the party block lists
// storage indices.
func (d *ds) partyIndex(i int) int {
	return int(binary.LittleEndian.Uint16(d.data[d.l.party+2*i:]))
}

// partyOffset fails when a side format party entry points outside box
// storage, as an emptied or corrupt entry does.
func (d *ds) partyOffset(i int) (int, error) {
	if !d.lgpe() {
		return d.l.party + i*codec.PartyLength(d.gen), nil
	}
	idx := d.partyIndex(i)
	if idx >= d.l.boxes*d.l.slots {
		return 0, fmt.Errorf("%w: party slot %d points at storage index %#x", ErrSlot, i, idx)
	}
	return d.storageOffset(idx), nil
}

func (d *ds) partyCountOffset() int {
	if d.lgpe() {
		return d.l.party + lgpePartyCount
	}
	return d.l.party + MaxPartySize*codec.PartyLength(d.gen)
}

func (d *ds) partyCount() int     { return int(d.data[d.partyCountOffset()]) }
func (d *ds) setPartyCount(n int) { d.data[d.partyCountOffset()] = uint8(n) }

func (d *ds) party(i int) ([]byte, error) {
	off, err := d.partyOffset(i)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), d.data[off:off+codec.PartyLength(d.gen)]...), nil
}

func (d *ds) setParty(i int, b []byte) error {
	if d.lgpe() && i >= d.partyCount() {
		idx, ok := d.freeStorage()
		if !ok {
			return fmt.Errorf("%w: no free storage slot for the party", ErrSlot)
		}
		binary.LittleEndian.PutUint16(d.data[d.l.party+2*i:], uint16(idx))
	}
	off, err := d.partyOffset(i)
	if err != nil {
		return err
	}
	copy(d.data[off:], b)
	return nil
}

// freeStorage finds the first empty storage slot not used by the party
func (d *ds) freeStorage() (int, bool) {
	used := make(map[int]bool, MaxPartySize)
	for i := 0; i < d.partyCount(); i++ {
		used[d.partyIndex(i)] = true
	}
	n := codec.BoxLength(d.gen)
	for idx := 0; idx < d.l.boxes*d.l.slots; idx++ {
		if used[idx] {
			continue
		}
		off := d.storageOffset(idx)
		if empty(d.data[off : off+n]) {
			return idx, true
		}
	}
	return lgpeEmptySlot, false
}

func empty(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

// finalize recomputes the CRC of every block listed in the block table
func (d *ds) finalize() {
	table := d.l.table()
	off := 0
	for e := table + blockTableHeader; e+blockEntrySize <= d.l.size; e += blockEntrySize {
		length := int(binary.LittleEndian.Uint32(d.data[e:]))
		if length == 0 || off+length > table {
			return
		}
		crc := crypto.CRC16CCITT(d.data[off : off+length])
		binary.LittleEndian.PutUint16(d.data[e+6:], crc)
		off += (length + blockAlign - 1) &^ (blockAlign - 1)
	}
}
