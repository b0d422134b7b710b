package save

import (
	"encoding/binary"
	"testing"

	"github.com/go-restruct/restruct"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/pkcore/pkg/codec"
	"github.com/ssargent/pkcore/pkg/crypto"
	"github.com/ssargent/pkcore/pkg/derive"
	"github.com/ssargent/pkcore/pkg/game"
)

// gen3Save builds two valid slots; the second has the higher save index
// and its sections are rotated by one.
func gen3Save(t *testing.T, gameCode uint32) []byte {
	t.Helper()
	data := make([]byte, sizeGen3Full)
	for slot, index := range []uint32{1, 2} {
		base := slot * gen3SlotSize
		for i := 0; i < gen3Sections; i++ {
			f := sectionFooter{ID: uint16((i + slot) % gen3Sections), Signature: gen3Signature, SaveIndex: index}
			require.NoError(t, writeSectionFooter(data, base+i*gen3SectionSize, f))
		}
	}
	sections, ok := activeGen3Slot(data)
	require.True(t, ok)
	binary.LittleEndian.PutUint32(data[sections[0]+gen3GameCode:], gameCode)
	return data
}

func gen4Save(t *testing.T, l gen4Layout, counters [2]uint32) []byte {
	t.Helper()
	data := make([]byte, sizeNDS)
	for p, counter := range counters {
		base := p * gen4Partition
		for _, blk := range [][2]int{{base, l.general}, {base + l.storage, l.storageSize}} {
			f := blockFooter4{Counter: counter, Size: uint32(blk[1]), Magic: l.magic}
			b, err := restruct.Pack(binary.LittleEndian, &f)
			require.NoError(t, err)
			copy(data[blk[0]+blk[1]-gen4FooterSize:], b)
			require.NoError(t, sealBlock4(data, blk[0], blk[1]))
		}
	}
	return data
}

func gen5Save(l gen5Layout) []byte {
	data := make([]byte, sizeNDS)
	crc := crypto.CRC16CCITT(data[l.table : l.table+l.tableLen])
	binary.LittleEndian.PutUint16(data[l.tableCRC:], crc)
	return data
}

func pikachu(t *testing.T, gen codec.Generation) codec.Record {
	t.Helper()
	r, err := codec.Blank(gen, false)
	require.NoError(t, err)
	r.SetEncryptionConstant(0xCAFEBABE)
	r.SetPID(0x12345678)
	r.SetSpecies(25)
	r.SetTID(1000)
	r.SetSID(2000)
	r.SetExperience(125000)
	r.SetNickname("PIKA")
	r.SetBall(4)
	r.SetAbility(9)
	for i, m := range []uint16{84, 45, 0, 0} {
		r.SetMove(i, m)
	}
	for _, s := range derive.Stats {
		r.SetIV(s, 20)
	}
	r.RefreshChecksum()
	return r
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Version
	}{
		{"emerald", gen3Save(t, 0x1234), E},
		{"ruby sapphire", gen3Save(t, 0), RS},
		{"firered leafgreen", gen3Save(t, 1), FRLG},
		{"diamond pearl", gen4Save(t, gen4Layouts[0], [2]uint32{1, 2}), DP},
		{"platinum", gen4Save(t, gen4Layouts[1], [2]uint32{3, 0}), Pt},
		{"heartgold soulsilver", gen4Save(t, gen4Layouts[2], [2]uint32{1, 1}), HGSS},
		{"black white", gen5Save(gen5Layouts[0]), BW},
		{"black2 white2", gen5Save(gen5Layouts[1]), B2W2},
		{"xy", make([]byte, sizeXY), XY},
		{"oras", make([]byte, sizeORAS), ORAS},
		{"sun moon", make([]byte, sizeSM), SM},
		{"ultra sun moon", make([]byte, sizeUSUM), USUM},
		{"lets go", make([]byte, sizeLGPE), LGPE},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Detect(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestDetectUnknown(t *testing.T) {
	for _, size := range []int{0, 0x1000, sizeGen3Full, sizeNDS} {
		_, err := Detect(make([]byte, size))
		assert.ErrorIs(t, err, ErrUnknownFormat, "size %#x", size)
	}
	_, err := Open(make([]byte, 12))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestVersionGeneration(t *testing.T) {
	assert.Equal(t, game.Three, FRLG.Generation())
	assert.Equal(t, game.Four, HGSS.Generation())
	assert.Equal(t, game.Five, B2W2.Generation())
	assert.Equal(t, game.Six, ORAS.Generation())
	assert.Equal(t, game.Seven, USUM.Generation())
	assert.Equal(t, game.LGPE, LGPE.Generation())
	assert.Equal(t, "HGSS", HGSS.String())
	assert.Equal(t, "unknown", VersionUnknown.String())
}

func TestGen3ActiveSlotAndRoundTrip(t *testing.T) {
	data := gen3Save(t, 2)
	s, err := Open(data)
	require.NoError(t, err)
	assert.Equal(t, E, s.Version())
	assert.Equal(t, 14, s.BoxCount())
	assert.Equal(t, 30, s.SlotsPerBox())

	g := s.(*container).store.(*gen3)
	assert.Equal(t, gen3SlotSize+13*gen3SectionSize, g.sections[0])

	// box 1 slot 19 straddles sections five and six
	r := pikachu(t, game.Three)
	require.NoError(t, s.SetBoxRecord(1, 19, r))
	got, err := s.BoxRecord(1, 19)
	require.NoError(t, err)
	assert.Equal(t, uint16(25), got.Species())
	assert.Equal(t, "PIKA", got.Nickname())
	assert.True(t, got.ChecksumValid())

	last := pikachu(t, game.Three)
	require.NoError(t, s.SetBoxRecord(13, 29, last))
	got, err = s.BoxRecord(13, 29)
	require.NoError(t, err)
	assert.Equal(t, uint16(25), got.Species())

	s.Finalize()
	for id, off := range g.sections {
		f, err := readSectionFooter(data, off)
		require.NoError(t, err)
		assert.Equal(t, sectionChecksum(data[off:off+gen3SectionLength[id]]), f.Checksum, "section %d", id)
	}
}

func TestGen4PicksNewerPartition(t *testing.T) {
	data := gen4Save(t, gen4Layouts[1], [2]uint32{3, 7})
	s, err := Open(data)
	require.NoError(t, err)
	assert.Equal(t, Pt, s.Version())
	g := s.(*container).store.(*gen4)
	assert.Equal(t, gen4Partition, g.base)

	// a corrupt backup leaves the primary in charge
	data[gen4Partition] ^= 0xFF
	s, err = Open(data)
	require.NoError(t, err)
	assert.Equal(t, 0, s.(*container).store.(*gen4).base)
}

func TestGen4BoxAndFinalize(t *testing.T) {
	l := gen4Layouts[2]
	data := gen4Save(t, l, [2]uint32{1, 0})
	s, err := Open(data)
	require.NoError(t, err)
	require.Equal(t, HGSS, s.Version())

	require.NoError(t, s.SetBoxRecord(17, 29, pikachu(t, game.Four)))
	s.Finalize()

	f, err := readBlockFooter4(data, l.storage, l.storageSize)
	require.NoError(t, err)
	assert.Equal(t, crypto.CRC16CCITT(data[l.storage:l.storage+l.storageSize-gen4FooterSize]), f.Checksum)

	v, err := Detect(data)
	require.NoError(t, err)
	assert.Equal(t, HGSS, v)

	got, err := s.BoxRecord(17, 29)
	require.NoError(t, err)
	assert.Equal(t, uint16(25), got.Species())
}

func TestGen5Finalize(t *testing.T) {
	data := gen5Save(gen5Layouts[0])
	s, err := Open(data)
	require.NoError(t, err)
	require.Equal(t, BW, s.Version())

	require.NoError(t, s.SetBoxRecord(0, 0, pikachu(t, game.Five)))
	require.NoError(t, s.SetPartyRecord(0, pikachu(t, game.Five)))
	s.Finalize()

	v, err := Detect(data)
	require.NoError(t, err)
	assert.Equal(t, BW, v)

	crc := crypto.CRC16CCITT(data[gen5BoxStart : gen5BoxStart+gen5BoxBlock])
	assert.Equal(t, crc, binary.LittleEndian.Uint16(data[gen5BoxStart+gen5BoxBlock+2:]))
	assert.Equal(t, crc, binary.LittleEndian.Uint16(data[gen5Layouts[0].table+2:]))
}

func TestBoxRecordsAreStoredEncrypted(t *testing.T) {
	data := make([]byte, sizeXY)
	s, err := Open(data)
	require.NoError(t, err)

	r := pikachu(t, game.Six)
	require.NoError(t, s.SetBoxRecord(2, 3, r))
	assert.False(t, r.IsEncrypted())

	raw := s.(*container).store.box(2, 3)
	assert.NotEqual(t, r.Bytes(), raw)

	got, err := s.BoxRecord(2, 3)
	require.NoError(t, err)
	assert.Equal(t, r.Bytes(), got.Bytes())
}

func TestPartyPromotesBoxRecords(t *testing.T) {
	s, err := Open(make([]byte, sizeSM))
	require.NoError(t, err)
	assert.Equal(t, 0, s.PartyCount())

	require.NoError(t, s.SetPartyRecord(0, pikachu(t, game.Seven)))
	assert.Equal(t, 1, s.PartyCount())

	p, err := s.PartyRecord(0)
	require.NoError(t, err)
	assert.True(t, p.IsParty())
	assert.Equal(t, 50, p.Level())
	assert.Equal(t, p.PartyStat(derive.HP), p.CurrentHP())

	assert.ErrorIs(t, s.SetPartyRecord(2, pikachu(t, game.Seven)), ErrSlot)
	_, err = s.PartyRecord(1)
	assert.ErrorIs(t, err, ErrSlot)
}

func TestLGPEPartyUsesStorage(t *testing.T) {
	data := make([]byte, sizeLGPE)
	s, err := Open(data)
	require.NoError(t, err)

	require.NoError(t, s.SetBoxRecord(0, 0, pikachu(t, game.LGPE)))
	require.NoError(t, s.SetPartyRecord(0, pikachu(t, game.LGPE)))

	d := s.(*container).store.(*ds)
	assert.Equal(t, 1, d.partyIndex(0))

	p, err := s.PartyRecord(0)
	require.NoError(t, err)
	assert.Equal(t, uint16(25), p.Species())
	boxed, err := s.BoxRecord(0, 1)
	require.NoError(t, err)
	assert.Equal(t, p.Bytes(), boxed.Bytes())
}

func TestLGPEPartyIndexOutsideStorage(t *testing.T) {
	data := make([]byte, sizeLGPE)
	s, err := Open(data)
	require.NoError(t, err)
	require.NoError(t, s.SetPartyRecord(0, pikachu(t, game.LGPE)))

	d := s.(*container).store.(*ds)
	binary.LittleEndian.PutUint16(data[d.l.party:], lgpeEmptySlot)

	assert.NotPanics(t, func() {
		_, err = s.PartyRecord(0)
	})
	assert.ErrorIs(t, err, ErrSlot)
	assert.ErrorIs(t, s.SetPartyRecord(0, pikachu(t, game.LGPE)), ErrSlot)
}

func TestBlockTableFinalize(t *testing.T) {
	data := make([]byte, sizeORAS)
	for i := 0; i < 0x300; i++ {
		data[i] = byte(i)
	}
	table := dsLayouts[ORAS].table() + blockTableHeader
	binary.LittleEndian.PutUint32(data[table:], 0x100)
	binary.LittleEndian.PutUint32(data[table+blockEntrySize:], 0x80)

	s, err := Open(data)
	require.NoError(t, err)
	s.Finalize()
	assert.Equal(t, crypto.CRC16CCITT(data[:0x100]), binary.LittleEndian.Uint16(data[table+6:]))
	assert.Equal(t, crypto.CRC16CCITT(data[0x200:0x280]), binary.LittleEndian.Uint16(data[table+blockEntrySize+6:]))
}

func TestSlotErrors(t *testing.T) {
	s, err := Open(make([]byte, sizeUSUM))
	require.NoError(t, err)

	_, err = s.BoxRecord(32, 0)
	assert.ErrorIs(t, err, ErrSlot)
	_, err = s.BoxRecord(0, -1)
	assert.ErrorIs(t, err, ErrSlot)
	assert.ErrorIs(t, s.SetBoxRecord(0, 0, pikachu(t, game.Six)), ErrGeneration)
}

func TestInvalidTransferReason(t *testing.T) {
	lgpe, err := Open(make([]byte, sizeLGPE))
	require.NoError(t, err)
	dp, err := Open(gen4Save(t, gen4Layouts[0], [2]uint32{1, 0}))
	require.NoError(t, err)
	sm, err := Open(make([]byte, sizeSM))
	require.NoError(t, err)

	treecko := pikachu(t, game.Three)
	treecko.SetSpecies(252)

	mail := pikachu(t, game.Three)
	mail.SetHeldItem(121)

	badBall := pikachu(t, game.Six)
	badBall.SetBall(40)

	badMove := pikachu(t, game.Six)
	badMove.SetMove(3, 900)

	badForm := pikachu(t, game.Six)
	badForm.SetForm(20)

	tests := []struct {
		name string
		save Save
		r    codec.Record
		want TransferReason
	}{
		{"valid", sm, pikachu(t, game.Three), ReasonNone},
		{"species outside lets go", lgpe, treecko, ReasonSpecies},
		{"downgrade", sm, pikachu(t, game.Eight), ReasonGeneration},
		{"mail", dp, mail, ReasonItem},
		{"ball", sm, badBall, ReasonBall},
		{"move", sm, badMove, ReasonMove},
		{"form", sm, badForm, ReasonForm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.save.InvalidTransferReason(tt.r))
		})
	}
	assert.Equal(t, "species", ReasonSpecies.String())
}

func TestTransfer(t *testing.T) {
	s, err := Open(make([]byte, sizeUSUM))
	require.NoError(t, err)

	out, err := s.Transfer(pikachu(t, game.Three))
	require.NoError(t, err)
	assert.Equal(t, game.Seven, out.Generation())
	assert.Equal(t, uint16(25), out.Species())
	require.NoError(t, s.SetBoxRecord(0, 0, out))

	_, err = s.Transfer(pikachu(t, game.Eight))
	assert.ErrorIs(t, err, ErrNotTransferable)
}
