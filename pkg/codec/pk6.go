package codec

import (
	"time"

	"github.com/ssargent/pkcore/pkg/derive"
	"github.com/ssargent/pkcore/pkg/game"
	"github.com/ssargent/pkcore/pkg/personal"
)

const (
	g67Species     = 0x08
	g67AbilityNum  = 0x15
	g67MarkingsU16 = 0x16
	g67PID         = 0x18
	g67Nature      = 0x1C
	g67Flags       = 0x1D
	g67EVs         = 0x1E
	g67Contest     = 0x24
	g67Markings    = 0x2A
	g67Nickname    = 0x40
	g67Moves       = 0x5A
	g67PP          = 0x62
	g67PPUps       = 0x66
	g67Relearn     = 0x6A
	g67IV32        = 0x74
	g67OT          = 0xB0
	g67EggDate     = 0xD1
	g67MetDate     = 0xD4
	g67EggLocation = 0xD8
	g67MetLocation = 0xDA
	g67MetLevel    = 0xDD
	g67HyperTrain  = 0xDE
	g67CP          = 0xFE

	modernStringLen = 0x1A
)

var g67Ribbons = [...]int{0x30, 0x34}

// hyper-training flag bit per stat (HP, Atk, Def, Spe, SpA, SpD)
var hyperTrainBit = [derive.StatCount]uint{0, 1, 2, 5, 3, 4}

// g67 is the layout shared by generation six, seven and LGPE records
type g67 struct {
	base
}

func (p *g67) displayIDs() bool { return p.l.gen != game.Six }

func (p *g67) EncryptionConstant() uint32     { return p.u32(0x00) }
func (p *g67) SetEncryptionConstant(v uint32) { p.put32(0x00, v) }
func (p *g67) Species() uint16                { return p.u16(g67Species) }
func (p *g67) SetSpecies(v uint16)            { p.put16(g67Species, v) }
func (p *g67) HeldItem() uint16               { return p.u16(0x0A) }
func (p *g67) SetHeldItem(v uint16)           { p.put16(0x0A, v) }
func (p *g67) TID() uint16                    { return p.u16(0x0C) }
func (p *g67) SetTID(v uint16)                { p.put16(0x0C, v) }
func (p *g67) SID() uint16                    { return p.u16(0x0E) }
func (p *g67) SetSID(v uint16)                { p.put16(0x0E, v) }
func (p *g67) Experience() uint32             { return p.u32(0x10) }
func (p *g67) SetExperience(v uint32)         { p.put32(0x10, v) }
func (p *g67) Ability() uint16                { return uint16(p.data[0x14]) }
func (p *g67) SetAbility(v uint16)            { p.data[0x14] = uint8(v) }
func (p *g67) PID() uint32                    { return p.u32(g67PID) }
func (p *g67) SetPID(v uint32)                { p.put32(g67PID, v) }
func (p *g67) Nature() uint8                  { return p.data[g67Nature] }
func (p *g67) SetNature(v uint8)              { p.data[g67Nature] = v }
func (p *g67) Pokerus() uint8                 { return p.data[0x2B] }
func (p *g67) SetPokerus(v uint8)             { p.data[0x2B] = v }
func (p *g67) Friendship() uint8              { return p.data[0xCA] }
func (p *g67) SetFriendship(v uint8)          { p.data[0xCA] = v }
func (p *g67) Ball() uint8                    { return p.data[0xDC] }
func (p *g67) SetBall(v uint8)                { p.data[0xDC] = v }
func (p *g67) Version() GameVersion           { return GameVersion(p.data[0xDF]) }
func (p *g67) SetVersion(v GameVersion)       { p.data[0xDF] = uint8(v) }
func (p *g67) Language() Language             { return Language(p.data[0xE3]) }
func (p *g67) SetLanguage(v Language)         { p.data[0xE3] = uint8(v) }

func (p *g67) DisplayTID() uint32 {
	if p.displayIDs() {
		return displayTID(p.TID(), p.SID())
	}
	return uint32(p.TID())
}

func (p *g67) SetDisplayTID(v uint32) {
	if !p.displayIDs() {
		p.SetTID(uint16(v))
		return
	}
	tid, sid := joinDisplay(v, p.DisplaySID())
	p.SetTID(tid)
	p.SetSID(sid)
}

func (p *g67) DisplaySID() uint32 {
	if p.displayIDs() {
		return displaySID(p.TID(), p.SID())
	}
	return uint32(p.SID())
}

func (p *g67) SetDisplaySID(v uint32) {
	if !p.displayIDs() {
		p.SetSID(uint16(v))
		return
	}
	tid, sid := joinDisplay(p.DisplayTID(), v)
	p.SetTID(tid)
	p.SetSID(sid)
}

// Markings are a byte in generation six and a word afterwards
func (p *g67) Markings() uint16 {
	if p.l.gen == game.Six {
		return uint16(p.data[g67Markings])
	}
	return p.u16(g67MarkingsU16)
}

func (p *g67) SetMarkings(v uint16) {
	if p.l.gen == game.Six {
		p.data[g67Markings] = uint8(v)
		return
	}
	p.put16(g67MarkingsU16, v)
}

func (p *g67) AbilityNumber() int { return abilitySlotFromBits(p.data[g67AbilityNum] & 7) }
func (p *g67) SetAbilityNumber(v int) {
	p.data[g67AbilityNum] = p.data[g67AbilityNum]&^7 | abilityBitsFromSlot(v)
}

func (p *g67) FatefulEncounter() bool     { return p.flag(g67Flags, 0) }
func (p *g67) SetFatefulEncounter(v bool) { p.setFlag(g67Flags, 0, v) }
func (p *g67) Gender() Gender             { return Gender(p.data[g67Flags] >> 1 & 3) }
func (p *g67) SetGender(g Gender)         { p.data[g67Flags] = p.data[g67Flags]&^0x06 | uint8(g&3)<<1 }
func (p *g67) Form() uint8                { return p.data[g67Flags] >> 3 }
func (p *g67) SetForm(v uint8)            { p.data[g67Flags] = p.data[g67Flags]&0x07 | v<<3 }

func (p *g67) EV(s Stat) int       { return p.byteStat(g67EVs, s) }
func (p *g67) SetEV(s Stat, v int) { p.setByteStat(g67EVs, s, v) }
func (p *g67) IV(s Stat) int       { return p.packedIV(g67IV32, s) }
func (p *g67) SetIV(s Stat, v int) { p.setPackedIV(g67IV32, s, v) }
func (p *g67) IsEgg() bool         { return p.flag(g67IV32+3, 6) }
func (p *g67) SetIsEgg(v bool)     { p.setFlag(g67IV32+3, 6, v) }
func (p *g67) Nicknamed() bool     { return p.flag(g67IV32+3, 7) }
func (p *g67) SetNicknamed(v bool) { p.setFlag(g67IV32+3, 7, v) }

func (p *g67) Nickname() string {
	return decodeUTF16(p.data[g67Nickname:g67Nickname+modernStringLen], terminator6)
}

func (p *g67) SetNickname(s string) {
	encodeUTF16(p.data[g67Nickname:g67Nickname+modernStringLen], s, terminator6)
}

func (p *g67) OTName() string {
	return decodeUTF16(p.data[g67OT:g67OT+modernStringLen], terminator6)
}

func (p *g67) SetOTName(s string) {
	encodeUTF16(p.data[g67OT:g67OT+modernStringLen], s, terminator6)
}

func (p *g67) Move(i int) uint16 {
	if !moveSlot(i) {
		return 0
	}
	return p.u16(g67Moves + 2*i)
}

func (p *g67) SetMove(i int, v uint16) {
	if moveSlot(i) {
		p.put16(g67Moves+2*i, v)
	}
}

func (p *g67) PP(i int) uint8 {
	if !moveSlot(i) {
		return 0
	}
	return p.data[g67PP+i]
}

func (p *g67) SetPP(i int, v uint8) {
	if moveSlot(i) {
		p.data[g67PP+i] = v
	}
}

func (p *g67) PPUp(i int) uint8 {
	if !moveSlot(i) {
		return 0
	}
	return p.data[g67PPUps+i]
}

func (p *g67) SetPPUp(i int, v uint8) {
	if moveSlot(i) {
		p.data[g67PPUps+i] = v
	}
}

func (p *g67) RelearnMove(i int) uint16 {
	if !moveSlot(i) {
		return 0
	}
	return p.u16(g67Relearn + 2*i)
}

func (p *g67) SetRelearnMove(i int, v uint16) {
	if moveSlot(i) {
		p.put16(g67Relearn+2*i, v)
	}
}

func (p *g67) MetLocation() uint16     { return p.u16(g67MetLocation) }
func (p *g67) SetMetLocation(v uint16) { p.put16(g67MetLocation, v) }
func (p *g67) EggLocation() uint16     { return p.u16(g67EggLocation) }
func (p *g67) SetEggLocation(v uint16) { p.put16(g67EggLocation, v) }
func (p *g67) MetDate() time.Time      { return p.date(g67MetDate) }
func (p *g67) SetMetDate(t time.Time)  { p.setDate(g67MetDate, t) }
func (p *g67) EggDate() time.Time      { return p.date(g67EggDate) }
func (p *g67) SetEggDate(t time.Time)  { p.setDate(g67EggDate, t) }

func (p *g67) MetLevel() int     { return int(p.data[g67MetLevel] & 0x7F) }
func (p *g67) SetMetLevel(v int) { p.data[g67MetLevel] = p.data[g67MetLevel]&0x80 | uint8(v)&0x7F }
func (p *g67) OTGender() Gender  { return Gender(p.data[g67MetLevel] >> 7) }

func (p *g67) SetOTGender(g Gender) { p.setFlag(g67MetLevel, 7, g == derive.Female) }

func (p *g67) Shiny() bool               { return isShiny(p) }
func (p *g67) SetShiny(shiny bool) error { return setShiny(p, shiny) }
func (p *g67) TSV() uint16               { return trainerShinyValue(p) }
func (p *g67) PSV() uint16               { return personalShinyValue(p) }

func (p *g67) contestStat(i int) uint8 {
	if i < 0 || i >= ContestStatCount {
		return 0
	}
	return p.data[g67Contest+i]
}

func (p *g67) setContestStat(i int, v uint8) {
	if i >= 0 && i < ContestStatCount {
		p.data[g67Contest+i] = v
	}
}

func (p *g67) hyperTrained(s Stat) bool {
	return validStat(s) && p.flag(g67HyperTrain, hyperTrainBit[s])
}

func (p *g67) setHyperTrained(s Stat, on bool) {
	if validStat(s) {
		p.setFlag(g67HyperTrain, hyperTrainBit[s], on)
	}
}

func (p *g67) ribbonWord(i int) uint32 {
	if i < 0 || i >= len(g67Ribbons) {
		return 0
	}
	return p.u32(g67Ribbons[i])
}

func (p *g67) setRibbonWord(i int, v uint32) {
	if i >= 0 && i < len(g67Ribbons) {
		p.put32(g67Ribbons[i], v)
	}
}

// ability numbers are stored as the bit 1, 2 or 4
func abilitySlotFromBits(v uint8) int {
	switch v {
	case 2:
		return 1
	case 4:
		return derive.HiddenAbilitySlot
	}
	return 0
}

func abilityBitsFromSlot(slot int) uint8 {
	if slot < 0 || slot > derive.HiddenAbilitySlot {
		slot = 0
	}
	return 1 << uint(slot)
}

// PK6 is a generation six record (X, Y, Omega Ruby, Alpha Sapphire)
type PK6 struct {
	g67
}

// NewPK6 copies data into a new generation six record
func NewPK6(data []byte) (*PK6, error) {
	r, err := New(game.Six, data)
	if err != nil {
		return nil, err
	}
	return r.(*PK6), nil
}

// ViewPK6 decodes data in place
func ViewPK6(data []byte) (*PK6, error) {
	r, err := View(game.Six, data)
	if err != nil {
		return nil, err
	}
	return r.(*PK6), nil
}

func (p *PK6) Clone() Record                    { return &PK6{g67{p.clone()}} }
func (p *PK6) UpdatePartyData(t personal.Table) { updatePartyData(p, t) }

func (p *PK6) ContestStat(i int) uint8       { return p.contestStat(i) }
func (p *PK6) SetContestStat(i int, v uint8) { p.setContestStat(i, v) }
func (p *PK6) RibbonWordCount() int          { return len(g67Ribbons) }
func (p *PK6) RibbonWord(i int) uint32       { return p.ribbonWord(i) }
func (p *PK6) SetRibbonWord(i int, v uint32) { p.setRibbonWord(i, v) }

// PK7 is a generation seven record (Sun, Moon, Ultra Sun, Ultra Moon)
type PK7 struct {
	g67
}

// NewPK7 copies data into a new generation seven record
func NewPK7(data []byte) (*PK7, error) {
	r, err := New(game.Seven, data)
	if err != nil {
		return nil, err
	}
	return r.(*PK7), nil
}

// ViewPK7 decodes data in place
func ViewPK7(data []byte) (*PK7, error) {
	r, err := View(game.Seven, data)
	if err != nil {
		return nil, err
	}
	return r.(*PK7), nil
}

func (p *PK7) Clone() Record                    { return &PK7{g67{p.clone()}} }
func (p *PK7) UpdatePartyData(t personal.Table) { updatePartyData(p, t) }

func (p *PK7) ContestStat(i int) uint8         { return p.contestStat(i) }
func (p *PK7) SetContestStat(i int, v uint8)   { p.setContestStat(i, v) }
func (p *PK7) HyperTrained(s Stat) bool        { return p.hyperTrained(s) }
func (p *PK7) SetHyperTrained(s Stat, on bool) { p.setHyperTrained(s, on) }
func (p *PK7) RibbonWordCount() int            { return len(g67Ribbons) }
func (p *PK7) RibbonWord(i int) uint32         { return p.ribbonWord(i) }
func (p *PK7) SetRibbonWord(i int, v uint32)   { p.setRibbonWord(i, v) }

// PB7 is an LGPE record. It is always party-length, stores awakening values
// where other layouts keep contest stats and carries combat power.
type PB7 struct {
	g67
}

// NewPB7 copies data into a new LGPE record
func NewPB7(data []byte) (*PB7, error) {
	r, err := New(game.LGPE, data)
	if err != nil {
		return nil, err
	}
	return r.(*PB7), nil
}

// ViewPB7 decodes data in place
func ViewPB7(data []byte) (*PB7, error) {
	r, err := View(game.LGPE, data)
	if err != nil {
		return nil, err
	}
	return r.(*PB7), nil
}

func (p *PB7) Clone() Record                    { return &PB7{g67{p.clone()}} }
func (p *PB7) UpdatePartyData(t personal.Table) { updatePartyData(p, t) }

func (p *PB7) HyperTrained(s Stat) bool        { return p.hyperTrained(s) }
func (p *PB7) SetHyperTrained(s Stat, on bool) { p.setHyperTrained(s, on) }
func (p *PB7) AV(s Stat) int                   { return p.byteStat(g67Contest, s) }
func (p *PB7) SetAV(s Stat, v int)             { p.setByteStat(g67Contest, s, v) }
func (p *PB7) CP() int                         { return int(p.u16(g67CP)) }
func (p *PB7) SetCP(v int)                     { p.put16(g67CP, uint16(clamp(v, 0, derive.MaxCP))) }
