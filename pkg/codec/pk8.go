package codec

import (
	"time"

	"github.com/ssargent/pkcore/pkg/derive"
	"github.com/ssargent/pkcore/pkg/game"
	"github.com/ssargent/pkcore/pkg/personal"
)

const (
	pk8AbilityNum  = 0x16
	pk8PID         = 0x1C
	pk8Nature      = 0x20
	pk8StatNature  = 0x21
	pk8Flags       = 0x22
	pk8Form        = 0x24
	pk8EVs         = 0x26
	pk8Contest     = 0x2C
	pk8Nickname    = 0x58
	pk8Moves       = 0x72
	pk8PP          = 0x7A
	pk8PPUps       = 0x7E
	pk8Relearn     = 0x82
	pk8CurrentHP   = 0x8A
	pk8IV32        = 0x8C
	pk8OT          = 0xF8
	pk8EggDate     = 0x119
	pk8MetDate     = 0x11C
	pk8EggLocation = 0x120
	pk8MetLocation = 0x122
	pk8MetLevel    = 0x125
	pk8HyperTrain  = 0x126
)

var pk8Ribbons = [...]int{0x34, 0x38, 0x40, 0x44}

// PK8 is a generation eight record (Sword, Shield). Current HP lives in the
// box data, so it is readable on box-length records too.
type PK8 struct {
	base
}

// NewPK8 copies data into a new generation eight record
func NewPK8(data []byte) (*PK8, error) {
	r, err := New(game.Eight, data)
	if err != nil {
		return nil, err
	}
	return r.(*PK8), nil
}

// ViewPK8 decodes data in place
func ViewPK8(data []byte) (*PK8, error) {
	r, err := View(game.Eight, data)
	if err != nil {
		return nil, err
	}
	return r.(*PK8), nil
}

func (p *PK8) Clone() Record                    { return &PK8{p.clone()} }
func (p *PK8) UpdatePartyData(t personal.Table) { updatePartyData(p, t) }

func (p *PK8) EncryptionConstant() uint32     { return p.u32(0x00) }
func (p *PK8) SetEncryptionConstant(v uint32) { p.put32(0x00, v) }
func (p *PK8) Species() uint16                { return p.u16(0x08) }
func (p *PK8) SetSpecies(v uint16)            { p.put16(0x08, v) }
func (p *PK8) HeldItem() uint16               { return p.u16(0x0A) }
func (p *PK8) SetHeldItem(v uint16)           { p.put16(0x0A, v) }
func (p *PK8) TID() uint16                    { return p.u16(0x0C) }
func (p *PK8) SetTID(v uint16)                { p.put16(0x0C, v) }
func (p *PK8) SID() uint16                    { return p.u16(0x0E) }
func (p *PK8) SetSID(v uint16)                { p.put16(0x0E, v) }
func (p *PK8) Experience() uint32             { return p.u32(0x10) }
func (p *PK8) SetExperience(v uint32)         { p.put32(0x10, v) }
func (p *PK8) Ability() uint16                { return p.u16(0x14) }
func (p *PK8) SetAbility(v uint16)            { p.put16(0x14, v) }
func (p *PK8) Markings() uint16               { return p.u16(0x18) }
func (p *PK8) SetMarkings(v uint16)           { p.put16(0x18, v) }
func (p *PK8) PID() uint32                    { return p.u32(pk8PID) }
func (p *PK8) SetPID(v uint32)                { p.put32(pk8PID, v) }
func (p *PK8) Nature() uint8                  { return p.data[pk8Nature] }
func (p *PK8) StatNature() uint8              { return p.data[pk8StatNature] }
func (p *PK8) SetStatNature(v uint8)          { p.data[pk8StatNature] = v }
func (p *PK8) Form() uint8                    { return uint8(p.u16(pk8Form)) }
func (p *PK8) SetForm(v uint8)                { p.put16(pk8Form, uint16(v)) }
func (p *PK8) Pokerus() uint8                 { return p.data[0x32] }
func (p *PK8) SetPokerus(v uint8)             { p.data[0x32] = v }
func (p *PK8) Version() GameVersion           { return GameVersion(p.data[0xDE]) }
func (p *PK8) SetVersion(v GameVersion)       { p.data[0xDE] = uint8(v) }
func (p *PK8) Language() Language             { return Language(p.data[0xE2]) }
func (p *PK8) SetLanguage(v Language)         { p.data[0xE2] = uint8(v) }
func (p *PK8) Friendship() uint8              { return p.data[0x112] }
func (p *PK8) SetFriendship(v uint8)          { p.data[0x112] = v }
func (p *PK8) Ball() uint8                    { return p.data[0x124] }
func (p *PK8) SetBall(v uint8)                { p.data[0x124] = v }

// SetNature sets both the nature and the nature used for stats
func (p *PK8) SetNature(v uint8) {
	p.data[pk8Nature] = v
	p.data[pk8StatNature] = v
}

func (p *PK8) DisplayTID() uint32 { return displayTID(p.TID(), p.SID()) }
func (p *PK8) DisplaySID() uint32 { return displaySID(p.TID(), p.SID()) }

func (p *PK8) SetDisplayTID(v uint32) {
	tid, sid := joinDisplay(v, p.DisplaySID())
	p.SetTID(tid)
	p.SetSID(sid)
}

func (p *PK8) SetDisplaySID(v uint32) {
	tid, sid := joinDisplay(p.DisplayTID(), v)
	p.SetTID(tid)
	p.SetSID(sid)
}

func (p *PK8) AbilityNumber() int { return abilitySlotFromBits(p.data[pk8AbilityNum] & 7) }

func (p *PK8) SetAbilityNumber(v int) {
	p.data[pk8AbilityNum] = p.data[pk8AbilityNum]&^7 | abilityBitsFromSlot(v)
}

func (p *PK8) FatefulEncounter() bool     { return p.flag(pk8Flags, 0) }
func (p *PK8) SetFatefulEncounter(v bool) { p.setFlag(pk8Flags, 0, v) }
func (p *PK8) Gender() Gender             { return Gender(p.data[pk8Flags] >> 2 & 3) }
func (p *PK8) SetGender(g Gender)         { p.data[pk8Flags] = p.data[pk8Flags]&^0x0C | uint8(g&3)<<2 }

func (p *PK8) EV(s Stat) int       { return p.byteStat(pk8EVs, s) }
func (p *PK8) SetEV(s Stat, v int) { p.setByteStat(pk8EVs, s, v) }
func (p *PK8) IV(s Stat) int       { return p.packedIV(pk8IV32, s) }
func (p *PK8) SetIV(s Stat, v int) { p.setPackedIV(pk8IV32, s, v) }
func (p *PK8) IsEgg() bool         { return p.flag(pk8IV32+3, 6) }
func (p *PK8) SetIsEgg(v bool)     { p.setFlag(pk8IV32+3, 6, v) }
func (p *PK8) Nicknamed() bool     { return p.flag(pk8IV32+3, 7) }
func (p *PK8) SetNicknamed(v bool) { p.setFlag(pk8IV32+3, 7, v) }

func (p *PK8) Nickname() string {
	return decodeUTF16(p.data[pk8Nickname:pk8Nickname+modernStringLen], terminator6)
}

func (p *PK8) SetNickname(s string) {
	encodeUTF16(p.data[pk8Nickname:pk8Nickname+modernStringLen], s, terminator6)
}

func (p *PK8) OTName() string {
	return decodeUTF16(p.data[pk8OT:pk8OT+modernStringLen], terminator6)
}

func (p *PK8) SetOTName(s string) {
	encodeUTF16(p.data[pk8OT:pk8OT+modernStringLen], s, terminator6)
}

func (p *PK8) Move(i int) uint16 {
	if !moveSlot(i) {
		return 0
	}
	return p.u16(pk8Moves + 2*i)
}

func (p *PK8) SetMove(i int, v uint16) {
	if moveSlot(i) {
		p.put16(pk8Moves+2*i, v)
	}
}

func (p *PK8) PP(i int) uint8 {
	if !moveSlot(i) {
		return 0
	}
	return p.data[pk8PP+i]
}

func (p *PK8) SetPP(i int, v uint8) {
	if moveSlot(i) {
		p.data[pk8PP+i] = v
	}
}

func (p *PK8) PPUp(i int) uint8 {
	if !moveSlot(i) {
		return 0
	}
	return p.data[pk8PPUps+i]
}

func (p *PK8) SetPPUp(i int, v uint8) {
	if moveSlot(i) {
		p.data[pk8PPUps+i] = v
	}
}

func (p *PK8) RelearnMove(i int) uint16 {
	if !moveSlot(i) {
		return 0
	}
	return p.u16(pk8Relearn + 2*i)
}

func (p *PK8) SetRelearnMove(i int, v uint16) {
	if moveSlot(i) {
		p.put16(pk8Relearn+2*i, v)
	}
}

func (p *PK8) CurrentHP() int     { return int(p.u16(pk8CurrentHP)) }
func (p *PK8) SetCurrentHP(v int) { p.put16(pk8CurrentHP, uint16(v)) }

func (p *PK8) MetLocation() uint16     { return p.u16(pk8MetLocation) }
func (p *PK8) SetMetLocation(v uint16) { p.put16(pk8MetLocation, v) }
func (p *PK8) EggLocation() uint16     { return p.u16(pk8EggLocation) }
func (p *PK8) SetEggLocation(v uint16) { p.put16(pk8EggLocation, v) }
func (p *PK8) MetDate() time.Time      { return p.date(pk8MetDate) }
func (p *PK8) SetMetDate(t time.Time)  { p.setDate(pk8MetDate, t) }
func (p *PK8) EggDate() time.Time      { return p.date(pk8EggDate) }
func (p *PK8) SetEggDate(t time.Time)  { p.setDate(pk8EggDate, t) }

func (p *PK8) MetLevel() int     { return int(p.data[pk8MetLevel] & 0x7F) }
func (p *PK8) SetMetLevel(v int) { p.data[pk8MetLevel] = p.data[pk8MetLevel]&0x80 | uint8(v)&0x7F }
func (p *PK8) OTGender() Gender  { return Gender(p.data[pk8MetLevel] >> 7) }

func (p *PK8) SetOTGender(g Gender) { p.setFlag(pk8MetLevel, 7, g == derive.Female) }

func (p *PK8) ContestStat(i int) uint8 {
	if i < 0 || i >= ContestStatCount {
		return 0
	}
	return p.data[pk8Contest+i]
}

func (p *PK8) SetContestStat(i int, v uint8) {
	if i >= 0 && i < ContestStatCount {
		p.data[pk8Contest+i] = v
	}
}

func (p *PK8) HyperTrained(s Stat) bool {
	return validStat(s) && p.flag(pk8HyperTrain, hyperTrainBit[s])
}

func (p *PK8) SetHyperTrained(s Stat, on bool) {
	if validStat(s) {
		p.setFlag(pk8HyperTrain, hyperTrainBit[s], on)
	}
}

func (p *PK8) RibbonWordCount() int { return len(pk8Ribbons) }

func (p *PK8) RibbonWord(i int) uint32 {
	if i < 0 || i >= len(pk8Ribbons) {
		return 0
	}
	return p.u32(pk8Ribbons[i])
}

func (p *PK8) SetRibbonWord(i int, v uint32) {
	if i >= 0 && i < len(pk8Ribbons) {
		p.put32(pk8Ribbons[i], v)
	}
}

func (p *PK8) Shiny() bool               { return isShiny(p) }
func (p *PK8) SetShiny(shiny bool) error { return setShiny(p, shiny) }
func (p *PK8) TSV() uint16               { return trainerShinyValue(p) }
func (p *PK8) PSV() uint16               { return personalShinyValue(p) }
