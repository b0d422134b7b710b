package codec

import (
	"strings"
	"time"

	"github.com/ssargent/pkcore/pkg/derive"
	"github.com/ssargent/pkcore/pkg/game"
	"github.com/ssargent/pkcore/pkg/personal"
)

// PK3 is a generation three record. Nature, gender, ability and the Unown
// letter are all derived from the PID; the record has no dates.
type PK3 struct {
	base
}

const (
	pk3Nickname = 0x08
	pk3OT       = 0x14
	pk3Species  = 0x20
	pk3Moves    = 0x2C
	pk3PP       = 0x34
	pk3EVs      = 0x38
	pk3Contest  = 0x3E
	pk3Origins  = 0x46
	pk3IV32     = 0x48
	pk3Ribbons  = 0x4C

	pk3NicknameLen = 10
	pk3OTLen       = 7
)

// NewPK3 copies data into a new generation three record
func NewPK3(data []byte) (*PK3, error) {
	r, err := New(game.Three, data)
	if err != nil {
		return nil, err
	}
	return r.(*PK3), nil
}

// ViewPK3 decodes data in place
func ViewPK3(data []byte) (*PK3, error) {
	r, err := View(game.Three, data)
	if err != nil {
		return nil, err
	}
	return r.(*PK3), nil
}

func (p *PK3) Clone() Record { return &PK3{p.clone()} }

func (p *PK3) UpdatePartyData(t personal.Table) { updatePartyData(p, t) }

func (p *PK3) EncryptionConstant() uint32   { return p.PID() }
func (p *PK3) SetEncryptionConstant(uint32) {}

func (p *PK3) PID() uint32     { return p.u32(0x00) }
func (p *PK3) SetPID(v uint32) { p.put32(0x00, v) }
func (p *PK3) TID() uint16     { return p.u16(0x04) }
func (p *PK3) SetTID(v uint16) { p.put16(0x04, v) }
func (p *PK3) SID() uint16     { return p.u16(0x06) }
func (p *PK3) SetSID(v uint16) { p.put16(0x06, v) }

func (p *PK3) DisplayTID() uint32     { return uint32(p.TID()) }
func (p *PK3) SetDisplayTID(v uint32) { p.SetTID(uint16(v)) }
func (p *PK3) DisplaySID() uint32     { return uint32(p.SID()) }
func (p *PK3) SetDisplaySID(v uint32) { p.SetSID(uint16(v)) }

func (p *PK3) Nickname() string { return decodeGen3(p.data[pk3Nickname : pk3Nickname+pk3NicknameLen]) }
func (p *PK3) SetNickname(s string) {
	encodeGen3(p.data[pk3Nickname:pk3Nickname+pk3NicknameLen], s)
}

func (p *PK3) OTName() string { return decodeGen3(p.data[pk3OT : pk3OT+pk3OTLen]) }
func (p *PK3) SetOTName(s string) {
	encodeGen3(p.data[pk3OT:pk3OT+pk3OTLen], s)
}

// Nicknamed compares the nickname with the species name, as the format
// stores no flag.
func (p *PK3) Nicknamed() bool {
	nick := p.Nickname()
	name := personalTable(game.Three).Name(p.Species())
	if name == "" {
		return nick != ""
	}
	return !strings.EqualFold(nick, name)
}

func (p *PK3) SetNicknamed(bool) {}

func (p *PK3) Language() Language     { return Language(p.data[0x12]) }
func (p *PK3) SetLanguage(v Language) { p.data[0x12] = uint8(v) }
func (p *PK3) Markings() uint16       { return uint16(p.data[0x1B]) }
func (p *PK3) SetMarkings(v uint16)   { p.data[0x1B] = uint8(v) }

// Species converts the stored internal index to a national number
func (p *PK3) Species() uint16     { return SpeciesFromInternal3(p.u16(pk3Species)) }
func (p *PK3) SetSpecies(v uint16) { p.put16(pk3Species, SpeciesToInternal3(v)) }

func (p *PK3) Form() uint8 {
	if p.Species() == speciesUnown {
		return derive.UnownForm(p.PID())
	}
	return 0
}

func (p *PK3) SetForm(uint8) {}

func (p *PK3) HeldItem() uint16       { return p.u16(0x22) }
func (p *PK3) SetHeldItem(v uint16)   { p.put16(0x22, v) }
func (p *PK3) Experience() uint32     { return p.u32(0x24) }
func (p *PK3) SetExperience(v uint32) { p.put32(0x24, v) }
func (p *PK3) Friendship() uint8      { return p.data[0x29] }
func (p *PK3) SetFriendship(v uint8)  { p.data[0x29] = v }

func (p *PK3) PPUp(i int) uint8 {
	if !moveSlot(i) {
		return 0
	}
	return p.data[0x28] >> (2 * uint(i)) & 3
}

func (p *PK3) SetPPUp(i int, v uint8) {
	if !moveSlot(i) {
		return
	}
	shift := 2 * uint(i)
	p.data[0x28] = p.data[0x28]&^(3<<shift) | (v&3)<<shift
}

func (p *PK3) Move(i int) uint16 {
	if !moveSlot(i) {
		return 0
	}
	return p.u16(pk3Moves + 2*i)
}

func (p *PK3) SetMove(i int, v uint16) {
	if moveSlot(i) {
		p.put16(pk3Moves+2*i, v)
	}
}

func (p *PK3) PP(i int) uint8 {
	if !moveSlot(i) {
		return 0
	}
	return p.data[pk3PP+i]
}

func (p *PK3) SetPP(i int, v uint8) {
	if moveSlot(i) {
		p.data[pk3PP+i] = v
	}
}

func (p *PK3) EV(s Stat) int       { return p.byteStat(pk3EVs, s) }
func (p *PK3) SetEV(s Stat, v int) { p.setByteStat(pk3EVs, s, v) }

func (p *PK3) ContestStat(i int) uint8 {
	if i < 0 || i >= ContestStatCount {
		return 0
	}
	return p.data[pk3Contest+i]
}

func (p *PK3) SetContestStat(i int, v uint8) {
	if i >= 0 && i < ContestStatCount {
		p.data[pk3Contest+i] = v
	}
}

func (p *PK3) Pokerus() uint8          { return p.data[0x44] }
func (p *PK3) SetPokerus(v uint8)      { p.data[0x44] = v }
func (p *PK3) MetLocation() uint16     { return uint16(p.data[0x45]) }
func (p *PK3) SetMetLocation(v uint16) { p.data[0x45] = uint8(v) }
func (p *PK3) EggLocation() uint16     { return 0 }
func (p *PK3) SetEggLocation(uint16)   {}

func (p *PK3) MetDate() time.Time   { return time.Time{} }
func (p *PK3) SetMetDate(time.Time) {}
func (p *PK3) EggDate() time.Time   { return time.Time{} }
func (p *PK3) SetEggDate(time.Time) {}

// origins word: met level 0-6, version 7-10, ball 11-14, OT gender 15
func (p *PK3) origins() uint16 { return p.u16(pk3Origins) }

func (p *PK3) setOrigins(shift uint, mask uint16, v uint16) {
	w := p.origins() &^ (mask << shift)
	p.put16(pk3Origins, w|(v&mask)<<shift)
}

func (p *PK3) MetLevel() int            { return int(p.origins() & 0x7F) }
func (p *PK3) SetMetLevel(v int)        { p.setOrigins(0, 0x7F, uint16(v)) }
func (p *PK3) Version() GameVersion     { return GameVersion(p.origins() >> 7 & 0xF) }
func (p *PK3) SetVersion(v GameVersion) { p.setOrigins(7, 0xF, uint16(v)) }
func (p *PK3) Ball() uint8              { return uint8(p.origins() >> 11 & 0xF) }
func (p *PK3) SetBall(v uint8)          { p.setOrigins(11, 0xF, uint16(v)) }
func (p *PK3) OTGender() Gender         { return Gender(p.origins() >> 15) }
func (p *PK3) SetOTGender(g Gender)     { p.setOrigins(15, 1, uint16(g)) }

func (p *PK3) IV(s Stat) int       { return p.packedIV(pk3IV32, s) }
func (p *PK3) SetIV(s Stat, v int) { p.setPackedIV(pk3IV32, s, v) }
func (p *PK3) IsEgg() bool         { return p.flag(pk3IV32+3, 6) }
func (p *PK3) SetIsEgg(v bool)     { p.setFlag(pk3IV32+3, 6, v) }

// AbilityNumber reads the ability bit beside the IVs
func (p *PK3) AbilityNumber() int {
	if p.flag(pk3IV32+3, 7) {
		return 1
	}
	return 0
}

func (p *PK3) SetAbilityNumber(v int) { p.setFlag(pk3IV32+3, 7, v == 1) }

func (p *PK3) Ability() uint16 {
	return personalTable(game.Three).Info(p.Species(), 0).Ability(p.AbilityNumber())
}

// SetAbility selects the slot holding v, if any
func (p *PK3) SetAbility(v uint16) {
	if slot := personalTable(game.Three).Info(p.Species(), 0).AbilitySlot(v); slot >= 0 && slot < 2 {
		p.SetAbilityNumber(slot)
	}
}

func (p *PK3) FatefulEncounter() bool     { return p.flag(pk3Ribbons+3, 7) }
func (p *PK3) SetFatefulEncounter(v bool) { p.setFlag(pk3Ribbons+3, 7, v) }

func (p *PK3) RibbonWordCount() int { return 1 }

func (p *PK3) RibbonWord(i int) uint32 {
	if i != 0 {
		return 0
	}
	return p.u32(pk3Ribbons)
}

func (p *PK3) SetRibbonWord(i int, v uint32) {
	if i == 0 {
		p.put32(pk3Ribbons, v)
	}
}

func (p *PK3) Nature() uint8   { return uint8(p.PID() % derive.NatureCount) }
func (p *PK3) SetNature(uint8) {}

func (p *PK3) Gender() Gender {
	ratio := personalTable(game.Three).Info(p.Species(), 0).GenderRatio
	return derive.GenderFromRatio(p.PID(), ratio)
}

func (p *PK3) SetGender(Gender) {}

func (p *PK3) Shiny() bool               { return isShiny(p) }
func (p *PK3) SetShiny(shiny bool) error { return setShiny(p, shiny) }
func (p *PK3) TSV() uint16               { return trainerShinyValue(p) }
func (p *PK3) PSV() uint16               { return personalShinyValue(p) }
