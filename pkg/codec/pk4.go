package codec

import (
	"time"

	"github.com/ssargent/pkcore/pkg/derive"
	"github.com/ssargent/pkcore/pkg/game"
	"github.com/ssargent/pkcore/pkg/personal"
)

const (
	g45Species     = 0x08
	g45EVs         = 0x18
	g45Contest     = 0x1E
	g45Moves       = 0x28
	g45PP          = 0x30
	g45PPUps       = 0x34
	g45IV32        = 0x38
	g45Flags       = 0x40
	g45Nature      = 0x41
	g45Hidden      = 0x42
	g45EggLocExt   = 0x44
	g45MetLocExt   = 0x46
	g45Nickname    = 0x48
	g45Version     = 0x5F
	g45OT          = 0x68
	g45EggDate     = 0x78
	g45MetDate     = 0x7B
	g45EggLocation = 0x7E
	g45MetLocation = 0x80
	g45Ball        = 0x83
	g45MetLevel    = 0x84
	g45BallHGSS    = 0x86

	g45NicknameLen = 22
	g45OTLen       = 16

	// highest ball the Diamond/Pearl/Platinum byte can hold
	maxBallDPPt = 16
	ballPoke    = 4
)

var g45Ribbons = [...]int{0x24, 0x3C, 0x60}

// g45 is the layout shared by generation four and five records
type g45 struct {
	base
}

func (p *g45) five() bool { return p.l.gen == game.Five }

func (p *g45) EncryptionConstant() uint32   { return p.PID() }
func (p *g45) SetEncryptionConstant(uint32) {}

func (p *g45) PID() uint32              { return p.u32(0x00) }
func (p *g45) SetPID(v uint32)          { p.put32(0x00, v) }
func (p *g45) Species() uint16          { return p.u16(g45Species) }
func (p *g45) SetSpecies(v uint16)      { p.put16(g45Species, v) }
func (p *g45) HeldItem() uint16         { return p.u16(0x0A) }
func (p *g45) SetHeldItem(v uint16)     { p.put16(0x0A, v) }
func (p *g45) TID() uint16              { return p.u16(0x0C) }
func (p *g45) SetTID(v uint16)          { p.put16(0x0C, v) }
func (p *g45) SID() uint16              { return p.u16(0x0E) }
func (p *g45) SetSID(v uint16)          { p.put16(0x0E, v) }
func (p *g45) Experience() uint32       { return p.u32(0x10) }
func (p *g45) SetExperience(v uint32)   { p.put32(0x10, v) }
func (p *g45) Friendship() uint8        { return p.data[0x14] }
func (p *g45) SetFriendship(v uint8)    { p.data[0x14] = v }
func (p *g45) Ability() uint16          { return uint16(p.data[0x15]) }
func (p *g45) SetAbility(v uint16)      { p.data[0x15] = uint8(v) }
func (p *g45) Markings() uint16         { return uint16(p.data[0x16]) }
func (p *g45) SetMarkings(v uint16)     { p.data[0x16] = uint8(v) }
func (p *g45) Language() Language       { return Language(p.data[0x17]) }
func (p *g45) SetLanguage(v Language)   { p.data[0x17] = uint8(v) }
func (p *g45) Version() GameVersion     { return GameVersion(p.data[g45Version]) }
func (p *g45) SetVersion(v GameVersion) { p.data[g45Version] = uint8(v) }
func (p *g45) Pokerus() uint8           { return p.data[0x82] }
func (p *g45) SetPokerus(v uint8)       { p.data[0x82] = v }

func (p *g45) DisplayTID() uint32     { return uint32(p.TID()) }
func (p *g45) SetDisplayTID(v uint32) { p.SetTID(uint16(v)) }
func (p *g45) DisplaySID() uint32     { return uint32(p.SID()) }
func (p *g45) SetDisplaySID(v uint32) { p.SetSID(uint16(v)) }

func (p *g45) EV(s Stat) int       { return p.byteStat(g45EVs, s) }
func (p *g45) SetEV(s Stat, v int) { p.setByteStat(g45EVs, s, v) }
func (p *g45) IV(s Stat) int       { return p.packedIV(g45IV32, s) }
func (p *g45) SetIV(s Stat, v int) { p.setPackedIV(g45IV32, s, v) }

func (p *g45) IsEgg() bool                { return p.flag(g45IV32+3, 6) }
func (p *g45) SetIsEgg(v bool)            { p.setFlag(g45IV32+3, 6, v) }
func (p *g45) Nicknamed() bool            { return p.flag(g45IV32+3, 7) }
func (p *g45) SetNicknamed(v bool)        { p.setFlag(g45IV32+3, 7, v) }
func (p *g45) FatefulEncounter() bool     { return p.flag(g45Flags, 0) }
func (p *g45) SetFatefulEncounter(v bool) { p.setFlag(g45Flags, 0, v) }

func (p *g45) Gender() Gender {
	switch {
	case p.flag(g45Flags, 2):
		return derive.Genderless
	case p.flag(g45Flags, 1):
		return derive.Female
	}
	return derive.Male
}

func (p *g45) SetGender(g Gender) {
	p.setFlag(g45Flags, 1, g == derive.Female)
	p.setFlag(g45Flags, 2, g == derive.Genderless)
}

func (p *g45) Form() uint8 { return p.data[g45Flags] >> 3 }

func (p *g45) SetForm(v uint8) {
	p.data[g45Flags] = p.data[g45Flags]&0x07 | v<<3
}

// Nature is derived from the PID in generation four and stored from five on
func (p *g45) Nature() uint8 {
	if p.five() {
		return p.data[g45Nature]
	}
	return uint8(p.PID() % derive.NatureCount)
}

func (p *g45) SetNature(v uint8) {
	if p.five() {
		p.data[g45Nature] = v
	}
}

// AbilityNumber is the PID ability bit, or the hidden slot when generation
// five's hidden ability flag is set. Records that originate before
// generation five keep the slot in PID bit 0 after moving forward.
func (p *g45) AbilityNumber() int {
	if p.five() && p.flag(g45Hidden, 0) {
		return derive.HiddenAbilitySlot
	}
	return int(p.PID() >> derive.AbilityBit(p.l.gen.Number(), p.Version().Generation().Number()) & 1)
}

func (p *g45) SetAbilityNumber(v int) {
	if p.five() {
		p.setFlag(g45Hidden, 0, v == derive.HiddenAbilitySlot)
	}
}

func (p *g45) Move(i int) uint16 {
	if !moveSlot(i) {
		return 0
	}
	return p.u16(g45Moves + 2*i)
}

func (p *g45) SetMove(i int, v uint16) {
	if moveSlot(i) {
		p.put16(g45Moves+2*i, v)
	}
}

func (p *g45) PP(i int) uint8 {
	if !moveSlot(i) {
		return 0
	}
	return p.data[g45PP+i]
}

func (p *g45) SetPP(i int, v uint8) {
	if moveSlot(i) {
		p.data[g45PP+i] = v
	}
}

func (p *g45) PPUp(i int) uint8 {
	if !moveSlot(i) {
		return 0
	}
	return p.data[g45PPUps+i]
}

func (p *g45) SetPPUp(i int, v uint8) {
	if moveSlot(i) {
		p.data[g45PPUps+i] = v
	}
}

func (p *g45) Nickname() string {
	b := p.data[g45Nickname : g45Nickname+g45NicknameLen]
	if p.five() {
		return decodeUTF16(b, terminator5)
	}
	return decodeGen4(b)
}

func (p *g45) SetNickname(s string) {
	b := p.data[g45Nickname : g45Nickname+g45NicknameLen]
	if p.five() {
		encodeUTF16(b, s, terminator5)
		return
	}
	encodeGen4(b, s)
}

func (p *g45) OTName() string {
	b := p.data[g45OT : g45OT+g45OTLen]
	if p.five() {
		return decodeUTF16(b, terminator5)
	}
	return decodeGen4(b)
}

func (p *g45) SetOTName(s string) {
	b := p.data[g45OT : g45OT+g45OTLen]
	if p.five() {
		encodeUTF16(b, s, terminator5)
		return
	}
	encodeGen4(b, s)
}

// Generation four keeps Platinum/HGSS locations beside the Diamond/Pearl
// fields; the extended value wins when set.
func (p *g45) MetLocation() uint16 {
	if !p.five() {
		if v := p.u16(g45MetLocExt); v != 0 {
			return v
		}
	}
	return p.u16(g45MetLocation)
}

func (p *g45) SetMetLocation(v uint16) {
	p.put16(g45MetLocation, v)
	if !p.five() {
		p.put16(g45MetLocExt, v)
	}
}

func (p *g45) EggLocation() uint16 {
	if !p.five() {
		if v := p.u16(g45EggLocExt); v != 0 {
			return v
		}
	}
	return p.u16(g45EggLocation)
}

func (p *g45) SetEggLocation(v uint16) {
	p.put16(g45EggLocation, v)
	if !p.five() {
		p.put16(g45EggLocExt, v)
	}
}

func (p *g45) MetDate() time.Time     { return p.date(g45MetDate) }
func (p *g45) SetMetDate(t time.Time) { p.setDate(g45MetDate, t) }
func (p *g45) EggDate() time.Time     { return p.date(g45EggDate) }
func (p *g45) SetEggDate(t time.Time) { p.setDate(g45EggDate, t) }

func (p *g45) Ball() uint8 {
	if !p.five() {
		if v := p.data[g45BallHGSS]; v != 0 {
			return v
		}
	}
	return p.data[g45Ball]
}

func (p *g45) SetBall(v uint8) {
	if p.five() {
		p.data[g45Ball] = v
		return
	}
	p.data[g45BallHGSS] = v
	if v > maxBallDPPt {
		v = ballPoke
	}
	p.data[g45Ball] = v
}

func (p *g45) MetLevel() int        { return int(p.data[g45MetLevel] & 0x7F) }
func (p *g45) SetMetLevel(v int)    { p.data[g45MetLevel] = p.data[g45MetLevel]&0x80 | uint8(v)&0x7F }
func (p *g45) OTGender() Gender     { return Gender(p.data[g45MetLevel] >> 7) }
func (p *g45) SetOTGender(g Gender) { p.setFlag(g45MetLevel, 7, g == derive.Female) }

func (p *g45) ContestStat(i int) uint8 {
	if i < 0 || i >= ContestStatCount {
		return 0
	}
	return p.data[g45Contest+i]
}

func (p *g45) SetContestStat(i int, v uint8) {
	if i >= 0 && i < ContestStatCount {
		p.data[g45Contest+i] = v
	}
}

func (p *g45) RibbonWordCount() int { return len(g45Ribbons) }

func (p *g45) RibbonWord(i int) uint32 {
	if i < 0 || i >= len(g45Ribbons) {
		return 0
	}
	return p.u32(g45Ribbons[i])
}

func (p *g45) SetRibbonWord(i int, v uint32) {
	if i >= 0 && i < len(g45Ribbons) {
		p.put32(g45Ribbons[i], v)
	}
}

func (p *g45) Shiny() bool               { return isShiny(p) }
func (p *g45) SetShiny(shiny bool) error { return setShiny(p, shiny) }
func (p *g45) TSV() uint16               { return trainerShinyValue(p) }
func (p *g45) PSV() uint16               { return personalShinyValue(p) }

// PK4 is a generation four record (Diamond, Pearl, Platinum, HeartGold,
// SoulSilver).
type PK4 struct {
	g45
}

// NewPK4 copies data into a new generation four record
func NewPK4(data []byte) (*PK4, error) {
	r, err := New(game.Four, data)
	if err != nil {
		return nil, err
	}
	return r.(*PK4), nil
}

// ViewPK4 decodes data in place
func ViewPK4(data []byte) (*PK4, error) {
	r, err := View(game.Four, data)
	if err != nil {
		return nil, err
	}
	return r.(*PK4), nil
}

func (p *PK4) Clone() Record                    { return &PK4{g45{p.clone()}} }
func (p *PK4) UpdatePartyData(t personal.Table) { updatePartyData(p, t) }

// PK5 is a generation five record (Black, White, Black 2, White 2)
type PK5 struct {
	g45
}

// NewPK5 copies data into a new generation five record
func NewPK5(data []byte) (*PK5, error) {
	r, err := New(game.Five, data)
	if err != nil {
		return nil, err
	}
	return r.(*PK5), nil
}

// ViewPK5 decodes data in place
func ViewPK5(data []byte) (*PK5, error) {
	r, err := View(game.Five, data)
	if err != nil {
		return nil, err
	}
	return r.(*PK5), nil
}

func (p *PK5) Clone() Record                    { return &PK5{g45{p.clone()}} }
func (p *PK5) UpdatePartyData(t personal.Table) { updatePartyData(p, t) }
