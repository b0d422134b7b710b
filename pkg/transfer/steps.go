package transfer

import (
	"fmt"

	"github.com/ssargent/pkcore/pkg/codec"
	"github.com/ssargent/pkcore/pkg/derive"
	"github.com/ssargent/pkcore/pkg/game"
)

// Met locations stamped by the transfer tools
const (
	LocationPalPark      = 55
	LocationPokeTransfer = 30001
)

const pokeBall = 4

type edge struct{ from, to codec.Generation }

// route describes one conversion step. items maps a held item into the
// destination's numbering; nil keeps the value. ribbons marks steps whose
// ribbon words share a layout.
type route struct {
	items   func(uint16) (uint16, bool)
	ribbons bool
	finish  func(*step)
}

var routes = map[edge]route{
	{game.Three, game.Four}:  {items: ItemFromGen3, finish: fromPK3},
	{game.Four, game.Five}:   {ribbons: true, finish: fromPK4},
	{game.Five, game.Six}:    {finish: fromPK5},
	{game.Six, game.Seven}:   {ribbons: true, finish: fromPK6},
	{game.Seven, game.Eight}: {ribbons: true},
	{game.Seven, game.LGPE}:  {},
	{game.LGPE, game.Eight}:  {},
}

type step struct {
	c        *Converter
	rep      *Report
	route    route
	src, dst codec.Record
	limits   game.Limits
}

func (c *Converter) step(src codec.Record, to codec.Generation, rep *Report) (codec.Record, error) {
	rt, ok := routes[edge{src.Generation(), to}]
	if !ok {
		return nil, fmt.Errorf("%w: %s to %s", ErrNoRoute, src.Generation(), to)
	}
	dst, err := codec.Blank(to, src.IsParty())
	if err != nil {
		return nil, err
	}
	s := &step{c: c, rep: rep, route: rt, src: src, dst: dst, limits: game.LimitsFor(to)}
	s.copyCommon()
	s.resolveAbility()
	s.copyCapabilities()
	if rt.finish != nil {
		rt.finish(s)
	}
	if dst.IsParty() {
		dst.UpdatePartyData(c.tables.For(to))
	}
	return dst, nil
}

func (s *step) drop(field string) {
	s.rep.Dropped = append(s.rep.Dropped, Drop{From: s.src.Generation(), To: s.dst.Generation(), Field: field})
}

func (s *step) copyCommon() {
	src, dst := s.src, s.dst

	dst.SetEncryptionConstant(src.EncryptionConstant())
	dst.SetPID(src.PID())
	dst.SetSpecies(src.Species())
	dst.SetForm(src.Form())
	dst.SetTID(src.TID())
	dst.SetSID(src.SID())
	dst.SetExperience(src.Experience())
	dst.SetNature(src.Nature())
	dst.SetGender(src.Gender())
	s.copyItem()

	for i := 0; i < 4; i++ {
		move := src.Move(i)
		if move > s.limits.MaxMove {
			s.drop(fmt.Sprintf("move %d", i+1))
			continue
		}
		dst.SetMove(i, move)
		dst.SetPP(i, src.PP(i))
		dst.SetPPUp(i, src.PPUp(i))
	}
	for _, st := range derive.Stats {
		dst.SetIV(st, src.IV(st))
		dst.SetEV(st, src.EV(st))
	}

	dst.SetNickname(src.Nickname())
	dst.SetNicknamed(src.Nicknamed())
	dst.SetIsEgg(src.IsEgg())
	dst.SetFatefulEncounter(src.FatefulEncounter())
	dst.SetLanguage(src.Language())
	dst.SetOTName(src.OTName())
	dst.SetOTGender(src.OTGender())
	dst.SetVersion(src.Version())
	dst.SetFriendship(src.Friendship())
	dst.SetPokerus(src.Pokerus())
	dst.SetMarkings(src.Markings())

	dst.SetMetDate(src.MetDate())
	dst.SetEggDate(src.EggDate())
	dst.SetMetLocation(src.MetLocation())
	dst.SetEggLocation(src.EggLocation())
	dst.SetMetLevel(src.MetLevel())
	if ball := src.Ball(); ball <= s.limits.MaxBall {
		dst.SetBall(ball)
	} else {
		s.drop("ball")
		dst.SetBall(pokeBall)
	}
}

func (s *step) copyItem() {
	item := s.src.HeldItem()
	if item == 0 {
		return
	}
	if s.route.items != nil {
		mapped, ok := s.route.items(item)
		if !ok {
			s.drop("held item")
			return
		}
		item = mapped
	}
	if item > s.limits.MaxItem {
		s.drop("held item")
		return
	}
	s.dst.SetHeldItem(item)
}

// resolveAbility keeps the slot when the destination table agrees with the
// stored ability and copies the literal value otherwise.
func (s *step) resolveAbility() {
	slot := s.src.AbilityNumber()
	ability := s.src.Ability()
	info := s.c.tables.For(s.dst.Generation()).Info(s.src.Species(), s.src.Form())

	s.dst.SetAbilityNumber(slot)
	if ability != 0 && info.Ability(slot) == ability {
		s.dst.SetAbility(info.Ability(slot))
		return
	}
	s.rep.LiteralAbility = true
	s.c.logger.Debug("ability copied literally",
		"species", s.src.Species(), "ability", ability, "slot", slot,
		"to", s.dst.Generation().String())
	s.dst.SetAbility(ability)
}

func (s *step) copyCapabilities() {
	if from, ok := s.src.(codec.ContestStatter); ok {
		to, ok := s.dst.(codec.ContestStatter)
		lost := false
		for i := 0; i < codec.ContestStatCount; i++ {
			v := from.ContestStat(i)
			if ok {
				to.SetContestStat(i, v)
			} else if v != 0 {
				lost = true
			}
		}
		if lost {
			s.drop("contest stats")
		}
	}

	if from, ok := s.src.(codec.HyperTrainer); ok {
		to, ok := s.dst.(codec.HyperTrainer)
		lost := false
		for _, st := range derive.Stats {
			on := from.HyperTrained(st)
			if ok {
				to.SetHyperTrained(st, on)
			} else if on {
				lost = true
			}
		}
		if lost {
			s.drop("hyper training")
		}
	}

	if from, ok := s.src.(codec.Relearner); ok {
		to, ok := s.dst.(codec.Relearner)
		lost := false
		for i := 0; i < 4; i++ {
			m := from.RelearnMove(i)
			if ok {
				to.SetRelearnMove(i, m)
			} else if m != 0 {
				lost = true
			}
		}
		if lost {
			s.drop("relearn moves")
		}
	}

	if from, ok := s.src.(codec.Awakener); ok {
		if _, ok := s.dst.(codec.Awakener); !ok {
			for _, st := range derive.Stats {
				if from.AV(st) != 0 {
					s.drop("awakening values")
					break
				}
			}
		}
	}
	if from, ok := s.src.(codec.CPHolder); ok {
		if _, ok := s.dst.(codec.CPHolder); !ok && from.CP() != 0 {
			s.drop("combat power")
		}
	}

	s.copyRibbons()
}

func (s *step) copyRibbons() {
	from, ok := s.src.(codec.RibbonHolder)
	if !ok {
		return
	}
	to, ok := s.dst.(codec.RibbonHolder)
	lost := false
	for i := 0; i < from.RibbonWordCount(); i++ {
		w := from.RibbonWord(i)
		if ok && s.route.ribbons && i < to.RibbonWordCount() {
			to.SetRibbonWord(i, w)
			continue
		}
		if w != 0 {
			lost = true
		}
	}
	if lost {
		s.drop("ribbons")
	}
}

// fromPK3 stamps the Pal Park arrival: met location, met level at the
// current level and the conversion date.
func fromPK3(s *step) {
	info := s.c.tables.For(s.dst.Generation()).Info(s.src.Species(), s.src.Form())
	s.dst.SetMetLocation(LocationPalPark)
	s.dst.SetMetLevel(derive.LevelFromExperience(s.src.Experience(), info.Growth))
	s.dst.SetMetDate(s.c.now())
}

func fromPK4(s *step) {
	info := s.c.tables.For(s.dst.Generation()).Info(s.src.Species(), s.src.Form())
	s.dst.SetMetLocation(LocationPokeTransfer)
	s.dst.SetMetLevel(derive.LevelFromExperience(s.src.Experience(), info.Growth))
}

// fromPK5 seeds the encryption constant from the PID and keeps a record
// that was not shiny from becoming shiny under the wider check.
func fromPK5(s *step) {
	s.dst.SetEncryptionConstant(s.src.PID())
	if !s.src.Shiny() && s.dst.Shiny() {
		s.dst.SetPID(s.src.PID() ^ 0x80000000)
	}
}

// fromPK6 widens the one-bit markings into the two-bit colour form
func fromPK6(s *step) {
	old := s.src.Markings()
	var m uint16
	for i := 0; i < 6; i++ {
		if old>>i&1 != 0 {
			m |= 1 << (2 * i)
		}
	}
	s.dst.SetMarkings(m)
}
