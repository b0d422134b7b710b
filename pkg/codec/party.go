package codec

import (
	"github.com/ssargent/pkcore/pkg/derive"
	"github.com/ssargent/pkcore/pkg/game"
	"github.com/ssargent/pkcore/pkg/personal"
)

const speciesUnown = 201

func shinyShift(g Generation) uint {
	if g.Number() <= 5 {
		return derive.ShinyShiftLegacy
	}
	return derive.ShinyShiftModern
}

type shinyFields interface {
	Generation() Generation
	PID() uint32
	TID() uint16
	SID() uint16
}

// pidFields are the values a generation three to five PID must stay
// consistent with
type pidFields interface {
	shinyFields
	SetPID(uint32)
	Species() uint16
	Form() uint8
	Nature() uint8
	Gender() Gender
	AbilityNumber() int
	Version() GameVersion
}

func isShiny(r shinyFields) bool {
	return derive.IsShiny(r.TID(), r.SID(), r.PID(), shinyShift(r.Generation()))
}

func trainerShinyValue(r shinyFields) uint16 {
	return derive.TSV(r.TID(), r.SID(), shinyShift(r.Generation()))
}

func personalShinyValue(r shinyFields) uint16 {
	return derive.PSV(r.PID(), shinyShift(r.Generation()))
}

// setShiny rewrites the PID so the record's shiny state matches. Up to
// generation five the PID also fixes nature, gender and ability, so a value
// honouring those is searched for.
func setShiny(r pidFields, shiny bool) error {
	if isShiny(r) == shiny {
		return nil
	}
	gen := r.Generation()
	if gen.Number() >= 6 {
		pid := r.PID()
		if shiny {
			pid = derive.ShinyPID(r.TID(), r.SID(), pid)
		} else {
			pid ^= 0x10000000
		}
		r.SetPID(pid)
		return nil
	}

	info := personalTable(gen).Info(r.Species(), r.Form())
	req := derive.PIDRequest{
		Generation:       gen.Number(),
		OriginGeneration: r.Version().Generation().Number(),
		Nature:           r.Nature(),
		Gender:           r.Gender(),
		GenderRatio:      info.GenderRatio,
		AbilitySlot:      r.AbilityNumber(),
		PreviousPID:      r.PID(),
		TID:              r.TID(),
		SID:              r.SID(),
		Shiny:            derive.ShinyForbid,
	}
	if shiny {
		req.Shiny = derive.ShinyForce
	}
	if gen == game.Three && r.Species() == speciesUnown {
		req.Unown3 = true
		req.Form = r.Form()
	}
	pid, err := derive.RandomPID(req)
	if err != nil {
		return err
	}
	r.SetPID(pid)
	return nil
}

type statNaturer interface {
	StatNature() uint8
}

// updatePartyData recomputes level, stats, current HP and combat power
func updatePartyData(r Record, t personal.Table) {
	if !r.IsParty() {
		return
	}
	info := t.Info(r.Species(), r.Form())
	level := derive.LevelFromExperience(r.Experience(), info.Growth)
	r.SetLevel(level)

	nature := r.Nature()
	if sn, ok := r.(statNaturer); ok {
		nature = sn.StatNature()
	}
	ht, _ := r.(HyperTrainer)
	aw, _ := r.(Awakener)

	var stats, avs [derive.StatCount]int
	for _, s := range derive.Stats {
		in := derive.StatInput{
			Base:   info.BaseStat(s),
			IV:     r.IV(s),
			EV:     r.EV(s),
			Level:  level,
			Nature: nature,
		}
		if ht != nil {
			in.HyperTrained = ht.HyperTrained(s)
		}
		if aw != nil {
			in.Awakened = aw.AV(s)
			avs[s] = in.Awakened
		}
		stats[s] = derive.ComputeStat(s, in)
	}
	// a base HP of 1 pins max HP at 1
	if info.BaseStat(derive.HP) == 1 {
		stats[derive.HP] = 1
	}
	for _, s := range derive.Stats {
		r.SetPartyStat(s, stats[s])
	}
	r.SetCurrentHP(stats[derive.HP])
	if cp, ok := r.(CPHolder); ok {
		cp.SetCP(derive.CP(stats, level, avs))
	}
}
