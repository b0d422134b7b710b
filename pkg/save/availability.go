package save

import (
	"github.com/ssargent/pkcore/pkg/codec"
	"github.com/ssargent/pkcore/pkg/game"
	"github.com/ssargent/pkcore/pkg/transfer"
)

// TransferReason explains why a record cannot enter a save
type TransferReason uint8

const (
	ReasonNone TransferReason = iota
	ReasonSpecies
	ReasonForm
	ReasonMove
	ReasonAbility
	ReasonItem
	ReasonBall
	ReasonGeneration
)

var reasonNames = [...]string{"none", "species", "form", "move", "ability", "item", "ball", "generation"}

func (r TransferReason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return "unknown"
}

const (
	speciesMeltan   = 808
	speciesMelmetal = 809
	lgpeMaxNational = 151
)

func (v Version) speciesAvailable(species uint16) bool {
	if v == LGPE {
		return species <= lgpeMaxNational || species == speciesMeltan || species == speciesMelmetal
	}
	return true
}

// InvalidTransferReason checks r against the identifiers the save's games
// can hold. ReasonNone means Transfer can proceed.
func (c *container) InvalidTransferReason(r codec.Record) TransferReason {
	if _, err := transfer.Route(r.Generation(), c.gen); err != nil {
		return ReasonGeneration
	}
	lim := game.LimitsFor(c.gen)

	species := r.Species()
	if species == 0 || species > lim.MaxSpecies || !c.version.speciesAvailable(species) {
		return ReasonSpecies
	}
	if !c.tables.For(c.gen).Info(species, 0).HasForm(r.Form()) {
		return ReasonForm
	}
	for i := 0; i < 4; i++ {
		if r.Move(i) > lim.MaxMove {
			return ReasonMove
		}
	}
	if r.Ability() > lim.MaxAbility {
		return ReasonAbility
	}

	item := r.HeldItem()
	if item != 0 && r.Generation() == game.Three && c.gen != game.Three {
		mapped, ok := transfer.ItemFromGen3(item)
		if !ok {
			return ReasonItem
		}
		item = mapped
	}
	if item > lim.MaxItem {
		return ReasonItem
	}
	if r.Ball() > lim.MaxBall {
		return ReasonBall
	}
	return ReasonNone
}
