// Package game enumerates the generations, origin versions and languages a
// PKM record can carry, and the per-generation identifier limits.
package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Generation identifies a record format. The order is the forward
// conversion order; LGPE is the side-format that sits between the seventh
// and eighth generations.
type Generation uint8

const (
	Unknown Generation = iota
	Three
	Four
	Five
	Six
	Seven
	LGPE
	Eight
)

// Generations lists every supported format in order
var Generations = []Generation{Three, Four, Five, Six, Seven, LGPE, Eight}

// Number returns the numeric generation. LGPE reports 7.
func (g Generation) Number() int {
	switch g {
	case Three:
		return 3
	case Four:
		return 4
	case Five:
		return 5
	case Six:
		return 6
	case Seven, LGPE:
		return 7
	case Eight:
		return 8
	}
	return 0
}

func (g Generation) String() string {
	switch g {
	case LGPE:
		return "LGPE"
	case Unknown:
		return "unknown"
	}
	return strconv.Itoa(g.Number())
}

// Valid reports whether g is a supported format
func (g Generation) Valid() bool {
	return g >= Three && g <= Eight
}

// ParseGeneration accepts "3".."8" and "lgpe" (case insensitive)
func ParseGeneration(s string) (Generation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "3":
		return Three, nil
	case "4":
		return Four, nil
	case "5":
		return Five, nil
	case "6":
		return Six, nil
	case "7":
		return Seven, nil
	case "lgpe", "pb7":
		return LGPE, nil
	case "8":
		return Eight, nil
	}
	return Unknown, fmt.Errorf("unknown generation %q", s)
}

// Limits bounds the identifiers a generation can store
type Limits struct {
	MaxSpecies uint16
	MaxMove    uint16
	MaxAbility uint16
	MaxItem    uint16
	MaxBall    uint8
}

var limits = map[Generation]Limits{
	Three: {MaxSpecies: 386, MaxMove: 354, MaxAbility: 76, MaxItem: 376, MaxBall: 12},
	Four:  {MaxSpecies: 493, MaxMove: 467, MaxAbility: 123, MaxItem: 536, MaxBall: 24},
	Five:  {MaxSpecies: 649, MaxMove: 559, MaxAbility: 164, MaxItem: 638, MaxBall: 25},
	Six:   {MaxSpecies: 721, MaxMove: 621, MaxAbility: 191, MaxItem: 775, MaxBall: 25},
	Seven: {MaxSpecies: 807, MaxMove: 728, MaxAbility: 233, MaxItem: 959, MaxBall: 26},
	LGPE:  {MaxSpecies: 809, MaxMove: 742, MaxAbility: 233, MaxItem: 1057, MaxBall: 26},
	Eight: {MaxSpecies: 898, MaxMove: 826, MaxAbility: 267, MaxItem: 1607, MaxBall: 26},
}

// LimitsFor returns the identifier limits of g
func LimitsFor(g Generation) Limits {
	return limits[g]
}
