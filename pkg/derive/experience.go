package derive

// Growth is a species experience curve
type Growth uint8

const (
	MediumFast Growth = iota
	Erratic
	Fluctuating
	MediumSlow
	Fast
	Slow
)

// GrowthCount is the number of experience curves
const GrowthCount = 6

// MaxLevel is the highest reachable level
const MaxLevel = 100

// growthTables[g][l-1] is the experience needed to reach level l.
var growthTables = buildGrowthTables()

func buildGrowthTables() [GrowthCount][MaxLevel]uint32 {
	var t [GrowthCount][MaxLevel]uint32
	for g := Growth(0); g < GrowthCount; g++ {
		for l := 2; l <= MaxLevel; l++ {
			t[g][l-1] = uint32(growthFormula(g, l))
		}
	}
	return t
}

func growthFormula(g Growth, n int) int {
	n3 := n * n * n
	switch g {
	case Erratic:
		switch {
		case n < 50:
			return n3 * (100 - n) / 50
		case n < 68:
			return n3 * (150 - n) / 100
		case n < 98:
			return n3 * ((1911 - 10*n) / 3) / 500
		default:
			return n3 * (160 - n) / 100
		}
	case Fluctuating:
		switch {
		case n < 15:
			return n3 * ((n+1)/3 + 24) / 50
		case n < 36:
			return n3 * (n + 14) / 50
		default:
			return n3 * (n/2 + 32) / 50
		}
	case MediumSlow:
		return 6*n3/5 - 15*n*n + 100*n - 140
	case Fast:
		return 4 * n3 / 5
	case Slow:
		return 5 * n3 / 4
	default:
		return n3
	}
}

// ExperienceForLevel returns the minimum experience of level on curve g.
// Levels outside 1..100 are clamped.
func ExperienceForLevel(level int, g Growth) uint32 {
	if g >= GrowthCount {
		g = MediumFast
	}
	if level < 1 {
		level = 1
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return growthTables[g][level-1]
}

// LevelFromExperience returns the level that exp reaches on curve g.
func LevelFromExperience(exp uint32, g Growth) int {
	if g >= GrowthCount {
		g = MediumFast
	}
	level := 1
	for level < MaxLevel && exp >= growthTables[g][level] {
		level++
	}
	return level
}
