package derive

// Stat indexes the six battle stats. The order matches base stat tables and
// the nature boost table.
type Stat int

const (
	HP Stat = iota
	Attack
	Defense
	Speed
	SpAttack
	SpDefense
)

// StatCount is the number of battle stats
const StatCount = 6

// Stats lists every stat in table order
var Stats = [StatCount]Stat{HP, Attack, Defense, Speed, SpAttack, SpDefense}

var statNames = [StatCount]string{"hp", "atk", "def", "spe", "spa", "spd"}

func (s Stat) String() string {
	if s < 0 || int(s) >= StatCount {
		return "unknown"
	}
	return statNames[s]
}

// natureStat maps the nature grid column to a stat. Natures are laid out in a
// 5x5 grid of boosted (row) and lowered (column) stats in this order.
var natureStat = [5]Stat{Attack, Defense, Speed, SpAttack, SpDefense}

// NatureCount is the number of natures
const NatureCount = 25

// NatureMultiplier returns the multiplier in tenths a nature applies to stat.
func NatureMultiplier(nature uint8, stat Stat) int {
	if stat == HP || nature >= NatureCount {
		return 10
	}
	up, down := natureStat[nature/5], natureStat[nature%5]
	if up == down {
		return 10
	}
	switch stat {
	case up:
		return 11
	case down:
		return 9
	}
	return 10
}

// StatInput carries everything the stat formula consumes
type StatInput struct {
	Base         int
	IV           int
	EV           int
	Level        int
	Nature       uint8
	HyperTrained bool
	Awakened     int
}

// ComputeStat evaluates the stat formula for one stat
func ComputeStat(stat Stat, in StatInput) int {
	iv := in.IV
	if in.HyperTrained {
		iv = 31
	}
	core := 2*in.Base + iv + in.EV/4
	if stat == HP {
		return (core+100)*in.Level/100 + 10 + in.Awakened
	}
	v := core*in.Level/100 + 5
	return v*NatureMultiplier(in.Nature, stat)/10 + in.Awakened
}

// MaxCP caps LGPE combat power
const MaxCP = 10000

// CP computes LGPE combat power from final stats, level and awakening values.
func CP(stats [StatCount]int, level int, avs [StatCount]int) int {
	sum, avSum := 0, 0
	for i := 0; i < StatCount; i++ {
		sum += stats[i]
		avSum += avs[i]
	}
	cp := sum*(level*4+200)/100 + avSum
	if cp > MaxCP {
		return MaxCP
	}
	return cp
}
