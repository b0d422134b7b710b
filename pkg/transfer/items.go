package transfer

// itemRun maps count consecutive generation three items starting at from to
// consecutive generation four items starting at to.
type itemRun struct {
	from, to, count uint16
}

// Generation three items that exist in generation four. Mail, key items
// and the few items without a counterpart are absent.
var itemRuns3to4 = []itemRun{
	{1, 1, 12},     // balls
	{13, 17, 26},   // potion .. lava cookie
	{39, 65, 5},    // flutes
	{44, 43, 2},    // berry juice, sacred ash
	{46, 70, 6},    // shoal salt .. green shard
	{63, 45, 9},    // vitamins, rare candy, pp items
	{73, 55, 7},    // battle items
	{80, 63, 2},    // poke doll, fluffy tail
	{83, 76, 4},    // repels, escape rope
	{93, 80, 6},    // evolution stones
	{103, 86, 2},   // mushrooms
	{106, 88, 6},   // pearl .. heart scale
	{133, 149, 35}, // cheri .. belue
	{168, 201, 8},  // liechi .. enigma
	{179, 213, 47}, // held items
	{254, 260, 5},  // scarves
	{289, 328, 50}, // TM01-TM50
	{339, 420, 8},  // HM01-HM08
}

var items3to4 = func() map[uint16]uint16 {
	m := make(map[uint16]uint16)
	for _, r := range itemRuns3to4 {
		for i := uint16(0); i < r.count; i++ {
			m[r.from+i] = r.to + i
		}
	}
	return m
}()

// ItemFromGen3 returns the generation four index of a generation three item
func ItemFromGen3(item uint16) (uint16, bool) {
	v, ok := items3to4[item]
	return v, ok
}
