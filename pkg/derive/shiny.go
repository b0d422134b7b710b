package derive

// Shift values for the shiny comparison. Generations three to five compare
// 13 bits, later generations 12.
const (
	ShinyShiftLegacy = 3
	ShinyShiftModern = 4
)

// TSV is the trainer shiny value
func TSV(tid, sid uint16, shift uint) uint16 {
	return (tid ^ sid) >> shift
}

// PSV is the personal shiny value of a PID
func PSV(pid uint32, shift uint) uint16 {
	return (uint16(pid>>16) ^ uint16(pid)) >> shift
}

// IsShiny reports whether pid is shiny for the trainer pair
func IsShiny(tid, sid uint16, pid uint32, shift uint) bool {
	return TSV(tid, sid, shift) == PSV(pid, shift)
}

// ShinyPID rewrites the high half of pid so that it becomes shiny for the
// trainer while keeping the low half, and therefore the gender byte, intact.
func ShinyPID(tid, sid uint16, pid uint32) uint32 {
	low := uint16(pid)
	high := low ^ tid ^ sid
	return uint32(high)<<16 | uint32(low)
}
