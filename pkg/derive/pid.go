package derive

import (
	"errors"
	"math/rand/v2"
)

// MaxPIDAttempts bounds the rejection sampling in RandomPID
const MaxPIDAttempts = 1 << 22

// ErrPIDUnsatisfiable is returned when no PID satisfying the request was found
// within MaxPIDAttempts draws.
var ErrPIDUnsatisfiable = errors.New("derive: no personality value satisfies the constraints")

// ShinyMode selects how RandomPID treats shininess
type ShinyMode uint8

const (
	ShinyAny ShinyMode = iota
	ShinyForce
	ShinyForbid
)

// HiddenAbilitySlot is the ability slot index of a hidden ability
const HiddenAbilitySlot = 2

// PIDRequest describes the constraints a new personality value must meet
type PIDRequest struct {
	// Generation is the record format the PID is written into.
	Generation int
	// OriginGeneration is the generation of the origin game. Natures came
	// from the PID up to generation four.
	OriginGeneration int
	Nature           uint8
	Gender           Gender
	GenderRatio      uint8
	// Unown3 marks a generation three Unown whose letter lives in the PID.
	Unown3      bool
	Form        uint8
	AbilitySlot int
	PreviousPID uint32

	Shiny ShinyMode
	TID   uint16
	SID   uint16

	// Rand is optional; the global source is used when nil.
	Rand *rand.Rand
}

func (r *PIDRequest) next() uint32 {
	if r.Rand != nil {
		return r.Rand.Uint32()
	}
	return rand.Uint32()
}

func (r *PIDRequest) shinyShift() uint {
	if r.Generation <= 5 {
		return ShinyShiftLegacy
	}
	return ShinyShiftModern
}

// AbilitySelectorMask covers the two PID bits the ability selector rule
// compares against the previous value.
const AbilitySelectorMask = 0x00010001

// AbilityBit returns the PID bit that holds the ability slot of a record in
// format generation gen whose origin game is from generation origin, or -1
// when the format stores the slot outside the PID. Generation five keeps
// bit 0 for records that came forward from generations three and four.
func AbilityBit(gen, origin int) int {
	switch {
	case gen == 4:
		return 0
	case gen == 5 && (origin == 3 || origin == 4):
		return 0
	case gen == 5:
		return 16
	}
	return -1
}

// abilityOK applies the selector rule: the selector bits match the previous
// value for the hidden slot and differ from it otherwise. Formats that read
// the slot from the PID must also keep that slot.
func (r *PIDRequest) abilityOK(pid uint32) bool {
	sel, prev := pid&AbilitySelectorMask, r.PreviousPID&AbilitySelectorMask
	if r.AbilitySlot == HiddenAbilitySlot {
		return sel == prev
	}
	if sel == prev {
		return false
	}
	bit := AbilityBit(r.Generation, r.OriginGeneration)
	return bit < 0 || int(pid>>uint(bit)&1) == r.AbilitySlot
}

// RandomPID draws personality values until one satisfies every active
// constraint of req. A forced shiny value is built directly by deriving the
// high half from the low half and the trainer IDs.
func RandomPID(req PIDRequest) (uint32, error) {
	shift := req.shinyShift()

	for i := 0; i < MaxPIDAttempts; i++ {
		pid := req.next()
		switch req.Shiny {
		case ShinyForce:
			low := uint16(pid)
			noise := uint16(pid>>16) & (1<<shift - 1)
			pid = uint32(low^req.TID^req.SID^noise)<<16 | uint32(low)
		case ShinyForbid:
			if IsShiny(req.TID, req.SID, pid, shift) {
				continue
			}
		}

		if req.OriginGeneration <= 4 && pid%NatureCount != uint32(req.Nature) {
			continue
		}
		if req.Unown3 {
			if UnownForm(pid) != req.Form {
				continue
			}
		} else if !req.abilityOK(pid) {
			continue
		}
		if !FixedGender(req.GenderRatio) && GenderFromRatio(pid, req.GenderRatio) != req.Gender {
			continue
		}
		return pid, nil
	}
	return 0, ErrPIDUnsatisfiable
}

// UnownFormCount is the number of generation three Unown letters
const UnownFormCount = 28

// UnownForm extracts the Unown letter encoded in a generation three PID.
func UnownForm(pid uint32) uint8 {
	v := (pid>>24&3)<<6 | (pid>>16&3)<<4 | (pid>>8&3)<<2 | pid&3
	return uint8(v % UnownFormCount)
}
