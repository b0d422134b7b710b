package derive

// Gender of a creature as stored in records
type Gender uint8

const (
	Male       Gender = 0
	Female     Gender = 1
	Genderless Gender = 2
)

// Gender ratio thresholds with fixed outcomes
const (
	RatioMale       uint8 = 0x00
	RatioFemale     uint8 = 0xFE
	RatioGenderless uint8 = 0xFF
)

func (g Gender) String() string {
	switch g {
	case Male:
		return "male"
	case Female:
		return "female"
	case Genderless:
		return "genderless"
	default:
		return "unknown"
	}
}

// GenderFromRatio derives the gender a personality value implies for a
// species gender threshold.
func GenderFromRatio(pid uint32, threshold uint8) Gender {
	switch threshold {
	case RatioGenderless:
		return Genderless
	case RatioFemale:
		return Female
	case RatioMale:
		return Male
	}
	if uint8(pid&0xFF) < threshold {
		return Female
	}
	return Male
}

// FixedGender reports whether the threshold fixes the gender regardless of PID
func FixedGender(threshold uint8) bool {
	return threshold == RatioMale || threshold == RatioFemale || threshold == RatioGenderless
}
