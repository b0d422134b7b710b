package save

import "fmt"

const (
	sizeGen3Full = 0x20000
	sizeGen3Half = 0x10000
	sizeNDS      = 0x80000
	sizeXY       = 0x65600
	sizeORAS     = 0x76000
	sizeSM       = 0x6BE00
	sizeUSUM     = 0x6CC00
	sizeLGPE     = 0x100000
)

// Detect identifies the save format of data
func Detect(data []byte) (Version, error) {
	switch len(data) {
	case sizeGen3Full, sizeGen3Half:
		if v, ok := detectGen3(data); ok {
			return v, nil
		}
	case sizeNDS:
		if l, _, ok := detectGen4(data); ok {
			return l.version, nil
		}
		if l, ok := detectGen5(data); ok {
			return l.version, nil
		}
	case sizeXY:
		return XY, nil
	case sizeORAS:
		return ORAS, nil
	case sizeSM:
		return SM, nil
	case sizeUSUM:
		return USUM, nil
	case sizeLGPE:
		return LGPE, nil
	}
	return VersionUnknown, fmt.Errorf("%w: %d bytes", ErrUnknownFormat, len(data))
}
