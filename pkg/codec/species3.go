package codec

// Generation three stores the third region's species under internal
// indices 277-411 in an order that differs from the national dex.
const (
	internalHoennStart = 277
	nationalHoennStart = 252
	nationalGen3Max    = 386
)

var hoennInternalOrder = [...]uint16{
	252, 253, 254, 255, 256, 257, 258, 259, 260, 261, 262, 263, 264, 265, 266,
	267, 268, 269, 270, 271, 272, 273, 274, 275, 290, 291, 292, 276, 277, 285,
	286, 327, 278, 279, 283, 284, 320, 321, 300, 301, 352, 343, 344, 299, 324,
	302, 339, 340, 370, 341, 342, 349, 350, 318, 319, 328, 329, 330, 296, 297,
	309, 310, 322, 323, 363, 364, 365, 331, 332, 361, 362, 337, 338, 298, 325,
	326, 311, 312, 303, 307, 308, 333, 334, 360, 355, 356, 315, 287, 288, 289,
	316, 317, 357, 293, 294, 295, 366, 367, 368, 359, 353, 354, 336, 335, 369,
	304, 305, 306, 351, 313, 314, 345, 346, 347, 348, 280, 281, 282, 371, 372,
	373, 374, 375, 376, 377, 378, 379, 382, 383, 384, 380, 381, 385, 386, 358,
}

var nationalToInternal = func() map[uint16]uint16 {
	m := make(map[uint16]uint16, len(hoennInternalOrder))
	for i, n := range hoennInternalOrder {
		m[n] = uint16(internalHoennStart + i)
	}
	return m
}()

// SpeciesFromInternal3 converts a generation three internal species index to
// its national number. Unused placeholder indices map to 0.
func SpeciesFromInternal3(internal uint16) uint16 {
	switch {
	case internal < nationalHoennStart:
		return internal
	case internal < internalHoennStart:
		return 0
	case int(internal-internalHoennStart) < len(hoennInternalOrder):
		return hoennInternalOrder[internal-internalHoennStart]
	}
	return 0
}

// SpeciesToInternal3 converts a national number to the generation three
// internal index. Species the format cannot hold map to 0.
func SpeciesToInternal3(national uint16) uint16 {
	switch {
	case national < nationalHoennStart:
		return national
	case national <= nationalGen3Max:
		return nationalToInternal[national]
	}
	return 0
}
