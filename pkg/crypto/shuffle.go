package crypto

// BlockCount is the number of shuffled blocks in every record layout
const BlockCount = 4

// blockPosition lists, for each selector, which source block lands in each
// destination slot. Rows 24-31 repeat rows 0-7 so a 5-bit selector needs no
// modulus.
var blockPosition = [32][BlockCount]uint8{
	{0, 1, 2, 3}, {0, 1, 3, 2}, {0, 2, 1, 3}, {0, 3, 1, 2},
	{0, 2, 3, 1}, {0, 3, 2, 1}, {1, 0, 2, 3}, {1, 0, 3, 2},
	{2, 0, 1, 3}, {3, 0, 1, 2}, {2, 0, 3, 1}, {3, 0, 2, 1},
	{1, 2, 0, 3}, {1, 3, 0, 2}, {2, 1, 0, 3}, {3, 1, 0, 2},
	{2, 3, 0, 1}, {3, 2, 0, 1}, {1, 2, 3, 0}, {1, 3, 2, 0},
	{2, 1, 3, 0}, {3, 1, 2, 0}, {2, 3, 1, 0}, {3, 2, 1, 0},

	{0, 1, 2, 3}, {0, 1, 3, 2}, {0, 2, 1, 3}, {0, 3, 1, 2},
	{0, 2, 3, 1}, {0, 3, 2, 1}, {1, 0, 2, 3}, {1, 0, 3, 2},
}

// blockPositionInvert maps a selector to the row that undoes it.
var blockPositionInvert = [32]uint8{
	0, 1, 2, 4, 3, 5, 6, 7, 12, 18, 13, 19, 8, 10, 14, 20, 16, 22, 9, 11, 15, 21, 17, 23,
	0, 1, 2, 4, 3, 5, 6, 7,
}

// Selector derives the shuffle selector from an encryption constant
func Selector(ec uint32) int {
	return int((ec >> 13) & 31)
}

// BlockShuffle reorders the four blocks following start into their stored
// (encrypted) order for selector.
func BlockShuffle(buf []byte, start, blockLen, selector int) {
	permute(buf, start, blockLen, int(blockPositionInvert[selector&31]))
}

// BlockUnshuffle restores the canonical block order of a buffer shuffled with
// BlockShuffle and the same selector.
func BlockUnshuffle(buf []byte, start, blockLen, selector int) {
	permute(buf, start, blockLen, selector&31)
}

func permute(buf []byte, start, blockLen, row int) {
	region := buf[start : start+blockLen*BlockCount]
	tmp := make([]byte, len(region))
	copy(tmp, region)
	for i, src := range blockPosition[row] {
		copy(region[i*blockLen:(i+1)*blockLen], tmp[int(src)*blockLen:(int(src)+1)*blockLen])
	}
}
