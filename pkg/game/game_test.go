package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneration_Order(t *testing.T) {
	for i := 1; i < len(Generations); i++ {
		assert.Less(t, Generations[i-1], Generations[i])
	}
	assert.Less(t, Seven, LGPE)
	assert.Less(t, LGPE, Eight)
}

func TestGeneration_Number(t *testing.T) {
	assert.Equal(t, 3, Three.Number())
	assert.Equal(t, 7, LGPE.Number())
	assert.Equal(t, 8, Eight.Number())
	assert.Equal(t, 0, Unknown.Number())
	assert.Equal(t, "LGPE", LGPE.String())
	assert.Equal(t, "6", Six.String())
}

func TestParseGeneration(t *testing.T) {
	for _, g := range Generations {
		parsed, err := ParseGeneration(g.String())
		require.NoError(t, err)
		assert.Equal(t, g, parsed)
	}
	_, err := ParseGeneration("2")
	assert.Error(t, err)
}

func TestVersion_Generation(t *testing.T) {
	assert.Equal(t, Three, Emerald.Generation())
	assert.Equal(t, Four, HeartGold.Generation())
	assert.Equal(t, Five, Black2.Generation())
	assert.Equal(t, Six, OmegaRuby.Generation())
	assert.Equal(t, Seven, UltraMoon.Generation())
	assert.Equal(t, LGPE, LetsEevee.Generation())
	assert.Equal(t, Eight, Shield.Generation())
	assert.Equal(t, Unknown, Version(99).Generation())
	assert.Equal(t, "Platinum", Platinum.String())
}

func TestLimitsFor(t *testing.T) {
	prev := uint16(0)
	for _, g := range []Generation{Three, Four, Five, Six, Seven, Eight} {
		l := LimitsFor(g)
		assert.Greater(t, l.MaxSpecies, prev)
		prev = l.MaxSpecies
	}
	assert.Equal(t, Limits{}, LimitsFor(Unknown))
}
