package transfer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/pkcore/pkg/codec"
	"github.com/ssargent/pkcore/pkg/derive"
	"github.com/ssargent/pkcore/pkg/game"
)

var fixedNow = time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)

func newTestConverter() *Converter {
	return NewConverter(nil, WithClock(func() time.Time { return fixedNow }))
}

func pikachu(t *testing.T, gen codec.Generation, party bool) codec.Record {
	t.Helper()
	r, err := codec.Blank(gen, party)
	require.NoError(t, err)

	r.SetEncryptionConstant(0x1234ABCD)
	r.SetPID(0x5E2D1C4B)
	r.SetSpecies(25)
	r.SetTID(24680)
	r.SetSID(13579)
	r.SetExperience(125000)
	r.SetNickname("SPARKY")
	r.SetOTName("RED")
	r.SetVersion(game.Emerald)
	r.SetLanguage(game.English)
	r.SetBall(4)
	r.SetMetLevel(5)
	r.SetFriendship(120)
	r.SetAbilityNumber(0)
	r.SetAbility(9)
	for i, m := range []uint16{85, 98, 86, 21} {
		r.SetMove(i, m)
		r.SetPP(i, 15)
	}
	for _, s := range derive.Stats {
		r.SetIV(s, 31)
		r.SetEV(s, 10*int(s))
	}
	r.RefreshChecksum()
	return r
}

func TestRoute(t *testing.T) {
	tests := []struct {
		name     string
		from, to codec.Generation
		want     []codec.Generation
		err      error
	}{
		{"identity", game.Five, game.Five, []codec.Generation{game.Five}, nil},
		{"main line", game.Three, game.Eight,
			[]codec.Generation{game.Three, game.Four, game.Five, game.Six, game.Seven, game.Eight}, nil},
		{"into side format", game.Six, game.LGPE, []codec.Generation{game.Six, game.Seven, game.LGPE}, nil},
		{"out of side format", game.LGPE, game.Eight, []codec.Generation{game.LGPE, game.Eight}, nil},
		{"downgrade", game.Eight, game.Three, nil, ErrDowngrade},
		{"side format to seven", game.LGPE, game.Seven, nil, ErrDowngrade},
		{"unknown", game.Unknown, game.Four, nil, ErrNoRoute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Route(tt.from, tt.to)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertPreservesIdentity(t *testing.T) {
	c := newTestConverter()
	src := pikachu(t, game.Three, false)

	prev := src
	for _, g := range []codec.Generation{game.Four, game.Five, game.Six, game.Seven, game.Eight} {
		t.Run(g.String(), func(t *testing.T) {
			out, err := c.Convert(prev, g)
			require.NoError(t, err)
			require.Equal(t, g, out.Generation())

			assert.Equal(t, uint16(25), out.Species())
			assert.Equal(t, uint16(24680), out.TID())
			assert.Equal(t, uint16(13579), out.SID())
			assert.Equal(t, "SPARKY", out.Nickname())
			for i, m := range []uint16{85, 98, 86, 21} {
				assert.Equal(t, m, out.Move(i))
			}
			assert.Equal(t, uint32(125000), out.Experience())
			assert.Equal(t, 31, out.IV(derive.Speed))
			assert.False(t, out.IsEncrypted())
			assert.True(t, out.ChecksumValid())
			prev = out
		})
	}

	direct, err := c.Convert(src, game.Eight)
	require.NoError(t, err)
	assert.Equal(t, prev.Species(), direct.Species())
	assert.Equal(t, prev.Nickname(), direct.Nickname())
}

func TestConvertDoesNotMutateSource(t *testing.T) {
	c := newTestConverter()
	src := pikachu(t, game.Four, true)
	src.Encrypt()
	before := append([]byte(nil), src.Bytes()...)

	_, err := c.Convert(src, game.Seven)
	require.NoError(t, err)
	assert.Equal(t, before, src.Bytes())
	assert.True(t, src.IsEncrypted())
}

func TestConvertIdentityReturnsCopy(t *testing.T) {
	c := newTestConverter()
	src := pikachu(t, game.Six, false)
	out, err := c.Convert(src, game.Six)
	require.NoError(t, err)
	assert.Equal(t, src.Bytes(), out.Bytes())

	out.SetSpecies(1)
	assert.Equal(t, uint16(25), src.Species())
}

func TestConvertDowngrade(t *testing.T) {
	c := newTestConverter()
	_, err := c.Convert(pikachu(t, game.Seven, false), game.Five)
	assert.True(t, errors.Is(err, ErrDowngrade))
}

func TestPalParkArrival(t *testing.T) {
	c := newTestConverter()
	out, err := c.Convert(pikachu(t, game.Three, false), game.Four)
	require.NoError(t, err)

	assert.Equal(t, uint16(LocationPalPark), out.MetLocation())
	assert.Equal(t, 50, out.MetLevel())
	assert.Equal(t, fixedNow, out.MetDate())
	assert.Equal(t, game.Emerald, out.Version())
}

func TestPokeTransferArrival(t *testing.T) {
	c := newTestConverter()
	out, err := c.Convert(pikachu(t, game.Four, false), game.Five)
	require.NoError(t, err)
	assert.Equal(t, uint16(LocationPokeTransfer), out.MetLocation())
	assert.Equal(t, 50, out.MetLevel())
	assert.Equal(t, pikachu(t, game.Four, false).Nature(), out.Nature())
}

func TestGen5To6ShinyGuard(t *testing.T) {
	c := newTestConverter()
	src := pikachu(t, game.Five, false)
	src.SetTID(0)
	src.SetSID(0)
	// xor of 12 is shiny only under the four-bit check
	src.SetPID(0x0000000C)
	require.False(t, src.Shiny())

	out, err := c.Convert(src, game.Six)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x0000000C), out.EncryptionConstant())
	assert.Equal(t, uint32(0x8000000C), out.PID())
	assert.False(t, out.Shiny())
}

func TestGen5To6KeepsShiny(t *testing.T) {
	c := newTestConverter()
	src := pikachu(t, game.Five, false)
	src.SetTID(0)
	src.SetSID(0)
	src.SetPID(0x00010001)
	require.True(t, src.Shiny())

	out, err := c.Convert(src, game.Six)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x00010001), out.PID())
	assert.True(t, out.Shiny())
}

func TestSideFormatDropsContest(t *testing.T) {
	c := newTestConverter()
	src := pikachu(t, game.Seven, true)
	src.(codec.ContestStatter).SetContestStat(0, 200)
	src.(codec.HyperTrainer).SetHyperTrained(derive.Attack, true)

	out, rep, err := c.ConvertWithReport(src, game.LGPE)
	require.NoError(t, err)
	assert.True(t, rep.Lossy())
	assert.Contains(t, rep.Dropped, Drop{From: game.Seven, To: game.LGPE, Field: "contest stats"})

	pb7, ok := out.(*codec.PB7)
	require.True(t, ok)
	assert.True(t, pb7.HyperTrained(derive.Attack))
	assert.Equal(t, 0, pb7.AV(derive.HP))
	assert.Positive(t, pb7.CP())
	assert.Equal(t, 50, pb7.Level())
}

func TestSideFormatDropsAwakening(t *testing.T) {
	c := newTestConverter()
	pb, err := c.Convert(pikachu(t, game.Seven, true), game.LGPE)
	require.NoError(t, err)
	pb.(codec.Awakener).SetAV(derive.Speed, 200)
	pb.UpdatePartyData(c.tables.For(game.LGPE))

	out, rep, err := c.ConvertWithReport(pb, game.Eight)
	require.NoError(t, err)
	fields := make([]string, 0, len(rep.Dropped))
	for _, d := range rep.Dropped {
		fields = append(fields, d.Field)
	}
	assert.Contains(t, fields, "awakening values")
	assert.Contains(t, fields, "combat power")
	assert.Equal(t, game.Eight, out.Generation())
}

func TestAbilityResolution(t *testing.T) {
	c := newTestConverter()

	canon, rep, err := c.ConvertWithReport(pikachu(t, game.Six, false), game.Seven)
	require.NoError(t, err)
	assert.False(t, rep.LiteralAbility)
	assert.Equal(t, uint16(9), canon.Ability())
	assert.Equal(t, 0, canon.AbilityNumber())

	odd := pikachu(t, game.Six, false)
	odd.SetAbility(65)
	out, rep, err := c.ConvertWithReport(odd, game.Seven)
	require.NoError(t, err)
	assert.True(t, rep.LiteralAbility)
	assert.Equal(t, uint16(65), out.Ability())
}

func TestAbilitySlotFromGenerationFour(t *testing.T) {
	c := newTestConverter()

	src, err := codec.Blank(game.Four, false)
	require.NoError(t, err)
	src.SetSpecies(133)
	src.SetPID(0x00000001)
	src.SetVersion(game.HeartGold)
	src.SetExperience(1000)
	src.SetAbility(91)
	src.RefreshChecksum()
	require.Equal(t, 1, src.AbilityNumber())

	pk5, rep, err := c.ConvertWithReport(src, game.Five)
	require.NoError(t, err)
	assert.False(t, rep.LiteralAbility)
	assert.Equal(t, 1, pk5.AbilityNumber())
	assert.Equal(t, uint16(91), pk5.Ability())

	pk6, rep, err := c.ConvertWithReport(pk5, game.Six)
	require.NoError(t, err)
	assert.False(t, rep.LiteralAbility)
	assert.Equal(t, 1, pk6.AbilityNumber())
	assert.Equal(t, uint16(91), pk6.Ability())

	direct, rep, err := c.ConvertWithReport(src, game.Six)
	require.NoError(t, err)
	assert.False(t, rep.LiteralAbility)
	assert.Equal(t, 1, direct.AbilityNumber())
}

func TestItemMapping(t *testing.T) {
	tests := []struct {
		gen3 uint16
		gen4 uint16
		ok   bool
	}{
		{1, 1, true},
		{13, 17, true},
		{68, 50, true},
		{200, 234, true},
		{289, 328, true},
		{346, 427, true},
		{121, 0, false},
	}
	for _, tt := range tests {
		got, ok := ItemFromGen3(tt.gen3)
		assert.Equal(t, tt.ok, ok, "item %d", tt.gen3)
		assert.Equal(t, tt.gen4, got, "item %d", tt.gen3)
	}

	c := newTestConverter()
	src := pikachu(t, game.Three, false)
	src.SetHeldItem(200)
	out, err := c.Convert(src, game.Four)
	require.NoError(t, err)
	assert.Equal(t, uint16(234), out.HeldItem())

	src.SetHeldItem(121)
	out, rep, err := c.ConvertWithReport(src, game.Four)
	require.NoError(t, err)
	assert.Zero(t, out.HeldItem())
	assert.Contains(t, rep.Dropped, Drop{From: game.Three, To: game.Four, Field: "held item"})
}

func TestMarkingsWiden(t *testing.T) {
	c := newTestConverter()
	src := pikachu(t, game.Six, false)
	src.SetMarkings(0b000101)
	out, err := c.Convert(src, game.Seven)
	require.NoError(t, err)
	assert.Equal(t, uint16(0b010001), out.Markings())
}

func TestConvertAll(t *testing.T) {
	c := NewConverter(nil, WithWorkers(2))
	in := []codec.Record{
		pikachu(t, game.Three, false),
		pikachu(t, game.Five, true),
		pikachu(t, game.Seven, false),
	}
	in[1].SetSpecies(133)

	out, err := c.ConvertAll(context.Background(), in, game.Eight)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, uint16(25), out[0].Species())
	assert.Equal(t, uint16(133), out[1].Species())
	assert.True(t, out[1].IsParty())
	for _, r := range out {
		assert.Equal(t, game.Eight, r.Generation())
	}

	_, err = c.ConvertAll(context.Background(), in, game.Four)
	assert.ErrorIs(t, err, ErrDowngrade)
}
