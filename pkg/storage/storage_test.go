package storage

import (
	"bytes"
	"testing"

	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/pkcore/pkg/codec"
	"github.com/ssargent/pkcore/pkg/game"
)

func openBank(t *testing.T) *Bank {
	t.Helper()
	b, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return b
}

func record(t *testing.T, gen codec.Generation, species uint16, nickname string) codec.Record {
	t.Helper()
	r, err := codec.Blank(gen, false)
	require.NoError(t, err)
	r.SetEncryptionConstant(0xDEADBEEF)
	r.SetPID(0x01020304)
	r.SetSpecies(species)
	r.SetNickname(nickname)
	r.SetOTName("ASH")
	r.RefreshChecksum()
	return r
}

func TestPutGet(t *testing.T) {
	b := openBank(t)
	r := record(t, game.Seven, 25, "Sparky")

	id, err := b.Put(r)
	require.NoError(t, err)
	assert.NotEqual(t, ksuid.Nil, id)

	got, err := b.Get(id)
	require.NoError(t, err)
	assert.Equal(t, game.Seven, got.Generation())
	assert.Equal(t, r.Bytes(), got.Bytes())

	m, err := b.Meta(id)
	require.NoError(t, err)
	assert.Equal(t, id.String(), m.ID)
	assert.Equal(t, uint16(25), m.Species)
	assert.Equal(t, "Sparky", m.Nickname)
	assert.Equal(t, "ASH", m.OTName)
	assert.Len(t, m.Hash, 32)
}

func TestPutDeduplicates(t *testing.T) {
	b := openBank(t)
	r := record(t, game.Six, 1, "Bulby")

	first, err := b.Put(r)
	require.NoError(t, err)

	// the encrypted form of the same record is the same content
	enc := r.Clone()
	enc.Encrypt()
	second, err := b.Put(enc)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = b.Put(record(t, game.Six, 4, "Charry"))
	require.NoError(t, err)

	n, err := b.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestDelete(t *testing.T) {
	b := openBank(t)
	r := record(t, game.Eight, 133, "Vee")
	id, err := b.Put(r)
	require.NoError(t, err)

	require.NoError(t, b.Delete(id))
	_, err = b.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = b.Meta(id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, b.Delete(id), ErrNotFound)

	again, err := b.Put(r)
	require.NoError(t, err)
	assert.NotEqual(t, id, again)
}

func TestList(t *testing.T) {
	b := openBank(t)
	ids := make([]ksuid.KSUID, 0, 3)
	for i, name := range []string{"One", "Two", "Three"} {
		id, err := b.Put(record(t, game.Five, uint16(i+1), name))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	metas, err := b.List()
	require.NoError(t, err)
	require.Len(t, metas, 3)
	got := make(map[string]string)
	for _, m := range metas {
		got[m.ID] = m.Nickname
	}
	assert.Equal(t, "One", got[ids[0].String()])
	assert.Equal(t, "Three", got[ids[2].String()])
}

func TestExportImport(t *testing.T) {
	src := openBank(t)
	var ids []ksuid.KSUID
	for _, gen := range []codec.Generation{game.Three, game.Four, game.LGPE} {
		id, err := src.Put(record(t, gen, 25, "PIKA"))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	var buf bytes.Buffer
	n, err := src.Export(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	dst := openBank(t)
	added, err := dst.Import(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 3, added)

	for _, id := range ids {
		want, err := src.Get(id)
		require.NoError(t, err)
		got, err := dst.Get(id)
		require.NoError(t, err)
		assert.Equal(t, want.Bytes(), got.Bytes())
	}

	added, err = dst.Import(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Zero(t, added)
}

func TestImportRejectsGarbage(t *testing.T) {
	b := openBank(t)
	_, err := b.Import(bytes.NewReader([]byte("definitely not zstd")))
	assert.Error(t, err)
}

func TestBySpecies(t *testing.T) {
	b := openBank(t)
	pika, err := b.Put(record(t, game.Six, 25, "Pika"))
	require.NoError(t, err)
	_, err = b.Put(record(t, game.Six, 133, "Vee"))
	require.NoError(t, err)
	// 255 ends in 0xFF, which the index bounds must handle
	torchic, err := b.Put(record(t, game.Six, 255, "Chic"))
	require.NoError(t, err)
	_, err = b.Put(record(t, game.Six, 256, "Combu"))
	require.NoError(t, err)

	metas, err := b.BySpecies(25)
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, pika.String(), metas[0].ID)

	metas, err = b.BySpecies(255)
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, torchic.String(), metas[0].ID)

	require.NoError(t, b.Delete(pika))
	metas, err = b.BySpecies(25)
	require.NoError(t, err)
	assert.Empty(t, metas)
}

func TestUpperBound(t *testing.T) {
	assert.Equal(t, []byte("m0"), upperBound([]byte("m/")))
	assert.Equal(t, []byte{'s', '0'}, upperBound([]byte{'s', '/', 0xFF}))
	assert.Nil(t, upperBound([]byte{0xFF, 0xFF}))
}
