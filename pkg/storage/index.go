package storage

import (
	"encoding/binary"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
)

var speciesPrefix = []byte("s/")

// speciesKey creates a composite key: species + id. Big endian keeps species
// in numeric order.
func speciesKey(species uint16, id []byte) []byte {
	k := make([]byte, 0, len(speciesPrefix)+2+len(id))
	k = append(k, speciesPrefix...)
	k = binary.BigEndian.AppendUint16(k, species)
	return append(k, id...)
}

// BySpecies returns the metadata of every banked record of species, oldest
// first
func (b *Bank) BySpecies(species uint16) ([]Meta, error) {
	prefix := speciesKey(species, nil)
	iter, err := b.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: upperBound(prefix),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var out []Meta
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key()[len(prefix):])
		if err != nil {
			return nil, fmt.Errorf("corrupt species index entry: %w", err)
		}
		m, err := b.Meta(id)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, iter.Error()
}
