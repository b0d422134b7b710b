// Package storage is the record bank: a pebble database of decrypted records
// keyed by KSUID, with per-record metadata and content-hash deduplication.
package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
	"github.com/zeebo/blake3"

	"github.com/ssargent/pkcore/pkg/codec"
	"github.com/ssargent/pkcore/pkg/logging"
)

// ErrNotFound is returned for ids the bank does not hold
var ErrNotFound = errors.New("storage: record not found")

var (
	recordPrefix = []byte("r/")
	metaPrefix   = []byte("m/")
	hashPrefix   = []byte("h/")
)

func key(prefix, id []byte) []byte {
	return append(append(make([]byte, 0, len(prefix)+len(id)), prefix...), id...)
}

// upperBound returns the first key after every key starting with prefix, or
// nil when no such key exists
func upperBound(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}

// Meta summarises a banked record
type Meta struct {
	ID         string           `cbor:"id" json:"id"`
	Generation codec.Generation `cbor:"gen" json:"generation"`
	Species    uint16           `cbor:"species" json:"species"`
	Nickname   string           `cbor:"nickname" json:"nickname"`
	OTName     string           `cbor:"ot" json:"ot_name"`
	Shiny      bool             `cbor:"shiny" json:"shiny"`
	Party      bool             `cbor:"party" json:"party"`
	Hash       []byte           `cbor:"hash" json:"-"`
	Added      time.Time        `cbor:"added" json:"added"`
}

// Bank stores records
type Bank struct {
	db     *pebble.DB
	logger *slog.Logger
	now    func() time.Time
	// serialises the dedupe check with the write that follows it
	mu sync.Mutex
}

// Option configures a Bank
type Option func(*Bank)

// WithLogger sets the bank's logger
func WithLogger(l *slog.Logger) Option {
	return func(b *Bank) { b.logger = l }
}

// Open opens or creates a bank in dir
func Open(dir string, opts ...Option) (*Bank, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open bank: %w", err)
	}
	b := &Bank{db: db, logger: logging.Discard(), now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Close closes the underlying database
func (b *Bank) Close() error {
	return b.db.Close()
}

func contentHash(gen codec.Generation, data []byte) []byte {
	h := blake3.New()
	h.Write([]byte{byte(gen)})
	h.Write(data)
	return h.Sum(nil)
}

// decrypted returns a decrypted copy of r with a fresh checksum
func decrypted(r codec.Record) codec.Record {
	c := r.Clone()
	c.Decrypt()
	c.RefreshChecksum()
	return c
}

// Put banks r and returns its id. A record whose content is already banked
// returns the existing id.
func (b *Bank) Put(r codec.Record) (ksuid.KSUID, error) {
	id, _, err := b.put(ksuid.New(), decrypted(r), b.now())
	return id, err
}

// put writes rec under id unless identical content is banked. It reports
// whether a new entry was written.
func (b *Bank) put(id ksuid.KSUID, rec codec.Record, added time.Time) (ksuid.KSUID, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sum := contentHash(rec.Generation(), rec.Bytes())
	existing, err := b.lookupHash(sum)
	switch {
	case err == nil:
		b.logger.Debug("record already banked", "id", existing.String())
		return existing, false, nil
	case !errors.Is(err, ErrNotFound):
		return ksuid.Nil, false, err
	}

	meta := Meta{
		ID:         id.String(),
		Generation: rec.Generation(),
		Species:    rec.Species(),
		Nickname:   rec.Nickname(),
		OTName:     rec.OTName(),
		Shiny:      rec.Shiny(),
		Party:      rec.IsParty(),
		Hash:       sum,
		Added:      added.UTC(),
	}
	metaBytes, err := encMode.Marshal(meta)
	if err != nil {
		return ksuid.Nil, false, fmt.Errorf("failed to encode metadata: %w", err)
	}
	value := append([]byte{byte(rec.Generation())}, rec.Bytes()...)

	batch := b.db.NewBatch()
	defer batch.Close()
	if err := batch.Set(key(recordPrefix, id.Bytes()), value, nil); err != nil {
		return ksuid.Nil, false, err
	}
	if err := batch.Set(key(metaPrefix, id.Bytes()), metaBytes, nil); err != nil {
		return ksuid.Nil, false, err
	}
	if err := batch.Set(key(hashPrefix, sum), id.Bytes(), nil); err != nil {
		return ksuid.Nil, false, err
	}
	if err := batch.Set(speciesKey(meta.Species, id.Bytes()), nil, nil); err != nil {
		return ksuid.Nil, false, err
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return ksuid.Nil, false, fmt.Errorf("failed to write record: %w", err)
	}

	b.logger.Info("record banked", "id", meta.ID, "generation", meta.Generation.String(), "species", meta.Species)
	return id, true, nil
}

func (b *Bank) lookupHash(sum []byte) (ksuid.KSUID, error) {
	v, err := b.get(key(hashPrefix, sum))
	if err != nil {
		return ksuid.Nil, err
	}
	return ksuid.FromBytes(v)
}

// get copies the value of k out of pebble
func (b *Bank) get(k []byte) ([]byte, error) {
	v, closer, err := b.db.Get(k)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	return append([]byte(nil), v...), nil
}

// Get returns a decrypted copy of the record stored under id
func (b *Bank) Get(id ksuid.KSUID) (codec.Record, error) {
	v, err := b.get(key(recordPrefix, id.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, id)
	}
	if len(v) == 0 {
		return nil, fmt.Errorf("storage: empty value for %s", id)
	}
	return codec.New(codec.Generation(v[0]), v[1:])
}

// Meta returns the metadata of id
func (b *Bank) Meta(id ksuid.KSUID) (Meta, error) {
	var m Meta
	v, err := b.get(key(metaPrefix, id.Bytes()))
	if err != nil {
		return m, fmt.Errorf("%w: %s", err, id)
	}
	if err := decMode.Unmarshal(v, &m); err != nil {
		return m, fmt.Errorf("failed to decode metadata: %w", err)
	}
	return m, nil
}

// Delete removes id, its metadata and its index entries
func (b *Bank) Delete(id ksuid.KSUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	m, err := b.Meta(id)
	if err != nil {
		return err
	}
	batch := b.db.NewBatch()
	defer batch.Close()
	for _, k := range [][]byte{
		key(recordPrefix, id.Bytes()),
		key(metaPrefix, id.Bytes()),
		key(hashPrefix, m.Hash),
		speciesKey(m.Species, id.Bytes()),
	} {
		if err := batch.Delete(k, nil); err != nil {
			return err
		}
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	b.logger.Info("record deleted", "id", m.ID)
	return nil
}

// List returns the metadata of every record, oldest first
func (b *Bank) List() ([]Meta, error) {
	var out []Meta
	err := b.eachMeta(func(m Meta) error {
		out = append(out, m)
		return nil
	})
	return out, err
}

// Count returns the number of banked records
func (b *Bank) Count() (int, error) {
	n := 0
	err := b.eachMeta(func(Meta) error {
		n++
		return nil
	})
	return n, err
}

func (b *Bank) eachMeta(fn func(Meta) error) error {
	iter, err := b.db.NewIter(&pebble.IterOptions{
		LowerBound: metaPrefix,
		UpperBound: upperBound(metaPrefix),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		var m Meta
		if err := decMode.Unmarshal(iter.Value(), &m); err != nil {
			return fmt.Errorf("failed to decode metadata: %w", err)
		}
		if err := fn(m); err != nil {
			return err
		}
	}
	return iter.Error()
}
