// Package save opens game save files far enough to move records in and out.
//
// Formats are recognised from the exact file size. Where one size is shared
// by several games, fixed footer words and their checksums decide. Records
// read from a save are decrypted copies; records written back are encrypted
// with a refreshed checksum. Finalize recomputes the container checksums and
// must be called before Bytes is persisted.
package save

import (
	"errors"
	"fmt"

	"github.com/ssargent/pkcore/pkg/codec"
	"github.com/ssargent/pkcore/pkg/game"
	"github.com/ssargent/pkcore/pkg/personal"
	"github.com/ssargent/pkcore/pkg/transfer"
)

var (
	// ErrUnknownFormat is returned when the data matches no known save
	ErrUnknownFormat = errors.New("save: unknown save format")
	// ErrSlot is returned for box or party positions outside the save
	ErrSlot = errors.New("save: slot out of range")
	// ErrGeneration is returned when writing a record of another generation
	ErrGeneration = errors.New("save: record generation does not match the save")
	// ErrNotTransferable wraps the reason a record cannot enter the save
	ErrNotTransferable = errors.New("save: record cannot be transferred")
)

// Version identifies a save format
type Version uint8

const (
	VersionUnknown Version = iota
	RS
	E
	FRLG
	DP
	Pt
	HGSS
	BW
	B2W2
	XY
	ORAS
	SM
	USUM
	LGPE
)

var versionNames = map[Version]string{
	RS: "RS", E: "E", FRLG: "FRLG", DP: "DP", Pt: "Pt", HGSS: "HGSS", BW: "BW", B2W2: "B2W2",
	XY: "XY", ORAS: "ORAS", SM: "SM", USUM: "USUM", LGPE: "LGPE",
}

func (v Version) String() string {
	if s, ok := versionNames[v]; ok {
		return s
	}
	return "unknown"
}

// Generation returns the record format stored by saves of v
func (v Version) Generation() codec.Generation {
	switch v {
	case RS, E, FRLG:
		return game.Three
	case DP, Pt, HGSS:
		return game.Four
	case BW, B2W2:
		return game.Five
	case XY, ORAS:
		return game.Six
	case SM, USUM:
		return game.Seven
	case LGPE:
		return game.LGPE
	}
	return game.Unknown
}

// Save is an opened save file
type Save interface {
	Version() Version
	Generation() codec.Generation
	BoxCount() int
	SlotsPerBox() int
	BoxRecord(box, slot int) (codec.Record, error)
	SetBoxRecord(box, slot int, r codec.Record) error
	PartyCount() int
	PartyRecord(i int) (codec.Record, error)
	SetPartyRecord(i int, r codec.Record) error
	// Transfer converts r to the save's generation after checking it
	// against the save's availability limits.
	Transfer(r codec.Record) (codec.Record, error)
	InvalidTransferReason(r codec.Record) TransferReason
	// Finalize recomputes the container checksums
	Finalize()
	Bytes() []byte
}

// Option configures an opened save
type Option func(*container)

// WithConverter sets the converter used by Transfer
func WithConverter(c *transfer.Converter) Option {
	return func(s *container) { s.conv = c }
}

// WithPersonal sets the personal data used for party stats and form checks
func WithPersonal(p personal.Provider) Option {
	return func(s *container) { s.tables = p }
}

// MaxPartySize is the number of party slots in every format
const MaxPartySize = 6

// Open detects the format of data and opens it in place. The save keeps
// data; callers must not modify it while the save is in use.
func Open(data []byte, opts ...Option) (Save, error) {
	v, err := Detect(data)
	if err != nil {
		return nil, err
	}
	var st store
	switch v.Generation() {
	case game.Three:
		st, err = openGen3(data, v)
	case game.Four:
		st, err = openGen4(data, v)
	case game.Five:
		st, err = openGen5(data, v)
	default:
		st, err = open3DS(data, v)
	}
	if err != nil {
		return nil, err
	}

	c := &container{data: data, version: v, gen: v.Generation(), store: st}
	for _, opt := range opts {
		opt(c)
	}
	if c.tables == nil {
		c.tables = personal.Default()
	}
	if c.conv == nil {
		c.conv = transfer.NewConverter(c.tables)
	}
	return c, nil
}

// store is the format specific part of a save: where records live and how
// the container checksums are kept.
type store interface {
	boxes() int
	slots() int
	box(box, slot int) []byte
	setBox(box, slot int, b []byte)
	partyCount() int
	setPartyCount(n int)
	party(i int) ([]byte, error)
	setParty(i int, b []byte) error
	finalize()
}

type container struct {
	data    []byte
	version Version
	gen     codec.Generation
	store   store
	conv    *transfer.Converter
	tables  personal.Provider
}

func (c *container) Version() Version             { return c.version }
func (c *container) Generation() codec.Generation { return c.gen }
func (c *container) BoxCount() int                { return c.store.boxes() }
func (c *container) SlotsPerBox() int             { return c.store.slots() }
func (c *container) PartyCount() int              { return c.store.partyCount() }
func (c *container) Finalize()                    { c.store.finalize() }
func (c *container) Bytes() []byte                { return c.data }

func (c *container) checkBox(box, slot int) error {
	if box < 0 || box >= c.store.boxes() || slot < 0 || slot >= c.store.slots() {
		return fmt.Errorf("%w: box %d slot %d", ErrSlot, box, slot)
	}
	return nil
}

func (c *container) BoxRecord(box, slot int) (codec.Record, error) {
	if err := c.checkBox(box, slot); err != nil {
		return nil, err
	}
	return codec.New(c.gen, c.store.box(box, slot))
}

func (c *container) SetBoxRecord(box, slot int, r codec.Record) error {
	if err := c.checkBox(box, slot); err != nil {
		return err
	}
	if r.Generation() != c.gen {
		return fmt.Errorf("%w: %s record into a %s save", ErrGeneration, r.Generation(), c.version)
	}
	b := sealed(r)
	c.store.setBox(box, slot, b[:codec.BoxLength(c.gen)])
	return nil
}

func (c *container) PartyRecord(i int) (codec.Record, error) {
	if i < 0 || i >= c.store.partyCount() {
		return nil, fmt.Errorf("%w: party slot %d", ErrSlot, i)
	}
	b, err := c.store.party(i)
	if err != nil {
		return nil, err
	}
	return codec.New(c.gen, b)
}

// SetPartyRecord replaces party slot i, or appends when i is the current
// party size. Box-length records are given party data first.
func (c *container) SetPartyRecord(i int, r codec.Record) error {
	n := c.store.partyCount()
	if i < 0 || i > n || i >= MaxPartySize {
		return fmt.Errorf("%w: party slot %d", ErrSlot, i)
	}
	if r.Generation() != c.gen {
		return fmt.Errorf("%w: %s record into a %s save", ErrGeneration, r.Generation(), c.version)
	}
	if !r.IsParty() {
		p, err := c.withPartyData(r)
		if err != nil {
			return err
		}
		r = p
	}
	if err := c.store.setParty(i, sealed(r)); err != nil {
		return err
	}
	if i == n {
		c.store.setPartyCount(n + 1)
	}
	return nil
}

func (c *container) withPartyData(r codec.Record) (codec.Record, error) {
	p, err := codec.Blank(c.gen, true)
	if err != nil {
		return nil, err
	}
	src := r.Clone()
	src.Decrypt()
	copy(p.Bytes(), src.Bytes())
	p.UpdatePartyData(c.tables.For(c.gen))
	return p, nil
}

func (c *container) Transfer(r codec.Record) (codec.Record, error) {
	if reason := c.InvalidTransferReason(r); reason != ReasonNone {
		return nil, fmt.Errorf("%w: %s", ErrNotTransferable, reason)
	}
	return c.conv.Convert(r, c.gen)
}

// sealed returns r's bytes encrypted with a fresh checksum, leaving r as is
func sealed(r codec.Record) []byte {
	enc := r.Clone()
	enc.Decrypt()
	enc.RefreshChecksum()
	enc.Encrypt()
	return enc.Bytes()
}
