// Package transfer moves records forward between generations.
//
// Conversion is defined only from a generation to its immediate successor.
// Longer moves are walked one step at a time along the route table:
//
//	3 -> 4 -> 5 -> 6 -> 7 -> 8
//	                    7 -> LGPE -> 8
//
// Each step builds a zero-initialized destination, copies every field the
// destination can represent, resolves the ability against the destination's
// personal table and refreshes the checksum. The source record is never
// touched; the result is always decrypted.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ssargent/pkcore/pkg/codec"
	"github.com/ssargent/pkcore/pkg/game"
	"github.com/ssargent/pkcore/pkg/logging"
	"github.com/ssargent/pkcore/pkg/personal"
)

var (
	// ErrDowngrade is returned when the target precedes the source
	ErrDowngrade = errors.New("transfer: cannot convert to an earlier generation")
	// ErrNoRoute is returned when no chain of steps links the two formats
	ErrNoRoute = errors.New("transfer: no conversion route")
)

// Converter converts records using a set of personal tables
type Converter struct {
	tables  personal.Provider
	logger  *slog.Logger
	now     func() time.Time
	workers int
}

// Option configures a Converter
type Option func(*Converter)

// WithLogger sets the logger dropped fields are reported to
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) { c.logger = l }
}

// WithClock replaces the clock used for met dates stamped during conversion
func WithClock(now func() time.Time) Option {
	return func(c *Converter) { c.now = now }
}

// WithWorkers bounds the parallelism of ConvertAll. Zero or less means no
// bound.
func WithWorkers(n int) Option {
	return func(c *Converter) { c.workers = n }
}

// NewConverter returns a Converter. A nil provider selects the embedded
// personal data.
func NewConverter(tables personal.Provider, opts ...Option) *Converter {
	if tables == nil {
		tables = personal.Default()
	}
	c := &Converter{
		tables: tables,
		logger: logging.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Drop names a source field the destination could not represent
type Drop struct {
	From  codec.Generation
	To    codec.Generation
	Field string
}

func (d Drop) String() string {
	return fmt.Sprintf("%s->%s %s", d.From, d.To, d.Field)
}

// Report describes what a conversion lost along the way
type Report struct {
	From codec.Generation
	To   codec.Generation
	// Path lists every generation visited, source and target included.
	Path    []codec.Generation
	Dropped []Drop
	// LiteralAbility is set when a step found a stored ability that the
	// destination table would not pick for the record's slot and copied it
	// as is.
	LiteralAbility bool
}

// Lossy reports whether any field was dropped
func (r *Report) Lossy() bool { return len(r.Dropped) > 0 }

// Route returns the generations visited converting from into to, both ends
// included.
func Route(from, to codec.Generation) ([]codec.Generation, error) {
	if !from.Valid() || !to.Valid() {
		return nil, fmt.Errorf("%w: %s to %s", ErrNoRoute, from, to)
	}
	if to < from {
		return nil, fmt.Errorf("%w: %s to %s", ErrDowngrade, from, to)
	}
	path := []codec.Generation{from}
	for cur := from; cur != to; {
		next, ok := nextHop(cur, to)
		if !ok {
			return nil, fmt.Errorf("%w: %s to %s", ErrNoRoute, from, to)
		}
		path = append(path, next)
		cur = next
	}
	return path, nil
}

func nextHop(from, target codec.Generation) (codec.Generation, bool) {
	switch from {
	case game.Three, game.Four, game.Five, game.Six:
		return from + 1, true
	case game.Seven:
		if target == game.LGPE {
			return game.LGPE, true
		}
		return game.Eight, true
	case game.LGPE:
		return game.Eight, target == game.Eight
	}
	return game.Unknown, false
}

// Convert returns src converted to target. Converting to the source's own
// generation returns a decrypted copy.
func (c *Converter) Convert(src codec.Record, target codec.Generation) (codec.Record, error) {
	r, _, err := c.ConvertWithReport(src, target)
	return r, err
}

// ConvertWithReport is Convert plus a report of every dropped field
func (c *Converter) ConvertWithReport(src codec.Record, target codec.Generation) (codec.Record, *Report, error) {
	path, err := Route(src.Generation(), target)
	if err != nil {
		return nil, nil, err
	}
	rep := &Report{From: src.Generation(), To: target, Path: path}

	cur := src.Clone()
	cur.Decrypt()
	for _, next := range path[1:] {
		cur, err = c.step(cur, next, rep)
		if err != nil {
			return nil, nil, err
		}
	}
	cur.RefreshChecksum()

	for _, d := range rep.Dropped {
		c.logger.Debug("conversion dropped field",
			"from", d.From.String(), "to", d.To.String(), "field", d.Field,
			"species", src.Species())
	}
	return cur, rep, nil
}

// ConvertAll converts records concurrently. Results keep the input order.
// The first error cancels the remaining work.
func (c *Converter) ConvertAll(ctx context.Context, records []codec.Record, target codec.Generation) ([]codec.Record, error) {
	out := make([]codec.Record, len(records))
	g, gctx := errgroup.WithContext(ctx)
	if c.workers > 0 {
		g.SetLimit(c.workers)
	}
	for i, r := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			conv, err := c.Convert(r, target)
			if err != nil {
				return fmt.Errorf("record %d: %w", i, err)
			}
			out[i] = conv
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
