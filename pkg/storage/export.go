package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/pkcore/pkg/codec"
)

const (
	exportMagic   = "pkcore-bank"
	exportVersion = 1
)

// ErrBadExport is returned when an import stream is not a bank export
var ErrBadExport = errors.New("storage: not a bank export")

type exportHeader struct {
	Magic   string `cbor:"magic"`
	Version int    `cbor:"version"`
}

type exportEntry struct {
	Meta Meta   `cbor:"meta"`
	Data []byte `cbor:"data"`
}

// Export writes every record to w as a zstd compressed CBOR sequence: a
// header followed by one entry per record. It returns the number of records
// written.
func (b *Bank) Export(w io.Writer) (int, error) {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return 0, err
	}
	enc := encMode.NewEncoder(zw)
	if err := enc.Encode(exportHeader{Magic: exportMagic, Version: exportVersion}); err != nil {
		zw.Close()
		return 0, err
	}

	n := 0
	err = b.eachMeta(func(m Meta) error {
		id, err := ksuid.Parse(m.ID)
		if err != nil {
			return err
		}
		v, err := b.get(key(recordPrefix, id.Bytes()))
		if err != nil {
			return err
		}
		if err := enc.Encode(exportEntry{Meta: m, Data: v[1:]}); err != nil {
			return err
		}
		n++
		return nil
	})
	if err != nil {
		zw.Close()
		return n, fmt.Errorf("export failed: %w", err)
	}
	if err := zw.Close(); err != nil {
		return n, err
	}
	b.logger.Info("bank exported", "records", n)
	return n, nil
}

// Import reads an Export stream. Records keep their ids; content already in
// the bank is skipped. It returns the number of records added.
func (b *Bank) Import(r io.Reader) (int, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return 0, err
	}
	defer zr.Close()
	dec := decMode.NewDecoder(zr)

	var hdr exportHeader
	if err := dec.Decode(&hdr); err != nil || hdr.Magic != exportMagic {
		return 0, ErrBadExport
	}
	if hdr.Version != exportVersion {
		return 0, fmt.Errorf("%w: version %d", ErrBadExport, hdr.Version)
	}

	n := 0
	for {
		var e exportEntry
		err := dec.Decode(&e)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return n, fmt.Errorf("import failed after %d records: %w", n, err)
		}

		id, err := ksuid.Parse(e.Meta.ID)
		if err != nil {
			return n, fmt.Errorf("import: bad id %q: %w", e.Meta.ID, err)
		}
		rec, err := codec.New(e.Meta.Generation, e.Data)
		if err != nil {
			return n, fmt.Errorf("import %s: %w", id, err)
		}
		rec = decrypted(rec)
		if !bytes.Equal(contentHash(rec.Generation(), rec.Bytes()), e.Meta.Hash) {
			return n, fmt.Errorf("import %s: content hash mismatch", id)
		}
		_, added, err := b.put(id, rec, e.Meta.Added)
		if err != nil {
			return n, err
		}
		if added {
			n++
		}
	}
	b.logger.Info("bank imported", "records", n)
	return n, nil
}
