package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ssargent/pkcore/pkg/codec"
	"github.com/ssargent/pkcore/pkg/game"
)

var extGenerations = map[string]game.Generation{
	".pk3": game.Three,
	".pk4": game.Four,
	".pk5": game.Five,
	".pk6": game.Six,
	".pk7": game.Seven,
	".pb7": game.LGPE,
	".pk8": game.Eight,
}

// generationFor resolves the generation of a record file from the --gen flag,
// falling back to the file extension
func generationFor(path, genFlag string) (game.Generation, error) {
	if genFlag != "" {
		return game.ParseGeneration(genFlag)
	}
	if g, ok := extGenerations[strings.ToLower(filepath.Ext(path))]; ok {
		return g, nil
	}
	return game.Unknown, fmt.Errorf("cannot tell the generation of %s, pass --gen", path)
}

func extension(g game.Generation) string {
	for ext, eg := range extGenerations {
		if eg == g {
			return ext
		}
	}
	return ".bin"
}

func readRecord(path, genFlag string) (codec.Record, error) {
	gen, err := generationFor(path, genFlag)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	r, err := codec.New(gen, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// writeRecord writes r to path, encrypted when asked. r is not modified.
func writeRecord(path string, r codec.Record, encrypt bool) error {
	out := r.Clone()
	out.RefreshChecksum()
	if encrypt {
		out.Encrypt()
	}
	return os.WriteFile(path, out.Bytes(), 0600)
}
