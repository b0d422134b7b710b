// Package personal provides per-species base data (base stats, gender ratio,
// growth rate, abilities and alternate form layout) consulted by the stat,
// gender and conversion code.
//
// The tables are read-only once loaded and safe to share between goroutines.
// A small built-in data set is embedded; complete tables are loaded from YAML
// with LoadYAML.
package personal

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ssargent/pkcore/pkg/derive"
	"github.com/ssargent/pkcore/pkg/game"
)

// AbilitySlots is the number of ability slots per species (two regular and
// one hidden)
const AbilitySlots = 3

// Info is the personal entry of one species or alternate form
type Info struct {
	Name          string
	Stats         [derive.StatCount]uint8
	GenderRatio   uint8
	Growth        derive.Growth
	Abilities     [AbilitySlots]uint16
	FormCount     uint8
	FormStatIndex uint16
}

// BaseStat returns the base value of stat s
func (i Info) BaseStat(s derive.Stat) int {
	return int(i.Stats[s])
}

// Ability returns the ability in slot (0, 1 or 2 for hidden)
func (i Info) Ability(slot int) uint16 {
	if slot < 0 || slot >= AbilitySlots {
		return 0
	}
	return i.Abilities[slot]
}

// AbilitySlot returns the first slot holding ability, or -1
func (i Info) AbilitySlot(ability uint16) int {
	for slot, a := range i.Abilities {
		if a != 0 && a == ability {
			return slot
		}
	}
	return -1
}

// HasForm reports whether form is a valid alternate form index
func (i Info) HasForm(form uint8) bool {
	return form == 0 || form < i.FormCount
}

// Table is the personal data visible to one generation
type Table interface {
	Generation() game.Generation
	MaxSpecies() uint16
	// Info resolves the entry of species in form, following the form index.
	Info(species uint16, form uint8) Info
	// FormStatIndex returns the entry index the form's base data lives at.
	FormStatIndex(species uint16, form uint8) int
	Name(species uint16) string
}

// Provider hands out the table of each generation
type Provider interface {
	For(g game.Generation) Table
}

// Dataset is an immutable set of personal entries. Entries 0..max species are
// indexed by species; dedicated alternate form entries follow.
type Dataset struct {
	entries []Info
}

// For returns the view of the data set a generation can see
func (d *Dataset) For(g game.Generation) Table {
	return &genTable{data: d, gen: g, max: game.LimitsFor(g).MaxSpecies}
}

// Len is the number of entries including alternate forms
func (d *Dataset) Len() int {
	return len(d.entries)
}

type genTable struct {
	data *Dataset
	gen  game.Generation
	max  uint16
}

func (t *genTable) Generation() game.Generation { return t.gen }
func (t *genTable) MaxSpecies() uint16          { return t.max }

func (t *genTable) FormStatIndex(species uint16, form uint8) int {
	if int(species) >= len(t.data.entries) {
		return 0
	}
	e := t.data.entries[species]
	if form == 0 || form >= e.FormCount || e.FormStatIndex == 0 {
		return int(species)
	}
	return int(e.FormStatIndex) + int(form) - 1
}

func (t *genTable) Info(species uint16, form uint8) Info {
	if species == 0 || species > t.max {
		return Info{}
	}
	idx := t.FormStatIndex(species, form)
	if idx == 0 || idx >= len(t.data.entries) {
		return Info{}
	}
	info := t.data.entries[idx]
	// hidden abilities arrived with generation five
	if t.gen < game.Five {
		info.Abilities[2] = 0
		if info.Abilities[1] == 0 {
			info.Abilities[1] = info.Abilities[0]
		}
	}
	return info
}

func (t *genTable) Name(species uint16) string {
	if int(species) >= len(t.data.entries) {
		return ""
	}
	return t.data.entries[species].Name
}

//go:embed builtin.yaml
var builtinYAML []byte

var loadDefault = sync.OnceValue(func() *Dataset {
	d, err := Parse(builtinYAML)
	if err != nil {
		panic("personal: built-in data set is invalid: " + err.Error())
	}
	return d
})

// Default returns the embedded data set
func Default() *Dataset {
	return loadDefault()
}

type formDoc struct {
	Stats     []uint8  `yaml:"stats"`
	Abilities []uint16 `yaml:"abilities"`
}

type speciesDoc struct {
	ID        uint16    `yaml:"id"`
	Name      string    `yaml:"name"`
	Stats     []uint8   `yaml:"stats"`
	Gender    uint8     `yaml:"gender"`
	Growth    uint8     `yaml:"growth"`
	Abilities []uint16  `yaml:"abilities"`
	FormCount uint8     `yaml:"form_count"`
	Forms     []formDoc `yaml:"forms"`
}

type document struct {
	Species []speciesDoc `yaml:"species"`
}

var errEmpty = errors.New("personal: no species defined")

// Parse builds a data set from YAML
func Parse(data []byte) (*Dataset, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse personal data: %w", err)
	}
	if len(doc.Species) == 0 {
		return nil, errEmpty
	}

	maxID := uint16(0)
	for _, s := range doc.Species {
		if s.ID > maxID {
			maxID = s.ID
		}
	}

	entries := make([]Info, int(maxID)+1)
	seen := make(map[uint16]bool, len(doc.Species))
	for _, s := range doc.Species {
		if s.ID == 0 {
			return nil, fmt.Errorf("personal: species %q has no id", s.Name)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("personal: duplicate species %d", s.ID)
		}
		seen[s.ID] = true

		info, err := buildInfo(s.Name, s.Stats, s.Abilities)
		if err != nil {
			return nil, fmt.Errorf("personal: species %d: %w", s.ID, err)
		}
		info.GenderRatio = s.Gender
		info.Growth = derive.Growth(s.Growth)
		if info.Growth >= derive.GrowthCount {
			return nil, fmt.Errorf("personal: species %d: invalid growth %d", s.ID, s.Growth)
		}
		info.FormCount = s.FormCount
		if info.FormCount == 0 {
			info.FormCount = 1
		}

		if len(s.Forms) > 0 {
			info.FormStatIndex = uint16(len(entries))
			if int(info.FormCount) < len(s.Forms)+1 {
				info.FormCount = uint8(len(s.Forms) + 1)
			}
			for i, f := range s.Forms {
				form, err := buildInfo(s.Name, f.Stats, f.Abilities)
				if err != nil {
					return nil, fmt.Errorf("personal: species %d form %d: %w", s.ID, i+1, err)
				}
				form.GenderRatio = info.GenderRatio
				form.Growth = info.Growth
				form.FormCount = info.FormCount
				entries = append(entries, form)
			}
		}
		entries[s.ID] = info
	}
	return &Dataset{entries: entries}, nil
}

func buildInfo(name string, stats []uint8, abilities []uint16) (Info, error) {
	var info Info
	if len(stats) != derive.StatCount {
		return info, fmt.Errorf("expected %d stats, got %d", derive.StatCount, len(stats))
	}
	if len(abilities) > AbilitySlots {
		return info, fmt.Errorf("expected at most %d abilities, got %d", AbilitySlots, len(abilities))
	}
	info.Name = name
	copy(info.Stats[:], stats)
	copy(info.Abilities[:], abilities)
	return info, nil
}

// LoadYAML reads a data set from a YAML file
func LoadYAML(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read personal data: %w", err)
	}
	return Parse(data)
}
