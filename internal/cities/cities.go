// Package cities holds the static city-to-coordinate table. The table is
// embedded as YAML, parsed once at process start and immutable after.
package cities

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kwarner/weathercli/internal/models"
)

// ErrCityNotFound is returned when a name has no entry in the table.
var ErrCityNotFound = errors.New("city not found")

// Entry is one row of the static table. Names are stored lowercase.
type Entry struct {
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

type tableFile struct {
	Cities []Entry `yaml:"cities"`
}

// Table is an immutable set of entries keyed by lowercase city name.
type Table struct {
	entries []Entry
	byName  map[string]Entry
}

//go:embed cities.yaml
var citiesYAML []byte

// Load parses the embedded table. Called once from main; the result is shared
// read-only for the rest of the run.
func Load() (*Table, error) {
	return parse(citiesYAML)
}

func parse(data []byte) (*Table, error) {
	var tf tableFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parse city table: %w", err)
	}
	if len(tf.Cities) == 0 {
		return nil, fmt.Errorf("city table is empty")
	}

	t := &Table{byName: make(map[string]Entry, len(tf.Cities))}
	for _, e := range tf.Cities {
		key := strings.ToLower(strings.TrimSpace(e.Name))
		if key == "" {
			return nil, fmt.Errorf("city table entry with empty name")
		}
		e.Name = key
		if _, dup := t.byName[key]; dup {
			// Names differing only by case collapse to one entry.
			continue
		}
		t.byName[key] = e
		t.entries = append(t.entries, e)
	}
	sort.Slice(t.entries, func(i, j int) bool { return t.entries[i].Name < t.entries[j].Name })
	return t, nil
}

// Lookup resolves a city name to a Location. Matching is case-insensitive and
// exact; a miss returns ErrCityNotFound with a pointer at the list command.
func (t *Table) Lookup(name string) (models.Location, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	e, ok := t.byName[key]
	if !ok {
		return models.Location{}, fmt.Errorf("%w: %q (use --list-cities to see available cities)", ErrCityNotFound, name)
	}
	return models.Location{
		Latitude:  e.Latitude,
		Longitude: e.Longitude,
		Name:      titleCase(e.Name),
	}, nil
}

// All returns the entries sorted by name.
func (t *Table) All() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len reports the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// titleCase uppercases the first letter of each space-separated word, matching
// how the table's lowercase keys are shown to users ("new york" -> "New York").
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
