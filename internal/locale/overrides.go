package locale

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lehrbaum/firefly/internal/amount"
)

// Override adds a locale to the table or replaces the separators of an existing one.
type Override struct {
	Locale   string   `yaml:"locale"`
	Decimal  string   `yaml:"decimal"`
	Grouping []string `yaml:"grouping"`
}

type overridesFile struct {
	Locales []Override `yaml:"locales"`
}

// LoadOverrides reads an overrides file:
//
//	locales:
//	  - locale: de_CH
//	    decimal: "."
//	    grouping: ["'", "’"]
func LoadOverrides(path string) ([]Override, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read locale overrides %s: %w", path, err)
	}

	overrides, err := ParseOverrides(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse locale overrides %s: %w", path, err)
	}

	return overrides, nil
}

func ParseOverrides(r io.Reader) ([]Override, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f overridesFile
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	for i, o := range f.Locales {
		if _, err := o.separators(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}

	return f.Locales, nil
}

func (o Override) separators() (amount.Separators, error) {
	if _, err := ParseID(o.Locale); err != nil {
		return amount.Separators{}, err
	}

	decimal := []rune(o.Decimal)
	if len(decimal) != 1 {
		return amount.Separators{}, fmt.Errorf("locale %s: decimal %q must be a single character", o.Locale, o.Decimal)
	}

	grouping := make([]rune, 0, len(o.Grouping))

	for _, g := range o.Grouping {
		r := []rune(g)
		if len(r) != 1 {
			return amount.Separators{}, fmt.Errorf("locale %s: grouping %q must be a single character", o.Locale, g)
		}

		if r[0] == decimal[0] {
			return amount.Separators{}, fmt.Errorf("locale %s: %q is both decimal and grouping separator", o.Locale, g)
		}

		grouping = append(grouping, r[0])
	}

	return amount.NewSeparators(decimal[0], grouping...), nil
}

// WithOverrides returns a copy of t with overrides applied in order.
func (t *Table) WithOverrides(overrides []Override) (*Table, error) {
	entries := maps.Clone(t.entries)

	for _, o := range overrides {
		seps, err := o.separators()
		if err != nil {
			return nil, err
		}

		tag, err := ParseID(o.Locale)
		if err != nil {
			return nil, err
		}

		entries[canonicalID(tag)] = seps
	}

	return build(entries, t.defaultID)
}
