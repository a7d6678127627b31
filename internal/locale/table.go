package locale

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/de_AT"
	"github.com/go-playground/locales/de_CH"
	"github.com/go-playground/locales/de_DE"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/en_GB"
	"github.com/go-playground/locales/en_IN"
	"github.com/go-playground/locales/en_US"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/es_ES"
	"github.com/go-playground/locales/fr"
	"github.com/go-playground/locales/fr_CH"
	"github.com/go-playground/locales/fr_FR"
	"github.com/go-playground/locales/it"
	"github.com/go-playground/locales/it_IT"
	"github.com/go-playground/locales/nl"
	"github.com/go-playground/locales/nl_NL"
	"github.com/go-playground/locales/pt"
	"github.com/go-playground/locales/pt_BR"
	"github.com/go-playground/locales/pt_PT"
	"golang.org/x/text/language"

	"github.com/lehrbaum/firefly/internal/amount"
)

var ErrUnknownLocale = errors.New("unknown locale")

// DefaultID is used when neither the caller nor the configuration names a locale.
const DefaultID = "en_US"

func builtin() []locales.Translator {
	return []locales.Translator{
		en.New(), en_US.New(), en_GB.New(), en_IN.New(),
		de.New(), de_DE.New(), de_AT.New(), de_CH.New(),
		fr.New(), fr_FR.New(), fr_CH.New(),
		it.New(), it_IT.New(),
		es.New(), es_ES.New(),
		nl.New(), nl_NL.New(),
		pt.New(), pt_PT.New(), pt_BR.New(),
	}
}

// numberSymbols is implemented by every generated translator but is not part of locales.Translator.
type numberSymbols interface {
	Decimal() string
	Group() string
}

// Table resolves locale identifiers to number separators. It is immutable
// and safe for concurrent use.
type Table struct {
	defaultID string
	entries   map[string]amount.Separators
	ids       []string
	matcher   language.Matcher
}

// NewTable builds a table of the built-in locales. An empty defaultID selects DefaultID.
func NewTable(defaultID string) (*Table, error) {
	entries := make(map[string]amount.Separators)

	for _, tr := range builtin() {
		seps, err := separatorsOf(tr)
		if err != nil {
			return nil, err
		}

		entries[tr.Locale()] = seps
	}

	return build(entries, defaultID)
}

func build(entries map[string]amount.Separators, defaultID string) (*Table, error) {
	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	tags := make([]language.Tag, 0, len(ids))

	for _, id := range ids {
		tag, err := ParseID(id)
		if err != nil {
			return nil, err
		}

		tags = append(tags, tag)
	}

	t := &Table{
		entries: entries,
		ids:     ids,
		matcher: language.NewMatcher(tags),
	}

	if defaultID == "" {
		defaultID = DefaultID
	}

	id, _, err := t.resolve(defaultID)
	if err != nil {
		return nil, fmt.Errorf("default locale: %w", err)
	}

	t.defaultID = id

	return t, nil
}

func separatorsOf(tr locales.Translator) (amount.Separators, error) {
	symbols, ok := tr.(numberSymbols)
	if !ok {
		return amount.Separators{}, fmt.Errorf("locale %s exposes no number symbols", tr.Locale())
	}

	decimal := []rune(symbols.Decimal())
	if len(decimal) != 1 {
		return amount.Separators{}, fmt.Errorf("locale %s: decimal symbol %q is not a single character", tr.Locale(), symbols.Decimal())
	}

	return amount.NewSeparators(decimal[0], []rune(symbols.Group())...), nil
}

// Default returns the id used for empty lookups.
func (t *Table) Default() string {
	return t.defaultID
}

// Locales lists the supported ids in sorted order.
func (t *Table) Locales() []string {
	return slices.Clone(t.ids)
}

// Resolve maps id to a supported locale and its separators. Exact ids win;
// otherwise the closest supported locale is used if the match is at least
// of high confidence ("fr_BE" resolves to a French entry, "ja_JP" fails).
func (t *Table) Resolve(id string) (string, amount.Separators, error) {
	if strings.TrimSpace(id) == "" {
		return t.defaultID, t.entries[t.defaultID], nil
	}

	return t.resolve(id)
}

func (t *Table) resolve(id string) (string, amount.Separators, error) {
	tag, err := ParseID(id)
	if err != nil {
		return "", amount.Separators{}, err
	}

	key := canonicalID(tag)
	if seps, ok := t.entries[key]; ok {
		return key, seps, nil
	}

	_, index, confidence := t.matcher.Match(tag)
	if confidence < language.High {
		return "", amount.Separators{}, fmt.Errorf("%w: %q", ErrUnknownLocale, id)
	}

	key = t.ids[index]

	return key, t.entries[key], nil
}

// Separators implements amount.SeparatorProvider.
func (t *Table) Separators(ctx context.Context, id string) (amount.Separators, error) {
	if err := ctx.Err(); err != nil {
		return amount.Separators{}, err
	}

	_, seps, err := t.Resolve(id)

	return seps, err
}

// FromAcceptLanguage picks the best supported locale for an Accept-Language
// header, falling back to the default locale.
func (t *Table) FromAcceptLanguage(header string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return t.defaultID
	}

	for _, tag := range tags {
		if _, ok := t.entries[canonicalID(tag)]; ok {
			return canonicalID(tag)
		}
	}

	_, index, confidence := t.matcher.Match(tags...)
	if confidence < language.High {
		return t.defaultID
	}

	return t.ids[index]
}

// ParseID parses locale identifiers in POSIX ("de_DE.UTF-8@euro"),
// underscore ("de_DE") or BCP 47 ("de-DE") form.
func ParseID(id string) (language.Tag, error) {
	s := strings.TrimSpace(id)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}

	s = strings.ReplaceAll(s, "_", "-")
	if s == "" {
		return language.Und, fmt.Errorf("%w: %q", ErrUnknownLocale, id)
	}

	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("%w: %q: %w", ErrUnknownLocale, id, err)
	}

	return tag, nil
}

func canonicalID(tag language.Tag) string {
	return strings.ReplaceAll(tag.String(), "-", "_")
}
