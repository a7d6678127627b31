package amount

import (
	"fmt"
	"slices"
	"unicode"
)

// Separators describes the number convention of a locale: the rune that marks
// the decimal point and the runes used to group digits.
type Separators struct {
	Decimal  rune
	Grouping []rune
}

var (
	English = NewSeparators('.', ',')
	German  = NewSeparators(',', '.')
)

// NewSeparators builds a Separators value with a private, de-duplicated copy of grouping.
func NewSeparators(decimal rune, grouping ...rune) Separators {
	unique := make([]rune, 0, len(grouping))

	for _, g := range grouping {
		if slices.Contains(unique, g) {
			continue
		}

		unique = append(unique, g)
	}

	return Separators{Decimal: decimal, Grouping: unique}
}

// HasGrouping reports whether r is one of the declared grouping separators.
func (s Separators) HasGrouping(r rune) bool {
	return slices.Contains(s.Grouping, r)
}

func (s Separators) String() string {
	return fmt.Sprintf("decimal=%q grouping=%q", s.Decimal, string(s.Grouping))
}

// usable reports whether a strict locale parser can be built from s.
func (s Separators) usable() bool {
	switch {
	case s.Decimal <= 0, s.Decimal == unicode.ReplacementChar:
		return false
	case isDigit(s.Decimal), s.Decimal == '-', s.Decimal == '+':
		return false
	case s.HasGrouping(s.Decimal):
		return false
	}

	return true
}
