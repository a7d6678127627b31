package amount

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseLocale parses raw strictly in the declared convention of seps.
//
// Unlike Normalize it never guesses: separators from another convention,
// a second decimal separator, grouping inside the fraction or stray
// characters all fail with *InvalidFormatError. The result keeps the scale
// of the input ("1,50" -> "1.50").
func ParseLocale(raw string, seps Separators) (Parsed, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrEmpty
	}

	if !seps.usable() {
		return "", fmt.Errorf("%w: %s", ErrFormatterUnavailable, seps)
	}

	value := []rune(strings.Map(dropSpaces, fold(trimmed)))
	invalid := &InvalidFormatError{Input: trimmed}

	var b strings.Builder

	var digits int

	decimalSeen := false

	for i, r := range value {
		switch {
		case isDigit(r):
			b.WriteRune(r)
			digits++
		case (r == '-' || r == '+') && i == 0:
			if r == '-' {
				b.WriteByte('-')
			}
		case r == seps.Decimal:
			if decimalSeen {
				return "", invalid
			}

			if digits == 0 {
				b.WriteByte('0')
			}

			b.WriteByte('.')

			decimalSeen = true
		case seps.HasGrouping(r):
			if decimalSeen {
				return "", invalid
			}
		default:
			return "", invalid
		}
	}

	normalized := b.String()
	if !canonicalPattern.MatchString(normalized) {
		return "", invalid
	}

	return render(normalized)
}

// render re-renders s through a decimal at its original scale and checks the round trip.
func render(s string) (Parsed, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNormalizationFailed, err)
	}

	out := d.StringFixed(max(-d.Exponent(), 0))

	back, err := decimal.NewFromString(out)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNormalizationFailed, err)
	}

	if !back.Equal(d) || !canonicalPattern.MatchString(out) {
		return "", fmt.Errorf("%w: %q rendered as %q", ErrNormalizationFailed, s, out)
	}

	return Parsed(out), nil
}

func dropSpaces(r rune) rune {
	switch r {
	case ' ', '\u00a0', '\u202f':
		return -1
	}

	return r
}
