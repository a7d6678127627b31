package amount

import (
	"fmt"
	"strings"

	"golang.org/x/text/width"
)

// Mode selects how unparseable input is treated and which algorithm runs.
type Mode int

const (
	// ModeLenient runs the character-stream algorithm and passes unparseable
	// input through unchanged.
	ModeLenient Mode = iota
	// ModeStrict runs the character-stream algorithm and fails with
	// *InvalidFormatError when no decimal can be extracted.
	ModeStrict
	// ModeLocale trusts only the declared separators and rejects anything else.
	ModeLocale
)

func (m Mode) String() string {
	switch m {
	case ModeLenient:
		return "lenient"
	case ModeStrict:
		return "strict"
	case ModeLocale:
		return "locale"
	}

	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses the textual name of a Mode. An empty name selects ModeLenient.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lenient":
		return ModeLenient, nil
	case "strict":
		return ModeStrict, nil
	case "locale":
		return ModeLocale, nil
	}

	return ModeLenient, fmt.Errorf("unknown amount mode %q", s)
}

// Grouping marks accepted regardless of the declared convention.
var implicitGrouping = []rune{' ', '\u00a0', '\u202f', '\''}

var minusFolder = strings.NewReplacer("\u2212", "-")

// Normalize turns free-form amount text into the canonical decimal string
// using the lenient policy. It fails only with ErrEmpty.
func Normalize(raw string, seps Separators) (Parsed, error) {
	return Parse(raw, seps, ModeLenient)
}

// Parse normalizes raw under the given mode.
func Parse(raw string, seps Separators, mode Mode) (Parsed, error) {
	switch mode {
	case ModeLenient, ModeStrict:
		return parseStream(raw, seps, mode)
	case ModeLocale:
		return ParseLocale(raw, seps)
	}

	return "", fmt.Errorf("unsupported amount mode %s", mode)
}

func parseStream(raw string, seps Separators, mode Mode) (Parsed, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrEmpty
	}

	value := []rune(fold(trimmed))
	grouping := groupingCandidates(seps)
	decimalSep, hasDecimal := detectDecimal(value, seps.Decimal, grouping)

	var b strings.Builder

	b.Grow(len(value) + 1)

	var digits int

	decimalWritten := false

	for i, r := range value {
		switch {
		case r == '-' && i == 0:
			b.WriteByte('-')
		case hasDecimal && r == decimalSep:
			if decimalWritten {
				continue
			}

			if digits == 0 {
				b.WriteByte('0')
			}

			b.WriteByte('.')

			decimalWritten = true
		case isDigit(r):
			b.WriteRune(r)
			digits++
		}
	}

	result := b.String()
	if result == "" || result == "-" {
		if mode == ModeStrict {
			return "", &InvalidFormatError{Input: trimmed}
		}

		return Parsed(trimmed), nil
	}

	return Parsed(result), nil
}

// groupingCandidates merges the declared grouping marks with the implicit ones,
// excluding the declared decimal separator.
func groupingCandidates(seps Separators) map[rune]bool {
	candidates := make(map[rune]bool, len(seps.Grouping)+len(implicitGrouping))

	for _, r := range seps.Grouping {
		candidates[r] = true
	}

	for _, r := range implicitGrouping {
		candidates[r] = true
	}

	delete(candidates, seps.Decimal)

	return candidates
}

// detectDecimal decides which rune, if any, acts as the decimal separator.
// Rules are applied in order and the first match wins.
func detectDecimal(value []rune, localeDecimal rune, grouping map[rune]bool) (rune, bool) {
	if i := lastIndex(value, localeDecimal); i >= 0 && digitsAfter(value, i) > 0 {
		return localeDecimal, true
	}

	lastDot := lastIndex(value, '.')
	lastComma := lastIndex(value, ',')

	switch {
	case lastDot >= 0 && lastComma >= 0:
		i := max(lastDot, lastComma)
		if digitsAfter(value, i) > 0 && !grouping[value[i]] {
			return value[i], true
		}
	case lastDot >= 0:
		if digitsAfter(value, lastDot) > 0 && !grouping['.'] {
			return '.', true
		}
	case lastComma >= 0:
		n := digitsAfter(value, lastComma)
		if n > 0 && !grouping[','] {
			return ',', true
		}

		// "12,5" reads as 12.5 even where the comma groups thousands.
		if n >= 1 && n <= 2 {
			return ',', true
		}
	}

	return 0, false
}

// fold maps full-width forms to ASCII and the Unicode minus sign to "-".
func fold(s string) string {
	return minusFolder.Replace(width.Fold.String(s))
}

func lastIndex(value []rune, r rune) int {
	for i := len(value) - 1; i >= 0; i-- {
		if value[i] == r {
			return i
		}
	}

	return -1
}

func digitsAfter(value []rune, i int) int {
	n := 0

	for _, r := range value[i+1:] {
		if isDigit(r) {
			n++
		}
	}

	return n
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
