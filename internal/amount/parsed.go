package amount

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

var canonicalPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// Parsed is an amount in the ledger's wire format: an optional leading "-",
// ASCII digits and an optional "." followed by digits.
//
// In lenient mode an input nothing could be extracted from is passed through
// unchanged, so callers that forward a Parsed downstream should check IsCanonical.
type Parsed string

func (p Parsed) String() string {
	return string(p)
}

// IsCanonical reports whether p matches the canonical decimal grammar.
func (p Parsed) IsCanonical() bool {
	return canonicalPattern.MatchString(string(p))
}

// Decimal returns p as an arbitrary-precision decimal.
func (p Parsed) Decimal() (decimal.Decimal, error) {
	if !p.IsCanonical() {
		return decimal.Decimal{}, &InvalidFormatError{Input: string(p)}
	}

	d, err := decimal.NewFromString(string(p))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %w", ErrNormalizationFailed, err)
	}

	return d, nil
}

// Cents converts p into an integer number of cents, rounding to two places.
// Example: "1234.56" -> 123456, "-588.74" -> -58874, "10" -> 1000.
func (p Parsed) Cents() (int64, error) {
	d, err := p.Decimal()
	if err != nil {
		return 0, err
	}

	cents := d.Shift(2).Round(0).BigInt()
	if !cents.IsInt64() {
		return 0, fmt.Errorf("%w: %s does not fit into cents", ErrNormalizationFailed, p)
	}

	return cents.Int64(), nil
}
