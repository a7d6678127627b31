package amount_test

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehrbaum/firefly/internal/amount"
)

func TestNormalize(t *testing.T) {
	type args struct {
		raw  string
		seps amount.Separators
	}

	type testCase struct {
		name string
		args args
		want amount.Parsed
	}

	tests := []testCase{
		{
			name: "GermanGroupedDecimal",
			args: args{raw: "1.234,56", seps: amount.German},
			want: "1234.56",
		},
		{
			name: "EnglishGroupedDecimal",
			args: args{raw: "1,234.56", seps: amount.English},
			want: "1234.56",
		},
		{
			name: "NegativeGerman",
			args: args{raw: "-1.234,56", seps: amount.German},
			want: "-1234.56",
		},
		{
			name: "LeadingDecimal",
			args: args{raw: ",5", seps: amount.German},
			want: "0.5",
		},
		{
			name: "NegativeLeadingDecimal",
			args: args{raw: "-,5", seps: amount.German},
			want: "-0.5",
		},
		{
			name: "SpaceGrouping",
			args: args{raw: "1 234,56", seps: amount.German},
			want: "1234.56",
		},
		{
			name: "NoBreakSpaceGrouping",
			args: args{raw: "1\u00a0234\u00a0567,89", seps: amount.German},
			want: "1234567.89",
		},
		{
			name: "NarrowNoBreakSpaceGrouping",
			args: args{raw: "1\u202f234,5", seps: amount.NewSeparators(',', '\u202f')},
			want: "1234.5",
		},
		{
			name: "ApostropheGrouping",
			args: args{raw: "1'234.50", seps: amount.English},
			want: "1234.50",
		},
		{
			name: "GroupedIntegerGerman",
			args: args{raw: "1.234", seps: amount.German},
			want: "1234",
		},
		{
			name: "GroupedIntegerMultipleGroups",
			args: args{raw: "1.234.567", seps: amount.German},
			want: "1234567",
		},
		{
			name: "GroupedIntegerEnglish",
			args: args{raw: "1,234", seps: amount.English},
			want: "1234",
		},
		{
			name: "CommaFallbackTwoDigits",
			args: args{raw: "1,23", seps: amount.English},
			want: "1.23",
		},
		{
			name: "CommaFallbackOneDigit",
			args: args{raw: "12,5", seps: amount.English},
			want: "12.5",
		},
		{
			name: "KnownAmbiguity",
			args: args{raw: "12,34", seps: amount.English},
			want: "12.34",
		},
		{
			name: "DotDecimalUnderGermanWithoutGrouping",
			args: args{raw: "12.5", seps: amount.NewSeparators(',')},
			want: "12.5",
		},
		{
			name: "RightmostOfBothWins",
			args: args{raw: "1.234,56", seps: amount.NewSeparators('\u066b', '\u066c')},
			want: "1234.56",
		},
		{
			name: "LeadingPlusDropped",
			args: args{raw: "+12,50", seps: amount.German},
			want: "12.50",
		},
		{
			name: "TrailingMinusDropped",
			args: args{raw: "12-", seps: amount.German},
			want: "12",
		},
		{
			name: "CurrencySymbolDropped",
			args: args{raw: "€ 1.234,56", seps: amount.German},
			want: "1234.56",
		},
		{
			name: "SurroundingWhitespace",
			args: args{raw: "  \t42,00\n", seps: amount.German},
			want: "42.00",
		},
		{
			name: "FullWidthDigits",
			args: args{raw: "１２３，４５", seps: amount.German},
			want: "123.45",
		},
		{
			name: "UnicodeMinus",
			args: args{raw: "\u221212,50", seps: amount.German},
			want: "-12.50",
		},
		{
			name: "SmallAmount",
			args: args{raw: "0,01", seps: amount.German},
			want: "0.01",
		},
		{
			name: "HighPrecision",
			args: args{raw: "123456789012,12", seps: amount.German},
			want: "123456789012.12",
		},
		{
			name: "PassthroughLetters",
			args: args{raw: "abc", seps: amount.German},
			want: "abc",
		},
		{
			name: "PassthroughTrimmed",
			args: args{raw: "  abc  ", seps: amount.English},
			want: "abc",
		},
		{
			name: "PassthroughLoneMinus",
			args: args{raw: "-", seps: amount.English},
			want: "-",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := amount.Normalize(tt.args.raw, tt.args.seps)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Empty(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n"} {
		t.Run(fmt.Sprintf("%q", raw), func(t *testing.T) {
			_, err := amount.Normalize(raw, amount.German)
			assert.ErrorIs(t, err, amount.ErrEmpty)
			assert.Equal(t, amount.KindEmpty, amount.Kind(err))
		})
	}
}

func TestParse_Strict(t *testing.T) {
	type testCase struct {
		name      string
		raw       string
		want      amount.Parsed
		wantInput string
	}

	tests := []testCase{
		{name: "Valid", raw: "1.234,56", want: "1234.56"},
		{name: "Letters", raw: " abc ", wantInput: "abc"},
		{name: "LoneMinus", raw: "-", wantInput: "-"},
		{name: "OnlyGrouping", raw: ". ,", wantInput: ". ,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := amount.Parse(tt.raw, amount.German, amount.ModeStrict)
			if tt.wantInput == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)

				return
			}

			var invalid *amount.InvalidFormatError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.wantInput, invalid.Input)
			assert.ErrorIs(t, err, amount.ErrInvalidFormat)
		})
	}
}

func TestParse_UnsupportedMode(t *testing.T) {
	_, err := amount.Parse("1", amount.English, amount.Mode(42))
	assert.Error(t, err)
}

func TestParseMode(t *testing.T) {
	type testCase struct {
		in      string
		want    amount.Mode
		wantErr bool
	}

	tests := []testCase{
		{in: "", want: amount.ModeLenient},
		{in: "lenient", want: amount.ModeLenient},
		{in: " Strict ", want: amount.ModeStrict},
		{in: "LOCALE", want: amount.ModeLocale},
		{in: "fuzzy", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := amount.ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_CanonicalIsIdempotent(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	conventions := []amount.Separators{
		amount.English,
		amount.NewSeparators('.'),
		amount.NewSeparators('.', ' ', '\''),
	}

	for range 500 {
		s := randomCanonical(rng)

		for _, seps := range conventions {
			got, err := amount.Normalize(s, seps)
			require.NoError(t, err)
			require.Equal(t, amount.Parsed(s), got, "separators %s", seps)
			require.True(t, got.IsCanonical())
		}
	}
}

func TestNormalize_RoundTrip(t *testing.T) {
	type convention struct {
		seps     amount.Separators
		grouping []rune
	}

	conventions := []convention{
		{seps: amount.English, grouping: []rune{',', ' ', '\u00a0', '\u202f', '\''}},
		{seps: amount.German, grouping: []rune{'.', ' ', '\u00a0', '\u202f', '\''}},
	}

	rng := rand.New(rand.NewPCG(2024, 1))

	for range 1000 {
		c := conventions[rng.IntN(len(conventions))]
		negative, intPart, frac := randomParts(rng, 12+rng.IntN(6))
		group := c.grouping[rng.IntN(len(c.grouping))]

		var rendered strings.Builder
		if negative {
			rendered.WriteByte('-')
		}

		rendered.WriteString(insertGrouping(rng, intPart, group))

		if frac != "" {
			rendered.WriteRune(c.seps.Decimal)
			rendered.WriteString(frac)
		}

		want := canonical(negative, intPart, frac)

		got, err := amount.Normalize(rendered.String(), c.seps)
		require.NoError(t, err)
		require.Equal(t, amount.Parsed(want), got, "input %q", rendered.String())

		for _, mode := range []amount.Mode{amount.ModeStrict, amount.ModeLocale} {
			// the apostrophe is never a declared mark of these conventions
			if mode == amount.ModeLocale && group == '\'' {
				continue
			}

			got, err := amount.Parse(rendered.String(), c.seps, mode)
			require.NoError(t, err, "mode %s input %q", mode, rendered.String())
			require.Equal(t, amount.Parsed(want), got, "mode %s input %q", mode, rendered.String())
		}
	}
}

func randomCanonical(rng *rand.Rand) string {
	negative, intPart, frac := randomParts(rng, 1+rng.IntN(16))
	if rng.IntN(4) == 0 {
		intPart = "0"
	}

	return canonical(negative, intPart, frac)
}

// randomParts returns a sign, an integer part without leading zeros and an optional fraction.
func randomParts(rng *rand.Rand, intDigits int) (bool, string, string) {
	var b strings.Builder

	b.WriteByte(byte('1' + rng.IntN(9)))

	for range intDigits - 1 {
		b.WriteByte(byte('0' + rng.IntN(10)))
	}

	var frac strings.Builder
	for range rng.IntN(5) {
		frac.WriteByte(byte('0' + rng.IntN(10)))
	}

	return rng.IntN(2) == 0, b.String(), frac.String()
}

func canonical(negative bool, intPart, frac string) string {
	s := intPart
	if frac != "" {
		s += "." + frac
	}

	if negative {
		s = "-" + s
	}

	return s
}

// insertGrouping places group between thousands, skipping boundaries at random.
func insertGrouping(rng *rand.Rand, digits string, group rune) string {
	var b strings.Builder

	head := len(digits) % 3
	if head == 0 {
		head = 3
	}

	b.WriteString(digits[:head])

	for i := head; i < len(digits); i += 3 {
		if rng.IntN(4) != 0 {
			b.WriteRune(group)
		}

		b.WriteString(digits[i : i+3])
	}

	return b.String()
}
