package amount_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehrbaum/firefly/internal/amount"
)

func TestParsed_IsCanonical(t *testing.T) {
	valid := []amount.Parsed{"0", "-0.5", "1234.56", "123456789012.12"}
	for _, p := range valid {
		assert.True(t, p.IsCanonical(), p)
	}

	invalid := []amount.Parsed{"", "-", "+1", "1.", ".5", "1,5", "1e5", " 1", "1.2.3", "abc"}
	for _, p := range invalid {
		assert.False(t, p.IsCanonical(), p)
	}
}

func TestParsed_Decimal(t *testing.T) {
	d, err := amount.Parsed("-1234.56").Decimal()
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("-1234.56").Equal(d))

	_, err = amount.Parsed("abc").Decimal()
	assert.ErrorIs(t, err, amount.ErrInvalidFormat)
}

func TestParsed_Cents(t *testing.T) {
	type testCase struct {
		in      amount.Parsed
		want    int64
		wantErr error
	}

	tests := []testCase{
		{in: "1234.56", want: 123456},
		{in: "-588.74", want: -58874},
		{in: "10", want: 1000},
		{in: "0.01", want: 1},
		{in: "0.005", want: 1},
		{in: "123456789012.12", want: 12345678901212},
		{in: "abc", wantErr: amount.ErrInvalidFormat},
		{in: "99999999999999999999", wantErr: amount.ErrNormalizationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			got, err := tt.in.Cents()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
