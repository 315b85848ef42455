package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRejectsBadAmounts(t *testing.T) {
	p := product(500, 0, 200, 0)
	r := rateOf(85)

	for _, raw := range []string{"", "abc", "0", "-10", "-0.01", "NaN", "+Inf", "1e999"} {
		_, err := Validate(p, raw, CurrencyUSD, r)
		assert.ErrorIs(t, err, ErrInvalidAmount, "raw=%q", raw)

		_, err = Validate(p, raw, CurrencyINR, r)
		assert.ErrorIs(t, err, ErrInvalidAmount, "raw=%q", raw)
	}
}

func TestValidateUSDAtCap(t *testing.T) {
	p := product(500, 0, 200, 0)
	r := rateOf(85)

	got, err := Validate(p, "300", CurrencyUSD, r)
	require.NoError(t, err)
	assert.Equal(t, 300.0, got.Amount)
	assert.Equal(t, CurrencyUSD, got.Currency)
	assert.False(t, got.IsConverted)
	assert.Equal(t, PaymentMethodVenmo, got.PaymentMethod)
}

func TestValidateUSDExceedsRemaining(t *testing.T) {
	p := product(500, 0, 200, 0)
	r := rateOf(85)

	_, err := Validate(p, "350", CurrencyUSD, r)
	require.Error(t, err)

	var exceeds *ExceedsRemainingError
	require.ErrorAs(t, err, &exceeds)
	assert.Equal(t, 300.0, exceeds.Remaining)
	assert.Equal(t, CurrencyUSD, exceeds.Currency)
	assert.Equal(t, "contribution cannot exceed 300 USD", err.Error())
}

func TestValidateINRConversion(t *testing.T) {
	p := product(500, 0, 200, 0)
	r := rateOf(85)

	// 25500 INR at 85 is exactly the 300 USD cap.
	got, err := Validate(p, "25500", CurrencyINR, r)
	require.NoError(t, err)
	assert.InDelta(t, 300, got.Amount, 1e-9)
	assert.Equal(t, CurrencyUSD, got.Currency)
	assert.True(t, got.IsConverted)
	assert.Equal(t, PaymentMethodUPI, got.PaymentMethod)

	// One rupee more tips over the cap.
	_, err = Validate(p, "25501", CurrencyINR, r)
	var exceeds *ExceedsRemainingError
	require.ErrorAs(t, err, &exceeds)
	assert.Equal(t, CurrencyINR, exceeds.Currency)
	assert.InDelta(t, 25500, exceeds.Remaining, 1e-9)
}

func TestValidateFullyFundedRejectsEverything(t *testing.T) {
	p := product(500, 0, 500, 0)
	r := rateOf(85)

	_, err := Validate(p, "0.01", CurrencyUSD, r)
	var exceeds *ExceedsRemainingError
	require.ErrorAs(t, err, &exceeds)
	assert.Equal(t, 0.0, exceeds.Remaining)
}

func TestValidateTrimsWhitespace(t *testing.T) {
	p := product(500, 0, 0, 0)
	got, err := Validate(p, "  42.50 ", CurrencyUSD, rateOf(85))
	require.NoError(t, err)
	assert.Equal(t, 42.5, got.Amount)
}
