package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rhushabh77/crowdfunding-backend/models"
)

func product(amountUSD, amountINR, collectedUSD, collectedINR float64) models.Product {
	return models.Product{
		Amount:    models.CurrencyAmounts{USD: amountUSD, INR: amountINR},
		Collected: models.CurrencyAmounts{USD: collectedUSD, INR: collectedINR},
	}
}

func TestRemaining(t *testing.T) {
	tests := []struct {
		name     string
		p        models.Product
		currency string
		rate     float64
		expected float64
	}{
		{
			name:     "usd target partially funded, usd display",
			p:        product(500, 0, 200, 0),
			currency: CurrencyUSD,
			rate:     85,
			expected: 300,
		},
		{
			name:     "usd target partially funded, inr display",
			p:        product(500, 0, 200, 0),
			currency: CurrencyINR,
			rate:     85,
			expected: 25500,
		},
		{
			name:     "both legs contribute, usd display",
			p:        product(100, 8500, 50, 850),
			currency: CurrencyUSD,
			rate:     85,
			expected: 140,
		},
		{
			name:     "fully funded",
			p:        product(500, 0, 500, 0),
			currency: CurrencyUSD,
			rate:     85,
			expected: 0,
		},
		{
			name:     "over-collected goes negative",
			p:        product(500, 0, 600, 0),
			currency: CurrencyUSD,
			rate:     85,
			expected: -100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Remaining(tt.p, tt.currency, rateOf(tt.rate))
			assert.InDelta(t, tt.expected, got, 1e-6)
		})
	}
}

func TestRemainingSymmetricConversion(t *testing.T) {
	// Conversion applies to both the target and the collected leg with the
	// same rate, so progress is rate-invariant for same-currency funding.
	p := product(500, 0, 200, 0)
	for _, r := range []float64{80, 84.69, 85, 90} {
		inr := Remaining(p, CurrencyINR, rateOf(r))
		usd := Remaining(p, CurrencyUSD, rateOf(r))
		assert.InDelta(t, usd, inr/r, 1e-6)
	}
}

func TestPercentFunded(t *testing.T) {
	assert.InDelta(t, 40, PercentFunded(product(500, 0, 200, 0)), 1e-9)

	// Unclamped: stale data with collected above target must surface as-is.
	assert.InDelta(t, 120, PercentFunded(product(500, 0, 600, 0)), 1e-9)

	// Zero USD target reports the sentinel instead of dividing by zero.
	assert.Equal(t, 0.0, PercentFunded(product(0, 8500, 0, 100)))

	// The INR legs never enter the canonical percentage.
	assert.InDelta(t, 40, PercentFunded(product(500, 99999, 200, 12345)), 1e-9)
}

func TestDisplayFundedRatio(t *testing.T) {
	p := product(100, 8500, 50, 4250)
	r := rateOf(85)

	// usd display: 50 / (100 + 8500/85) = 50/200
	assert.InDelta(t, 0.25, displayFundedRatio(p, CurrencyUSD, r), 1e-9)
	// inr display: 4250 / (100*85 + 8500) = 4250/17000
	assert.InDelta(t, 0.25, displayFundedRatio(p, CurrencyINR, r), 1e-9)

	// The catalog key disagrees with the canonical percentage by design.
	assert.InDelta(t, 50, PercentFunded(p), 1e-9)

	assert.Equal(t, 0.0, displayFundedRatio(product(0, 0, 10, 10), CurrencyUSD, r))
}
