package engine

import "github.com/rhushabh77/crowdfunding-backend/models"

// Display currencies. USD is the canonical ledger currency; INR figures are
// always a rate-scaled view.
const (
	CurrencyUSD = "usd"
	CurrencyINR = "inr"
)

// ValidCurrency reports whether s is a supported display currency.
func ValidCurrency(s string) bool {
	return s == CurrencyUSD || s == CurrencyINR
}

// ToDisplay sums a product's two independent nominal figures into a single
// number in the requested display currency. This is additive after
// conversion, not a unit conversion of one value: the usd and inr legs are
// decoupled targets and both contribute to the displayed total.
//
// The rate must be positive; callers reject non-positive rates at the
// boundary before computing.
func ToDisplay(nominalUSD, nominalINR float64, currency string, rate models.ExchangeRate) float64 {
	if currency == CurrencyINR {
		return nominalUSD*rate.USDToINR + nominalINR
	}
	return nominalUSD + nominalINR/rate.USDToINR
}
