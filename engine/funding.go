package engine

import "github.com/rhushabh77/crowdfunding-backend/models"

// Remaining is the amount still to be funded for p in the given display
// currency: the converted total target minus the converted total collected,
// both legs priced at the same rate. Using one rate for both legs keeps
// relative progress rate-invariant for same-currency contributions.
func Remaining(p models.Product, currency string, rate models.ExchangeRate) float64 {
	return ToDisplay(p.Amount.USD, p.Amount.INR, currency, rate) -
		ToDisplay(p.Collected.USD, p.Collected.INR, currency, rate)
}

// PercentFunded is the funding percentage of p, always computed from the
// USD-denominated pair regardless of display currency: USD is the canonical
// accounting currency, only the remaining-amount label is localized. The
// result is not clamped; values over 100 surface stale over-funding so
// operators can spot it. A zero USD target yields 0 rather than a division
// by zero.
func PercentFunded(p models.Product) float64 {
	if p.Amount.USD == 0 {
		return 0
	}
	return p.Collected.USD / p.Amount.USD * 100
}

// displayFundedRatio is the ranking key of the catalog "funded" sort: the raw
// nominal collected figure in the display currency over the additive
// converted target. This disagrees with PercentFunded on purpose — the
// catalog has always ranked this way while the product view reports the
// USD-canonical percentage. Kept as-is pending a product decision; do not
// unify the two without one.
func displayFundedRatio(p models.Product, currency string, rate models.ExchangeRate) float64 {
	total := ToDisplay(p.Amount.USD, p.Amount.INR, currency, rate)
	if total == 0 {
		return 0
	}
	collected := p.Collected.USD
	if currency == CurrencyINR {
		collected = p.Collected.INR
	}
	return collected / total
}
