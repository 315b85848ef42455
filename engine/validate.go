package engine

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rhushabh77/crowdfunding-backend/models"
)

// Payment handles derived from the submitted currency. The system records
// intent to pay only; it never moves money.
const (
	PaymentMethodVenmo = "venmo"
	PaymentMethodUPI   = "upi"
)

// ErrInvalidAmount rejects submissions whose amount is not a positive number.
var ErrInvalidAmount = errors.New("amount must be a number greater than 0")

// ExceedsRemainingError rejects a contribution whose canonical USD value is
// larger than what the product still needs. Remaining is expressed in the
// currency the contributor submitted so the message reads naturally.
type ExceedsRemainingError struct {
	Remaining float64
	Currency  string
}

func (e *ExceedsRemainingError) Error() string {
	return fmt.Sprintf("contribution cannot exceed %s %s",
		strconv.FormatFloat(e.Remaining, 'f', -1, 64), strings.ToUpper(e.Currency))
}

// CanonicalContribution is the outcome of a successful validation: the
// submitted amount normalized to the canonical ledger currency (USD).
type CanonicalContribution struct {
	Amount        float64
	Currency      string
	IsConverted   bool
	PaymentMethod string
}

// Validate parses a proposed contribution, normalizes it to USD and enforces
// the remaining-amount cap. The cap is checked against the USD ledger
// (amount.usd − collected.usd) regardless of the display currency in use.
// Pure: submission to the store is the caller's job.
func Validate(p models.Product, rawAmount, currency string, rate models.ExchangeRate) (CanonicalContribution, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(rawAmount), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return CanonicalContribution{}, ErrInvalidAmount
	}

	canonical := amount
	converted := false
	method := PaymentMethodVenmo
	if currency == CurrencyINR {
		canonical = amount / rate.USDToINR
		converted = true
		method = PaymentMethodUPI
	}

	remainingUSD := p.Amount.USD - p.Collected.USD
	if canonical > remainingUSD {
		display := remainingUSD
		if currency == CurrencyINR {
			display = remainingUSD * rate.USDToINR
		}
		return CanonicalContribution{}, &ExceedsRemainingError{Remaining: display, Currency: currency}
	}

	return CanonicalContribution{
		Amount:        canonical,
		Currency:      CurrencyUSD,
		IsConverted:   converted,
		PaymentMethod: method,
	}, nil
}
