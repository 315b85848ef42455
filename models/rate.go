package models

import "time"

// ExchangeRate is the USD to INR conversion in effect for a session. It is
// replaced as a whole on every fetch, never partially updated.
type ExchangeRate struct {
	USDToINR   float64   `json:"usdToInr"`
	FetchedAt  time.Time `json:"fetchedAt"`
	IsFallback bool      `json:"isFallback"`
}
