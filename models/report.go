package models

// ProductTotal is one per-product line of the aggregate report.
type ProductTotal struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Total     float64 `json:"total"`
}

// AggregateReport is recomputed from the full contribution list on every
// aggregation pass; it is never stored. TotalINR is a rate-scaled view of
// TotalUSD, not an independently summed ledger. PerProductTotals keeps
// first-seen order so exports are deterministic.
type AggregateReport struct {
	TotalUSD         float64        `json:"totalUsd"`
	TotalINR         float64        `json:"totalInr"`
	PerProductTotals []ProductTotal `json:"perProductTotals"`
}
