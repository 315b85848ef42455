package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rhushabh77/crowdfunding-backend/models"
)

// Aggregate folds a contribution list into the report shown on the results
// view. TotalUSD sums canonical USD amounts (every stored contribution is
// USD); TotalINR is that total scaled by the current rate, never a second
// ledger. Per-product totals keep first-seen order.
func Aggregate(contributions []models.ContributionWithProduct, rate models.ExchangeRate) models.AggregateReport {
	report := models.AggregateReport{
		PerProductTotals: []models.ProductTotal{},
	}

	index := map[string]int{}
	for _, c := range contributions {
		if c.Currency == CurrencyUSD {
			report.TotalUSD += c.Amount
		}

		id := c.Product.ID.Hex()
		pos, ok := index[id]
		if !ok {
			pos = len(report.PerProductTotals)
			index[id] = pos
			report.PerProductTotals = append(report.PerProductTotals, models.ProductTotal{
				ProductID: id,
				Name:      c.Product.Name,
			})
		}
		report.PerProductTotals[pos].Total += c.Amount
	}

	report.TotalINR = report.TotalUSD * rate.USDToINR
	return report
}

// BuildCSV renders the export: one row per contribution, then a blank line,
// a "Product Totals:" marker, the grand total and the per-product totals.
// Fields are not quote-escaped — a name or remark containing a comma will
// corrupt its row. Known limitation carried over from the export this
// replaces.
func BuildCSV(contributions []models.ContributionWithProduct, report models.AggregateReport) string {
	lines := []string{"Name,Product,Amount,Currency,Date,Time"}

	for _, c := range contributions {
		productName := c.Product.Name
		if productName == "" {
			productName = "N/A"
		}
		lines = append(lines, strings.Join([]string{
			c.Name,
			productName,
			formatAmount(c.Amount),
			c.Currency,
			c.CreatedAt.Format("02/01/2006"),
			fmt.Sprintf("%d:%02d", c.CreatedAt.Hour(), c.CreatedAt.Minute()),
		}, ","))
	}

	totals := []string{"Total Contribution," + formatAmount(report.TotalUSD)}
	for _, pt := range report.PerProductTotals {
		totals = append(totals, pt.Name+","+formatAmount(pt.Total))
	}

	return strings.Join(lines, "\n") + "\n\nProduct Totals:\n" + strings.Join(totals, "\n")
}

// formatAmount prints with the fewest digits that round-trip, so whole
// amounts come out bare ("300", not "300.00").
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
