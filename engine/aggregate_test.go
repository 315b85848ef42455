package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rhushabh77/crowdfunding-backend/models"
)

func contributionFor(product models.ProductRef, contributor string, amount float64, at time.Time) models.ContributionWithProduct {
	return models.ContributionWithProduct{
		ID:        primitive.NewObjectID(),
		Name:      contributor,
		Amount:    amount,
		Currency:  CurrencyUSD,
		CreatedAt: at,
		Product:   product,
	}
}

func TestAggregateEmpty(t *testing.T) {
	report := Aggregate(nil, rateOf(85))

	assert.Equal(t, 0.0, report.TotalUSD)
	assert.Equal(t, 0.0, report.TotalINR)
	assert.Empty(t, report.PerProductTotals)
}

func TestAggregateTotals(t *testing.T) {
	espresso := models.ProductRef{ID: primitive.NewObjectID(), Name: "Espresso Machine"}
	mixer := models.ProductRef{ID: primitive.NewObjectID(), Name: "Stand Mixer"}
	at := time.Date(2025, 3, 9, 9, 5, 0, 0, time.UTC)

	contributions := []models.ContributionWithProduct{
		contributionFor(espresso, "Asha", 100, at),
		contributionFor(mixer, "Ben", 50, at),
		contributionFor(espresso, "Chloe", 25.5, at),
	}

	report := Aggregate(contributions, rateOf(85))

	assert.InDelta(t, 175.5, report.TotalUSD, 1e-9)
	assert.InDelta(t, 175.5*85, report.TotalINR, 1e-9)

	require.Len(t, report.PerProductTotals, 2)
	// First-seen order, not alphabetical.
	assert.Equal(t, "Espresso Machine", report.PerProductTotals[0].Name)
	assert.InDelta(t, 125.5, report.PerProductTotals[0].Total, 1e-9)
	assert.Equal(t, espresso.ID.Hex(), report.PerProductTotals[0].ProductID)
	assert.Equal(t, "Stand Mixer", report.PerProductTotals[1].Name)
	assert.InDelta(t, 50, report.PerProductTotals[1].Total, 1e-9)
}

func TestAggregateINRIsDerivedNotSummed(t *testing.T) {
	p := models.ProductRef{ID: primitive.NewObjectID(), Name: "Turntable"}
	contributions := []models.ContributionWithProduct{
		contributionFor(p, "Asha", 200, time.Now()),
	}

	for _, r := range []float64{80, 84.69, 90} {
		report := Aggregate(contributions, rateOf(r))
		assert.InDelta(t, report.TotalUSD*r, report.TotalINR, 1e-9)
	}
}

func TestBuildCSV(t *testing.T) {
	espresso := models.ProductRef{ID: primitive.NewObjectID(), Name: "Espresso Machine"}
	mixer := models.ProductRef{ID: primitive.NewObjectID(), Name: "Stand Mixer"}

	contributions := []models.ContributionWithProduct{
		contributionFor(espresso, "Asha", 300, time.Date(2025, 3, 9, 9, 5, 0, 0, time.UTC)),
		contributionFor(mixer, "Ben", 42.5, time.Date(2025, 11, 23, 18, 40, 0, 0, time.UTC)),
	}
	report := Aggregate(contributions, rateOf(85))

	got := BuildCSV(contributions, report)

	expected := "Name,Product,Amount,Currency,Date,Time\n" +
		"Asha,Espresso Machine,300,usd,09/03/2025,9:05\n" +
		"Ben,Stand Mixer,42.5,usd,23/11/2025,18:40\n" +
		"\n" +
		"Product Totals:\n" +
		"Total Contribution,342.5\n" +
		"Espresso Machine,300\n" +
		"Stand Mixer,42.5"
	assert.Equal(t, expected, got)
}

func TestBuildCSVMissingProductName(t *testing.T) {
	orphan := models.ProductRef{ID: primitive.NewObjectID()}
	contributions := []models.ContributionWithProduct{
		contributionFor(orphan, "Asha", 10, time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC)),
	}
	report := Aggregate(contributions, rateOf(85))

	got := BuildCSV(contributions, report)
	assert.Contains(t, got, "Asha,N/A,10,usd,02/01/2025,3:04")
}
