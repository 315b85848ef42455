package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	config "github.com/rhushabh77/crowdfunding-backend/config"
	engine "github.com/rhushabh77/crowdfunding-backend/engine"
	models "github.com/rhushabh77/crowdfunding-backend/models"
	utils "github.com/rhushabh77/crowdfunding-backend/utils"
)

// ---------------- CREATE ----------------
func CreateContribution(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			ProductID string      `json:"productId" binding:"required"`
			Name      string      `json:"name" binding:"required"`
			Remarks   string      `json:"remarks"`
			Amount    json.Number `json:"amount"`
			Currency  string      `json:"currency"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		currency := input.Currency
		if currency == "" {
			currency = engine.CurrencyUSD
		}
		if !engine.ValidCurrency(currency) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "currency must be usd or inr"})
			return
		}

		productID, err := primitive.ObjectIDFromHex(input.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		productCol := cfg.MongoClient.Database(cfg.DBName).Collection("products")
		var product models.Product
		if err := productCol.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		rate := cfg.RateProvider.GetRate(ctx)

		canonical, err := engine.Validate(product, input.Amount.String(), currency, rate)
		if err != nil {
			var exceeds *engine.ExceedsRemainingError
			switch {
			case errors.Is(err, engine.ErrInvalidAmount):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.As(err, &exceeds):
				c.JSON(http.StatusBadRequest, gin.H{"error": exceeds.Error()})
			default:
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			}
			return
		}

		contribution := models.Contribution{
			ID:            primitive.NewObjectID(),
			ProductID:     productID,
			Name:          input.Name,
			Remarks:       input.Remarks,
			Amount:        canonical.Amount,
			Currency:      canonical.Currency,
			PaymentMethod: canonical.PaymentMethod,
			PaymentRef:    uuid.NewString(),
			IsConverted:   canonical.IsConverted,
			CreatedAt:     time.Now(),
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("contributions")
		if _, err := col.InsertOne(ctx, contribution); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create contribution"})
			return
		}

		// Acceptance is the only mutator of collected; the canonical ledger
		// is USD so only the usd leg moves.
		if _, err := productCol.UpdateOne(ctx,
			bson.M{"_id": productID},
			bson.M{
				"$inc": bson.M{"collected.usd": canonical.Amount},
				"$set": bson.M{"updated_at": time.Now()},
			},
		); err != nil {
			log.Printf("failed to update collected total for product %s: %v", productID.Hex(), err)
		}

		if cfg.OrganizerEmail != "" {
			go notifyOrganizer(cfg.OrganizerEmail, contribution, product.Name)
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":         contribution.ID.Hex(),
			"paymentRef": contribution.PaymentRef,
			"message":    "contribution created",
		})
	}
}

func notifyOrganizer(to string, contribution models.Contribution, productName string) {
	subject := fmt.Sprintf("New contribution towards %s", productName)
	body := fmt.Sprintf(
		"<p><strong>%s</strong> contributed $%.2f towards <strong>%s</strong> via %s.</p><p>%s</p>",
		contribution.Name, contribution.Amount, productName,
		contribution.PaymentMethod, contribution.Remarks,
	)
	if err := utils.SendEmail(to, subject, body); err != nil {
		log.Printf("organizer notification failed: %v", err)
	}
}

// fetchContributionsWithProduct loads all contributions with their product
// reference joined in, oldest first.
func fetchContributionsWithProduct(ctx context.Context, cfg *config.Config) ([]models.ContributionWithProduct, error) {
	col := cfg.MongoClient.Database(cfg.DBName).Collection("contributions")

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "products"},
			{Key: "localField", Value: "product_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "product"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$product"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: 1}}}},
	}

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var contributions []models.ContributionWithProduct
	if err := cursor.All(ctx, &contributions); err != nil {
		return nil, err
	}
	return contributions, nil
}

// ---------------- LIST ----------------
func ListContributions(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		contributions, err := fetchContributionsWithProduct(ctx, cfg)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch contributions"})
			return
		}

		if len(contributions) == 0 {
			c.JSON(http.StatusOK, []models.ContributionWithProduct{})
			return
		}

		// --- Pick the most recent contribution for cache headers ---
		latest := contributions[0]
		for _, ctn := range contributions {
			if ctn.CreatedAt.After(latest.CreatedAt) {
				latest = ctn
			}
		}

		etag := utils.GenerateETag(latest.ID, latest.CreatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", latest.CreatedAt.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, contributions)
	}
}

// ---------------- SUMMARY ----------------
func ContributionSummary(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		contributions, err := fetchContributionsWithProduct(ctx, cfg)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch contributions"})
			return
		}

		rate := cfg.RateProvider.GetRate(ctx)
		report := engine.Aggregate(contributions, rate)

		c.JSON(http.StatusOK, gin.H{
			"report":       report,
			"contributors": len(contributions),
			"rate":         rate,
		})
	}
}

// ---------------- EXPORT ----------------
func ExportContributions(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		contributions, err := fetchContributionsWithProduct(ctx, cfg)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch contributions"})
			return
		}

		rate := cfg.RateProvider.GetRate(ctx)
		report := engine.Aggregate(contributions, rate)
		csv := engine.BuildCSV(contributions, report)

		c.Header("Content-Disposition", `attachment; filename="crowdfunding_contributions.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
	}
}
