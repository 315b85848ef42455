package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/rhushabh77/crowdfunding-backend/config"
	engine "github.com/rhushabh77/crowdfunding-backend/engine"
	models "github.com/rhushabh77/crowdfunding-backend/models"
	utils "github.com/rhushabh77/crowdfunding-backend/utils"
)

// resolveCurrency picks the display currency for a request: an explicit
// ?currency= wins and is persisted in a cookie, otherwise the cookie from a
// previous visit, otherwise USD.
func resolveCurrency(c *gin.Context) string {
	if q := c.Query("currency"); q != "" && engine.ValidCurrency(q) {
		c.SetCookie("currency", q, 3600*24*365, "/", "", false, false)
		return q
	}
	if v, err := c.Cookie("currency"); err == nil && engine.ValidCurrency(v) {
		return v
	}
	return engine.CurrencyUSD
}

// ---------------- CREATE ----------------
func CreateProduct(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name        string  `form:"name" binding:"required"`
			Description string  `form:"description"`
			AmountUSD   float64 `form:"amount_usd"`
			AmountINR   float64 `form:"amount_inr"`
		}

		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.AmountUSD < 0 || input.AmountINR < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "funding targets cannot be negative"})
			return
		}

		// --- Handle image upload ---
		var imageURL string
		form, err := c.MultipartForm()
		if err != nil && err != http.ErrNotMultipart {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
			return
		}
		if form != nil {
			if files := form.File["image"]; len(files) > 0 {
				fileHeader := files[0]
				file, err := fileHeader.Open()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
					return
				}

				url, err := utils.UploadToCloudinary(file, fileHeader)
				file.Close()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{
						"error":   "image upload failed",
						"details": err.Error(),
					})
					return
				}
				imageURL = url
			}
		}

		now := time.Now()
		product := models.Product{
			ID:          primitive.NewObjectID(),
			Name:        input.Name,
			Description: input.Description,
			Image:       imageURL,
			Amount:      models.CurrencyAmounts{USD: input.AmountUSD, INR: input.AmountINR},
			Collected:   models.CurrencyAmounts{},
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("products")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := col.InsertOne(ctx, product); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}

// ---------------- LIST ----------------
func ListProducts(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		sortKey := c.DefaultQuery("sort", engine.SortEverything)
		if sortKey != engine.SortEverything && sortKey != engine.SortRemaining && sortKey != engine.SortFunded {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sort key"})
			return
		}
		currency := resolveCurrency(c)

		col := cfg.MongoClient.Database(cfg.DBName).Collection("products")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// --- Fetch data ---
		cursor, err := col.Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch products"})
			return
		}

		var products []models.Product
		if err := cursor.All(ctx, &products); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode products"})
			return
		}

		rate := cfg.RateProvider.GetRate(ctx)
		products = engine.SortFilter(products, c.Query("q"), sortKey, currency, rate)

		if len(products) == 0 {
			c.JSON(http.StatusOK, []models.Product{})
			return
		}

		// --- Pick the most recently updated product ---
		latest := products[0]
		for _, p := range products {
			if p.UpdatedAt.After(latest.UpdatedAt) {
				latest = p
			}
		}

		etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, products)
	}
}

// ---------------- GET ----------------
func GetProduct(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		var product models.Product
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err = cfg.MongoClient.Database(cfg.DBName).
			Collection("products").
			FindOne(ctx, bson.M{"_id": oid}).
			Decode(&product)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		etag := utils.GenerateETag(product.ID, product.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		c.JSON(http.StatusOK, product)
	}
}

// ---------------- UPDATE ----------------
func UpdateProduct(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("products")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var existing models.Product
		if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		var input struct {
			Name        string  `form:"name"`
			Description string  `form:"description"`
			AmountUSD   float64 `form:"amount_usd"`
			AmountINR   float64 `form:"amount_inr"`
		}
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		update := bson.M{"updated_at": time.Now()}
		if input.Name != "" {
			update["name"] = input.Name
		}
		if input.Description != "" {
			update["description"] = input.Description
		}
		if input.AmountUSD > 0 {
			update["amount.usd"] = input.AmountUSD
		}
		if input.AmountINR > 0 {
			update["amount.inr"] = input.AmountINR
		}

		// --- Handle replacement image upload ---
		form, _ := c.MultipartForm()
		if form != nil {
			if files := form.File["image"]; len(files) > 0 {
				fileHeader := files[0]
				file, err := fileHeader.Open()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open image"})
					return
				}
				url, err := utils.UploadToCloudinary(file, fileHeader)
				file.Close()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed", "details": err.Error()})
					return
				}
				update["image"] = url

				if existing.Image != "" {
					if err := utils.DeleteFromCloudinary(existing.Image); err != nil {
						// Old image left orphaned; not worth failing the update.
						c.Error(err)
					}
				}
			}
		}

		if len(update) == 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		if _, err := col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": update}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update product"})
			return
		}

		var updated models.Product
		if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&updated); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve updated product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "product updated",
			"product": updated,
		})
	}
}

// ---------------- DELETE ----------------
func DeleteProduct(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("products")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var existing models.Product
		if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete product"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		if existing.Image != "" {
			utils.DeleteFromCloudinary(existing.Image)
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "product deleted",
			"id":      oid.Hex(),
		})
	}
}
