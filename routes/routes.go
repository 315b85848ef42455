package routes

import (
	"github.com/gin-gonic/gin"

	config "github.com/rhushabh77/crowdfunding-backend/config"
	controllers "github.com/rhushabh77/crowdfunding-backend/controllers"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	api := r.Group("/api")

	products := api.Group("/products")
	{
		products.POST("", controllers.CreateProduct(cfg))
		products.GET("", controllers.ListProducts(cfg))
		products.GET("/:id", controllers.GetProduct(cfg))
		products.PATCH("/:id", controllers.UpdateProduct(cfg))
		products.DELETE("/:id", controllers.DeleteProduct(cfg))
	}

	contributions := api.Group("/contributions")
	{
		contributions.POST("", controllers.CreateContribution(cfg))
		contributions.GET("", controllers.ListContributions(cfg))
		contributions.GET("/summary", controllers.ContributionSummary(cfg))
		contributions.GET("/export", controllers.ExportContributions(cfg))
	}

	api.GET("/exchange-rate", controllers.GetExchangeRate(cfg))
}
