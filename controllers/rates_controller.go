package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	config "github.com/rhushabh77/crowdfunding-backend/config"
)

// GetExchangeRate reports the current USD to INR rate. The provider never
// fails: when the live source is down the fallback rate is returned with
// isFallback set, so this endpoint has no error path.
func GetExchangeRate(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		c.JSON(http.StatusOK, cfg.RateProvider.GetRate(ctx))
	}
}
