package router

import (
	"net/http"
	"time"

	"github.com/HarshaLokesh/phronetic-ai/internal/config"
	"github.com/HarshaLokesh/phronetic-ai/internal/currency"
	"github.com/HarshaLokesh/phronetic-ai/internal/handler"
	"github.com/HarshaLokesh/phronetic-ai/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB, log *logrus.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(log), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": cfg.App.Name,
			"version": cfg.App.Version,
		})
	})

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to " + cfg.App.Name,
			"version": cfg.App.Version,
			"health":  "/health",
		})
	})

	api := r.Group("/api/v1")

	authHandler := handler.NewAuthHandler(db, cfg.JWT.Secret, cfg.JWT.ExpireMinutes, log)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWT.Secret, db))

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/auth/me", authHandler.Me)
	protected.GET("/auth/preferences", authHandler.GetPreferences)
	protected.PUT("/auth/preferences", authHandler.UpdatePreferences)

	txHandler := handler.NewTransactionHandler(db, log)
	protected.POST("/transactions", txHandler.Create)
	protected.GET("/transactions", txHandler.List)
	protected.GET("/transactions/summary/period", txHandler.Summary)
	protected.GET("/transactions/:id", txHandler.Get)
	protected.PUT("/transactions/:id", txHandler.Update)
	protected.DELETE("/transactions/:id", txHandler.Delete)

	budgetHandler := handler.NewBudgetHandler(db, log)
	protected.POST("/budgets", budgetHandler.Create)
	protected.GET("/budgets", budgetHandler.List)
	protected.DELETE("/budgets/:id", budgetHandler.Delete)

	currencyClient := currency.New(cfg.Currency.APIURL,
		time.Duration(cfg.Currency.TimeoutSeconds)*time.Second)
	analyticsHandler := handler.NewAnalyticsHandler(db, currencyClient, log)
	protected.GET("/analytics/currency/convert", analyticsHandler.ConvertCurrency)
	protected.GET("/analytics/transactions/category-breakdown", analyticsHandler.CategoryBreakdown)
	protected.GET("/analytics/budgets/progress", analyticsHandler.BudgetProgress)
	protected.POST("/analytics/data/transform", analyticsHandler.TransformData)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/transactions/csv", exportHandler.CSV)
	protected.GET("/export/transactions/xlsx", exportHandler.XLSX)

	return r
}
