package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"stonkers/internal/config"
	"stonkers/internal/handlers"
	"stonkers/internal/middleware"
	"stonkers/internal/provider"
	"stonkers/internal/services"

	_ "stonkers/internal/docs" // Import swagger docs
)

// newRouter wires services and handlers over db and marketData and
// registers every route.
func newRouter(appConfig *config.Config, db *gorm.DB, marketData provider.MarketData) *gin.Engine {
	// Initialize services
	auditService := services.NewAuditService(db)
	marketService := services.NewMarketService(marketData)
	portfolioService := services.NewPortfolioService(db, marketService)
	snapshotService := services.NewPortfolioSnapshotService(db)
	valuationService := services.NewValuationService(marketData)

	// Initialize handlers
	marketHandler := handlers.NewMarketHandler(marketService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService, auditService)
	snapshotHandler := handlers.NewPortfolioSnapshotHandler(snapshotService, auditService)
	valuationHandler := handlers.NewValuationHandler(valuationService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Pipeline routes (scheduled jobs)
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(appConfig.PipelineAPIKey))
	pipeline.POST("/snapshots", snapshotHandler.ComputeSnapshots)
	pipeline.POST("/quotes", portfolioHandler.RefreshAllQuotes)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(appConfig.JWTSecret, appConfig.JWTIssuer))

	protected.GET("/market/search", marketHandler.SearchStock)

	portfolio := protected.Group("/portfolio")
	portfolio.GET("", portfolioHandler.GetPortfolio)
	portfolio.POST("/stocks", portfolioHandler.AddStock)
	portfolio.POST("/cash", portfolioHandler.AddCash)
	portfolio.PUT("/holdings/:ticker", portfolioHandler.UpdateHolding)
	portfolio.DELETE("/holdings/:ticker", portfolioHandler.RemoveHolding)
	portfolio.POST("/reorder", portfolioHandler.ReorderHolding)
	portfolio.POST("/refresh", portfolioHandler.RefreshQuotes)
	portfolio.GET("/snapshots", snapshotHandler.GetSnapshots)

	valuation := protected.Group("/valuation")
	valuation.POST("/calculate", valuationHandler.Calculate)
	valuation.GET("/:symbol", valuationHandler.Valuate)
	valuation.GET("/:symbol/inputs", valuationHandler.Seed)

	return router
}
