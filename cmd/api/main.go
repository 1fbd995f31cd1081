package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"stonkers/internal/config"
	"stonkers/internal/database"
	"stonkers/internal/logger"
	"stonkers/internal/provider"
	"stonkers/internal/validator"
)

// @title           Stonkers API
// @version         1.0
// @description     Stonkers tracks a personal stock portfolio, refreshes market quotes, and computes intrinsic-value estimates from earnings and free cash flow.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	appConfig, err := config.Load()
	if err != nil {
		logger.Init(os.Getenv("ENV"))
		logger.Get().Fatalf("Failed to load configuration: %v", err)
	}

	logger.InitWithFile(appConfig.Env, logger.FileOptions{
		Path:       appConfig.LogFile,
		MaxSizeMB:  appConfig.LogMaxSizeMB,
		MaxBackups: appConfig.LogMaxBackups,
	})
	defer logger.Sync()

	if err := run(appConfig); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run(appConfig *config.Config) error {
	log := logger.Get()

	// Database
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("failed to close database: %v", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Market data
	finnhub := provider.NewFinnhub(
		&http.Client{Timeout: appConfig.MarketDataTimeout},
		appConfig.FinnhubAPIURL,
		appConfig.FinnhubAPIKey,
	)
	marketData := provider.NewCachedMarketData(finnhub, appConfig.QuoteCacheTTL, appConfig.QuoteCacheSize)
	if appConfig.FinnhubAPIKey == "" {
		log.Warn("FINNHUB_API_KEY is not set; market data requests will be rejected upstream")
	}

	validator.Register()

	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := newRouter(appConfig, dbManager.DB(), marketData)

	log.Infof("Starting Stonkers API server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
