package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"wealthdesk/internal/config"
	"wealthdesk/internal/handlers"
	"wealthdesk/internal/storage"
)

func main() {
	// Load .env file if it exists, but don't fail if it's missing (e.g. in production)
	_ = godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	logger := cfg.Logger()

	store, closeStore, err := storage.Open(context.Background(), cfg.Store, logger)
	if err != nil {
		logger.Fatalf("store: %v", err)
	}
	defer closeStore()

	h := handlers.NewHandler(store, cfg.Rates(), logger)

	rg := gin.Default()
	rg.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	h.Routes(rg)

	logger.Infof("server starting on :%d (fee %s, tax %s)", cfg.Server.Port, cfg.Rates().Fee, cfg.Rates().Tax)
	if err := rg.Run(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		logger.Fatalf("server stopped: %v", err)
	}
}
