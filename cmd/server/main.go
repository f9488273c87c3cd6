package main

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Garia-IT-Solutions/certificate-manager/internal/api"
	"github.com/Garia-IT-Solutions/certificate-manager/internal/config"
	"github.com/Garia-IT-Solutions/certificate-manager/internal/repositories"
	"github.com/Garia-IT-Solutions/certificate-manager/pkg/logger"
)

// @title Mariner Record Manager API
// @version 1.0
// @description Personal record management for mariners: certificates, documents, sea service and compliance status.
// @BasePath /api/v1
func main() {
	log, err := logger.New(config.Envs.Environment, config.Envs.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := repositories.Connect(config.Envs.DBURL)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	if err := repositories.Migrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	handler := api.SetupRouter(db, log)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.Envs.Port),
		Handler: handler,
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Info("starting server", zap.String("port", config.Envs.Port))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("server stopped", zap.Error(err))
	}
}
