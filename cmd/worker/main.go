package main

import (
	"go-ems/internal/app"
	"go-ems/internal/shared/apperror"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// The worker relays the employee lifecycle outbox to kafka. It shares the
// database with the API but runs as its own process so publishing lag never
// backs up request handling.
func main() {
	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	logger.Info("starting outbox worker")

	if err := app.RunWorker(); err != nil {
		logger.Fatal("run worker failed", zap.Error(err))
	}
}
