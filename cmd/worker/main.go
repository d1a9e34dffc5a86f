// Command worker processes background catalog ingestion tasks.
package main

import (
	"context"
	"log"
	"log/slog"

	"hiresynapse/internal/bootstrap"
	"hiresynapse/internal/config"
	"hiresynapse/internal/database"
	"hiresynapse/internal/middleware"
	"hiresynapse/internal/tasks"

	"github.com/hibiken/asynq"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	redisOpt, err := tasks.RedisOpt(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Invalid REDIS_URL: %v", err)
	}

	// The API owns the schema; the worker only needs a connection.
	db, _, err := bootstrap.InitRuntime(context.Background(), cfg, bootstrap.Options{})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	svc := bootstrap.Services(cfg, db)

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 4,
		Logger:      newAsynqLogger(),
	})

	middleware.Logger.Info("worker started", slog.String("redis", cfg.RedisURL))
	if err := srv.Run(tasks.NewServeMux(svc.Jobs)); err != nil {
		log.Fatalf("worker stopped: %v", err)
	}
}
