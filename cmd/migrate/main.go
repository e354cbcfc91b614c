package main

import (
	"context"

	"go.uber.org/zap"

	"ziplofy-shipping/internal/config"
	"ziplofy-shipping/internal/db"
	"ziplofy-shipping/internal/logger"
	"ziplofy-shipping/internal/migrate"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat).Named("migrate")
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		log.Fatal("apply migrations", zap.Error(err))
	}

	log.Info("migrations applied")
}
