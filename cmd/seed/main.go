package main

import (
	"context"

	"go.uber.org/zap"

	"ziplofy-shipping/internal/config"
	"ziplofy-shipping/internal/db"
	"ziplofy-shipping/internal/domain"
	"ziplofy-shipping/internal/logger"
	"ziplofy-shipping/internal/refcache"
	georepo "ziplofy-shipping/internal/repository/geo"
	"ziplofy-shipping/internal/seed"
	geosvc "ziplofy-shipping/internal/service/geo"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat).Named("seed")
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	if err := seed.Apply(ctx, pool); err != nil {
		log.Fatal("seed apply", zap.Error(err))
	}
	log.Info("seed applied", zap.String("store_id", seed.DemoStoreID))

	// A shared cache would otherwise keep serving the pre-seed reference data.
	if cfg.Redis.Addr == "" {
		return
	}
	rdb, err := refcache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Warn("skip cache invalidation", zap.Error(err))
		return
	}
	defer rdb.Close()

	repo := georepo.NewPostgres(pool)
	countries, err := repo.ListCountries(ctx)
	if err != nil {
		log.Fatal("list countries", zap.Error(err))
	}
	ids := make([]string, 0, len(countries))
	for _, c := range countries {
		ids = append(ids, c.ID)
	}
	geo := geosvc.New(repo,
		refcache.NewRedisStore[[]domain.Country](rdb, "shipping:countries:"),
		refcache.NewRedisStore[[]domain.State](rdb, "shipping:states:"),
		cfg.RefCacheTTL, log)
	if err := geo.Invalidate(ctx, ids...); err != nil {
		log.Warn("invalidate reference cache", zap.Error(err))
		return
	}
	log.Info("reference cache invalidated", zap.Int("countries", len(ids)))
}
