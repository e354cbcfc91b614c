package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"ziplofy-shipping/internal/config"
	"ziplofy-shipping/internal/db"
	"ziplofy-shipping/internal/domain"
	"ziplofy-shipping/internal/httpserver"
	"ziplofy-shipping/internal/logger"
	"ziplofy-shipping/internal/refcache"
	georepo "ziplofy-shipping/internal/repository/geo"
	settingsrepo "ziplofy-shipping/internal/repository/locationsettings"
	variantrepo "ziplofy-shipping/internal/repository/profilevariant"
	profilerepo "ziplofy-shipping/internal/repository/shippingprofile"
	raterepo "ziplofy-shipping/internal/repository/shippingrate"
	zonerepo "ziplofy-shipping/internal/repository/shippingzone"
	storerepo "ziplofy-shipping/internal/repository/store"
	geosvc "ziplofy-shipping/internal/service/geo"
	settingssvc "ziplofy-shipping/internal/service/locationsettings"
	variantsvc "ziplofy-shipping/internal/service/profilevariant"
	profilesvc "ziplofy-shipping/internal/service/shippingprofile"
	ratesvc "ziplofy-shipping/internal/service/shippingrate"
	zonesvc "ziplofy-shipping/internal/service/shippingzone"
	storesvc "ziplofy-shipping/internal/service/store"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat).Named("api")
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Fatal("connect to db", zap.Error(err))
	}
	defer dbpool.Close()

	storeRepo := storerepo.NewPostgres(dbpool, log)
	geoRepo := georepo.NewPostgres(dbpool)
	profileRepo := profilerepo.NewPostgres(dbpool, log)
	settingsRepo := settingsrepo.NewPostgres(dbpool)
	variantRepo := variantrepo.NewPostgres(dbpool, log)
	zoneRepo := zonerepo.NewPostgres(dbpool, log)
	rateRepo := raterepo.NewPostgres(dbpool, log)

	var (
		countryStore refcache.Store[[]domain.Country] = refcache.NewMemoryStore[[]domain.Country]()
		stateStore   refcache.Store[[]domain.State]   = refcache.NewMemoryStore[[]domain.State]()
	)
	if cfg.Redis.Addr != "" {
		rdb, err := refcache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("connect to redis", zap.Error(err))
		}
		defer rdb.Close()
		countryStore = refcache.NewRedisStore[[]domain.Country](rdb, "shipping:countries:")
		stateStore = refcache.NewRedisStore[[]domain.State](rdb, "shipping:states:")
		log.Info("reference cache backed by redis", zap.String("addr", cfg.Redis.Addr))
	}

	deps := httpserver.Deps{
		Profiles:         profilesvc.New(profileRepo, storeRepo, settingsRepo, variantRepo, zoneRepo),
		LocationSettings: settingssvc.New(settingsRepo),
		Variants:         variantsvc.New(variantRepo, profileRepo),
		Zones:            zonesvc.New(zoneRepo, profileRepo, geoRepo),
		Rates:            ratesvc.New(rateRepo, storeRepo),
		Geo:              geosvc.New(geoRepo, countryStore, stateStore, cfg.RefCacheTTL, log),
		Stores:           storesvc.New(storeRepo),
	}
	srv := httpserver.New(cfg.HTTPAddr, log, dbpool, deps, httpserver.Options{
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		log.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	} else {
		log.Info("server stopped")
	}
}
