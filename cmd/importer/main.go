package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"ziplofy-shipping/internal/config"
	"ziplofy-shipping/internal/db"
	"ziplofy-shipping/internal/importer"
	"ziplofy-shipping/internal/logger"
	georepo "ziplofy-shipping/internal/repository/geo"
	profilerepo "ziplofy-shipping/internal/repository/shippingprofile"
	zonerepo "ziplofy-shipping/internal/repository/shippingzone"
	zonesvc "ziplofy-shipping/internal/service/shippingzone"
)

func main() {
	var (
		filePath  string
		profileID string
	)
	flag.StringVar(&filePath, "file", "", "Path to a zone_name,country_iso2,state_code CSV file")
	flag.StringVar(&profileID, "profile", "", "Shipping profile id to create the zones under")
	flag.Parse()

	if filePath == "" || profileID == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat).Named("importer")
	defer func() { _ = log.Sync() }()
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatal("open file", zap.Error(err))
	}
	defer f.Close()

	geo := georepo.NewPostgres(pool)
	zones := zonesvc.New(zonerepo.NewPostgres(pool, log), profilerepo.NewPostgres(pool, log), geo)
	imp := importer.NewCSVImporter(f, geo, zones, profileID)

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		log.Fatal("import failed", zap.Int("imported", count), zap.Error(err))
	}

	fmt.Printf("Imported %d zones into profile %s in %s\n", count, profileID, time.Since(start).Truncate(time.Millisecond))
}
