package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/stemsi/roomgrid-backend/internal/config"
	"github.com/stemsi/roomgrid-backend/internal/database"
	"github.com/stemsi/roomgrid-backend/internal/logger"
	"github.com/stemsi/roomgrid-backend/internal/repository"
)

func main() {
	cfg := config.Load()

	var buildingsFile, termsFile string
	flag.StringVar(&buildingsFile, "buildings", cfg.BuildingsFile, "Path to buildings.json ([{Code, Description}])")
	flag.StringVar(&termsFile, "terms", cfg.TermsFile, "Optional path to a terms seed file")
	flag.Parse()

	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	fmt.Println("=== Seeding Buildings ===")

	buildings, err := repository.ReadBuildingsFile(buildingsFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", buildingsFile).Msg("Failed to read buildings")
	}

	buildingRepo := repository.NewBuildingRepository(pool)
	n, err := buildingRepo.UpsertMany(ctx, buildings)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to upsert buildings")
	}
	fmt.Printf("Upserted %d buildings from %s\n", n, buildingsFile)

	if termsFile == "" {
		fmt.Println("No terms file given, skipping terms")
		return
	}

	fmt.Println("=== Seeding Terms ===")

	terms, err := repository.ReadTermsFile(termsFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", termsFile).Msg("Failed to read terms")
	}

	termRepo := repository.NewTermRepository(pool)
	for i := range terms {
		if err := termRepo.Upsert(ctx, &terms[i]); err != nil {
			log.Fatal().Err(err).Str("term", terms[i].Code).Msg("Failed to upsert term")
		}
		fmt.Printf("  %-10s %-5s active=%t legacy=%t\n", terms[i].Code, terms[i].SourceKind, terms[i].IsActive, terms[i].IsLegacy)
	}
	fmt.Printf("Upserted %d terms from %s\n", len(terms), termsFile)
}
