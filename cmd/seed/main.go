package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/lib/pq"

	"cinehub/movie"
	"cinehub/pkg/config"
	"cinehub/postgres"
)

func main() {
	var csvPath string
	flag.StringVar(&csvPath, "csv", "seed/movies.csv", "Path to the movies CSV file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     fmt.Sprintf("%d", cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		slog.Error("cannot open postgres connection", "error", err)
		os.Exit(1)
	}

	f, err := os.Open(csvPath)
	if err != nil {
		slog.Error("cannot open csv", "path", csvPath, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	movies := movie.NewUsecase(
		postgres.NewMovieRepository(db),
		postgres.NewGenreRepository(db),
		postgres.NewActorRepository(db),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := movies.ImportCSV(ctx, f)
	if err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}

	for _, rowErr := range result.Errors {
		slog.Warn("row skipped", "reason", rowErr)
	}
	slog.Info("seed finished", "imported", result.Imported, "skipped", len(result.Errors))
}
