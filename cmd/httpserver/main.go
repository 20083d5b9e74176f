package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"

	"cinehub/actor"
	"cinehub/auth"
	"cinehub/genre"
	"cinehub/httpserver"
	"cinehub/movie"
	"cinehub/pkg/config"
	"cinehub/pkg/jwt"
	"cinehub/pkg/password"
	"cinehub/pkg/sentry"
	"cinehub/postgres"
	"cinehub/review"
	"cinehub/user"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Error("Cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     fmt.Sprintf("%d", cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		slog.Error("Cannot open postgres connection", "error", err)
		os.Exit(1)
	}

	genreRepo := postgres.NewGenreRepository(db)
	actorRepo := postgres.NewActorRepository(db)
	movieRepo := postgres.NewMovieRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	userRepo := postgres.NewUserRepository(db)
	attemptRepo := postgres.NewLoginAttemptRepository(db)

	hasher := password.NewBcryptHasher()
	tokens := jwt.NewJWTProvider(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTL)*time.Second,
		time.Duration(cfg.Auth.RefreshTTL)*time.Second,
	)

	server := httpserver.Default(cfg)
	server.MovieService = movie.NewUsecase(movieRepo, genreRepo, actorRepo)
	server.GenreService = genre.NewUsecase(genreRepo)
	server.ActorService = actor.NewUsecase(actorRepo)
	server.ReviewService = review.NewUsecase(reviewRepo)
	server.UserService = user.NewUsecase(userRepo, hasher)
	server.AuthService = auth.NewUsecase(userRepo, attemptRepo, hasher, tokens)

	slog.Info("server started!", "addr", server.Addr)
	if err := server.Start(); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}
