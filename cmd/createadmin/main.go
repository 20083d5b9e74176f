package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/lib/pq"

	"cinehub/pkg/config"
	"cinehub/pkg/password"
	"cinehub/postgres"
	"cinehub/user"
)

// Bootstraps the initial admin account. Safe to run repeatedly: an
// existing account with the given email is left untouched.
func main() {
	var name, email, pass string
	flag.StringVar(&name, "name", "Admin", "Admin display name")
	flag.StringVar(&email, "email", "", "Admin email (required)")
	flag.StringVar(&pass, "password", "", "Admin password (required)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if email == "" || pass == "" {
		slog.Error("both -email and -password are required")
		os.Exit(1)
	}

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

	users := user.NewUsecase(postgres.NewUserRepository(db), password.NewBcryptHasher())

	created, err := users.AddUser(context.Background(), user.User{
		Name:     name,
		Email:    email,
		Password: pass,
		Role:     user.RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, user.ErrEmailAlreadyExists) {
			slog.Info("admin already exists, nothing to do", "email", email)
			return
		}
		slog.Error("cannot create admin", "error", err)
		os.Exit(1)
	}

	slog.Info("admin created", "id", created.ID, "email", created.Email)
}
