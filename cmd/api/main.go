package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/bioqr/bioqr-go/internal/config"
	"github.com/bioqr/bioqr-go/internal/crypto"
	"github.com/bioqr/bioqr-go/internal/handler"
	"github.com/bioqr/bioqr-go/internal/logger"
	"github.com/bioqr/bioqr-go/internal/repository"
	"github.com/bioqr/bioqr-go/internal/service"
)

func main() {
	migrateOnly := flag.Bool("migrate", false, "apply database migrations and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()
	slog.SetDefault(logger.New("bioqr-api", cfg.Env))

	tokens := crypto.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)
	routes := handler.RouterConfig{
		Bio:            handler.NewBioHandler(service.NewBioService(cfg.QRSize)),
		Verifier:       tokens,
		AllowedOrigins: cfg.AllowedOrigins,
	}

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		if *migrateOnly {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		slog.Warn("invalid database configuration, auth routes disabled", "error", err)
	} else {
		defer db.Close()

		if *migrateOnly || cfg.AutoMigrate {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			err := repository.Migrate(ctx, db)
			cancel()
			if err != nil {
				slog.Error("migration failed", "error", err)
				if *migrateOnly {
					os.Exit(1)
				}
			}
		}
		if *migrateOnly {
			slog.Info("migrations applied")
			return
		}

		userRepo := repository.NewUserRepository(db)
		hasher := crypto.NewHasher(cfg.Hash)
		authService := service.NewAuthService(userRepo, hasher, tokens)
		routes.Auth = handler.NewAuthHandler(authService)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.NewRouter(routes),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "token_ttl", cfg.JWTExpiry)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
