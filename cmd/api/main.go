package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/minjae-ko/tasklist-api/internal/config"
	"github.com/minjae-ko/tasklist-api/internal/duedate"
	apihttp "github.com/minjae-ko/tasklist-api/internal/http"
	"github.com/minjae-ko/tasklist-api/internal/middleware"
	"github.com/minjae-ko/tasklist-api/internal/model"
	"github.com/minjae-ko/tasklist-api/internal/repository"
	"github.com/minjae-ko/tasklist-api/internal/service"
)

// userResolverAdapter adapts a user repository to the middleware.UserResolver interface.
type userResolverAdapter struct {
	repo interface {
		GetBySubject(ctx context.Context, subject string) (model.User, error)
	}
}

func (a *userResolverAdapter) ResolveUserID(ctx context.Context, subject string) (int64, error) {
	user, err := a.repo.GetBySubject(ctx, subject)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, middleware.ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to resolve user: %w", err)
	}
	return user.ID, nil
}

func main() {
	// Initial logger at info level; reconfigured after config load
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(context.Background()); err != nil {
		logger.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.ParseLogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Info("config loaded",
		"env", cfg.AppEnv,
		"port", cfg.ServerPort,
		"auth_dev_mode", cfg.AuthDevMode,
		"log_level", cfg.LogLevel,
	)

	// Database connection
	db, err := repository.NewDB(cfg.DB.DSN())
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("database connected")

	// Repositories
	taskRepo := repository.NewPostgresTask(db)
	listRepo := repository.NewPostgresList(db)
	userRepo := repository.NewPostgresUser(db)

	// Services
	taskSvc := service.NewTaskService(taskRepo)
	listSvc := service.NewListService(listRepo)
	userSvc := service.NewUserService(userRepo)

	// Auth middleware
	authCfg := middleware.AuthConfig{
		DevMode: cfg.AuthDevMode,
	}
	if !cfg.AuthDevMode {
		authCfg.JWKSClient = middleware.NewJWKSClient(cfg.Auth.JWKSURL)
		authCfg.Issuer = cfg.Auth.Issuer
		authCfg.Audience = cfg.Auth.Audience
		authCfg.UserResolver = &userResolverAdapter{repo: userRepo}
	}
	auth, err := middleware.NewAuth(authCfg)
	if err != nil {
		return fmt.Errorf("failed to create auth middleware: %w", err)
	}

	// HTTP Server
	srv := apihttp.NewServer(cfg.ServerPort, logger, taskSvc, listSvc, userSvc, duedate.Clock(time.Now), auth)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	logger.Info("server starting", "port", cfg.ServerPort)

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped gracefully")
	return nil
}
