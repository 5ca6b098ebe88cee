package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nexus-api/internal/config"
	"nexus-api/internal/observability/logging"
	"nexus-api/internal/observability/metrics"
	"nexus-api/internal/picture"
	impl "nexus-api/internal/service/impl"
	"nexus-api/internal/store"
	transport "nexus-api/internal/transport/http"
	"nexus-api/pkg/db"
)

const serviceName = "nexus"

func main() {
	cfg := config.Load()

	logger := logging.NewLogger(logging.Config{
		ServiceName: serviceName,
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
	})
	slog.SetDefault(logger)
	logger.Info("starting service")

	metrics.MustRegister(serviceName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	origins, err := cfg.CORSOrigins()
	if err != nil {
		logger.Error("cors", "error", err)
		os.Exit(1)
	}

	// 1) DB
	gdb, err := db.OpenGorm(db.Config{
		Dialect: cfg.DatabaseType,
		DSN:     cfg.DatabaseURL,
		LogSQL:  cfg.DatabaseLogSQL,
	})
	if err != nil {
		logger.Error("gorm open", "error", err)
		os.Exit(1)
	}
	st := store.New(gdb)
	if cfg.DatabaseSynchronize {
		if err := st.AutoMigrate(ctx); err != nil {
			logger.Error("auto migrate", "error", err)
			os.Exit(1)
		}
		logger.Info("schema synchronized")
	}

	// 2) Pictures
	pictures, err := pictureStorage(ctx, cfg)
	if err != nil {
		logger.Error("picture storage", "error", err)
		os.Exit(1)
	}

	// 3) Services
	pw := impl.NewPasswordServiceBcrypt(cfg.BcryptCost)
	ts := impl.NewTokenServiceHS256(impl.TokenConfig{
		Issuer:     cfg.JWTIssuer,
		Audience:   cfg.JWTAudience,
		AccessTTL:  cfg.JWTTTL,
		RefreshTTL: cfg.JWTRefreshTTL,
		SigningKey: cfg.JWTSecret,
	})

	// 4) HTTP router
	handler := transport.NewRouter(transport.Deps{
		Auth:           impl.NewAuthServiceImpl(st, pw, ts),
		Tokens:         ts,
		Persons:        impl.NewPersonServiceImpl(st, pw, pictures),
		Messages:       impl.NewMessageServiceImpl(st),
		Pictures:       pictures,
		DB:             st,
		Origins:        origins,
		RequestTimeout: cfg.RequestTimeout,
		Throttle: transport.ThrottleConfig{
			Limit: cfg.ThrottleLimit,
			TTL:   cfg.ThrottleTTL,
			Block: cfg.ThrottleBlock,
		},
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("nexus api listening", "addr", srv.Addr, "issuer", cfg.JWTIssuer, "database", cfg.DatabaseType)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", "error", err)
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func pictureStorage(ctx context.Context, cfg config.Config) (picture.Storage, error) {
	switch cfg.PicturesBackend {
	case "s3":
		return picture.NewS3(ctx, picture.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	default:
		return picture.NewLocal(cfg.PicturesDir), nil
	}
}
