// Package server owns the process lifecycle: boot, serve, drain.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/beshgebeya/pos/app/repositories"
	"github.com/beshgebeya/pos/app/services"
	"github.com/beshgebeya/pos/config"
	"github.com/beshgebeya/pos/internal/kernel"
	"github.com/beshgebeya/pos/pkg/cache"
	"github.com/beshgebeya/pos/pkg/database"
	"github.com/beshgebeya/pos/pkg/event"
	"github.com/beshgebeya/pos/pkg/grpc"
	"github.com/beshgebeya/pos/pkg/logger"
	"github.com/beshgebeya/pos/pkg/storage"
	"github.com/beshgebeya/pos/pkg/workerpool"
)

const shutdownTimeout = 15 * time.Second

// Boot loads configuration, installs the log sink and opens the database.
// Every command that touches the store calls it first.
func Boot() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger.Setup()
	return database.Connect()
}

// Services boots the process and returns the domain services over the
// shared database. The cache and storage disks are connected as well.
func Services(ctx context.Context) (*kernel.Services, error) {
	if err := Boot(); err != nil {
		return nil, err
	}
	if err := cache.Connect(ctx); err != nil {
		logger.Warn("cache: disabled", "error", err)
	}
	storage.Connect(ctx)

	disk, err := storage.Default()
	if err != nil {
		logger.Warn("storage: default disk unavailable", "error", err)
	}
	return kernel.NewServices(repositories.New(database.DB), disk), nil
}

// Shutdown releases what Services acquired.
func Shutdown() {
	if err := cache.Close(); err != nil {
		logger.Warn("cache: close", "error", err)
	}
	logger.Close()
}

// Run serves HTTP and gRPC until ctx is cancelled, then drains both.
func Run(ctx context.Context) error {
	svc, err := Services(ctx)
	if err != nil {
		return err
	}
	defer Shutdown()

	pool := workerpool.New(config.EventWorkers())
	event.UsePool(pool)
	services.RegisterListeners()
	defer pool.Shutdown()

	r, err := kernel.NewRouter(svc, database.Ping)
	if err != nil {
		return fmt.Errorf("kernel: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcSrv, err := grpc.Start(config.GRPCPort(), database.Ping)
	if err != nil {
		return err
	}
	defer grpc.Stop(grpcSrv)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http: server starting", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("http: %w", err)
	}

	logger.Info("http: server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
