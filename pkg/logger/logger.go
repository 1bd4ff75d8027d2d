// Package logger is the process-wide structured logger, built on log/slog.
//
// Handlers never build their own loggers. They call WithCtx so every line
// carries the request id the HTTP middleware attached:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("sale recorded", "sale_id", sale.ID, "total", sale.TotalAmount)
package logger

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/beshgebeya/pos/config"
)

// L is the base logger. It is replaced by Setup when a Mongo sink is configured.
var L *slog.Logger

var (
	sinkMu sync.Mutex
	sink   *MongoHandler
)

func init() {
	L = slog.New(stdoutHandler(config.AppEnv()))
	slog.SetDefault(L)
}

// stdoutHandler picks JSON for production and readable text everywhere else.
func stdoutHandler(env string) slog.Handler {
	switch env {
	case "production", "prod":
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	case "testing", "test":
		return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn})
	default:
		return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}

// Setup fans log records out to MongoDB when LOG_MONGO_URI is set.
// A sink that cannot be reached is reported and stdout logging continues.
func Setup() {
	uri := config.LogMongoURI()
	if uri == "" {
		return
	}

	h, err := NewMongoHandler(uri, config.LogMongoDB(), config.LogMongoCollection())
	if err != nil {
		L.Warn("logger: mongo sink disabled", "error", err)
		return
	}

	sinkMu.Lock()
	sink = h
	sinkMu.Unlock()

	L = slog.New(NewMultiHandler(stdoutHandler(config.AppEnv()), h))
	slog.SetDefault(L)
}

// Close flushes the Mongo sink, if any.
func Close() {
	sinkMu.Lock()
	defer sinkMu.Unlock()
	if sink != nil {
		sink.Close()
		sink = nil
	}
}

type ctxKey struct{}

// WithCtx returns the request-scoped logger stored in ctx, or L.
func WithCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return L
	}
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores log in ctx for WithCtx to find.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
