// Package ctxlog provides context-aware structured logging utilities.
package ctxlog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var logFile *os.File

// Setup installs a JSON logger writing to stderr and, when dir is not empty,
// to a timestamped file under dir. It returns ctx carrying the logger.
func Setup(ctx context.Context, app, dir, level string) (context.Context, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return ctx, fmt.Errorf("log level %q: %w", level, err)
	}

	var w io.Writer = os.Stderr
	if dir != "" {
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			return ctx, fmt.Errorf("create log dir: %w", err)
		}

		f, err := os.Create(filepath.Join(dir, app+"-"+time.Now().Format("2006-01-02-15-04-05.log")))
		if err != nil {
			return ctx, fmt.Errorf("create log file: %w", err)
		}
		if logFile != nil {
			logFile.Close()
		}
		logFile = f

		w = io.MultiWriter(os.Stderr, f)
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})).With("app", app)
	slog.SetDefault(logger)

	return Store(ctx, logger), nil
}

// Shutdown closes the log file opened by Setup, if any.
func Shutdown() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

type ctxKey struct{}

var key ctxKey

func Store(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, key, log)
}

func Get(ctx context.Context) *slog.Logger {
	log, ok := ctx.Value(key).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return log
}

func Close(ctx context.Context, name string, closer io.Closer) error {
	logger := Get(ctx)
	err := closer.Close()
	if err != nil {
		logger.Error("failed to close", "closer", name, "error", err)
		return err
	}
	return nil
}

func With(ctx context.Context, kv ...any) context.Context {
	return Store(ctx, Get(ctx).With(kv...))
}
