package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/talx-hub/points-ledger/internal/model"
)

func New(logLevel slog.Level) *slog.Logger {
	return slog.New(
		slog.NewTextHandler(
			os.Stdout,
			&slog.HandlerOptions{Level: logLevel},
		))
}

// ParseLevel accepts debug, info, warn and error in any case.
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q: %w", level, err)
	}
	return l, nil
}

func WithContext(ctx context.Context, log *slog.Logger) context.Context {
	ctxWithLogger := context.WithValue(ctx, model.KeyContextLogger, log)
	return ctxWithLogger
}

func FromContext(ctx context.Context) *slog.Logger {
	logRaw := ctx.Value(model.KeyContextLogger)
	if logRaw == nil {
		return slog.Default()
	}
	if log, ok := logRaw.(*slog.Logger); ok {
		return log
	}
	return slog.Default()
}
