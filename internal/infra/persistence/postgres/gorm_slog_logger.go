package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "academy/internal/delivery/context"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// gormSlogLogger sends GORM output to slog. Statements run inside a request are logged
// through that request's logger, so they carry its request and account ids.
type gormSlogLogger struct {
	base  *slog.Logger
	level logger.LogLevel
}

// newGormSlogLogger logs every statement in debug mode; otherwise only failures
// (record-not-found excluded) and slow statements.
func newGormSlogLogger(base *slog.Logger, debug bool) logger.Interface {
	level := logger.Warn
	if debug {
		level = logger.Info
	}

	return &gormSlogLogger{base: base, level: level}
}

func (l *gormSlogLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormSlogLogger{base: l.base, level: level}
}

func (l *gormSlogLogger) Info(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Info, slog.LevelInfo, msg, args)
}

func (l *gormSlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Warn, slog.LevelWarn, msg, args)
}

func (l *gormSlogLogger) Error(ctx context.Context, msg string, args ...any) {
	l.message(ctx, logger.Error, slog.LevelError, msg, args)
}

func (l *gormSlogLogger) message(ctx context.Context, threshold logger.LogLevel, level slog.Level, msg string, args []any) {
	if l.base == nil || l.level < threshold {
		return
	}

	l.loggerFor(ctx).LogAttrs(ctx, level, "GORM "+level.String(), slog.String("message", fmt.Sprintf(msg, args...)))
}

func (l *gormSlogLogger) Trace(ctx context.Context, begin time.Time, sqlAndRowsFn func() (string, int64), err error) {
	if l.base == nil || l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)

	var (
		level = slog.LevelInfo
		msg   = "GORM query"
		extra slog.Attr
	)

	switch {
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		level, msg, extra = slog.LevelError, "GORM query failed", slog.String("error", err.Error())
	case elapsed > slowQueryThreshold && l.level >= logger.Warn:
		level, msg, extra = slog.LevelWarn, "GORM slow query", slog.Duration("slow_threshold", slowQueryThreshold)
	case l.level >= logger.Info:
	default:
		return
	}

	sql, rows := sqlAndRowsFn()
	attrs := []slog.Attr{
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", sql),
	}
	if extra.Key != "" {
		attrs = append(attrs, extra)
	}

	l.loggerFor(ctx).LogAttrs(ctx, level, msg, attrs...)
}

func (l *gormSlogLogger) loggerFor(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, l.base)
}
