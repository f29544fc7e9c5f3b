// Package context carries per-request values (request id, logger, caller) from the
// HTTP layer down into the usecases.
package context

import (
	"context"
	"log/slog"

	"academy/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	keyRequestID contextKey = "request_id"
	keyLogger    contextKey = "logger"
	keyAccount   contextKey = "account"

	// HeaderXRequestID is echoed back on every response.
	HeaderXRequestID = "X-Request-Id"
)

// GetRequestID returns the id stored by the request id middleware, or "" outside of it.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(string(keyRequestID)).(string); ok {
		return id
	}

	return GetRequestIDFromContext(c.Request().Context())
}

// SetRequestID stores the request id on the echo context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(keyRequestID), requestID)
}

// GetRequestIDFromContext is GetRequestID for code that only sees a context.Context.
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(keyRequestID).(string)

	return id
}

// WithRequestID returns a copy of ctx carrying requestID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, keyRequestID, requestID)
}

// GetLoggerOrDefault returns the request-scoped logger, or fallback when ctx has none.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(keyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, keyLogger, logger)
}

// WithAccount records the authenticated caller and tags the request logger with it,
// so every line logged after authentication names the account.
func WithAccount(ctx context.Context, identity entity.Identity, fallback *slog.Logger) context.Context {
	logger := GetLoggerOrDefault(ctx, fallback).With(
		slog.String("account_id", identity.AccountID),
		slog.String("account_kind", identity.Kind.String()),
	)
	ctx = context.WithValue(ctx, keyAccount, identity)

	return WithLogger(ctx, logger)
}

// AccountFromContext returns the caller stored by WithAccount.
func AccountFromContext(ctx context.Context) (entity.Identity, bool) {
	identity, ok := ctx.Value(keyAccount).(entity.Identity)

	return identity, ok
}
