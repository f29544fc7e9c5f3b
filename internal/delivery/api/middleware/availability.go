package middleware

import (
	"strings"

	domainerrors "academy/internal/domain/errors"
	"academy/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// AvailabilityMiddleware short-circuits API calls while the store is unreachable.
type AvailabilityMiddleware struct {
	availability service.StoreAvailability
	prefix       string
}

// NewAvailabilityMiddleware gates every path starting with prefix.
func NewAvailabilityMiddleware(availability service.StoreAvailability, prefix string) *AvailabilityMiddleware {
	return &AvailabilityMiddleware{availability: availability, prefix: prefix}
}

// Gate answers 503 for gated paths while the store is down.
func (m *AvailabilityMiddleware) Gate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if strings.HasPrefix(c.Request().URL.Path, m.prefix) && !m.availability.IsAvailable() {
			return domainerrors.ErrServiceUnavailable
		}

		return next(c)
	}
}
