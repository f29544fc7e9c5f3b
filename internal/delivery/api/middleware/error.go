package middleware

import (
	"log/slog"
	"net/http"

	"academy/internal/delivery/api/response"
	deliverycontext "academy/internal/delivery/context"
	domainerrors "academy/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// echoStatusErrors gives framework-level rejections the same codes handlers use.
var echoStatusErrors = map[int]*domainerrors.BaseError{
	http.StatusNotFound:              domainerrors.ErrNotFound,
	http.StatusRequestEntityTooLarge: domainerrors.ErrPayloadTooLarge,
}

// ErrorMiddleware renders every handler error as the JSON error envelope.
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError is installed as echo's HTTPErrorHandler. Domain errors keep their
// status and code; anything unrecognised becomes a generic 500 and is logged.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if mapped, ok := echoStatusErrors[httpErr.Code]; ok {
			err = mapped
		}
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			logger.Error("Request failed",
				slog.Any("error", err),
				slog.String("path", c.Request().URL.Path),
				slog.String("method", c.Request().Method),
			)
		}
		_ = response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())

		return
	}

	if httpErr != nil {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
		_ = response.Error(c, httpErr.Code, "HTTP_ERROR", message, nil)

		return
	}

	logger.Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	_ = response.InternalServerError(c, domainerrors.ErrInternalError.ErrorCode(), "Internal server error, please try again later")
}
