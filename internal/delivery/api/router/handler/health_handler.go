package handler

import (
	"net/http"

	"academy/internal/delivery/api/response"
	"academy/internal/domain/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// HealthHandlerParams holds dependencies for HealthHandler, injected by Fx.
type HealthHandlerParams struct {
	fx.In

	Availability service.StoreAvailability
}

// HealthHandler reports liveness. It stays reachable while the store is down.
type HealthHandler struct {
	availability service.StoreAvailability
}

// NewHealthHandler is the constructor for HealthHandler.
func NewHealthHandler(params HealthHandlerParams) *HealthHandler {
	return &HealthHandler{availability: params.Availability}
}

type healthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

// Check handles GET /healthz.
func (h *HealthHandler) Check(c echo.Context) error {
	store := "down"
	if h.availability.IsAvailable() {
		store = "up"
	}

	return response.Success(c, http.StatusOK, healthResponse{Status: "ok", Store: store})
}
