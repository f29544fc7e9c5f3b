package handler

import (
	"log/slog"
	"net/http"

	"academy/internal/delivery/api/middleware"
	"academy/internal/delivery/api/response"
	domainerrors "academy/internal/domain/errors"
	"academy/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// TrackerHandlerParams holds dependencies for TrackerHandler, injected by Fx.
type TrackerHandlerParams struct {
	fx.In

	Activities usecase.ActivityUsecase
	Logger     *slog.Logger
}

// TrackerHandler serves the teacher activity tracker.
type TrackerHandler struct {
	activities usecase.ActivityUsecase
	logger     *slog.Logger
}

// NewTrackerHandler is the constructor for TrackerHandler.
func NewTrackerHandler(params TrackerHandlerParams) *TrackerHandler {
	return &TrackerHandler{
		activities: params.Activities,
		logger:     params.Logger,
	}
}

// AddActivityRequest is the body of POST /api/teacher-tracker.
type AddActivityRequest struct {
	Activity string `json:"activity" validate:"required,max=500"`
	Details  string `json:"details" validate:"required,max=5000"`
}

// ListActivity handles GET /api/teacher-tracker.
func (h *TrackerHandler) ListActivity(c echo.Context) error {
	caller, ok := middleware.GetIdentity(c)
	if !ok {
		return domainerrors.ErrMissingToken
	}

	entries, err := h.activities.ListActivity(c.Request().Context(), caller)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, mapSlice(entries, newTrackerEntryView))
}

// AddActivity handles POST /api/teacher-tracker.
func (h *TrackerHandler) AddActivity(c echo.Context) error {
	caller, ok := middleware.GetIdentity(c)
	if !ok {
		return domainerrors.ErrMissingToken
	}

	var req AddActivityRequest
	if err := bindAndValidate(c, &req, "Invalid tracker entry"); err != nil {
		return err
	}

	entry, err := h.activities.AddActivity(c.Request().Context(), caller, &usecase.AddActivityInput{
		Activity: req.Activity,
		Details:  req.Details,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, trackerCreatedResponse{
		Message:      "Activity recorded",
		TrackerEntry: newTrackerEntryView(entry),
	})
}
