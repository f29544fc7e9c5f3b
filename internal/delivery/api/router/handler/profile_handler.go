package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"academy/internal/delivery/api/middleware"
	"academy/internal/delivery/api/response"
	domainerrors "academy/internal/domain/errors"
	"academy/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ProfileHandlerParams holds dependencies for ProfileHandler, injected by Fx.
type ProfileHandlerParams struct {
	fx.In

	Accounts usecase.AccountUsecase
	Logger   *slog.Logger
}

// ProfileHandler serves the student and teacher dashboards.
type ProfileHandler struct {
	accounts usecase.AccountUsecase
	logger   *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler.
func NewProfileHandler(params ProfileHandlerParams) *ProfileHandler {
	return &ProfileHandler{
		accounts: params.Accounts,
		logger:   params.Logger,
	}
}

// GetProfile handles GET /api/profile. With ?studentId= it returns the reduced summary of that student.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	caller, ok := middleware.GetIdentity(c)
	if !ok {
		return domainerrors.ErrMissingToken
	}
	ctx := c.Request().Context()

	if studentID := strings.TrimSpace(c.QueryParam("studentId")); studentID != "" {
		summary, err := h.accounts.GetProfileByStudentID(ctx, caller, studentID)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, studentSummaryResponse{
			Name:     summary.Name,
			Courses:  summary.Courses,
			Schedule: summary.Schedule,
		})
	}

	profile, err := h.accounts.GetProfile(ctx, caller)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, studentProfileResponse{
		Name:       profile.Name,
		Email:      profile.Email,
		Registered: profile.Registered,
		Language:   profile.Language,
		Courses:    profile.Courses,
		Schedule:   profile.Schedule,
		Reviews:    profile.Reviews,
	})
}

// GetTeacherProfile handles GET /api/teacher-profile.
func (h *ProfileHandler) GetTeacherProfile(c echo.Context) error {
	caller, ok := middleware.GetIdentity(c)
	if !ok {
		return domainerrors.ErrMissingToken
	}

	profile, err := h.accounts.GetTeacherProfile(c.Request().Context(), caller)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, teacherProfileResponse{
		ID:                profile.ID,
		Name:              profile.Name,
		Email:             profile.Email,
		TeachesCourses:    profile.TeachesCourses,
		IndividualLessons: profile.IndividualLessons,
		Tracker:           profile.Tracker,
	})
}
