// Package handler contains the HTTP handlers of the API.
package handler

import (
	"log/slog"
	"net/http"

	"academy/internal/delivery/api/middleware"
	"academy/internal/delivery/api/response"
	domainerrors "academy/internal/domain/errors"
	"academy/internal/domain/entity"
	"academy/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	Accounts usecase.AccountUsecase
	Sessions usecase.SessionUsecase
	Logger   *slog.Logger
}

// AuthHandler serves registration, login and token endpoints for both account kinds.
type AuthHandler struct {
	accounts usecase.AccountUsecase
	sessions usecase.SessionUsecase
	logger   *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		accounts: params.Accounts,
		sessions: params.Sessions,
		logger:   params.Logger,
	}
}

// RegisterStudentRequest is the body of POST /api/register.
type RegisterStudentRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,max=320"`
	Password string `json:"password" validate:"required,max=72"`
}

// RegisterTeacherRequest is the body of POST /api/teacher-register and POST /api/teachers.
type RegisterTeacherRequest struct {
	Name              string                    `json:"name" validate:"required,max=200"`
	Email             string                    `json:"email" validate:"required,max=320"`
	Password          string                    `json:"password" validate:"required,max=72"`
	TeachesCourses    []taughtCourseRecord     `json:"teachesCourses"`
	IndividualLessons []individualLessonRecord `json:"individualLessons"`
}

// LoginRequest is the body of every login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest is the body of POST /api/refresh-token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

func (r *RegisterTeacherRequest) input() *usecase.RegisterTeacherInput {
	input := &usecase.RegisterTeacherInput{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
	}
	if r.TeachesCourses != nil {
		input.TeachesCourses = make([]entity.TaughtCourse, 0, len(r.TeachesCourses))
		for _, c := range r.TeachesCourses {
			input.TeachesCourses = append(input.TeachesCourses, entity.TaughtCourse(c))
		}
	}
	for _, l := range r.IndividualLessons {
		input.IndividualLessons = append(input.IndividualLessons, entity.IndividualLesson(l))
	}

	return input
}

func (r *LoginRequest) input() *usecase.LoginInput {
	return &usecase.LoginInput{Email: r.Email, Password: r.Password}
}

// bindAndValidate decodes the body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req any, message string) error {
	if err := c.Bind(req); err != nil {
		return errors.Wrap(domainerrors.ErrInvalidInput.WithDetails(message), err.Error())
	}

	return errors.WithStack(c.Validate(req))
}

// RegisterStudent handles POST /api/register.
func (h *AuthHandler) RegisterStudent(c echo.Context) error {
	var req RegisterStudentRequest
	if err := bindAndValidate(c, &req, "Invalid registration input"); err != nil {
		return err
	}

	output, err := h.accounts.RegisterStudent(c.Request().Context(), &usecase.RegisterStudentInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newStudentAuthResponse("Registration successful", output))
}

// RegisterTeacher handles POST /api/teacher-register.
func (h *AuthHandler) RegisterTeacher(c echo.Context) error {
	var req RegisterTeacherRequest
	if err := bindAndValidate(c, &req, "Invalid registration input"); err != nil {
		return err
	}

	output, err := h.accounts.RegisterTeacher(c.Request().Context(), req.input())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newTeacherAuthResponse("Teacher registration successful", output))
}

// CreateTeacher handles POST /api/teachers on behalf of an authenticated teacher.
func (h *AuthHandler) CreateTeacher(c echo.Context) error {
	caller, ok := middleware.GetIdentity(c)
	if !ok {
		return domainerrors.ErrMissingToken
	}

	var req RegisterTeacherRequest
	if err := bindAndValidate(c, &req, "Invalid teacher input"); err != nil {
		return err
	}

	output, err := h.accounts.CreateTeacher(c.Request().Context(), caller, req.input())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newTeacherAuthResponse("Teacher added successfully", output))
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req, "Invalid login input"); err != nil {
		return err
	}

	output, err := h.accounts.Login(c.Request().Context(), req.input())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newStudentAuthResponse("Login successful", output))
}

// TeacherLogin handles POST /api/teacher-login.
func (h *AuthHandler) TeacherLogin(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req, "Invalid login input"); err != nil {
		return err
	}

	output, err := h.accounts.TeacherLogin(c.Request().Context(), req.input())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newTeacherAuthResponse("Login successful", output))
}

// TeacherLoginExtended handles POST /api/teacher-login-no-expiry.
func (h *AuthHandler) TeacherLoginExtended(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req, "Invalid login input"); err != nil {
		return err
	}

	output, err := h.accounts.TeacherLoginExtended(c.Request().Context(), req.input())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newTeacherAuthResponse("Login successful", output))
}

// RefreshToken handles POST /api/refresh-token.
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var req RefreshTokenRequest
	if err := bindAndValidate(c, &req, "Invalid refresh token input"); err != nil {
		return err
	}

	token, err := h.sessions.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tokenResponse{Token: token})
}

// Logout handles POST /api/logout.
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return domainerrors.ErrMissingToken
	}

	if err := h.sessions.Logout(c.Request().Context(), claims); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, "Successfully logged out")
}
