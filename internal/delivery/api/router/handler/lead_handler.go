package handler

import (
	"log/slog"
	"net/http"

	"academy/internal/delivery/api/response"
	"academy/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// LeadHandlerParams holds dependencies for LeadHandler, injected by Fx.
type LeadHandlerParams struct {
	fx.In

	Leads  usecase.LeadUsecase
	Logger *slog.Logger
}

// LeadHandler accepts the public purchase, contact and signup forms.
type LeadHandler struct {
	leads  usecase.LeadUsecase
	logger *slog.Logger
}

// NewLeadHandler is the constructor for LeadHandler.
func NewLeadHandler(params LeadHandlerParams) *LeadHandler {
	return &LeadHandler{
		leads:  params.Leads,
		logger: params.Logger,
	}
}

// PurchaseRequest is the body of POST /api/purchase.
type PurchaseRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Contact string `json:"contact" validate:"required,max=200"`
	Format  string `json:"format" validate:"required,max=100"`
	Course  string `json:"course" validate:"required,max=200"`
	Date    string `json:"date" validate:"required,max=40"`
}

// ContactRequest is the body of POST /api/contact.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Contact string `json:"contact" validate:"required,max=200"`
	Course  string `json:"course" validate:"required,max=200"`
	Format  string `json:"format" validate:"required,max=100"`
}

// SignupRequest is the body of POST /api/signup.
type SignupRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Contact string `json:"contact" validate:"required,max=200"`
	Course  string `json:"course" validate:"required,max=200"`
}

// SubmitPurchase handles POST /api/purchase.
func (h *LeadHandler) SubmitPurchase(c echo.Context) error {
	var req PurchaseRequest
	if err := bindAndValidate(c, &req, "Invalid purchase request"); err != nil {
		return err
	}

	_, err := h.leads.SubmitPurchaseLead(c.Request().Context(), &usecase.PurchaseLeadInput{
		Name:    req.Name,
		Contact: req.Contact,
		Format:  req.Format,
		Course:  req.Course,
		Date:    req.Date,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusCreated, "Request sent successfully")
}

// SubmitContact handles POST /api/contact.
func (h *LeadHandler) SubmitContact(c echo.Context) error {
	var req ContactRequest
	if err := bindAndValidate(c, &req, "Invalid contact request"); err != nil {
		return err
	}

	_, err := h.leads.SubmitContactRequest(c.Request().Context(), &usecase.ContactRequestInput{
		Name:    req.Name,
		Contact: req.Contact,
		Course:  req.Course,
		Format:  req.Format,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusCreated, "Contact request sent successfully")
}

// SubmitSignup handles POST /api/signup.
func (h *LeadHandler) SubmitSignup(c echo.Context) error {
	var req SignupRequest
	if err := bindAndValidate(c, &req, "Invalid signup request"); err != nil {
		return err
	}

	_, err := h.leads.SubmitSignup(c.Request().Context(), &usecase.SignupInput{
		Name:    req.Name,
		Contact: req.Contact,
		Course:  req.Course,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusCreated, "Signup received")
}
