package usecase

import (
	"context"

	"academy/internal/domain/entity"
)

// PurchaseLeadInput is a course purchase request. Date is optional and accepts
// RFC 3339 or YYYY-MM-DD.
type PurchaseLeadInput struct {
	Name    string
	Contact string
	Format  string
	Course  string
	Date    string
}

// ContactRequestInput is a contact form submission.
type ContactRequestInput struct {
	Name    string
	Contact string
	Course  string
	Format  string
}

// SignupInput is a trial lesson signup.
type SignupInput struct {
	Name    string
	Contact string
	Course  string
}

// LeadUsecase accepts the unauthenticated lead forms.
type LeadUsecase interface {
	SubmitPurchaseLead(ctx context.Context, input *PurchaseLeadInput) (*entity.Lead, error)
	SubmitContactRequest(ctx context.Context, input *ContactRequestInput) (*entity.Lead, error)
	SubmitSignup(ctx context.Context, input *SignupInput) (*entity.Lead, error)
}
