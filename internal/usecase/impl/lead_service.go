package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "academy/internal/delivery/context"
	"academy/internal/domain/entity"
	domainerrors "academy/internal/domain/errors"
	"academy/internal/domain/repository"
	"academy/internal/domain/service"
	"academy/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const leadDateLayout = "2006-01-02"

type leadService struct {
	leads     repository.LeadRepository
	sanitizer service.Sanitizer
	publisher service.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// LeadServiceParams holds dependencies for LeadService, injected by Fx.
type LeadServiceParams struct {
	fx.In

	Leads     repository.LeadRepository
	Sanitizer service.Sanitizer
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewLeadService creates the lead intake usecase.
func NewLeadService(params LeadServiceParams) usecase.LeadUsecase {
	return &leadService{
		leads:     params.Leads,
		sanitizer: params.Sanitizer,
		publisher: params.Publisher,
		logger:    params.Logger,
		now:       time.Now,
	}
}

func (srv *leadService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *leadService) SubmitPurchaseLead(ctx context.Context, input *usecase.PurchaseLeadInput) (*entity.Lead, error) {
	lead := &entity.Lead{
		Source:  entity.LeadSourcePurchase,
		Name:    srv.sanitizer.Text(input.Name),
		Contact: srv.sanitizer.Text(input.Contact),
		Format:  srv.sanitizer.Text(input.Format),
		Course:  srv.sanitizer.Text(input.Course),
	}
	if lead.Name == "" || lead.Contact == "" || lead.Format == "" || lead.Course == "" || strings.TrimSpace(input.Date) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name, contact, format, course and date are required")
	}

	date, err := parseLeadDate(input.Date)
	if err != nil {
		return nil, err
	}
	lead.Date = date

	return srv.store(ctx, lead)
}

func (srv *leadService) SubmitContactRequest(ctx context.Context, input *usecase.ContactRequestInput) (*entity.Lead, error) {
	lead := &entity.Lead{
		Source:  entity.LeadSourceContact,
		Name:    srv.sanitizer.Text(input.Name),
		Contact: srv.sanitizer.Text(input.Contact),
		Course:  srv.sanitizer.Text(input.Course),
		Format:  srv.sanitizer.Text(input.Format),
	}
	if lead.Name == "" || lead.Contact == "" || lead.Course == "" || lead.Format == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name, contact, course and format are required")
	}

	return srv.store(ctx, lead)
}

func (srv *leadService) SubmitSignup(ctx context.Context, input *usecase.SignupInput) (*entity.Lead, error) {
	lead := &entity.Lead{
		Source:  entity.LeadSourceSignup,
		Name:    srv.sanitizer.Text(input.Name),
		Contact: srv.sanitizer.Text(input.Contact),
		Course:  srv.sanitizer.Text(input.Course),
	}
	if lead.Name == "" || lead.Contact == "" || lead.Course == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name, contact and course are required")
	}

	return srv.store(ctx, lead)
}

// parseLeadDate accepts RFC 3339 or a bare calendar date.
func parseLeadDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(leadDateLayout, raw); err == nil {
		return t, nil
	}

	return time.Time{}, domainerrors.ErrValidationFailed.WithDetails("date must be RFC 3339 or YYYY-MM-DD")
}

// store persists the lead and announces it. Publishing is best effort.
func (srv *leadService) store(ctx context.Context, lead *entity.Lead) (*entity.Lead, error) {
	lead.CreatedAt = srv.now().UTC()
	if err := srv.leads.Create(ctx, lead); err != nil {
		return nil, errors.Wrapf(err, "failed to store %s lead", lead.Source)
	}
	srv.log(ctx).Info("Lead stored", slog.String("source", string(lead.Source)), slog.String("leadID", lead.ID))

	event := &service.LeadEvent{
		RequestID:   deliverycontext.GetRequestIDFromContext(ctx),
		LeadID:      lead.ID,
		Source:      string(lead.Source),
		Name:        lead.Name,
		Contact:     lead.Contact,
		Format:      lead.Format,
		Course:      lead.Course,
		Date:        lead.Date,
		SubmittedAt: lead.CreatedAt,
	}
	if err := srv.publisher.PublishLeadEvent(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to publish lead event",
			slog.String("leadID", lead.ID),
			slog.Any("error", err),
		)
	}

	return lead, nil
}
