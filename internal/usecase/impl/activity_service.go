package impl

import (
	"context"
	"log/slog"
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

type activityService struct {
	teachers   repository.TeacherRepository
	activities repository.ActivityRepository
	sanitizer  service.Sanitizer
	logger     *slog.Logger
	now        func() time.Time
}

// ActivityServiceParams holds dependencies for ActivityService, injected by Fx.
type ActivityServiceParams struct {
	fx.In

	Teachers   repository.TeacherRepository
	Activities repository.ActivityRepository
	Sanitizer  service.Sanitizer
	Logger     *slog.Logger
}

// NewActivityService creates the tracker usecase.
func NewActivityService(params ActivityServiceParams) usecase.ActivityUsecase {
	return &activityService{
		teachers:   params.Teachers,
		activities: params.Activities,
		sanitizer:  params.Sanitizer,
		logger:     params.Logger,
		now:        time.Now,
	}
}

func (srv *activityService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *activityService) ListActivity(ctx context.Context, caller entity.Identity) ([]*entity.ActivityEntry, error) {
	if !caller.IsTeacher() {
		return nil, domainerrors.ErrForbidden.WithDetails("tracker requires a teacher token")
	}

	entries, err := srv.activities.ListByTeacher(ctx, caller.AccountID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tracker entries")
	}

	return entries, nil
}

// AddActivity appends an entry dated now. Nothing is stored when either text is blank after sanitization.
func (srv *activityService) AddActivity(ctx context.Context, caller entity.Identity, input *usecase.AddActivityInput) (*entity.ActivityEntry, error) {
	if !caller.IsTeacher() {
		return nil, domainerrors.ErrForbidden.WithDetails("tracker requires a teacher token")
	}

	activity := srv.sanitizer.Text(input.Activity)
	details := srv.sanitizer.Text(input.Details)
	if activity == "" || details == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("activity and details are required")
	}

	if _, err := srv.teachers.FindByID(ctx, caller.AccountID); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrTeacherNotFound, "tracker owner no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load tracker owner")
	}

	entry := &entity.ActivityEntry{
		TeacherID: caller.AccountID,
		Date:      srv.now().UTC(),
		Activity:  activity,
		Details:   details,
	}
	if err := srv.activities.Create(ctx, entry); err != nil {
		return nil, errors.Wrap(err, "failed to store tracker entry")
	}
	srv.log(ctx).Info("Tracker entry added",
		slog.String("teacherID", caller.AccountID),
		slog.String("entryID", entry.ID),
	)

	return entry, nil
}
