package usecase

import (
	"context"

	"academy/internal/domain/entity"
)

// AddActivityInput is a new tracker line. Markup is stripped before validation.
type AddActivityInput struct {
	Activity string
	Details  string
}

// ActivityUsecase manages the teacher activity tracker.
type ActivityUsecase interface {
	// ListActivity returns the caller's entries, newest first.
	ListActivity(ctx context.Context, caller entity.Identity) ([]*entity.ActivityEntry, error)
	AddActivity(ctx context.Context, caller entity.Identity, input *AddActivityInput) (*entity.ActivityEntry, error)
}
