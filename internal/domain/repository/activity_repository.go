package repository

import (
	"context"

	"academy/internal/domain/entity"
)

// ActivityRepository is append-only: entries are never updated or deleted.
type ActivityRepository interface {
	// Create stores a new entry and fills in its ID.
	Create(ctx context.Context, entry *entity.ActivityEntry) error

	// ListByTeacher returns the teacher's entries ordered newest first.
	ListByTeacher(ctx context.Context, teacherID string) ([]*entity.ActivityEntry, error)
}
