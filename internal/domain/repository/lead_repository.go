package repository

import (
	"context"

	"academy/internal/domain/entity"
)

// LeadRepository stores prospective-customer requests.
type LeadRepository interface {
	// Create stores a lead and fills in its ID.
	Create(ctx context.Context, lead *entity.Lead) error
}
