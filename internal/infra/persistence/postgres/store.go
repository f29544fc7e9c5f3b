// Package postgres contains the relational implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"academy/internal/domain/repository"
	"academy/internal/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store exposes the repositories backed by one *gorm.DB.
type Store struct {
	db *gorm.DB
}

// NewStore wraps an open connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Ping checks the underlying pool.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	return errors.Wrap(sqlDB.PingContext(ctx), "failed to ping PostgreSQL")
}

// Set returns the repositories backed by this store.
func (s *Store) Set() repository.Set {
	return repository.Set{
		Students:      &studentRepository{db: s.db},
		Teachers:      &teacherRepository{db: s.db},
		RefreshTokens: &refreshTokenRepository{db: s.db},
		Activities:    &activityRepository{db: s.db},
		Courses:       &courseRepository{db: s.db},
		Reviews:       &reviewRepository{db: s.db},
		BlogPosts:     &blogPostRepository{db: s.db},
		Articles:      &articleRepository{db: s.db},
		Leads:         &leadRepository{db: s.db},
		Health:        s,
	}
}

// parseID turns an account or content id into a UUID. Unparseable ids are treated as misses.
func parseID(id string) (uuid.UUID, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, false
	}

	return parsed, true
}
