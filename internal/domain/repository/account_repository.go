package repository

import (
	"context"

	"academy/internal/domain/entity"

	"github.com/pkg/errors"
)

// Domain-specific errors for account persistence.
var (
	// ErrAccountNotFound is returned when no account matches the lookup.
	ErrAccountNotFound = errors.New("account not found")
	// ErrDuplicateEmail is returned when the email is already taken within the same account kind.
	ErrDuplicateEmail = errors.New("email already registered")
)

// StudentRepository persists student accounts. Emails are unique among students.
type StudentRepository interface {
	// Create stores a new student and fills in its ID.
	Create(ctx context.Context, student *entity.Student) error

	FindByID(ctx context.Context, id string) (*entity.Student, error)

	FindByEmail(ctx context.Context, email string) (*entity.Student, error)
}

// TeacherRepository persists teacher accounts. Emails are unique among teachers.
type TeacherRepository interface {
	// Create stores a new teacher and fills in its ID.
	Create(ctx context.Context, teacher *entity.Teacher) error

	FindByID(ctx context.Context, id string) (*entity.Teacher, error)

	FindByEmail(ctx context.Context, email string) (*entity.Teacher, error)
}
