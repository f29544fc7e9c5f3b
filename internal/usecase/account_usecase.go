// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"academy/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterStudentInput defines the data required to register a new student.
type RegisterStudentInput struct {
	Name     string
	Email    string
	Password string
}

// RegisterTeacherInput defines the data required to register a new teacher.
// Course and lesson lists are optional.
type RegisterTeacherInput struct {
	Name              string
	Email             string
	Password          string
	TeachesCourses    []entity.TaughtCourse
	IndividualLessons []entity.IndividualLesson
}

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// StudentAuthOutput returns the generated tokens with the authenticated student.
type StudentAuthOutput struct {
	Tokens  entity.TokenPair
	Student *entity.Student
}

// TeacherAuthOutput returns the generated tokens with the authenticated teacher.
type TeacherAuthOutput struct {
	Tokens  entity.TokenPair
	Teacher *entity.Teacher
}

// StudentProfile is the full view a student gets of their own account.
type StudentProfile struct {
	Name       string
	Email      string
	Registered time.Time
	Language   string
	Courses    []entity.EnrolledCourse
	Schedule   []entity.ScheduledSession
	Reviews    []string // review texts, newest first
}

// StudentSummary is the reduced view of a student looked up by id.
type StudentSummary struct {
	Name     string
	Courses  []entity.EnrolledCourse
	Schedule []entity.ScheduledSession
}

// TeacherProfile is a teacher's own dashboard with display fallbacks applied.
type TeacherProfile struct {
	ID                string
	Name              string
	Email             string
	TeachesCourses    []entity.TaughtCourse
	IndividualLessons []entity.IndividualLesson
	Tracker           string
}

// AccountUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	RegisterStudent(ctx context.Context, input *RegisterStudentInput) (*StudentAuthOutput, error)
	RegisterTeacher(ctx context.Context, input *RegisterTeacherInput) (*TeacherAuthOutput, error)
	// CreateTeacher registers a teacher on behalf of an authenticated teacher.
	CreateTeacher(ctx context.Context, caller entity.Identity, input *RegisterTeacherInput) (*TeacherAuthOutput, error)

	Login(ctx context.Context, input *LoginInput) (*StudentAuthOutput, error)
	TeacherLogin(ctx context.Context, input *LoginInput) (*TeacherAuthOutput, error)
	// TeacherLoginExtended issues a refresh token with the extended lifetime.
	TeacherLoginExtended(ctx context.Context, input *LoginInput) (*TeacherAuthOutput, error)

	GetProfile(ctx context.Context, caller entity.Identity) (*StudentProfile, error)
	GetProfileByStudentID(ctx context.Context, caller entity.Identity, studentID string) (*StudentSummary, error)
	GetTeacherProfile(ctx context.Context, caller entity.Identity) (*TeacherProfile, error)
}
