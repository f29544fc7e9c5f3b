// Package model holds the GORM models of the relational backend.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// StudentModel mirrors the 'students' table. Enrolments and the calendar are JSONB columns.
type StudentModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Language     string    `gorm:"type:varchar(16);not null"`
	RegisteredAt time.Time `gorm:"not null"`
	Courses      datatypes.JSONSlice[EnrolledCourseJSON]
	Schedule     datatypes.JSONSlice[ScheduledSessionJSON]
}

// TableName explicitly sets the table name for GORM.
func (StudentModel) TableName() string {
	return "students"
}

// EnrolledCourseJSON is one element of students.courses.
type EnrolledCourseJSON struct {
	Name          string `json:"name"`
	MeetLink      string `json:"meetLink"`
	MaterialsLink string `json:"materialsLink"`
}

// ScheduledSessionJSON is one element of students.schedule.
type ScheduledSessionJSON struct {
	CourseName    string    `json:"courseName"`
	Title         string    `json:"title"`
	Date          time.Time `json:"date"`
	MeetLink      string    `json:"meetLink"`
	MaterialsLink string    `json:"materialsLink"`
}

// TeacherModel mirrors the 'teachers' table.
type TeacherModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string    `gorm:"type:varchar(255);not null"`
	Email             string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash      string    `gorm:"type:varchar(255);not null"`
	Tracker           string    `gorm:"type:text"`
	TeachesCourses    datatypes.JSONSlice[TaughtCourseJSON]
	IndividualLessons datatypes.JSONSlice[IndividualLessonJSON]
	CreatedAt         time.Time
}

// TableName explicitly sets the table name for GORM.
func (TeacherModel) TableName() string {
	return "teachers"
}

// TaughtCourseJSON is one element of teachers.teaches_courses.
type TaughtCourseJSON struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	GroupNumber   string `json:"groupNumber"`
	MaterialsLink string `json:"materialsLink"`
}

// IndividualLessonJSON is one element of teachers.individual_lessons.
type IndividualLessonJSON struct {
	ID            string `json:"id"`
	StudentID     string `json:"studentId"`
	Lesson        string `json:"lesson"`
	CourseName    string `json:"courseName"`
	MeetLink      string `json:"meetLink"`
	MaterialsLink string `json:"materialsLink"`
}

// RefreshTokenModel mirrors the 'refresh_tokens' table. (account_id, account_kind) is unique.
type RefreshTokenModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TokenHash   string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	AccountID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_refresh_tokens_account"`
	AccountKind string     `gorm:"type:varchar(16);not null;uniqueIndex:idx_refresh_tokens_account"`
	ExpiresAt   *time.Time
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}
