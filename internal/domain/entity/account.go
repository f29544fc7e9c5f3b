// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// DefaultLanguage is assigned to new students.
const DefaultLanguage = "uk"

// Student is a learner account.
type Student struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	RegisteredAt time.Time
	Language     string
	Courses      []EnrolledCourse
	Schedule     []ScheduledSession
}

// EnrolledCourse is a course a student attends.
type EnrolledCourse struct {
	Name          string `json:"name"`
	MeetLink      string `json:"meetLink"`
	MaterialsLink string `json:"materialsLink"`
}

// ScheduledSession is a single planned lesson on the student's calendar.
type ScheduledSession struct {
	CourseName    string    `json:"courseName"`
	Title         string    `json:"title"`
	Date          time.Time `json:"date"`
	MeetLink      string    `json:"meetLink"`
	MaterialsLink string    `json:"materialsLink"`
}

// Identity returns the token principal for the student.
func (s *Student) Identity() Identity {
	return Identity{AccountID: s.ID, Kind: AccountKindStudent, Email: s.Email, Name: s.Name}
}

// Teacher is an instructor account.
type Teacher struct {
	ID                string
	Name              string
	Email             string
	PasswordHash      string
	TeachesCourses    []TaughtCourse
	IndividualLessons []IndividualLesson
	Tracker           string // link to the teacher's external tracker sheet
	CreatedAt         time.Time
}

// TaughtCourse is a group course led by a teacher.
type TaughtCourse struct {
	ID            string `json:"courseId"`
	Name          string `json:"name"`
	GroupNumber   string `json:"groupNumber"`
	MaterialsLink string `json:"materialsLink"`
}

// IndividualLesson is a one-to-one lesson with a student.
type IndividualLesson struct {
	ID            string `json:"individualId"`
	StudentID     string `json:"studentId"`
	Lesson        string `json:"lesson"`
	CourseName    string `json:"courseName"`
	MeetLink      string `json:"meetLink"`
	MaterialsLink string `json:"materialsLink"`
}

// Identity returns the token principal for the teacher.
func (t *Teacher) Identity() Identity {
	return Identity{AccountID: t.ID, Kind: AccountKindTeacher, Email: t.Email, Name: t.Name}
}
