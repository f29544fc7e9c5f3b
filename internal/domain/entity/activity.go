package entity

import "time"

// ActivityEntry is an immutable log line a teacher records against their own account.
type ActivityEntry struct {
	ID        string
	TeacherID string
	Date      time.Time
	Activity  string
	Details   string
}
