// Package entity contains the core business objects of the project.
package entity

// AccountKind separates the two account namespaces. Emails are unique per kind,
// so the same address may belong to a student and a teacher at once.
type AccountKind string

const (
	// AccountKindStudent indicates a student account.
	AccountKindStudent AccountKind = "student"
	// AccountKindTeacher indicates a teacher account.
	AccountKindTeacher AccountKind = "teacher"
)

// String returns the string representation of the AccountKind.
func (k AccountKind) String() string {
	return string(k)
}

// IsValid checks if the AccountKind is a known value.
func (k AccountKind) IsValid() bool {
	switch k {
	case AccountKindStudent, AccountKindTeacher:
		return true
	default:
		return false
	}
}

// Identity is the authenticated principal carried by tokens.
type Identity struct {
	AccountID string
	Kind      AccountKind
	Email     string
	Name      string
}

// IsTeacher reports whether the identity belongs to a teacher account.
func (i Identity) IsTeacher() bool {
	return i.Kind == AccountKindTeacher
}

// IsStudent reports whether the identity belongs to a student account.
func (i Identity) IsStudent() bool {
	return i.Kind == AccountKindStudent
}
