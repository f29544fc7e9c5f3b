package mongodb

import (
	"testing"
	"time"

	"academy/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserTypeMapping(t *testing.T) {
	assert.Equal(t, "User", userTypeOf(entity.AccountKindStudent))
	assert.Equal(t, "Teacher", userTypeOf(entity.AccountKindTeacher))
	assert.Equal(t, entity.AccountKindStudent, kindOf("User"))
	assert.Equal(t, entity.AccountKindTeacher, kindOf("Teacher"))
}

func TestLeadCollection(t *testing.T) {
	assert.Equal(t, "applications", leadCollection(entity.LeadSourcePurchase))
	assert.Equal(t, "contacts", leadCollection(entity.LeadSourceContact))
	assert.Equal(t, "signups", leadCollection(entity.LeadSourceSignup))
}

func TestTeacherDocument_UsesStoredFieldNames(t *testing.T) {
	studentID := primitive.NewObjectID()
	teacher := &entity.Teacher{
		Name:           "Olena",
		Email:          "olena@example.com",
		PasswordHash:   "hash",
		TeachesCourses: []entity.TaughtCourse{{ID: "c1", Name: "English", GroupNumber: "G1", MaterialsLink: "https://m"}},
		IndividualLessons: []entity.IndividualLesson{
			{StudentID: studentID.Hex(), Lesson: "Grammar", CourseName: "English"},
		},
	}

	raw, err := bson.Marshal(newTeacherDocument(teacher))
	require.NoError(t, err)

	var fields bson.M
	require.NoError(t, bson.Unmarshal(raw, &fields))
	assert.Equal(t, "hash", fields["password"])
	assert.Contains(t, fields, "teachesCourses")
	assert.Contains(t, fields, "individualLessons")

	var decoded teacherDocument
	require.NoError(t, bson.Unmarshal(raw, &decoded))
	decoded.ID = primitive.NewObjectID()

	got := decoded.toEntity()
	require.Len(t, got.IndividualLessons, 1)
	assert.Equal(t, studentID.Hex(), got.IndividualLessons[0].StudentID)
	assert.NotEmpty(t, got.IndividualLessons[0].ID)
	assert.Equal(t, "c1", got.TeachesCourses[0].ID)
	assert.Equal(t, decoded.ID.Timestamp(), got.CreatedAt)
}

func TestUserDocument_RoundTrip(t *testing.T) {
	registered := time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)
	student := &entity.Student{
		Name:         "Ivan",
		Email:        "ivan@example.com",
		PasswordHash: "hash",
		RegisteredAt: registered,
		Language:     entity.DefaultLanguage,
		Courses:      []entity.EnrolledCourse{{Name: "English", MeetLink: "https://meet"}},
	}

	doc := newUserDocument(student)
	doc.ID = primitive.NewObjectID()

	got := doc.toEntity()
	assert.Equal(t, doc.ID.Hex(), got.ID)
	assert.Equal(t, registered, got.RegisteredAt)
	assert.Equal(t, student.Courses, got.Courses)
	assert.Empty(t, got.Schedule)
}

func TestReviewDocument_LegacyCreatedAtFallsBackToID(t *testing.T) {
	doc := reviewDocument{ID: primitive.NewObjectID(), Text: "Great", Author: "Ivan"}

	got := doc.toEntity()
	assert.Equal(t, doc.ID.Timestamp(), got.CreatedAt)
	assert.Empty(t, got.AuthorID)
}

func TestLeadDocument_OmitsZeroDate(t *testing.T) {
	doc := newLeadDocument(&entity.Lead{Name: "A", Contact: "B", Course: "C"})
	assert.Nil(t, doc.Date)

	date := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	doc = newLeadDocument(&entity.Lead{Name: "A", Contact: "B", Course: "C", Date: date})
	require.NotNil(t, doc.Date)
	assert.Equal(t, date, *doc.Date)
}

func TestObjectID(t *testing.T) {
	_, ok := objectID("not-an-id")
	assert.False(t, ok)

	oid := primitive.NewObjectID()
	got, ok := objectID(oid.Hex())
	assert.True(t, ok)
	assert.Equal(t, oid, got)
}
