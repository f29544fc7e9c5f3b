package mongodb

import (
	"time"

	"academy/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names match the documents already written by the previous deployment.
const (
	collectionUsers         = "users"
	collectionTeachers      = "teachers"
	collectionTrackers      = "trackers"
	collectionCourses       = "courses"
	collectionReviews       = "reviews"
	collectionBlogPosts     = "blogposts"
	collectionArticles      = "articles"
	collectionRefreshTokens = "refreshtokens"
	collectionApplications  = "applications"
	collectionContacts      = "contacts"
	collectionSignups       = "signups"
)

// userType values stored on refresh tokens.
const (
	userTypeStudent = "User"
	userTypeTeacher = "Teacher"
)

func userTypeOf(kind entity.AccountKind) string {
	if kind == entity.AccountKindTeacher {
		return userTypeTeacher
	}

	return userTypeStudent
}

func kindOf(userType string) entity.AccountKind {
	if userType == userTypeTeacher {
		return entity.AccountKindTeacher
	}

	return entity.AccountKindStudent
}

func leadCollection(source entity.LeadSource) string {
	switch source {
	case entity.LeadSourceContact:
		return collectionContacts
	case entity.LeadSourceSignup:
		return collectionSignups
	default:
		return collectionApplications
	}
}

type userDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Email      string             `bson:"email"`
	Password   string             `bson:"password"`
	Registered time.Time          `bson:"registered"`
	Language   string             `bson:"language"`
	Courses    []userCourse       `bson:"courses"`
	Schedule   []userSession      `bson:"schedule"`
}

type userCourse struct {
	Name          string `bson:"name"`
	MeetLink      string `bson:"meetLink"`
	MaterialsLink string `bson:"materialsLink"`
}

type userSession struct {
	CourseName    string    `bson:"courseName"`
	Title         string    `bson:"title"`
	Date          time.Time `bson:"date"`
	MeetLink      string    `bson:"meetLink"`
	MaterialsLink string    `bson:"materialsLink"`
}

func newUserDocument(s *entity.Student) *userDocument {
	doc := &userDocument{
		Name:       s.Name,
		Email:      s.Email,
		Password:   s.PasswordHash,
		Registered: s.RegisteredAt,
		Language:   s.Language,
		Courses:    make([]userCourse, 0, len(s.Courses)),
		Schedule:   make([]userSession, 0, len(s.Schedule)),
	}
	for _, c := range s.Courses {
		doc.Courses = append(doc.Courses, userCourse(c))
	}
	for _, session := range s.Schedule {
		doc.Schedule = append(doc.Schedule, userSession(session))
	}

	return doc
}

func (d *userDocument) toEntity() *entity.Student {
	s := &entity.Student{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		RegisteredAt: d.Registered,
		Language:     d.Language,
		Courses:      make([]entity.EnrolledCourse, 0, len(d.Courses)),
		Schedule:     make([]entity.ScheduledSession, 0, len(d.Schedule)),
	}
	for _, c := range d.Courses {
		s.Courses = append(s.Courses, entity.EnrolledCourse(c))
	}
	for _, session := range d.Schedule {
		s.Schedule = append(s.Schedule, entity.ScheduledSession(session))
	}

	return s
}

type teacherDocument struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Name              string             `bson:"name"`
	Email             string             `bson:"email"`
	Password          string             `bson:"password"`
	TeachesCourses    []teacherCourse    `bson:"teachesCourses"`
	IndividualLessons []teacherLesson    `bson:"individualLessons"`
	Tracker           string             `bson:"tracker,omitempty"`
}

type teacherCourse struct {
	ID            string `bson:"id"`
	Name          string `bson:"name"`
	GroupNumber   string `bson:"groupNumber"`
	MaterialsLink string `bson:"materialsLink"`
}

type teacherLesson struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty"`
	StudentID     *primitive.ObjectID `bson:"studentId,omitempty"`
	Lesson        string              `bson:"lesson"`
	CourseName    string              `bson:"courseName"`
	MeetLink      string              `bson:"meetLink"`
	MaterialsLink string              `bson:"materialsLink"`
}

func newTeacherDocument(t *entity.Teacher) *teacherDocument {
	doc := &teacherDocument{
		Name:              t.Name,
		Email:             t.Email,
		Password:          t.PasswordHash,
		Tracker:           t.Tracker,
		TeachesCourses:    make([]teacherCourse, 0, len(t.TeachesCourses)),
		IndividualLessons: make([]teacherLesson, 0, len(t.IndividualLessons)),
	}
	for _, c := range t.TeachesCourses {
		doc.TeachesCourses = append(doc.TeachesCourses, teacherCourse(c))
	}
	for _, l := range t.IndividualLessons {
		lesson := teacherLesson{
			ID:            primitive.NewObjectID(),
			Lesson:        l.Lesson,
			CourseName:    l.CourseName,
			MeetLink:      l.MeetLink,
			MaterialsLink: l.MaterialsLink,
		}
		if oid, err := primitive.ObjectIDFromHex(l.ID); err == nil {
			lesson.ID = oid
		}
		if oid, err := primitive.ObjectIDFromHex(l.StudentID); err == nil {
			lesson.StudentID = &oid
		}
		doc.IndividualLessons = append(doc.IndividualLessons, lesson)
	}

	return doc
}

func (d *teacherDocument) toEntity() *entity.Teacher {
	t := &entity.Teacher{
		ID:                d.ID.Hex(),
		Name:              d.Name,
		Email:             d.Email,
		PasswordHash:      d.Password,
		Tracker:           d.Tracker,
		CreatedAt:         d.ID.Timestamp(),
		TeachesCourses:    make([]entity.TaughtCourse, 0, len(d.TeachesCourses)),
		IndividualLessons: make([]entity.IndividualLesson, 0, len(d.IndividualLessons)),
	}
	for _, c := range d.TeachesCourses {
		t.TeachesCourses = append(t.TeachesCourses, entity.TaughtCourse(c))
	}
	for _, l := range d.IndividualLessons {
		lesson := entity.IndividualLesson{
			ID:            l.ID.Hex(),
			Lesson:        l.Lesson,
			CourseName:    l.CourseName,
			MeetLink:      l.MeetLink,
			MaterialsLink: l.MaterialsLink,
		}
		if l.StudentID != nil {
			lesson.StudentID = l.StudentID.Hex()
		}
		t.IndividualLessons = append(t.IndividualLessons, lesson)
	}

	return t
}

type refreshTokenDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	TokenHash string             `bson:"tokenHash"`
	UserID    primitive.ObjectID `bson:"userId"`
	UserType  string             `bson:"userType"`
	ExpiresAt *time.Time         `bson:"expiresAt,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d *refreshTokenDocument) toEntity() *entity.RefreshToken {
	return &entity.RefreshToken{
		ID:          d.ID.Hex(),
		TokenHash:   d.TokenHash,
		AccountID:   d.UserID.Hex(),
		AccountKind: kindOf(d.UserType),
		ExpiresAt:   d.ExpiresAt,
		CreatedAt:   d.CreatedAt,
	}
}

type trackerDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	TeacherID primitive.ObjectID `bson:"teacherId"`
	Date      time.Time          `bson:"date"`
	Activity  string             `bson:"activity"`
	Details   string             `bson:"details"`
}

func (d *trackerDocument) toEntity() *entity.ActivityEntry {
	return &entity.ActivityEntry{
		ID:        d.ID.Hex(),
		TeacherID: d.TeacherID.Hex(),
		Date:      d.Date,
		Activity:  d.Activity,
		Details:   d.Details,
	}
}

type courseDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Category      string             `bson:"category"`
	Name          string             `bson:"name"`
	Description   string             `bson:"description"`
	Details       []string           `bson:"details"`
	Schedule      struct {
		Group      string `bson:"group"`
		Individual string `bson:"individual"`
	} `bson:"schedule"`
	Prices struct {
		Group      string `bson:"group"`
		Individual string `bson:"individual"`
	} `bson:"prices"`
	MeetLink      string `bson:"meetLink"`
	MaterialsLink string `bson:"materialsLink"`
}

func (d *courseDocument) toEntity() *entity.Course {
	return &entity.Course{
		ID:            d.ID.Hex(),
		Category:      d.Category,
		Name:          d.Name,
		Description:   d.Description,
		Details:       d.Details,
		Schedule:      entity.CourseSchedule{Group: d.Schedule.Group, Individual: d.Schedule.Individual},
		Prices:        entity.CoursePrices{Group: d.Prices.Group, Individual: d.Prices.Individual},
		MeetLink:      d.MeetLink,
		MaterialsLink: d.MaterialsLink,
	}
}

type reviewDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Text      string             `bson:"text"`
	Author    string             `bson:"author"`
	AuthorID  string             `bson:"authorId,omitempty"`
	CreatedAt *time.Time         `bson:"createdAt,omitempty"`
}

func (d *reviewDocument) toEntity() *entity.Review {
	r := &entity.Review{
		ID:        d.ID.Hex(),
		Text:      d.Text,
		Author:    d.Author,
		AuthorID:  d.AuthorID,
		CreatedAt: d.ID.Timestamp(),
	}
	if d.CreatedAt != nil {
		r.CreatedAt = *d.CreatedAt
	}

	return r
}

type blogPostDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Content     string             `bson:"content"`
	PublishedAt time.Time          `bson:"publishedAt"`
}

func (d *blogPostDocument) toEntity() *entity.BlogPost {
	return &entity.BlogPost{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Content:     d.Content,
		PublishedAt: d.PublishedAt,
	}
}

type articleDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Image     string             `bson:"image"`
	Content   string             `bson:"content"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d *articleDocument) toEntity() *entity.Article {
	return &entity.Article{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Image:     d.Image,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
	}
}

type leadDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Contact   string             `bson:"contact"`
	Format    string             `bson:"format,omitempty"`
	Course    string             `bson:"course"`
	Date      *time.Time         `bson:"date,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func newLeadDocument(l *entity.Lead) *leadDocument {
	doc := &leadDocument{
		Name:      l.Name,
		Contact:   l.Contact,
		Format:    l.Format,
		Course:    l.Course,
		CreatedAt: l.CreatedAt,
	}
	if !l.Date.IsZero() {
		date := l.Date
		doc.Date = &date
	}

	return doc
}
