package handler

import (
	"time"

	"academy/internal/domain/entity"
	"academy/internal/usecase"
)

// Wire views. Document ids are exposed as "_id" because existing clients read that key.

type studentView struct {
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Registered time.Time `json:"registered"`
}

// taughtCourseRecord is a taught course as clients send it and as the stored teacher
// record reads back. The profile view renames id to courseId.
type taughtCourseRecord struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	GroupNumber   string `json:"groupNumber"`
	MaterialsLink string `json:"materialsLink"`
}

type individualLessonRecord struct {
	ID            string `json:"_id,omitempty"`
	StudentID     string `json:"studentId"`
	Lesson        string `json:"lesson"`
	CourseName    string `json:"courseName"`
	MeetLink      string `json:"meetLink"`
	MaterialsLink string `json:"materialsLink"`
}

type teacherView struct {
	ID                string                   `json:"_id"`
	Name              string                   `json:"name"`
	Email             string                   `json:"email"`
	TeachesCourses    []taughtCourseRecord     `json:"teachesCourses"`
	IndividualLessons []individualLessonRecord `json:"individualLessons"`
}

type studentAuthResponse struct {
	Message      string      `json:"message"`
	Token        string      `json:"token"`
	RefreshToken string      `json:"refreshToken"`
	User         studentView `json:"user"`
}

type teacherAuthResponse struct {
	Message      string      `json:"message"`
	Token        string      `json:"token"`
	RefreshToken string      `json:"refreshToken"`
	Teacher      teacherView `json:"teacher"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type studentProfileResponse struct {
	Name       string                    `json:"name"`
	Email      string                    `json:"email"`
	Registered time.Time                 `json:"registered"`
	Language   string                    `json:"language"`
	Courses    []entity.EnrolledCourse   `json:"courses"`
	Schedule   []entity.ScheduledSession `json:"schedule"`
	Reviews    []string                  `json:"reviews"`
}

type studentSummaryResponse struct {
	Name     string                    `json:"name"`
	Courses  []entity.EnrolledCourse   `json:"courses"`
	Schedule []entity.ScheduledSession `json:"schedule"`
}

type teacherProfileResponse struct {
	ID                string                    `json:"_id"`
	Name              string                    `json:"name"`
	Email             string                    `json:"email"`
	TeachesCourses    []entity.TaughtCourse     `json:"teachesCourses"`
	IndividualLessons []entity.IndividualLesson `json:"individualLessons"`
	Tracker           string                    `json:"tracker"`
}

type trackerEntryView struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	Activity string    `json:"activity"`
	Details  string    `json:"details"`
}

type trackerCreatedResponse struct {
	Message      string           `json:"message"`
	TrackerEntry trackerEntryView `json:"trackerEntry"`
}

type courseView struct {
	ID            string                `json:"_id"`
	Category      string                `json:"category"`
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	Details       []string              `json:"details"`
	Schedule      entity.CourseSchedule `json:"schedule"`
	Prices        entity.CoursePrices   `json:"prices"`
	MeetLink      string                `json:"meetLink,omitempty"`
	MaterialsLink string                `json:"materialsLink"`
}

type reviewView struct {
	ID       string `json:"_id"`
	Text     string `json:"text"`
	Author   string `json:"author"`
	AuthorID string `json:"authorId,omitempty"`
}

type homeResponse struct {
	Courses []courseView `json:"courses"`
	Reviews []reviewView `json:"reviews"`
}

type blogPostView struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	PublishedAt time.Time `json:"publishedAt"`
}

type articleView struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Image     string    `json:"image"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func newStudentAuthResponse(message string, out *usecase.StudentAuthOutput) studentAuthResponse {
	return studentAuthResponse{
		Message:      message,
		Token:        out.Tokens.AccessToken,
		RefreshToken: out.Tokens.RefreshToken,
		User: studentView{
			Name:       out.Student.Name,
			Email:      out.Student.Email,
			Registered: out.Student.RegisteredAt,
		},
	}
}

func newTeacherAuthResponse(message string, out *usecase.TeacherAuthOutput) teacherAuthResponse {
	return teacherAuthResponse{
		Message:      message,
		Token:        out.Tokens.AccessToken,
		RefreshToken: out.Tokens.RefreshToken,
		Teacher:      newTeacherView(out.Teacher),
	}
}

func newTeacherView(t *entity.Teacher) teacherView {
	courses := make([]taughtCourseRecord, 0, len(t.TeachesCourses))
	for _, c := range t.TeachesCourses {
		courses = append(courses, taughtCourseRecord(c))
	}
	lessons := make([]individualLessonRecord, 0, len(t.IndividualLessons))
	for _, l := range t.IndividualLessons {
		lessons = append(lessons, individualLessonRecord(l))
	}

	return teacherView{
		ID:                t.ID,
		Name:              t.Name,
		Email:             t.Email,
		TeachesCourses:    courses,
		IndividualLessons: lessons,
	}
}

func newTrackerEntryView(e *entity.ActivityEntry) trackerEntryView {
	return trackerEntryView{
		ID:       e.ID,
		Date:     e.Date,
		Activity: e.Activity,
		Details:  e.Details,
	}
}

func newCourseView(c *entity.Course) courseView {
	details := c.Details
	if details == nil {
		details = []string{}
	}

	return courseView{
		ID:            c.ID,
		Category:      c.Category,
		Name:          c.Name,
		Description:   c.Description,
		Details:       details,
		Schedule:      c.Schedule,
		Prices:        c.Prices,
		MeetLink:      c.MeetLink,
		MaterialsLink: c.MaterialsLink,
	}
}

func newReviewView(r *entity.Review) reviewView {
	return reviewView{
		ID:       r.ID,
		Text:     r.Text,
		Author:   r.Author,
		AuthorID: r.AuthorID,
	}
}

func newBlogPostView(p *entity.BlogPost) blogPostView {
	return blogPostView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Content:     p.Content,
		PublishedAt: p.PublishedAt,
	}
}

func newArticleView(a *entity.Article) articleView {
	return articleView{
		ID:        a.ID,
		Title:     a.Title,
		Image:     a.Image,
		Content:   a.Content,
		CreatedAt: a.CreatedAt,
	}
}

// mapSlice converts a slice of entities into views, never returning nil.
func mapSlice[E any, V any](items []E, convert func(E) V) []V {
	views := make([]V, 0, len(items))
	for _, item := range items {
		views = append(views, convert(item))
	}

	return views
}
