package postgres

import (
	"context"

	"academy/internal/domain/entity"
	domainerrors "academy/internal/domain/errors"
	"academy/internal/domain/repository"
	"academy/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type studentRepository struct {
	db *gorm.DB
}

func (repo *studentRepository) Create(ctx context.Context, student *entity.Student) error {
	studentM := fromStudentDomain(student)
	studentM.ID = uuid.New()

	if err := repo.db.WithContext(ctx).Create(studentM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return errors.WithStack(repository.ErrDuplicateEmail)
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create student")
	}
	student.ID = studentM.ID.String()

	return nil
}

func (repo *studentRepository) FindByID(ctx context.Context, id string) (*entity.Student, error) {
	parsed, ok := parseID(id)
	if !ok {
		return nil, errors.WithStack(repository.ErrAccountNotFound)
	}

	return repo.first(ctx, "id = ?", parsed)
}

func (repo *studentRepository) FindByEmail(ctx context.Context, email string) (*entity.Student, error) {
	return repo.first(ctx, "email = ?", email)
}

func (repo *studentRepository) first(ctx context.Context, query string, arg any) (*entity.Student, error) {
	var studentM model.StudentModel
	if err := repo.db.WithContext(ctx).Where(query, arg).First(&studentM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(repository.ErrAccountNotFound)
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find student")
	}

	return toStudentDomain(&studentM), nil
}

type teacherRepository struct {
	db *gorm.DB
}

func (repo *teacherRepository) Create(ctx context.Context, teacher *entity.Teacher) error {
	teacherM := fromTeacherDomain(teacher)
	teacherM.ID = uuid.New()

	if err := repo.db.WithContext(ctx).Create(teacherM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return errors.WithStack(repository.ErrDuplicateEmail)
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create teacher")
	}

	created := toTeacherDomain(teacherM)
	teacher.ID = created.ID
	teacher.CreatedAt = created.CreatedAt
	teacher.IndividualLessons = created.IndividualLessons

	return nil
}

func (repo *teacherRepository) FindByID(ctx context.Context, id string) (*entity.Teacher, error) {
	parsed, ok := parseID(id)
	if !ok {
		return nil, errors.WithStack(repository.ErrAccountNotFound)
	}

	return repo.first(ctx, "id = ?", parsed)
}

func (repo *teacherRepository) FindByEmail(ctx context.Context, email string) (*entity.Teacher, error) {
	return repo.first(ctx, "email = ?", email)
}

func (repo *teacherRepository) first(ctx context.Context, query string, arg any) (*entity.Teacher, error) {
	var teacherM model.TeacherModel
	if err := repo.db.WithContext(ctx).Where(query, arg).First(&teacherM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(repository.ErrAccountNotFound)
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find teacher")
	}

	return toTeacherDomain(&teacherM), nil
}

func fromStudentDomain(s *entity.Student) *model.StudentModel {
	studentM := &model.StudentModel{
		Name:         s.Name,
		Email:        s.Email,
		PasswordHash: s.PasswordHash,
		Language:     s.Language,
		RegisteredAt: s.RegisteredAt,
		Courses:      make([]model.EnrolledCourseJSON, 0, len(s.Courses)),
		Schedule:     make([]model.ScheduledSessionJSON, 0, len(s.Schedule)),
	}
	for _, c := range s.Courses {
		studentM.Courses = append(studentM.Courses, model.EnrolledCourseJSON(c))
	}
	for _, session := range s.Schedule {
		studentM.Schedule = append(studentM.Schedule, model.ScheduledSessionJSON(session))
	}

	return studentM
}

func toStudentDomain(m *model.StudentModel) *entity.Student {
	s := &entity.Student{
		ID:           m.ID.String(),
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Language:     m.Language,
		RegisteredAt: m.RegisteredAt,
		Courses:      make([]entity.EnrolledCourse, 0, len(m.Courses)),
		Schedule:     make([]entity.ScheduledSession, 0, len(m.Schedule)),
	}
	for _, c := range m.Courses {
		s.Courses = append(s.Courses, entity.EnrolledCourse(c))
	}
	for _, session := range m.Schedule {
		s.Schedule = append(s.Schedule, entity.ScheduledSession(session))
	}

	return s
}

func fromTeacherDomain(t *entity.Teacher) *model.TeacherModel {
	teacherM := &model.TeacherModel{
		Name:              t.Name,
		Email:             t.Email,
		PasswordHash:      t.PasswordHash,
		Tracker:           t.Tracker,
		TeachesCourses:    make([]model.TaughtCourseJSON, 0, len(t.TeachesCourses)),
		IndividualLessons: make([]model.IndividualLessonJSON, 0, len(t.IndividualLessons)),
	}
	for _, c := range t.TeachesCourses {
		teacherM.TeachesCourses = append(teacherM.TeachesCourses, model.TaughtCourseJSON(c))
	}
	for _, l := range t.IndividualLessons {
		lesson := model.IndividualLessonJSON(l)
		if lesson.ID == "" {
			lesson.ID = uuid.NewString()
		}
		teacherM.IndividualLessons = append(teacherM.IndividualLessons, lesson)
	}

	return teacherM
}

func toTeacherDomain(m *model.TeacherModel) *entity.Teacher {
	t := &entity.Teacher{
		ID:                m.ID.String(),
		Name:              m.Name,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		Tracker:           m.Tracker,
		CreatedAt:         m.CreatedAt,
		TeachesCourses:    make([]entity.TaughtCourse, 0, len(m.TeachesCourses)),
		IndividualLessons: make([]entity.IndividualLesson, 0, len(m.IndividualLessons)),
	}
	for _, c := range m.TeachesCourses {
		t.TeachesCourses = append(t.TeachesCourses, entity.TaughtCourse(c))
	}
	for _, l := range m.IndividualLessons {
		t.IndividualLessons = append(t.IndividualLessons, entity.IndividualLesson(l))
	}

	return t
}
