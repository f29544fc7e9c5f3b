package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"academy/config"
	deliverycontext "academy/internal/delivery/context"
	"academy/internal/domain/entity"
	domainerrors "academy/internal/domain/errors"
	"academy/internal/domain/repository"
	"academy/internal/domain/service"
	"academy/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	students    repository.StudentRepository
	teachers    repository.TeacherRepository
	courses     repository.CourseRepository
	reviews     repository.ReviewRepository
	hasher      service.PasswordHasher
	sanitizer   service.Sanitizer
	issuer      *sessionIssuer
	refreshTTL  time.Duration
	extendedTTL time.Duration
	logger      *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	Students      repository.StudentRepository
	Teachers      repository.TeacherRepository
	Courses       repository.CourseRepository
	Reviews       repository.ReviewRepository
	RefreshTokens repository.RefreshTokenRepository
	Hasher        service.PasswordHasher
	TokenService  service.TokenService
	Sanitizer     service.Sanitizer
	Config        *config.Config
	Logger        *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	refreshTTL := params.TokenService.RefreshTokenTTL()
	extendedTTL := refreshTTL
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.ExtendedRefreshTokenTTL > 0 {
		extendedTTL = params.Config.Auth.ExtendedRefreshTokenTTL
	}

	return &accountService{
		students:    params.Students,
		teachers:    params.Teachers,
		courses:     params.Courses,
		reviews:     params.Reviews,
		hasher:      params.Hasher,
		sanitizer:   params.Sanitizer,
		issuer:      newSessionIssuer(params.TokenService, params.RefreshTokens),
		refreshTTL:  refreshTTL,
		extendedTTL: extendedTTL,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// credentials sanitizes the name and email and checks that nothing required is blank.
func (srv *accountService) credentials(name, email, password string) (string, string, error) {
	name = srv.sanitizer.Text(name)
	email = srv.sanitizer.Text(email)
	if name == "" || email == "" || strings.TrimSpace(password) == "" {
		return "", "", domainerrors.ErrValidationFailed.WithDetails("name, email and password are required")
	}

	return name, email, nil
}

func (srv *accountService) hashPassword(ctx context.Context, password string) (string, error) {
	hashed, err := srv.hasher.Hash(password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return "", errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	return hashed, nil
}

// RegisterStudent creates a student account and logs it in.
func (srv *accountService) RegisterStudent(ctx context.Context, input *usecase.RegisterStudentInput) (*usecase.StudentAuthOutput, error) {
	name, email, err := srv.credentials(input.Name, input.Email, input.Password)
	if err != nil {
		return nil, err
	}
	srv.log(ctx).Info("Starting registration", slog.String("kind", entity.AccountKindStudent.String()), slog.String("email", email))

	hashed, err := srv.hashPassword(ctx, input.Password)
	if err != nil {
		return nil, err
	}

	student := &entity.Student{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		RegisteredAt: time.Now(),
		Language:     entity.DefaultLanguage,
		Courses:      []entity.EnrolledCourse{},
		Schedule:     []entity.ScheduledSession{},
	}
	if err := srv.students.Create(ctx, student); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			srv.log(ctx).Warn("Registration rejected, email taken", slog.String("email", email))

			return nil, domainerrors.ErrAccountAlreadyExists.WithDetails("a student with this email already exists")
		}

		return nil, errors.Wrap(err, "failed to create student during registration")
	}

	tokens, err := srv.issuer.issue(ctx, student.Identity(), srv.refreshTTL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue tokens during registration")
	}
	srv.log(ctx).Debug("Registration completed", slog.String("studentID", student.ID))

	return &usecase.StudentAuthOutput{Tokens: *tokens, Student: student}, nil
}

// RegisterTeacher creates a teacher account and logs it in.
func (srv *accountService) RegisterTeacher(ctx context.Context, input *usecase.RegisterTeacherInput) (*usecase.TeacherAuthOutput, error) {
	name, email, err := srv.credentials(input.Name, input.Email, input.Password)
	if err != nil {
		return nil, err
	}
	srv.log(ctx).Info("Starting registration", slog.String("kind", entity.AccountKindTeacher.String()), slog.String("email", email))

	hashed, err := srv.hashPassword(ctx, input.Password)
	if err != nil {
		return nil, err
	}

	teacher := &entity.Teacher{
		Name:              name,
		Email:             email,
		PasswordHash:      hashed,
		TeachesCourses:    input.TeachesCourses,
		IndividualLessons: make([]entity.IndividualLesson, 0, len(input.IndividualLessons)),
	}
	if teacher.TeachesCourses == nil {
		teacher.TeachesCourses = []entity.TaughtCourse{}
	}
	for _, lesson := range input.IndividualLessons {
		// Lesson ids are always assigned by the store.
		lesson.ID = ""
		teacher.IndividualLessons = append(teacher.IndividualLessons, lesson)
	}

	if err := srv.teachers.Create(ctx, teacher); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			srv.log(ctx).Warn("Registration rejected, email taken", slog.String("email", email))

			return nil, domainerrors.ErrAccountAlreadyExists.WithDetails("a teacher with this email already exists")
		}

		return nil, errors.Wrap(err, "failed to create teacher during registration")
	}

	tokens, err := srv.issuer.issue(ctx, teacher.Identity(), srv.refreshTTL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue tokens during registration")
	}
	srv.log(ctx).Debug("Registration completed", slog.String("teacherID", teacher.ID))

	return &usecase.TeacherAuthOutput{Tokens: *tokens, Teacher: teacher}, nil
}

// CreateTeacher lets an existing teacher add a colleague.
func (srv *accountService) CreateTeacher(ctx context.Context, caller entity.Identity, input *usecase.RegisterTeacherInput) (*usecase.TeacherAuthOutput, error) {
	if !caller.IsTeacher() {
		return nil, domainerrors.ErrForbidden.WithDetails("only teachers can add teachers")
	}

	return srv.RegisterTeacher(ctx, input)
}

// Login authenticates a student. Unknown email and wrong password fail identically.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.StudentAuthOutput, error) {
	email := srv.sanitizer.Text(input.Email)
	if email == "" || input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("email and password are required")
	}
	srv.log(ctx).Debug("Starting login", slog.String("kind", entity.AccountKindStudent.String()), slog.String("email", email))

	student, err := srv.students.FindByEmail(ctx, email)
	if err != nil {
		return nil, srv.loginFailure(ctx, email, err)
	}
	if !srv.hasher.Check(input.Password, student.PasswordHash) {
		return nil, srv.loginFailure(ctx, email, domainerrors.ErrInvalidCredentials)
	}

	tokens, err := srv.issuer.issue(ctx, student.Identity(), srv.refreshTTL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue tokens during login")
	}
	srv.log(ctx).Debug("Student logged in successfully", slog.String("studentID", student.ID))

	return &usecase.StudentAuthOutput{Tokens: *tokens, Student: student}, nil
}

// TeacherLogin authenticates a teacher with the regular refresh token lifetime.
func (srv *accountService) TeacherLogin(ctx context.Context, input *usecase.LoginInput) (*usecase.TeacherAuthOutput, error) {
	return srv.teacherLogin(ctx, input, srv.refreshTTL)
}

// TeacherLoginExtended authenticates a teacher with the extended refresh token lifetime.
func (srv *accountService) TeacherLoginExtended(ctx context.Context, input *usecase.LoginInput) (*usecase.TeacherAuthOutput, error) {
	return srv.teacherLogin(ctx, input, srv.extendedTTL)
}

func (srv *accountService) teacherLogin(ctx context.Context, input *usecase.LoginInput, refreshTTL time.Duration) (*usecase.TeacherAuthOutput, error) {
	email := srv.sanitizer.Text(input.Email)
	if email == "" || input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("email and password are required")
	}
	srv.log(ctx).Debug("Starting login", slog.String("kind", entity.AccountKindTeacher.String()), slog.String("email", email))

	teacher, err := srv.teachers.FindByEmail(ctx, email)
	if err != nil {
		return nil, srv.loginFailure(ctx, email, err)
	}
	if !srv.hasher.Check(input.Password, teacher.PasswordHash) {
		return nil, srv.loginFailure(ctx, email, domainerrors.ErrInvalidCredentials)
	}

	tokens, err := srv.issuer.issue(ctx, teacher.Identity(), refreshTTL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue tokens during login")
	}
	srv.log(ctx).Debug("Teacher logged in successfully", slog.String("teacherID", teacher.ID), slog.Duration("refreshTTL", refreshTTL))

	return &usecase.TeacherAuthOutput{Tokens: *tokens, Teacher: teacher}, nil
}

// loginFailure maps a lookup or password miss to the shared credentials error; store errors pass through.
func (srv *accountService) loginFailure(ctx context.Context, email string, err error) error {
	if errors.Is(err, repository.ErrAccountNotFound) || errors.Is(err, domainerrors.ErrInvalidCredentials) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email))

		return errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	return errors.Wrap(err, "failed to load account for login")
}

// GetProfile returns the calling student's own profile with the texts of their reviews.
func (srv *accountService) GetProfile(ctx context.Context, caller entity.Identity) (*usecase.StudentProfile, error) {
	if !caller.IsStudent() {
		return nil, domainerrors.ErrForbidden.WithDetails("profile is only available to students")
	}

	student, err := srv.students.FindByID(ctx, caller.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "student from token no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load student profile")
	}

	reviews, err := srv.reviews.ListByAuthor(ctx, student.ID, student.Name)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load student reviews")
	}
	texts := make([]string, 0, len(reviews))
	for _, r := range reviews {
		texts = append(texts, r.Text)
	}

	return &usecase.StudentProfile{
		Name:       student.Name,
		Email:      student.Email,
		Registered: student.RegisteredAt,
		Language:   student.Language,
		Courses:    nonNilCourses(student.Courses),
		Schedule:   nonNilSchedule(student.Schedule),
		Reviews:    texts,
	}, nil
}

// GetProfileByStudentID returns the reduced student view. Teachers may look up anyone;
// students only themselves.
func (srv *accountService) GetProfileByStudentID(ctx context.Context, caller entity.Identity, studentID string) (*usecase.StudentSummary, error) {
	if !caller.IsTeacher() && caller.AccountID != studentID {
		return nil, domainerrors.ErrForbidden.WithDetails("students can only view their own profile")
	}

	student, err := srv.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "student not found")
		}

		return nil, errors.Wrap(err, "failed to load student")
	}

	name := student.Name
	if name == "" {
		name = fallbackUnknown
	}

	return &usecase.StudentSummary{
		Name:     name,
		Courses:  nonNilCourses(student.Courses),
		Schedule: nonNilSchedule(student.Schedule),
	}, nil
}

// GetTeacherProfile returns the caller's teacher dashboard. Missing course materials
// links are filled from the catalog.
func (srv *accountService) GetTeacherProfile(ctx context.Context, caller entity.Identity) (*usecase.TeacherProfile, error) {
	if !caller.IsTeacher() {
		return nil, domainerrors.ErrForbidden.WithDetails("teacher profile requires a teacher token")
	}

	teacher, err := srv.teachers.FindByID(ctx, caller.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrTeacherNotFound, "teacher from token no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load teacher profile")
	}

	catalogLinks, err := srv.catalogLinks(ctx, teacher.TeachesCourses)
	if err != nil {
		return nil, err
	}

	profile := &usecase.TeacherProfile{
		ID:                teacher.ID,
		Name:              teacher.Name,
		Email:             teacher.Email,
		TeachesCourses:    make([]entity.TaughtCourse, 0, len(teacher.TeachesCourses)),
		IndividualLessons: make([]entity.IndividualLesson, 0, len(teacher.IndividualLessons)),
		Tracker:           orDefault(teacher.Tracker, fallbackLink),
	}

	for _, c := range teacher.TeachesCourses {
		link := c.MaterialsLink
		if link == "" {
			link = orDefault(catalogLinks[c.Name], fallbackLink)
		}
		profile.TeachesCourses = append(profile.TeachesCourses, entity.TaughtCourse{
			ID:            orDefault(c.ID, fallbackUnknown),
			Name:          orDefault(c.Name, fallbackUnknown),
			GroupNumber:   orDefault(c.GroupNumber, fallbackUnknown),
			MaterialsLink: link,
		})
	}

	for _, l := range teacher.IndividualLessons {
		profile.IndividualLessons = append(profile.IndividualLessons, entity.IndividualLesson{
			ID:            orDefault(l.ID, fallbackUnknown),
			StudentID:     orDefault(l.StudentID, fallbackUnknown),
			Lesson:        orDefault(l.Lesson, fallbackUnknown),
			CourseName:    orDefault(l.CourseName, fallbackUnknown),
			MeetLink:      orDefault(l.MeetLink, fallbackLink),
			MaterialsLink: orDefault(l.MaterialsLink, fallbackLink),
		})
	}

	return profile, nil
}

func (srv *accountService) catalogLinks(ctx context.Context, taught []entity.TaughtCourse) (map[string]string, error) {
	names := make([]string, 0, len(taught))
	for _, c := range taught {
		if c.Name != "" {
			names = append(names, c.Name)
		}
	}
	if len(names) == 0 {
		return map[string]string{}, nil
	}

	courses, err := srv.courses.FindByNames(ctx, names)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load catalog courses")
	}

	links := make(map[string]string, len(courses))
	for _, c := range courses {
		links[c.Name] = c.MaterialsLink
	}

	return links, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}

func nonNilCourses(courses []entity.EnrolledCourse) []entity.EnrolledCourse {
	if courses == nil {
		return []entity.EnrolledCourse{}
	}

	return courses
}

func nonNilSchedule(schedule []entity.ScheduledSession) []entity.ScheduledSession {
	if schedule == nil {
		return []entity.ScheduledSession{}
	}

	return schedule
}
