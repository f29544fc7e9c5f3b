package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"academy/config"
	apimiddleware "academy/internal/delivery/api/middleware"
	"academy/internal/delivery/api/router"
	"academy/internal/delivery/api/router/handler"
	"academy/internal/domain/entity"
	"academy/internal/infra/auth"
	"academy/internal/infra/metrics"
	"academy/internal/infra/persistence/memory"
	"academy/internal/infra/pubsub"
	"academy/internal/infra/revocation"
	"academy/internal/infra/sanitize"
	"academy/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"golang.org/x/crypto/bcrypt"
)

type switchableAvailability struct {
	down atomic.Bool
}

func (a *switchableAvailability) IsAvailable() bool {
	return !a.down.Load()
}

type testAPI struct {
	echo         *echo.Echo
	store        *memory.Store
	availability *switchableAvailability
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details any    `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

type teacherAuthBody struct {
	Message      string `json:"message"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	Teacher      struct {
		ID    string `json:"_id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"teacher"`
}

type studentAuthBody struct {
	Message      string `json:"message"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	User         struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

type trackerEntryBody struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	Activity string    `json:"activity"`
	Details  string    `json:"details"`
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	cfg := &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:              bcrypt.MinCost,
			AccessTokenTTL:          time.Hour,
			RefreshTokenTTL:         7 * 24 * time.Hour,
			ExtendedRefreshTokenTTL: 90 * 24 * time.Hour,
		},
		Metrics: &config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	cfg.HTTP.MaxRequestBodySize = "100KB"
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repos, store := memory.NewSet()

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	hasher := auth.NewBcryptHasherWithCost(bcrypt.MinCost)
	sanitizer := sanitize.NewSanitizer()
	publisher, err := pubsub.NewEventPublisher(pubsub.PublisherParams{
		Lc:     fxtest.NewLifecycle(t),
		Ctx:    context.Background(),
		Config: cfg,
		Logger: logger,
	})
	require.NoError(t, err)

	accounts := impl.NewAccountService(impl.AccountServiceParams{
		Students:      repos.Students,
		Teachers:      repos.Teachers,
		Courses:       repos.Courses,
		Reviews:       repos.Reviews,
		RefreshTokens: repos.RefreshTokens,
		Hasher:        hasher,
		TokenService:  tokens,
		Sanitizer:     sanitizer,
		Config:        cfg,
		Logger:        logger,
	})
	sessions := impl.NewSessionService(impl.SessionServiceParams{
		Students:      repos.Students,
		Teachers:      repos.Teachers,
		RefreshTokens: repos.RefreshTokens,
		TokenService:  tokens,
		Revoker:       revocation.NewMemoryRevoker(),
		Logger:        logger,
	})
	activities := impl.NewActivityService(impl.ActivityServiceParams{
		Teachers:   repos.Teachers,
		Activities: repos.Activities,
		Sanitizer:  sanitizer,
		Logger:     logger,
	})
	content := impl.NewContentService(impl.ContentServiceParams{
		Students:  repos.Students,
		Courses:   repos.Courses,
		Reviews:   repos.Reviews,
		BlogPosts: repos.BlogPosts,
		Articles:  repos.Articles,
		Sanitizer: sanitizer,
		Logger:    logger,
	})
	leads := impl.NewLeadService(impl.LeadServiceParams{
		Leads:     repos.Leads,
		Sanitizer: sanitizer,
		Publisher: publisher,
		Logger:    logger,
	})

	availability := &switchableAvailability{}

	routerParams := router.RouterParams{
		AuthHandler: handler.NewAuthHandler(handler.AuthHandlerParams{
			Accounts: accounts,
			Sessions: sessions,
			Logger:   logger,
		}),
		ProfileHandler: handler.NewProfileHandler(handler.ProfileHandlerParams{Accounts: accounts, Logger: logger}),
		TrackerHandler: handler.NewTrackerHandler(handler.TrackerHandlerParams{Activities: activities, Logger: logger}),
		ContentHandler: handler.NewContentHandler(handler.ContentHandlerParams{Content: content, Logger: logger}),
		LeadHandler:    handler.NewLeadHandler(handler.LeadHandlerParams{Leads: leads, Logger: logger}),
		HealthHandler:  handler.NewHealthHandler(handler.HealthHandlerParams{Availability: availability}),
		AuthMiddleware: apimiddleware.NewAuthMiddleware(sessions, logger),
	}

	return &testAPI{
		echo:         NewEcho(cfg, logger, metrics.New(), availability, routerParams),
		store:        store,
		availability: availability,
	}
}

func (a *testAPI) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())

	return out
}

func (a *testAPI) registerTeacher(t *testing.T, name, email, password string) teacherAuthBody {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/api/teacher-register", map[string]any{
		"name": name, "email": email, "password": password,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	return decode[teacherAuthBody](t, rec)
}

func (a *testAPI) registerStudent(t *testing.T, name, email, password string) studentAuthBody {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/api/register", map[string]any{
		"name": name, "email": email, "password": password,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	return decode[studentAuthBody](t, rec)
}

func TestAPI_TeacherTrackerFlow(t *testing.T) {
	api := newTestAPI(t)

	registered := api.registerTeacher(t, "Olena", "olena@example.com", "secret-pass")
	assert.NotEmpty(t, registered.Teacher.ID)

	loginAt := time.Now()
	rec := api.do(t, http.MethodPost, "/api/teacher-login", map[string]string{
		"email": "olena@example.com", "password": "secret-pass",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	login := decode[teacherAuthBody](t, rec)
	require.NotEmpty(t, login.Token)

	rec = api.do(t, http.MethodPost, "/api/teacher-tracker", map[string]string{
		"activity": "call", "details": "intro session",
	}, login.Token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[struct {
		Message      string           `json:"message"`
		TrackerEntry trackerEntryBody `json:"trackerEntry"`
	}](t, rec)
	assert.NotEmpty(t, created.Message)

	rec = api.do(t, http.MethodGet, "/api/teacher-tracker", nil, login.Token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	entries := decode[[]trackerEntryBody](t, rec)

	require.Len(t, entries, 1)
	assert.Equal(t, created.TrackerEntry.ID, entries[0].ID)
	assert.Equal(t, "call", entries[0].Activity)
	assert.Equal(t, "intro session", entries[0].Details)
	assert.False(t, entries[0].Date.Before(loginAt.Truncate(time.Millisecond)))
}

func TestAPI_TrackerRejectsBlankDetails(t *testing.T) {
	api := newTestAPI(t)
	teacher := api.registerTeacher(t, "Olena", "olena@example.com", "secret-pass")

	rec := api.do(t, http.MethodPost, "/api/teacher-tracker", map[string]string{
		"activity": "call", "details": "<b> </b>",
	}, teacher.Token)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", decode[errorBody](t, rec).Error.Code)
	assert.Empty(t, api.store.Activities())
}

func TestAPI_TrackerRequiresTeacher(t *testing.T) {
	api := newTestAPI(t)
	student := api.registerStudent(t, "Ivan", "ivan@example.com", "secret-pass")

	rec := api.do(t, http.MethodGet, "/api/teacher-tracker", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "MISSING_TOKEN", decode[errorBody](t, rec).Error.Code)

	rec = api.do(t, http.MethodGet, "/api/teacher-tracker", nil, "not-a-jwt")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "INVALID_TOKEN", decode[errorBody](t, rec).Error.Code)

	rec = api.do(t, http.MethodGet, "/api/teacher-tracker", nil, student.Token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decode[errorBody](t, rec)
	assert.Equal(t, "FORBIDDEN", body.Error.Code)
	assert.Nil(t, body.Error.Details)
}

func TestAPI_LoginFailuresAreIndistinguishable(t *testing.T) {
	api := newTestAPI(t)
	api.registerStudent(t, "Ivan", "ivan@example.com", "secret-pass")

	unknown := api.do(t, http.MethodPost, "/api/login", map[string]string{
		"email": "nobody@example.com", "password": "secret-pass",
	}, "")
	wrong := api.do(t, http.MethodPost, "/api/login", map[string]string{
		"email": "ivan@example.com", "password": "not-it",
	}, "")

	require.Equal(t, http.StatusUnauthorized, unknown.Code)
	require.Equal(t, http.StatusUnauthorized, wrong.Code)

	unknownBody := decode[errorBody](t, unknown)
	wrongBody := decode[errorBody](t, wrong)
	assert.Equal(t, unknownBody.Error, wrongBody.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", wrongBody.Error.Code)
}

func TestAPI_RegisterDuplicateEmail(t *testing.T) {
	api := newTestAPI(t)
	api.registerStudent(t, "Ivan", "ivan@example.com", "secret-pass")

	rec := api.do(t, http.MethodPost, "/api/register", map[string]string{
		"name": "Other", "email": "ivan@example.com", "password": "secret-pass",
	}, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "ACCOUNT_ALREADY_EXISTS", decode[errorBody](t, rec).Error.Code)

	// The teacher namespace is separate.
	api.registerTeacher(t, "Ivan", "ivan@example.com", "secret-pass")
}

func TestAPI_TeacherCoursesRoundTrip(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/teacher-register", map[string]any{
		"name": "Olena", "email": "olena@example.com", "password": "secret-pass",
		"teachesCourses": []map[string]string{
			{"id": "c-42", "name": "English B1", "groupNumber": "7", "materialsLink": "https://materials/b1"},
		},
		"individualLessons": []map[string]string{
			{"studentId": "s-1", "lesson": "Speaking", "courseName": "English B1"},
		},
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	type course struct {
		ID            string `json:"id"`
		CourseID      string `json:"courseId"`
		Name          string `json:"name"`
		GroupNumber   string `json:"groupNumber"`
		MaterialsLink string `json:"materialsLink"`
	}
	registered := decode[struct {
		Token   string `json:"token"`
		Teacher struct {
			TeachesCourses    []course `json:"teachesCourses"`
			IndividualLessons []struct {
				StudentID string `json:"studentId"`
				Lesson    string `json:"lesson"`
			} `json:"individualLessons"`
		} `json:"teacher"`
	}](t, rec)
	require.Len(t, registered.Teacher.TeachesCourses, 1)
	assert.Equal(t, "c-42", registered.Teacher.TeachesCourses[0].ID)
	assert.Equal(t, "7", registered.Teacher.TeachesCourses[0].GroupNumber)
	require.Len(t, registered.Teacher.IndividualLessons, 1)
	assert.Equal(t, "s-1", registered.Teacher.IndividualLessons[0].StudentID)

	rec = api.do(t, http.MethodGet, "/api/teacher-profile", nil, registered.Token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	profile := decode[struct {
		TeachesCourses []course `json:"teachesCourses"`
	}](t, rec)
	require.Len(t, profile.TeachesCourses, 1)
	assert.Equal(t, "c-42", profile.TeachesCourses[0].CourseID)
	assert.Empty(t, profile.TeachesCourses[0].ID)
	assert.Equal(t, "English B1", profile.TeachesCourses[0].Name)
	assert.Equal(t, "https://materials/b1", profile.TeachesCourses[0].MaterialsLink)
}

func TestAPI_RegisterValidation(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/register", map[string]string{"name": "Ivan"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[errorBody](t, rec)
	assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
	assert.Contains(t, body.Error.Details, "email is required")

	rec = api.do(t, http.MethodPost, "/api/register", "{not json", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", decode[errorBody](t, rec).Error.Code)
}

func TestAPI_RefreshAndLogout(t *testing.T) {
	api := newTestAPI(t)
	student := api.registerStudent(t, "Ivan", "ivan@example.com", "secret-pass")

	rec := api.do(t, http.MethodPost, "/api/refresh-token", map[string]string{"refreshToken": student.RefreshToken}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	refreshed := decode[struct {
		Token string `json:"token"`
	}](t, rec)
	require.NotEmpty(t, refreshed.Token)

	rec = api.do(t, http.MethodGet, "/api/profile", nil, refreshed.Token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	profile := decode[map[string]any](t, rec)
	assert.Equal(t, "ivan@example.com", profile["email"])
	assert.Equal(t, entity.DefaultLanguage, profile["language"])

	rec = api.do(t, http.MethodPost, "/api/refresh-token", map[string]string{}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/logout", nil, refreshed.Token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(t, http.MethodGet, "/api/profile", nil, refreshed.Token)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/refresh-token", map[string]string{"refreshToken": student.RefreshToken}, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "REFRESH_TOKEN_NOT_FOUND", decode[errorBody](t, rec).Error.Code)
}

func TestAPI_PublicContent(t *testing.T) {
	api := newTestAPI(t)
	post := &entity.BlogPost{Title: "Hello", Description: "d", Content: "c", PublishedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	api.store.SeedBlogPosts(post)
	api.store.SeedCourses(&entity.Course{Name: "English B1"})

	rec := api.do(t, http.MethodGet, "/api/blog/"+post.ID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[map[string]any](t, rec)
	assert.Equal(t, post.ID, got["_id"])
	assert.Equal(t, "Hello", got["title"])

	rec = api.do(t, http.MethodGet, "/api/blog/missing", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "BLOG_POST_NOT_FOUND", decode[errorBody](t, rec).Error.Code)

	rec = api.do(t, http.MethodGet, "/api/home", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	home := decode[struct {
		Courses []map[string]any `json:"courses"`
		Reviews []map[string]any `json:"reviews"`
	}](t, rec)
	require.Len(t, home.Courses, 1)
	assert.Equal(t, "#", home.Courses[0]["materialsLink"])
	assert.NotNil(t, home.Reviews)

	rec = api.do(t, http.MethodGet, "/api/articles", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestAPI_Leads(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/purchase", map[string]string{
		"name": "Ivan", "contact": "@ivan", "format": "group", "course": "English B1", "date": "2024-09-01",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotEmpty(t, decode[map[string]string](t, rec)["message"])

	rec = api.do(t, http.MethodPost, "/api/purchase", map[string]string{
		"name": "Ivan", "contact": "@ivan", "format": "group", "course": "English B1",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", decode[errorBody](t, rec).Error.Code)

	rec = api.do(t, http.MethodPost, "/api/purchase", map[string]string{"name": "Ivan"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/signup", map[string]string{
		"name": "Ivan", "contact": "@ivan", "course": "Polish A1",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	assert.Len(t, api.store.Leads(), 2)
}

func TestAPI_StoreUnavailable(t *testing.T) {
	api := newTestAPI(t)
	api.availability.down.Store(true)

	rec := api.do(t, http.MethodPost, "/api/login", map[string]string{"email": "a@b.c", "password": "x"}, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decode[errorBody](t, rec)
	assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	assert.Equal(t, "Service temporarily unavailable", body.Error.Message)

	rec = api.do(t, http.MethodGet, "/healthz", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","store":"down"}`, rec.Body.String())

	api.availability.down.Store(false)
	rec = api.do(t, http.MethodGet, "/healthz", nil, "")
	assert.JSONEq(t, `{"status":"ok","store":"up"}`, rec.Body.String())
}

func TestAPI_RequestIDAndMetrics(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/blog/missing", nil)
	req.Header.Set("X-Request-Id", "req-42")
	rec := httptest.NewRecorder()
	api.echo.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get("X-Request-Id"))
	assert.Equal(t, "req-42", decode[errorBody](t, rec).Meta.RequestID)

	rec = api.do(t, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `academy_http_requests_total{method="GET",route="/api/blog/:id",status="404"} 1`)
}
