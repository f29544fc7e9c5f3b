package impl

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"academy/config"
	"academy/internal/domain/repository"
	"academy/internal/domain/service"
	"academy/internal/infra/auth"
	"academy/internal/infra/persistence/memory"
	"academy/internal/infra/revocation"
	"academy/internal/infra/sanitize"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:              bcrypt.MinCost,
			AccessTokenTTL:          time.Hour,
			RefreshTokenTTL:         7 * 24 * time.Hour,
			ExtendedRefreshTokenTTL: 90 * 24 * time.Hour,
		},
	}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	return cfg
}

// testEnv wires the services to a fresh in-memory store.
type testEnv struct {
	cfg       *config.Config
	repos     repository.Set
	store     *memory.Store
	tokens    service.TokenService
	hasher    service.PasswordHasher
	sanitizer service.Sanitizer
	revoker   service.TokenRevoker
	logger    *slog.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := newTestConfig()
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	repos, store := memory.NewSet()

	return &testEnv{
		cfg:       cfg,
		repos:     repos,
		store:     store,
		tokens:    tokens,
		hasher:    auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		sanitizer: sanitize.NewSanitizer(),
		revoker:   revocation.NewMemoryRevoker(),
		logger:    newDiscardLogger(),
	}
}

func (e *testEnv) accountService() *accountService {
	return NewAccountService(AccountServiceParams{
		Students:      e.repos.Students,
		Teachers:      e.repos.Teachers,
		Courses:       e.repos.Courses,
		Reviews:       e.repos.Reviews,
		RefreshTokens: e.repos.RefreshTokens,
		Hasher:        e.hasher,
		TokenService:  e.tokens,
		Sanitizer:     e.sanitizer,
		Config:        e.cfg,
		Logger:        e.logger,
	}).(*accountService)
}

func (e *testEnv) sessionService() *sessionService {
	return NewSessionService(SessionServiceParams{
		Students:      e.repos.Students,
		Teachers:      e.repos.Teachers,
		RefreshTokens: e.repos.RefreshTokens,
		TokenService:  e.tokens,
		Revoker:       e.revoker,
		Logger:        e.logger,
	}).(*sessionService)
}

func (e *testEnv) activityService() *activityService {
	return NewActivityService(ActivityServiceParams{
		Teachers:   e.repos.Teachers,
		Activities: e.repos.Activities,
		Sanitizer:  e.sanitizer,
		Logger:     e.logger,
	}).(*activityService)
}

func (e *testEnv) contentService() *contentService {
	return NewContentService(ContentServiceParams{
		Students:  e.repos.Students,
		Courses:   e.repos.Courses,
		Reviews:   e.repos.Reviews,
		BlogPosts: e.repos.BlogPosts,
		Articles:  e.repos.Articles,
		Sanitizer: e.sanitizer,
		Logger:    e.logger,
	}).(*contentService)
}

func (e *testEnv) leadService(publisher service.EventPublisher) *leadService {
	return NewLeadService(LeadServiceParams{
		Leads:     e.repos.Leads,
		Sanitizer: e.sanitizer,
		Publisher: publisher,
		Logger:    e.logger,
	}).(*leadService)
}
