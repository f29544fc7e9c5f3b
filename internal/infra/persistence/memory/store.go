// Package memory is a process-local storage backend. It backs local development
// (storage.driver: memory) and the usecase and router tests.
package memory

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"academy/internal/domain/entity"
	"academy/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrStoreDown is returned by every operation while the store is switched off.
var ErrStoreDown = errors.New("memory store is down")

// Store holds every collection behind a single lock.
type Store struct {
	mu sync.RWMutex

	students      map[string]*entity.Student
	teachers      map[string]*entity.Teacher
	refreshTokens map[string]*entity.RefreshToken // keyed by token hash
	activities    []*entity.ActivityEntry
	courses       []*entity.Course
	reviews       []*entity.Review
	blogPosts     []*entity.BlogPost
	articles      []*entity.Article
	leads         []*entity.Lead

	down atomic.Bool
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		students:      make(map[string]*entity.Student),
		teachers:      make(map[string]*entity.Teacher),
		refreshTokens: make(map[string]*entity.RefreshToken),
	}
}

// NewSet wires every repository to a fresh store.
func NewSet() (repository.Set, *Store) {
	store := NewStore()

	return store.Set(), store
}

// Set exposes the store through the repository interfaces.
func (s *Store) Set() repository.Set {
	return repository.Set{
		Students:      &studentRepository{s},
		Teachers:      &teacherRepository{s},
		RefreshTokens: &refreshTokenRepository{s},
		Activities:    &activityRepository{s},
		Courses:       &courseRepository{s},
		Reviews:       &reviewRepository{s},
		BlogPosts:     &blogPostRepository{s},
		Articles:      &articleRepository{s},
		Leads:         &leadRepository{s},
		Health:        s,
	}
}

// SetDown simulates an outage: Ping and every repository call fail until it is cleared.
func (s *Store) SetDown(down bool) {
	s.down.Store(down)
}

// Ping implements repository.HealthChecker.
func (s *Store) Ping(_ context.Context) error {
	return s.check()
}

func (s *Store) check() error {
	if s.down.Load() {
		return ErrStoreDown
	}

	return nil
}

// SeedCourses adds catalog entries, assigning IDs where missing.
func (s *Store) SeedCourses(courses ...*entity.Course) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range courses {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		copied := *c
		s.courses = append(s.courses, &copied)
	}
}

// SeedReviews adds reviews, assigning IDs where missing.
func (s *Store) SeedReviews(reviews ...*entity.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range reviews {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		copied := *r
		s.reviews = append(s.reviews, &copied)
	}
}

// SeedBlogPosts adds blog posts, assigning IDs where missing.
func (s *Store) SeedBlogPosts(posts ...*entity.BlogPost) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range posts {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		copied := *p
		s.blogPosts = append(s.blogPosts, &copied)
	}
}

// SeedArticles adds articles, assigning IDs where missing.
func (s *Store) SeedArticles(articles ...*entity.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range articles {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		copied := *a
		s.articles = append(s.articles, &copied)
	}
}

// Leads returns a snapshot of the stored leads.
func (s *Store) Leads() []entity.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Lead, 0, len(s.leads))
	for _, l := range s.leads {
		out = append(out, *l)
	}

	return out
}

// Activities returns a snapshot of all stored activity entries in insertion order.
func (s *Store) Activities() []entity.ActivityEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.ActivityEntry, 0, len(s.activities))
	for _, a := range s.activities {
		out = append(out, *a)
	}

	return out
}

// RefreshTokenCount returns how many refresh tokens are stored for an account+kind.
func (s *Store) RefreshTokenCount(accountID string, kind entity.AccountKind) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, token := range s.refreshTokens {
		if token.AccountID == accountID && token.AccountKind == kind {
			count++
		}
	}

	return count
}

// --- students ---

type studentRepository struct{ s *Store }

func (r *studentRepository) Create(_ context.Context, student *entity.Student) error {
	if err := r.s.check(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.students {
		if existing.Email == student.Email {
			return repository.ErrDuplicateEmail
		}
	}

	student.ID = uuid.NewString()
	copied := *student
	copied.Courses = slices.Clone(student.Courses)
	copied.Schedule = slices.Clone(student.Schedule)
	r.s.students[student.ID] = &copied

	return nil
}

func (r *studentRepository) FindByID(_ context.Context, id string) (*entity.Student, error) {
	if err := r.s.check(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	student, ok := r.s.students[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return cloneStudent(student), nil
}

func (r *studentRepository) FindByEmail(_ context.Context, email string) (*entity.Student, error) {
	if err := r.s.check(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, student := range r.s.students {
		if student.Email == email {
			return cloneStudent(student), nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func cloneStudent(s *entity.Student) *entity.Student {
	copied := *s
	copied.Courses = slices.Clone(s.Courses)
	copied.Schedule = slices.Clone(s.Schedule)

	return &copied
}

// --- teachers ---

type teacherRepository struct{ s *Store }

func (r *teacherRepository) Create(_ context.Context, teacher *entity.Teacher) error {
	if err := r.s.check(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.teachers {
		if existing.Email == teacher.Email {
			return repository.ErrDuplicateEmail
		}
	}

	teacher.ID = uuid.NewString()
	for i := range teacher.IndividualLessons {
		if teacher.IndividualLessons[i].ID == "" {
			teacher.IndividualLessons[i].ID = uuid.NewString()
		}
	}
	r.s.teachers[teacher.ID] = cloneTeacher(teacher)

	return nil
}

func (r *teacherRepository) FindByID(_ context.Context, id string) (*entity.Teacher, error) {
	if err := r.s.check(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	teacher, ok := r.s.teachers[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return cloneTeacher(teacher), nil
}

func (r *teacherRepository) FindByEmail(_ context.Context, email string) (*entity.Teacher, error) {
	if err := r.s.check(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, teacher := range r.s.teachers {
		if teacher.Email == email {
			return cloneTeacher(teacher), nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func cloneTeacher(t *entity.Teacher) *entity.Teacher {
	copied := *t
	copied.TeachesCourses = slices.Clone(t.TeachesCourses)
	copied.IndividualLessons = slices.Clone(t.IndividualLessons)

	return &copied
}

// --- refresh tokens ---

type refreshTokenRepository struct{ s *Store }

func (r *refreshTokenRepository) ReplaceForAccount(_ context.Context, token *entity.RefreshToken) error {
	if err := r.s.check(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for hash, existing := range r.s.refreshTokens {
		if existing.AccountID == token.AccountID && existing.AccountKind == token.AccountKind {
			delete(r.s.refreshTokens, hash)
		}
	}

	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	copied := *token
	r.s.refreshTokens[token.TokenHash] = &copied

	return nil
}

func (r *refreshTokenRepository) FindByHash(_ context.Context, tokenHash string) (*entity.RefreshToken, error) {
	if err := r.s.check(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	token, ok := r.s.refreshTokens[tokenHash]
	if !ok {
		return nil, repository.ErrRefreshTokenNotFound
	}
	copied := *token

	return &copied, nil
}

func (r *refreshTokenRepository) DeleteByHash(_ context.Context, tokenHash string) error {
	if err := r.s.check(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.refreshTokens[tokenHash]; !ok {
		return repository.ErrRefreshTokenNotFound
	}
	delete(r.s.refreshTokens, tokenHash)

	return nil
}

func (r *refreshTokenRepository) DeleteForAccount(_ context.Context, accountID string, kind entity.AccountKind) error {
	if err := r.s.check(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for hash, existing := range r.s.refreshTokens {
		if existing.AccountID == accountID && existing.AccountKind == kind {
			delete(r.s.refreshTokens, hash)
		}
	}

	return nil
}


// --- activity ---

type activityRepository struct{ s *Store }

func (r *activityRepository) Create(_ context.Context, entry *entity.ActivityEntry) error {
	if err := r.s.check(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	entry.ID = uuid.NewString()
	copied := *entry
	r.s.activities = append(r.s.activities, &copied)

	return nil
}

func (r *activityRepository) ListByTeacher(_ context.Context, teacherID string) ([]*entity.ActivityEntry, error) {
	if err := r.s.check(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.ActivityEntry, 0)
	for _, entry := range r.s.activities {
		if entry.TeacherID == teacherID {
			copied := *entry
			out = append(out, &copied)
		}
	}

	// Reversed first so entries sharing a date keep the latest insert on top.
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b *entity.ActivityEntry) int {
		return b.Date.Compare(a.Date)
	})

	return out, nil
}

// --- content ---

type courseRepository struct{ s *Store }

func (r *courseRepository) List(_ context.Context) ([]*entity.Course, error) {
	if err := r.s.check(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.Course, 0, len(r.s.courses))
	for _, c := range r.s.courses {
		copied := *c
		copied.Details = slices.Clone(c.Details)
		out = append(out, &copied)
	}

	return out, nil
}

func (r *courseRepository) FindByNames(_ context.Context, names []string) ([]*entity.Course, error) {
	if err := r.s.check(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.Course, 0)
	for _, c := range r.s.courses {
		if slices.Contains(names, c.Name) {
			copied := *c
			out = append(out, &copied)
		}
	}

	return out, nil
}

type reviewRepository struct{ s *Store }

func (r *reviewRepository) Create(_ context.Context, review *entity.Review) error {
	if err := r.s.check(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	review.ID = uuid.NewString()
	copied := *review
	r.s.reviews = append(r.s.reviews, &copied)

	return nil
}

func (r *reviewRepository) List(_ context.Context) ([]*entity.Review, error) {
	if err := r.s.check(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.Review, 0, len(r.s.reviews))
	for _, review := range r.s.reviews {
		copied := *review
		out = append(out, &copied)
	}

	return out, nil
}

func (r *reviewRepository) ListByAuthor(_ context.Context, authorID, authorName string) ([]*entity.Review, error) {
	if err := r.s.check(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.Review, 0)
	// Newest first: insertion order reversed.
	for i := len(r.s.reviews) - 1; i >= 0; i-- {
		review := r.s.reviews[i]
		linked := authorID != "" && review.AuthorID == authorID
		legacy := review.AuthorID == "" && authorName != "" && review.Author == authorName
		if linked || legacy {
			copied := *review
			out = append(out, &copied)
		}
	}

	return out, nil
}

type blogPostRepository struct{ s *Store }

func (r *blogPostRepository) List(_ context.Context) ([]*entity.BlogPost, error) {
	if err := r.s.check(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.BlogPost, 0, len(r.s.blogPosts))
	for _, p := range r.s.blogPosts {
		copied := *p
		out = append(out, &copied)
	}
	slices.SortStableFunc(out, func(a, b *entity.BlogPost) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})

	return out, nil
}

func (r *blogPostRepository) FindByID(_ context.Context, id string) (*entity.BlogPost, error) {
	if err := r.s.check(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.blogPosts {
		if p.ID == id {
			copied := *p

			return &copied, nil
		}
	}

	return nil, repository.ErrContentNotFound
}

type articleRepository struct{ s *Store }

func (r *articleRepository) List(_ context.Context) ([]*entity.Article, error) {
	if err := r.s.check(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.Article, 0, len(r.s.articles))
	for _, a := range r.s.articles {
		copied := *a
		out = append(out, &copied)
	}
	slices.SortStableFunc(out, func(a, b *entity.Article) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return out, nil
}

func (r *articleRepository) FindByID(_ context.Context, id string) (*entity.Article, error) {
	if err := r.s.check(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, a := range r.s.articles {
		if a.ID == id {
			copied := *a

			return &copied, nil
		}
	}

	return nil, repository.ErrContentNotFound
}

type leadRepository struct{ s *Store }

func (r *leadRepository) Create(_ context.Context, lead *entity.Lead) error {
	if err := r.s.check(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	lead.ID = uuid.NewString()
	copied := *lead
	r.s.leads = append(r.s.leads, &copied)

	return nil
}
