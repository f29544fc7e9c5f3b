package repository

import (
	"context"

	"academy/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrContentNotFound is returned when a blog post or article lookup misses,
// including lookups with an id the store cannot parse.
var ErrContentNotFound = errors.New("content not found")

// CourseRepository reads the course catalog.
type CourseRepository interface {
	List(ctx context.Context) ([]*entity.Course, error)

	// FindByNames returns the catalog entries whose name is in names.
	FindByNames(ctx context.Context, names []string) ([]*entity.Course, error)
}

// ReviewRepository reads and appends testimonials.
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error

	List(ctx context.Context) ([]*entity.Review, error)

	// ListByAuthor returns reviews linked to authorID, plus unlinked legacy reviews whose
	// author name equals authorName, newest first.
	ListByAuthor(ctx context.Context, authorID, authorName string) ([]*entity.Review, error)
}

// BlogPostRepository reads blog posts.
type BlogPostRepository interface {
	// List returns all posts ordered by publication date, newest first.
	List(ctx context.Context) ([]*entity.BlogPost, error)

	FindByID(ctx context.Context, id string) (*entity.BlogPost, error)
}

// ArticleRepository reads articles.
type ArticleRepository interface {
	// List returns all articles ordered by creation date, newest first.
	List(ctx context.Context) ([]*entity.Article, error)

	FindByID(ctx context.Context, id string) (*entity.Article, error)
}
