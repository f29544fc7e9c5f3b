package usecase

import (
	"context"

	"academy/internal/domain/entity"
)

// HomeOutput is the landing page payload.
type HomeOutput struct {
	Courses []*entity.Course
	Reviews []*entity.Review
}

// ContentUsecase serves the public catalog, blog and articles and accepts student reviews.
type ContentUsecase interface {
	Home(ctx context.Context) (*HomeOutput, error)

	ListBlogPosts(ctx context.Context) ([]*entity.BlogPost, error)
	GetBlogPost(ctx context.Context, id string) (*entity.BlogPost, error)

	ListArticles(ctx context.Context) ([]*entity.Article, error)
	GetArticle(ctx context.Context, id string) (*entity.Article, error)

	// AddReview stores a testimonial linked to the calling student.
	AddReview(ctx context.Context, caller entity.Identity, text string) (*entity.Review, error)
}
