package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "academy/internal/delivery/context"
	"academy/internal/domain/entity"
	domainerrors "academy/internal/domain/errors"
	"academy/internal/domain/repository"
	"academy/internal/domain/service"
	"academy/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type contentService struct {
	students  repository.StudentRepository
	courses   repository.CourseRepository
	reviews   repository.ReviewRepository
	blogPosts repository.BlogPostRepository
	articles  repository.ArticleRepository
	sanitizer service.Sanitizer
	logger    *slog.Logger
	now       func() time.Time
}

// ContentServiceParams holds dependencies for ContentService, injected by Fx.
type ContentServiceParams struct {
	fx.In

	Students  repository.StudentRepository
	Courses   repository.CourseRepository
	Reviews   repository.ReviewRepository
	BlogPosts repository.BlogPostRepository
	Articles  repository.ArticleRepository
	Sanitizer service.Sanitizer
	Logger    *slog.Logger
}

// NewContentService creates the public content usecase.
func NewContentService(params ContentServiceParams) usecase.ContentUsecase {
	return &contentService{
		students:  params.Students,
		courses:   params.Courses,
		reviews:   params.Reviews,
		blogPosts: params.BlogPosts,
		articles:  params.Articles,
		sanitizer: params.Sanitizer,
		logger:    params.Logger,
		now:       time.Now,
	}
}

func (srv *contentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Home returns the catalog and every review. Courses without materials get the "#" placeholder.
func (srv *contentService) Home(ctx context.Context) (*usecase.HomeOutput, error) {
	courses, err := srv.courses.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list courses")
	}
	for _, c := range courses {
		c.MaterialsLink = orDefault(c.MaterialsLink, fallbackLink)
	}

	reviews, err := srv.reviews.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return &usecase.HomeOutput{Courses: courses, Reviews: reviews}, nil
}

func (srv *contentService) ListBlogPosts(ctx context.Context) ([]*entity.BlogPost, error) {
	posts, err := srv.blogPosts.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list blog posts")
	}

	return posts, nil
}

func (srv *contentService) GetBlogPost(ctx context.Context, id string) (*entity.BlogPost, error) {
	post, err := srv.blogPosts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrContentNotFound) {
			return nil, errors.Wrapf(domainerrors.ErrBlogPostNotFound, "blog post %q", id)
		}

		return nil, errors.Wrap(err, "failed to load blog post")
	}

	return post, nil
}

func (srv *contentService) ListArticles(ctx context.Context) ([]*entity.Article, error) {
	articles, err := srv.articles.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list articles")
	}

	return articles, nil
}

func (srv *contentService) GetArticle(ctx context.Context, id string) (*entity.Article, error) {
	article, err := srv.articles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrContentNotFound) {
			return nil, errors.Wrapf(domainerrors.ErrArticleNotFound, "article %q", id)
		}

		return nil, errors.Wrap(err, "failed to load article")
	}

	return article, nil
}

// AddReview stores a testimonial under the student's current display name and account id.
func (srv *contentService) AddReview(ctx context.Context, caller entity.Identity, text string) (*entity.Review, error) {
	if !caller.IsStudent() {
		return nil, domainerrors.ErrForbidden.WithDetails("only students can leave reviews")
	}

	text = srv.sanitizer.Text(text)
	if text == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("text is required")
	}

	student, err := srv.students.FindByID(ctx, caller.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "review author no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load review author")
	}

	review := &entity.Review{
		Text:      text,
		Author:    student.Name,
		AuthorID:  student.ID,
		CreatedAt: srv.now().UTC(),
	}
	if err := srv.reviews.Create(ctx, review); err != nil {
		return nil, errors.Wrap(err, "failed to store review")
	}
	srv.log(ctx).Info("Review added", slog.String("studentID", student.ID), slog.String("reviewID", review.ID))

	return review, nil
}
