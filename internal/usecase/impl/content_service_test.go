package impl

import (
	"context"
	"testing"
	"time"

	"academy/internal/domain/entity"
	domainerrors "academy/internal/domain/errors"
	"academy/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentService_Home(t *testing.T) {
	env := newTestEnv(t)
	env.store.SeedCourses(
		&entity.Course{Name: "English B1", MaterialsLink: "https://drive/b1"},
		&entity.Course{Name: "Polish A1"},
	)
	env.store.SeedReviews(&entity.Review{Text: "Great", Author: "Ivan"})

	home, err := env.contentService().Home(context.Background())
	require.NoError(t, err)

	require.Len(t, home.Courses, 2)
	links := map[string]string{}
	for _, c := range home.Courses {
		links[c.Name] = c.MaterialsLink
	}
	assert.Equal(t, "https://drive/b1", links["English B1"])
	assert.Equal(t, "#", links["Polish A1"])
	require.Len(t, home.Reviews, 1)
	assert.Equal(t, "Great", home.Reviews[0].Text)
}

func TestContentService_BlogPosts(t *testing.T) {
	env := newTestEnv(t)
	older := &entity.BlogPost{Title: "Old", Content: "a", PublishedAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := &entity.BlogPost{Title: "New", Description: "d", Content: "b", PublishedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	env.store.SeedBlogPosts(older, newer)
	srv := env.contentService()
	ctx := context.Background()

	posts, err := srv.ListBlogPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "New", posts[0].Title)

	post, err := srv.GetBlogPost(ctx, newer.ID)
	require.NoError(t, err)
	assert.Equal(t, *newer, *post)

	_, err = srv.GetBlogPost(ctx, "missing")
	assert.True(t, errors.Is(err, domainerrors.ErrBlogPostNotFound))
}

func TestContentService_Articles(t *testing.T) {
	env := newTestEnv(t)
	article := &entity.Article{Title: "Tenses", Image: "/img/t.png", Content: "...", CreatedAt: time.Now().UTC()}
	env.store.SeedArticles(article)
	srv := env.contentService()
	ctx := context.Background()

	articles, err := srv.ListArticles(ctx)
	require.NoError(t, err)
	assert.Len(t, articles, 1)

	got, err := srv.GetArticle(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tenses", got.Title)

	_, err = srv.GetArticle(ctx, "nope")
	assert.True(t, errors.Is(err, domainerrors.ErrArticleNotFound))
}

func TestContentService_AddReview(t *testing.T) {
	env := newTestEnv(t)
	student := registerStudent(t, env.accountService(), "Ivan", "ivan@example.com")
	srv := env.contentService()
	ctx := context.Background()

	review, err := srv.AddReview(ctx, student.Student.Identity(), "<p>Loved it</p>")
	require.NoError(t, err)
	assert.Equal(t, "Loved it", review.Text)
	assert.Equal(t, "Ivan", review.Author)
	assert.Equal(t, student.Student.ID, review.AuthorID)

	_, err = srv.AddReview(ctx, student.Student.Identity(), "<b> </b>")
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, err = srv.AddReview(ctx, entity.Identity{AccountID: "t-1", Kind: entity.AccountKindTeacher}, "text")
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}
