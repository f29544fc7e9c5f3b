package handler

import (
	"log/slog"
	"net/http"

	"academy/internal/delivery/api/middleware"
	"academy/internal/delivery/api/response"
	domainerrors "academy/internal/domain/errors"
	"academy/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ContentHandlerParams holds dependencies for ContentHandler, injected by Fx.
type ContentHandlerParams struct {
	fx.In

	Content usecase.ContentUsecase
	Logger  *slog.Logger
}

// ContentHandler serves the public catalog, blog and articles, and accepts reviews.
type ContentHandler struct {
	content usecase.ContentUsecase
	logger  *slog.Logger
}

// NewContentHandler is the constructor for ContentHandler.
func NewContentHandler(params ContentHandlerParams) *ContentHandler {
	return &ContentHandler{
		content: params.Content,
		logger:  params.Logger,
	}
}

// AddReviewRequest is the body of POST /api/reviews.
type AddReviewRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// Home handles GET /api/home.
func (h *ContentHandler) Home(c echo.Context) error {
	home, err := h.content.Home(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, homeResponse{
		Courses: mapSlice(home.Courses, newCourseView),
		Reviews: mapSlice(home.Reviews, newReviewView),
	})
}

// ListBlogPosts handles GET /api/blog.
func (h *ContentHandler) ListBlogPosts(c echo.Context) error {
	posts, err := h.content.ListBlogPosts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, mapSlice(posts, newBlogPostView))
}

// GetBlogPost handles GET /api/blog/:id.
func (h *ContentHandler) GetBlogPost(c echo.Context) error {
	post, err := h.content.GetBlogPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newBlogPostView(post))
}

// ListArticles handles GET /api/articles.
func (h *ContentHandler) ListArticles(c echo.Context) error {
	articles, err := h.content.ListArticles(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, mapSlice(articles, newArticleView))
}

// GetArticle handles GET /api/articles/:id.
func (h *ContentHandler) GetArticle(c echo.Context) error {
	article, err := h.content.GetArticle(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newArticleView(article))
}

// AddReview handles POST /api/reviews.
func (h *ContentHandler) AddReview(c echo.Context) error {
	caller, ok := middleware.GetIdentity(c)
	if !ok {
		return domainerrors.ErrMissingToken
	}

	var req AddReviewRequest
	if err := bindAndValidate(c, &req, "Invalid review"); err != nil {
		return err
	}

	review, err := h.content.AddReview(c.Request().Context(), caller, req.Text)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newReviewView(review))
}
