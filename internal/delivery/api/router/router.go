// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"academy/internal/delivery/api/middleware"
	"academy/internal/delivery/api/router/handler"
	"academy/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// APIPrefix is the path prefix gated by store availability.
const APIPrefix = "/api"

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	ProfileHandler *handler.ProfileHandler
	TrackerHandler *handler.TrackerHandler
	ContentHandler *handler.ContentHandler
	LeadHandler    *handler.LeadHandler
	HealthHandler  *handler.HealthHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	trackerHandler *handler.TrackerHandler
	contentHandler *handler.ContentHandler
	leadHandler    *handler.LeadHandler
	healthHandler  *handler.HealthHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		profileHandler: params.ProfileHandler,
		trackerHandler: params.TrackerHandler,
		contentHandler: params.ContentHandler,
		leadHandler:    params.LeadHandler,
		healthHandler:  params.HealthHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", r.healthHandler.Check)

	api := e.Group(APIPrefix)

	// Registration and sessions
	api.POST("/register", r.authHandler.RegisterStudent)
	api.POST("/teacher-register", r.authHandler.RegisterTeacher)
	api.POST("/login", r.authHandler.Login)
	api.POST("/teacher-login", r.authHandler.TeacherLogin)
	api.POST("/teacher-login-no-expiry", r.authHandler.TeacherLoginExtended)
	api.POST("/refresh-token", r.authHandler.RefreshToken)
	api.POST("/logout", r.authHandler.Logout, r.authMiddleware.Authenticate)

	// Public content
	api.GET("/home", r.contentHandler.Home)
	api.GET("/blog", r.contentHandler.ListBlogPosts)
	api.GET("/blog/:id", r.contentHandler.GetBlogPost)
	api.GET("/articles", r.contentHandler.ListArticles)
	api.GET("/articles/:id", r.contentHandler.GetArticle)

	// Lead forms
	api.POST("/purchase", r.leadHandler.SubmitPurchase)
	api.POST("/contact", r.leadHandler.SubmitContact)
	api.POST("/signup", r.leadHandler.SubmitSignup)

	// Any authenticated account
	api.GET("/profile", r.profileHandler.GetProfile, r.authMiddleware.Authenticate)

	// Students only
	api.POST("/reviews", r.contentHandler.AddReview,
		r.authMiddleware.Authenticate,
		r.authMiddleware.RequireKind(entity.AccountKindStudent),
	)

	// Teachers only
	teacherOnly := []echo.MiddlewareFunc{
		r.authMiddleware.Authenticate,
		r.authMiddleware.RequireKind(entity.AccountKindTeacher),
	}
	api.GET("/teacher-profile", r.profileHandler.GetTeacherProfile, teacherOnly...)
	api.GET("/teacher-tracker", r.trackerHandler.ListActivity, teacherOnly...)
	api.POST("/teacher-tracker", r.trackerHandler.AddActivity, teacherOnly...)
	api.POST("/teachers", r.authHandler.CreateTeacher, teacherOnly...)
}
