package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework used for routing

	"github.com/xricefarmer/bloglist-server/internal/handler"    // handlers implementing the endpoints
	"github.com/xricefarmer/bloglist-server/internal/middleware" // JWT authentication middleware
)

// RegisterRoutes registers routes that do not belong to any feature
// group. Currently it exposes only a health check, which load balancers
// and monitoring systems use to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers registration, login and session-lifecycle
// routes. Registration and login live under /api the way the frontend
// expects them. Logout deliberately skips the JWT middleware: a client
// whose access token has already expired can still terminate its session
// with a refresh token in the body.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	e.POST("/api/users", a.Register)
	e.POST("/api/login", a.Login)
	// Rotating refresh: old refresh token is revoked, a new pair is issued.
	e.POST("/api/login/refresh", a.Refresh)
	// Issue a new access token without rotating the refresh token.
	e.POST("/api/login/refresh-access", a.RefreshAccess)
	e.POST("/api/logout", a.Logout)

	// Protected introspection endpoint.
	auth := e.Group("/api", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterBlogs registers the blog endpoints. Listing, detail and liking
// are public — the e2e suite likes blogs without any token — while
// creation and deletion require a valid access token. The cacheMW
// middleware (Redis response cache, possibly a no-op) wraps only the
// listing, which is the hottest read in the application.
func RegisterBlogs(e *echo.Echo, h *handler.BlogHandler, jwtSecret string, cacheMW echo.MiddlewareFunc) {
	e.GET("/api/blogs", h.ListBlogs, cacheMW)
	e.GET("/api/blogs/:id", h.GetBlog)
	// Both verbs are accepted for likes; the frontend has used either.
	e.POST("/api/blogs/:id/like", h.LikeBlog)
	e.PUT("/api/blogs/:id/like", h.LikeBlog)

	auth := e.Group("/api", middleware.JWTAuth(jwtSecret))
	auth.POST("/blogs", h.CreateBlog)
	auth.DELETE("/blogs/:id", h.DeleteBlog)
}

// RegisterTesting registers the test-only reset endpoint. Callers must
// gate this on the application environment; it is never registered in
// production (see cmd/server).
func RegisterTesting(e *echo.Echo, t *handler.TestingHandler) {
	e.POST("/api/testing/reset", t.ResetAll)
}
