// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/RodrigoAlexander7/linespace/internal/config"
	"github.com/RodrigoAlexander7/linespace/internal/handler"
	"github.com/RodrigoAlexander7/linespace/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check used by
// load balancers and monitoring to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes. Unauthenticated
// operations (register, login, refresh, logout) live under /v1/auth;
// /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token: the presented token is revoked
	// and a new pair is issued.
	g.POST("/refresh", a.Refresh)
	// Logout accepts the refresh token in the JSON body and revokes it.
	// No JWT is required, so a client with an expired access token can
	// still terminate its session.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterNotes registers the protected note-organizing API under /v1.
// All routes require a valid access token; GET endpoints are served
// through the Redis response cache and every route passes through the
// token-bucket rate limiter. Both middlewares degrade to no-ops when
// rdb is nil.
func RegisterNotes(e *echo.Echo, jwtSecret string, rdb *redis.Client, gh *handler.GroupHandler, ch *handler.CategoryHandler, nh *handler.NoteHandler) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	g.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	g.POST("/groups", gh.Create)
	g.GET("/groups", gh.List)
	g.GET("/groups/:id", gh.Get)
	g.PATCH("/groups/:id", gh.Update)
	g.DELETE("/groups/:id", gh.Delete)

	g.POST("/categories", ch.Create)
	g.GET("/categories", ch.List)
	g.GET("/categories/:id", ch.Get)
	g.PATCH("/categories/:id", ch.Update)
	g.DELETE("/categories/:id", ch.Delete)

	g.POST("/notes", nh.Create)
	g.GET("/notes", nh.List)
	g.GET("/notes/:id", nh.Get)
	g.PATCH("/notes/:id", nh.Update)
	g.PATCH("/notes/:id/archive", nh.Archive)
	g.PATCH("/notes/:id/unarchive", nh.Unarchive)
	g.DELETE("/notes/:id", nh.Delete)
}
