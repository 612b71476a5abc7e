package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/kayan2004/dracofit-backend/internal/config"
	"github.com/kayan2004/dracofit-backend/internal/handler"    // import the handlers that implement business logic
	"github.com/kayan2004/dracofit-backend/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies
// the necessary middleware.  Unauthenticated operations live under
// /v1/auth, while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	g.GET("/verify-email", a.VerifyEmail)
	// Logout does not require JWT authentication: the handler accepts a
	// refresh_token body and revokes that session, or revokes all
	// sessions when called with a bearer token and no body.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("USER", "ADMIN"))
	auth.GET("/me", a.Me)
	// Bearer-authenticated logout revokes every session of the user.
	auth.POST("/logout", a.Logout)
}

// RegisterAPI mounts the pet, schedule, plan and log endpoints behind
// JWT auth.  Redis-backed rate limiting and response caching wrap the
// whole group; both degrade to no-ops when rdb is nil.
func RegisterAPI(e *echo.Echo, jwtSecret string, rdb *redis.Client,
	pets *handler.PetHandler, schedules *handler.ScheduleHandler,
	plans *handler.WorkoutPlanHandler, logs *handler.WorkoutLogHandler) {

	api := e.Group("/v1")
	api.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	api.Use(middleware.JWTAuth(jwtSecret))
	api.Use(middleware.RequireRole("USER", "ADMIN"))
	api.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	// The user's pet.
	api.GET("/pets", pets.Get)
	api.POST("/pets", pets.Create)
	api.PATCH("/pets", pets.Rename)
	api.POST("/pets/add-xp", pets.AddXP)
	api.POST("/pets/resurrect", pets.Resurrect)
	api.POST("/pets/restart-journey", pets.RestartJourney)

	// Weekly schedule.
	api.GET("/schedule", schedules.Get)
	api.GET("/schedule/week", schedules.Week)
	api.PATCH("/schedule/name", schedules.Rename)
	api.PATCH("/schedule/entries/:day", schedules.UpdateEntry)
	api.POST("/schedule/entries/:day/rest", schedules.SetRest)
	api.POST("/schedule/reset", schedules.Reset)

	// Workout plans.
	api.POST("/workout-plans", plans.Create)
	api.GET("/workout-plans", plans.List)
	api.GET("/workout-plans/:id", plans.Get)
	api.PUT("/workout-plans/:id", plans.Update)
	api.DELETE("/workout-plans/:id", plans.Delete)

	// Workout sessions. PATCH finishes an open session.
	api.POST("/workout-logs", logs.Start)
	api.PATCH("/workout-logs/:id", logs.Finish)
	api.GET("/workout-logs", logs.List)
	api.GET("/workout-logs/:id", logs.Get)
	api.DELETE("/workout-logs/:id", logs.Delete)
}

// RegisterAdmin mounts the ADMIN-only surface: force-setting a pet's
// health for support cases.
func RegisterAdmin(e *echo.Echo, jwtSecret string, pets *handler.PetHandler) {
	admin := e.Group("/v1/admin")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole("ADMIN"))
	admin.PATCH("/pets/:userId/health", pets.SetHealth)
}

// RegisterDebug mounts the fake clock and manual job triggers.  The
// caller must only invoke this outside prod.
func RegisterDebug(e *echo.Echo, jwtSecret string, d *handler.DebugHandler) {
	dbg := e.Group("/v1/debug")
	dbg.Use(middleware.JWTAuth(jwtSecret))
	dbg.Use(middleware.RequireRole("ADMIN"))
	dbg.GET("/clock", d.GetClock)
	dbg.POST("/clock/set", d.SetClock)
	dbg.POST("/clock/advance", d.AdvanceClock)
	dbg.POST("/clock/reset", d.ResetClock)
	dbg.POST("/jobs/decay", d.RunDecay)
	dbg.POST("/jobs/reschedule", d.RunReschedule)
	dbg.POST("/jobs/cleanup", d.RunCleanup)
}
