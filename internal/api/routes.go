package api

import (
	"net/http" // HTTP status codes
	"time"     // Token lifetime

	"hbnb/internal/facade"     // Business facade
	"hbnb/internal/middleware" // Auth, rate limiting, metrics

	"github.com/gin-gonic/gin" // Gin web framework
)

// Deps carries everything the HTTP layer needs
type Deps struct {
	Facade       *facade.Facade          // Business operations
	JWTSecret    string                  // HMAC secret for tokens
	TokenTTL     time.Duration           // Lifetime of issued tokens
	Denylist     TokenDenylist           // Revoked tokens; nil disables logout revocation
	LoginLimiter *middleware.RateLimiter // Throttles login attempts; may be nil
	Metrics      *middleware.Metrics     // Request metrics; may be nil
}

// RegisterRoutes mounts the /api/v1 surface plus health and metrics endpoints
func RegisterRoutes(r *gin.Engine, d Deps) {
	f := d.Facade
	if d.Metrics != nil {
		r.Use(d.Metrics.Handler())            // Record every request
		r.GET("/metrics", d.Metrics.Expose()) // Prometheus scrape endpoint
	}
	r.GET("/healthz", HealthHandler(f))

	// Denylist is an interface; avoid handing the middleware a typed nil
	var revoked middleware.RevocationChecker
	if d.Denylist != nil {
		revoked = d.Denylist
	}
	auth := middleware.JWTAuthMiddleware(d.JWTSecret, revoked)
	admin := middleware.AdminOnlyMiddleware()

	v1 := r.Group("/api/v1")

	// Auth routes
	authGroup := v1.Group("/auth")
	authGroup.POST("/register", RegisterHandler(f)) // Registration endpoint
	login := []gin.HandlerFunc{LoginHandler(f, d.JWTSecret, d.TokenTTL)}
	if d.LoginLimiter != nil {
		login = append([]gin.HandlerFunc{d.LoginLimiter.Handler()}, login...)
	}
	authGroup.POST("/login", login...)                         // Login endpoint
	authGroup.POST("/logout", auth, LogoutHandler(d.Denylist)) // Logout endpoint

	// User routes
	users := v1.Group("/users")
	users.POST("/", auth, admin, CreateUserHandler(f)) // Admin creates users
	users.GET("/", GetUsersHandler(f))
	users.GET("/:id", GetUserHandler(f))
	users.PUT("/:id", auth, UpdateUserHandler(f))

	// Admin routes (protected, admin only)
	adminGroup := v1.Group("/admin")
	adminGroup.Use(auth, admin)
	adminGroup.GET("/users", ListUsersHandler(f)) // Paginated user listing

	// Amenity routes
	amenities := v1.Group("/amenities")
	amenities.POST("/", auth, admin, CreateAmenityHandler(f))
	amenities.GET("/", GetAmenitiesHandler(f))
	amenities.GET("/:id", GetAmenityHandler(f))
	amenities.PUT("/:id", auth, admin, UpdateAmenityHandler(f))

	// Place routes
	places := v1.Group("/places")
	places.POST("/", auth, CreatePlaceHandler(f))
	places.GET("/", GetPlacesHandler(f))
	places.GET("/:id", GetPlaceHandler(f))
	places.PUT("/:id", auth, UpdatePlaceHandler(f))
	places.DELETE("/:id", auth, DeletePlaceHandler(f))
	places.GET("/:id/amenities", GetPlaceAmenitiesHandler(f))
	places.POST("/:id/amenities", auth, AddPlaceAmenitiesHandler(f))
	places.GET("/:id/reviews", GetPlaceReviewsHandler(f))
	places.POST("/:id/reviews", auth, CreatePlaceReviewHandler(f))
	places.PUT("/admin/:id", auth, AdminUpdatePlaceHandler(f)) // Admin claim checked in handler

	// Review routes
	reviews := v1.Group("/reviews")
	reviews.POST("/", auth, CreateReviewHandler(f))
	reviews.GET("/", GetReviewsHandler(f))
	reviews.GET("/:id", GetReviewHandler(f))
	reviews.PUT("/:id", auth, UpdateReviewHandler(f))
	reviews.DELETE("/:id", auth, DeleteReviewHandler(f))
}

// HealthHandler reports whether the store is reachable
func HealthHandler(f *facade.Facade) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := f.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
