package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lleukocyte/travel-guide/services"
)

// Dependencies holds everything the handlers need.
type Dependencies struct {
	Users     services.UserService
	Places    services.PlaceService
	Analytics services.AnalyticsProvider
	Health    services.HealthChecker // optional

	UploadDir      string // Photos are written here and served under /uploads
	StaticDir      string // Served under /static when non-empty
	AllowedOrigins []string
	MaxBodyBytes   int64
	Logger         *logrus.Logger
}

// API holds dependencies for API handlers.
type API struct {
	users     services.UserService
	places    services.PlaceService
	analytics services.AnalyticsProvider
	health    services.HealthChecker
	uploadDir string
	logger    *logrus.Logger
}

// NewAPI creates a new API handler structure.
func NewAPI(deps Dependencies) *API {
	logger := deps.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &API{
		users:     deps.Users,
		places:    deps.Places,
		analytics: deps.Analytics,
		health:    deps.Health,
		uploadDir: deps.UploadDir,
		logger:    logger,
	}
}

// SetupRoutes installs middleware and defines all the API routes.
func SetupRoutes(router *gin.Engine, deps Dependencies) *API {
	apiHandler := NewAPI(deps)

	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(apiHandler.logger))
	router.Use(CORSMiddleware(deps.AllowedOrigins))
	if deps.MaxBodyBytes > 0 {
		router.Use(RequestSizeLimitMiddleware(deps.MaxBodyBytes))
	}

	router.GET("/", apiHandler.RootHandler)
	router.GET("/health", apiHandler.HealthCheckHandler)
	router.GET("/analytics", apiHandler.GetAnalyticsHandler)

	if deps.StaticDir != "" {
		router.Static("/static", deps.StaticDir)
	}
	if deps.UploadDir != "" {
		router.Static("/uploads", deps.UploadDir)
	}

	apiRoutes := router.Group("/api")
	{
		// Account routes
		apiRoutes.POST("/register", apiHandler.RegisterHandler)
		apiRoutes.POST("/verify", apiHandler.VerifyHandler)
		apiRoutes.POST("/login", apiHandler.LoginHandler)

		userRoutes := apiRoutes.Group("/users/me", apiHandler.AuthRequired())
		{
			userRoutes.GET("", apiHandler.CurrentUserHandler)
			userRoutes.GET("/favorites", apiHandler.ListFavoritesHandler)
		}

		placeRoutes := apiRoutes.Group("/places")
		{
			placeRoutes.GET("", apiHandler.AuthOptional(), apiHandler.ListPlacesHandler) // Ranked for the caller
			placeRoutes.POST("", apiHandler.AuthRequired(), apiHandler.CreatePlaceHandler)
			placeRoutes.GET("/cities", apiHandler.ListCitiesHandler)
			placeRoutes.GET("/:placeId", apiHandler.GetPlaceHandler)

			placeRoutes.GET("/:placeId/reviews", apiHandler.ListReviewsHandler)
			placeRoutes.POST("/:placeId/reviews", apiHandler.AuthRequired(), apiHandler.CreateReviewHandler)

			favoriteRoutes := placeRoutes.Group("/:placeId/favorites", apiHandler.AuthRequired())
			{
				favoriteRoutes.POST("", apiHandler.AddFavoriteHandler)
				favoriteRoutes.DELETE("", apiHandler.RemoveFavoriteHandler)
				favoriteRoutes.GET("/status", apiHandler.FavoriteStatusHandler)
			}
		}
	}

	return apiHandler
}

// RootHandler greets API clients
func (api *API) RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Travel guide API"})
}

// HealthCheckHandler reports service health, including the database when configured
func (api *API) HealthCheckHandler(c *gin.Context) {
	status := gin.H{
		"status":    "healthy",
		"service":   "travel-guide",
		"timestamp": time.Now().Unix(),
	}

	if api.health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := api.health.Ping(ctx); err != nil {
			_ = c.Error(err)
			status["status"] = "unhealthy"
			status["database"] = "unreachable"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		status["database"] = "ok"
	}

	c.JSON(http.StatusOK, status)
}

// GetAnalyticsHandler returns ranking statistics
func (api *API) GetAnalyticsHandler(c *gin.Context) {
	if api.analytics == nil {
		SendError(c, http.StatusServiceUnavailable, ErrorCodeUnavailable, "Analytics are disabled")
		return
	}
	c.JSON(http.StatusOK, api.analytics.GetDashboardData())
}
