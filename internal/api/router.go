package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/middleware"
)

// NewRouter creates and configures the Gin router.
func NewRouter(events *EventHandler, accounts *AuthHandler, log *zap.Logger) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(middleware.CorrelationID())
	r.Use(middleware.RequestLogger(log))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Hello World!")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		authRoutes := api.Group("/auth")
		authRoutes.POST("/register", accounts.Register)
		authRoutes.POST("/login", accounts.Login)

		session := api.Group("", middleware.RequireSession(accounts.Auth, log))
		session.POST("/auth/logout", accounts.Logout)
		session.GET("/auth/me", accounts.Me)

		session.GET("/events", events.ListEvents)
		session.GET("/events/:id", events.GetEvent)
		session.POST("/events", events.CreateEvent)
		session.PUT("/events/:id", events.UpdateEvent)
		session.DELETE("/events/:id", events.DeleteEvent)
	}

	return r
}

// NewHandler wraps the router with CORS for the given origins.
// "*" allows every origin.
func NewHandler(router http.Handler, allowedOrigins []string) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", middleware.CorrelationIDHeader},
		ExposedHeaders: []string{middleware.CorrelationIDHeader},
	}).Handler(router)
}
