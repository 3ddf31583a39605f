package v1

import (
	"net/http"

	"go-contact-relay/config"
	"go-contact-relay/internal/delivery/http/middleware"
	"go-contact-relay/internal/domain"
	"go-contact-relay/internal/usecase"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	HealthUC  usecase.HealthUsecase
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.AllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.BodyLimit(middleware.MaxBodyBytes))
	r.Use(middleware.ErrorHandler())

	api := r.Group("/api")

	// Liveness probe: always 200, no checks, no side effects
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, deps.HealthUC.Check(c.Request.Context()))
	})

	// Public routes
	NewContactHandler(api, deps.ContactUC)

	return r
}
