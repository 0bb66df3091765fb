package v1

import (
	"net/http"

	"go-jobtracker-backend/config"
	"go-jobtracker-backend/internal/delivery/http/middleware"
	"go-jobtracker-backend/internal/delivery/http/response"
	"go-jobtracker-backend/internal/domain"
	"go-jobtracker-backend/internal/usecase"
	"go-jobtracker-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	Sessions     *SessionStore
	Extractor    domain.Extractor
	ExportUC     usecase.ExportUsecase
	JWKSProvider *auth.Provider
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.GlobalRateLimitMiddleware())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, deps.Config))
	{
		NewRecordHandler(protected, deps.Sessions, deps.ExportUC)
		NewExtractHandler(protected, deps.Extractor, middleware.RateLimitMiddleware(middleware.ExtractRateLimitConfig()))
		NewSessionHandler(protected, deps.Sessions)
	}

	return r
}
