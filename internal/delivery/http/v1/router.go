package v1

import (
	"net/http"

	"go-jobboard-gateway/config"
	"go-jobboard-gateway/internal/delivery/http/middleware"
	"go-jobboard-gateway/internal/delivery/http/response"
	"go-jobboard-gateway/internal/domain"
	"go-jobboard-gateway/internal/usecase"
	"go-jobboard-gateway/pkg/auth"
	"go-jobboard-gateway/pkg/redis"
	"go-jobboard-gateway/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	SessionUC    domain.SessionUsecase
	ProfileUC    usecase.ProfileUsecase
	SkillUC      domain.SkillUsecase
	AuthGateway  domain.AuthGateway
	Documents    domain.DocumentStore
	LoginTracker *security.LoginTracker
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
	r.Use(middleware.CSRFMiddleware())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(deps.Config)))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		if err := redis.HealthCheck(c.Request.Context()); err != nil {
			response.Error(c, http.StatusServiceUnavailable, "Session store unavailable", nil)
			return
		}
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, deps.Config, deps.SessionUC))
	{
		NewAuthHandler(v1, protected, deps.AuthGateway, deps.SessionUC, deps.LoginTracker, deps.Config)
		NewSessionHandler(protected, deps.SessionUC)
		NewJobSeekerHandler(protected, deps.ProfileUC)
		NewEmployerHandler(protected, deps.ProfileUC)
		NewSkillHandler(protected, deps.SkillUC)
		NewDocumentHandler(protected, deps.Documents, deps.Config)
	}

	return r
}
