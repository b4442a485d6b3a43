package v1

import (
	"net/http"
	"time"

	"recruitflow-backend/config"
	"recruitflow-backend/internal/delivery/http/middleware"
	"recruitflow-backend/internal/delivery/http/response"
	"recruitflow-backend/internal/domain"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	PartnerUC     domain.PartnerUsecase
	DashboardUC   domain.DashboardUsecase
	ExportUC      domain.ExportUsecase
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(
		deps.Config.RateLimitGlobalThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	)))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	adminOnly := middleware.RequireRoles(domain.RoleAdmin)
	staffOnly := middleware.RequireRoles(domain.RoleAdmin, domain.RoleRecruiter)
	writeLimited := middleware.RateLimitMiddleware(middleware.WriteRateLimitConfig())

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config, deps.AuthUC, deps.PartnerUC))
	{
		NewAuthHandler(protected, adminOnly, deps.AuthUC)
		NewJobHandler(protected, adminOnly, staffOnly, deps.JobUC)
		NewApplicationHandler(protected, adminOnly, staffOnly, writeLimited, deps.ApplicationUC, deps.ExportUC)
		NewPartnerHandler(protected, adminOnly, deps.PartnerUC)
		NewDashboardHandler(protected, adminOnly, deps.DashboardUC)
	}

	return r
}
