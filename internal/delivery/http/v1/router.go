package v1

import (
	"net/http"

	"candidatehub-backend/config"
	"candidatehub-backend/internal/delivery/http/middleware"
	"candidatehub-backend/internal/delivery/http/response"
	"candidatehub-backend/internal/domain"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type RouterDeps struct {
	CandidateUC domain.CandidateUsecase
	HealthUC    domain.HealthUsecase
	RateLimiter *middleware.RateLimiter // nil disables write limiting
	Config      *config.Config
	Logger      *zap.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	var origins []string
	if deps.Config != nil {
		origins = deps.Config.CORSAllowedOrigins
	}

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(origins)) // CORS must be first!
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler(log))

	// Health Check
	r.GET("/health", func(c *gin.Context) {
		if deps.HealthUC == nil {
			response.Success(c, http.StatusOK, "System operational", nil)
			return
		}
		status, ok := deps.HealthUC.Check(c.Request.Context())
		if !ok {
			c.JSON(http.StatusServiceUnavailable, response.Response{
				Status:    response.StatusError,
				Message:   "System degraded",
				Data:      status,
				RequestID: c.GetString("RequestID"),
			})
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	var writeLimit []gin.HandlerFunc
	if deps.RateLimiter != nil {
		writeLimit = append(writeLimit, deps.RateLimiter.Middleware())
	}
	NewCandidateHandler(r, deps.CandidateUC, writeLimit...)

	return r
}
