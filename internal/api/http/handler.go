package apiHttp

import (
	"context"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"

	"github.com/nitt-hospital/backend/pkg/auth"
	"github.com/nitt-hospital/backend/pkg/limiter"
	"github.com/nitt-hospital/backend/pkg/logger"
	"github.com/nitt-hospital/backend/pkg/validator"

	internalV1 "github.com/nitt-hospital/backend/internal/api/http/internal/v1"
	"github.com/nitt-hospital/backend/internal/config"
	"github.com/nitt-hospital/backend/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
	config       *config.Config
}

func NewHandlers(
	services *service.Services,
	tokenManager auth.TokenManager,
	cfg *config.Config,
) *Handler {
	return &Handler{
		services:     services,
		tokenManager: tokenManager,
		config:       cfg,
	}
}

// Init builds the router. Background work started for it stops with ctx.
func (h *Handler) Init(ctx context.Context) http.Handler {
	if h.config.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	validator.RegisterGinValidator()

	router.Use(
		ginzap.Ginzap(logger.Logger(), time.RFC3339, true),
		limiter.Limit(ctx, h.config.Limiter.RPS, h.config.Limiter.Burst, h.config.Limiter.TTL),
	)
	router.Use(ginzap.RecoveryWithZap(logger.Logger(), true))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h.initAPI(router)

	return withCors(h.config.HttpServer.AllowedOrigins, router)
}

func (h *Handler) initAPI(router *gin.Engine) {
	internalHandlersV1 := internalV1.NewHandler(h.services, h.tokenManager, h.config)
	api := router.Group("/api")
	internalHandlersV1.Init(api)
}
