package v1

import (
	"github.com/nitt-hospital/backend/internal/config"
	"github.com/nitt-hospital/backend/internal/service"
	"github.com/nitt-hospital/backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// @title NITT Hospital API
// @version 1.0
// @description Patient and staff authentication, otp administration

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
	config       *config.Config
}

func NewHandler(
	services *service.Services,
	tokenManager auth.TokenManager,
	config *config.Config,
) *Handler {
	return &Handler{
		services:     services,
		tokenManager: tokenManager,
		config:       config,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1")

	h.initPatientAuthRoutes(v1)
	h.initStaffAuthRoutes(v1)
	h.initOtpRoutes(v1)
}
