package v1

import (
	"github.com/barangay-connect/backend/internal/config"
	"github.com/barangay-connect/backend/internal/service"
	"github.com/barangay-connect/backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// @title Barangay Registration API
// @version 1.0
// @description Resident, business and family registration for barangay civic services

// @BasePath /api/v1

// @securityDefinitions.apikey RegistrationAuth
// @in header
// @name Authorization

// @securityDefinitions.apikey AccountAuth
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

	h.initRegistrationRoutes(v1)
	h.initAccountRoutes(v1)
	h.initWebhookRoutes(v1)
}
