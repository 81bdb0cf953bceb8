package v1

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/barangay-connect/backend/internal/domain"
	"github.com/barangay-connect/backend/pkg/logger"
)

const webhookSecretHeader = "X-Webhook-Secret"

func (h *Handler) initWebhookRoutes(api *gin.RouterGroup) {
	webhooks := api.Group("/webhooks", h.webhookSecretMiddleware)
	webhooks.POST("/match-status", h.matchStatus)
}

func (h *Handler) webhookSecretMiddleware(c *gin.Context) {
	secret := h.config.Matching.WebhookSecret
	got := c.GetHeader(webhookSecretHeader)
	if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
		logger.Warn("webhook rejected", zap.String("ip", c.ClientIP()))
		errorResponseWithStatus(c, http.StatusUnauthorized, WebhookSecretInvalidCode)
		return
	}
}

type matchStatusInput struct {
	MatchID string `json:"match_id" binding:"required,max=128"`
	Status  string `json:"status" binding:"required,oneof=processed rejected failed"`
}

// @Summary Match status
// @Tags Webhooks
// @Description Receives a face match status from the matching backend and relays it to the waiting capture
// @ModuleID matchStatus
// @Accept  json
// @Param X-Webhook-Secret header string true "shared secret"
// @Param input body matchStatusInput true "status"
// @Success 202
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401 {object} ErrorStruct
// @Router /webhooks/match-status [post]
func (h *Handler) matchStatus(c *gin.Context) {
	var input matchStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	update := domain.MatchUpdate{MatchID: input.MatchID, Status: domain.MatchStatus(input.Status)}
	if err := h.services.MatchStatuses.Publish(c.Request.Context(), update); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.Status(http.StatusAccepted)
}
