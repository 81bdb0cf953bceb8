package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/barangay-connect/backend/pkg/logger"
)

const (
	authorizationHeader = "Authorization"
	registrationCtx     = "registrationId"
	accountCtx          = "accountId"
)

func (h *Handler) registrationIdentityMiddleware(c *gin.Context) {
	token, err := parseAuthHeader(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, getErrorStruct(RegistrationTokenInvalidCode))
		return
	}

	id, err := h.tokenManager.ParseRegistrationToken(token)
	if err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) {
			logger.Warn("parse auth header failed", zap.Error(err))
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, getErrorStruct(RegistrationTokenInvalidCode))
		return
	}

	c.Set(registrationCtx, id)
}

func (h *Handler) accountIdentityMiddleware(c *gin.Context) {
	token, err := parseAuthHeader(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	id, err := h.tokenManager.Parse(token)
	if err != nil {
		logger.Debug("parse access token failed", zap.Error(err))
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	c.Set(accountCtx, id)
}

func parseAuthHeader(c *gin.Context) (string, error) {
	header := c.GetHeader(authorizationHeader)
	if header == "" {
		return "", errors.New("empty auth header")
	}

	headerParts := strings.Split(header, " ")
	if len(headerParts) != 2 || headerParts[0] != "Bearer" {
		return "", errors.New("invalid auth header")
	}

	if len(headerParts[1]) == 0 {
		return "", errors.New("token is empty")
	}

	return headerParts[1], nil
}

func getRegistrationID(c *gin.Context) (uuid.UUID, error) {
	id, ok := c.Get(registrationCtx)
	if !ok {
		return uuid.Nil, errors.New("registration id not found")
	}

	registrationID, ok := id.(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("registration id has unexpected type")
	}

	return registrationID, nil
}
