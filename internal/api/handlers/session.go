package handlers

import (
	"context"
	"net/http"
	"time"

	"perfume-store/internal/models"
	"perfume-store/internal/token"

	"github.com/gin-gonic/gin"
)

// StateService определяет чтение и перенос состояния покупателя
type StateService interface {
	Snapshot(ctx context.Context, sessionID string) (*models.SessionSnapshot, error)
	ImportLegacy(ctx context.Context, sessionID string, req models.ImportStateRequest) (*models.ImportStateResponse, error)
}

// SessionHandler выдает токены покупательских сессий
type SessionHandler struct {
	maker    token.Maker
	lifetime time.Duration
	service  StateService
}

// NewSessionHandler создает новый экземпляр SessionHandler
func NewSessionHandler(maker token.Maker, lifetime time.Duration, service StateService) *SessionHandler {
	return &SessionHandler{maker: maker, lifetime: lifetime, service: service}
}

// Create начинает новую сессию
func (h *SessionHandler) Create(c *gin.Context) {
	tokenString, payload, err := h.maker.CreateToken(token.NewSessionID(), h.lifetime)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Ошибка при создании сессии: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, models.SessionResponse{
		SessionID: payload.SessionID,
		Token:     tokenString,
		ExpiresAt: payload.ExpiresAt,
	})
}

// Snapshot возвращает все состояние сессии
func (h *SessionHandler) Snapshot(c *gin.Context) {
	snapshot, err := h.service.Snapshot(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err, "Ошибка при загрузке сессии")
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// Import переносит состояние из localStorage старой витрины
func (h *SessionHandler) Import(c *gin.Context) {
	var req models.ImportStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.service.ImportLegacy(c.Request.Context(), sessionID(c), req)
	if err != nil {
		respondError(c, err, "Ошибка при переносе состояния")
		return
	}
	c.JSON(http.StatusOK, resp)
}
