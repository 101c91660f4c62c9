package handlers

import (
	"context"
	"net/http"

	"perfume-store/internal/models"

	"github.com/gin-gonic/gin"
)

// AccountService определяет операции ленты уведомлений и профиля
type AccountService interface {
	Notifications(ctx context.Context, sessionID string) (models.NotificationsResponse, error)
	MarkNotificationRead(ctx context.Context, sessionID, id string) (models.NotificationsResponse, error)
	MarkAllNotificationsRead(ctx context.Context, sessionID string) (models.NotificationsResponse, error)
	ClearNotifications(ctx context.Context, sessionID string) (models.NotificationsResponse, error)
	Profile(ctx context.Context, sessionID string) (models.Profile, error)
	UpdateProfile(ctx context.Context, sessionID string, profile models.Profile) (models.Profile, error)
}

// AccountHandler содержит обработчики уведомлений и профиля
type AccountHandler struct {
	service AccountService
}

// NewAccountHandler создает новый экземпляр AccountHandler
func NewAccountHandler(service AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// Notifications возвращает ленту уведомлений, новые первыми
func (h *AccountHandler) Notifications(c *gin.Context) {
	feed, err := h.service.Notifications(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err, "Ошибка при получении уведомлений")
		return
	}
	c.JSON(http.StatusOK, feed)
}

// MarkRead отмечает уведомление прочитанным
func (h *AccountHandler) MarkRead(c *gin.Context) {
	feed, err := h.service.MarkNotificationRead(c.Request.Context(), sessionID(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "Ошибка при обновлении уведомления")
		return
	}
	c.JSON(http.StatusOK, feed)
}

// MarkAllRead отмечает все уведомления прочитанными
func (h *AccountHandler) MarkAllRead(c *gin.Context) {
	feed, err := h.service.MarkAllNotificationsRead(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err, "Ошибка при обновлении уведомлений")
		return
	}
	c.JSON(http.StatusOK, feed)
}

// Clear удаляет все уведомления
func (h *AccountHandler) Clear(c *gin.Context) {
	feed, err := h.service.ClearNotifications(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err, "Ошибка при очистке уведомлений")
		return
	}
	c.JSON(http.StatusOK, feed)
}

// Profile возвращает сохраненный профиль покупателя
func (h *AccountHandler) Profile(c *gin.Context) {
	profile, err := h.service.Profile(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err, "Ошибка при получении профиля")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile заменяет профиль покупателя
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var req models.Profile
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), sessionID(c), req)
	if err != nil {
		respondError(c, err, "Ошибка при сохранении профиля")
		return
	}
	c.JSON(http.StatusOK, profile)
}
