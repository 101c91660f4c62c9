package handlers

import (
	"context"
	"net/http"

	"perfume-store/internal/models"

	"github.com/gin-gonic/gin"
)

// CollectionsService определяет операции избранного и сравнения
type CollectionsService interface {
	Wishlist(ctx context.Context, sessionID string) ([]models.Product, error)
	ToggleWishlist(ctx context.Context, sessionID string, productID int64) (*models.ToggleResponse, error)
	Comparison(ctx context.Context, sessionID string) (*models.ComparisonResponse, error)
	ToggleComparison(ctx context.Context, sessionID string, productID int64) (*models.ToggleResponse, error)
}

// CollectionsHandler содержит обработчики избранного и сравнения
type CollectionsHandler struct {
	service CollectionsService
}

// NewCollectionsHandler создает новый экземпляр CollectionsHandler
func NewCollectionsHandler(service CollectionsService) *CollectionsHandler {
	return &CollectionsHandler{service: service}
}

// Wishlist возвращает избранные ароматы
func (h *CollectionsHandler) Wishlist(c *gin.Context) {
	products, err := h.service.Wishlist(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err, "Ошибка при получении избранного")
		return
	}
	c.JSON(http.StatusOK, products)
}

// ToggleWishlist добавляет аромат в избранное или убирает его
func (h *CollectionsHandler) ToggleWishlist(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.ToggleWishlist(c.Request.Context(), sessionID(c), id)
	if err != nil {
		respondError(c, err, "Ошибка при изменении избранного")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Comparison возвращает ароматы в сравнении и их общие ноты
func (h *CollectionsHandler) Comparison(c *gin.Context) {
	resp, err := h.service.Comparison(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err, "Ошибка при получении сравнения")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ToggleComparison добавляет аромат в сравнение или убирает его.
// Пятый аромат не добавляется.
func (h *CollectionsHandler) ToggleComparison(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.ToggleComparison(c.Request.Context(), sessionID(c), id)
	if err != nil {
		respondError(c, err, "Ошибка при изменении сравнения")
		return
	}
	c.JSON(http.StatusOK, resp)
}
