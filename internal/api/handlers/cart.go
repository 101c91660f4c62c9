package handlers

import (
	"context"
	"net/http"

	"perfume-store/internal/models"

	"github.com/gin-gonic/gin"
)

// CartService определяет операции корзины
type CartService interface {
	Cart(ctx context.Context, sessionID string) (models.CartView, error)
	AddToCart(ctx context.Context, sessionID string, productID int64) (*models.CartResponse, error)
	SetCartQuantity(ctx context.Context, sessionID string, productID int64, qty int) (*models.CartResponse, error)
	RemoveFromCart(ctx context.Context, sessionID string, productID int64) (*models.CartResponse, error)
	ClearCart(ctx context.Context, sessionID string) (*models.CartResponse, error)
}

// CartHandler содержит обработчики корзины
type CartHandler struct {
	service CartService
}

// NewCartHandler создает новый экземпляр CartHandler
func NewCartHandler(service CartService) *CartHandler {
	return &CartHandler{service: service}
}

// Get возвращает корзину с актуальными ценами
func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.service.Cart(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err, "Ошибка при получении корзины")
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddItem добавляет аромат в корзину
func (h *CartHandler) AddItem(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.service.AddToCart(c.Request.Context(), sessionID(c), req.ProductID)
	if err != nil {
		respondError(c, err, "Ошибка при добавлении в корзину")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetQuantity задает количество позиции. Ноль и меньше удаляют позицию.
func (h *CartHandler) SetQuantity(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}

	var req models.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.service.SetCartQuantity(c.Request.Context(), sessionID(c), id, *req.Quantity)
	if err != nil {
		respondError(c, err, "Ошибка при изменении количества")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RemoveItem удаляет позицию из корзины
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.RemoveFromCart(c.Request.Context(), sessionID(c), id)
	if err != nil {
		respondError(c, err, "Ошибка при удалении из корзины")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Clear очищает корзину
func (h *CartHandler) Clear(c *gin.Context) {
	resp, err := h.service.ClearCart(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err, "Ошибка при очистке корзины")
		return
	}
	c.JSON(http.StatusOK, resp)
}
