package handlers

import (
	"context"
	"net/http"

	"perfume-store/internal/models"

	"github.com/gin-gonic/gin"
)

// CheckoutService определяет шаги мастера оформления заказа
type CheckoutService interface {
	Checkout(ctx context.Context, sessionID string) (*models.CheckoutResponse, error)
	SetCheckoutContact(ctx context.Context, sessionID string, c models.ContactInfo) (*models.CheckoutResponse, error)
	SetCheckoutDelivery(ctx context.Context, sessionID string, d models.DeliveryInfo) (*models.CheckoutResponse, error)
	CheckoutNext(ctx context.Context, sessionID string) (*models.CheckoutResponse, error)
	CheckoutBack(ctx context.Context, sessionID string) (*models.CheckoutResponse, error)
	ApplyPromo(ctx context.Context, sessionID, code string) (*models.CheckoutResponse, error)
	AbandonCheckout(ctx context.Context, sessionID string)
	CompleteCheckout(ctx context.Context, sessionID string) (*models.CompleteCheckoutResponse, error)
}

// CheckoutHandler содержит обработчики оформления заказа.
// Незаполненные поля не считаются ошибкой: они возвращаются в поле missing.
type CheckoutHandler struct {
	service CheckoutService
}

// NewCheckoutHandler создает новый экземпляр CheckoutHandler
func NewCheckoutHandler(service CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// Get возвращает текущее состояние мастера
func (h *CheckoutHandler) Get(c *gin.Context) {
	h.respond(c, func(ctx context.Context, sid string) (*models.CheckoutResponse, error) {
		return h.service.Checkout(ctx, sid)
	})
}

// SetContact сохраняет данные первого шага
func (h *CheckoutHandler) SetContact(c *gin.Context) {
	var req models.ContactInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.respond(c, func(ctx context.Context, sid string) (*models.CheckoutResponse, error) {
		return h.service.SetCheckoutContact(ctx, sid, req)
	})
}

// SetDelivery сохраняет данные второго шага
func (h *CheckoutHandler) SetDelivery(c *gin.Context) {
	var req models.DeliveryInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.respond(c, func(ctx context.Context, sid string) (*models.CheckoutResponse, error) {
		return h.service.SetCheckoutDelivery(ctx, sid, req)
	})
}

// Next переходит на следующий шаг, если текущий заполнен
func (h *CheckoutHandler) Next(c *gin.Context) {
	h.respond(c, func(ctx context.Context, sid string) (*models.CheckoutResponse, error) {
		return h.service.CheckoutNext(ctx, sid)
	})
}

// Back возвращает на предыдущий шаг
func (h *CheckoutHandler) Back(c *gin.Context) {
	h.respond(c, func(ctx context.Context, sid string) (*models.CheckoutResponse, error) {
		return h.service.CheckoutBack(ctx, sid)
	})
}

// ApplyPromo применяет промокод
func (h *CheckoutHandler) ApplyPromo(c *gin.Context) {
	var req models.PromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.respond(c, func(ctx context.Context, sid string) (*models.CheckoutResponse, error) {
		return h.service.ApplyPromo(ctx, sid, req.Code)
	})
}

// Abandon закрывает мастер. Корзина остается.
func (h *CheckoutHandler) Abandon(c *gin.Context) {
	h.service.AbandonCheckout(c.Request.Context(), sessionID(c))
	c.Status(http.StatusNoContent)
}

// Complete оформляет заказ
func (h *CheckoutHandler) Complete(c *gin.Context) {
	resp, err := h.service.CompleteCheckout(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err, "Ошибка при оформлении заказа")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CheckoutHandler) respond(c *gin.Context, op func(ctx context.Context, sid string) (*models.CheckoutResponse, error)) {
	resp, err := op(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err, "Ошибка оформления заказа")
		return
	}
	c.JSON(http.StatusOK, resp)
}
