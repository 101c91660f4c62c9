package handlers

import (
	"context"
	"net/http"
	"strconv"

	"perfume-store/internal/models"

	"github.com/gin-gonic/gin"
)

// OrdersService определяет операции с заказами
type OrdersService interface {
	Orders(ctx context.Context, sessionID string) ([]models.Order, error)
	Loyalty(ctx context.Context, sessionID string) (*models.LoyaltyStatus, error)
	AdminOrders(ctx context.Context, status models.OrderStatus) ([]models.Order, error)
	SetOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

// OrdersHandler содержит обработчики заказов покупателя и админки
type OrdersHandler struct {
	service OrdersService
}

// NewOrdersHandler создает новый экземпляр OrdersHandler
func NewOrdersHandler(service OrdersService) *OrdersHandler {
	return &OrdersHandler{service: service}
}

// SessionOrders возвращает заказы текущей сессии, новые первыми
func (h *OrdersHandler) SessionOrders(c *gin.Context) {
	list, err := h.service.Orders(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err, "Ошибка при получении заказов")
		return
	}
	c.JSON(http.StatusOK, list)
}

// Loyalty возвращает баллы и уровень покупателя
func (h *OrdersHandler) Loyalty(c *gin.Context) {
	status, err := h.service.Loyalty(c.Request.Context(), sessionID(c))
	if err != nil {
		respondError(c, err, "Ошибка при расчете бонусов")
		return
	}
	c.JSON(http.StatusOK, status)
}

// List возвращает все заказы с фильтром по статусу
func (h *OrdersHandler) List(c *gin.Context) {
	var query models.OrderListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Неверные параметры запроса: " + err.Error(),
		})
		return
	}

	list, err := h.service.AdminOrders(c.Request.Context(), models.OrderStatus(query.Status))
	if err != nil {
		respondError(c, err, "Ошибка при получении заказов")
		return
	}

	// Добавляем заголовок X-Total-Count
	c.Header("X-Total-Count", strconv.Itoa(len(list)))
	c.JSON(http.StatusOK, list)
}

// SetStatus меняет статус заказа по таблице переходов
func (h *OrdersHandler) SetStatus(c *gin.Context) {
	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := h.service.SetOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err, "Ошибка при смене статуса заказа")
		return
	}
	c.JSON(http.StatusOK, order)
}

// Delete удаляет заказ
func (h *OrdersHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Ошибка при удалении заказа")
		return
	}
	c.Status(http.StatusNoContent)
}
