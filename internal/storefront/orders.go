package storefront

import (
	"context"

	"perfume-store/internal/loyalty"
	"perfume-store/internal/models"
	"perfume-store/internal/notifications"

	"go.uber.org/zap"
)

// Orders возвращает заказы покупателя, новые первыми
func (s *Service) Orders(ctx context.Context, sessionID string) ([]models.Order, error) {
	return s.orders.ListBySession(ctx, sessionID)
}

// Loyalty считает баллы и уровень покупателя по его заказам
func (s *Service) Loyalty(ctx context.Context, sessionID string) (*models.LoyaltyStatus, error) {
	list, err := s.orders.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	status := loyalty.Compute(list)
	return &status, nil
}

// AdminOrders возвращает все заказы с необязательным фильтром по статусу
func (s *Service) AdminOrders(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	return s.orders.List(ctx, status)
}

// SetOrderStatus меняет статус заказа по таблице переходов и сообщает
// об этом покупателю в ленту уведомлений
func (s *Service) SetOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	order, err := s.orders.SetStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	if order.SessionID != "" {
		unlock := s.locks.lock(order.SessionID)
		defer unlock()

		if err := s.push(ctx, order.SessionID, notifications.OrderStatusChanged(*order, s.now())); err != nil {
			s.log.Warn("failed to notify customer about order status",
				zap.String("order_id", id),
				zap.Error(err),
			)
		}
	}
	return order, nil
}

// DeleteOrder удаляет заказ
func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	return s.orders.Delete(ctx, id)
}
