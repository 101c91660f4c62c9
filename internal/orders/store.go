package orders

import (
	"context"
	"errors"
	"fmt"

	"perfume-store/internal/models"

	"go.uber.org/zap"
)

// Ошибки хранилища заказов
var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrStatusConflict = errors.New("order status changed concurrently")
	ErrDuplicateOrder = errors.New("order already exists")
)

// ListFilter - условия выборки заказов. Пустые поля не фильтруют.
type ListFilter struct {
	SessionID string
	Status    models.OrderStatus
}

// Repository - хранилище заказов. List возвращает заказы от новых к старым.
// UpdateStatus меняет статус только если текущий равен from,
// иначе возвращает ErrStatusConflict.
type Repository interface {
	InsertOrder(ctx context.Context, order models.Order) error
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	ListOrders(ctx context.Context, filter ListFilter) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, from, to models.OrderStatus) error
	DeleteOrder(ctx context.Context, id string) error
}

// Store - операции над заказами поверх репозитория
type Store struct {
	repo Repository
	log  *zap.Logger
}

// NewStore создает новый экземпляр Store
func NewStore(repo Repository, log *zap.Logger) *Store {
	return &Store{repo: repo, log: log}
}

// Create сохраняет новый заказ
func (s *Store) Create(ctx context.Context, order models.Order) error {
	if order.Status == "" {
		order.Status = models.StatusPending
	}
	if !ValidStatus(order.Status) {
		return fmt.Errorf("status %q: %w", order.Status, ErrUnknownStatus)
	}
	if err := s.repo.InsertOrder(ctx, order); err != nil {
		return fmt.Errorf("failed to create order %s: %w", order.ID, err)
	}
	s.log.Info("order created",
		zap.String("order_id", order.ID),
		zap.Int64("total", order.Total),
		zap.Int("items", len(order.Items)),
	)
	return nil
}

// Get возвращает заказ по номеру
func (s *Store) Get(ctx context.Context, id string) (*models.Order, error) {
	return s.repo.GetOrder(ctx, id)
}

// ListBySession возвращает заказы покупателя, новые первыми
func (s *Store) ListBySession(ctx context.Context, sessionID string) ([]models.Order, error) {
	return s.repo.ListOrders(ctx, ListFilter{SessionID: sessionID})
}

// List возвращает все заказы для админки
func (s *Store) List(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	if status != "" && !ValidStatus(status) {
		return nil, fmt.Errorf("status %q: %w", status, ErrUnknownStatus)
	}
	return s.repo.ListOrders(ctx, ListFilter{Status: status})
}

// SetStatus меняет статус по таблице переходов и возвращает обновленный заказ.
// Перенесенные заказы только для чтения.
func (s *Store) SetStatus(ctx context.Context, id string, to models.OrderStatus) (*models.Order, error) {
	if !ValidStatus(to) {
		return nil, fmt.Errorf("status %q: %w", to, ErrUnknownStatus)
	}
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Imported {
		return nil, fmt.Errorf("order %s: %w", id, ErrImportedOrder)
	}

	from := order.Status
	if err := checkTransition(from, to); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateOrderStatus(ctx, id, from, to); err != nil {
		return nil, err
	}

	s.log.Info("order status changed",
		zap.String("order_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)

	order.Status = to
	return order, nil
}

// Delete удаляет заказ (только админка)
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteOrder(ctx, id); err != nil {
		return err
	}
	s.log.Info("order deleted", zap.String("order_id", id))
	return nil
}
