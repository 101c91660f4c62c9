package orders

import (
	"context"
	"fmt"
	"sync"

	"perfume-store/internal/models"
)

// MemoryRepository хранит заказы в памяти, новые в начале списка
type MemoryRepository struct {
	mu     sync.RWMutex
	orders []models.Order
}

// NewMemoryRepository создает пустое хранилище заказов
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// InsertOrder добавляет заказ в начало списка
func (r *MemoryRepository) InsertOrder(ctx context.Context, order models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, o := range r.orders {
		if o.ID == order.ID {
			return fmt.Errorf("order %s: %w", order.ID, ErrDuplicateOrder)
		}
	}

	order.Items = append(models.OrderItems(nil), order.Items...)
	r.orders = append([]models.Order{order}, r.orders...)
	return nil
}

// GetOrder возвращает копию заказа
func (r *MemoryRepository) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("order %s: %w", id, ErrOrderNotFound)
	}
	o := r.orders[i]
	return &o, nil
}

// ListOrders возвращает заказы, подходящие под фильтр
func (r *MemoryRepository) ListOrders(ctx context.Context, filter ListFilter) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if filter.SessionID != "" && o.SessionID != filter.SessionID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

// UpdateOrderStatus меняет статус, если он не изменился с момента чтения
func (r *MemoryRepository) UpdateOrderStatus(ctx context.Context, id string, from, to models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("order %s: %w", id, ErrOrderNotFound)
	}
	if r.orders[i].Status != from {
		return fmt.Errorf("order %s is %s, not %s: %w", id, r.orders[i].Status, from, ErrStatusConflict)
	}
	r.orders[i].Status = to
	return nil
}

// DeleteOrder удаляет заказ
func (r *MemoryRepository) DeleteOrder(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("order %s: %w", id, ErrOrderNotFound)
	}
	r.orders = append(r.orders[:i:i], r.orders[i+1:]...)
	return nil
}

func (r *MemoryRepository) indexOf(id string) int {
	for i, o := range r.orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}
