package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"perfume-store/internal/db"
	"perfume-store/internal/models"
	"perfume-store/internal/orders"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

var orderColumns = []string{
	"id", "session_id", "created_at", "status", "customer", "items", "subtotal", "discount",
	"promo_code", "delivery_method", "delivery_fee", "total", "payment_method", "comment",
	"imported",
}

// uniqueViolation - код ошибки Postgres при нарушении уникальности
const uniqueViolation = "23505"

// OrderQueries содержит методы запросов для работы с заказами
type OrderQueries struct {
	db *db.Database
	sq squirrel.StatementBuilderType
}

// NewOrderQueries создает новый экземпляр OrderQueries
func NewOrderQueries(db *db.Database) *OrderQueries {
	return &OrderQueries{
		db: db,
		sq: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).RunWith(db),
	}
}

// InsertOrder сохраняет оформленный заказ
func (q *OrderQueries) InsertOrder(ctx context.Context, order models.Order) error {
	query := q.sq.
		Insert("orders").
		Columns(orderColumns...).
		Values(
			order.ID, order.SessionID, order.CreatedAt, order.Status, order.Customer, order.Items,
			order.Subtotal, order.Discount, order.PromoCode, order.DeliveryMethod, order.DeliveryFee,
			order.Total, order.PaymentMethod, order.Comment, order.Imported,
		)

	qsql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := q.db.ExecContext(ctx, qsql, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("order %s: %w", order.ID, orders.ErrDuplicateOrder)
		}
		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}

// GetOrder возвращает заказ по номеру
func (q *OrderQueries) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	query := q.sq.
		Select(orderColumns...).
		From("orders").
		Where(squirrel.Eq{"id": id})

	qsql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var order models.Order
	if err := q.db.QueryRowxContext(ctx, qsql, args...).StructScan(&order); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order %s: %w", id, orders.ErrOrderNotFound)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &order, nil
}

// ListOrders возвращает заказы по фильтру, новые первыми
func (q *OrderQueries) ListOrders(ctx context.Context, filter orders.ListFilter) ([]models.Order, error) {
	query := q.sq.
		Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC", "id DESC")

	// Добавляем фильтры, если они указаны
	if filter.SessionID != "" {
		query = query.Where(squirrel.Eq{"session_id": filter.SessionID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}

	qsql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	list := []models.Order{}
	if err := q.db.SelectContext(ctx, &list, qsql, args...); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return list, nil
}

// UpdateOrderStatus меняет статус, только если он все еще равен from
func (q *OrderQueries) UpdateOrderStatus(ctx context.Context, id string, from, to models.OrderStatus) error {
	query := q.sq.
		Update("orders").
		Set("status", to).
		Where(squirrel.Eq{"id": id, "status": from})

	qsql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := q.db.ExecContext(ctx, qsql, args...)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	// Ни одна строка не обновлена: заказа нет или статус уже другой
	current, err := q.GetOrder(ctx, id)
	if err != nil {
		return err
	}
	return fmt.Errorf("order %s is %s, not %s: %w", id, current.Status, from, orders.ErrStatusConflict)
}

// DeleteOrder удаляет заказ
func (q *OrderQueries) DeleteOrder(ctx context.Context, id string) error {
	query := q.sq.
		Delete("orders").
		Where(squirrel.Eq{"id": id})

	qsql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := q.db.ExecContext(ctx, qsql, args...)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("order %s: %w", id, orders.ErrOrderNotFound)
	}

	return nil
}
