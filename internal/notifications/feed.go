// Package notifications реализует ленту уведомлений покупателя
package notifications

import (
	"errors"
	"fmt"
	"time"

	"perfume-store/internal/models"

	"github.com/google/uuid"
)

// ErrNotificationNotFound - уведомления с таким id нет в ленте
var ErrNotificationNotFound = errors.New("notification not found")

// Push добавляет уведомление в начало ленты непрочитанным
func Push(feed []models.Notification, n models.Notification) []models.Notification {
	n.Read = false
	out := make([]models.Notification, 0, len(feed)+1)
	out = append(out, n)
	return append(out, feed...)
}

// MarkRead помечает уведомление прочитанным. Обратного перехода нет.
func MarkRead(feed []models.Notification, id string) ([]models.Notification, error) {
	out := make([]models.Notification, len(feed))
	copy(out, feed)
	for i := range out {
		if out[i].ID == id {
			out[i].Read = true
			return out, nil
		}
	}
	return feed, fmt.Errorf("notification %s: %w", id, ErrNotificationNotFound)
}

// MarkAllRead помечает всю ленту прочитанной
func MarkAllRead(feed []models.Notification) []models.Notification {
	out := make([]models.Notification, len(feed))
	copy(out, feed)
	for i := range out {
		out[i].Read = true
	}
	return out
}

// ClearAll очищает ленту
func ClearAll() []models.Notification {
	return []models.Notification{}
}

// UnreadCount считается по ленте при каждом чтении
func UnreadCount(feed []models.Notification) int {
	n := 0
	for _, item := range feed {
		if !item.Read {
			n++
		}
	}
	return n
}

// View собирает ответ API
func View(feed []models.Notification) models.NotificationsResponse {
	if feed == nil {
		feed = []models.Notification{}
	}
	return models.NotificationsResponse{Items: feed, Unread: UnreadCount(feed)}
}

// OrderPlaced - уведомление об оформленном заказе
func OrderPlaced(order models.Order, now time.Time) models.Notification {
	return models.Notification{
		ID:          uuid.NewString(),
		Type:        models.NotificationOrder,
		Title:       "Заказ оформлен",
		Message:     fmt.Sprintf("Заказ %s на сумму %d ₽ принят в обработку", order.ID, order.Total),
		Date:        now,
		ActionLabel: "Мои заказы",
		ActionURL:   "/orders",
	}
}

var statusTitles = map[models.OrderStatus]string{
	models.StatusPending:    "Заказ принят",
	models.StatusProcessing: "Заказ собирается",
	models.StatusShipped:    "Заказ отправлен",
	models.StatusDelivered:  "Заказ доставлен",
	models.StatusCancelled:  "Заказ отменен",
}

// OrderStatusChanged - уведомление о смене статуса заказа
func OrderStatusChanged(order models.Order, now time.Time) models.Notification {
	kind := models.NotificationOrder
	if order.Status == models.StatusShipped || order.Status == models.StatusDelivered {
		kind = models.NotificationDelivery
	}
	title, ok := statusTitles[order.Status]
	if !ok {
		title = "Статус заказа изменен"
	}
	return models.Notification{
		ID:          uuid.NewString(),
		Type:        kind,
		Title:       title,
		Message:     fmt.Sprintf("Заказ %s: %s", order.ID, title),
		Date:        now,
		ActionLabel: "Мои заказы",
		ActionURL:   "/orders",
	}
}
