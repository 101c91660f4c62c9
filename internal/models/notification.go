package models

import "time"

// NotificationType - тип уведомления
type NotificationType string

// Типы уведомлений
const (
	NotificationOrder    NotificationType = "order"
	NotificationDiscount NotificationType = "discount"
	NotificationDelivery NotificationType = "delivery"
	NotificationReview   NotificationType = "review"
	NotificationWishlist NotificationType = "wishlist"
	NotificationGeneral  NotificationType = "general"
)

// Notification представляет уведомление в ленте покупателя
type Notification struct {
	ID          string           `json:"id"`
	Type        NotificationType `json:"type"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	Date        time.Time        `json:"date"`
	Read        bool             `json:"read"`
	ActionLabel string           `json:"actionLabel,omitempty"`
	ActionURL   string           `json:"actionUrl,omitempty"`
}

// NotificationsResponse представляет ленту уведомлений
type NotificationsResponse struct {
	Items  []Notification `json:"items"`
	Unread int            `json:"unread"`
}
