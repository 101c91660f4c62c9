package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// OrderStatus - статус заказа
type OrderStatus string

// Статусы заказа
const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// Способы доставки
const (
	DeliveryCourier = "courier"
	DeliveryPickup  = "pickup"
)

// Способы оплаты
const (
	PaymentCard = "card"
	PaymentCash = "cash"
)

// Customer - данные покупателя, зафиксированные в момент оформления заказа
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Value сохраняет покупателя в JSONB-колонку
func (c Customer) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan читает покупателя из JSONB-колонки
func (c *Customer) Scan(src interface{}) error {
	return scanJSON(src, c)
}

// OrderItem - замороженная копия позиции корзины
type OrderItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Image    string `json:"image"`
}

// OrderItems хранится в одной JSONB-колонке
type OrderItems []OrderItem

// Value сохраняет позиции в JSONB-колонку
func (items OrderItems) Value() (driver.Value, error) {
	if items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(items)
}

// Scan читает позиции из JSONB-колонки
func (items *OrderItems) Scan(src interface{}) error {
	return scanJSON(src, items)
}

// Order представляет оформленный заказ
type Order struct {
	ID             string      `json:"id" db:"id"`
	SessionID      string      `json:"-" db:"session_id"`
	CreatedAt      time.Time   `json:"date" db:"created_at"`
	Status         OrderStatus `json:"status" db:"status"`
	Customer       Customer    `json:"customer" db:"customer"`
	Items          OrderItems  `json:"items" db:"items"`
	Subtotal       int64       `json:"subtotal" db:"subtotal"`
	Discount       int64       `json:"discount" db:"discount"`
	PromoCode      string      `json:"promoCode,omitempty" db:"promo_code"`
	DeliveryMethod string      `json:"deliveryMethod" db:"delivery_method"`
	DeliveryFee    int64       `json:"deliveryFee" db:"delivery_fee"`
	Total          int64       `json:"total" db:"total"`
	PaymentMethod  string      `json:"paymentMethod" db:"payment_method"`
	Comment        string      `json:"comment,omitempty" db:"comment"`
	// Imported - заказ перенесен со старой витрины, статус не меняется
	Imported bool `json:"imported,omitempty" db:"imported"`
}

// UpdateOrderStatusRequest представляет запрос на смену статуса заказа
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required,oneof=pending processing shipped delivered cancelled"`
}

// OrderListQuery представляет фильтр списка заказов в админке
type OrderListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending processing shipped delivered cancelled"`
}

func scanJSON(src interface{}, dst interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	case nil:
		return nil
	default:
		return errors.New("unsupported type for JSON column")
	}
}

// LoyaltyBenefit - привилегия уровня и признак, что она уже доступна
type LoyaltyBenefit struct {
	Text   string `json:"text"`
	Active bool   `json:"active"`
}

// LoyaltyStatus - баллы и уровень покупателя. Progress - процент пути
// до следующего уровня, на последнем уровне 100.
type LoyaltyStatus struct {
	TotalSpent   int64            `json:"totalSpent"`
	OrderCount   int              `json:"orderCount"`
	Points       int64            `json:"points"`
	Tier         string           `json:"tier"`
	TierDiscount int              `json:"tierDiscount"`
	NextTier     string           `json:"nextTier,omitempty"`
	ToNextTier   int64            `json:"toNextTier,omitempty"`
	Progress     int              `json:"progress"`
	Benefits     []LoyaltyBenefit `json:"benefits"`
}
