package models

import (
	"encoding/json"
	"time"
)

// CartLine - позиция корзины: id аромата и количество
type CartLine struct {
	ProductID int64 `json:"id"`
	Quantity  int   `json:"quantity"`
}

// CartItem - позиция корзины с актуальной ценой из каталога
type CartItem struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Brand     string `json:"brand"`
	Price     int64  `json:"price"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
	LineTotal int64  `json:"lineTotal"`
}

// CartView - корзина с производными суммами
type CartView struct {
	Items          []CartItem `json:"items"`
	Missing        []int64    `json:"missing,omitempty"`
	Subtotal       int64      `json:"subtotal"`
	TotalItemCount int        `json:"totalItemCount"`
}

// CartResponse - корзина и событие, которое вернула мутация
type CartResponse struct {
	Cart  CartView `json:"cart"`
	Toast *Toast   `json:"toast,omitempty"`
}

// AddToCartRequest представляет запрос на добавление аромата в корзину
type AddToCartRequest struct {
	ProductID int64 `json:"productId" binding:"required,gt=0"`
}

// SetQuantityRequest представляет запрос на изменение количества
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,max=99"`
}

// Profile - данные покупателя для автозаполнения оформления заказа
type Profile struct {
	Name    string `json:"name"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ToggleResponse - результат переключения избранного или сравнения
type ToggleResponse struct {
	IDs   []int64 `json:"ids"`
	Added bool    `json:"added"`
	Toast *Toast  `json:"toast,omitempty"`
}

// ComparisonResponse - товары в сравнении и общие ноты
type ComparisonResponse struct {
	Products    []Product `json:"products"`
	SharedNotes []string  `json:"sharedNotes"`
}

// SessionResponse - выданный токен покупательской сессии
type SessionResponse struct {
	SessionID string    `json:"sessionId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ImportStateRequest - снимок localStorage старой версии витрины.
// Ключи: cart, wishlist, comparison, recentlyViewed, notifications, profile.
type ImportStateRequest map[string]json.RawMessage

// ContactInfo - первый шаг оформления заказа
type ContactInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// DeliveryInfo - второй шаг оформления заказа
type DeliveryInfo struct {
	Method        string `json:"deliveryMethod"`
	City          string `json:"city"`
	Address       string `json:"address"`
	PostalCode    string `json:"postalCode"`
	Comment       string `json:"comment"`
	PaymentMethod string `json:"paymentMethod"`
}

// PromoRequest представляет запрос на применение промокода
type PromoRequest struct {
	Code string `json:"code"`
}

// Quote - расчет суммы заказа
type Quote struct {
	Subtotal    int64 `json:"subtotal"`
	Discount    int64 `json:"discount"`
	DeliveryFee int64 `json:"deliveryFee"`
	Total       int64 `json:"total"`
}

// CheckoutResponse - состояние мастера оформления заказа
type CheckoutResponse struct {
	Step         string       `json:"step"`
	Contact      ContactInfo  `json:"contact"`
	Delivery     DeliveryInfo `json:"delivery"`
	PromoCode    string       `json:"promoCode,omitempty"`
	PromoPercent int          `json:"promoPercent,omitempty"`
	InvalidPromo bool         `json:"invalidPromo"`
	Missing      []string     `json:"missing"`
	CanAdvance   bool         `json:"canAdvance"`
	Cart         CartView     `json:"cart"`
	Quote        Quote        `json:"quote"`
}

// CompleteCheckoutResponse - созданный заказ и уведомление о нем
type CompleteCheckoutResponse struct {
	Order        Order        `json:"order"`
	Notification Notification `json:"notification"`
}

// SessionSnapshot - все состояние покупателя одним ответом
type SessionSnapshot struct {
	Cart           CartView              `json:"cart"`
	Wishlist       []int64               `json:"wishlist"`
	Comparison     []int64               `json:"comparison"`
	RecentlyViewed []int64               `json:"recentlyViewed"`
	Notifications  NotificationsResponse `json:"notifications"`
	Profile        Profile               `json:"profile"`
	Orders         []Order               `json:"orders"`
}

// ImportStateResponse - результат переноса состояния старой витрины
type ImportStateResponse struct {
	Imported []string          `json:"imported"`
	Orders   int               `json:"orders"`
	Failed   map[string]string `json:"failed,omitempty"`
}
