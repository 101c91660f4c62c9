package checkout

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"perfume-store/internal/models"
	"perfume-store/internal/utils"
)

// Step - шаг мастера оформления заказа
type Step string

// Шаги мастера
const (
	StepContact      Step = "contact"
	StepDelivery     Step = "delivery"
	StepConfirmation Step = "confirmation"
)

// Ошибки завершения заказа
var (
	ErrNotReady  = errors.New("checkout is not at confirmation step")
	ErrEmptyCart = errors.New("cart is empty")
)

// Promo - примененный промокод
type Promo struct {
	Code    string
	Percent int
}

// Wizard - линейный мастер: контакты → доставка → подтверждение.
// Ошибки валидации не являются ошибками: переход просто не выполняется.
type Wizard struct {
	step         Step
	contact      models.ContactInfo
	delivery     models.DeliveryInfo
	promo        *Promo
	invalidPromo bool
}

// NewWizard открывает мастер на первом шаге с данными из профиля
func NewWizard(profile models.Profile) *Wizard {
	w := &Wizard{}
	w.reset(profile)
	return w
}

func (w *Wizard) reset(profile models.Profile) {
	w.step = StepContact
	w.contact = models.ContactInfo{
		Name:  profile.Name,
		Phone: profile.Phone,
		Email: profile.Email,
	}
	w.delivery = models.DeliveryInfo{
		Method:        models.DeliveryCourier,
		Address:       profile.Address,
		PaymentMethod: models.PaymentCard,
	}
	w.promo = nil
	w.invalidPromo = false
}

// Step возвращает текущий шаг
func (w *Wizard) Step() Step { return w.step }

// Contact возвращает введенные контакты
func (w *Wizard) Contact() models.ContactInfo { return w.contact }

// Delivery возвращает введенные данные доставки
func (w *Wizard) Delivery() models.DeliveryInfo { return w.delivery }

// Promo возвращает примененный промокод или nil
func (w *Wizard) Promo() *Promo {
	if w.promo == nil {
		return nil
	}
	p := *w.promo
	return &p
}

// InvalidPromo сообщает, что последний введенный промокод не найден
func (w *Wizard) InvalidPromo() bool { return w.invalidPromo }

// SetContact сохраняет данные первого шага
func (w *Wizard) SetContact(c models.ContactInfo) {
	w.contact = c
}

// SetDelivery сохраняет данные второго шага
func (w *Wizard) SetDelivery(d models.DeliveryInfo) {
	if d.PaymentMethod == "" {
		d.PaymentMethod = models.PaymentCard
	}
	w.delivery = d
}

// Missing возвращает незаполненные поля текущего шага
func (w *Wizard) Missing() []string {
	switch w.step {
	case StepContact:
		return ValidateContact(w.contact)
	case StepDelivery:
		return ValidateDelivery(w.delivery)
	default:
		return []string{}
	}
}

// CanAdvance сообщает, доступна ли кнопка «Далее»
func (w *Wizard) CanAdvance() bool {
	if w.step != StepContact && w.step != StepDelivery {
		return false
	}
	return len(w.Missing()) == 0
}

// Next переходит на следующий шаг, если текущий заполнен.
// Возвращает незаполненные поля; при непустом списке шаг не меняется.
func (w *Wizard) Next() []string {
	missing := w.Missing()
	if len(missing) > 0 {
		return missing
	}

	switch w.step {
	case StepContact:
		w.step = StepDelivery
	case StepDelivery:
		w.step = StepConfirmation
	}
	return missing
}

// Back возвращает на предыдущий шаг, введенные данные сохраняются
func (w *Wizard) Back() {
	switch w.step {
	case StepDelivery:
		w.step = StepContact
	case StepConfirmation:
		w.step = StepDelivery
	}
}

// ApplyPromo применяет промокод. Известный код заменяет предыдущий,
// неизвестный снимает примененный и выставляет признак ошибки.
func (w *Wizard) ApplyPromo(code string, pricing Pricing) bool {
	percent, ok := pricing.LookupPromo(code)
	if !ok {
		w.promo = nil
		w.invalidPromo = true
		return false
	}
	w.promo = &Promo{Code: strings.ToUpper(strings.TrimSpace(code)), Percent: percent}
	w.invalidPromo = false
	return true
}

// Quote считает сумму для текущего состояния мастера
func (w *Wizard) Quote(subtotal int64, pricing Pricing) models.Quote {
	percent := 0
	if w.promo != nil {
		percent = w.promo.Percent
	}
	return pricing.Quote(subtotal, w.delivery.Method, percent)
}

// View собирает ответ API о состоянии мастера
func (w *Wizard) View(cart models.CartView, pricing Pricing) models.CheckoutResponse {
	resp := models.CheckoutResponse{
		Step:         string(w.step),
		Contact:      w.contact,
		Delivery:     w.delivery,
		InvalidPromo: w.invalidPromo,
		Missing:      w.Missing(),
		CanAdvance:   w.CanAdvance(),
		Cart:         cart,
		Quote:        w.Quote(cart.Subtotal, pricing),
	}
	if w.promo != nil {
		resp.PromoCode = w.promo.Code
		resp.PromoPercent = w.promo.Percent
	}
	return resp
}

// CompleteInput - данные, необходимые для оформления заказа
type CompleteInput struct {
	SessionID string
	Cart      models.CartView
	Pricing   Pricing
	Now       time.Time
	// Profile используется для сброса мастера после оформления
	Profile models.Profile
}

// Complete оформляет заказ из текущей корзины и возвращает мастер на первый шаг.
// Итоговая сумма считается один раз и больше не пересчитывается.
func (w *Wizard) Complete(in CompleteInput) (models.Order, error) {
	if w.step != StepConfirmation {
		return models.Order{}, fmt.Errorf("step %s: %w", w.step, ErrNotReady)
	}
	if len(ValidateContact(w.contact)) > 0 || len(ValidateDelivery(w.delivery)) > 0 {
		return models.Order{}, ErrNotReady
	}
	if len(in.Cart.Items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	items := make(models.OrderItems, 0, len(in.Cart.Items))
	for _, item := range in.Cart.Items {
		items = append(items, models.OrderItem{
			ID:       item.ID,
			Name:     item.Name,
			Brand:    item.Brand,
			Price:    item.Price,
			Quantity: item.Quantity,
			Image:    item.Image,
		})
	}

	quote := w.Quote(in.Cart.Subtotal, in.Pricing)
	order := models.Order{
		ID:        NewOrderID(in.Now),
		SessionID: in.SessionID,
		CreatedAt: in.Now,
		Status:    models.StatusPending,
		Customer: models.Customer{
			Name:    strings.TrimSpace(w.contact.Name),
			Email:   strings.TrimSpace(w.contact.Email),
			Phone:   strings.TrimSpace(w.contact.Phone),
			Address: shippingAddress(w.delivery),
		},
		Items:          items,
		Subtotal:       quote.Subtotal,
		Discount:       quote.Discount,
		DeliveryMethod: w.delivery.Method,
		DeliveryFee:    quote.DeliveryFee,
		Total:          quote.Total,
		PaymentMethod:  w.delivery.PaymentMethod,
		Comment:        w.delivery.Comment,
	}
	if w.promo != nil {
		order.PromoCode = w.promo.Code
	}

	w.reset(in.Profile)
	return order, nil
}

// NewOrderID формирует номер заказа вида ORD-20260115-143000-ABCD
func NewOrderID(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102-150405"), strings.ToUpper(utils.RandomString(4)))
}

func shippingAddress(d models.DeliveryInfo) string {
	if d.Method == models.DeliveryPickup {
		return "Самовывоз"
	}
	parts := make([]string, 0, 3)
	for _, part := range []string{d.PostalCode, d.City, d.Address} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}
