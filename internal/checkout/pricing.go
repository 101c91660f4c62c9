package checkout

import (
	"math"
	"strings"

	"perfume-store/internal/config"
	"perfume-store/internal/models"
)

// Pricing - тарифы доставки и таблица промокодов
type Pricing struct {
	FreeDeliveryThreshold int64
	CourierFee            int64
	PickupFee             int64
	PromoCodes            map[string]int
}

// NewPricing создает тарифы из конфигурации
func NewPricing(cfg config.CheckoutConfig) Pricing {
	codes := make(map[string]int, len(cfg.PromoCodes))
	for code, percent := range cfg.PromoCodes {
		codes[strings.ToUpper(code)] = percent
	}
	return Pricing{
		FreeDeliveryThreshold: cfg.FreeDeliveryThreshold,
		CourierFee:            cfg.CourierFee,
		PickupFee:             cfg.PickupFee,
		PromoCodes:            codes,
	}
}

// DeliveryFee: курьер бесплатно от порога, иначе фиксированный тариф;
// самовывоз всегда по своему тарифу.
func (p Pricing) DeliveryFee(method string, subtotal int64) int64 {
	if method == models.DeliveryPickup {
		return p.PickupFee
	}
	if subtotal >= p.FreeDeliveryThreshold {
		return 0
	}
	return p.CourierFee
}

// LookupPromo ищет процент скидки по промокоду без учета регистра
func (p Pricing) LookupPromo(code string) (int, bool) {
	percent, ok := p.PromoCodes[strings.ToUpper(strings.TrimSpace(code))]
	return percent, ok
}

// Discount = round(subtotal * percent / 100)
func Discount(subtotal int64, percent int) int64 {
	return int64(math.Round(float64(subtotal) * float64(percent) / 100))
}

// Quote - единственное определение итоговой суммы заказа
func (p Pricing) Quote(subtotal int64, method string, percent int) models.Quote {
	q := models.Quote{
		Subtotal:    subtotal,
		Discount:    Discount(subtotal, percent),
		DeliveryFee: p.DeliveryFee(method, subtotal),
	}
	q.Total = q.Subtotal - q.Discount + q.DeliveryFee
	return q
}
