// Package loyalty считает бонусы и уровень покупателя по его заказам.
package loyalty

import (
	"perfume-store/internal/models"
)

// PointsPercent - доля потраченной суммы, начисляемая баллами
const PointsPercent = 5

// Tier - уровень программы лояльности
type Tier struct {
	Name     string
	MinSpent int64
	Discount int
}

// Tiers упорядочены по порогу
var Tiers = []Tier{
	{Name: "Бронза", MinSpent: 0, Discount: 5},
	{Name: "Серебро", MinSpent: 10000, Discount: 10},
	{Name: "Золото", MinSpent: 30000, Discount: 15},
	{Name: "Платина", MinSpent: 50000, Discount: 20},
}

type benefit struct {
	text     string
	minSpent int64
}

var benefits = []benefit{
	{text: "Бонусы за каждую покупку"},
	{text: "Персональная скидка уровня"},
	{text: "Бесплатная доставка", minSpent: 10000},
	{text: "Ранний доступ к акциям", minSpent: 30000},
	{text: "Персональный менеджер", minSpent: 50000},
}

// Counts сообщает, учитывается ли заказ в сумме покупок: отмененные
// и перенесенные со старой витрины не учитываются
func Counts(o models.Order) bool {
	return o.Status != models.StatusCancelled && !o.Imported
}

// Compute считает баллы, уровень и прогресс до следующего уровня
func Compute(orders []models.Order) models.LoyaltyStatus {
	var status models.LoyaltyStatus
	for _, o := range orders {
		if !Counts(o) {
			continue
		}
		status.TotalSpent += o.Total
		status.OrderCount++
	}
	status.Points = status.TotalSpent * PointsPercent / 100

	current := 0
	for i, t := range Tiers {
		if status.TotalSpent >= t.MinSpent {
			current = i
		}
	}
	tier := Tiers[current]
	status.Tier = tier.Name
	status.TierDiscount = tier.Discount
	status.Progress = 100

	if current+1 < len(Tiers) {
		next := Tiers[current+1]
		status.NextTier = next.Name
		status.ToNextTier = next.MinSpent - status.TotalSpent
		status.Progress = int((status.TotalSpent - tier.MinSpent) * 100 / (next.MinSpent - tier.MinSpent))
	}

	status.Benefits = make([]models.LoyaltyBenefit, 0, len(benefits))
	for _, b := range benefits {
		status.Benefits = append(status.Benefits, models.LoyaltyBenefit{
			Text:   b.text,
			Active: status.TotalSpent >= b.minSpent,
		})
	}
	return status
}
