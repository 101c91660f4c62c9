package loyalty

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"perfume-store/internal/models"
)

func order(total int64, status models.OrderStatus) models.Order {
	return models.Order{Total: total, Status: status}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name         string
		orders       []models.Order
		wantSpent    int64
		wantPoints   int64
		wantTier     string
		wantNext     string
		wantToNext   int64
		wantProgress int
	}{
		{
			name:         "Нет заказов",
			wantTier:     "Бронза",
			wantNext:     "Серебро",
			wantToNext:   10000,
			wantProgress: 0,
		},
		{
			name:         "Половина пути до серебра",
			orders:       []models.Order{order(3000, models.StatusDelivered), order(2000, models.StatusPending)},
			wantSpent:    5000,
			wantPoints:   250,
			wantTier:     "Бронза",
			wantNext:     "Серебро",
			wantToNext:   5000,
			wantProgress: 50,
		},
		{
			name:         "Порог золота включается",
			orders:       []models.Order{order(30000, models.StatusShipped)},
			wantSpent:    30000,
			wantPoints:   1500,
			wantTier:     "Золото",
			wantNext:     "Платина",
			wantToNext:   20000,
			wantProgress: 0,
		},
		{
			name:         "Платина",
			orders:       []models.Order{order(49999, models.StatusDelivered), order(1, models.StatusDelivered)},
			wantSpent:    50000,
			wantPoints:   2500,
			wantTier:     "Платина",
			wantProgress: 100,
		},
		{
			name: "Отмененные и перенесенные заказы не учитываются",
			orders: []models.Order{
				order(12345, models.StatusDelivered),
				order(90000, models.StatusCancelled),
				{Total: 90000, Status: models.StatusDelivered, Imported: true},
			},
			wantSpent:    12345,
			wantPoints:   617,
			wantTier:     "Серебро",
			wantNext:     "Золото",
			wantToNext:   17655,
			wantProgress: 11,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.orders)

			assert.Equal(t, tt.wantSpent, got.TotalSpent)
			assert.Equal(t, tt.wantPoints, got.Points)
			assert.Equal(t, tt.wantTier, got.Tier)
			assert.Equal(t, tt.wantNext, got.NextTier)
			assert.Equal(t, tt.wantToNext, got.ToNextTier)
			assert.Equal(t, tt.wantProgress, got.Progress)
		})
	}
}

func TestComputeBenefits(t *testing.T) {
	got := Compute([]models.Order{order(31000, models.StatusDelivered)})

	assert.Equal(t, 1, got.OrderCount)
	assert.Equal(t, 15, got.TierDiscount)
	assert.Equal(t, []models.LoyaltyBenefit{
		{Text: "Бонусы за каждую покупку", Active: true},
		{Text: "Персональная скидка уровня", Active: true},
		{Text: "Бесплатная доставка", Active: true},
		{Text: "Ранний доступ к акциям", Active: true},
		{Text: "Персональный менеджер", Active: false},
	}, got.Benefits)
}
