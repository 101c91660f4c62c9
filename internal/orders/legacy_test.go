package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perfume-store/internal/models"
)

func TestFromLegacy(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	item := models.OrderItem{ID: 1, Name: "Chanel No. 5", Price: 2500, Quantity: 2}

	tests := []struct {
		name    string
		order   models.Order
		wantErr error
	}{
		{
			name:  "Итог сходится",
			order: models.Order{ID: "ORD-1", Status: models.StatusDelivered, Items: models.OrderItems{item}, DeliveryFee: 500, Total: 5500},
		},
		{
			name:    "Итог занижен",
			order:   models.Order{ID: "ORD-1", Status: models.StatusDelivered, Items: models.OrderItems{item}, Total: 1},
			wantErr: ErrInvalidImport,
		},
		{
			name:    "Подытог не совпадает с позициями",
			order:   models.Order{ID: "ORD-1", Items: models.OrderItems{item}, Subtotal: 100, Total: 5000},
			wantErr: ErrInvalidImport,
		},
		{
			name:    "Скидка больше подытога",
			order:   models.Order{ID: "ORD-1", Items: models.OrderItems{item}, Discount: 6000, Total: -1000},
			wantErr: ErrInvalidImport,
		},
		{
			name:    "Отрицательная цена",
			order:   models.Order{ID: "ORD-1", Items: models.OrderItems{{ID: 1, Price: -2500, Quantity: 2}}, Total: -5000},
			wantErr: ErrInvalidImport,
		},
		{
			name:    "Количество сверх предела",
			order:   models.Order{ID: "ORD-1", Items: models.OrderItems{{ID: 1, Price: 1, Quantity: 1 << 40}}, Total: 1 << 40},
			wantErr: ErrInvalidImport,
		},
		{
			name:    "Без позиций",
			order:   models.Order{ID: "ORD-1", Total: 0},
			wantErr: ErrInvalidImport,
		},
		{
			name:    "Без номера",
			order:   models.Order{Items: models.OrderItems{item}, Total: 5000},
			wantErr: ErrInvalidImport,
		},
		{
			name:    "Неизвестный статус",
			order:   models.Order{ID: "ORD-1", Status: "lost", Items: models.OrderItems{item}, Total: 5000},
			wantErr: ErrUnknownStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromLegacy("s1", tt.order, now)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Imported)
			assert.Equal(t, "s1", got.SessionID)
			assert.Equal(t, int64(5000), got.Subtotal)
			assert.Equal(t, models.StatusDelivered, got.Status)
			assert.Equal(t, now, got.CreatedAt)
			assert.Equal(t, ImportedID("s1", "ORD-1"), got.ID)
			assert.Contains(t, got.Comment, "ORD-1")
		})
	}
}

func TestImportedIDIsScopedToSession(t *testing.T) {
	a := ImportedID("s1", "ORD-1")

	assert.Equal(t, a, ImportedID("s1", "ORD-1"))
	assert.NotEqual(t, a, ImportedID("s2", "ORD-1"))
	assert.Regexp(t, `^IMP-[0-9A-F]{16}$`, a)
}
