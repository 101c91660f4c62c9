package cart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perfume-store/internal/models"
)

func catalogLookup(prices map[int64]int64) Lookup {
	products := make([]models.Product, 0, len(prices))
	for id, price := range prices {
		products = append(products, models.Product{ID: id, Name: "Аромат", Price: price})
	}
	return IndexProducts(products)
}

func TestAddItem(t *testing.T) {
	lookup := catalogLookup(map[int64]int64{1: 12500, 2: 15800})

	lines, err := AddItem(nil, 1, lookup)
	require.NoError(t, err)
	lines, err = AddItem(lines, 2, lookup)
	require.NoError(t, err)
	lines, err = AddItem(lines, 1, lookup)
	require.NoError(t, err)

	assert.Equal(t, []models.CartLine{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}, lines)
}

func TestAddItemUnknownProduct(t *testing.T) {
	lookup := catalogLookup(map[int64]int64{1: 12500})
	lines := []models.CartLine{{ProductID: 1, Quantity: 1}}

	out, err := AddItem(lines, 99, lookup)

	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Equal(t, lines, out)
}

func TestSetQuantity(t *testing.T) {
	lookup := catalogLookup(map[int64]int64{1: 100, 2: 200})
	lines := []models.CartLine{{ProductID: 1, Quantity: 3}, {ProductID: 2, Quantity: 1}}

	t.Run("Абсолютное значение, а не приращение", func(t *testing.T) {
		out, err := SetQuantity(lines, 1, 5, lookup)
		require.NoError(t, err)
		assert.Equal(t, 5, out[0].Quantity)
		// Исходные позиции не изменились
		assert.Equal(t, 3, lines[0].Quantity)
	})

	t.Run("Ноль удаляет позицию", func(t *testing.T) {
		out, err := SetQuantity(lines, 1, 0, lookup)
		require.NoError(t, err)
		assert.Equal(t, []models.CartLine{{ProductID: 2, Quantity: 1}}, out)
	})

	t.Run("Отрицательное значение удаляет позицию", func(t *testing.T) {
		out, err := SetQuantity(lines, 2, -1, lookup)
		require.NoError(t, err)
		assert.Equal(t, []models.CartLine{{ProductID: 1, Quantity: 3}}, out)
	})

	t.Run("Неизвестный товар", func(t *testing.T) {
		_, err := SetQuantity(lines, 42, 1, lookup)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRemoveItem(t *testing.T) {
	lines := []models.CartLine{{ProductID: 1, Quantity: 3}, {ProductID: 2, Quantity: 1}}

	assert.Equal(t, []models.CartLine{{ProductID: 1, Quantity: 3}}, RemoveItem(lines, 2))
	assert.Equal(t, lines, RemoveItem(lines, 7))
}

func TestNormalize(t *testing.T) {
	lines := []models.CartLine{
		{ProductID: 3, Quantity: 1},
		{ProductID: 1, Quantity: 0},
		{ProductID: 3, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}

	assert.Equal(t, []models.CartLine{
		{ProductID: 3, Quantity: 3},
		{ProductID: 2, Quantity: 1},
	}, Normalize(lines))
}

func TestPriceUsesCurrentCatalogPrices(t *testing.T) {
	lines := []models.CartLine{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 1}}

	before := Price(lines, catalogLookup(map[int64]int64{1: 1000, 2: 2500}))
	assert.Equal(t, int64(4500), before.Subtotal)
	assert.Equal(t, 3, before.TotalItemCount)
	assert.Equal(t, int64(2000), before.Items[0].LineTotal)

	// Цена изменилась после добавления в корзину
	after := Price(lines, catalogLookup(map[int64]int64{1: 1200, 2: 2500}))
	assert.Equal(t, int64(4900), after.Subtotal)
}

func TestPriceReportsMissingProducts(t *testing.T) {
	lines := []models.CartLine{{ProductID: 1, Quantity: 2}, {ProductID: 9, Quantity: 1}}

	view := Price(lines, catalogLookup(map[int64]int64{1: 1000}))

	assert.Equal(t, int64(2000), view.Subtotal)
	assert.Equal(t, 2, view.TotalItemCount)
	assert.Equal(t, []int64{9}, view.Missing)
	assert.Len(t, view.Items, 1)
}

func TestPriceEmptyCart(t *testing.T) {
	view := Price(nil, catalogLookup(nil))

	assert.NotNil(t, view.Items)
	assert.Zero(t, view.Subtotal)
	assert.Zero(t, view.TotalItemCount)
}

func TestQuantityLimit(t *testing.T) {
	lookup := catalogLookup(map[int64]int64{1: 2500})

	t.Run("Огромное количество отклоняется", func(t *testing.T) {
		lines := []models.CartLine{{ProductID: 1, Quantity: 2}}

		out, err := SetQuantity(lines, 1, math.MaxInt64/2000, lookup)

		assert.ErrorIs(t, err, ErrQuantityLimit)
		assert.Equal(t, lines, out)
		assert.Equal(t, int64(5000), Price(out, lookup).Subtotal)
	})

	t.Run("Граница допустима", func(t *testing.T) {
		out, err := SetQuantity(nil, 1, MaxQuantity, lookup)
		require.NoError(t, err)
		assert.Equal(t, int64(MaxQuantity)*2500, Price(out, lookup).Subtotal)

		_, err = AddItem(out, 1, lookup)
		assert.ErrorIs(t, err, ErrQuantityLimit)
	})

	t.Run("Сохраненная корзина приводится к пределу", func(t *testing.T) {
		out := Normalize([]models.CartLine{
			{ProductID: 1, Quantity: math.MaxInt32},
			{ProductID: 1, Quantity: 5},
		})
		assert.Equal(t, []models.CartLine{{ProductID: 1, Quantity: MaxQuantity}}, out)
	})
}
