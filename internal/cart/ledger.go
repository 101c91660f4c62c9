// Package cart реализует корзину: позиции id→количество и производные суммы.
// Все функции чистые: принимают текущие позиции и возвращают новые.
package cart

import (
	"errors"
	"fmt"

	"perfume-store/internal/catalog"
	"perfume-store/internal/models"
)

// ErrProductNotFound - попытка положить в корзину товар, которого нет в каталоге
var ErrProductNotFound = catalog.ErrProductNotFound

// MaxQuantity - наибольшее количество одного аромата в корзине
const MaxQuantity = 99

// ErrQuantityLimit - количество больше MaxQuantity
var ErrQuantityLimit = errors.New("cart quantity limit exceeded")

// Lookup ищет аромат в текущем каталоге
type Lookup func(id int64) (models.Product, bool)

// IndexProducts строит Lookup по списку ароматов
func IndexProducts(products []models.Product) Lookup {
	index := make(map[int64]models.Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	return func(id int64) (models.Product, bool) {
		p, ok := index[id]
		return p, ok
	}
}

// AddItem увеличивает количество существующей позиции или добавляет новую с количеством 1
func AddItem(lines []models.CartLine, productID int64, lookup Lookup) ([]models.CartLine, error) {
	if _, ok := lookup(productID); !ok {
		return lines, fmt.Errorf("product %d: %w", productID, ErrProductNotFound)
	}

	out := make([]models.CartLine, 0, len(lines)+1)
	found := false
	for _, line := range lines {
		if line.ProductID == productID {
			if line.Quantity >= MaxQuantity {
				return lines, fmt.Errorf("product %d: %w", productID, ErrQuantityLimit)
			}
			line.Quantity++
			found = true
		}
		out = append(out, line)
	}
	if !found {
		out = append(out, models.CartLine{ProductID: productID, Quantity: 1})
	}
	return out, nil
}

// SetQuantity задает абсолютное количество; qty <= 0 удаляет позицию.
// Для отсутствующей позиции с qty > 0 позиция создается, если товар есть в каталоге.
func SetQuantity(lines []models.CartLine, productID int64, qty int, lookup Lookup) ([]models.CartLine, error) {
	if qty <= 0 {
		return RemoveItem(lines, productID), nil
	}
	if qty > MaxQuantity {
		return lines, fmt.Errorf("product %d quantity %d: %w", productID, qty, ErrQuantityLimit)
	}

	out := make([]models.CartLine, 0, len(lines)+1)
	found := false
	for _, line := range lines {
		if line.ProductID == productID {
			line.Quantity = qty
			found = true
		}
		out = append(out, line)
	}

	if !found {
		if _, ok := lookup(productID); !ok {
			return lines, fmt.Errorf("product %d: %w", productID, ErrProductNotFound)
		}
		out = append(out, models.CartLine{ProductID: productID, Quantity: qty})
	}
	return out, nil
}

// RemoveItem удаляет позицию
func RemoveItem(lines []models.CartLine, productID int64) []models.CartLine {
	out := make([]models.CartLine, 0, len(lines))
	for _, line := range lines {
		if line.ProductID != productID {
			out = append(out, line)
		}
	}
	return out
}

// Normalize приводит позиции к инварианту: одна позиция на товар,
// количество от 1 до MaxQuantity. Порядок первого появления сохраняется.
func Normalize(lines []models.CartLine) []models.CartLine {
	index := make(map[int64]int, len(lines))
	out := make([]models.CartLine, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		if line.Quantity > MaxQuantity {
			line.Quantity = MaxQuantity
		}
		if i, ok := index[line.ProductID]; ok {
			out[i].Quantity = min(out[i].Quantity+line.Quantity, MaxQuantity)
			continue
		}
		index[line.ProductID] = len(out)
		out = append(out, line)
	}
	return out
}

// Price считает корзину по текущим ценам каталога. Цена не фиксируется
// при добавлении: если она изменилась до оформления, корзина покажет новую.
// Позиции, которых больше нет в каталоге, попадают в Missing и не входят в сумму.
func Price(lines []models.CartLine, lookup Lookup) models.CartView {
	view := models.CartView{Items: make([]models.CartItem, 0, len(lines))}

	for _, line := range lines {
		p, ok := lookup(line.ProductID)
		if !ok {
			view.Missing = append(view.Missing, line.ProductID)
			continue
		}

		lineTotal := p.Price * int64(line.Quantity)
		view.Items = append(view.Items, models.CartItem{
			ID:        p.ID,
			Name:      p.Name,
			Brand:     p.Brand,
			Price:     p.Price,
			Image:     p.Image,
			Quantity:  line.Quantity,
			LineTotal: lineTotal,
		})
		view.Subtotal += lineTotal
		view.TotalItemCount += line.Quantity
	}

	return view
}
