package orders

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"perfume-store/internal/cart"
	"perfume-store/internal/models"

	"github.com/google/uuid"
)

// Ошибки переноса заказов старой витрины
var (
	ErrInvalidImport = errors.New("imported order does not add up")
	ErrImportedOrder = errors.New("imported order is read-only")
)

// maxImportPrice - верхняя граница цены позиции и стоимости доставки в перенесенном заказе
const maxImportPrice = 10_000_000

// importNamespace - пространство имен для номеров перенесенных заказов
var importNamespace = uuid.MustParse("8c3f6a52-1d4e-4b7a-9e0f-5a2c7d913b46")

// ImportedID - номер перенесенного заказа. Зависит от сессии, поэтому
// одинаковые номера из разных браузеров не пересекаются, а повторный
// перенос в той же сессии дает тот же номер.
func ImportedID(sessionID, legacyID string) string {
	id := uuid.NewSHA1(importNamespace, []byte(sessionID+"/"+legacyID))
	return "IMP-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:16])
}

// FromLegacy готовит заказ из localStorage старой витрины к сохранению.
// Подытог считается по позициям, итог должен с ним сойтись.
// Статус остается историческим, но заказ помечается Imported
// и в админке не меняется.
func FromLegacy(sessionID string, o models.Order, now time.Time) (models.Order, error) {
	if o.ID == "" {
		return models.Order{}, fmt.Errorf("empty order id: %w", ErrInvalidImport)
	}
	if len(o.Items) == 0 {
		return models.Order{}, fmt.Errorf("order %s has no items: %w", o.ID, ErrInvalidImport)
	}

	var subtotal int64
	for _, item := range o.Items {
		if item.Quantity < 1 || item.Quantity > cart.MaxQuantity || item.Price < 0 || item.Price > maxImportPrice {
			return models.Order{}, fmt.Errorf("order %s item %d: %w", o.ID, item.ID, ErrInvalidImport)
		}
		subtotal += item.Price * int64(item.Quantity)
	}
	if o.Subtotal != 0 && o.Subtotal != subtotal {
		return models.Order{}, fmt.Errorf("order %s subtotal %d, items give %d: %w", o.ID, o.Subtotal, subtotal, ErrInvalidImport)
	}
	if o.Discount < 0 || o.Discount > subtotal || o.DeliveryFee < 0 || o.DeliveryFee > maxImportPrice {
		return models.Order{}, fmt.Errorf("order %s discount or delivery fee: %w", o.ID, ErrInvalidImport)
	}
	if total := subtotal - o.Discount + o.DeliveryFee; o.Total != total {
		return models.Order{}, fmt.Errorf("order %s total %d, items give %d: %w", o.ID, o.Total, total, ErrInvalidImport)
	}

	if o.Status == "" {
		o.Status = models.StatusPending
	}
	if !ValidStatus(o.Status) {
		return models.Order{}, fmt.Errorf("order %s status %q: %w", o.ID, o.Status, ErrUnknownStatus)
	}
	if o.CreatedAt.IsZero() || o.CreatedAt.After(now) {
		o.CreatedAt = now
	}

	o.Comment = strings.TrimSpace(fmt.Sprintf("Перенесен со старой витрины, № %s. %s", o.ID, o.Comment))
	o.ID = ImportedID(sessionID, o.ID)
	o.SessionID = sessionID
	o.Subtotal = subtotal
	o.Imported = true
	return o, nil
}
