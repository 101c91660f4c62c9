// Package orders хранит оформленные заказы и следит за допустимыми
// переходами статусов.
package orders

import (
	"errors"
	"fmt"

	"perfume-store/internal/models"
)

// Ошибки статусов
var (
	// ErrIllegalTransition возвращается при переходе вне таблицы статусов
	ErrIllegalTransition = errors.New("illegal order status transition")
	ErrUnknownStatus     = errors.New("unknown order status")
)

var transitions = map[models.OrderStatus][]models.OrderStatus{
	models.StatusPending:    {models.StatusProcessing, models.StatusCancelled},
	models.StatusProcessing: {models.StatusShipped, models.StatusCancelled},
	models.StatusShipped:    {models.StatusDelivered},
	models.StatusDelivered:  {},
	models.StatusCancelled:  {},
}

// ValidStatus проверяет, что статус входит в закрытый список
func ValidStatus(s models.OrderStatus) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition сообщает, разрешен ли переход from → to
func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal: из delivered и cancelled переходов нет
func IsTerminal(s models.OrderStatus) bool {
	return ValidStatus(s) && len(transitions[s]) == 0
}

func checkTransition(from, to models.OrderStatus) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%s -> %s: %w", from, to, ErrIllegalTransition)
	}
	return nil
}
