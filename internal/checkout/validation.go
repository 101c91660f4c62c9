package checkout

import (
	"strings"

	"perfume-store/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Имена полей в списке незаполненных
const (
	FieldName           = "name"
	FieldPhone          = "phone"
	FieldEmail          = "email"
	FieldDeliveryMethod = "deliveryMethod"
	FieldCity           = "city"
	FieldAddress        = "address"
	FieldPaymentMethod  = "paymentMethod"
)

// ValidateContact возвращает поля первого шага, которые мешают перейти дальше.
// Пустой результат означает, что переход разрешен.
func ValidateContact(c models.ContactInfo) []string {
	missing := []string{}
	if strings.TrimSpace(c.Name) == "" {
		missing = append(missing, FieldName)
	}
	if strings.TrimSpace(c.Phone) == "" {
		missing = append(missing, FieldPhone)
	}
	if err := validate.Var(strings.TrimSpace(c.Email), "required,email"); err != nil {
		missing = append(missing, FieldEmail)
	}
	return missing
}

// ValidateDelivery проверяет второй шаг: для курьера нужны город и адрес,
// для самовывоза адрес не требуется.
func ValidateDelivery(d models.DeliveryInfo) []string {
	missing := []string{}
	switch d.Method {
	case models.DeliveryCourier:
		if strings.TrimSpace(d.City) == "" {
			missing = append(missing, FieldCity)
		}
		if strings.TrimSpace(d.Address) == "" {
			missing = append(missing, FieldAddress)
		}
	case models.DeliveryPickup:
	default:
		missing = append(missing, FieldDeliveryMethod)
	}

	switch d.PaymentMethod {
	case models.PaymentCard, models.PaymentCash:
	default:
		missing = append(missing, FieldPaymentMethod)
	}
	return missing
}
