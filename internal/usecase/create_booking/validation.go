package create_booking

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/kmlvnk/ST-BookingService/internal/domain"
)

// validateCustomer валидирует контактные данные клиента
// Все три поля обязательны: имя, email и контакт для WhatsApp
func validateCustomer(c domain.Customer) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCustomerInfo)
	}
	if len(name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidCustomerInfo)
	}

	email := strings.TrimSpace(c.Email)
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidCustomerInfo)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: malformed email: %v", ErrInvalidCustomerInfo, err)
	}

	contact := strings.TrimSpace(c.Contact)
	if contact == "" {
		return fmt.Errorf("%w: contact is required", ErrInvalidCustomerInfo)
	}
	if len(contact) > domain.MaxCustomerContactLength {
		return fmt.Errorf("%w: contact is too long", ErrInvalidCustomerInfo)
	}

	return nil
}
