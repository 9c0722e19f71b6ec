package requests

import "github.com/tjarju/bank-users-go/models"

type CreateAccountRequest struct {
	Username  string        `json:"username" validate:"required"`
	Password  string        `json:"password" validate:"required"`
	FirstName string        `json:"first_name" validate:"required"`
	LastName  string        `json:"last_name" validate:"required"`
	Email     string        `json:"email" validate:"omitempty,email"`
	IBAN      string        `json:"iban"`
	Balance   models.Double `json:"balance"`
	Currency  string        `json:"currency" default:"EURO" validate:"oneof=EURO POUND DOLLAR YEN FRANC CROWN"`

	// Granting elevated roles requires an administrative caller.
	IsStaff     bool `json:"is_staff"`
	IsSuperuser bool `json:"is_superuser"`
}
