package requests

import "github.com/tjarju/bank-users-go/models"

// ReplaceAccountRequest carries a full update: every required field must be
// resupplied, omitted optional fields reset to their defaults. Password is
// optional; when present it must be non-empty and replaces the stored hash.
type ReplaceAccountRequest struct {
	UserID    string        `uri:"user_id" json:"-" validate:"required"`
	Username  string        `json:"username" validate:"required"`
	Password  *string       `json:"password" validate:"omitnil,min=1"`
	FirstName string        `json:"first_name" validate:"required"`
	LastName  string        `json:"last_name" validate:"required"`
	Email     string        `json:"email" validate:"omitempty,email"`
	IBAN      string        `json:"iban"`
	Balance   models.Double `json:"balance"`
	Currency  string        `json:"currency" default:"EURO" validate:"oneof=EURO POUND DOLLAR YEN FRANC CROWN"`

	IsStaff     bool `json:"is_staff"`
	IsSuperuser bool `json:"is_superuser"`
}
