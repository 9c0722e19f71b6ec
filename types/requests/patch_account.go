package requests

import "github.com/tjarju/bank-users-go/models"

// PatchAccountRequest carries a partial update. Nil fields are left
// untouched; an entirely empty patch still counts as a served update.
type PatchAccountRequest struct {
	UserID    string         `uri:"user_id" json:"-" validate:"required"`
	Username  *string        `json:"username" validate:"omitnil,min=1"`
	Password  *string        `json:"password" validate:"omitnil,min=1"`
	FirstName *string        `json:"first_name" validate:"omitnil,min=1"`
	LastName  *string        `json:"last_name" validate:"omitnil,min=1"`
	Email     *string        `json:"email" validate:"omitnil,omitempty,email"`
	IBAN      *string        `json:"iban"`
	Balance   *models.Double `json:"balance"`
	Currency  *string        `json:"currency" validate:"omitnil,oneof=EURO POUND DOLLAR YEN FRANC CROWN"`

	IsStaff     *bool `json:"is_staff"`
	IsSuperuser *bool `json:"is_superuser"`
}
