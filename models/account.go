package models

import "time"

type Account struct {
	// ? maybe change to uuid.UUID
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email,omitempty"`
	IBAN      string    `json:"iban,omitempty"`
	Balance   Double    `json:"balance"`
	Currency  Currency  `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// internal fields
	PasswordHash string `json:"-"`
	IsStaff      bool   `json:"-"`
	IsSuperuser  bool   `json:"-"`
}

// Elevated reports whether the account holds a staff or superuser role.
// Elevated accounts are exempt from the IBAN requirement and may perform
// administrative mutations.
func (a *Account) Elevated() bool {
	return a != nil && (a.IsStaff || a.IsSuperuser)
}
