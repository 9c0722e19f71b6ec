package responses

import (
	"time"

	"github.com/tjarju/bank-users-go/models"
)

// AccountView is the external representation of an account record. The
// credential hash and role flags never leave the service boundary; currency
// renders as its display label and timestamps as RFC 3339 UTC.
type AccountView struct {
	Username  string        `json:"username"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Email     string        `json:"email"`
	IBAN      string        `json:"iban,omitempty"`
	Balance   models.Double `json:"balance"`
	Currency  string        `json:"currency"`
	CreatedAt string        `json:"created_at"`
	UpdatedAt string        `json:"updated_at"`
}

func NewAccountView(account *models.Account) *AccountView {
	return &AccountView{
		Username:  account.Username,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Email:     account.Email,
		IBAN:      account.IBAN,
		Balance:   account.Balance,
		Currency:  account.Currency.Label(),
		CreatedAt: account.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: account.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func NewAccountViews(accounts []*models.Account) []*AccountView {
	views := make([]*AccountView, 0, len(accounts))
	for _, account := range accounts {
		views = append(views, NewAccountView(account))
	}
	return views
}
