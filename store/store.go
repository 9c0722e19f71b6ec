// Package store owns durability for account records and access tokens.
// The two uniqueness invariants (username, iban) are enforced by unique
// indexes at the storage boundary, so concurrent writers racing on the
// same key resolve to exactly one success.
package store

import (
	"context"
	"time"

	"github.com/tjarju/bank-users-go/models"
)

// Filter narrows a List call. Nil members are ignored.
type Filter struct {
	Currency *models.Currency
	Staff    *bool
	Limit    uint64
	Offset   uint64
}

type AccountStore interface {
	Insert(ctx context.Context, account *models.Account) error
	Get(ctx context.Context, id string) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	List(ctx context.Context, filter Filter) ([]*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, id string) error
}

type TokenStore interface {
	Insert(ctx context.Context, token *models.AccessToken) error
	GetAccountByToken(ctx context.Context, token string) (*models.Account, *models.AccessToken, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
