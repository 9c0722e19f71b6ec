package store

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/tjarju/bank-users-go/errors"
	"github.com/tjarju/bank-users-go/models"
)

func NewTokenStore(dataDB *sql.DB) TokenStore {
	return &tokenStore{dataDB: dataDB}
}

type tokenStore struct {
	dataDB *sql.DB
}

func (s *tokenStore) Insert(ctx context.Context, token *models.AccessToken) error {
	_, err := sq.
		Insert("access_tokens").
		Columns("id", "name", "description", "account_id", "token", "expires_at").
		Values(token.ID, token.Name, token.Description, token.AccountID, token.Token, token.ExpiresAt).
		RunWith(s.dataDB).
		ExecContext(ctx)
	if err != nil {
		return errors.HandleDataDBError(err)
	}

	return nil
}

func (s *tokenStore) GetAccountByToken(ctx context.Context, token string) (*models.Account, *models.AccessToken, error) {
	row := sq.
		Select(
			"accounts.id", "accounts.username", "accounts.password_hash",
			"accounts.first_name", "accounts.last_name", "accounts.email",
			"accounts.iban", "accounts.balance", "accounts.currency",
			"accounts.is_staff", "accounts.is_superuser",
			"accounts.created_at", "accounts.updated_at",
			"access_tokens.id", "access_tokens.account_id", "access_tokens.token", "access_tokens.expires_at",
		).
		From("access_tokens").
		Join("accounts on access_tokens.account_id = accounts.id").
		Where(sq.Eq{"access_tokens.token": token}).
		Limit(1).
		RunWith(s.dataDB).
		QueryRowContext(ctx)

	account := &models.Account{}
	accessToken := &models.AccessToken{}
	var iban sql.NullString
	var balance float64
	var currency int
	err := row.Scan(
		&account.ID, &account.Username, &account.PasswordHash,
		&account.FirstName, &account.LastName, &account.Email,
		&iban, &balance, &currency,
		&account.IsStaff, &account.IsSuperuser,
		&account.CreatedAt, &account.UpdatedAt,
		&accessToken.ID, &accessToken.AccountID, &accessToken.Token, &accessToken.ExpiresAt,
	)
	if err != nil {
		return nil, nil, errors.HandleDataDBError(err)
	}
	account.IBAN = iban.String
	account.Balance = models.Double(balance)
	account.Currency = models.Currency(currency)

	return account, accessToken, nil
}

func (s *tokenStore) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res, err := sq.
		Delete("access_tokens").
		Where(sq.Lt{"expires_at": before}).
		RunWith(s.dataDB).
		ExecContext(ctx)
	if err != nil {
		return 0, errors.HandleDataDBError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, errors.HandleDataDBError(err)
	}

	return affected, nil
}
