package store

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/tjarju/bank-users-go/errors"
	"github.com/tjarju/bank-users-go/models"
)

var accountColumns = []string{
	"id", "username", "password_hash", "first_name", "last_name", "email",
	"iban", "balance", "currency", "is_staff", "is_superuser",
	"created_at", "updated_at",
}

func NewAccountStore(dataDB *sql.DB) AccountStore {
	return &accountStore{dataDB: dataDB}
}

type accountStore struct {
	dataDB *sql.DB
}

func (s *accountStore) Insert(ctx context.Context, account *models.Account) error {
	_, err := sq.
		Insert("accounts").
		Columns(accountColumns...).
		Values(
			account.ID, account.Username, account.PasswordHash,
			account.FirstName, account.LastName, account.Email,
			nullableIBAN(account.IBAN), float64(account.Balance), int(account.Currency),
			account.IsStaff, account.IsSuperuser,
			account.CreatedAt, account.UpdatedAt,
		).
		RunWith(s.dataDB).
		ExecContext(ctx)
	if err != nil {
		return errors.HandleDataDBError(err)
	}

	return nil
}

func (s *accountStore) Get(ctx context.Context, id string) (*models.Account, error) {
	row := sq.
		Select(accountColumns...).
		From("accounts").
		Where(sq.Eq{"id": id}).
		Limit(1).
		RunWith(s.dataDB).
		QueryRowContext(ctx)

	return scanAccount(row)
}

func (s *accountStore) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	row := sq.
		Select(accountColumns...).
		From("accounts").
		Where(sq.Eq{"username": username}).
		Limit(1).
		RunWith(s.dataDB).
		QueryRowContext(ctx)

	return scanAccount(row)
}

func (s *accountStore) List(ctx context.Context, filter Filter) ([]*models.Account, error) {
	stmt := sq.
		Select(accountColumns...).
		From("accounts").
		OrderBy("created_at", "id")

	if filter.Currency != nil {
		stmt = stmt.Where(sq.Eq{"currency": int(*filter.Currency)})
	}
	if filter.Staff != nil {
		stmt = stmt.Where(sq.Eq{"is_staff": *filter.Staff})
	}
	if filter.Limit > 0 {
		stmt = stmt.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		stmt = stmt.Offset(filter.Offset)
	}

	rows, err := stmt.RunWith(s.dataDB).QueryContext(ctx)
	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}
	defer rows.Close()

	res := make([]*models.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, account)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.HandleDataDBError(err)
	}

	return res, nil
}

func (s *accountStore) Update(ctx context.Context, account *models.Account) error {
	res, err := sq.
		Update("accounts").
		Set("username", account.Username).
		Set("password_hash", account.PasswordHash).
		Set("first_name", account.FirstName).
		Set("last_name", account.LastName).
		Set("email", account.Email).
		Set("iban", nullableIBAN(account.IBAN)).
		Set("balance", float64(account.Balance)).
		Set("currency", int(account.Currency)).
		Set("is_staff", account.IsStaff).
		Set("is_superuser", account.IsSuperuser).
		Set("updated_at", account.UpdatedAt).
		Where(sq.Eq{"id": account.ID}).
		RunWith(s.dataDB).
		ExecContext(ctx)
	if err != nil {
		return errors.HandleDataDBError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.HandleDataDBError(err)
	}
	if affected == 0 {
		return errors.NewNotFoundError("account not found")
	}

	return nil
}

func (s *accountStore) Delete(ctx context.Context, id string) error {
	res, err := sq.
		Delete("accounts").
		Where(sq.Eq{"id": id}).
		RunWith(s.dataDB).
		ExecContext(ctx)
	if err != nil {
		return errors.HandleDataDBError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.HandleDataDBError(err)
	}
	if affected == 0 {
		return errors.NewNotFoundError("account not found")
	}

	return nil
}

// nullableIBAN stores an absent IBAN as NULL so the unique index tolerates
// any number of elevated accounts without one.
func nullableIBAN(iban string) sql.NullString {
	return sql.NullString{String: iban, Valid: iban != ""}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	account := &models.Account{}
	var iban sql.NullString
	var balance float64
	var currency int
	err := row.Scan(
		&account.ID, &account.Username, &account.PasswordHash,
		&account.FirstName, &account.LastName, &account.Email,
		&iban, &balance, &currency,
		&account.IsStaff, &account.IsSuperuser,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, errors.HandleDataDBError(err)
	}
	account.IBAN = iban.String
	account.Balance = models.Double(balance)
	account.Currency = models.Currency(currency)

	return account, nil
}
