package store_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tjarju/bank-users-go/errors"
	"github.com/tjarju/bank-users-go/models"
	"github.com/tjarju/bank-users-go/store"
)

var accountColumns = []string{
	"id", "username", "password_hash", "first_name", "last_name", "email",
	"iban", "balance", "currency", "is_staff", "is_superuser",
	"created_at", "updated_at",
}

func testAccount() *models.Account {
	now := time.Now().UTC()
	return &models.Account{
		ID:           "acc-1",
		Username:     "alice",
		PasswordHash: "$2a$04$hash",
		FirstName:    "Alice",
		LastName:     "A",
		IBAN:         "DE89370400440532013000",
		Currency:     models.Euro,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestInsertTranslatesDuplicateUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO accounts").WillReturnError(&mysql.MySQLError{
		Number:  1062,
		Message: "Duplicate entry 'alice' for key 'accounts.username'",
	})

	err = store.NewAccountStore(db).Insert(context.Background(), testAccount())
	require.Error(t, err)
	appErr := errors.AsAppError(err)
	assert.Equal(t, errors.ErrEntryExists, appErr.Type)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	require.Len(t, appErr.Violations, 1)
	assert.Equal(t, "username", appErr.Violations[0].Field)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTranslatesDuplicateIBAN(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE accounts").WillReturnError(&mysql.MySQLError{
		Number:  1062,
		Message: "Duplicate entry 'DE89370400440532013000' for key 'accounts.iban'",
	})

	err = store.NewAccountStore(db).Update(context.Background(), testAccount())
	require.Error(t, err)
	appErr := errors.AsAppError(err)
	assert.Equal(t, errors.ErrEntryExists, appErr.Type)
	require.Len(t, appErr.Violations, 1)
	assert.Equal(t, "iban", appErr.Violations[0].Field)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMissingAccount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE accounts").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = store.NewAccountStore(db).Update(context.Background(), testAccount())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, errors.AsAppError(err).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetScansNullIBAN(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows(accountColumns).AddRow(
		"acc-1", "root", "$2a$04$hash", "Root", "R", "",
		nil, 0.0, int(models.Euro), true, true, now, now,
	)
	mock.ExpectQuery("SELECT .+ FROM accounts WHERE id = .").
		WithArgs("acc-1").
		WillReturnRows(rows)

	account, err := store.NewAccountStore(db).Get(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Empty(t, account.IBAN)
	assert.True(t, account.Elevated())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMissingAccount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM accounts WHERE id = .").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(accountColumns))

	_, err = store.NewAccountStore(db).Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, errors.AsAppError(err).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissingAccount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM accounts").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = store.NewAccountStore(db).Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, errors.AsAppError(err).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAccount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM accounts").
		WithArgs("acc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.NewAccountStore(db).Delete(context.Background(), "acc-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAppliesFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows(accountColumns).AddRow(
		"acc-1", "alice", "$2a$04$hash", "Alice", "A", "",
		"DE89370400440532013000", 100.0, int(models.Dollar), false, false, now, now,
	)
	staff := false
	currency := models.Dollar
	mock.ExpectQuery("SELECT .+ FROM accounts WHERE currency = . AND is_staff = .").
		WithArgs(int(currency), staff).
		WillReturnRows(rows)

	accounts, err := store.NewAccountStore(db).List(context.Background(), store.Filter{
		Currency: &currency,
		Staff:    &staff,
		Limit:    50,
	})
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "alice", accounts[0].Username)
	assert.Equal(t, models.Double(100), accounts[0].Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}
