package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tjarju/bank-users-go/errors"
	"github.com/tjarju/bank-users-go/handlers"
	"github.com/tjarju/bank-users-go/models"
	"github.com/tjarju/bank-users-go/types/requests"
	"github.com/tjarju/bank-users-go/types/responses"
)

// stubAccountService returns canned results so handler tests exercise only
// binding, routing and status mapping.
type stubAccountService struct {
	err error
}

func accountView() *responses.Response[*responses.AccountView] {
	return &responses.Response[*responses.AccountView]{
		Status: "successful",
		Data: &responses.AccountView{
			Username:  "alice",
			FirstName: "Alice",
			LastName:  "A",
			IBAN:      "DE89370400440532013000",
			Currency:  "Euro",
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
			UpdatedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}
}

func (s *stubAccountService) CreateAccount(context.Context, *requests.CreateAccountRequest) (*responses.Response[*responses.CreateAccountResponseData], error) {
	if s.err != nil {
		return nil, s.err
	}
	return &responses.Response[*responses.CreateAccountResponseData]{
		Status: "successful",
		Data: &responses.CreateAccountResponseData{
			User:  accountView().Data,
			Token: &models.AccessToken{Token: "tok_abc", AccountID: "acc-1"},
		},
	}, nil
}

func (s *stubAccountService) FetchAccount(context.Context, *requests.FetchAccountRequest) (*responses.Response[*responses.AccountView], error) {
	if s.err != nil {
		return nil, s.err
	}
	return accountView(), nil
}

func (s *stubAccountService) ListAccounts(context.Context, *requests.ListAccountsRequest) (*responses.Response[[]*responses.AccountView], error) {
	if s.err != nil {
		return nil, s.err
	}
	return &responses.Response[[]*responses.AccountView]{
		Status: "successful",
		Data:   []*responses.AccountView{accountView().Data},
	}, nil
}

func (s *stubAccountService) ReplaceAccount(context.Context, *requests.ReplaceAccountRequest) (*responses.Response[*responses.AccountView], error) {
	if s.err != nil {
		return nil, s.err
	}
	return accountView(), nil
}

func (s *stubAccountService) PatchAccount(context.Context, *requests.PatchAccountRequest) (*responses.Response[*responses.AccountView], error) {
	if s.err != nil {
		return nil, s.err
	}
	return accountView(), nil
}

func (s *stubAccountService) DeleteAccount(context.Context, *requests.DeleteAccountRequest) error {
	return s.err
}

func (s *stubAccountService) GetAccountByAccessToken(_ context.Context, token string) (*models.Account, error) {
	if token == "tok_admin" {
		return &models.Account{ID: "admin", Username: "admin", IsSuperuser: true}, nil
	}
	return nil, errors.NewInvalidTokenError()
}

func newTestMux(svc *stubAccountService) *http.ServeMux {
	log := zap.NewNop()
	middlewares := handlers.NewMiddlewareHandler(svc, log)
	mux := http.NewServeMux()
	handlers.NewAccountHandler(svc, middlewares, log).ServeHttp(mux)
	return mux
}

func doRequest(mux *http.ServeMux, method, path, body, token string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

const validCreateBody = `{"username":"alice","password":"p@ss1234","first_name":"Alice","last_name":"A","iban":"DE89370400440532013000"}`

func TestCreateAccountStatusCreated(t *testing.T) {
	mux := newTestMux(&stubAccountService{})

	rec := doRequest(mux, "POST", "/api/v1/users", validCreateBody, "")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
}

func TestCreateAccountBindReportsViolations(t *testing.T) {
	mux := newTestMux(&stubAccountService{})

	rec := doRequest(mux, "POST", "/api/v1/users", `{"username":"alice"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var appErr errors.AppError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &appErr))
	assert.Equal(t, errors.ErrValidation, appErr.Type)
	fields := make([]string, 0, len(appErr.Violations))
	for _, v := range appErr.Violations {
		fields = append(fields, v.Field)
	}
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "first_name")
	assert.Contains(t, fields, "last_name")
}

func TestMutationsWithoutTokenUnauthorized(t *testing.T) {
	mux := newTestMux(&stubAccountService{})

	for _, tc := range []struct{ method, path string }{
		{"GET", "/api/v1/users"},
		{"GET", "/api/v1/users/acc-1"},
		{"PUT", "/api/v1/users/acc-1"},
		{"PATCH", "/api/v1/users/acc-1"},
		{"DELETE", "/api/v1/users/acc-1"},
	} {
		rec := doRequest(mux, tc.method, tc.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tc.method+" "+tc.path)
	}
}

func TestFetchAccountStatusOK(t *testing.T) {
	mux := newTestMux(&stubAccountService{})

	rec := doRequest(mux, "GET", "/api/v1/users/acc-1", "", "tok_admin")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServiceErrorsMapToStatusCodes(t *testing.T) {
	testCases := []struct {
		desc string
		err  error
		want int
	}{
		{desc: "forbidden", err: errors.NewPermissionError("administrative privilege required"), want: http.StatusForbidden},
		{desc: "not found", err: errors.NewNotFoundError("account not found"), want: http.StatusNotFound},
		{desc: "duplicate", err: errors.NewEntryExistsError("iban"), want: http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			mux := newTestMux(&stubAccountService{err: tc.err})
			rec := doRequest(mux, "PATCH", "/api/v1/users/acc-1", `{}`, "tok_admin")
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestDeleteAccountNoContent(t *testing.T) {
	mux := newTestMux(&stubAccountService{})

	rec := doRequest(mux, "DELETE", "/api/v1/users/acc-1", "", "tok_admin")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestPatchAccountEmptyBodyAccepted(t *testing.T) {
	mux := newTestMux(&stubAccountService{})

	rec := doRequest(mux, "PATCH", "/api/v1/users/acc-1", "", "tok_admin")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectPing()

	mux := http.NewServeMux()
	handlers.NewHealthHandler(db, zap.NewNop()).ServeHttp(mux)

	rec := doRequest(mux, "GET", "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
