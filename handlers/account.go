package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/tjarju/bank-users-go/errors"
	"github.com/tjarju/bank-users-go/services"
	"github.com/tjarju/bank-users-go/types/requests"
	"github.com/tjarju/bank-users-go/utils"
)

type AccountHandler interface {
	CreateAccount(w http.ResponseWriter, r *http.Request)
	FetchAccount(w http.ResponseWriter, r *http.Request)
	ListAccounts(w http.ResponseWriter, r *http.Request)
	ReplaceAccount(w http.ResponseWriter, r *http.Request)
	PatchAccount(w http.ResponseWriter, r *http.Request)
	DeleteAccount(w http.ResponseWriter, r *http.Request)

	ServeHttp(*http.ServeMux)
}

func NewAccountHandler(accountService services.AccountService, middlewares MiddleWareHandler, log *zap.Logger) AccountHandler {
	return &accountHandler{
		handler: handler{accountService: accountService, middlewares: middlewares, log: log},
	}
}

type accountHandler struct {
	handler
}

func (a *accountHandler) ServeHttp(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/users", utils.Middleware(a.CreateAccount, a.middlewares.OptionalAccessToken))
	mux.HandleFunc("GET /api/v1/users", utils.Middleware(a.ListAccounts, a.middlewares.ValidateAccessToken))
	mux.HandleFunc("GET /api/v1/users/{user_id}", utils.Middleware(a.FetchAccount, a.middlewares.ValidateAccessToken))
	mux.HandleFunc("PUT /api/v1/users/{user_id}", utils.Middleware(a.ReplaceAccount, a.middlewares.ValidateAccessToken))
	mux.HandleFunc("PATCH /api/v1/users/{user_id}", utils.Middleware(a.PatchAccount, a.middlewares.ValidateAccessToken))
	mux.HandleFunc("DELETE /api/v1/users/{user_id}", utils.Middleware(a.DeleteAccount, a.middlewares.ValidateAccessToken))
}

func (a *accountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	req, err := utils.Bind[requests.CreateAccountRequest](r)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	res, err := a.accountService.CreateAccount(r.Context(), req)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, 201, res)
}

func (a *accountHandler) FetchAccount(w http.ResponseWriter, r *http.Request) {
	req := &requests.FetchAccountRequest{UserID: r.PathValue("user_id")}

	res, err := a.accountService.FetchAccount(r.Context(), req)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, 200, res)
}

func (a *accountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	req, err := utils.Bind[requests.ListAccountsRequest](r)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	res, err := a.accountService.ListAccounts(r.Context(), req)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, 200, res)
}

func (a *accountHandler) ReplaceAccount(w http.ResponseWriter, r *http.Request) {
	req, err := utils.Bind[requests.ReplaceAccountRequest](r)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	res, err := a.accountService.ReplaceAccount(r.Context(), req)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, 200, res)
}

func (a *accountHandler) PatchAccount(w http.ResponseWriter, r *http.Request) {
	req, err := utils.Bind[requests.PatchAccountRequest](r)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	res, err := a.accountService.PatchAccount(r.Context(), req)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, 200, res)
}

func (a *accountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	req := &requests.DeleteAccountRequest{UserID: r.PathValue("user_id")}

	if err := a.accountService.DeleteAccount(r.Context(), req); err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	w.WriteHeader(204)
	w.Write(nil)
}
