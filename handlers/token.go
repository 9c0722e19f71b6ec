package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/tjarju/bank-users-go/errors"
	"github.com/tjarju/bank-users-go/services"
	"github.com/tjarju/bank-users-go/types/requests"
	"github.com/tjarju/bank-users-go/utils"
)

type TokenHandler interface {
	IssueToken(w http.ResponseWriter, r *http.Request)

	ServeHttp(*http.ServeMux)
}

func NewTokenHandler(tokenService services.TokenService, log *zap.Logger) TokenHandler {
	return &tokenHandler{
		handler: handler{tokenService: tokenService, log: log},
	}
}

type tokenHandler struct {
	handler
}

func (t *tokenHandler) ServeHttp(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/tokens", t.IssueToken)
}

func (t *tokenHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	req, err := utils.Bind[requests.IssueTokenRequest](r)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	res, err := t.tokenService.IssueToken(r.Context(), req)
	if err != nil {
		errors.AsAppError(err).Serialize(w)
		return
	}

	utils.JSON(w, 201, res)
}
