package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/tjarju/bank-users-go/services"
)

type handler struct {
	accountService services.AccountService
	tokenService   services.TokenService
	middlewares    MiddleWareHandler

	log *zap.Logger
}

type Handler interface {
	ServeHttp(*http.ServeMux)
}
