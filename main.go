package main

import (
	"net/http"

	"github.com/madflojo/tasks"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/tjarju/bank-users-go/db"
	"github.com/tjarju/bank-users-go/handlers"
	"github.com/tjarju/bank-users-go/services"
	"github.com/tjarju/bank-users-go/store"
)

func main() {
	fx.New(
		fx.Provide(
			NewHttpServer,
			fx.Annotate(
				NewServeMux,
				fx.ParamTags(`group:"handlers"`),
			),
			fx.Annotate(
				handlers.NewAccountHandler,
				fx.As(new(handlers.Handler)),
				fx.ResultTags(`group:"handlers"`),
			),
			fx.Annotate(
				handlers.NewTokenHandler,
				fx.As(new(handlers.Handler)),
				fx.ResultTags(`group:"handlers"`),
			),
			fx.Annotate(
				handlers.NewHealthHandler,
				fx.As(new(handlers.Handler)),
				fx.ResultTags(`group:"handlers"`),
			),
			handlers.NewMiddlewareHandler,
			services.NewAccountService,
			services.NewTokenService,
			store.NewAccountStore,
			store.NewTokenStore,
			db.GetDataDBConnection,
			NewCredentialManager,
			tasks.New,
			zap.NewProduction,
		),
		fx.Invoke(func(*http.Server) {}),
	).Run()
}
