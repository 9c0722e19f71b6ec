package main

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/MadAppGang/httplog"
	lzap "github.com/MadAppGang/httplog/zap"
	gorilla "github.com/gorilla/handlers"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/tjarju/bank-users-go/config"
	"github.com/tjarju/bank-users-go/credentials"
	"github.com/tjarju/bank-users-go/handlers"
)

func NewHttpServer(lc fx.Lifecycle, mux *http.ServeMux, log *zap.Logger) *http.Server {
	var root http.Handler = httplog.LoggerWithFormatter(
		lzap.ZapLogger(log, zap.InfoLevel, "bank-users"),
	)(mux)
	root = gorilla.RecoveryHandler()(root)
	root = gorilla.CORS(
		gorilla.AllowedOrigins([]string{"*"}),
		gorilla.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE"}),
		gorilla.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)(root)

	srv := &http.Server{
		Addr:         config.LISTEN_ADDR,
		Handler:      root,
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("starting HTTP server", zap.String("addr", srv.Addr))
			go srv.Serve(ln)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return srv
}

func NewServeMux(routers []handlers.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	for _, router := range routers {
		router.ServeHttp(mux)
	}
	return mux
}

func NewCredentialManager() *credentials.Manager {
	return credentials.NewManager(config.BCRYPT_COST)
}
