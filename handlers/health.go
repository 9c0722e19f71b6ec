package handlers

import (
	"database/sql"
	"net/http"

	"go.uber.org/zap"

	"github.com/tjarju/bank-users-go/utils"
)

type HealthHandler interface {
	Health(w http.ResponseWriter, r *http.Request)

	ServeHttp(*http.ServeMux)
}

func NewHealthHandler(dataDB *sql.DB, log *zap.Logger) HealthHandler {
	return &healthHandler{dataDB: dataDB, log: log}
}

type healthHandler struct {
	dataDB *sql.DB

	log *zap.Logger
}

func (h *healthHandler) ServeHttp(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Health)
}

func (h *healthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.dataDB.PingContext(r.Context()); err != nil {
		h.log.Error("database ping failed", zap.Error(err))
		utils.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
