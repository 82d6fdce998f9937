package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"gw-eternal-pay/internal/api/middlew"
	"gw-eternal-pay/pkg/response"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health godoc
// @Summary      Проверка живости
// @Tags         service
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      503 {object} response.ErrorResponse
// @Router       /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	log := middlew.GetLogger(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		log.Error("database ping failed", slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusServiceUnavailable, "unavailable", "Database unavailable")
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, map[string]string{"status": "ok"})
}
