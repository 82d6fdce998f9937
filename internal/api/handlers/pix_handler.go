package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"gw-eternal-pay/internal/api/middlew"
	"gw-eternal-pay/internal/custom_err"
	"gw-eternal-pay/internal/models"
	"gw-eternal-pay/internal/service"
	"gw-eternal-pay/pkg/response"
)

type PixHandler struct {
	service service.Pix
}

func NewPixHandler(service service.Pix) *PixHandler {
	return &PixHandler{
		service: service,
	}
}

// BRCode godoc
// @Summary      Сгенерировать PIX BR Code
// @Description  Проксирует запрос во внешний генератор и возвращает его JSON без изменений
// @Tags         pix
// @Produce      json
// @Param        nome   query string true "Имя получателя (алиас name)"
// @Param        cidade query string true "Город (алиас city)"
// @Param        valor  query number true "Сумма (алиас amount)"
// @Param        chave  query string true "PIX-ключ (алиас key)"
// @Param        txid   query string true "Идентификатор (алиас reference)"
// @Success      200 {object} object
// @Failure      400 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /pix/brcode [get]
func (h *PixHandler) BRCode(w http.ResponseWriter, r *http.Request) {
	const op = "handler.BRCode"
	log := middlew.GetLogger(r.Context())

	q := r.URL.Query()
	req := models.BRCodeRequest{
		Name:      firstOf(q, "nome", "name"),
		City:      firstOf(q, "cidade", "city"),
		Key:       firstOf(q, "chave", "key"),
		Reference: firstOf(q, "txid", "reference"),
	}

	rawAmount := firstOf(q, "valor", "amount")
	if rawAmount == "" {
		response.WriteJSONError(w, log, http.StatusBadRequest, "missing_param", "valor is required")
		return
	}
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		log.Warn("invalid amount", slog.String("op", op), slog.String("valor", rawAmount))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_amount", "valor must be a number")
		return
	}
	req.Amount = amount

	body, err := h.service.BRCode(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, custom_err.ErrValidation):
			log.Warn("invalid pix request", slog.String("op", op), slog.String("error", err.Error()))
			response.WriteJSONError(w, log, http.StatusBadRequest, "missing_param", err.Error())
		default:
			log.Error("failed to generate br code", slog.String("op", op), slog.String("error", err.Error()))
			response.WriteJSONError(w, log, http.StatusInternalServerError, "gateway_error", "Failed to generate PIX code")
		}
		return
	}

	response.WriteRawJSON(w, log, http.StatusOK, body)
}

func firstOf(q url.Values, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(q.Get(k)); v != "" {
			return v
		}
	}
	return ""
}
