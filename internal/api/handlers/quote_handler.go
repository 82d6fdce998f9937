package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"gw-eternal-pay/internal/api/middlew"
	"gw-eternal-pay/internal/custom_err"
	"gw-eternal-pay/internal/models"
	"gw-eternal-pay/internal/service"
	"gw-eternal-pay/pkg/response"
)

type QuoteHandler struct {
	service service.Quotes
	now     func() time.Time
}

func NewQuoteHandler(service service.Quotes) *QuoteHandler {
	return &QuoteHandler{
		service: service,
		now:     time.Now,
	}
}

// List godoc
// @Summary      Все котировки
// @Tags         cotacoes
// @Produce      json
// @Success      200 {array} models.QuoteResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /cotacoes/ [get]
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handler.ListQuotes"
	log := middlew.GetLogger(r.Context())

	quotes, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list quotes", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Failed to retrieve quotes")
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, models.ToQuoteResponses(quotes))
}

// Get godoc
// @Summary      Котировка по паре
// @Description  Пара передаётся как BTC%2FBRL или BTC-BRL
// @Tags         cotacoes
// @Produce      json
// @Param        pair path string true "Пара валют" example(BTC-BRL)
// @Success      200 {object} models.QuoteResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /cotacoes/{pair} [get]
func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "handler.GetQuote"
	log := middlew.GetLogger(r.Context())

	pair := chi.URLParam(r, "pair")
	if unescaped, err := url.PathUnescape(pair); err == nil {
		pair = unescaped
	}

	q, err := h.service.Get(r.Context(), pair)
	if err != nil {
		switch {
		case errors.Is(err, custom_err.ErrNotFound):
			log.Info("quote not found", slog.String("op", op), slog.String("pair", pair))
			response.WriteJSONError(w, log, http.StatusNotFound, "not_found", "Quote not found")
		default:
			log.Error("failed to get quote", slog.String("op", op), slog.String("error", err.Error()))
			response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Failed to retrieve quote")
		}
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, models.ToQuoteResponse(q))
}

// Convert godoc
// @Summary      Конвертация суммы
// @Description  Пересчёт по сохранённой котировке. Поддерживаются BRL, USD, BTC.
// @Tags         cotacoes
// @Produce      json
// @Param        amount path number true "Сумма"
// @Param        source path string true "Исходная валюта" example(BRL)
// @Param        dest   path string true "Целевая валюта" example(BTC)
// @Success      200 {object} models.ConversionResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /cotacoes/converter/{amount}/{source}/{dest} [get]
func (h *QuoteHandler) Convert(w http.ResponseWriter, r *http.Request) {
	const op = "handler.Convert"
	log := middlew.GetLogger(r.Context())

	rawAmount := chi.URLParam(r, "amount")
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		log.Warn("invalid amount", slog.String("op", op), slog.String("amount", rawAmount))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_amount", "Amount must be a number")
		return
	}

	from, to := chi.URLParam(r, "source"), chi.URLParam(r, "dest")

	res, err := h.service.Convert(r.Context(), amount, from, to)
	if err != nil {
		switch {
		case errors.Is(err, custom_err.ErrUnsupportedPair):
			log.Info("unsupported pair", slog.String("op", op), slog.String("from", from), slog.String("to", to))
			response.WriteJSONError(w, log, http.StatusBadRequest, "unsupported_pair", "Conversion pair not supported")
		case errors.Is(err, custom_err.ErrValidation):
			response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_amount", err.Error())
		case errors.Is(err, custom_err.ErrNotFound):
			log.Warn("quote missing for conversion", slog.String("op", op), slog.String("from", from), slog.String("to", to))
			response.WriteJSONError(w, log, http.StatusNotFound, "not_found", "Quote not available")
		default:
			log.Error("conversion failed", slog.String("op", op), slog.String("error", err.Error()))
			response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Conversion failed")
		}
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, models.ToConversionResponse(res, h.now()))
}
