package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"gw-eternal-pay/internal/api/middlew"
	"gw-eternal-pay/internal/custom_err"
	"gw-eternal-pay/internal/models"
	"gw-eternal-pay/internal/service"
	"gw-eternal-pay/pkg/response"
)

type TransactionHandler struct {
	service service.Transactions
}

func NewTransactionHandler(service service.Transactions) *TransactionHandler {
	return &TransactionHandler{
		service: service,
	}
}

// Create godoc
// @Summary      Зарегистрировать транзакцию
// @Description  Сохраняет транзакцию конвертации в статусе pending. Код генерируется, если не передан.
// @Tags         transacoes
// @Accept       json
// @Produce      json
// @Param        request body models.CreateTransactionRequest true "Транзакция"
// @Success      200 {object} models.TransactionResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      409 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /transacoes/ [post]
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handler.CreateTransaction"
	log := middlew.GetLogger(r.Context())

	defer r.Body.Close()

	var req models.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	tx, err := h.service.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, custom_err.ErrValidation):
			log.Warn("validation failed", slog.String("op", op), slog.String("error", err.Error()))
			response.WriteJSONError(w, log, http.StatusBadRequest, "validation_error", err.Error())
		case errors.Is(err, custom_err.ErrConflict):
			log.Info("transaction code already exists", slog.String("op", op), slog.String("code", req.Code))
			response.WriteJSONError(w, log, http.StatusConflict, "conflict", "Transaction code already exists")
		default:
			log.Error("failed to create transaction", slog.String("op", op), slog.String("error", err.Error()))
			response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", failureMessage("Failed to create transaction", err))
		}
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, models.ToTransactionResponse(tx))
}

// List godoc
// @Summary      Список транзакций
// @Description  Страница транзакций по возрастанию id
// @Tags         transacoes
// @Produce      json
// @Param        skip  query int false "Сколько пропустить" default(0)
// @Param        limit query int false "Размер страницы (не больше 100)" default(100)
// @Success      200 {array} models.TransactionResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /transacoes/ [get]
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handler.ListTransactions"
	log := middlew.GetLogger(r.Context())

	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_request", "skip must be an integer")
		return
	}
	limit, err := queryInt(r, "limit", models.DefaultPageLimit)
	if err != nil {
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_request", "limit must be an integer")
		return
	}

	list, err := h.service.List(r.Context(), skip, limit)
	if err != nil {
		if errors.Is(err, custom_err.ErrValidation) {
			response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		log.Error("failed to list transactions", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", failureMessage("Failed to list transactions", err))
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, models.ToTransactionResponses(list))
}

// Get godoc
// @Summary      Транзакция по коду
// @Tags         transacoes
// @Produce      json
// @Param        code path string true "Код транзакции"
// @Success      200 {object} models.TransactionResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /transacoes/{code} [get]
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "handler.GetTransaction"
	log := middlew.GetLogger(r.Context())

	code := chi.URLParam(r, "code")

	tx, err := h.service.Get(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, custom_err.ErrNotFound):
			log.Info("transaction not found", slog.String("op", op), slog.String("code", code))
			response.WriteJSONError(w, log, http.StatusNotFound, "not_found", "Transaction not found")
		default:
			log.Error("failed to get transaction", slog.String("op", op), slog.String("error", err.Error()))
			response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", failureMessage("Failed to retrieve transaction", err))
		}
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, models.ToTransactionResponse(tx))
}

// UpdateStatus godoc
// @Summary      Сменить статус транзакции
// @Description  Статус берётся из query-параметра status, иначе из JSON-тела {"status": "..."}
// @Tags         transacoes
// @Accept       json
// @Produce      json
// @Param        code   path  string true  "Код транзакции"
// @Param        status query string false "Новый статус" Enums(pending, processing, completed, failed, cancelled)
// @Param        request body models.UpdateStatusRequest false "Статус в теле"
// @Success      200 {object} models.MessageResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /transacoes/{code}/status [put]
func (h *TransactionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	const op = "handler.UpdateTransactionStatus"
	log := middlew.GetLogger(r.Context())

	defer r.Body.Close()

	code := chi.URLParam(r, "code")

	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if status == "" {
		var req models.UpdateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Warn("status is missing", slog.String("op", op), slog.String("code", code))
			response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_request", "status is required")
			return
		}
		status = strings.TrimSpace(req.Status)
	}

	_, err := h.service.UpdateStatus(r.Context(), code, models.TransactionStatus(strings.ToLower(status)))
	if err != nil {
		switch {
		case errors.Is(err, custom_err.ErrValidation):
			log.Warn("invalid status", slog.String("op", op), slog.String("status", status))
			response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_status", err.Error())
		case errors.Is(err, custom_err.ErrNotFound):
			log.Info("transaction not found", slog.String("op", op), slog.String("code", code))
			response.WriteJSONError(w, log, http.StatusNotFound, "not_found", "Transaction not found")
		default:
			log.Error("failed to update status", slog.String("op", op), slog.String("error", err.Error()))
			response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", failureMessage("Failed to update transaction status", err))
		}
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusOK, models.MessageResponse{Message: "Status updated successfully"})
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// failureMessage добавляет текст ошибки хранилища к общему сообщению.
func failureMessage(msg string, err error) string {
	if errors.Is(err, custom_err.ErrStorage) {
		return msg + ": " + err.Error()
	}
	return msg
}
