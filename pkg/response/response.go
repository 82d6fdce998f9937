package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type ErrorResponse struct {
	Error   string `json:"error" example:"validation_error"`
	Message string `json:"message,omitempty"`
}

func WriteJSONError(w http.ResponseWriter, log *slog.Logger, status int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: errCode, Message: message}); err != nil {
		log.Error("ошибка при кодировании JSON-ошибки", slog.String("error", err.Error()))
	}
}

// WriteJSONSuccess кодирует data до записи статуса; если кодирование не удалось, клиент получает 500.
func WriteJSONSuccess(w http.ResponseWriter, log *slog.Logger, status int, data any) {
	if data == nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		return
	}

	body, err := json.Marshal(data)
	if err != nil {
		log.Error("ошибка при кодировании JSON-ответа", slog.String("error", err.Error()))
		WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "Failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		log.Error("ошибка при записи JSON-ответа", slog.String("error", err.Error()))
	}
}

// WriteRawJSON отдаёт уже сериализованный JSON без повторного кодирования.
func WriteRawJSON(w http.ResponseWriter, log *slog.Logger, status int, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error("ошибка при записи JSON-ответа", slog.String("error", err.Error()))
	}
}
