package models

import "time"

// событие об автоматической отмене просроченной транзакции
type TransactionExpiredEvent struct {
	Code         string    `json:"codigo_transacao"` // Код транзакции
	Status       string    `json:"status"`           // Новый статус (cancelled)
	CreatedAt    time.Time `json:"criado_em"`        // Время создания
	CancelledAt  time.Time `json:"cancelado_em"`     // Время отмены
	DwellSeconds float64   `json:"dwell_seconds"`    // Сколько транзакция провисела в pending
}

func NewTransactionExpiredEvent(e ExpiredTransaction) TransactionExpiredEvent {
	return TransactionExpiredEvent{
		Code:         e.Code,
		Status:       string(StatusCancelled),
		CreatedAt:    e.CreatedAt,
		CancelledAt:  e.CancelledAt,
		DwellSeconds: e.Dwell().Seconds(),
	}
}
