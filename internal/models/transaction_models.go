package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus состояние жизненного цикла транзакции
type TransactionStatus string

const (
	StatusPending    TransactionStatus = "pending"
	StatusProcessing TransactionStatus = "processing"
	StatusCompleted  TransactionStatus = "completed"
	StatusFailed     TransactionStatus = "failed"
	StatusCancelled  TransactionStatus = "cancelled"
)

// IsValid проверяет, что статус входит в допустимый набор
func (s TransactionStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

func AllStatuses() []TransactionStatus {
	return []TransactionStatus{StatusPending, StatusProcessing, StatusCompleted, StatusFailed, StatusCancelled}
}

const (
	TransactionCodeLength = 12
	DefaultPageLimit      = 100
	MaxPageLimit          = 100
)

// Transaction запись в таблице transactions
type Transaction struct {
	ID              int64
	Code            string
	Amount          decimal.Decimal
	SourceCurrency  string
	DestCurrency    string
	ConversionRate  decimal.Decimal
	ConvertedAmount decimal.Decimal
	DestinationKey  string
	Status          TransactionStatus
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

// CreateTransactionRequest тело POST /transacoes/
type CreateTransactionRequest struct {
	Code            string          `json:"codigo_transacao,omitempty" validate:"omitempty,len=12,alphanum,uppercase"`
	Amount          decimal.Decimal `json:"valor" swaggertype:"number"`
	SourceCurrency  string          `json:"moeda_origem" validate:"required,len=3,alpha"`
	DestCurrency    string          `json:"moeda_destino" validate:"required,len=3,alpha"`
	ConversionRate  decimal.Decimal `json:"taxa_conversao" swaggertype:"number"`
	ConvertedAmount decimal.Decimal `json:"valor_convertido" swaggertype:"number"`
	DestinationKey  string          `json:"chave_destino" validate:"required"`
}

// Normalize приводит коды валют к верхнему регистру
func (r CreateTransactionRequest) Normalize() CreateTransactionRequest {
	r.Code = strings.TrimSpace(r.Code)
	r.SourceCurrency = strings.ToUpper(strings.TrimSpace(r.SourceCurrency))
	r.DestCurrency = strings.ToUpper(strings.TrimSpace(r.DestCurrency))
	r.DestinationKey = strings.TrimSpace(r.DestinationKey)
	return r
}

// UpdateStatusRequest тело PUT /transacoes/{code}/status, если статус не передан в query
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// TransactionResponse представление транзакции для клиента
type TransactionResponse struct {
	ID              int64      `json:"id"`
	Code            string     `json:"codigo_transacao"`
	Amount          float64    `json:"valor"`
	SourceCurrency  string     `json:"moeda_origem"`
	DestCurrency    string     `json:"moeda_destino"`
	ConversionRate  float64    `json:"taxa_conversao"`
	ConvertedAmount float64    `json:"valor_convertido"`
	DestinationKey  string     `json:"chave_destino"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"criado_em"`
	UpdatedAt       *time.Time `json:"atualizado_em"`
}

func ToTransactionResponse(t *Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		Code:            t.Code,
		Amount:          t.Amount.InexactFloat64(),
		SourceCurrency:  t.SourceCurrency,
		DestCurrency:    t.DestCurrency,
		ConversionRate:  t.ConversionRate.InexactFloat64(),
		ConvertedAmount: t.ConvertedAmount.InexactFloat64(),
		DestinationKey:  t.DestinationKey,
		Status:          string(t.Status),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func ToTransactionResponses(list []*Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, ToTransactionResponse(t))
	}
	return out
}

// ExpiredTransaction строка, отменённая сборщиком просроченных транзакций
type ExpiredTransaction struct {
	Code        string
	CreatedAt   time.Time
	CancelledAt time.Time
}

// Dwell время, которое транзакция провела в pending
func (e ExpiredTransaction) Dwell() time.Duration {
	return e.CancelledAt.Sub(e.CreatedAt)
}
