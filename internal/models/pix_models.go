package models

import "github.com/shopspring/decimal"

// BRCodeRequest параметры генерации Pix BR Code
type BRCodeRequest struct {
	Name      string `validate:"required"`
	City      string `validate:"required"`
	Amount    decimal.Decimal
	Key       string `validate:"required"`
	Reference string `validate:"required"`
}
