package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"gw-eternal-pay/internal/custom_err"
	"gw-eternal-pay/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// колонки сумм NUMERIC(18,8): 8 знаков после запятой, до 10 целых
const (
	amountScale    = 8
	amountIntLimit = 10
)

var amountUpperBound = decimal.New(1, amountIntLimit)

// checkStoredAmount проверяет, что сумма останется положительной после округления колонкой
// и поместится в её целую часть.
func checkStoredAmount(field string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return fmt.Errorf("%w: %s must be greater than zero", custom_err.ErrValidation, field)
	}
	rounded := d.Round(amountScale)
	if !rounded.IsPositive() {
		return fmt.Errorf("%w: %s is below the minimum of 0.00000001", custom_err.ErrValidation, field)
	}
	if rounded.GreaterThanOrEqual(amountUpperBound) {
		return fmt.Errorf("%w: %s must be less than 10000000000", custom_err.ErrValidation, field)
	}
	return nil
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// validationError переводит ошибки validator в ErrValidation с перечнем полей.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", custom_err.ErrValidation, err)
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", custom_err.ErrValidation, strings.Join(parts, "; "))
}

// GenerateTransactionCode 12 символов из A-Z0-9
func GenerateTransactionCode() (string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))
	b := make([]byte, models.TransactionCodeLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate transaction code: %w", err)
		}
		b[i] = codeAlphabet[n.Int64()]
	}
	return string(b), nil
}
