package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"gw-eternal-pay/internal/custom_err"
	"gw-eternal-pay/internal/models"
	"gw-eternal-pay/internal/storage/postgres"

	"github.com/shopspring/decimal"
)

// divisionPrecision знаков после запятой при обратной конвертации
const divisionPrecision = 16

type Quotes interface {
	List(ctx context.Context) ([]*models.Quote, error)
	Get(ctx context.Context, pair string) (*models.Quote, error)
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (*models.ConversionResult, error)
}

type QuoteService struct {
	repo postgres.QuoteRepository
	log  *slog.Logger
}

func NewQuoteService(repo postgres.QuoteRepository, log *slog.Logger) *QuoteService {
	return &QuoteService{repo: repo, log: log}
}

func (s *QuoteService) List(ctx context.Context) ([]*models.Quote, error) {
	const op = "service.ListQuotes"

	quotes, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return quotes, nil
}

func (s *QuoteService) Get(ctx context.Context, pair string) (*models.Quote, error) {
	const op = "service.GetQuote"

	q, err := s.repo.GetByPair(ctx, models.NormalizePair(pair))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return q, nil
}

// Convert переводит amount из from в to по одной из шести поддерживаемых пар.
func (s *QuoteService) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (*models.ConversionResult, error) {
	const op = "service.Convert"

	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	formula, ok := models.LookupConversion(from, to)
	if !ok {
		return nil, fmt.Errorf("%s: %s -> %s: %w", op, from, to, custom_err.ErrUnsupportedPair)
	}
	if amount.IsNegative() || !representable(amount) {
		return nil, fmt.Errorf("%s: %w", op, custom_err.ErrInvalidAmount)
	}

	quote, err := s.repo.GetByPair(ctx, formula.Pair)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var converted decimal.Decimal
	if formula.Divide {
		if quote.Value.IsZero() {
			return nil, fmt.Errorf("%s: zero quote for %s", op, formula.Pair)
		}
		converted = amount.DivRound(quote.Value, divisionPrecision)
	} else {
		converted = amount.Mul(quote.Value)
	}
	if !representable(converted) {
		return nil, fmt.Errorf("%s: converted amount out of range: %w", op, custom_err.ErrInvalidAmount)
	}

	s.log.Debug("конвертация",
		slog.String("from", from),
		slog.String("to", to),
		slog.String("pair", formula.Pair),
		slog.String("amount", amount.String()),
		slog.String("converted", converted.String()))

	return &models.ConversionResult{
		OriginalAmount:  amount,
		SourceCurrency:  from,
		DestCurrency:    to,
		ConvertedAmount: converted,
		Rate:            quote.Value,
		QuotedAt:        quote.UpdatedAt,
	}, nil
}

// representable сообщает, помещается ли сумма в float64 ответа.
func representable(d decimal.Decimal) bool {
	f := d.InexactFloat64()
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
