package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gw-eternal-pay/internal/custom_err"
	"gw-eternal-pay/internal/models"
	"gw-eternal-pay/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type QuoteRepository interface {
	Upsert(ctx context.Context, pair string, value decimal.Decimal, at time.Time) (*models.Quote, error)
	GetByPair(ctx context.Context, pair string) (*models.Quote, error)
	List(ctx context.Context) ([]*models.Quote, error)
}

type PgQuoteRepository struct {
	db Querier
}

func NewQuoteRepository(db Querier) QuoteRepository {
	return &PgQuoteRepository{db: db}
}

func scanQuote(row pgx.Row) (*models.Quote, error) {
	var q models.Quote
	if err := row.Scan(&q.ID, &q.PairSymbol, &q.Value, &q.UpdatedAt); err != nil {
		return nil, err
	}
	return &q, nil
}

// Upsert вставляет курс или перезаписывает значение существующей пары одним запросом.
func (r *PgQuoteRepository) Upsert(ctx context.Context, pair string, value decimal.Decimal, at time.Time) (*models.Quote, error) {
	const op = "storage.UpsertQuote"

	q, err := scanQuote(r.db.QueryRow(ctx, storage.UpsertQuoteQuery, uuid.New(), pair, value, at))
	if err != nil {
		return nil, storageErr(op, err)
	}
	return q, nil
}

func (r *PgQuoteRepository) GetByPair(ctx context.Context, pair string) (*models.Quote, error) {
	const op = "storage.GetQuoteByPair"

	q, err := scanQuote(r.db.QueryRow(ctx, storage.GetQuoteByPairQuery, pair))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("quote %s: %w", pair, custom_err.ErrNotFound)
		}
		return nil, storageErr(op, err)
	}
	return q, nil
}

func (r *PgQuoteRepository) List(ctx context.Context) ([]*models.Quote, error) {
	const op = "storage.ListQuotes"

	rows, err := r.db.Query(ctx, storage.ListQuotesQuery)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	quotes := make([]*models.Quote, 0, 3)
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, storageErr(op, err)
		}
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return quotes, nil
}
