package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gw-eternal-pay/internal/custom_err"
	"gw-eternal-pay/internal/models"
	"gw-eternal-pay/internal/storage"

	"github.com/jackc/pgx/v5"
)

type TransactionRepository interface {
	Create(ctx context.Context, t *models.Transaction) (*models.Transaction, error)
	GetByCode(ctx context.Context, code string) (*models.Transaction, error)
	List(ctx context.Context, offset, limit int) ([]*models.Transaction, error)

	LockByCodeTx(ctx context.Context, tx pgx.Tx, code string) (int64, models.TransactionStatus, error)
	UpdateStatusTx(ctx context.Context, tx pgx.Tx, id int64, status models.TransactionStatus, at time.Time) (*models.Transaction, error)

	CancelExpired(ctx context.Context, cutoff, now time.Time) ([]models.ExpiredTransaction, error)
}

type PgTransactionRepository struct {
	db Querier
}

func NewTransactionRepository(db Querier) TransactionRepository {
	return &PgTransactionRepository{db: db}
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var t models.Transaction
	var status string
	err := row.Scan(
		&t.ID,
		&t.Code,
		&t.Amount,
		&t.SourceCurrency,
		&t.DestCurrency,
		&t.ConversionRate,
		&t.ConvertedAmount,
		&t.DestinationKey,
		&status,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Status = models.TransactionStatus(status)
	return &t, nil
}

func (r *PgTransactionRepository) Create(ctx context.Context, t *models.Transaction) (*models.Transaction, error) {
	const op = "storage.CreateTransaction"

	created, err := scanTransaction(r.db.QueryRow(ctx, storage.CreateTransactionQuery,
		t.Code,
		t.Amount,
		t.SourceCurrency,
		t.DestCurrency,
		t.ConversionRate,
		t.ConvertedAmount,
		t.DestinationKey,
		string(t.Status),
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: code %s: %w", op, t.Code, custom_err.ErrConflict)
		}
		return nil, storageErr(op, err)
	}
	return created, nil
}

func (r *PgTransactionRepository) GetByCode(ctx context.Context, code string) (*models.Transaction, error) {
	const op = "storage.GetTransactionByCode"

	t, err := scanTransaction(r.db.QueryRow(ctx, storage.GetTransactionByCodeQuery, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custom_err.ErrNotFound
		}
		return nil, storageErr(op, err)
	}
	return t, nil
}

func (r *PgTransactionRepository) List(ctx context.Context, offset, limit int) ([]*models.Transaction, error) {
	const op = "storage.ListTransactions"

	rows, err := r.db.Query(ctx, storage.ListTransactionsQuery, offset, limit)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	transactions := make([]*models.Transaction, 0, limit)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, storageErr(op, err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return transactions, nil
}

func (r *PgTransactionRepository) CancelExpired(ctx context.Context, cutoff, now time.Time) ([]models.ExpiredTransaction, error) {
	const op = "storage.CancelExpired"

	rows, err := r.db.Query(ctx, storage.CancelExpiredTransactionsQuery, cutoff, now)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer rows.Close()

	var expired []models.ExpiredTransaction
	for rows.Next() {
		var e models.ExpiredTransaction
		if err := rows.Scan(&e.Code, &e.CreatedAt, &e.CancelledAt); err != nil {
			return nil, storageErr(op, err)
		}
		expired = append(expired, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, err)
	}
	return expired, nil
}
