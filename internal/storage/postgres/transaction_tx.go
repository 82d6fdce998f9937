package postgres

import (
	"context"
	"errors"
	"time"

	"gw-eternal-pay/internal/custom_err"
	"gw-eternal-pay/internal/models"
	"gw-eternal-pay/internal/storage"

	"github.com/jackc/pgx/v5"
)

func (r *PgTransactionRepository) LockByCodeTx(ctx context.Context, tx pgx.Tx, code string) (int64, models.TransactionStatus, error) {
	const op = "storage.LockByCodeTx"

	var id int64
	var status string
	err := tx.QueryRow(ctx, storage.LockTransactionByCodeQuery, code).Scan(&id, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, "", custom_err.ErrNotFound
		}
		return 0, "", storageErr(op, err)
	}
	return id, models.TransactionStatus(status), nil
}

func (r *PgTransactionRepository) UpdateStatusTx(ctx context.Context, tx pgx.Tx, id int64, status models.TransactionStatus, at time.Time) (*models.Transaction, error) {
	const op = "storage.UpdateStatusTx"

	t, err := scanTransaction(tx.QueryRow(ctx, storage.UpdateTransactionStatusQuery, string(status), at, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custom_err.ErrNotFound
		}
		return nil, storageErr(op, err)
	}
	return t, nil
}
