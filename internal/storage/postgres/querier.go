package postgres

import (
	"context"
	"errors"
	"fmt"

	"gw-eternal-pay/internal/custom_err"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// Querier общий интерфейс для *pgxpool.Pool, pgx.Tx и pgxmock
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, custom_err.ErrStorage, err)
}
