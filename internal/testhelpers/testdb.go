package testhelpers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"gw-eternal-pay/internal/db"
)

// TestDB пул к отдельной тестовой базе. Адрес берётся из TEST_DATABASE_URL, без него тест пропускается.
type TestDB struct {
	Pool *pgxpool.Pool
	url  string
}

func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL не задан")
	}

	cfg := db.DefaultPoolConfig("gw-eternal-pay-test")
	cfg.RetryAttempts = 1

	pool, err := db.NewPool(context.Background(), url, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	return &TestDB{Pool: pool, url: url}
}

func (d *TestDB) RunMigrations(t *testing.T) {
	t.Helper()

	path := os.Getenv("TEST_MIGRATIONS_PATH")
	if path == "" {
		path = "../../migrations"
	}
	_, err := db.RunMigrations(d.url, path)
	require.NoError(t, err)
}

func (d *TestDB) CleanupDB(t *testing.T) {
	t.Helper()

	_, err := d.Pool.Exec(context.Background(), "TRUNCATE transactions, quotes RESTART IDENTITY")
	require.NoError(t, err)
}

// SeedPendingTransaction вставляет pending-транзакцию с created_at в прошлом на age.
func (d *TestDB) SeedPendingTransaction(t *testing.T, code string, age time.Duration) {
	t.Helper()

	_, err := d.Pool.Exec(context.Background(), `
		INSERT INTO transactions (
			code, amount, source_currency, dest_currency,
			conversion_rate, converted_amount, destination_key, status, created_at
		)
		VALUES ($1, 100, 'BRL', 'BTC', 0.000002, 0.0002, 'bc1qseed', 'pending', $2)`,
		code, time.Now().Add(-age))
	require.NoError(t, err, fmt.Sprintf("seed %s", code))
}

func (d *TestDB) TeardownTestDB() {
	d.Pool.Close()
}
