package storage

const (
	// Transaction queries
	CreateTransactionQuery = `
		INSERT INTO transactions (
			code, amount, source_currency, dest_currency,
			conversion_rate, converted_amount, destination_key, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, code, amount, source_currency, dest_currency,
			conversion_rate, converted_amount, destination_key, status, created_at, updated_at
	`

	GetTransactionByCodeQuery = `
		SELECT id, code, amount, source_currency, dest_currency,
			conversion_rate, converted_amount, destination_key, status, created_at, updated_at
		FROM transactions
		WHERE code = $1
	`

	// Порядок вставки
	ListTransactionsQuery = `
		SELECT id, code, amount, source_currency, dest_currency,
			conversion_rate, converted_amount, destination_key, status, created_at, updated_at
		FROM transactions
		ORDER BY id
		OFFSET $1
		LIMIT $2
	`

	// Блокировка строки перед сменой статуса
	LockTransactionByCodeQuery = `
		SELECT id, status
		FROM transactions
		WHERE code = $1
		FOR UPDATE
	`

	UpdateTransactionStatusQuery = `
		UPDATE transactions
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING id, code, amount, source_currency, dest_currency,
			conversion_rate, converted_amount, destination_key, status, created_at, updated_at
	`

	// Строки, заблокированные параллельным обновлением статуса, пропускаются до следующего прохода
	CancelExpiredTransactionsQuery = `
		WITH stale AS (
			SELECT id
			FROM transactions
			WHERE status = 'pending' AND created_at < $1
			FOR UPDATE SKIP LOCKED
		)
		UPDATE transactions t
		SET status = 'cancelled', updated_at = $2
		FROM stale
		WHERE t.id = stale.id AND t.status = 'pending'
		RETURNING t.code, t.created_at, t.updated_at
	`

	// Quote queries
	UpsertQuoteQuery = `
		INSERT INTO quotes (id, pair_symbol, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (pair_symbol) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
		RETURNING id, pair_symbol, value, updated_at
	`

	GetQuoteByPairQuery = `
		SELECT id, pair_symbol, value, updated_at
		FROM quotes
		WHERE pair_symbol = $1
	`

	ListQuotesQuery = `
		SELECT id, pair_symbol, value, updated_at
		FROM quotes
		ORDER BY pair_symbol
	`

	// Notification queries
	// Повторная доставка того же события ничего не меняет
	InsertExpiryNotificationQuery = `
		INSERT INTO expiry_notifications (code, status, created_at, cancelled_at, dwell_seconds, received_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (code) DO NOTHING
	`
)
