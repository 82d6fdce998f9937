package postgres

import (
	"context"
	"time"

	"gw-eternal-pay/internal/models"
	"gw-eternal-pay/internal/storage"
)

type NotificationRepository interface {
	// SaveExpired возвращает false, если событие по этому коду уже было записано.
	SaveExpired(ctx context.Context, event models.TransactionExpiredEvent, receivedAt time.Time) (bool, error)
}

type PgNotificationRepository struct {
	db Querier
}

func NewNotificationRepository(db Querier) NotificationRepository {
	return &PgNotificationRepository{db: db}
}

func (r *PgNotificationRepository) SaveExpired(ctx context.Context, event models.TransactionExpiredEvent, receivedAt time.Time) (bool, error) {
	const op = "storage.SaveExpiryNotification"

	tag, err := r.db.Exec(ctx, storage.InsertExpiryNotificationQuery,
		event.Code,
		event.Status,
		event.CreatedAt,
		event.CancelledAt,
		event.DwellSeconds,
		receivedAt,
	)
	if err != nil {
		return false, storageErr(op, err)
	}
	return tag.RowsAffected() == 1, nil
}
