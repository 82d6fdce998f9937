package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"gw-eternal-pay/internal/custom_err"
	"gw-eternal-pay/internal/models"
	"gw-eternal-pay/internal/storage"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleExpiredEvent() models.TransactionExpiredEvent {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return models.TransactionExpiredEvent{
		Code:         "OLD000000001",
		Status:       "cancelled",
		CreatedAt:    created,
		CancelledAt:  created.Add(31 * time.Minute),
		DwellSeconds: 1860,
	}
}

func TestPgNotificationRepository_SaveExpired(t *testing.T) {
	mock := newMockPool(t)
	repo := NewNotificationRepository(mock)
	ev := sampleExpiredEvent()
	at := ev.CancelledAt.Add(time.Second)

	mock.ExpectExec(storage.InsertExpiryNotificationQuery).
		WithArgs(ev.Code, ev.Status, ev.CreatedAt, ev.CancelledAt, ev.DwellSeconds, at).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	inserted, err := repo.SaveExpired(context.Background(), ev, at)

	require.NoError(t, err)
	assert.True(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgNotificationRepository_SaveExpired_Duplicate(t *testing.T) {
	mock := newMockPool(t)
	repo := NewNotificationRepository(mock)
	ev := sampleExpiredEvent()
	at := ev.CancelledAt

	mock.ExpectExec(storage.InsertExpiryNotificationQuery).
		WithArgs(ev.Code, ev.Status, ev.CreatedAt, ev.CancelledAt, ev.DwellSeconds, at).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	inserted, err := repo.SaveExpired(context.Background(), ev, at)

	require.NoError(t, err)
	assert.False(t, inserted)
}

func TestPgNotificationRepository_SaveExpired_Error(t *testing.T) {
	mock := newMockPool(t)
	repo := NewNotificationRepository(mock)
	ev := sampleExpiredEvent()

	mock.ExpectExec(storage.InsertExpiryNotificationQuery).
		WithArgs(ev.Code, ev.Status, ev.CreatedAt, ev.CancelledAt, ev.DwellSeconds, ev.CancelledAt).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.SaveExpired(context.Background(), ev, ev.CancelledAt)

	assert.ErrorIs(t, err, custom_err.ErrStorage)
}
