package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gw-eternal-pay/internal/kafka"
	"gw-eternal-pay/internal/metrics"
	"gw-eternal-pay/internal/models"
	"gw-eternal-pay/internal/storage/postgres"
)

type SweeperConfig struct {
	Interval    time.Duration
	PendingTTL  time.Duration
	TickTimeout time.Duration
}

// ExpirySweeper отменяет транзакции, которые дольше PendingTTL находятся в pending.
type ExpirySweeper struct {
	repo     postgres.TransactionRepository
	producer kafka.Producer
	cfg      SweeperConfig
	now      func() time.Time
	log      *slog.Logger

	loop *fixedDelayLoop
}

func NewExpirySweeper(repo postgres.TransactionRepository, producer kafka.Producer, cfg SweeperConfig, log *slog.Logger) *ExpirySweeper {
	if cfg.TickTimeout <= 0 {
		cfg.TickTimeout = cfg.Interval
	}
	s := &ExpirySweeper{
		repo:     repo,
		producer: producer,
		cfg:      cfg,
		now:      time.Now,
		log:      log,
	}
	s.loop = newFixedDelayLoop("expiry_sweeper", cfg.Interval, cfg.TickTimeout, s.tick, log)
	return s
}

func (s *ExpirySweeper) Start() {
	s.loop.Start()
}

func (s *ExpirySweeper) Shutdown(ctx context.Context) error {
	return s.loop.Shutdown(ctx)
}

func (s *ExpirySweeper) tick(ctx context.Context) error {
	_, err := s.SweepOnce(ctx)
	return err
}

// SweepOnce одним запросом переводит просроченные pending в cancelled и сообщает о каждой отменённой строке.
func (s *ExpirySweeper) SweepOnce(ctx context.Context) ([]models.ExpiredTransaction, error) {
	const op = "service.SweepOnce"

	now := s.now().UTC()
	expired, err := s.repo.CancelExpired(ctx, now.Add(-s.cfg.PendingTTL), now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(expired) == 0 {
		return expired, nil
	}

	metrics.TransactionsExpiredTotal.Add(float64(len(expired)))
	for _, e := range expired {
		s.log.Info("транзакция отменена по таймауту",
			slog.String("code", e.Code),
			slog.Time("created_at", e.CreatedAt),
			slog.Time("cancelled_at", e.CancelledAt),
			slog.Duration("dwell", e.Dwell()))

		if err := s.producer.PublishTransactionExpired(ctx, models.NewTransactionExpiredEvent(e)); err != nil {
			s.log.Error("не удалось отправить событие об отмене",
				slog.String("code", e.Code),
				slog.String("error", err.Error()))
		}
	}

	s.log.Info("проход по просроченным транзакциям завершён", slog.Int("cancelled", len(expired)))
	return expired, nil
}
