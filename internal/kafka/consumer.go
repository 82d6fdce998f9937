package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"

	"gw-eternal-pay/internal/models"
	"gw-eternal-pay/internal/storage/postgres"
)

// Consumer читает события об отмене просроченных транзакций и записывает их в журнал уведомлений.
type Consumer struct {
	consumerGroup sarama.ConsumerGroup
	handler       *consumerGroupHandler
	topic         string
	workers       int
	log           *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewConsumer(brokers []string, groupID, topic string, workers int, repo postgres.NotificationRepository, log *slog.Logger) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V3_0_0_0
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	config.Consumer.Return.Errors = true

	consumerGroup, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	if workers < 1 {
		workers = 1
	}

	log.Info("kafka consumer создан",
		slog.String("group_id", groupID),
		slog.String("topic", topic),
		slog.Int("workers", workers))

	return &Consumer{
		consumerGroup: consumerGroup,
		handler:       newConsumerGroupHandler(repo, log),
		topic:         topic,
		workers:       workers,
		log:           log,
	}, nil
}

func (c *Consumer) Start() {
	c.log.Info("запуск kafka consumer")

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go func(workerID int) {
			defer c.wg.Done()
			c.log.Info("воркер запущен", slog.Int("worker_id", workerID))

			for {
				// Consume возвращается после каждой сессии, в том числе после ошибки в ConsumeClaim
				if err := c.consumerGroup.Consume(ctx, []string{c.topic}, c.handler); err != nil {
					if errors.Is(err, sarama.ErrClosedConsumerGroup) {
						return
					}
					c.log.Error("ошибка consume",
						slog.Int("worker_id", workerID),
						slog.String("error", err.Error()))
					select {
					case <-ctx.Done():
					case <-time.After(c.handler.retryDelay):
					}
				}

				if ctx.Err() != nil {
					return
				}
			}
		}(i)
	}

	go func() {
		for err := range c.consumerGroup.Errors() {
			c.log.Error("ошибка consumer group", slog.String("error", err.Error()))
		}
	}()
}

func (c *Consumer) Shutdown(ctx context.Context) error {
	c.log.Info("закрытие kafka consumer")
	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		if err := c.consumerGroup.Close(); err != nil {
			c.log.Error("failed to close consumer group", slog.String("error", err.Error()))
		}
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.log.Info("kafka consumer закрыт")
		return nil
	case <-ctx.Done():
		c.log.Warn("kafka consumer close timeout")
		return ctx.Err()
	}
}

// пауза перед перезапуском сессии после ошибки записи
const defaultRetryDelay = 5 * time.Second

type consumerGroupHandler struct {
	repo       postgres.NotificationRepository
	now        func() time.Time
	retryDelay time.Duration
	log        *slog.Logger
}

func newConsumerGroupHandler(repo postgres.NotificationRepository, log *slog.Logger) *consumerGroupHandler {
	return &consumerGroupHandler{repo: repo, now: time.Now, retryDelay: defaultRetryDelay, log: log}
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim останавливает разбор партиции на первом сообщении, которое не удалось записать.
// Offset после него не коммитится, новая сессия начнёт с этого сообщения.
func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		if err := h.processMessage(session.Context(), message); err != nil {
			h.log.Error("failed to process message",
				slog.String("topic", message.Topic),
				slog.Int("partition", int(message.Partition)),
				slog.Int64("offset", message.Offset),
				slog.String("error", err.Error()))

			select {
			case <-session.Context().Done():
			case <-time.After(h.retryDelay):
			}
			return fmt.Errorf("partition %d offset %d: %w", message.Partition, message.Offset, err)
		}
		session.MarkMessage(message, "")
	}
	return nil
}

func (h *consumerGroupHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	h.log.Debug("получено сообщение из kafka",
		slog.String("topic", message.Topic),
		slog.Int("partition", int(message.Partition)),
		slog.Int64("offset", message.Offset))

	var event models.TransactionExpiredEvent
	if err := json.Unmarshal(message.Value, &event); err != nil || event.Code == "" {
		// битое сообщение пропускаем, иначе оно заблокирует партицию
		h.log.Error("ошибка десериализации сообщения",
			slog.String("raw_message", string(message.Value)))
		return nil
	}

	inserted, err := h.repo.SaveExpired(ctx, event, h.now().UTC())
	if err != nil {
		return err
	}

	if !inserted {
		h.log.Info("повторное событие об отмене, пропущено", slog.String("code", event.Code))
		return nil
	}

	h.log.Info("уведомление об отмене записано",
		slog.String("code", event.Code),
		slog.Float64("dwell_seconds", event.DwellSeconds))
	return nil
}
