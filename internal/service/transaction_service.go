package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gw-eternal-pay/internal/custom_err"
	"gw-eternal-pay/internal/metrics"
	"gw-eternal-pay/internal/models"
	"gw-eternal-pay/internal/storage/postgres"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
)

const maxCodeAttempts = 3

type Transactions interface {
	Create(ctx context.Context, req models.CreateTransactionRequest) (*models.Transaction, error)
	Get(ctx context.Context, code string) (*models.Transaction, error)
	List(ctx context.Context, skip, limit int) ([]*models.Transaction, error)
	UpdateStatus(ctx context.Context, code string, status models.TransactionStatus) (*models.Transaction, error)
}

type TransactionService struct {
	repo      postgres.TransactionRepository
	txManager TxManager
	validate  *validator.Validate
	newCode   func() (string, error)
	now       func() time.Time
	log       *slog.Logger
}

func NewTransactionService(repo postgres.TransactionRepository, txManager TxManager, log *slog.Logger) *TransactionService {
	return &TransactionService{
		repo:      repo,
		txManager: txManager,
		validate:  newValidator(),
		newCode:   GenerateTransactionCode,
		now:       time.Now,
		log:       log,
	}
}

func (s *TransactionService) Create(ctx context.Context, req models.CreateTransactionRequest) (*models.Transaction, error) {
	const op = "service.CreateTransaction"

	req = req.Normalize()
	if err := s.validateDraft(req); err != nil {
		return nil, err
	}

	draft := &models.Transaction{
		Code:            req.Code,
		Amount:          req.Amount,
		SourceCurrency:  req.SourceCurrency,
		DestCurrency:    req.DestCurrency,
		ConversionRate:  req.ConversionRate,
		ConvertedAmount: req.ConvertedAmount,
		DestinationKey:  req.DestinationKey,
		Status:          models.StatusPending,
	}

	attempts := 1
	if draft.Code == "" {
		attempts = maxCodeAttempts
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if req.Code == "" {
			code, err := s.newCode()
			if err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			draft.Code = code
		}

		created, err := s.repo.Create(ctx, draft)
		if err == nil {
			metrics.TransactionsCreatedTotal.Inc()
			s.log.Info("транзакция создана",
				slog.String("op", op),
				slog.String("code", created.Code),
				slog.String("from", created.SourceCurrency),
				slog.String("to", created.DestCurrency),
				slog.String("amount", created.Amount.String()))
			return created, nil
		}
		if !errors.Is(err, custom_err.ErrConflict) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		lastErr = err
		s.log.Warn("код транзакции уже существует",
			slog.String("op", op),
			slog.String("code", draft.Code),
			slog.Int("attempt", i+1))
	}

	return nil, fmt.Errorf("%s: %w", op, lastErr)
}

func (s *TransactionService) validateDraft(req models.CreateTransactionRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return validationError(err)
	}
	if err := checkStoredAmount("valor", req.Amount); err != nil {
		return err
	}
	if err := checkStoredAmount("taxa_conversao", req.ConversionRate); err != nil {
		return err
	}
	return checkStoredAmount("valor_convertido", req.ConvertedAmount)
}

func (s *TransactionService) Get(ctx context.Context, code string) (*models.Transaction, error) {
	const op = "service.GetTransaction"

	t, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// List отдаёт транзакции в порядке вставки; limit больше MaxPageLimit урезается.
func (s *TransactionService) List(ctx context.Context, skip, limit int) ([]*models.Transaction, error) {
	const op = "service.ListTransactions"

	if skip < 0 || limit < 0 {
		return nil, custom_err.ErrInvalidPaging
	}
	if limit > models.MaxPageLimit {
		limit = models.MaxPageLimit
	}
	if limit == 0 {
		return []*models.Transaction{}, nil
	}

	list, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// UpdateStatus блокирует строку и выставляет новый статус; переходы между статусами не ограничиваются.
func (s *TransactionService) UpdateStatus(ctx context.Context, code string, status models.TransactionStatus) (*models.Transaction, error) {
	const op = "service.UpdateTransactionStatus"

	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", custom_err.ErrInvalidStatus, status)
	}

	var updated *models.Transaction
	var previous models.TransactionStatus
	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		id, current, err := s.repo.LockByCodeTx(ctx, tx, code)
		if err != nil {
			return err
		}
		previous = current

		updated, err = s.repo.UpdateStatusTx(ctx, tx, id, status, s.now().UTC())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("статус транзакции изменён",
		slog.String("op", op),
		slog.String("code", code),
		slog.String("from", string(previous)),
		slog.String("to", string(updated.Status)))

	return updated, nil
}
