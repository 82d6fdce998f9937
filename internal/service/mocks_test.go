package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"gw-eternal-pay/internal/models"
)

type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) Create(ctx context.Context, t *models.Transaction) (*models.Transaction, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) GetByCode(ctx context.Context, code string) (*models.Transaction, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) List(ctx context.Context, offset, limit int) ([]*models.Transaction, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) LockByCodeTx(ctx context.Context, tx pgx.Tx, code string) (int64, models.TransactionStatus, error) {
	args := m.Called(ctx, tx, code)
	return args.Get(0).(int64), args.Get(1).(models.TransactionStatus), args.Error(2)
}

func (m *MockTransactionRepo) UpdateStatusTx(ctx context.Context, tx pgx.Tx, id int64, status models.TransactionStatus, at time.Time) (*models.Transaction, error) {
	args := m.Called(ctx, tx, id, status, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockTransactionRepo) CancelExpired(ctx context.Context, cutoff, now time.Time) ([]models.ExpiredTransaction, error) {
	args := m.Called(ctx, cutoff, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ExpiredTransaction), args.Error(1)
}

type MockQuoteRepo struct {
	mock.Mock
}

func (m *MockQuoteRepo) Upsert(ctx context.Context, pair string, value decimal.Decimal, at time.Time) (*models.Quote, error) {
	args := m.Called(ctx, pair, value, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quote), args.Error(1)
}

func (m *MockQuoteRepo) GetByPair(ctx context.Context, pair string) (*models.Quote, error) {
	args := m.Called(ctx, pair)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quote), args.Error(1)
}

func (m *MockQuoteRepo) List(ctx context.Context) ([]*models.Quote, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Quote), args.Error(1)
}

type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(nil)
}

type MockPriceFetcher struct {
	mock.Mock
}

func (m *MockPriceFetcher) FetchPrice(ctx context.Context, base, quote string) (decimal.Decimal, error) {
	args := m.Called(ctx, base, quote)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockKafkaProducer struct {
	mock.Mock
}

func (m *MockKafkaProducer) PublishTransactionExpired(ctx context.Context, event models.TransactionExpiredEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockKafkaProducer) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockBRCodeGenerator struct {
	mock.Mock
}

func (m *MockBRCodeGenerator) GenerateBRCode(ctx context.Context, req models.BRCodeRequest) (json.RawMessage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}
