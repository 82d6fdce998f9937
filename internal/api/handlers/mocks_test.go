package handlers

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"gw-eternal-pay/internal/models"
)

type mockTransactions struct {
	mock.Mock
}

func (m *mockTransactions) Create(ctx context.Context, req models.CreateTransactionRequest) (*models.Transaction, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *mockTransactions) Get(ctx context.Context, code string) (*models.Transaction, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *mockTransactions) List(ctx context.Context, skip, limit int) ([]*models.Transaction, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Transaction), args.Error(1)
}

func (m *mockTransactions) UpdateStatus(ctx context.Context, code string, status models.TransactionStatus) (*models.Transaction, error) {
	args := m.Called(ctx, code, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

type mockQuotes struct {
	mock.Mock
}

func (m *mockQuotes) List(ctx context.Context) ([]*models.Quote, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Quote), args.Error(1)
}

func (m *mockQuotes) Get(ctx context.Context, pair string) (*models.Quote, error) {
	args := m.Called(ctx, pair)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quote), args.Error(1)
}

func (m *mockQuotes) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (*models.ConversionResult, error) {
	args := m.Called(ctx, amount, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConversionResult), args.Error(1)
}

type mockPix struct {
	mock.Mock
}

func (m *mockPix) BRCode(ctx context.Context, req models.BRCodeRequest) (json.RawMessage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

type mockPinger struct {
	err error
}

func (m mockPinger) Ping(ctx context.Context) error { return m.err }
