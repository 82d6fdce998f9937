package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gw-eternal-pay/internal/custom_err"
	"gw-eternal-pay/internal/models"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func setupTransactionService() (*TransactionService, *MockTransactionRepo, *MockTxManager) {
	repo := new(MockTransactionRepo)
	txManager := new(MockTxManager)

	service := &TransactionService{
		repo:      repo,
		txManager: txManager,
		validate:  newValidator(),
		newCode:   GenerateTransactionCode,
		now:       func() time.Time { return fixedNow },
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	return service, repo, txManager
}

func validDraft() models.CreateTransactionRequest {
	return models.CreateTransactionRequest{
		Amount:          decimal.NewFromInt(100),
		SourceCurrency:  "brl",
		DestCurrency:    "btc",
		ConversionRate:  decimal.RequireFromString("0.000002"),
		ConvertedAmount: decimal.RequireFromString("0.0002"),
		DestinationKey:  "bc1qexample",
	}
}

func TestTransactionService_Create_ForcesPendingAndGeneratesCode(t *testing.T) {
	service, repo, _ := setupTransactionService()
	ctx := context.Background()

	var generated string
	repo.On("Create", ctx, mock.MatchedBy(func(t *models.Transaction) bool {
		generated = t.Code
		return t.Status == models.StatusPending &&
			t.SourceCurrency == "BRL" &&
			t.DestCurrency == "BTC" &&
			regexp.MustCompile(`^[A-Z0-9]{12}$`).MatchString(t.Code)
	})).Return(&models.Transaction{ID: 1, Code: "GENERATED001", Status: models.StatusPending, CreatedAt: fixedNow}, nil)

	got, err := service.Create(ctx, validDraft())

	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Len(t, generated, models.TransactionCodeLength)
	assert.Nil(t, got.UpdatedAt)
	repo.AssertExpectations(t)
}

func TestTransactionService_Create_RoundTripThroughGet(t *testing.T) {
	service, repo, _ := setupTransactionService()
	ctx := context.Background()
	service.newCode = func() (string, error) { return "ROUNDTRIP001", nil }

	stored := &models.Transaction{
		ID:              1,
		Code:            "ROUNDTRIP001",
		Amount:          decimal.NewFromInt(100),
		SourceCurrency:  "BRL",
		DestCurrency:    "BTC",
		ConversionRate:  decimal.RequireFromString("0.000002"),
		ConvertedAmount: decimal.RequireFromString("0.0002"),
		DestinationKey:  "bc1qexample",
		Status:          models.StatusPending,
		CreatedAt:       fixedNow,
	}
	repo.On("Create", ctx, mock.AnythingOfType("*models.Transaction")).Return(stored, nil)
	repo.On("GetByCode", ctx, "ROUNDTRIP001").Return(stored, nil)

	created, err := service.Create(ctx, validDraft())
	require.NoError(t, err)

	got, err := service.Get(ctx, created.Code)

	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, models.StatusPending, got.Status)
}

func TestTransactionService_Create_KeepsClientCode(t *testing.T) {
	service, repo, _ := setupTransactionService()
	ctx := context.Background()
	draft := validDraft()
	draft.Code = "CLIENT123456"

	repo.On("Create", ctx, mock.MatchedBy(func(t *models.Transaction) bool {
		return t.Code == "CLIENT123456" && t.Status == models.StatusPending
	})).Return(&models.Transaction{Code: "CLIENT123456", Status: models.StatusPending}, nil)

	got, err := service.Create(ctx, draft)

	require.NoError(t, err)
	assert.Equal(t, "CLIENT123456", got.Code)
	repo.AssertExpectations(t)
}

func TestTransactionService_Create_ClientCodeCollision(t *testing.T) {
	service, repo, _ := setupTransactionService()
	ctx := context.Background()
	draft := validDraft()
	draft.Code = "TAKEN0000001"

	repo.On("Create", ctx, mock.Anything).Return(nil, custom_err.ErrConflict).Once()

	got, err := service.Create(ctx, draft)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, custom_err.ErrConflict)
	repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestTransactionService_Create_GeneratedCodeCollisionRetries(t *testing.T) {
	service, repo, _ := setupTransactionService()
	ctx := context.Background()

	codes := []string{"DUPLICATE001", "FRESHCODE002"}
	service.newCode = func() (string, error) {
		c := codes[0]
		codes = codes[1:]
		return c, nil
	}

	repo.On("Create", ctx, mock.MatchedBy(func(t *models.Transaction) bool { return t.Code == "DUPLICATE001" })).
		Return(nil, custom_err.ErrConflict).Once()
	repo.On("Create", ctx, mock.MatchedBy(func(t *models.Transaction) bool { return t.Code == "FRESHCODE002" })).
		Return(&models.Transaction{Code: "FRESHCODE002", Status: models.StatusPending}, nil).Once()

	got, err := service.Create(ctx, validDraft())

	require.NoError(t, err)
	assert.Equal(t, "FRESHCODE002", got.Code)
	repo.AssertExpectations(t)
}

func TestTransactionService_Create_ForcedCollisionExhaustsAttempts(t *testing.T) {
	service, repo, _ := setupTransactionService()
	ctx := context.Background()
	service.newCode = func() (string, error) { return "SAMECODE0000", nil }

	repo.On("Create", ctx, mock.Anything).Return(nil, custom_err.ErrConflict)

	_, err := service.Create(ctx, validDraft())

	assert.ErrorIs(t, err, custom_err.ErrConflict)
	repo.AssertNumberOfCalls(t, "Create", maxCodeAttempts)
}

func TestTransactionService_Create_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.CreateTransactionRequest)
	}{
		{"zero amount", func(r *models.CreateTransactionRequest) { r.Amount = decimal.Zero }},
		{"negative rate", func(r *models.CreateTransactionRequest) { r.ConversionRate = decimal.NewFromInt(-1) }},
		{"zero converted", func(r *models.CreateTransactionRequest) { r.ConvertedAmount = decimal.Zero }},
		{"short currency", func(r *models.CreateTransactionRequest) { r.SourceCurrency = "BR" }},
		{"long currency", func(r *models.CreateTransactionRequest) { r.DestCurrency = "USDT" }},
		{"empty destination key", func(r *models.CreateTransactionRequest) { r.DestinationKey = "   " }},
		{"bad client code", func(r *models.CreateTransactionRequest) { r.Code = "abc" }},
		{"converted rounds to zero", func(r *models.CreateTransactionRequest) {
			r.ConvertedAmount = decimal.RequireFromString("0.000000001")
		}},
		{"rate rounds to zero", func(r *models.CreateTransactionRequest) {
			r.ConversionRate = decimal.RequireFromString("0.000000004")
		}},
		{"amount overflows column", func(r *models.CreateTransactionRequest) {
			r.Amount = decimal.RequireFromString("100000000000")
		}},
		{"converted overflows column", func(r *models.CreateTransactionRequest) {
			r.ConvertedAmount = decimal.RequireFromString("9999999999.999999999")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, _ := setupTransactionService()
			draft := validDraft()
			tt.mutate(&draft)

			_, err := service.Create(context.Background(), draft)

			assert.ErrorIs(t, err, custom_err.ErrValidation)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestTransactionService_Get_NotFound(t *testing.T) {
	service, repo, _ := setupTransactionService()
	ctx := context.Background()

	repo.On("GetByCode", ctx, "UNKNOWN00000").Return(nil, custom_err.ErrNotFound)

	_, err := service.Get(ctx, "UNKNOWN00000")

	assert.ErrorIs(t, err, custom_err.ErrNotFound)
}

func TestTransactionService_List_Paging(t *testing.T) {
	service, repo, _ := setupTransactionService()
	ctx := context.Background()

	repo.On("List", ctx, 10, models.MaxPageLimit).Return([]*models.Transaction{{Code: "A"}}, nil)

	list, err := service.List(ctx, 10, 1000)

	require.NoError(t, err)
	assert.Len(t, list, 1)
	repo.AssertExpectations(t)
}

func TestTransactionService_List_Invalid(t *testing.T) {
	service, repo, _ := setupTransactionService()

	_, err := service.List(context.Background(), -1, 10)
	assert.ErrorIs(t, err, custom_err.ErrValidation)

	_, err = service.List(context.Background(), 0, -5)
	assert.ErrorIs(t, err, custom_err.ErrValidation)

	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransactionService_List_ZeroLimit(t *testing.T) {
	service, repo, _ := setupTransactionService()

	list, err := service.List(context.Background(), 0, 0)

	require.NoError(t, err)
	assert.Empty(t, list)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransactionService_UpdateStatus_Success(t *testing.T) {
	service, repo, txManager := setupTransactionService()
	ctx := context.Background()
	now := fixedNow

	txManager.On("WithTx", ctx, mock.Anything).Return(nil)
	repo.On("LockByCodeTx", ctx, mock.Anything, "ABC123DEF456").Return(int64(7), models.StatusPending, nil)
	repo.On("UpdateStatusTx", ctx, mock.Anything, int64(7), models.StatusCompleted, fixedNow).
		Return(&models.Transaction{ID: 7, Code: "ABC123DEF456", Status: models.StatusCompleted, UpdatedAt: &now}, nil)

	got, err := service.UpdateStatus(ctx, "ABC123DEF456", models.StatusCompleted)

	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	require.NotNil(t, got.UpdatedAt)
	assert.Equal(t, fixedNow, *got.UpdatedAt)
	repo.AssertExpectations(t)
	txManager.AssertExpectations(t)
}

func TestTransactionService_UpdateStatus_InvalidStatus(t *testing.T) {
	service, repo, txManager := setupTransactionService()

	_, err := service.UpdateStatus(context.Background(), "ABC123DEF456", models.TransactionStatus("shipped"))

	assert.ErrorIs(t, err, custom_err.ErrInvalidStatus)
	assert.ErrorIs(t, err, custom_err.ErrValidation)
	txManager.AssertNotCalled(t, "WithTx", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "LockByCodeTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransactionService_UpdateStatus_NotFound(t *testing.T) {
	service, repo, txManager := setupTransactionService()
	ctx := context.Background()

	txManager.On("WithTx", ctx, mock.Anything).Return(nil)
	repo.On("LockByCodeTx", ctx, mock.Anything, "MISSING00000").Return(int64(0), models.TransactionStatus(""), custom_err.ErrNotFound)

	_, err := service.UpdateStatus(ctx, "MISSING00000", models.StatusFailed)

	assert.ErrorIs(t, err, custom_err.ErrNotFound)
	repo.AssertNotCalled(t, "UpdateStatusTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransactionService_UpdateStatus_TxFailure(t *testing.T) {
	service, _, txManager := setupTransactionService()
	ctx := context.Background()
	txErr := errors.New("connection refused")

	txManager.On("WithTx", ctx, mock.Anything).Return(txErr)

	_, err := service.UpdateStatus(ctx, "ABC123DEF456", models.StatusProcessing)

	assert.ErrorIs(t, err, txErr)
}

func TestGenerateTransactionCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code, err := GenerateTransactionCode()
		require.NoError(t, err)
		assert.Regexp(t, `^[A-Z0-9]{12}$`, code)
		seen[code] = struct{}{}
	}
	assert.Len(t, seen, 100)
}

func TestTransactionService_Create_AcceptsColumnBounds(t *testing.T) {
	service, repo, _ := setupTransactionService()
	ctx := context.Background()
	draft := validDraft()
	draft.Amount = decimal.RequireFromString("9999999999.99999999")
	draft.ConvertedAmount = decimal.RequireFromString("0.00000001")

	repo.On("Create", ctx, mock.AnythingOfType("*models.Transaction")).
		Return(&models.Transaction{Code: "BOUNDS000001", Status: models.StatusPending}, nil)

	_, err := service.Create(ctx, draft)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}
