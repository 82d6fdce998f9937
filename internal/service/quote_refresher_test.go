package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gw-eternal-pay/internal/models"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func setupRefresher() (*QuoteRefresher, *MockQuoteRepo, *MockPriceFetcher, *fakeClock) {
	repo := new(MockQuoteRepo)
	fetcher := new(MockPriceFetcher)
	clock := &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}

	r := NewQuoteRefresher(repo, fetcher, RefresherConfig{
		Interval:       10 * time.Second,
		USDBRLInterval: 5 * time.Minute,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r.now = clock.Now

	return r, repo, fetcher, clock
}

func TestQuoteRefresher_RefreshOnce_AllPairs(t *testing.T) {
	r, repo, fetcher, _ := setupRefresher()
	ctx := context.Background()

	fetcher.On("FetchPrice", ctx, "BTC", "BRL").Return(decimal.NewFromInt(500000), nil)
	fetcher.On("FetchPrice", ctx, "BTC", "USDT").Return(decimal.NewFromInt(65000), nil)
	fetcher.On("FetchPrice", ctx, "USDT", "BRL").Return(decimal.RequireFromString("5.1"), nil)
	repo.On("Upsert", ctx, models.PairBTCBRL, decimal.NewFromInt(500000), mock.Anything).Return(&models.Quote{}, nil)
	repo.On("Upsert", ctx, models.PairBTCUSD, decimal.NewFromInt(65000), mock.Anything).Return(&models.Quote{}, nil)
	repo.On("Upsert", ctx, models.PairUSDBRL, decimal.RequireFromString("5.1"), mock.Anything).Return(&models.Quote{}, nil)

	failed := r.RefreshOnce(ctx)

	assert.Empty(t, failed)
	fetcher.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestQuoteRefresher_USDBRL_NotRefetchedWithinInterval(t *testing.T) {
	r, repo, fetcher, clock := setupRefresher()
	ctx := context.Background()

	fetcher.On("FetchPrice", ctx, "BTC", "BRL").Return(decimal.NewFromInt(500000), nil)
	fetcher.On("FetchPrice", ctx, "BTC", "USDT").Return(decimal.NewFromInt(65000), nil)
	fetcher.On("FetchPrice", ctx, "USDT", "BRL").Return(decimal.NewFromInt(5), nil)
	repo.On("Upsert", ctx, mock.Anything, mock.Anything, mock.Anything).Return(&models.Quote{}, nil)

	r.RefreshOnce(ctx)
	clock.Advance(10 * time.Second)
	r.RefreshOnce(ctx)
	clock.Advance(4 * time.Minute)
	r.RefreshOnce(ctx)

	fetcher.AssertNumberOfCalls(t, "FetchPrice", 3*2+1)

	clock.Advance(time.Minute)
	r.RefreshOnce(ctx)

	fetcher.AssertNumberOfCalls(t, "FetchPrice", 4*2+2)
}

func TestQuoteRefresher_FailedUSDBRLRetriedNextTick(t *testing.T) {
	r, repo, fetcher, clock := setupRefresher()
	ctx := context.Background()

	fetcher.On("FetchPrice", ctx, "BTC", mock.Anything).Return(decimal.NewFromInt(1), nil)
	fetcher.On("FetchPrice", ctx, "USDT", "BRL").Return(decimal.Zero, errors.New("timeout")).Once()
	fetcher.On("FetchPrice", ctx, "USDT", "BRL").Return(decimal.NewFromInt(5), nil).Once()
	repo.On("Upsert", ctx, mock.Anything, mock.Anything, mock.Anything).Return(&models.Quote{}, nil)

	failed := r.RefreshOnce(ctx)
	assert.Equal(t, []string{models.PairUSDBRL}, failed)

	clock.Advance(10 * time.Second)
	failed = r.RefreshOnce(ctx)
	assert.Empty(t, failed)

	repo.AssertCalled(t, "Upsert", ctx, models.PairUSDBRL, decimal.NewFromInt(5), mock.Anything)
}

func TestQuoteRefresher_PairFailureDoesNotBlockOthers(t *testing.T) {
	r, repo, fetcher, _ := setupRefresher()
	ctx := context.Background()

	fetcher.On("FetchPrice", ctx, "BTC", "BRL").Return(decimal.Zero, errors.New("upstream 503"))
	fetcher.On("FetchPrice", ctx, "BTC", "USDT").Return(decimal.NewFromInt(65000), nil)
	fetcher.On("FetchPrice", ctx, "USDT", "BRL").Return(decimal.NewFromInt(5), nil)
	repo.On("Upsert", ctx, models.PairBTCUSD, mock.Anything, mock.Anything).Return(&models.Quote{}, nil)
	repo.On("Upsert", ctx, models.PairUSDBRL, mock.Anything, mock.Anything).Return(&models.Quote{}, nil)

	failed := r.RefreshOnce(ctx)

	assert.Equal(t, []string{models.PairBTCBRL}, failed)
	repo.AssertNotCalled(t, "Upsert", ctx, models.PairBTCBRL, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestQuoteRefresher_StoreFailureReported(t *testing.T) {
	r, repo, fetcher, _ := setupRefresher()
	ctx := context.Background()

	fetcher.On("FetchPrice", ctx, mock.Anything, mock.Anything).Return(decimal.NewFromInt(1), nil)
	repo.On("Upsert", ctx, models.PairBTCUSD, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))
	repo.On("Upsert", ctx, mock.Anything, mock.Anything, mock.Anything).Return(&models.Quote{}, nil)

	failed := r.RefreshOnce(ctx)

	assert.Equal(t, []string{models.PairBTCUSD}, failed)
}
