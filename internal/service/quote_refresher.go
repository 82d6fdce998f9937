package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gw-eternal-pay/internal/metrics"
	"gw-eternal-pay/internal/models"
	"gw-eternal-pay/internal/price_client"
	"gw-eternal-pay/internal/storage/postgres"
)

// upstreamSymbol пара в терминах сервиса котировок; USD котируется через USDT.
type upstreamSymbol struct {
	Pair  string
	Base  string
	Quote string
}

var (
	btcBRL = upstreamSymbol{Pair: models.PairBTCBRL, Base: "BTC", Quote: "BRL"}
	btcUSD = upstreamSymbol{Pair: models.PairBTCUSD, Base: "BTC", Quote: "USDT"}
	usdBRL = upstreamSymbol{Pair: models.PairUSDBRL, Base: "USDT", Quote: "BRL"}
)

type RefresherConfig struct {
	Interval       time.Duration
	USDBRLInterval time.Duration
	TickTimeout    time.Duration
}

// QuoteRefresher периодически переписывает котировки из внешнего сервиса.
// lastUSDBRL читается и пишется только из RefreshOnce, которую вызывает один цикл.
type QuoteRefresher struct {
	repo    postgres.QuoteRepository
	fetcher price_client.PriceFetcher
	cfg     RefresherConfig
	now     func() time.Time
	log     *slog.Logger

	lastUSDBRL time.Time
	loop       *fixedDelayLoop
}

func NewQuoteRefresher(repo postgres.QuoteRepository, fetcher price_client.PriceFetcher, cfg RefresherConfig, log *slog.Logger) *QuoteRefresher {
	if cfg.TickTimeout <= 0 {
		cfg.TickTimeout = cfg.Interval
	}
	r := &QuoteRefresher{
		repo:    repo,
		fetcher: fetcher,
		cfg:     cfg,
		now:     time.Now,
		log:     log,
	}
	r.loop = newFixedDelayLoop("quote_refresher", cfg.Interval, cfg.TickTimeout, r.tick, log)
	return r
}

func (r *QuoteRefresher) Start() {
	r.loop.Start()
}

func (r *QuoteRefresher) Shutdown(ctx context.Context) error {
	return r.loop.Shutdown(ctx)
}

func (r *QuoteRefresher) tick(ctx context.Context) error {
	failed := r.RefreshOnce(ctx)
	if len(failed) > 0 {
		return fmt.Errorf("не обновлены пары: %v", failed)
	}
	return nil
}

// RefreshOnce обновляет BTC/BRL и BTC/USD, а USD/BRL только если с прошлого успешного обновления прошло USDBRLInterval.
// Ошибка по одной паре не мешает остальным; возвращает пары, которые обновить не удалось.
func (r *QuoteRefresher) RefreshOnce(ctx context.Context) []string {
	var failed []string

	for _, sym := range []upstreamSymbol{btcBRL, btcUSD} {
		if err := r.refresh(ctx, sym); err != nil {
			failed = append(failed, sym.Pair)
		}
	}

	if r.now().Sub(r.lastUSDBRL) >= r.cfg.USDBRLInterval {
		if err := r.refresh(ctx, usdBRL); err != nil {
			failed = append(failed, usdBRL.Pair)
		} else {
			r.lastUSDBRL = r.now()
			r.log.Info("котировка USD/BRL обновлена",
				slog.Duration("next_in", r.cfg.USDBRLInterval))
		}
	}

	return failed
}

func (r *QuoteRefresher) refresh(ctx context.Context, sym upstreamSymbol) error {
	const op = "service.QuoteRefresher.refresh"

	price, err := r.fetcher.FetchPrice(ctx, sym.Base, sym.Quote)
	if err == nil {
		_, err = r.repo.Upsert(ctx, sym.Pair, price, r.now().UTC())
	}
	if err != nil {
		metrics.QuoteRefreshTotal.WithLabelValues(sym.Pair, "error").Inc()
		level := slog.LevelError
		if errors.Is(err, context.Canceled) {
			level = slog.LevelWarn
		}
		r.log.Log(ctx, level, "не удалось обновить котировку",
			slog.String("op", op),
			slog.String("pair", sym.Pair),
			slog.String("error", err.Error()))
		return err
	}

	metrics.QuoteRefreshTotal.WithLabelValues(sym.Pair, "ok").Inc()
	r.log.Debug("котировка обновлена",
		slog.String("pair", sym.Pair),
		slog.String("value", price.String()))
	return nil
}
