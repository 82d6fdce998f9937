package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gw-eternal-pay/internal/metrics"
)

// fixedDelayLoop вызывает tick, затем ждёт interval; следующий тик не начинается, пока не завершился предыдущий.
type fixedDelayLoop struct {
	name        string
	interval    time.Duration
	tickTimeout time.Duration
	tick        func(ctx context.Context) error
	log         *slog.Logger

	baseCtx  context.Context
	cancel   context.CancelFunc
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func newFixedDelayLoop(name string, interval, tickTimeout time.Duration, tick func(ctx context.Context) error, log *slog.Logger) *fixedDelayLoop {
	ctx, cancel := context.WithCancel(context.Background())
	return &fixedDelayLoop{
		name:        name,
		interval:    interval,
		tickTimeout: tickTimeout,
		tick:        tick,
		log:         log.With(slog.String("worker", name)),
		baseCtx:     ctx,
		cancel:      cancel,
		stopCh:      make(chan struct{}),
	}
}

// Start запускает цикл; первый тик выполняется сразу.
func (l *fixedDelayLoop) Start() {
	l.wg.Add(1)
	go l.run()
}

func (l *fixedDelayLoop) run() {
	defer l.wg.Done()
	l.log.Info("фоновый цикл запущен", slog.Duration("interval", l.interval))

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-l.stopCh:
			l.log.Info("фоновый цикл остановлен")
			return
		case <-timer.C:
			l.runTick()
			timer.Reset(l.interval)
		}
	}
}

func (l *fixedDelayLoop) runTick() {
	ctx, cancel := context.WithTimeout(l.baseCtx, l.tickTimeout)
	defer cancel()

	defer func() {
		if p := recover(); p != nil {
			metrics.WorkerTicksTotal.WithLabelValues(l.name, "panic").Inc()
			l.log.Error("паника в фоновом цикле", slog.String("panic", fmt.Sprint(p)))
		}
	}()

	if err := l.tick(ctx); err != nil {
		metrics.WorkerTicksTotal.WithLabelValues(l.name, "error").Inc()
		l.log.Error("ошибка итерации фонового цикла", slog.String("error", err.Error()))
		return
	}
	metrics.WorkerTicksTotal.WithLabelValues(l.name, "ok").Inc()
}

func (l *fixedDelayLoop) Shutdown(ctx context.Context) error {
	l.log.Info("остановка фонового цикла")

	l.stopOnce.Do(func() {
		close(l.stopCh)
		l.cancel()
	})

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		l.log.Warn("shutdown timeout exceeded")
		return ctx.Err()
	}
}
