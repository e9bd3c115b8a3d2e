package jobs

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type Job func(ctx context.Context) error

// Runner запускает периодические задачи до отмены ctx.
type Runner struct {
	ctx context.Context
	log *zap.Logger
}

func New(ctx context.Context, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{ctx: ctx, log: log}
}

// Every выполняет fn каждые interval. Первый запуск через interval, не сразу:
// стартовая загрузка уже сделана вызывающим.
func (r *Runner) Every(interval time.Duration, name string, fn Job) {
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-r.ctx.Done():
				return
			case <-t.C:
				r.run(name, fn)
			}
		}
	}()
}

func (r *Runner) run(name string, fn Job) {
	start := time.Now()
	err := r.safe(fn)
	if err != nil {
		jobErrors.WithLabelValues(name).Inc()
		r.log.Warn("job failed", zap.String("job", name), zap.Error(err))
	}
	jobRuns.WithLabelValues(name).Inc()
	jobDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
}

// safe: паника в задаче считается ошибкой и не роняет цикл.
func (r *Runner) safe(fn Job) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return fn(r.ctx)
}
