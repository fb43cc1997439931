package worker

import (
	"context"
	"log/slog"
	"time"
)

const defaultErrorBackoff = time.Second

type Config struct {
	Name      string
	Processor Processor
	// ErrorBackoff is how long the worker pauses after a failed message.
	ErrorBackoff time.Duration
}

type Processor interface {
	ProcessMessage(ctx context.Context) error
}

type Worker struct {
	name      string
	processor Processor
	backoff   time.Duration
}

func New(cfg Config) *Worker {
	backoff := cfg.ErrorBackoff
	if backoff <= 0 {
		backoff = defaultErrorBackoff
	}
	return &Worker{
		name:      cfg.Name,
		processor: cfg.Processor,
		backoff:   backoff,
	}
}

func (w *Worker) Run(ctx context.Context) {
	slog.InfoContext(ctx, "Worker started...", "worker", w.name)
	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Worker stopped...", "worker", w.name)
			return
		default:
			if err := w.processor.ProcessMessage(ctx); err != nil {
				if ctx.Err() != nil {
					continue
				}
				slog.ErrorContext(ctx, "Error processing message", "worker", w.name, "error", err)
				select {
				case <-ctx.Done():
				case <-time.After(w.backoff):
				}
			}
		}
	}
}
