package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"describedir/internal/config"
)

// Backoff bases. Rate-limit waits start higher because providers signal a
// window, not a blip.
const (
	rateLimitBackoffBase = 5 * time.Second
	transientBackoffBase = time.Second
)

// Executor wraps a Client with bounded retry and backoff. Each Call is a
// blocking, synchronous unit of work; the executor holds no cross-call state
// and is safe to invoke repeatedly.
type Executor struct {
	client     Client
	maxRetries int
	log        *zap.Logger
	sleep      func(time.Duration)
}

// NewExecutor creates an executor with the default retry budget.
func NewExecutor(client Client, log *zap.Logger) *Executor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Executor{
		client:     client,
		maxRetries: config.MaxRetries,
		log:        log,
		sleep:      time.Sleep,
	}
}

// Call issues one model request through the retry state machine.
//
// Rate-limit failures sleep 5s doubling per attempt; transient failures sleep
// 1s doubling per attempt. Non-retryable failures propagate immediately
// without consuming the budget. When the budget is exhausted the last error
// is surfaced as a hard failure.
func (e *Executor) Call(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqID := uuid.NewString()[:8]
	log := e.log.With(
		zap.String("request_id", reqID),
		zap.String("model", e.client.Model()),
	)
	log.Debug("model call",
		zap.Int("system_len", len(systemPrompt)),
		zap.Int("user_len", len(userPrompt)))

	var lastErr error
	for attempt := 0; attempt < e.maxRetries; attempt++ {
		start := time.Now()
		text, err := e.client.CompleteWithSystem(ctx, systemPrompt, userPrompt)
		if err == nil {
			log.Debug("model call completed",
				zap.Duration("elapsed", time.Since(start)),
				zap.Int("response_len", len(text)))
			return text, nil
		}

		switch {
		case IsRateLimit(err):
			wait := time.Duration(1<<attempt) * rateLimitBackoffBase
			log.Warn("rate limited, backing off",
				zap.Int("attempt", attempt),
				zap.Duration("wait", wait))
			lastErr = err
			e.sleep(wait)

		case IsTransient(err):
			if attempt == e.maxRetries-1 {
				log.Error("model call failed, retry budget exhausted",
					zap.Int("attempts", e.maxRetries), zap.Error(err))
				return "", fmt.Errorf("model call failed after %d attempts: %w", e.maxRetries, err)
			}
			wait := time.Duration(1<<attempt) * transientBackoffBase
			log.Warn("transient failure, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("wait", wait),
				zap.Error(err))
			lastErr = err
			e.sleep(wait)

		default:
			log.Error("model call failed", zap.Error(err))
			return "", err
		}
	}

	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}
