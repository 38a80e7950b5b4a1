package llm

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// ErrCircuitOpen is returned while the breaker rejects requests after
// repeated provider failures.
var ErrCircuitOpen = errors.New("llm circuit breaker is open")

// BreakerConfig tunes the circuit breaker around a provider.
type BreakerConfig struct {
	// MaxFailures is the number of consecutive failures that trips the circuit.
	MaxFailures uint32
	// Timeout is how long the circuit stays open before probing again.
	Timeout time.Duration
	// HalfOpenMaxSuccesses is how many probe successes close the circuit.
	HalfOpenMaxSuccesses uint32
}

// DefaultBreakerConfig trips after 3 consecutive failures, stays open for
// 30 seconds, and closes after 2 probe successes.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxFailures:          3,
		Timeout:              30 * time.Second,
		HalfOpenMaxSuccesses: 2,
	}
}

// BreakerProvider wraps a Provider with a circuit breaker so a struggling
// upstream fails fast instead of piling up requests.
type BreakerProvider struct {
	provider Provider
	breaker  *gobreaker.CircuitBreaker
}

// NewBreakerProvider wraps the given provider with a circuit breaker.
func NewBreakerProvider(provider Provider, cfg BreakerConfig) *BreakerProvider {
	settings := gobreaker.Settings{
		Name:        provider.Name(),
		MaxRequests: cfg.HalfOpenMaxSuccesses,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("llm circuit breaker state change",
				"provider", name, "from", from.String(), "to", to.String())
		},
	}
	return &BreakerProvider{
		provider: provider,
		breaker:  gobreaker.NewCircuitBreaker(settings),
	}
}

func (b *BreakerProvider) Name() string {
	return b.provider.Name()
}

func (b *BreakerProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	result, err := b.breaker.Execute(func() (interface{}, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		return b.provider.Complete(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, ErrCircuitOpen
		}
		return nil, err
	}
	return result.(*CompletionResponse), nil
}
