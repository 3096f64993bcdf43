package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/utafrali/product-catalog/internal/domain"
)

// BreakerConfig holds circuit breaker settings for the search gateway.
type BreakerConfig struct {
	// MaxRequests is the maximum number of requests allowed in the half-open state.
	MaxRequests uint32

	// Interval is the cyclic period of the closed state for clearing internal counts.
	Interval time.Duration

	// Timeout is how long the breaker stays open before moving to half-open.
	Timeout time.Duration

	// FailureRatio is the ratio of failures to total requests that trips the breaker.
	FailureRatio float64

	// MinRequests is the minimum number of requests needed before the failure ratio is evaluated.
	MinRequests uint32
}

// DefaultBreakerConfig returns sensible defaults for the search breaker.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      30 * time.Second,
		FailureRatio: 0.5,
		MinRequests:  5,
	}
}

// BreakerGateway wraps a Gateway with circuit breaker protection on Search.
// When the index keeps failing, the breaker opens and searches degrade
// immediately instead of waiting out the timeout on every request. Index and
// Delete writes pass through unprotected: they are already best-effort in the
// orchestrator and must keep probing the index.
type BreakerGateway struct {
	gateway Gateway
	breaker *gobreaker.CircuitBreaker[*Result]
}

// NewBreakerGateway wraps the given gateway with a circuit breaker.
func NewBreakerGateway(gateway Gateway, cfg BreakerConfig, logger *slog.Logger) *BreakerGateway {
	settings := gobreaker.Settings{
		Name:        "search-index",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("search breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	}

	return &BreakerGateway{
		gateway: gateway,
		breaker: gobreaker.NewCircuitBreaker[*Result](settings),
	}
}

// Index passes through to the wrapped gateway.
func (b *BreakerGateway) Index(ctx context.Context, doc *domain.Document) error {
	return b.gateway.Index(ctx, doc)
}

// Delete passes through to the wrapped gateway.
func (b *BreakerGateway) Delete(ctx context.Context, id string) error {
	return b.gateway.Delete(ctx, id)
}

// Search executes the query through the breaker. An open breaker returns
// gobreaker.ErrOpenState, which the orchestrator absorbs as a degraded outcome.
func (b *BreakerGateway) Search(ctx context.Context, query string, pageNumber, pageSize int) (*Result, error) {
	return b.breaker.Execute(func() (*Result, error) {
		return b.gateway.Search(ctx, query, pageNumber, pageSize)
	})
}
