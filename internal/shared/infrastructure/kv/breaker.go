package kv

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerConfig configures circuit breaker behavior.
type BreakerConfig struct {
	// Name identifies the breaker in logs.
	Name string

	// MaxRequests is the maximum number of requests allowed in half-open state.
	MaxRequests uint32

	// Interval is the cyclic period for clearing counts in closed state.
	Interval time.Duration

	// Timeout is how long the breaker stays open before trying half-open.
	Timeout time.Duration

	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold uint32
}

// DefaultBreakerConfig returns settings suited to an interactive CLI.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 3,
	}
}

// BreakerStore guards a remote Store with a circuit breaker.
type BreakerStore struct {
	next    Store
	breaker *gobreaker.CircuitBreaker[any]
}

type getResult struct {
	value string
	ok    bool
}

// NewBreakerStore wraps next.
func NewBreakerStore(next Store, cfg BreakerConfig, logger *slog.Logger) *BreakerStore {
	if logger == nil {
		logger = slog.Default()
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("storage circuit breaker state changed",
				"backend", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &BreakerStore{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
	}
}

// Get retrieves a value through the breaker.
func (s *BreakerStore) Get(ctx context.Context, key string) (string, bool, error) {
	res, err := s.breaker.Execute(func() (any, error) {
		v, ok, err := s.next.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		return getResult{value: v, ok: ok}, nil
	})
	if err != nil {
		return "", false, translateBreakerErr(err)
	}
	r := res.(getResult)
	return r.value, r.ok, nil
}

// Set stores a value through the breaker.
func (s *BreakerStore) Set(ctx context.Context, key, value string) error {
	_, err := s.breaker.Execute(func() (any, error) {
		return nil, s.next.Set(ctx, key, value)
	})
	return translateBreakerErr(err)
}

// State reports the breaker state (closed, half-open, open).
func (s *BreakerStore) State() string {
	return s.breaker.State().String()
}

// Close closes the wrapped store.
func (s *BreakerStore) Close() error {
	return s.next.Close()
}

func translateBreakerErr(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrCircuitOpen
	}
	return err
}

// withBreakerDefaults fills zero fields of cfg from DefaultBreakerConfig.
func withBreakerDefaults(cfg BreakerConfig, name string) BreakerConfig {
	def := DefaultBreakerConfig(name)
	if cfg.Name == "" {
		cfg.Name = def.Name
	}
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = def.MaxRequests
	}
	if cfg.Interval == 0 {
		cfg.Interval = def.Interval
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	return cfg
}
