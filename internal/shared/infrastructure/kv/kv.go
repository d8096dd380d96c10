// Package kv provides the single-slot key/value storage used to persist task
// collections. Backends range from an in-process map to SQL databases and Redis.
package kv

import (
	"context"
	"errors"
)

var (
	// ErrCircuitOpen is returned by BreakerStore while the backend is considered down.
	ErrCircuitOpen = errors.New("storage circuit breaker is open")
	// ErrClosed is returned by stores used after Close.
	ErrClosed = errors.New("storage is closed")
)

// Store is the capability the task persistence layer needs from a backend.
type Store interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Close releases backend resources.
	Close() error
}
