package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")
var ErrCapacityExceeded = errors.New("storage capacity exceeded")

// Backend is a durable key-value store holding one serialized value per key.
type Backend interface {
	// Get returns the stored value for key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put overwrites the value stored for key.
	Put(ctx context.Context, key string, value []byte) error
	// Keys lists every stored key in lexical order.
	Keys(ctx context.Context) ([]string, error)
}
