// Package kv is the persisted key-value mechanism the item store and the
// profile keys live in. Every Set is atomic: readers see the old value or the
// new one, never a mix.
package kv

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
