// Package storage is the client-local durable key/value storage that holds
// the persisted session between process runs.
package storage

import (
	"context"
)

// Batch is applied atomically: readers never observe a partially applied
// batch.
type Batch struct {
	Set    map[string]string
	Delete []string
}

func (b Batch) Empty() bool {
	return len(b.Set) == 0 && len(b.Delete) == 0
}

type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Apply(ctx context.Context, batch Batch) error
}

// Set writes a single key.
func Set(ctx context.Context, s Store, key, value string) error {
	return s.Apply(ctx, Batch{Set: map[string]string{key: value}})
}

// Delete removes keys; missing keys are ignored.
func Delete(ctx context.Context, s Store, keys ...string) error {
	return s.Apply(ctx, Batch{Delete: keys})
}
