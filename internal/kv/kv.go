// Package kv defines the key-value storage capability the repositories are
// layered on. Backends persist whole JSON blobs by string key; writes are
// durable per key but there is no transaction across keys.
package kv

import "context"

type Store interface {
	// Get returns the value for key, or ok=false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set replaces the value for key.
	Set(ctx context.Context, key string, value string) error
}
