package main

import (
	"context"
	"testing"

	"kasirprof/backend/internal/config"
)

func TestOpenStoreDefaultsToMemory(t *testing.T) {
	store, closers := openStore(context.Background(), config.Config{})
	if store == nil {
		t.Fatalf("expected a usable store")
	}
	if len(closers) != 0 {
		t.Fatalf("in-memory store needs no closers, got %d", len(closers))
	}

	ctx := context.Background()
	if err := store.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	value, ok, err := store.Get(ctx, "k")
	if err != nil || !ok || value != "v" {
		t.Fatalf("get failed: %q %v %v", value, ok, err)
	}
}
