package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"storefront/pkg/cache"
)

type memoryBackend struct {
	data map[string][]byte
	ttl  map[string]time.Duration
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{data: map[string][]byte{}, ttl: map[string]time.Duration{}}
}

func (m *memoryBackend) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := m.data[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryBackend) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	m.ttl[key] = expiration
	return nil
}

func (m *memoryBackend) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memoryBackend) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

func (m *memoryBackend) Ping(context.Context) error { return nil }

func TestCacheServicePrefixesKeys(t *testing.T) {
	backend := newMemoryBackend()
	svc := NewCacheService(backend, nil, "storefront:", time.Minute)
	ctx := context.Background()

	if err := svc.Set(ctx, "promo_code:SAVE10", map[string]int{"used": 1}, 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok := backend.data["storefront:promo_code:SAVE10"]; !ok {
		t.Fatalf("key not prefixed, backend has %v", backend.data)
	}
	if backend.ttl["storefront:promo_code:SAVE10"] != time.Minute {
		t.Fatalf("zero expiration should use the default ttl")
	}

	var got map[string]int
	if err := svc.Get(ctx, "promo_code:SAVE10", &got); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got["used"] != 1 {
		t.Fatalf("Get() = %v", got)
	}

	if err := svc.Delete(ctx, "promo_code:SAVE10"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if ok, _ := svc.Exists(ctx, "promo_code:SAVE10"); ok {
		t.Fatal("key still present after Delete")
	}
}

func TestCacheServiceWithoutBackend(t *testing.T) {
	svc := NewCacheService(nil, nil, "", time.Minute)
	ctx := context.Background()

	if svc.Enabled() {
		t.Fatal("Enabled() = true without backend")
	}
	if err := svc.Set(ctx, "k", "v", 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var v string
	if err := svc.Get(ctx, "k", &v); !errors.Is(err, cache.ErrCacheMiss) {
		t.Fatalf("Get() error = %v, want ErrCacheMiss", err)
	}
	if err := svc.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
}
