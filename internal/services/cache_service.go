package services

import (
	"context"
	"errors"
	"time"

	"storefront/pkg/cache"
	"storefront/pkg/logger"
)

// CacheService is a JSON key/value cache with a shared key prefix. A service
// built without a backend misses on every Get and ignores writes.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Ping(ctx context.Context) error
	Enabled() bool
}

// CacheBackend is satisfied by *cache.RedisCache.
type CacheBackend interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Ping(ctx context.Context) error
}

type cacheService struct {
	backend    CacheBackend
	logger     *logger.Logger
	defaultTTL time.Duration
	keyPrefix  string
}

func NewCacheService(backend CacheBackend, log *logger.Logger, keyPrefix string, defaultTTL time.Duration) CacheService {
	if log == nil {
		log = logger.NewNop()
	}
	return &cacheService{
		backend:    backend,
		logger:     log.WithField("component", "cache"),
		defaultTTL: defaultTTL,
		keyPrefix:  keyPrefix,
	}
}

func (s *cacheService) Enabled() bool {
	return s.backend != nil
}

func (s *cacheService) Get(ctx context.Context, key string, dest interface{}) error {
	if !s.Enabled() {
		return cache.ErrCacheMiss
	}

	err := s.backend.Get(ctx, s.key(key), dest)
	if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.WithError(err).WithField("key", key).Warn("cache read failed")
	}
	return err
}

func (s *cacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	if expiration <= 0 {
		expiration = s.defaultTTL
	}

	if err := s.backend.Set(ctx, s.key(key), value, expiration); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("cache write failed")
		return err
	}
	return nil
}

func (s *cacheService) Delete(ctx context.Context, keys ...string) error {
	if !s.Enabled() || len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = s.key(k)
	}

	if err := s.backend.Delete(ctx, prefixed...); err != nil {
		s.logger.WithError(err).WithField("keys", keys).Warn("cache delete failed")
		return err
	}
	return nil
}

func (s *cacheService) Exists(ctx context.Context, key string) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	return s.backend.Exists(ctx, s.key(key))
}

func (s *cacheService) Ping(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	return s.backend.Ping(ctx)
}

func (s *cacheService) key(k string) string {
	return s.keyPrefix + k
}
