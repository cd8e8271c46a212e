package cache

import (
	"go.uber.org/zap"
)

// DepotCacheFactory creates depot caches based on configuration
type DepotCacheFactory struct {
	redisConfig           RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// DepotCacheFactoryOption is a functional option for configuring the factory
type DepotCacheFactoryOption func(*DepotCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) DepotCacheFactoryOption {
	return func(f *DepotCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) DepotCacheFactoryOption {
	return func(f *DepotCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewDepotCacheFactory creates a new factory
func NewDepotCacheFactory(cfg RedisConfig, opts ...DepotCacheFactoryOption) *DepotCacheFactory {
	f := &DepotCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create builds a DepotCache. Redis is preferred when configured; an
// in-memory cache is used when Redis is absent or unreachable and fallback
// is allowed.
func (f *DepotCacheFactory) Create() (DepotCache, error) {
	if f.redisConfig.Host == "" {
		f.logger.Info("no redis configured, using in-memory depot cache")
		return NewInMemoryDepotCache(), nil
	}

	redisCache, err := NewRedisDepotCache(f.redisConfig)
	if err != nil {
		if !f.allowInMemoryFallback {
			return nil, err
		}
		f.logger.Warn("redis unavailable, falling back to in-memory depot cache", zap.Error(err))
		return NewInMemoryDepotCache(), nil
	}

	return redisCache, nil
}
