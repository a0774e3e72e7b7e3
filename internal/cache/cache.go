// Package cache stores computed schedules so identical requests are served
// without re-running the engine.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/iwvelando/mortgage-schedule/pkg/constants"
	"github.com/iwvelando/mortgage-schedule/pkg/loans"
	"github.com/iwvelando/mortgage-schedule/pkg/validation"
	"go.uber.org/zap"
)

const keyPrefix = "mortgage-schedule"

// Cache stores encoded values by key.
type Cache interface {
	// Get returns the value stored under key. A missing or expired key
	// returns ok == false and a nil error.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set stores value under key for the cache's TTL.
	Set(ctx context.Context, key string, value []byte) error
}

// Options selects and configures a cache backend.
type Options struct {
	Backend      string
	RedisAddress string
	TTL          time.Duration
	// MaxEntries bounds the memory backend; <= 0 uses the default.
	MaxEntries int
}

// New returns the cache for the configured backend.
func New(opts Options, logger *zap.Logger) (Cache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	backend := opts.Backend
	if backend == "" {
		backend = constants.CacheBackendMemory
	}
	if err := validation.ValidateCacheBackend(backend); err != nil {
		return nil, err
	}

	ttl := opts.TTL
	if ttl <= 0 {
		parsed, err := time.ParseDuration(constants.DefaultCacheTTL)
		if err != nil {
			return nil, fmt.Errorf("invalid default cache ttl: %w", err)
		}
		ttl = parsed
	}

	logger.Info("initializing schedule cache",
		zap.String("op", "cache.New"),
		zap.String("backend", backend),
		zap.Duration("ttl", ttl),
	)

	switch backend {
	case constants.CacheBackendRedis:
		if opts.RedisAddress == "" {
			return nil, fmt.Errorf("redis cache backend requires redisAddress")
		}
		return NewRedis(opts.RedisAddress, ttl), nil
	case constants.CacheBackendNone:
		return Noop{}, nil
	default:
		return NewMemory(ttl, opts.MaxEntries), nil
	}
}

// Key returns the cache key for a computation. Equal parameters always map
// to the same key.
func Key(params loans.LoanParameters) string {
	return fmt.Sprintf("%s:%s:%s:%s:%s:%s",
		keyPrefix,
		params.Mode,
		formatFloat(params.Principal),
		formatFloat(params.AnnualInterestRate),
		formatFloat(params.Years),
		formatFloat(params.Overpayment()),
	)
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}

// Noop never stores anything.
type Noop struct{}

// Get always misses.
func (Noop) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards value.
func (Noop) Set(context.Context, string, []byte) error {
	return nil
}
