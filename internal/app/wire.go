package app

import (
	"context"
	"errors"
	"fmt"

	"lumiere-storefront/config"
	"lumiere-storefront/internal/domain"
	"lumiere-storefront/internal/infrastructure/kvstore"
	"lumiere-storefront/internal/infrastructure/reporting"
	"lumiere-storefront/internal/usecase"
	kv "lumiere-storefront/pkg/kvstore"
	"lumiere-storefront/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Build constructs the core from configuration. The returned cleanup
// releases backend connections and flushes pending reports.
func Build(ctx context.Context, cfg *config.Config) (*Core, func(context.Context) error, error) {
	var closers []func(context.Context) error
	cleanup := func(ctx context.Context) error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](ctx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	store, closeStore, err := NewKeyValueStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, closeStore)

	wishlist, err := usecase.NewWishlistStore(store, cfg.WishlistKey)
	if err != nil {
		_ = cleanup(ctx)
		return nil, nil, err
	}

	var forwarder domain.EventForwarder
	reporter, closeReporter, err := NewReporter(cfg)
	if err != nil {
		_ = cleanup(ctx)
		return nil, nil, err
	}
	if reporter != nil {
		closers = append(closers, closeReporter)
		dispatcher, err := reporting.NewDispatcher(reporter, cfg.ReportQueueSize, cfg.ReportRatePerSec)
		if err != nil {
			_ = cleanup(ctx)
			return nil, nil, err
		}
		closers = append(closers, dispatcher.Shutdown)
		forwarder = dispatcher
	}

	analytics := usecase.NewAnalyticsLog(cfg.DefaultCurrency, forwarder)
	notification := usecase.NewNotificationSignal()

	logger.Info().
		Str("kv_backend", cfg.KVBackend).
		Int("wishlist_items", wishlist.Count()).
		Msg("Storefront core ready")

	return NewCore(wishlist, analytics, notification), cleanup, nil
}

// NewKeyValueStore opens the backend selected by cfg.KVBackend.
func NewKeyValueStore(ctx context.Context, cfg *config.Config) (kv.KeyValueStore, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	switch cfg.KVBackend {
	case config.KVBackendMemory:
		return kvstore.NewMemoryStore(), noop, nil

	case config.KVBackendFile:
		store, err := kvstore.NewFileStore(cfg.KVFilePath)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil

	case config.KVBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		closeFn := func(context.Context) error { return client.Close() }
		return kvstore.NewRedisStore(client, cfg.KVTimeout), closeFn, nil

	case config.KVBackendPostgres:
		pool, err := kvstore.NewPgxPool(ctx, cfg.DBUrl, cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnIdleTime)
		if err != nil {
			return nil, nil, err
		}
		store := kvstore.NewPostgresStore(pool, cfg.KVTimeout)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		closeFn := func(context.Context) error {
			pool.Close()
			return nil
		}
		return store, closeFn, nil

	case config.KVBackendR2:
		client, err := kvstore.NewR2Client(ctx, cfg.R2AccountID, cfg.R2AccessKeyID, cfg.R2AccessKeySecret)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize R2 client: %w", err)
		}
		return kvstore.NewR2Store(client, cfg.R2BucketName, cfg.R2KeyPrefix, cfg.KVTimeout), noop, nil
	}

	return nil, nil, fmt.Errorf("unknown key-value backend %q", cfg.KVBackend)
}

// NewReporter creates the configured external sink, or nil when reporting is off.
func NewReporter(cfg *config.Config) (domain.Reporter, func(context.Context) error, error) {
	switch cfg.ReportSink {
	case config.ReportSinkNone, "":
		return nil, nil, nil

	case config.ReportSinkFacebook:
		client, err := reporting.NewCAPIClient(cfg.FBPixelID, cfg.FBAccessToken, cfg.FBAPIVersion, cfg.ReportTimeout)
		if err != nil {
			return nil, nil, err
		}
		return client, func(context.Context) error { return nil }, nil

	case config.ReportSinkKafka:
		reporter := reporting.NewKafkaReporter(reporting.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic), cfg.ReportTimeout)
		return reporter, func(context.Context) error { return reporter.Close() }, nil
	}

	return nil, nil, fmt.Errorf("unknown report sink %q", cfg.ReportSink)
}
