package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/yieldfood-api/internal/application/sales"
	"github.com/jhoicas/yieldfood-api/internal/domain"
	"github.com/jhoicas/yieldfood-api/pkg/config"
)

var _ sales.SaleLocker = (*RedisLocker)(nil)

const retryInterval = 100 * time.Millisecond

// RedisLocker candado distribuido con bsm/redislock. El TTL protege ante réplicas que
// mueren con el candado tomado.
type RedisLocker struct {
	client *redislock.Client
	ttl    time.Duration
	wait   time.Duration
	log    zerolog.Logger
}

// NewRedisClient abre el cliente y verifica la conexión con PING.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// NewRedisLocker construye el candado sobre un cliente ya conectado.
func NewRedisLocker(rdb redis.UniversalClient, cfg config.SyncConfig, log zerolog.Logger) *RedisLocker {
	return &RedisLocker{
		client: redislock.New(rdb),
		ttl:    cfg.LockTTL(),
		wait:   cfg.LockWait(),
		log:    log,
	}
}

// Lock reintenta cada 100ms hasta obtener el candado o agotar la espera configurada.
func (r *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	obtainCtx := ctx
	if r.wait > 0 {
		var cancel context.CancelFunc
		obtainCtx, cancel = context.WithTimeout(ctx, r.wait)
		defer cancel()
	}

	l, err := r.client.Obtain(obtainCtx, key, r.ttl, &redislock.Options{
		RetryStrategy: redislock.LinearBackoff(retryInterval),
	})
	if errors.Is(err, redislock.ErrNotObtained) || errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSaleLocked, key)
	}
	if err != nil {
		return nil, fmt.Errorf("redis: obtener candado %s: %w", key, err)
	}

	return func() {
		// ctx puede estar cancelado al liberar; el TTL cubre ese caso igualmente.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		if err := l.Release(releaseCtx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			r.log.Warn().Err(err).Str("key", key).Msg("no se pudo liberar el candado")
		}
	}, nil
}
