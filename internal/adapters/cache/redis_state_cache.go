package cache

import (
	"context"
	"courier-tracking-service/internal/domain"
	"courier-tracking-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStateCache stores reconstructed snapshots as JSON, one key per
// (row fingerprint, hub, tick). Processes sharing a server only share entries
// when their rows are identical; the TTL only bounds memory.
type RedisStateCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedisStateCache(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisStateCache {
	if prefix == "" {
		prefix = "state"
	}
	return &RedisStateCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisStateCache) key(rows string, central domain.Location, tick int) string {
	return c.prefix + ":" + rows + ":" + central.Key() + ":" + strconv.Itoa(tick)
}

func (c *RedisStateCache) Get(
	ctx context.Context,
	rows string,
	central domain.Location,
	tick int,
) (_ domain.GlobalState, _ bool, err error) {
	defer obs.Time(ctx, "state.cache.Get")(&err)

	if c.client == nil {
		return domain.GlobalState{}, false, errors.New("state cache: client is nil")
	}

	b, err := c.client.Get(ctx, c.key(rows, central, tick)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.GlobalState{}, false, nil
	}
	if err != nil {
		return domain.GlobalState{}, false, fmt.Errorf("get state cache tick=%d: %w", tick, err)
	}

	var state domain.GlobalState
	if err := json.Unmarshal(b, &state); err != nil {
		return domain.GlobalState{}, false, fmt.Errorf("get state cache tick=%d: decode: %w", tick, err)
	}

	return state, true, nil
}

func (c *RedisStateCache) Put(ctx context.Context, rows string, state domain.GlobalState) error {
	if c.client == nil {
		return errors.New("state cache: client is nil")
	}

	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("put state cache tick=%d: encode: %w", state.Tick, err)
	}

	if err := c.client.Set(ctx, c.key(rows, state.Central, state.Tick), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("put state cache tick=%d: %w", state.Tick, err)
	}

	return nil
}
