package querycache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	appErrors "github.com/noah-isme/sms-console/pkg/errors"
)

// Store persists cached payloads.
type Store interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// Recorder receives cache timings.
type Recorder interface {
	RecordCacheOperation(hit bool, duration time.Duration)
	ObserveCacheWrite(duration time.Duration)
}

// Cache serves reads from a Store, coalesces identical concurrent loads and
// drops the result of any load that raced with an invalidation of its
// (entity, tenant) prefix.
type Cache struct {
	store    Store
	graph    Graph
	ttl      time.Duration
	logger   *zap.Logger
	recorder Recorder

	group singleflight.Group

	mu          sync.Mutex
	generations map[string]uint64
}

// New constructs a Cache. A nil graph uses DefaultGraph.
func New(store Store, graph Graph, ttl time.Duration, logger *zap.Logger, recorder Recorder) *Cache {
	if graph == nil {
		graph = DefaultGraph()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		store:       store,
		graph:       graph,
		ttl:         ttl,
		logger:      logger,
		recorder:    recorder,
		generations: make(map[string]uint64),
	}
}

func (c *Cache) generation(prefix string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[prefix]
}

func (c *Cache) bump(prefix string) {
	c.mu.Lock()
	c.generations[prefix]++
	c.mu.Unlock()
}

// Fetch returns the cached value for key or loads it. The boolean reports a
// cache hit. Callers sharing a key while a load is in flight share its result.
func Fetch[T any](ctx context.Context, c *Cache, key Key, load func(context.Context) (T, error)) (T, bool, error) {
	if c == nil || c.store == nil {
		v, err := load(ctx)
		return v, false, err
	}

	id := key.String()
	var cached T
	start := time.Now()
	err := c.store.Get(ctx, id, &cached)
	switch {
	case err == nil:
		c.record(true, time.Since(start))
		return cached, true, nil
	case errors.Is(err, appErrors.ErrCacheMiss):
		c.record(false, time.Since(start))
	default:
		c.record(false, time.Since(start))
		c.logger.Warn("cache get failed", zap.String("key", id), zap.Error(err))
	}

	prefix := Prefix(key.Entity, key.Tenant)
	gen := c.generation(prefix)
	flightKey := id + "#" + strconv.FormatUint(gen, 10)

	// The load outlives a cancelled caller so other waiters still get a result.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do(flightKey, func() (interface{}, error) {
		value, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		c.writeBack(loadCtx, prefix, gen, id, value)
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, false, fmt.Errorf("cache %s: unexpected type %T", id, v)
	}
	return typed, false, nil
}

func (c *Cache) writeBack(ctx context.Context, prefix string, gen uint64, id string, value interface{}) {
	if c.generation(prefix) != gen {
		return
	}
	start := time.Now()
	err := c.store.Set(ctx, id, value, c.ttl)
	if c.recorder != nil {
		c.recorder.ObserveCacheWrite(time.Since(start))
	}
	if err != nil {
		c.logger.Warn("cache set failed", zap.String("key", id), zap.Error(err))
		return
	}
	// An invalidation may have landed between the check and the write.
	if c.generation(prefix) != gen {
		if err := c.store.DeleteByPattern(ctx, id); err != nil {
			c.logger.Warn("cache rollback failed", zap.String("key", id), zap.Error(err))
		}
	}
}

// Invalidate removes every cached read of entity, and of the entities that
// depend on it, for one tenant.
func (c *Cache) Invalidate(ctx context.Context, entity, tenant string) error {
	if c == nil || c.store == nil {
		return nil
	}
	var errs []error
	for _, dep := range c.graph.Dependents(entity) {
		prefix := Prefix(dep, tenant)
		c.bump(prefix)
		if err := c.store.DeleteByPattern(ctx, prefix+"*"); err != nil {
			c.logger.Warn("cache invalidate failed", zap.String("pattern", prefix+"*"), zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Cache) record(hit bool, d time.Duration) {
	if c.recorder != nil {
		c.recorder.RecordCacheOperation(hit, d)
	}
}
