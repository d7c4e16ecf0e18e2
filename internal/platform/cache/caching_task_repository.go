// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"tasktracker/internal/feature/tasks/domain/entity"
	"tasktracker/internal/feature/tasks/usecase"
)

// CachingTaskRepository decorates a TaskRepository with Redis caching of list
// results. It implements the decorator pattern, transparently adding caching
// without modifying the underlying repository.
//
// List results are cached per (owner, query); every write by an owner
// invalidates all of that owner's cached lists, so a single owner always reads
// their own writes. Point reads are not cached.
type CachingTaskRepository struct {
	inner     usecase.TaskRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.TaskRepository = (*CachingTaskRepository)(nil)

// NewCachingTaskRepository decorates a TaskRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "tasks".
func NewCachingTaskRepository(rdb *redis.Client, ttl time.Duration, inner usecase.TaskRepository, namespace string) *CachingTaskRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "tasks"
	}
	return &CachingTaskRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create inserts a task and invalidates the owner's cached lists.
func (c *CachingTaskRepository) Create(ctx context.Context, t *entity.Task) error {
	if err := c.inner.Create(ctx, t); err != nil {
		return err
	}
	c.invalidateOwner(ctx, t.UserID)
	return nil
}

// FindByID always goes to the underlying repository.
func (c *CachingTaskRepository) FindByID(ctx context.Context, id uint) (*entity.Task, error) {
	return c.inner.FindByID(ctx, id)
}

// List retrieves tasks, checking cache first then falling back to the database.
func (c *CachingTaskRepository) List(ctx context.Context, q usecase.ListQuery) ([]entity.Task, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.List(ctx, q)
	}

	key := c.cacheKey(q)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Task
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.List(ctx, q)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// UpdateFields updates a task and invalidates the owner's cached lists.
func (c *CachingTaskRepository) UpdateFields(ctx context.Context, ownerID, id uint, fields map[string]any) error {
	if err := c.inner.UpdateFields(ctx, ownerID, id, fields); err != nil {
		return err
	}
	c.invalidateOwner(ctx, ownerID)
	return nil
}

// Delete removes a task and invalidates the owner's cached lists.
func (c *CachingTaskRepository) Delete(ctx context.Context, ownerID, id uint) error {
	if err := c.inner.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	c.invalidateOwner(ctx, ownerID)
	return nil
}

// cacheKey generates a cache key for a specific owner-scoped query.
// Distinct queries must map to distinct keys, otherwise one query's cached
// results could be served for another within the TTL.
func (c *CachingTaskRepository) cacheKey(q usecase.ListQuery) string {
	dir := "asc"
	if q.Desc {
		dir = "desc"
	}
	return fmt.Sprintf("%s:%d:%s:%s:%s:%s",
		c.namespace,
		q.OwnerID,
		escape(q.Status),
		escape(q.Search),
		escape(q.SortBy),
		dir,
	)
}

// ownerKeyPrefix generates a prefix covering all of an owner's cached lists.
func (c *CachingTaskRepository) ownerKeyPrefix(ownerID uint) string {
	return fmt.Sprintf("%s:%d:", c.namespace, ownerID)
}

// invalidateOwner drops every cached list for the owner. Best effort: a failed
// invalidation only shortens cache consistency to the TTL.
func (c *CachingTaskRepository) invalidateOwner(ctx context.Context, ownerID uint) {
	if c.rdb == nil {
		return
	}
	_ = c.deleteByPattern(ctx, c.ownerKeyPrefix(ownerID)+"*")
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingTaskRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// escape encodes a key component injectively. The search term is arbitrary
// user input, so the encoding must be collision-free and must keep the ":"
// separator out of the component.
func escape(s string) string {
	return url.QueryEscape(s)
}
