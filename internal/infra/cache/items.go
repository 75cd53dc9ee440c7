// Package cache puts Redis in front of the item search. Cache failures are
// swallowed on read and best-effort on write, so a dead Redis degrades to
// database reads instead of failing requests.
package cache

import (
	"context"
	"errors"
	"time"

	"lendhub/internal/pkg/errs"
	"lendhub/internal/usecase/queries"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
)

const searchKeyPrefix = "cache:items:search:"

// searchKeys tracks every search key written, so invalidation does not need a
// SCAN over the whole keyspace.
const searchKeySet = "cache:items:search-keys"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ItemSearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewItemSearchCache(client *redis.Client, ttl time.Duration) *ItemSearchCache {
	return &ItemSearchCache{client: client, ttl: ttl}
}

var _ queries.SearchCache = (*ItemSearchCache)(nil)

func (c *ItemSearchCache) GetSearch(ctx context.Context, text string) ([]queries.ItemView, error) {
	val, err := c.client.Get(ctx, searchKeyPrefix+text).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Wrap(err, "failed to read search cache")
	}

	var items []queries.ItemView
	if err := json.UnmarshalFromString(val, &items); err != nil {
		return nil, errs.Wrap(err, "failed to decode cached search result")
	}
	return items, nil
}

func (c *ItemSearchCache) SetSearch(ctx context.Context, text string, items []queries.ItemView) error {
	data, err := json.MarshalToString(items)
	if err != nil {
		return errs.Wrap(err, "failed to encode search result")
	}

	key := searchKeyPrefix + text
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key, data, c.ttl)
	pipe.SAdd(ctx, searchKeySet, key)
	pipe.Expire(ctx, searchKeySet, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return errs.Wrap(err, "failed to write search cache")
	}
	return nil
}

// InvalidateSearch drops every cached search result. Item writes call this so
// stale availability never shows up in search.
func (c *ItemSearchCache) InvalidateSearch(ctx context.Context) error {
	keys, err := c.client.SMembers(ctx, searchKeySet).Result()
	if err != nil {
		return errs.Wrap(err, "failed to list search cache keys")
	}
	if len(keys) == 0 {
		return nil
	}

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, keys...)
	pipe.Del(ctx, searchKeySet)
	if _, err := pipe.Exec(ctx); err != nil {
		return errs.Wrap(err, "failed to drop search cache keys")
	}
	return nil
}
