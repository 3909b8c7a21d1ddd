package main

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/MikeMC777/storefront/internal/kv"
	"github.com/MikeMC777/storefront/internal/product"
)

const versionKey = "catalog:version"

// queryCache memoizes listing responses. Keys embed a catalog version that
// every write bumps, so stale pages are never served after a change. The
// version lives in meta, which never evicts, and responses in store.
type queryCache struct {
	store kv.Store
	meta  kv.Store
	log   *zap.Logger
}

func newQueryCache(store, meta kv.Store, log *zap.Logger) *queryCache {
	return &queryCache{store: store, meta: meta, log: log.Named("cache")}
}

func (q *queryCache) version(ctx context.Context) int64 {
	b, err := q.meta.Get(ctx, versionKey)
	if err != nil {
		return 0
	}
	v, _ := strconv.ParseInt(string(b), 10, 64)
	return v
}

func (q *queryCache) key(ctx context.Context, route, query string) string {
	return "products:" + strconv.FormatInt(q.version(ctx), 10) + ":" + route + "?" + query
}

func (q *queryCache) get(ctx context.Context, key string) (*product.ListResponse, bool) {
	if q == nil {
		return nil, false
	}
	var out product.ListResponse
	found, err := kv.GetJSON(ctx, q.store, key, &out)
	if err != nil {
		q.log.Warn("read", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &out, found
}

func (q *queryCache) put(ctx context.Context, key string, res product.ListResponse) {
	if q == nil {
		return
	}
	if err := kv.SetJSON(ctx, q.store, key, res); err != nil {
		q.log.Warn("write", zap.String("key", key), zap.Error(err))
	}
}

// invalidate bumps the catalog version.
func (q *queryCache) invalidate(ctx context.Context) {
	if q == nil {
		return
	}
	next := strconv.FormatInt(q.version(ctx)+1, 10)
	if err := q.meta.Set(ctx, versionKey, []byte(next)); err != nil && !errors.Is(err, context.Canceled) {
		q.log.Warn("invalidate", zap.Error(err))
	}
}
