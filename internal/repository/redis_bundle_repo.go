package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type redisBundleStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisBundleStore stores each bundle as one JSON string under
// <prefix>bundle:<name>, with no expiry.
func NewRedisBundleStore(rdb *redis.Client, prefix string) BundleStore {
	return &redisBundleStore{rdb: rdb, prefix: prefix}
}

func (r *redisBundleStore) key(name string) string { return r.prefix + "bundle:" + name }

func (r *redisBundleStore) Load(ctx context.Context, name string, dst any) (bool, error) {
	data, err := r.rdb.Get(ctx, r.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return true, fmt.Errorf("%w %q: %v", ErrCorruptBundle, name, err)
	}
	return true, nil
}

func (r *redisBundleStore) Save(ctx context.Context, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode bundle %q: %w", name, err)
	}
	return r.rdb.Set(ctx, r.key(name), data, 0).Err()
}

func (r *redisBundleStore) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}
