package store

import (
    "context"
    "errors"

    "github.com/redis/go-redis/v9"
)

// Redis adapts a go-redis client to the KV contract.  Values are plain
// strings without TTL; the repositories own the serialization format.
type Redis struct {
    client *redis.Client
}

// NewRedis wraps an already connected Redis client.  The caller is
// responsible for verifying connectivity before handing the client in.
func NewRedis(client *redis.Client) *Redis {
    if client == nil {
        panic("nil redis client passed to NewRedis")
    }
    return &Redis{client: client}
}

// Get returns the value stored under key.  redis.Nil is translated
// into the (value, found=false) shape of the KV contract.
func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
    v, err := r.client.Get(ctx, key).Result()
    if errors.Is(err, redis.Nil) {
        return "", false, nil
    }
    if err != nil {
        return "", false, err
    }
    return v, true, nil
}

// Set stores value under key without expiration.
func (r *Redis) Set(ctx context.Context, key, value string) error {
    return r.client.Set(ctx, key, value, 0).Err()
}

// Remove deletes the key.  Deleting an absent key is not an error.
func (r *Redis) Remove(ctx context.Context, key string) error {
    return r.client.Del(ctx, key).Err()
}
