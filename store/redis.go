package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the key holding the patient document when the redis
// driver is selected.
const DefaultRedisKey = "patient_data"

const redisTimeout = 2 * time.Second

// RedisBackend stores the entire JSON document under a single key, treating
// Redis as the opaque key-value medium behind the load/save contract.
type RedisBackend struct {
	client *redis.Client
	key    string
}

// NewRedisBackend returns a backend using client and key. An empty key falls
// back to DefaultRedisKey.
func NewRedisBackend(client *redis.Client, key string) *RedisBackend {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisBackend{client: client, key: key}
}

func (r *RedisBackend) Load() (Collection, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	raw, err := r.client.Get(ctx, r.key).Result()
	if err == redis.Nil {
		return Collection{}, nil
	}
	if err != nil {
		return nil, err
	}

	var data Collection
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, &FormatError{Err: err}
	}
	return data, nil
}

func (r *RedisBackend) Save(data Collection) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	return r.client.Set(ctx, r.key, raw, 0).Err()
}
