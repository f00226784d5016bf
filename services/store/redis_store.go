package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps room metadata in Redis so the registry can survive a
// process restart or later be shared. Keys get a 24h TTL: an orphaned room
// that nobody tears down eventually expires on its own.
type RedisStore struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisStore connects to Redis. Addr can be a plain host:port or a full
// redis:// URL for remote instances.
func NewRedisStore(addr string, db int) (*RedisStore, error) {
	var client *redis.Client
	if addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("error parsing Redis URL: %v", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		})
	}

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("error pinging Redis: %v", err)
	}
	return &RedisStore{client: client, ctx: ctx}, nil
}

func (r *RedisStore) Get(key string) ([]byte, bool, error) {
	data, err := r.client.Get(r.ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("error getting key %s: %v", key, err)
	}
	return data, true, nil
}

func (r *RedisStore) Put(key string, value []byte) error {
	if err := r.client.Set(r.ctx, key, value, 24*time.Hour).Err(); err != nil {
		return fmt.Errorf("error setting key %s: %v", key, err)
	}
	return nil
}

func (r *RedisStore) Delete(key string) error {
	if err := r.client.Del(r.ctx, key).Err(); err != nil {
		return fmt.Errorf("error deleting key %s: %v", key, err)
	}
	return nil
}

func (r *RedisStore) List(prefix string) ([][]byte, error) {
	keys, err := r.client.Keys(r.ctx, prefix+"*").Result()
	if err != nil {
		return nil, fmt.Errorf("error listing keys with prefix %s: %v", prefix, err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	values, err := r.client.MGet(r.ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("error getting values for prefix %s: %v", prefix, err)
	}

	var result [][]byte
	for _, v := range values {
		if s, ok := v.(string); ok {
			result = append(result, []byte(s))
		}
	}
	return result, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
