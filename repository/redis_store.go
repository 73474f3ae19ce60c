package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix namespaces document blobs inside a shared Redis database.
const redisKeyPrefix = "doc:"

// RedisStore implements BlobStore on Redis string keys. Intended for local
// development; prefix listing uses SCAN, so keys containing glob
// metacharacters are not supported by this backend.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, unavailable("redis get "+key, err)
	}
	return data, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, redisKeyPrefix+key, data, 0).Err(); err != nil {
		return unavailable("redis set "+key, err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context, prefix string) ([]Object, error) {
	keys, err := s.scan(ctx, prefix)
	if err != nil {
		return nil, err
	}
	objects := make([]Object, 0, len(keys))
	for _, k := range keys {
		data, err := s.client.Get(ctx, redisKeyPrefix+k).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, unavailable("redis get "+k, err)
		}
		objects = append(objects, Object{Key: k, Data: data})
	}
	return objects, nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return unavailable("redis del "+key, err)
	}
	return nil
}

func (s *RedisStore) DeleteAll(ctx context.Context, prefix string) (int, error) {
	keys, err := s.scan(ctx, prefix)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, k := range keys {
		if err := s.Delete(ctx, k); err != nil {
			return 0, err
		}
		count++
	}
	return count, nil
}

func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, redisKeyPrefix+key).Result()
	if err != nil {
		return false, unavailable("redis exists "+key, err)
	}
	return n > 0, nil
}

func (s *RedisStore) scan(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val()[len(redisKeyPrefix):])
	}
	if err := iter.Err(); err != nil {
		return nil, unavailable("redis scan "+prefix, err)
	}
	return keys, nil
}
