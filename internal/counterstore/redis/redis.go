package redis

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"jobpulse/internal/counterstore"
)

type Store struct {
	client *redis.Client
}

func New(opts counterstore.Options) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return &Store{client: client}
}

func (s *Store) IncrBy(ctx context.Context, key string, delta int64) (int64, error) {
	return s.client.IncrBy(ctx, key, delta).Result()
}

func (s *Store) GetInt(ctx context.Context, key string) (int64, error) {
	value, err := s.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return value, nil
}

func (s *Store) HIncrBy(ctx context.Context, key, field string, delta int64) error {
	return s.client.HIncrBy(ctx, key, field, delta).Err()
}

func (s *Store) HGetAll(ctx context.Context, key string) (map[string]int64, error) {
	raw, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	fields := make(map[string]int64, len(raw))
	for field, value := range raw {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			continue
		}
		fields[field] = parsed
	}
	return fields, nil
}

func (s *Store) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *Store) GetJSON(ctx context.Context, key string, value interface{}) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return counterstore.ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, value)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}

// Client exposes the underlying connection for collaborators that share it,
// such as the HTTP rate limiter.
func (s *Store) Client() *redis.Client {
	return s.client
}
