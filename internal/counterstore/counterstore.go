package counterstore

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("key not found in counter store")

// Store is the single adapter through which all ephemeral counter state is
// read and written. Increments must be atomic at the store level.
type Store interface {
	IncrBy(ctx context.Context, key string, delta int64) (int64, error)
	GetInt(ctx context.Context, key string) (int64, error)
	HIncrBy(ctx context.Context, key, field string, delta int64) error
	HGetAll(ctx context.Context, key string) (map[string]int64, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	GetJSON(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Options struct {
	Addr     string
	Password string
	DB       int
}

func ViewKey(jobID string) string      { return "views:" + jobID }
func DailyViewKey(jobID string) string { return "views:daily:" + jobID }
func TrafficKey(jobID string) string   { return "traffic:" + jobID }
func DeviceKey(jobID string) string    { return "devices:" + jobID }
func LocationKey(jobID string) string  { return "locations:" + jobID }
func BoostKey(jobID string) string     { return "boost:" + jobID }
