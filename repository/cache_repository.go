package repository

import (
	"context"
	"time"
)

// CacheRepository stores computed schedules as opaque strings. A ttl of zero
// means the entry does not expire.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
