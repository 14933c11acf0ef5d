package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// InquiryLimiter decides whether a client may submit another inquiry.
type InquiryLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type noopLimiter struct{}

func (noopLimiter) Allow(context.Context, string) (bool, error) { return true, nil }

// NewNoopLimiter allows everything. Used when Redis is not configured.
func NewNoopLimiter() InquiryLimiter { return noopLimiter{} }

// RedisInquiryLimiter allows one inquiry per cooldown and at most hourlyLimit
// per rolling hour window for a key.
type RedisInquiryLimiter struct {
	rdb         redis.Cmdable
	cooldown    time.Duration
	hourlyLimit int64
}

func NewRedisInquiryLimiter(rdb redis.Cmdable, hourlyLimit int, cooldown time.Duration) *RedisInquiryLimiter {
	return &RedisInquiryLimiter{rdb: rdb, cooldown: cooldown, hourlyLimit: int64(hourlyLimit)}
}

func (l *RedisInquiryLimiter) Allow(ctx context.Context, key string) (bool, error) {
	cooldownKey := fmt.Sprintf("inquiry_cooldown_%s", key)
	hourKey := fmt.Sprintf("inquiry_hour_%s", key)

	ok, err := l.rdb.SetNX(ctx, cooldownKey, 1, l.cooldown).Result()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	cnt, err := l.rdb.Incr(ctx, hourKey).Result()
	if err != nil {
		return false, err
	}
	if cnt == 1 {
		if err := l.rdb.Expire(ctx, hourKey, time.Hour).Err(); err != nil {
			return false, err
		}
	} else if l.hourlyLimit > 0 && cnt > l.hourlyLimit {
		// A counter left without a TTL would block the key forever.
		ttl, err := l.rdb.TTL(ctx, hourKey).Result()
		if err != nil {
			return false, err
		}
		if ttl < 0 {
			if err := l.rdb.Expire(ctx, hourKey, time.Hour).Err(); err != nil {
				return false, err
			}
		}
	}
	return l.hourlyLimit <= 0 || cnt <= l.hourlyLimit, nil
}
