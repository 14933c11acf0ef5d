package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis keeps counters and TTLs in maps. Only the commands the limiter
// issues are implemented.
type fakeRedis struct {
	redis.Cmdable
	values    map[string]int64
	ttls      map[string]time.Duration
	expireErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]int64{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) SetNX(_ context.Context, key string, _ interface{}, expiration time.Duration) *redis.BoolCmd {
	if _, ok := f.values[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.values[key] = 1
	f.ttls[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Incr(_ context.Context, key string) *redis.IntCmd {
	f.values[key]++
	return redis.NewIntResult(f.values[key], nil)
}

func (f *fakeRedis) Expire(_ context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	if f.expireErr != nil {
		return redis.NewBoolResult(false, f.expireErr)
	}
	f.ttls[key] = expiration
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) TTL(_ context.Context, key string) *redis.DurationCmd {
	ttl, ok := f.ttls[key]
	if !ok {
		return redis.NewDurationResult(-1, nil)
	}
	return redis.NewDurationResult(ttl, nil)
}

// expireCooldown simulates the cooldown key running out.
func (f *fakeRedis) expireCooldown(key string) {
	delete(f.values, "inquiry_cooldown_"+key)
	delete(f.ttls, "inquiry_cooldown_"+key)
}

func TestRedisInquiryLimiterCooldownAndHourlyCap(t *testing.T) {
	rdb := newFakeRedis()
	limiter := NewRedisInquiryLimiter(rdb, 2, 30*time.Second)
	ctx := context.Background()

	ok, err := limiter.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Hour, rdb.ttls["inquiry_hour_1.2.3.4"])
	assert.Equal(t, 30*time.Second, rdb.ttls["inquiry_cooldown_1.2.3.4"])

	ok, err = limiter.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok, "second inquiry inside the cooldown")

	rdb.expireCooldown("1.2.3.4")
	ok, err = limiter.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, ok)

	rdb.expireCooldown("1.2.3.4")
	ok, err = limiter.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok, "third inquiry in the hour")

	ok, err = limiter.Allow(ctx, "5.6.7.8")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisInquiryLimiterReportsExpireFailure(t *testing.T) {
	rdb := newFakeRedis()
	rdb.expireErr = errors.New("connection reset")
	limiter := NewRedisInquiryLimiter(rdb, 5, 30*time.Second)

	_, err := limiter.Allow(context.Background(), "1.2.3.4")
	assert.EqualError(t, err, "connection reset")
}

func TestRedisInquiryLimiterRearmsCounterWithoutTTL(t *testing.T) {
	rdb := newFakeRedis()
	rdb.values["inquiry_hour_1.2.3.4"] = 7
	limiter := NewRedisInquiryLimiter(rdb, 2, 30*time.Second)

	ok, err := limiter.Allow(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, time.Hour, rdb.ttls["inquiry_hour_1.2.3.4"])
}
