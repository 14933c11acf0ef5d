package mem

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestImageEntriesSetGet(t *testing.T) {
	cache := NewImageEntries(0)
	cache.Set("a", []byte{1, 2, 3}, "image/png", time.Minute)

	data, ct, ok := cache.Get("a")
	assert.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, data)
	assert.Equal(t, "image/png", ct)

	_, _, ok = cache.Get("missing")
	assert.False(t, ok)
}

func TestImageEntriesExpiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewImageEntries(0)
	cache.now = func() time.Time { return now }

	cache.Set("a", []byte{1}, "image/png", time.Second)
	cache.Set("b", []byte{2}, "image/png", time.Hour)

	now = now.Add(2 * time.Second)
	_, _, ok := cache.Get("a")
	assert.False(t, ok)

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, cache.Prune())
	_, _, ok = cache.Get("b")
	assert.False(t, ok)
}

func TestImageEntriesZeroTTLNotStored(t *testing.T) {
	cache := NewImageEntries(0)
	cache.Set("a", []byte{1}, "image/png", 0)
	_, _, ok := cache.Get("a")
	assert.False(t, ok)
}

func TestImageEntriesByteCap(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewImageEntries(10)
	cache.now = func() time.Time { return now }

	cache.Set("a", make([]byte, 4), "image/png", time.Minute)
	cache.Set("b", make([]byte, 4), "image/png", time.Hour)
	assert.Equal(t, int64(8), cache.Bytes())

	// "a" expires first, so it makes room for "c".
	cache.Set("c", make([]byte, 4), "image/png", time.Hour)
	assert.Equal(t, 2, cache.Len())
	assert.Equal(t, int64(8), cache.Bytes())
	_, _, ok := cache.Get("a")
	assert.False(t, ok)
	_, _, ok = cache.Get("b")
	assert.True(t, ok)

	cache.Set("huge", make([]byte, 11), "image/png", time.Hour)
	_, _, ok = cache.Get("huge")
	assert.False(t, ok)

	cache.Set("b", make([]byte, 2), "image/png", time.Hour)
	assert.Equal(t, int64(6), cache.Bytes())

	cache.Delete("b")
	cache.Delete("c")
	assert.Equal(t, int64(0), cache.Bytes())
}

func TestJanitorPrunesOnSchedule(t *testing.T) {
	var mu sync.Mutex
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewImageEntries(0)
	cache.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}

	cache.Set("once", []byte{1, 2, 3}, "image/png", time.Minute)
	cache.Set("fresh", []byte{4}, "image/png", 2*time.Hour)

	mu.Lock()
	now = now.Add(time.Hour)
	mu.Unlock()

	janitor := NewJanitor(cache, zap.NewNop())
	require.NoError(t, janitor.Start("@every 1s"))
	defer janitor.Stop()

	assert.Eventually(t, func() bool { return cache.Len() == 1 }, 5*time.Second, 50*time.Millisecond)
	assert.Equal(t, int64(1), cache.Bytes())
	_, _, ok := cache.Get("fresh")
	assert.True(t, ok)
}

func TestJanitorRejectsBadSchedule(t *testing.T) {
	janitor := NewJanitor(NewImageEntries(0), zap.NewNop())
	assert.Error(t, janitor.Start("not a schedule"))
	janitor.Stop()
}
