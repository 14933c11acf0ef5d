// pkg/memcache/image_cache.go
package mem

import (
	"sort"
	"sync"
	"time"
)

type ImageCache interface {
	Set(id string, data []byte, contentType string, ttl time.Duration)

	// Get returns the cached payload for id. ok is false if missing/expired.
	Get(id string) (data []byte, contentType string, ok bool)

	Delete(id string)
}

type entry struct {
	data        []byte
	contentType string
	expiresAt   time.Time
}

type ImageEntries struct {
	mu       sync.RWMutex
	data     map[string]entry
	size     int64
	maxBytes int64
	now      func() time.Time
}

// NewImageEntries returns a cache holding at most maxBytes of payload.
// maxBytes <= 0 means unbounded.
func NewImageEntries(maxBytes int64) *ImageEntries {
	return &ImageEntries{
		data:     make(map[string]entry),
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

func (s *ImageEntries) Set(id string, data []byte, contentType string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	n := int64(len(data))
	if s.maxBytes > 0 && n > s.maxBytes {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
	if s.maxBytes > 0 && s.size+n > s.maxBytes {
		s.evictLocked(s.size + n - s.maxBytes)
	}
	s.data[id] = entry{
		data:        data,
		contentType: contentType,
		expiresAt:   s.now().Add(ttl),
	}
	s.size += n
}

func (s *ImageEntries) Get(id string) ([]byte, string, bool) {
	s.mu.RLock()
	e, ok := s.data[id]
	s.mu.RUnlock()
	if !ok {
		return nil, "", false
	}
	if s.now().After(e.expiresAt) {
		s.Delete(id) // cleanup expired
		return nil, "", false
	}
	return e.data, e.contentType, true
}

func (s *ImageEntries) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
}

// Len and Bytes report the current entry count and payload total.
func (s *ImageEntries) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *ImageEntries) Bytes() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

// Prune drops every expired entry and reports how many were removed.
func (s *ImageEntries) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.data {
		if now.After(e.expiresAt) {
			s.removeLocked(id)
			removed++
		}
	}
	return removed
}

func (s *ImageEntries) removeLocked(id string) {
	if e, ok := s.data[id]; ok {
		s.size -= int64(len(e.data))
		delete(s.data, id)
	}
}

// evictLocked frees at least need bytes, soonest-expiring entries first.
func (s *ImageEntries) evictLocked(need int64) {
	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return s.data[ids[i]].expiresAt.Before(s.data[ids[j]].expiresAt)
	})

	var freed int64
	for _, id := range ids {
		if freed >= need {
			return
		}
		freed += int64(len(s.data[id].data))
		s.removeLocked(id)
	}
}
