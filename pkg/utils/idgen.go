package utils

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"
)

// MillisClock issues millisecond timestamps that never repeat within the
// process: a call landing in an already used millisecond gets the next one.
type MillisClock struct {
	last atomic.Int64
	now  func() time.Time
}

func NewMillisClock() *MillisClock {
	return &MillisClock{now: time.Now}
}

func (c *MillisClock) Next() int64 {
	for {
		prev := c.last.Load()
		next := c.now().UnixMilli()
		if next <= prev {
			next = prev + 1
		}
		if c.last.CompareAndSwap(prev, next) {
			return next
		}
	}
}

// NewTourID returns "tour-<millis>".
func (c *MillisClock) NewTourID() string {
	return fmt.Sprintf("tour-%d", c.Next())
}

// NewImageFilename returns "tour-<millis>-<random>.<ext>".
func (c *MillisClock) NewImageFilename(ext string) string {
	return fmt.Sprintf("tour-%d-%d.%s", c.Next(), rand.Int63n(1e9), ext)
}
