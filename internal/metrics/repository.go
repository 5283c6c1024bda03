package metrics

import (
	"sync/atomic"
	"time"
)

// Counter is a monotonically increasing event count, safe for concurrent
// use. The zero value is ready.
type Counter struct {
	n uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.n, 1)
}

func (c *Counter) Add(delta uint64) {
	atomic.AddUint64(&c.n, delta)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.n)
}

// Timer measures elapsed wall time for a single operation.
type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
