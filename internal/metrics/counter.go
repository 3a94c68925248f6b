package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

// Registry holds the process-wide business counters reported by /health.
type Registry struct {
	OrdersPlaced   Counter
	StockConflicts Counter
	FailedLogins   Counter

	startedAt time.Time
}

func NewRegistry() *Registry {
	return &Registry{startedAt: time.Now()}
}

type Snapshot struct {
	OrdersPlaced   uint64 `json:"ordersPlaced"`
	StockConflicts uint64 `json:"stockConflicts"`
	FailedLogins   uint64 `json:"failedLogins"`
	UptimeSeconds  int64  `json:"uptimeSeconds"`
}

func (r *Registry) Snapshot() Snapshot {
	return Snapshot{
		OrdersPlaced:   r.OrdersPlaced.Load(),
		StockConflicts: r.StockConflicts.Load(),
		FailedLogins:   r.FailedLogins.Load(),
		UptimeSeconds:  int64(time.Since(r.startedAt).Seconds()),
	}
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
