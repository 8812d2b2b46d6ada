package web

import (
	"sync"
	"time"
)

// LivePrice is the most recent trade seen on the live stream.
type LivePrice struct {
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// LiveTicker holds the latest streamed price for the /api/live endpoint.
type LiveTicker struct {
	mu      sync.RWMutex
	current *LivePrice
}

func NewLiveTicker() *LiveTicker {
	return &LiveTicker{}
}

func (t *LiveTicker) Set(price float64, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = &LivePrice{Price: price, Timestamp: at}
}

// Get returns the latest price, or nil when nothing has streamed yet.
func (t *LiveTicker) Get() *LivePrice {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.current == nil {
		return nil
	}
	p := *t.current
	return &p
}
