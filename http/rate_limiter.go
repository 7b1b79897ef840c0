package http

import (
	"sync"
	"time"
)

const (
	idleClientThreshold = 1 * time.Hour
	cleanupInterval     = 30 * time.Minute
)

// clientWindow counts the requests a client has left in its current window.
type clientWindow struct {
	remaining int
	startedAt time.Time
}

// RateLimiter allows each client capacity requests per window. Idle clients
// are forgotten by a background sweep until Stop is called.
type RateLimiter struct {
	mu       sync.Mutex
	capacity int
	window   time.Duration
	clients  map[string]*clientWindow
	now      func() time.Time

	stopOnce sync.Once
	stop     chan struct{}
}

func NewRateLimiter(capacity int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		capacity: capacity,
		window:   window,
		clients:  make(map[string]*clientWindow),
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

func (r *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep()
		case <-r.stop:
			return
		}
	}
}

func (r *RateLimiter) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for client, w := range r.clients {
		if now.Sub(w.startedAt) > idleClientThreshold {
			delete(r.clients, client)
		}
	}
}

// Stop ends the background sweep. It is safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// Allow consumes one request for client and reports whether it may proceed.
// A capacity <= 0 disables limiting.
func (r *RateLimiter) Allow(client string) bool {
	if r.capacity <= 0 {
		return true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	w, exists := r.clients[client]
	if !exists || now.Sub(w.startedAt) >= r.window {
		r.clients[client] = &clientWindow{remaining: r.capacity - 1, startedAt: now}
		return true
	}

	if w.remaining <= 0 {
		return false
	}
	w.remaining--
	return true
}
