package middleware

import (
	"sync"
	"time"
)

type clientInfo struct {
	start time.Time
	count int
}

// memoryLimiter is a fixed-window counter used while Redis is unavailable.
type memoryLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientInfo
	lastGC  time.Time
}

func newMemoryLimiter() *memoryLimiter {
	return &memoryLimiter{clients: make(map[string]*clientInfo)}
}

// hit counts one request for key and returns the count within the current window.
func (l *memoryLimiter) hit(key string, window time.Duration, now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastGC) > window {
		for k, ci := range l.clients {
			if now.Sub(ci.start) > window {
				delete(l.clients, k)
			}
		}
		l.lastGC = now
	}

	ci, ok := l.clients[key]
	if !ok || now.Sub(ci.start) > window {
		ci = &clientInfo{start: now}
		l.clients[key] = ci
	}
	ci.count++
	return ci.count
}
