package middleware

import (
	"sync"
	"time"
)

type clientInfo struct {
	start time.Time
	count int
}

// localWindow is the in-process fixed-window counter used when Redis is absent.
type localWindow struct {
	mu      sync.Mutex
	clients map[string]*clientInfo
	now     func() time.Time
}

// entries kept before expired windows are swept
const localSweepThreshold = 10000

func newLocalWindow() *localWindow {
	return &localWindow{clients: make(map[string]*clientInfo), now: time.Now}
}

// hit records one request for key and returns the count inside the current window.
func (w *localWindow) hit(key string, window time.Duration) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	ci, ok := w.clients[key]
	if !ok || now.Sub(ci.start) > window {
		if len(w.clients) >= localSweepThreshold {
			w.sweep(now, window)
		}
		w.clients[key] = &clientInfo{start: now, count: 1}
		return 1
	}

	ci.count++
	return ci.count
}

func (w *localWindow) sweep(now time.Time, window time.Duration) {
	for k, ci := range w.clients {
		if now.Sub(ci.start) > window {
			delete(w.clients, k)
		}
	}
}
