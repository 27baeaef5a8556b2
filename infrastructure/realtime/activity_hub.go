package realtime

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"vidtube/domain/model"
)

const (
	subscriberBuffer  = 8
	heartbeatInterval = 25 * time.Second
)

// Hub fans activity events out to every open stream of a user.
type Hub struct {
	mu        sync.RWMutex
	users     map[string]map[chan model.ActivityEvent]struct{}
	heartbeat time.Duration
	closed    bool
}

func NewActivityHub() *Hub {
	return &Hub{
		users:     make(map[string]map[chan model.ActivityEvent]struct{}),
		heartbeat: heartbeatInterval,
	}
}

// Serve streams events for the authenticated user (user_id set by middleware) until the client goes away.
func (h *Hub) Serve(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.Status(http.StatusUnauthorized)
		return
	}
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // disable nginx buffering

	ch := h.subscribe(userID)
	defer h.unsubscribe(userID, ch)

	_, _ = c.Writer.Write([]byte(":ok\n\n"))
	c.Writer.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	for {
		select {
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
			_, _ = c.Writer.Write([]byte(":ping\n\n"))
			c.Writer.Flush()
		case evt, ok := <-ch:
			if !ok {
				return
			}
			c.SSEvent("activity", evt)
			c.Writer.Flush()
		}
	}
}

// Notify never blocks; a subscriber whose buffer is full misses the event.
func (h *Hub) Notify(userID string, event model.ActivityEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.users[userID] {
		select {
		case ch <- event:
		default:
		}
	}
}

// Close ends every open stream and makes new ones end right away. It is registered as a server
// shutdown hook, since http.Server.Shutdown does not cancel in-flight requests.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for userID, subs := range h.users {
		for ch := range subs {
			close(ch)
		}
		delete(h.users, userID)
	}
}

func (h *Hub) subscribe(userID string) chan model.ActivityEvent {
	ch := make(chan model.ActivityEvent, subscriberBuffer)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch
	}
	if h.users[userID] == nil {
		h.users[userID] = make(map[chan model.ActivityEvent]struct{})
	}
	h.users[userID][ch] = struct{}{}
	return ch
}

func (h *Hub) unsubscribe(userID string, ch chan model.ActivityEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs := h.users[userID]; subs != nil {
		delete(subs, ch)
		close(ch)
		if len(subs) == 0 {
			delete(h.users, userID)
		}
	}
}

func (h *Hub) subscriberCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users[userID])
}
