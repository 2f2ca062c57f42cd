package realtime

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/pactify-backend/internal/platform/logger"
)

const (
	outboundBuffer    = 16
	heartbeatInterval = 15 * time.Second
	retryMillis       = 3000
)

// SSEHub fans messages out to the streams subscribed to their channel. It is
// process-local; cross-instance delivery goes through realtime/bus.
type SSEHub struct {
	log       *logger.Logger
	heartbeat time.Duration
	seq       atomic.Uint64

	mu   sync.RWMutex
	subs map[string]map[*SSEClient]struct{}
}

func NewSSEHub(log *logger.Logger) *SSEHub {
	return &SSEHub{
		log:       log.With("component", "SSEHub"),
		heartbeat: heartbeatInterval,
		subs:      make(map[string]map[*SSEClient]struct{}),
	}
}

func (hub *SSEHub) NewClient(userID uuid.UUID) *SSEClient {
	return &SSEClient{
		ID:       uuid.New(),
		UserID:   userID,
		Outbound: make(chan SSEMessage, outboundBuffer),
		channels: make(map[string]struct{}),
		done:     make(chan struct{}),
	}
}

func (hub *SSEHub) Subscribe(client *SSEClient, channels ...string) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	for _, ch := range channels {
		if ch = strings.TrimSpace(ch); ch == "" {
			continue
		}
		client.channels[ch] = struct{}{}
		set := hub.subs[ch]
		if set == nil {
			set = make(map[*SSEClient]struct{})
			hub.subs[ch] = set
		}
		set[client] = struct{}{}
	}
}

func (hub *SSEHub) Unsubscribe(client *SSEClient, channel string) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	hub.dropLocked(client, strings.TrimSpace(channel))
}

func (hub *SSEHub) dropLocked(client *SSEClient, channel string) {
	delete(client.channels, channel)
	set := hub.subs[channel]
	delete(set, client)
	if len(set) == 0 {
		delete(hub.subs, channel)
	}
}

// Subscribers reports how many streams listen on channel.
func (hub *SSEHub) Subscribers(channel string) int {
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	return len(hub.subs[channel])
}

// Broadcast never blocks; a client with a full buffer misses the message.
func (hub *SSEHub) Broadcast(msg SSEMessage) {
	if msg.Channel == "" {
		return
	}
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	for c := range hub.subs[msg.Channel] {
		select {
		case c.Outbound <- msg:
		default:
			hub.log.Warn("Dropping SSE message, outbound buffer full", "client_id", c.ID, "event", msg.Event)
		}
	}
}

// ServeHTTP streams client's messages until the request ends or the client is
// disconnected. Each event carries a hub-wide increasing id.
func (hub *SSEHub) ServeHTTP(w http.ResponseWriter, r *http.Request, client *SSEClient) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	_, _ = fmt.Fprintf(w, "retry: %d\n\n", retryMillis)
	flusher.Flush()

	heartbeat := time.NewTicker(hub.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-client.done:
			return
		case <-heartbeat.C:
			_, _ = fmt.Fprint(w, ": ping\n\n")
		case msg, open := <-client.Outbound:
			if !open {
				return
			}
			if err := hub.writeEvent(w, msg); err != nil {
				hub.log.Warn("Failed to encode SSE message", "event", msg.Event, "error", err)
				continue
			}
		}
		flusher.Flush()
	}
}

func (hub *SSEHub) writeEvent(w http.ResponseWriter, msg SSEMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", hub.seq.Add(1), msg.Event, payload)
	return err
}

// Disconnect unsubscribes the client and closes its channels. Safe to call twice.
func (hub *SSEHub) Disconnect(client *SSEClient) {
	client.closeOnce.Do(func() {
		hub.mu.Lock()
		for ch := range client.channels {
			hub.dropLocked(client, ch)
		}
		hub.mu.Unlock()
		close(client.done)
		close(client.Outbound)
	})
}
