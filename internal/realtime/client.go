package realtime

import (
	"sync"

	"github.com/google/uuid"
)

// SSEClient is one open event stream. Outbound is closed by SSEHub.Disconnect.
type SSEClient struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Outbound chan SSEMessage

	channels  map[string]struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// Channels lists the client's current subscriptions.
func (c *SSEClient) Channels() []string {
	out := make([]string, 0, len(c.channels))
	for ch := range c.channels {
		out = append(out, ch)
	}
	return out
}
