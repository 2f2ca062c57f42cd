package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/pactify-backend/internal/http/response"
	"github.com/yungbote/pactify-backend/internal/platform/ctxutil"
	"github.com/yungbote/pactify-backend/internal/platform/logger"
	"github.com/yungbote/pactify-backend/internal/realtime"
	"github.com/yungbote/pactify-backend/internal/services"
)

type RealtimeHandler struct {
	log *logger.Logger
	hub *realtime.SSEHub

	mu      sync.Mutex
	clients map[uuid.UUID]*realtime.SSEClient // key: SessionID (UserToken.ID)
}

func NewRealtimeHandler(log *logger.Logger, hub *realtime.SSEHub) *RealtimeHandler {
	return &RealtimeHandler{
		log:     log.With("handler", "RealtimeHandler"),
		hub:     hub,
		clients: make(map[uuid.UUID]*realtime.SSEClient),
	}
}

// GET /api/sse/stream
// Every stream joins the owner's channel, where toasts and wizard updates are published.
// A second stream for the same login session replaces the first.
func (h *RealtimeHandler) SSEStream(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", services.ErrAuthenticationMissing)
		return
	}
	sessionKey := rd.SessionID
	if sessionKey == uuid.Nil {
		sessionKey = uuid.New()
	}

	client := h.hub.NewClient(rd.UserID)
	h.mu.Lock()
	if existing, ok := h.clients[sessionKey]; ok {
		h.hub.Disconnect(existing)
	}
	h.clients[sessionKey] = client
	h.mu.Unlock()

	h.hub.Subscribe(client, realtime.UserChannel(rd.UserID))
	h.log.Debug("SSE stream open", "user_id", rd.UserID, "session_id", sessionKey)

	h.hub.ServeHTTP(c.Writer, c.Request, client)

	h.mu.Lock()
	if h.clients[sessionKey] == client {
		delete(h.clients, sessionKey)
	}
	h.mu.Unlock()
	h.hub.Disconnect(client)
}
