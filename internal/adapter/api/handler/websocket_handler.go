package handler

import (
	"encoding/json"
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"peopleconnect/internal/domain/entity"
	ws "peopleconnect/internal/infrastructure/websocket"
	"peopleconnect/internal/usecase"
	"peopleconnect/pkg/errors"
	"peopleconnect/pkg/logger"
	"peopleconnect/pkg/response"
)

type WebSocketHandler struct {
	wsManager *ws.Manager
	feed      *usecase.PostFeed
	upgrader  gorillaws.Upgrader
}

// FeedMessage is the single message type pushed to dashboards.
type FeedMessage struct {
	Type  string         `json:"type"`
	Posts []*entity.Post `json:"posts"`
}

// NewWebSocketHandler accepts handshakes from allowedOrigins; "*" admits any.
func NewWebSocketHandler(wsManager *ws.Manager, feed *usecase.PostFeed, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager: wsManager,
		feed:      feed,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

func encodeFeed(posts []*entity.Post) ([]byte, error) {
	return json.Marshal(FeedMessage{Type: "posts", Posts: posts})
}

// PublishFeed pushes every feed change to all connected dashboards. It
// returns the unsubscribe func.
func (h *WebSocketHandler) PublishFeed() func() {
	return h.feed.Subscribe(func(posts []*entity.Post) {
		msg, err := encodeFeed(posts)
		if err != nil {
			logger.Error("Failed to encode post feed: %v", err)
			return
		}
		h.wsManager.Broadcast(msg)
	})
}

func (h *WebSocketHandler) HandleFeed(c echo.Context) error {
	uid := adminID(c)
	if uid == "" {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Warn("Websocket upgrade failed for %s: %v", uid, err)
		return nil
	}

	client := ws.NewClient(uid, conn)

	// The initial list goes straight into the client's buffer so it is the
	// first frame the dashboard sees.
	if msg, err := encodeFeed(h.feed.Posts()); err == nil {
		client.Send <- msg
	}

	h.wsManager.Register <- client

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}
