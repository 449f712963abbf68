package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"peopleconnect/internal/infrastructure/metrics"
	"peopleconnect/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 16
)

// Client is one admin dashboard connection. An admin with several tabs open
// has several clients.
type Client struct {
	AdminID string
	Conn    *websocket.Conn
	Send    chan []byte
}

func NewClient(adminID string, conn *websocket.Conn) *Client {
	return &Client{
		AdminID: adminID,
		Conn:    conn,
		Send:    make(chan []byte, sendBuffer),
	}
}

// Manager fans feed updates out to every connected dashboard.
type Manager struct {
	clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	broadcast  chan []byte
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		broadcast:  make(chan []byte, sendBuffer),
	}
}

// Start runs the hub loop until ctx is done.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client] = true
				m.mutex.Unlock()
				metrics.FeedSubscribers.Inc()
				logger.Debug("Dashboard client registered: %s", client.AdminID)

			case client := <-m.Unregister:
				m.remove(client)

			case message := <-m.broadcast:
				m.mutex.RLock()
				var slow []*Client
				for client := range m.clients {
					select {
					case client.Send <- message:
					default:
						slow = append(slow, client)
					}
				}
				m.mutex.RUnlock()
				// A client that cannot keep up is dropped; it reconnects and gets a fresh list.
				for _, client := range slow {
					m.remove(client)
				}

			case <-ctx.Done():
				m.mutex.Lock()
				for client := range m.clients {
					delete(m.clients, client)
					close(client.Send)
				}
				m.mutex.Unlock()
				return
			}
		}
	}()
}

func (m *Manager) remove(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, ok := m.clients[client]; ok {
		delete(m.clients, client)
		close(client.Send)
		metrics.FeedSubscribers.Dec()
		logger.Debug("Dashboard client unregistered: %s", client.AdminID)
	}
}

// Broadcast queues a message for every client. It never blocks the caller.
func (m *Manager) Broadcast(message []byte) {
	select {
	case m.broadcast <- message:
	default:
		logger.Warn("Dashboard broadcast queue full; dropping update")
	}
}

func (m *Manager) ClientCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}

// ReadPump drains the connection so pongs and close frames are processed.
// Dashboards never send data.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("Dashboard websocket error: %v", err)
			}
			return
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warn("Dashboard websocket write failed: %v", err)
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
