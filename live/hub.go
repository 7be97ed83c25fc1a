// Package live отправляет новые регистрации в подключенные панели
// администратора по WebSocket.
package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Dosada05/hackfest/models"
)

const MessageRegistrationCreated = "REGISTRATION_CREATED"

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 256
	broadcastQueue = 64
)

// Hub рассылает сообщения всем подключенным клиентам администратора.
type Hub struct {
	clients    map[*Client]struct{}
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	logger     *slog.Logger

	mu    sync.RWMutex
	count int
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan []byte, broadcastQueue),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run обслуживает хаб до отмены ctx, затем закрывает всех клиентов.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			h.setCount(0)
			return nil

		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.setCount(len(h.clients))
			h.logger.Info("admin feed client connected", slog.Int("clients", len(h.clients)))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.setCount(len(h.clients))
				h.logger.Info("admin feed client disconnected", slog.Int("clients", len(h.clients)))
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// клиент не успевает читать, отключаем
					delete(h.clients, c)
					close(c.send)
					h.setCount(len(h.clients))
					h.logger.Warn("admin feed client too slow, dropped")
				}
			}
		}
	}
}

// PublishRegistration ставит в очередь сообщение REGISTRATION_CREATED. Не блокирует
// вызывающего, при заполненной очереди сообщение отбрасывается.
func (h *Hub) PublishRegistration(reg *models.Registration) {
	data, err := json.Marshal(Message{Type: MessageRegistrationCreated, Payload: reg})
	if err != nil {
		h.logger.Error("marshal live message", slog.Any("error", err))
		return
	}
	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("admin feed queue full, message dropped", slog.String("registration_id", reg.ID))
	}
}

// Clients возвращает число подключенных клиентов.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

func (h *Hub) setCount(n int) {
	h.mu.Lock()
	h.count = n
	h.mu.Unlock()
}

// Attach регистрирует conn в хабе и запускает его помпы. Возвращает false,
// если хаб уже остановлен.
func (h *Hub) Attach(conn *websocket.Conn) bool {
	c := &Client{hub: h, conn: conn, send: make(chan []byte, sendBuffer)}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return false
	}
	go c.writePump()
	go c.readPump()
	return true
}

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { return c.conn.SetReadDeadline(time.Now().Add(pongWait)) })

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("admin feed read error", slog.Any("error", err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.hub.logger.Warn("admin feed write error", slog.Any("error", err))
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
