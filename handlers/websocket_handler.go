package handlers

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"

	"github.com/Dosada05/hackfest/live"
)

type WebSocketHandler struct {
	hub      *live.Hub
	upgrader websocket.Upgrader
}

// NewWebSocketHandler принимает апгрейд соединения только с указанных origin.
func NewWebSocketHandler(hub *live.Hub, allowedOrigins []string) *WebSocketHandler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				if _, ok := allowed[origin]; ok {
					return true
				}
				u, err := url.Parse(origin)
				return err == nil && u.Host == r.Host
			},
		},
	}
}

// ServeWs подключает админку к ленте новых регистраций.
// Клиент подключается к /ws/admin/registrations?token=<jwt>
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отправляет HTTP ошибку клиенту
		slog.WarnContext(r.Context(), "websocket upgrade failed", slog.Any("error", err))
		return
	}
	if !h.hub.Attach(conn) {
		slog.WarnContext(r.Context(), "websocket hub is stopped, connection closed")
	}
}
