package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"blogaulas/middleware"
	"blogaulas/models"
	"blogaulas/services"
)

type WebSocketHandler struct {
	hubService *services.HubService
	upgrader   websocket.Upgrader
	log        *zap.Logger
}

// NewWebSocketHandler accepts upgrades from allowedOrigins; an empty list allows any origin.
func NewWebSocketHandler(hubService *services.HubService, allowedOrigins []string, log *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hubService: hubService,
		log:        log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if len(allowedOrigins) == 0 {
					return true
				}
				origin := r.Header.Get("Origin")
				for _, o := range allowedOrigins {
					if o == origin {
						return true
					}
				}
				return false
			},
		},
	}
}

// HandleWebSocket godoc
// @Summary Live feed of post and comment events
// @Description Upgrades to a WebSocket that streams models.WSMessage frames. Browsers may pass the token as a query parameter.
// @Tags feed
// @Produce json
// @Security BearerAuth
// @Param token query string false "JWT, when an Authorization header cannot be set"
// @Success 101 {object} models.WSMessage
// @Failure 401 {object} map[string]string
// @Router /ws [get]
func (wh *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	conn, err := wh.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		wh.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := models.NewClient(wh.hubService.GetHub(), conn, caller.Username)
	wh.log.Info("feed client connected", zap.String("client", client.ID), zap.String("username", caller.Username))

	// Queued before registration, so nothing else can have closed Send yet.
	hello, _ := json.Marshal(models.WSMessage{
		Type: "client_connected",
		Data: map[string]string{"client_id": client.ID},
	})
	client.Send <- hello

	wh.hubService.Register(client)
	go wh.writePump(client)
	go wh.readPump(client)
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// readPump drains and discards client frames; the feed is server to client.
func (wh *WebSocketHandler) readPump(client *models.Client) {
	defer func() {
		wh.hubService.Unregister(client)
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				wh.log.Info("feed client closed unexpectedly", zap.String("client", client.ID), zap.Error(err))
			}
			return
		}
	}
}

func (wh *WebSocketHandler) writePump(client *models.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				wh.log.Debug("feed write failed", zap.String("client", client.ID), zap.Error(err))
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
