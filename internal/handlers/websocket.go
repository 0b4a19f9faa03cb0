package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"mines-backend/internal/models"
	"mines-backend/internal/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler pushes balance_update and game_update frames to the
// owning player. It implements services.Broadcaster.
type WebSocketHandler struct {
	redisService *services.RedisService
	hub          *WebSocketHub
}

type WebSocketHub struct {
	clients    map[int64]*websocket.Conn
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
}

type Client struct {
	UserID int64
	Conn   *websocket.Conn
}

type Message struct {
	Type   string      `json:"type"`
	UserID int64       `json:"-"`
	Data   interface{} `json:"data"`
}

func NewWebSocketHandler(redisService *services.RedisService) *WebSocketHandler {
	hub := &WebSocketHub{
		clients:    make(map[int64]*websocket.Conn),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 100),
	}

	go hub.run()

	return &WebSocketHandler{
		redisService: redisService,
		hub:          hub,
	}
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	userID := c.GetInt64("user_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade to WebSocket: %v", err)
		return
	}

	client := &Client{
		UserID: userID,
		Conn:   conn,
	}

	h.hub.register <- client

	defer func() {
		h.hub.unregister <- client
		conn.Close()
	}()

	h.sendBalance(client)

	for {
		var msg Message
		err := conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		if msg.Type == "ping" {
			client.Conn.WriteJSON(Message{
				Type: "pong",
				Data: gin.H{"timestamp": time.Now().Unix()},
			})
		}
	}
}

func (h *WebSocketHandler) sendBalance(client *Client) {
	wallet, err := h.redisService.GetWallet(context.Background(), client.UserID)
	if err != nil {
		log.Printf("Failed to get wallet for WS: %v", err)
		return
	}

	client.Conn.WriteJSON(Message{
		Type: "balance_update",
		Data: gin.H{"balance": wallet.Balance},
	})
}

// BroadcastBalanceUpdate implements services.Broadcaster.
func (h *WebSocketHandler) BroadcastBalanceUpdate(userID int64, balance float64) {
	h.hub.broadcast <- &Message{
		Type:   "balance_update",
		UserID: userID,
		Data:   gin.H{"balance": balance},
	}
}

// BroadcastGameUpdate implements services.Broadcaster. The payload is the
// same session view the reveal response carries.
func (h *WebSocketHandler) BroadcastGameUpdate(userID int64, view *models.GameView) {
	h.hub.broadcast <- &Message{
		Type:   "game_update",
		UserID: userID,
		Data:   view,
	}
}

func (hub *WebSocketHub) run() {
	for {
		select {
		case client := <-hub.register:
			hub.clients[client.UserID] = client.Conn
			log.Printf("Client registered: %d", client.UserID)

		case client := <-hub.unregister:
			if _, ok := hub.clients[client.UserID]; ok {
				delete(hub.clients, client.UserID)
				log.Printf("Client unregistered: %d", client.UserID)
			}

		case message := <-hub.broadcast:
			if conn, ok := hub.clients[message.UserID]; ok {
				conn.WriteJSON(message)
			}
		}
	}
}
