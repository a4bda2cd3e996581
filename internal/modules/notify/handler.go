package notify

import (
	"log"
	"net/http"
	"time"

	"brandmarket/internal/domain"
	"brandmarket/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: restrict origins once the admin panel domain is fixed
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades admin sessions onto the event feed.
type Handler struct {
	hub        *Hub
	jwtService *jwt.Service
}

func NewHandler(hub *Hub, jwtService *jwt.Service) *Handler {
	return &Handler{hub: hub, jwtService: jwtService}
}

func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/events", h.HandleEvents)
}

// HandleEvents handles GET /api/admin/events?token=JWT
//
// The token travels in the query string because browsers cannot set headers
// on websocket handshakes.
func (h *Handler) HandleEvents(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   gin.H{"code": "UNAUTHORIZED", "message": "Token is required, use ?token=JWT"},
		})
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   gin.H{"code": "INVALID_TOKEN", "message": "Invalid or expired token"},
		})
		return
	}
	if claims.Role != string(domain.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   gin.H{"code": "FORBIDDEN", "message": "Admin access required"},
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("events: websocket upgrade failed err=%v", err)
		return
	}

	sess := h.hub.Register(claims.UserID, conn)
	defer h.hub.Unregister(claims.UserID)

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})
	go pingLoop(sess)

	// the feed is one-way; the read loop only notices disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func pingLoop(sess *session) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if err := sess.ping(); err != nil {
			return
		}
	}
}
