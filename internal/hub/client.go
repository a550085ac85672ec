package hub

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096

	// Events queued per connection before the hub starts dropping.
	sendBuffer = 32
)

// Client is one member's live connection. The hub owns it from Join until
// Leave/Disconnect; all writes to the socket go through the single writer
// goroutine so broadcasts and pings never interleave mid-frame.
type Client struct {
	id   uuid.UUID
	room string
	name string
	conn *websocket.Conn

	send     chan []byte
	done     chan struct{}
	shutOnce sync.Once
}

func newClient(room, name string, conn *websocket.Conn) *Client {
	return &Client{
		id:   uuid.New(),
		room: room,
		name: name,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
}

func (c *Client) Room() string { return c.room }
func (c *Client) Name() string { return c.name }

// enqueue hands a payload to the writer without blocking. A full buffer
// means the peer is too slow; the event is dropped for this recipient only.
func (c *Client) enqueue(payload []byte) {
	select {
	case <-c.done:
	case c.send <- payload:
	default:
		zap.L().Warn("dropping event for slow connection",
			zap.String("room", c.room),
			zap.String("member", c.name),
			zap.String("conn", c.id.String()),
		)
	}
}

func (c *Client) shutdown() {
	c.shutOnce.Do(func() {
		close(c.done)
	})
}

// ReadLoop consumes frames until the connection drops, handing each text
// payload to relay. It returns once the socket is unusable; the caller is
// expected to run disconnect handling then.
func (c *Client) ReadLoop(relay func(content string)) {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Debug("connection read failed",
					zap.String("room", c.room),
					zap.String("member", c.name),
					zap.String("conn", c.id.String()),
					zap.Error(err),
				)
			}
			return
		}
		relay(string(data))
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case payload := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				// Delivery failures are isolated to this recipient.
				zap.L().Debug("connection write failed",
					zap.String("room", c.room),
					zap.String("member", c.name),
					zap.String("conn", c.id.String()),
					zap.Error(err),
				)
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
