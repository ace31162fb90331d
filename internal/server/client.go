package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
	"github.com/tndwolf/Wizards-Duel-sub000/internal/engine/handlers"
	"github.com/tndwolf/Wizards-Duel-sub000/pkg/api"
	"github.com/tndwolf/Wizards-Duel-sub000/pkg/logger"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	submitTimeout  = 2 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и инстансом игры.
// Снимки приходят через хаб, команды уходят в Instance.Submit.
type Client struct {
	srv     *Server
	Conn    *websocket.Conn
	Session string
	Send    <-chan api.ServerResponse

	actor domain.EntityID
	log   *logrus.Entry
}

func NewClient(srv *Server, conn *websocket.Conn) *Client {
	session := uuid.NewString()
	return &Client{
		srv:     srv,
		Conn:    conn,
		Session: session,
		Send:    srv.Hub.Register(session),
		log:     logger.For("ws").WithField("session", session),
	}
}

// greet отправляет новому клиенту текущий снимок (триггер первой отрисовки).
func (c *Client) greet() {
	ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
	defer cancel()

	snap, err := c.srv.Instance.Snapshot(ctx)
	if err != nil {
		c.sendError(err)
		return
	}
	if id, ok := domain.ParseEntityID(snap.MyEntityID); ok {
		c.actor = id
	}
	c.srv.Hub.SendTo(c.Session, snap)
	c.log.WithField("entity_id", snap.MyEntityID).Info("Client connected")
}

func (c *Client) sendError(err error) {
	c.srv.Hub.SendTo(c.Session, api.ServerResponse{Type: api.TypeError, Error: err.Error()})
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		c.srv.Hub.Unregister(c.Session)
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection")
		}
		c.log.Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	hctx := handlers.Context{Actor: c.actor, Token: c.Session}
	for {
		var msg api.ClientCommand
		if err := c.Conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Warn("WS read error")
			}
			return
		}

		cmd, err := c.srv.actions.Decode(hctx, msg)
		if err != nil {
			c.log.WithError(err).WithField("action", msg.Action).Debug("Bad command")
			c.sendError(err)
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		err = c.srv.Instance.Submit(ctx, cmd)
		cancel()
		if err != nil {
			c.sendError(err)
		}
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				// Хаб закрыл канал
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				c.log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
