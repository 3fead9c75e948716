package stream

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/theoremus-urban-solutions/flightsim-monitor/config"
	"github.com/theoremus-urban-solutions/flightsim-monitor/tracking"
)

// Handler receives decoded updates in the order they arrived.
type Handler func(tracking.Update)

const (
	writeWait       = 10 * time.Second
	initialBackoff  = 1 * time.Second
	defaultPongWait = 60 * time.Second
)

// Client subscribes to a stream service over a websocket.
type Client struct {
	url            string
	dialer         *websocket.Dialer
	readLimit      int64
	pongWait       time.Duration
	reconnect      bool
	reconnectMax   time.Duration
	OnDecodeError  func(raw []byte, err error)
	OnConnected    func()
	OnDisconnected func(err error)
}

// NewClient creates a client for the configured stream.
func NewClient(cfg config.StreamConfig) *Client {
	pongWait := time.Duration(cfg.PongWaitMS) * time.Millisecond
	if pongWait <= 0 {
		pongWait = defaultPongWait
	}
	readLimit := cfg.ReadLimitBytes
	if readLimit <= 0 {
		readLimit = config.DefaultReadLimitBytes
	}
	reconnectMax := time.Duration(cfg.ReconnectMaxMS) * time.Millisecond
	if reconnectMax < initialBackoff {
		reconnectMax = initialBackoff
	}
	return &Client{
		url:          cfg.URL,
		dialer:       &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		readLimit:    readLimit,
		pongWait:     pongWait,
		reconnect:    cfg.Reconnect,
		reconnectMax: reconnectMax,
	}
}

// Subscribe runs the stream until ctx is done. Without reconnect it returns
// as soon as the connection is lost; with reconnect it dials again with a
// capped exponential backoff.
func (c *Client) Subscribe(ctx context.Context, h Handler) error {
	if !c.reconnect {
		return c.Run(ctx, h)
	}
	backoff := initialBackoff
	for {
		started := time.Now()
		err := c.Run(ctx, h)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if time.Since(started) > c.reconnectMax {
			backoff = initialBackoff
		}
		log.Printf("stream %s: %v, retrying in %v", c.url, err, backoff)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > c.reconnectMax {
			backoff = c.reconnectMax
		}
	}
}

// Run dials the stream once and delivers updates until the connection closes
// or ctx is done.
func (c *Client) Run(ctx context.Context, h Handler) error {
	if c.url == "" {
		return errors.New("stream url not configured")
	}
	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.url, err)
	}
	defer func() { _ = conn.Close() }()
	if c.OnConnected != nil {
		c.OnConnected()
	}
	log.Printf("connected to stream %s", c.url)

	conn.SetReadLimit(c.readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(c.pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(c.pongWait))
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go c.keepAlive(ctx, conn, done)

	err = c.readLoop(conn, h)
	if ctx.Err() != nil {
		err = ctx.Err()
	}
	if c.OnDisconnected != nil {
		c.OnDisconnected(err)
	}
	return err
}

func (c *Client) readLoop(conn *websocket.Conn, h Handler) error {
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return fmt.Errorf("stream closed: %w", err)
			}
			return fmt.Errorf("read stream: %w", err)
		}
		// Any message proves the link is alive.
		_ = conn.SetReadDeadline(time.Now().Add(c.pongWait))
		u, err := Decode(msg)
		if err != nil {
			if c.OnDecodeError != nil {
				c.OnDecodeError(msg, err)
			} else {
				log.Printf("drop stream message: %v", err)
			}
			continue
		}
		h(u)
	}
}

// keepAlive pings the server and closes the connection when ctx ends.
func (c *Client) keepAlive(ctx context.Context, conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(c.pongWait * 9 / 10)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			_ = conn.Close()
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
