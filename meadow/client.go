package meadow

import (
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Config configures a websocket Client.
type Config struct {
	URL       string
	Name      string
	SendRate  float64 // messages per second
	SendBurst int
	InboxSize int

	// Reconnect delays. Zero values use one and thirty seconds.
	MinBackoff time.Duration
	MaxBackoff time.Duration
}

const (
	writeWait     = 10 * time.Second
	handshakeWait = 10 * time.Second
	outboxSize    = 32
)

// Client is an Adapter backed by a websocket session. Run owns the
// connection; the other methods may be called from the game goroutine.
type Client struct {
	cfg     Config
	id      string
	limiter *rate.Limiter
	inbox   chan Message
	recolor chan string
	outbox  chan []byte

	mu     sync.RWMutex
	name   string
	online bool
	closed bool
	colors map[string]color.RGBA
}

// NewClient returns a Client that is offline until Run connects it.
func NewClient(cfg Config) *Client {
	if cfg.SendRate <= 0 {
		cfg.SendRate = 2
	}
	if cfg.SendBurst <= 0 {
		cfg.SendBurst = 3
	}
	if cfg.InboxSize <= 0 {
		cfg.InboxSize = DefaultInboxSize
	}
	if cfg.MinBackoff <= 0 {
		cfg.MinBackoff = time.Second
	}
	if cfg.MaxBackoff < cfg.MinBackoff {
		cfg.MaxBackoff = 30 * time.Second
	}
	return &Client{
		cfg:     cfg,
		id:      uuid.NewString(),
		limiter: rate.NewLimiter(rate.Limit(cfg.SendRate), cfg.SendBurst),
		inbox:   make(chan Message, cfg.InboxSize),
		recolor: make(chan string, cfg.InboxSize),
		outbox:  make(chan []byte, outboxSize),
		name:    strings.TrimSpace(cfg.Name),
		colors:  make(map[string]color.RGBA),
	}
}

func (c *Client) Version() int          { return Version }
func (c *Client) CurrentUserID() string { return c.id }
func (c *Client) Inbox() <-chan Message { return c.inbox }

// ColorChanges reports senders whose colour the server changed.
func (c *Client) ColorChanges() <-chan string { return c.recolor }

func (c *Client) IsOnline() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.online && !c.closed
}

func (c *Client) DisplayName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

func (c *Client) ColorFor(sender string) (color.RGBA, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	col, ok := c.colors[sender]
	return col, ok
}

// SendMessage queues text for the writer. It never blocks.
func (c *Client) SendMessage(text string) error {
	c.mu.RLock()
	closed, online, name := c.closed, c.online, c.name
	c.mu.RUnlock()
	switch {
	case closed:
		return ErrClosed
	case !online:
		return ErrOffline
	case !c.limiter.Allow():
		return ErrRateLimited
	}
	id := uuid.NewString()
	data, err := EncodeEnvelope(MsgChat, id, ChatPayload{
		UserID:    c.id,
		Sender:    name,
		Text:      text,
		Timestamp: now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("encode chat %s: %w", id, err)
	}
	select {
	case c.outbox <- data:
		return nil
	default:
		return fmt.Errorf("send queue full: %w", ErrOffline)
	}
}

// Run connects and serves the session until ctx is cancelled, reconnecting
// with backoff when the connection drops. It always returns a non-nil error.
func (c *Client) Run(ctx context.Context) error {
	defer c.close()
	backoff := c.cfg.MinBackoff
	for {
		start := time.Now()
		err := c.serve(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("meadow: session ended: %v", err)
		if time.Since(start) > c.cfg.MaxBackoff {
			backoff = c.cfg.MinBackoff
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, c.cfg.MaxBackoff)
	}
}

func (c *Client) close() {
	c.mu.Lock()
	c.closed = true
	c.online = false
	c.mu.Unlock()
}

func (c *Client) serve(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeWait}
	conn, _, err := dialer.DialContext(ctx, c.cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.cfg.URL, err)
	}
	defer conn.Close()

	hello, err := EncodeEnvelope(MsgHello, uuid.NewString(), HelloPayload{UserID: c.id, Name: c.DisplayName()})
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, hello); err != nil {
		return fmt.Errorf("hello: %w", err)
	}

	c.setOnline(true)
	push(c.inbox, Message{Text: "Connected to " + c.cfg.URL, Time: now()})
	defer func() {
		c.setOnline(false)
		if ctx.Err() == nil {
			push(c.inbox, Message{Text: "Disconnected", Time: now()})
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		conn.Close()
		return nil
	})
	g.Go(func() error { return c.readPump(conn) })
	g.Go(func() error { return c.writePump(gctx, conn) })
	return g.Wait()
}

func (c *Client) setOnline(on bool) {
	c.mu.Lock()
	c.online = on
	c.mu.Unlock()
}

func (c *Client) readPump(conn *websocket.Conn) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("meadow: read: %v", err)
			}
			return fmt.Errorf("read: %w", err)
		}
		c.handle(data)
	}
}

func (c *Client) writePump(ctx context.Context, conn *websocket.Conn) error {
	for {
		select {
		case <-ctx.Done():
			conn.SetWriteDeadline(time.Now().Add(time.Second))
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return nil
		case data := <-c.outbox:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return fmt.Errorf("write: %w", err)
			}
		}
	}
}

func (c *Client) handle(data []byte) {
	env, err := DecodeEnvelope(data)
	if err != nil {
		log.Printf("meadow: decode: %v", err)
		return
	}
	switch env.Type {
	case MsgWelcome:
		var p WelcomePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			log.Printf("meadow: welcome: %v", err)
			return
		}
		if name := strings.TrimSpace(p.Name); name != "" {
			c.mu.Lock()
			c.name = name
			c.mu.Unlock()
		}
	case MsgChat:
		var p ChatPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			log.Printf("meadow: chat: %v", err)
			return
		}
		if p.UserID == c.id {
			// Our own message; the HUD already echoed it.
			return
		}
		t := now()
		if p.Timestamp > 0 {
			t = time.Unix(p.Timestamp, 0)
		}
		push(c.inbox, Message{ID: env.ID, Sender: p.Sender, Text: p.Text, Time: t})
	case MsgColor:
		var p ColorPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			log.Printf("meadow: color: %v", err)
			return
		}
		col, err := ParseColor(p.Color)
		if err != nil {
			log.Printf("meadow: %v", err)
			return
		}
		c.mu.Lock()
		c.colors[p.Sender] = col
		c.mu.Unlock()
		push(c.recolor, p.Sender)
	case MsgSystem:
		var p SystemPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			log.Printf("meadow: system: %v", err)
			return
		}
		push(c.inbox, Message{ID: env.ID, Text: p.Text, Time: now()})
	default:
		log.Printf("meadow: unhandled message type %q", env.Type)
	}
}
