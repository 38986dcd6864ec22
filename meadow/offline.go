package meadow

import (
	"image/color"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Offline is the adapter used when no session is available. Sends fail with
// ErrOffline so the HUD shows them as local only.
type Offline struct {
	id   string
	name string
}

// NewOffline returns an offline adapter for the named player.
func NewOffline(name string) *Offline {
	return &Offline{id: uuid.NewString(), name: strings.TrimSpace(name)}
}

func (o *Offline) Version() int                       { return Version }
func (o *Offline) SendMessage(string) error           { return ErrOffline }
func (o *Offline) CurrentUserID() string              { return o.id }
func (o *Offline) IsOnline() bool                     { return false }
func (o *Offline) DisplayName() string                { return o.name }
func (o *Offline) ColorFor(string) (color.RGBA, bool) { return color.RGBA{}, false }
func (o *Offline) Inbox() <-chan Message              { return nil }

// Loopback is an in-process session. Sent messages are recorded and
// Inject feeds the inbox; fake mode and tests use it.
type Loopback struct {
	id      string
	name    string
	inbox   chan Message
	recolor chan string

	mu     sync.Mutex
	sent   []string
	colors map[string]color.RGBA
	online bool
	closed bool
}

// NewLoopback returns an online loopback adapter.
func NewLoopback(name string) *Loopback {
	return &Loopback{
		id:      uuid.NewString(),
		name:    strings.TrimSpace(name),
		inbox:   make(chan Message, DefaultInboxSize),
		recolor: make(chan string, DefaultInboxSize),
		colors:  make(map[string]color.RGBA),
		online:  true,
	}
}

func (l *Loopback) Version() int                { return Version }
func (l *Loopback) CurrentUserID() string       { return l.id }
func (l *Loopback) DisplayName() string         { return l.name }
func (l *Loopback) Inbox() <-chan Message       { return l.inbox }
func (l *Loopback) ColorChanges() <-chan string { return l.recolor }

func (l *Loopback) IsOnline() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.online && !l.closed
}

// SetOnline switches the simulated connection.
func (l *Loopback) SetOnline(on bool) {
	l.mu.Lock()
	l.online = on
	l.mu.Unlock()
}

func (l *Loopback) SendMessage(text string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch {
	case l.closed:
		return ErrClosed
	case !l.online:
		return ErrOffline
	}
	l.sent = append(l.sent, text)
	return nil
}

// Sent returns the messages sent so far.
func (l *Loopback) Sent() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.sent...)
}

// SetColor assigns a colour to sender and reports the change.
func (l *Loopback) SetColor(sender string, c color.RGBA) {
	l.mu.Lock()
	l.colors[sender] = c
	l.mu.Unlock()
	push(l.recolor, sender)
}

func (l *Loopback) ColorFor(sender string) (color.RGBA, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.colors[sender]
	return c, ok
}

// Inject delivers a message as if it came from the network. It may be
// called from any goroutine.
func (l *Loopback) Inject(sender, text string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}
	push(l.inbox, Message{ID: uuid.NewString(), Sender: sender, Text: text, Time: now()})
	return nil
}

// Close stops the loopback. Later sends fail with ErrClosed.
func (l *Loopback) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
}
