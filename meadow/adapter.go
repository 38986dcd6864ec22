// Package meadow is the narrow adapter between the chat HUD and the
// multiplayer session that carries chat messages.
package meadow

import (
	"errors"
	"image/color"
	"time"
)

// Version is the adapter contract version. Bump it when Adapter changes.
const Version = 1

var (
	// ErrOffline is returned when a message cannot leave the machine.
	ErrOffline = errors.New("meadow: offline")
	// ErrRateLimited is returned when the player sends too quickly.
	ErrRateLimited = errors.New("meadow: rate limited")
	// ErrClosed is returned once the adapter has been shut down.
	ErrClosed = errors.New("meadow: closed")
)

// Message is one inbound chat message. An empty Sender marks a system
// message.
type Message struct {
	ID     string
	Sender string
	Text   string
	Time   time.Time
}

// Adapter is everything the HUD needs from the session. Implementations must
// be safe to call from the game goroutine while their own goroutines feed the
// inbox.
type Adapter interface {
	Version() int
	SendMessage(text string) error
	CurrentUserID() string
	IsOnline() bool
	DisplayName() string
	ColorFor(sender string) (color.RGBA, bool)
	// Inbox delivers inbound messages. Messages that arrive before anyone
	// reads stay buffered.
	Inbox() <-chan Message
}

// ColorWatcher is implemented by adapters whose sender colours can change
// during a session. ColorChanges delivers the name of each recoloured sender.
type ColorWatcher interface {
	ColorChanges() <-chan string
}

// DefaultInboxSize is the number of inbound messages buffered.
const DefaultInboxSize = 128

// Drain hands up to max buffered values to fn without blocking. A
// non-positive max drains everything that is ready.
func Drain[T any](in <-chan T, max int, fn func(T)) int {
	n := 0
	for max <= 0 || n < max {
		select {
		case m, ok := <-in:
			if !ok {
				return n
			}
			fn(m)
			n++
		default:
			return n
		}
	}
	return n
}

// push queues v without blocking, dropping the oldest buffered value when
// the channel is full.
func push[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
