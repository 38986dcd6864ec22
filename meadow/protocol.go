package meadow

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"
)

var now = time.Now

// MessageType names an envelope on the websocket.
type MessageType string

const (
	// Client -> server
	MsgHello MessageType = "hello"
	MsgChat  MessageType = "chat"

	// Server -> client
	MsgWelcome MessageType = "welcome"
	MsgColor   MessageType = "color"
	MsgSystem  MessageType = "system"
)

// Envelope wraps every websocket message.
type Envelope struct {
	Version int             `json:"v"`
	Type    MessageType     `json:"type"`
	ID      string          `json:"id"`
	Payload json.RawMessage `json:"payload"`
}

// HelloPayload introduces the client after connecting.
type HelloPayload struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// WelcomePayload confirms the session and the name the server settled on.
type WelcomePayload struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// ChatPayload carries one chat line in either direction.
type ChatPayload struct {
	UserID    string `json:"user_id"`
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// ColorPayload assigns a display colour, "#rrggbb", to a sender.
type ColorPayload struct {
	Sender string `json:"sender"`
	Color  string `json:"color"`
}

// SystemPayload is a server notice shown without a sender.
type SystemPayload struct {
	Text string `json:"text"`
}

// EncodeEnvelope marshals payload into an envelope of the given type.
func EncodeEnvelope(t MessageType, id string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Version: Version, Type: t, ID: id, Payload: raw})
}

// DecodeEnvelope unmarshals an envelope, rejecting other contract versions.
func DecodeEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return env, err
	}
	if env.Version != Version {
		return env, fmt.Errorf("meadow: envelope version %d, want %d", env.Version, Version)
	}
	return env, nil
}

// ParseColor reads a "#rrggbb" colour.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("meadow: bad colour %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("meadow: bad colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
