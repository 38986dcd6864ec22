package chathud

import "image/color"

// LabelScale is the text scale of a fully visible line.
const LabelScale = 1.1

// DrawCommand is everything a renderer needs to draw one line for a frame.
type DrawCommand struct {
	Sender  string
	Text    string
	Color   color.RGBA
	Pos     Point
	Alpha   float64
	Scale   float64
	History bool
}

// Label returns the sender label as shown on screen, or "" for system lines.
func (c DrawCommand) Label() string {
	if c.Sender == "" {
		return ""
	}
	return "[" + c.Sender + "]"
}

// MessageOffset returns how far right of Pos the message text starts, given
// the measured width of the label at scale 1.
func (c DrawCommand) MessageOffset(labelWidth float64) float64 {
	if c.Sender == "" {
		return 0
	}
	gap := labelWidth*c.Scale + 40
	if gap < 120 {
		gap = 120
	}
	return gap * c.Alpha
}

// Surface receives draw commands each frame.
type Surface interface {
	DrawLine(cmd DrawCommand)
}
