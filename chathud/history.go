package chathud

import (
	"image/color"
	"time"
)

// Record is an evicted message kept for replay.
type Record struct {
	Sender string
	Text   string
	Color  color.RGBA
	Time   time.Time
}

// History is a bounded FIFO of evicted messages. When full, recording drops
// the oldest entry.
type History struct {
	buf   []Record
	start int
	n     int
}

// NewHistory returns an empty History holding at most capacity records.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &History{buf: make([]Record, capacity)}
}

// Record appends r, evicting the oldest record when at capacity.
func (h *History) Record(r Record) {
	if h.n < len(h.buf) {
		h.buf[(h.start+h.n)%len(h.buf)] = r
		h.n++
		return
	}
	h.buf[h.start] = r
	h.start = (h.start + 1) % len(h.buf)
}

// All returns a copy of the records, oldest first.
func (h *History) All() []Record {
	out := make([]Record, h.n)
	for i := 0; i < h.n; i++ {
		out[i] = h.buf[(h.start+i)%len(h.buf)]
	}
	return out
}

// Last returns up to n of the newest records, oldest first.
func (h *History) Last(n int) []Record {
	all := h.All()
	if n >= 0 && n < len(all) {
		all = all[len(all)-n:]
	}
	return all
}

// Len returns the number of stored records.
func (h *History) Len() int { return h.n }

// Cap returns the capacity.
func (h *History) Cap() int { return len(h.buf) }

// Clear drops every record.
func (h *History) Clear() {
	for i := range h.buf {
		h.buf[i] = Record{}
	}
	h.start, h.n = 0, 0
}
