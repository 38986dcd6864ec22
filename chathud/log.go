package chathud

import (
	"image/color"
	"strings"
	"time"
)

// FocusReporter tells the log whether the player is typing into the chat
// entry field.
type FocusReporter interface {
	Typing() bool
}

// Options configures a Log. Zero values fall back to defaults.
type Options struct {
	Layout        Layout
	History       *History
	Colors        ColorSource
	Focus         FocusReporter
	MinBrightness float64
	Now           func() time.Time
}

// Log owns the live chat lines, the history view toggle and the eviction
// timer. It must only be used from the game goroutine.
type Log struct {
	lines   []*Line
	history *History
	layout  Layout
	colors  *colorCache
	focus   FocusReporter
	now     func() time.Time

	historyOn bool
	countdown float64

	// bulk suppresses per-removal reflows while many lines are removed.
	bulk bool
}

// New returns an empty Log.
func New(opts Options) *Log {
	layout := opts.Layout
	if layout.RowHeight == 0 {
		def := DefaultLayout()
		layout.RowHeight = def.RowHeight
		if layout.Anchor == (Point{}) {
			layout.Anchor = def.Anchor
		}
	}
	if layout.MaxVisible == 0 {
		layout.MaxVisible = DefaultMaxVisible
	}
	h := opts.History
	if h == nil {
		h = NewHistory(DefaultHistoryCapacity)
	}
	minB := opts.MinBrightness
	if minB <= 0 {
		minB = MinBrightness
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Log{
		history:   h,
		layout:    layout,
		colors:    newColorCache(opts.Colors, minB),
		focus:     opts.Focus,
		now:       now,
		countdown: FallbackLifetime,
	}
}

// SetFocus replaces the focus reporter. The input gate is usually built
// after the log, so it is wired in afterwards.
func (lg *Log) SetFocus(f FocusReporter) { lg.focus = f }

// History returns the store evicted lines are archived into.
func (lg *Log) History() *History { return lg.history }

// Layout returns the layout in use.
func (lg *Log) Layout() Layout { return lg.layout }

// SetLayout changes the layout and reflows, so the lines glide to their new
// slots.
func (lg *Log) SetLayout(layout Layout) {
	lg.layout = layout
	lg.Reflow()
}

// Len returns the number of live lines.
func (lg *Log) Len() int { return len(lg.lines) }

// Lines returns the live lines, oldest first.
func (lg *Log) Lines() []*Line {
	return append([]*Line(nil), lg.lines...)
}

// HistoryEnabled reports whether the history view is open.
func (lg *Log) HistoryEnabled() bool { return lg.historyOn }

// Countdown returns the ticks left before the next eviction.
func (lg *Log) Countdown() float64 { return lg.countdown }

// ForgetColor drops the cached colour of sender, e.lg. after it changed.
func (lg *Log) ForgetColor(sender string) { lg.colors.forget(sender) }

// AddMessage appends a message from sender. An empty sender marks a system
// message. Blank text is ignored and nil is returned.
func (lg *Log) AddMessage(sender, text string) *Line {
	return lg.add(sender, text, lg.colors.resolve(sender))
}

// AddLocal appends the player's own message. delivered tells whether it went
// out over the network; undelivered lines are tinted as local only.
func (lg *Log) AddLocal(sender, text string, delivered bool) *Line {
	col := Green
	if !delivered {
		col = Yellow
	}
	return lg.add(sender, text, col)
}

func (lg *Log) add(sender, text string, col color.RGBA) *Line {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	l := newLine(lg, sender, text, col, Lifetime(sender, text), false)
	l.Created = lg.now()
	lg.lines = append(lg.lines, l)
	lg.Reflow()
	lg.countdown = float64(l.maxLife)
	return l
}

// Reflow queues every line's move to the slot of its current rank.
func (lg *Log) Reflow() {
	n := len(lg.lines)
	for i, l := range lg.lines {
		l.scheduleReflow(i, n, lg.layout, lg.historyOn)
	}
}

// Update advances the log by one tick.
func (lg *Log) Update() {
	if lg.focus != nil && lg.focus.Typing() {
		lg.SetHistory(true)
	} else {
		lg.countdown--
		if lg.countdown <= 0 {
			lg.evict()
		}
	}
	if lg.historyOn && len(lg.lines) == 0 {
		lg.historyOn = false
	}
	hold := lg.historyOn
	// Lines can remove themselves; walk backwards.
	for i := len(lg.lines) - 1; i >= 0; i-- {
		if i >= len(lg.lines) {
			continue
		}
		lg.lines[i].update(hold)
	}
}

func (lg *Log) eligible() []*Line {
	var out []*Line
	for _, l := range lg.lines {
		if l.alive && !l.removing {
			out = append(out, l)
		}
	}
	return out
}

// evict fades out the oldest line that is not already leaving. With the
// history view open the last line is kept; the view closes instead.
func (lg *Log) evict() {
	lines := lg.eligible()
	switch {
	case len(lines) == 0:
		lg.countdown = FallbackLifetime
		return
	case lg.historyOn && len(lines) == 1:
		lg.SetHistory(false)
		return
	}
	lines[0].Destroy()
	if len(lines) > 1 {
		next := lines[1]
		lg.countdown = float64(Lifetime(next.Sender, next.Text))
		return
	}
	lg.countdown = FallbackLifetime
}

func (lg *Log) resetCountdown() {
	if lines := lg.eligible(); len(lines) > 0 {
		lg.countdown = float64(Lifetime(lines[0].Sender, lines[0].Text))
		return
	}
	lg.countdown = FallbackLifetime
}

// ToggleHistory opens or closes the history view. It does nothing while the
// player is typing, since typing keeps the view open.
func (lg *Log) ToggleHistory() {
	if lg.focus != nil && lg.focus.Typing() {
		return
	}
	lg.SetHistory(!lg.historyOn)
}

// SetHistory opens or closes the history view. Opening replays the archived
// records ahead of the live lines; closing drops every replayed line at once.
func (lg *Log) SetHistory(on bool) {
	if on == lg.historyOn {
		return
	}
	lg.historyOn = on
	if on {
		live := lg.lines
		records := lg.history.All()
		lg.lines = make([]*Line, 0, len(records)+len(live))
		for _, r := range records {
			l := newLine(lg, r.Sender, r.Text, r.Color, -1, true)
			l.Created = r.Time
			lg.lines = append(lg.lines, l)
		}
		for _, l := range live {
			if !l.history {
				lg.lines = append(lg.lines, l)
			}
		}
	} else {
		lg.bulk = true
		for _, l := range lg.Lines() {
			if l.history {
				l.ForceDestroy()
			}
		}
		lg.bulk = false
	}
	lg.Reflow()
	lg.resetCountdown()
}

// Teardown force-destroys every line, oldest first, dropping queued moves.
// Live lines are archived on the way out. Used on scene or session change.
func (lg *Log) Teardown() {
	lg.bulk = true
	for _, l := range lg.Lines() {
		l.ForceDestroy()
	}
	lg.bulk = false
	lg.lines = nil
	lg.historyOn = false
	lg.countdown = FallbackLifetime
}

func (lg *Log) unlink(l *Line) {
	l.archive(lg.history)
	for i, x := range lg.lines {
		if x == l {
			lg.lines = append(lg.lines[:i], lg.lines[i+1:]...)
			break
		}
	}
	if !lg.bulk {
		lg.Reflow()
	}
}

// Render returns draw commands for every visible line, oldest first.
func (lg *Log) Render(frac float64) []DrawCommand {
	out := make([]DrawCommand, 0, len(lg.lines))
	for _, l := range lg.lines {
		cmd := l.Render(frac)
		if cmd.Alpha <= 0 {
			continue
		}
		out = append(out, cmd)
	}
	return out
}

// Draw sends the visible lines to s.
func (lg *Log) Draw(s Surface, frac float64) {
	for _, cmd := range lg.Render(frac) {
		s.DrawLine(cmd)
	}
}
