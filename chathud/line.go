package chathud

import (
	"image/color"
	"time"
)

// opacity is an optional alpha target. A transition without one leaves the
// line's target alpha alone.
type opacity struct {
	v  float64
	ok bool
}

func setOpacity(v float64) opacity { return opacity{v: v, ok: true} }

// transition is a delayed visual move queued by a reflow.
type transition struct {
	delay int
	pos   Point
	alpha opacity
}

// Line is one message on the HUD. Alpha and position ease towards their
// targets once per tick; the previous tick's values are kept so Render can
// interpolate between ticks.
type Line struct {
	Sender  string
	Text    string
	Color   color.RGBA
	Created time.Time

	owner    *Log
	history  bool
	alive    bool
	removing bool
	archived bool
	placed   bool

	alpha, lastAlpha, setAlpha float64
	pos, lastPos, setPos       Point

	// maxLife < 0 means the line never expires on its own.
	life, maxLife int
	grace         int

	delay      int
	current    transition
	hasCurrent bool
	pending    []transition
}

func newLine(owner *Log, sender, text string, col color.RGBA, maxLife int, history bool) *Line {
	return &Line{
		Sender:  sender,
		Text:    text,
		Color:   col,
		owner:   owner,
		history: history,
		alive:   true,
		maxLife: maxLife,
	}
}

// History reports whether the line is a replayed history record.
func (l *Line) History() bool { return l.history }

// Alive reports whether the line is still in its log.
func (l *Line) Alive() bool { return l.alive }

// Removing reports whether the line has started its removal.
func (l *Line) Removing() bool { return l.removing }

// Alpha returns the opacity at the last tick.
func (l *Line) Alpha() float64 { return l.alpha }

// TargetAlpha returns the opacity the line is easing towards.
func (l *Line) TargetAlpha() float64 { return l.setAlpha }

// Pos returns the position at the last tick.
func (l *Line) Pos() Point { return l.pos }

// TargetPos returns the position the line is easing towards.
func (l *Line) TargetPos() Point { return l.setPos }

// Pending returns the number of queued transitions, including the one
// currently counting down.
func (l *Line) Pending() int {
	n := len(l.pending)
	if l.hasCurrent {
		n++
	}
	return n
}

func (l *Line) expired() bool {
	return l.maxLife >= 0 && l.life >= l.maxLife
}

// living reports whether the line may still be faded in.
func (l *Line) living() bool {
	return !l.removing && !l.expired()
}

// update advances the line by one tick. While hold is set the lifetime does
// not run down.
func (l *Line) update(hold bool) {
	if !l.alive {
		return
	}
	if l.removing {
		if l.grace > 0 {
			l.grace--
		} else if l.alpha < FadeEpsilon {
			l.remove()
			return
		}
	} else if l.expired() {
		l.Destroy()
	}
	if !hold && !l.removing && l.maxLife >= 0 {
		l.life++
	}

	l.lastAlpha = l.alpha
	l.alpha = lerp(l.alpha, l.setAlpha, AlphaLerp)
	l.lastPos = l.pos
	l.pos = l.pos.Lerp(l.setPos, PosLerp)

	if l.delay > 0 {
		l.delay--
		return
	}
	lastDelay := 0
	if l.hasCurrent {
		lastDelay = l.current.delay
		l.setPos = l.current.pos
		if l.current.alpha.ok && l.living() {
			l.setAlpha = l.current.alpha.v
		}
		l.hasCurrent = false
	}
	if len(l.pending) > 0 {
		l.current = l.pending[0]
		l.pending = l.pending[1:]
		l.hasCurrent = true
		// Delays are relative to the move before, so a cascade queued in
		// one reflow keeps its spacing.
		l.delay = l.current.delay - lastDelay
	}
}

// scheduleReflow queues a move to the slot of the line's new rank. index is
// the position in the log, oldest first.
func (l *Line) scheduleReflow(index, total int, layout Layout, historyView bool) {
	rank := total - 1 - index
	if rank < 0 {
		rank = 0
	}
	t := transition{delay: max(0, ReflowStagger*rank), pos: layout.Slot(rank)}
	switch {
	case !l.placed:
		l.placed = true
		l.pos, l.lastPos, l.setPos = t.pos, t.pos, t.pos
		if l.living() {
			l.setAlpha = 1
			t.alpha = setOpacity(1)
		}
	case !historyView && !l.history && layout.MaxVisible > 0 && rank >= layout.MaxVisible && l.living():
		l.life = min(l.life+OverflowAcceleration, l.maxLife)
	case l.living():
		t.alpha = setOpacity(1)
	}
	l.pending = append(l.pending, t)
}

// Destroy fades the line out. It is removed once transparent and at least
// GraceTicks have passed.
func (l *Line) Destroy() {
	if !l.alive || l.removing {
		return
	}
	l.removing = true
	l.setAlpha = 0
	l.grace = GraceTicks
}

// ForceDestroy removes the line now, skipping the fade and any queued moves.
func (l *Line) ForceDestroy() {
	if !l.alive {
		return
	}
	l.alpha, l.lastAlpha, l.setAlpha = 0, 0, 0
	l.pos, l.lastPos, l.setPos = Point{}, Point{}, Point{}
	l.pending = nil
	l.hasCurrent = false
	l.delay = 0
	l.remove()
}

func (l *Line) remove() {
	if !l.alive {
		return
	}
	l.alive = false
	l.removing = true
	if l.owner != nil {
		l.owner.unlink(l)
	}
}

// archive stores the line in h. History lines are never archived and no
// line is archived twice.
func (l *Line) archive(h *History) {
	if h == nil || l.history || l.archived {
		return
	}
	l.archived = true
	h.Record(Record{Sender: l.Sender, Text: l.Text, Color: l.Color, Time: l.Created})
}

// Render returns the line interpolated frac of the way from the previous
// tick to the current one.
func (l *Line) Render(frac float64) DrawCommand {
	frac = clamp01(frac)
	a := clamp01(lerp(l.lastAlpha, l.alpha, frac))
	return DrawCommand{
		Sender:  l.Sender,
		Text:    l.Text,
		Color:   l.Color,
		Pos:     l.lastPos.Lerp(l.pos, frac),
		Alpha:   a,
		Scale:   a * LabelScale,
		History: l.history,
	}
}
