package main

import (
	"time"

	"ghud/inputgate"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	clipboard "golang.design/x/clipboard"
)

const keyRepeatRate = 32

var actionKeys = []struct {
	key    ebiten.Key
	action inputgate.Action
}{
	{ebiten.KeyEnter, inputgate.ActionChat},
	{ebiten.KeyEscape, inputgate.ActionCancel},
	{ebiten.KeyTab, inputgate.ActionHistory},
}

var lastBackspace time.Time

// handleInput feeds key edges to the gate and, while a session is open,
// edits its text. Runs once per frame.
func handleInput(h *hud, now time.Time) {
	if h.gate.Typing() && !ebiten.IsFocused() {
		h.gate.Cancel()
	}
	for _, b := range actionKeys {
		if inpututil.IsKeyJustPressed(b.key) {
			h.gate.Press(b.action)
		}
		if inpututil.IsKeyJustReleased(b.key) {
			h.gate.Release(b.action)
		}
	}

	text, pos, ok := h.gate.Session()
	if !ok {
		return
	}
	e := entry{text: []rune(text), pos: pos}

	e.insert(ebiten.AppendInputChars(nil))

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		if txt := clipboard.Read(clipboard.FmtText); len(txt) > 0 {
			e.insert([]rune(string(txt)))
		}
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		clipboard.Write(clipboard.FmtText, []byte(string(e.text)))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		e.move(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		e.move(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		e.pos = 0
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		e.pos = len(e.text)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		if line, ok := h.recallPrev(); ok {
			e = entry{text: []rune(line), pos: len([]rune(line))}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && len(h.recall) > 0 {
		line, _ := h.recallNext()
		e = entry{text: []rune(line), pos: len([]rune(line))}
	}
	if now.Sub(lastBackspace) > time.Millisecond*keyRepeatRate {
		if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) || inpututil.KeyPressDuration(ebiten.KeyBackspace) > 30 {
			lastBackspace = now
			e.backspace()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyDelete) || inpututil.KeyPressDuration(ebiten.KeyDelete) > 30 {
			lastBackspace = now
			e.delete()
		}
	}
	h.gate.SetText(string(e.text), e.pos)
}

// entry is an editable rune buffer with a caret.
type entry struct {
	text []rune
	pos  int
}

func (e *entry) clamp() {
	if e.pos < 0 {
		e.pos = 0
	}
	if e.pos > len(e.text) {
		e.pos = len(e.text)
	}
}

func (e *entry) insert(rs []rune) {
	if len(rs) == 0 {
		return
	}
	e.clamp()
	e.text = append(e.text[:e.pos], append(rs, e.text[e.pos:]...)...)
	e.pos += len(rs)
}

func (e *entry) move(d int) {
	e.pos += d
	e.clamp()
}

func (e *entry) backspace() {
	e.clamp()
	if e.pos == 0 {
		return
	}
	e.text = append(e.text[:e.pos-1], e.text[e.pos:]...)
	e.pos--
}

func (e *entry) delete() {
	e.clamp()
	if e.pos >= len(e.text) {
		return
	}
	e.text = append(e.text[:e.pos], e.text[e.pos+1:]...)
}

// recallPrev steps back through previously submitted lines.
func (h *hud) recallPrev() (string, bool) {
	if len(h.recall) == 0 {
		return "", false
	}
	if h.recallPos > 0 {
		h.recallPos--
	}
	return h.recall[h.recallPos], true
}

// recallNext steps forward; past the newest line it returns an empty entry.
func (h *hud) recallNext() (string, bool) {
	if h.recallPos < len(h.recall)-1 {
		h.recallPos++
		return h.recall[h.recallPos], true
	}
	h.recallPos = len(h.recall)
	return "", false
}
