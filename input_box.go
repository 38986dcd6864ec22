package main

const (
	boxShowLerp     = 0.15
	boxBgAlpha      = 0.7
	caretLerp       = 0.40
	caretBlinkTicks = 20
	boxHideEpsilon  = 0.01
)

// sessionSource exposes the open text session, if any.
type sessionSource interface {
	Session() (text string, caret int, ok bool)
}

// inputBox animates the chat entry field. It keeps showing the last text
// while fading out, trimming it as the box closes.
type inputBox struct {
	show, lastShow     float64
	caretX, lastCaretX float64
	blink              int

	open  bool
	text  []rune
	caret int
}

// boxView is an interpolated snapshot of the input box for drawing.
type boxView struct {
	Show    float64
	BgAlpha float64
	Text    string
	CaretX  float64
	Caret   bool
}

func (b *inputBox) update(s sessionSource, measure func(string) float64) {
	b.lastShow, b.lastCaretX = b.show, b.caretX

	text, caret, ok := s.Session()
	target := 0.0
	if ok {
		target = 1
		if !b.open {
			b.blink = 0
		}
		b.text = []rune(text)
		b.caret = caret
		b.blink++
	}
	b.open = ok

	b.show += (target - b.show) * boxShowLerp
	if !ok && b.show < boxHideEpsilon {
		b.show = 0
		b.text = nil
		b.caret = 0
	}

	want := 0.0
	if measure != nil && b.caret > 0 && b.caret <= len(b.text) {
		want = measure(string(b.text[:b.caret]))
	}
	b.caretX += (want - b.caretX) * caretLerp
}

// visibleText returns the text to draw. While closing it is cut in
// proportion to how far the box has faded.
func (b *inputBox) visibleText(show float64) string {
	if b.open {
		return string(b.text)
	}
	n := int(float64(len(b.text)) * clampUnit(show))
	return string(b.text[:n])
}

// caretOn reports whether the blinking caret is lit.
func (b *inputBox) caretOn() bool {
	return b.open && (b.blink/caretBlinkTicks)%2 == 0
}

func (b *inputBox) view(frac float64) boxView {
	show := b.lastShow + (b.show-b.lastShow)*frac
	return boxView{
		Show:    show,
		BgAlpha: boxBgAlpha * show,
		Text:    b.visibleText(show),
		CaretX:  b.lastCaretX + (b.caretX-b.lastCaretX)*frac,
		Caret:   b.caretOn(),
	}
}

func clampUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
