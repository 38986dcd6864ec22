package main

import (
	"image/color"
	"sync"

	"ghud/chathud"

	"github.com/hajimehoshi/ebiten/v2"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var textDrawOptsPool = sync.Pool{New: func() any { return &text.DrawOptions{} }}

func acquireTextDrawOpts() *text.DrawOptions {
	op := textDrawOptsPool.Get().(*text.DrawOptions)
	*op = text.DrawOptions{DrawImageOptions: ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}}
	return op
}

func releaseTextDrawOpts(op *text.DrawOptions) {
	textDrawOptsPool.Put(op)
}

var shadowColor = color.RGBA{0, 0, 0, 0xff}

// screenSurface draws chat lines onto an ebiten image.
type screenSurface struct {
	dst *ebiten.Image
}

func (s screenSurface) DrawLine(cmd chathud.DrawCommand) {
	for _, r := range lineRuns(cmd, measureLabel) {
		face := chatFont
		if r.label {
			face = labelFont
		}
		drawShadowed(s.dst, r.str, face, r.x, r.y, r.scale, r.col, cmd.Alpha)
	}
}

// textRun is one piece of text of a chat line.
type textRun struct {
	str         string
	label       bool
	x, y, scale float64
	col         color.RGBA
}

// lineRuns lays out the name label and the message of cmd. Both grow with
// the line's fade in; system lines have no label and keep their own colour.
func lineRuns(cmd chathud.DrawCommand, measure func(string) float64) []textRun {
	x, y := cmd.Pos.X, cmd.Pos.Y
	body := chathud.White
	var runs []textRun
	if label := cmd.Label(); label != "" {
		runs = append(runs, textRun{str: label, label: true, x: x, y: y, scale: cmd.Scale, col: cmd.Color})
		x += cmd.MessageOffset(measure(label))
	} else {
		body = cmd.Color
	}
	return append(runs, textRun{str: cmd.Text, x: x, y: y, scale: cmd.Scale, col: body})
}

// drawShadowed draws str with a one pixel drop shadow so it stays readable
// over any background.
func drawShadowed(dst *ebiten.Image, str string, face text.Face, x, y, scale float64, col color.RGBA, alpha float64) {
	if face == nil || alpha <= 0 {
		return
	}
	for _, pass := range []struct {
		dx  float64
		col color.RGBA
	}{{1, shadowColor}, {0, col}} {
		op := acquireTextDrawOpts()
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(x+pass.dx, y+pass.dx)
		op.ColorScale.ScaleWithColor(pass.col)
		op.ColorScale.ScaleAlpha(float32(alpha))
		text.Draw(dst, str, face, op)
		releaseTextDrawOpts(op)
	}
}

// drawInputBox draws the entry field below the newest chat line.
func drawInputBox(dst *ebiten.Image, layout chathud.Layout, v boxView) {
	if v.Show <= 0 {
		return
	}
	x := float32(layout.Anchor.X - 8)
	y := float32(layout.Anchor.Y + layout.RowHeight + 6)
	w := float32(dst.Bounds().Dx()) / 2
	h := float32(layout.RowHeight + 8)
	bg := color.RGBA{0, 0, 0, uint8(v.BgAlpha * 255)}
	vector.DrawFilledRect(dst, x, y, w, h, bg, false)

	tx, ty := float64(x)+8, float64(y)+4
	drawShadowed(dst, v.Text, chatFont, tx, ty, 1, chathud.White, v.Show)
	if v.Caret {
		cx := float32(tx + v.CaretX)
		vector.DrawFilledRect(dst, cx, y+3, 2, h-6, color.NRGBA{0xff, 0xff, 0xff, uint8(v.Show * 255)}, false)
	}
}

func drawHUD(screen *ebiten.Image, h *hud, frac float64) {
	h.log.Draw(screenSurface{dst: screen}, frac)
	drawInputBox(screen, h.log.Layout(), h.box.view(frac))
}
