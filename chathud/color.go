package chathud

import (
	"image/color"
	"math"
)

// ColorSource resolves the display colour of a sender. ok is false when the
// sender has no colour of its own.
type ColorSource interface {
	ColorFor(sender string) (c color.RGBA, ok bool)
}

// ColorFunc adapts a function to ColorSource.
type ColorFunc func(sender string) (color.RGBA, bool)

func (f ColorFunc) ColorFor(sender string) (color.RGBA, bool) {
	return f(sender)
}

// colorCache remembers resolved sender colours. Misses are not cached so a
// colour that shows up later (presence arriving after the first message) is
// picked up.
type colorCache struct {
	src     ColorSource
	colors  map[string]color.RGBA
	minimum float64
}

func newColorCache(src ColorSource, minimum float64) *colorCache {
	return &colorCache{src: src, colors: make(map[string]color.RGBA), minimum: minimum}
}

func (c *colorCache) resolve(sender string) color.RGBA {
	if sender == "" {
		return SystemColor
	}
	if col, ok := c.colors[sender]; ok {
		return col
	}
	if c.src == nil {
		return DefaultColor
	}
	col, ok := c.src.ColorFor(sender)
	if !ok {
		return DefaultColor
	}
	col = brightnessFloor(col, c.minimum)
	c.colors[sender] = col
	return col
}

func (c *colorCache) forget(sender string) {
	delete(c.colors, sender)
}

// brightnessFloor raises the HSV value of col to at least min so dark sender
// colours stay readable over the game.
func brightnessFloor(col color.RGBA, min float64) color.RGBA {
	h, s, v := rgbToHSV(col)
	if v >= min {
		col.A = 0xff
		return col
	}
	out := hsvToRGB(h, s, min)
	out.A = 0xff
	return out
}

func rgbToHSV(c color.RGBA) (h, s, v float64) {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	d := max - min
	switch {
	case d == 0:
		h = 0
	case max == r:
		h = math.Mod((g-b)/d, 6) * 60
	case max == g:
		h = ((b-r)/d + 2) * 60
	default:
		h = ((r-g)/d + 4) * 60
	}
	if h < 0 {
		h += 360
	}
	if max > 0 {
		s = d / max
	}
	v = max
	return
}

func hsvToRGB(h, s, v float64) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return color.RGBA{
		R: uint8(math.Round(clamp01(r+m) * 255)),
		G: uint8(math.Round(clamp01(g+m) * 255)),
		B: uint8(math.Round(clamp01(b+m) * 255)),
		A: 0xff,
	}
}
