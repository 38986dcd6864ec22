package chathud

import (
	"image/color"
	"testing"
)

func TestBrightnessFloor(t *testing.T) {
	cases := []struct {
		name string
		in   color.RGBA
	}{
		{"black", color.RGBA{0, 0, 0, 0xff}},
		{"navy", color.RGBA{0, 0, 40, 0xff}},
		{"darkRed", color.RGBA{60, 5, 5, 0xff}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out := brightnessFloor(c.in, MinBrightness)
			_, _, v := rgbToHSV(out)
			if v < MinBrightness-0.01 {
				t.Fatalf("value %.3f below floor", v)
			}
		})
	}

	bright := color.RGBA{0xff, 0x20, 0x20, 0xff}
	if got := brightnessFloor(bright, MinBrightness); got != bright {
		t.Fatalf("bright colour changed: %v", got)
	}
}

func TestBrightnessFloorKeepsHue(t *testing.T) {
	h0, _, _ := rgbToHSV(color.RGBA{0, 0, 60, 0xff})
	h1, _, _ := rgbToHSV(brightnessFloor(color.RGBA{0, 0, 60, 0xff}, MinBrightness))
	if h0 != h1 {
		t.Fatalf("hue changed from %v to %v", h0, h1)
	}
}

func TestColorCache(t *testing.T) {
	calls := 0
	src := ColorFunc(func(sender string) (color.RGBA, bool) {
		calls++
		if sender == "Bob" {
			return color.RGBA{0x20, 0xc0, 0xff, 0xff}, true
		}
		return color.RGBA{}, false
	})
	c := newColorCache(src, MinBrightness)

	if got := c.resolve(""); got != SystemColor {
		t.Fatalf("system colour = %v", got)
	}
	if calls != 0 {
		t.Fatalf("system message consulted the colour source")
	}
	first := c.resolve("Bob")
	second := c.resolve("Bob")
	if first != second || calls != 1 {
		t.Fatalf("cached lookup: calls=%d first=%v second=%v", calls, first, second)
	}
	if got := c.resolve("Eve"); got != DefaultColor {
		t.Fatalf("missing colour = %v; want default", got)
	}
	c.resolve("Eve")
	if calls != 3 {
		t.Fatalf("misses should not be cached, calls=%d", calls)
	}
}

func TestColorCacheWithoutSource(t *testing.T) {
	c := newColorCache(nil, MinBrightness)
	if got := c.resolve("Alice"); got != DefaultColor {
		t.Fatalf("resolve without source = %v", got)
	}
}
