package chathud

import "image/color"

// Smoothing factors applied once per tick. They decide how snappy the HUD
// feels; change them together with the tick rate.
var (
	AlphaLerp = 0.25
	PosLerp   = 0.15
)

const (
	// FadeEpsilon is the alpha below which a removing line may be dropped.
	FadeEpsilon = 0.01
	// GraceTicks is the minimum number of ticks between destroy and removal.
	GraceTicks = 4
	// ReflowStagger is the per-rank delay, in ticks, of a reflow move.
	ReflowStagger = 2
	// OverflowAcceleration is how many lifetime ticks a line beyond the
	// visible count loses on every reflow.
	OverflowAcceleration = 20
	// DefaultHistoryCapacity is the number of evicted messages kept.
	DefaultHistoryCapacity = 30
	// DefaultMaxVisible is the number of lines shown before older ones are
	// hurried out.
	DefaultMaxVisible = 7
	// DefaultRowHeight is the vertical distance between stacked lines.
	DefaultRowHeight = 19
	// FallbackLifetime seeds the eviction countdown when no line remains.
	FallbackLifetime = 240
	// MinBrightness is the lowest HSV value a sender colour may have.
	MinBrightness = 0.55
)

// Palette used by the HUD.
var (
	White  = color.RGBA{0xe6, 0xe6, 0xe6, 0xff}
	Grey   = color.RGBA{0x33, 0x33, 0x33, 0xff}
	Green  = color.RGBA{0x33, 0xe6, 0x33, 0xff}
	Yellow = color.RGBA{0xe6, 0xe6, 0x33, 0xff}
	Red    = color.RGBA{0xe6, 0x33, 0x33, 0xff}

	SystemColor  = Yellow
	DefaultColor = White
)

// Lifetime is the number of ticks a message stays up before it starts to
// fade: longer messages get longer to be read.
func Lifetime(sender, text string) int {
	return 4*(runeCount(sender)+runeCount(text)) + 240
}

func runeCount(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
