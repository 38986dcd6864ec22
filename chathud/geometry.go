package chathud

// Point is a screen position in pixels.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Lerp moves p towards q by t.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{lerp(p.X, q.X, t), lerp(p.Y, q.Y, t)}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Layout places lines on screen. Rank 0 sits on Anchor and higher ranks
// stack upward by RowHeight.
type Layout struct {
	Anchor     Point
	RowHeight  float64
	MaxVisible int
}

// DefaultLayout returns the layout used by the HUD at 1080p.
func DefaultLayout() Layout {
	return Layout{
		Anchor:     Point{X: 80, Y: 955},
		RowHeight:  DefaultRowHeight,
		MaxVisible: DefaultMaxVisible,
	}
}

// Slot returns the target position of a line at rank.
func (l Layout) Slot(rank int) Point {
	return Point{X: l.Anchor.X, Y: l.Anchor.Y - float64(rank)*l.RowHeight}
}
