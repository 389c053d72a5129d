package windc

// Vec2 is an integer position.
type Vec2 struct {
	X, Y int32
}

// Vec2F is a floating-point position, used for event coordinates which
// X11 and evdev report with sub-pixel precision.
type Vec2F struct {
	X, Y float64
}

// Extent2 is an integer size.
type Extent2 struct {
	W, H uint32
}

// Rect is a position plus a size.
type Rect struct {
	X, Y int32
	W, H uint32
}

// Position returns the rect's top-left corner.
func (r Rect) Position() Vec2 { return Vec2{r.X, r.Y} }

// Size returns the rect's extent.
func (r Rect) Size() Extent2 { return Extent2{r.W, r.H} }

// RGBA is an 8-bit-per-channel color.
type RGBA struct {
	R, G, B, A uint8
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
