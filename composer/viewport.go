package composer

import (
	"math"

	"github.com/milk9111/totestudio/common"
)

// Viewport maps canvas space onto the screen: screen = canvas*Scale + Offset.
type Viewport struct {
	OffsetX float64
	OffsetY float64
	Scale   float64
}

func (v Viewport) scale() float64 {
	if v.Scale == 0 {
		return 1
	}
	return v.Scale
}

func (v Viewport) ToCanvas(p common.Point) common.Point {
	s := v.scale()
	return common.Point{X: (p.X - v.OffsetX) / s, Y: (p.Y - v.OffsetY) / s}
}

func (v Viewport) ToScreen(p common.Point) common.Point {
	s := v.scale()
	return common.Point{X: p.X*s + v.OffsetX, Y: p.Y*s + v.OffsetY}
}

// FitViewport centres a w×h canvas inside area with margin, scaling down (never
// up) so it fits.
func FitViewport(area common.Rect, w, h, margin float64) Viewport {
	availW := area.Width - 2*margin
	availH := area.Height - 2*margin
	scale := 1.0
	if w > 0 && h > 0 && availW > 0 && availH > 0 {
		scale = math.Min(1, math.Min(availW/w, availH/h))
	}
	return Viewport{
		OffsetX: area.X + (area.Width-w*scale)/2,
		OffsetY: area.Y + (area.Height-h*scale)/2,
		Scale:   scale,
	}
}
