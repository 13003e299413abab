package composer

import (
	"github.com/milk9111/totestudio/common"
	"github.com/milk9111/totestudio/layer"
)

// Fit says how a layer's payload fills its box.
type Fit int

const (
	FitNone Fit = iota
	// FitContain letterboxes an image inside the box.
	FitContain
)

// EmojiScale is the glyph size relative to the box width; it keeps the glyph
// visually centred inside its box.
const EmojiScale = 0.8

// Control geometry, in layer-local pixels. The bar floats above the box.
const (
	ControlButton = 24.0
	ControlGap    = 8.0
	ControlPad    = 4.0
	ControlLift   = 40.0
)

// RenderSpec is the per-kind drawing contract for one layer.
type RenderSpec struct {
	Kind     layer.Kind
	Box      common.Rect
	Rotation float64
	Content  string
	// FontSize is the glyph size in pixels for text and emoji.
	FontSize float64
	Bold     bool
	Fit      Fit
}

// SpecFor derives the render contract from a layer.
func SpecFor(l layer.Layer) RenderSpec {
	s := RenderSpec{
		Kind:     l.Kind,
		Box:      common.Rect{X: l.X, Y: l.Y, Width: l.Width, Height: l.Height},
		Rotation: l.Rotation,
		Content:  l.Content,
	}
	switch l.Kind {
	case layer.KindText:
		s.FontSize = float64(l.FontSize)
		s.Bold = true
	case layer.KindEmoji:
		s.FontSize = l.Width * EmojiScale
	case layer.KindImage:
		s.Fit = FitContain
	}
	return s
}

// Item is one layer in paint order.
type Item struct {
	ID       layer.ID
	Spec     RenderSpec
	Selected bool
}

// Chrome is the editor-only decoration of the selected layer. All rects are
// local to the layer box and rotate with it.
type Chrome struct {
	ID       layer.ID
	Box      common.Rect
	Rotation float64
	Ring     common.Rect
	Bar      common.Rect
	Rotate   common.Rect
	Delete   common.Rect
}

func chromeFor(l layer.Layer) Chrome {
	barW := ControlPad*2 + ControlButton*2 + ControlGap
	barH := ControlButton + ControlPad*2
	bar := common.Rect{X: l.Width/2 - barW/2, Y: -ControlLift, Width: barW, Height: barH}
	return Chrome{
		ID:       l.ID,
		Box:      common.Rect{X: l.X, Y: l.Y, Width: l.Width, Height: l.Height},
		Rotation: l.Rotation,
		Ring:     common.Rect{Width: l.Width, Height: l.Height},
		Bar:      bar,
		Rotate: common.Rect{
			X: bar.X + ControlPad, Y: bar.Y + ControlPad,
			Width: ControlButton, Height: ControlButton,
		},
		Delete: common.Rect{
			X: bar.X + ControlPad + ControlButton + ControlGap, Y: bar.Y + ControlPad,
			Width: ControlButton, Height: ControlButton,
		},
	}
}

// Scene is everything needed to draw the composition once: the canvas size,
// the layers in paint order and, optionally, the selection chrome.
type Scene struct {
	Width  float64
	Height float64
	Items  []Item
	Chrome *Chrome
}

// Bounds is the canvas rectangle in canvas space.
func (s Scene) Bounds() common.Rect {
	return common.Rect{Width: s.Width, Height: s.Height}
}

// toLocal maps a canvas point into the unrotated frame of a box.
func toLocal(box common.Rect, rotation float64, p common.Point) common.Point {
	q := p.RotateAround(box.Center(), -rotation)
	return common.Point{X: q.X - box.X, Y: q.Y - box.Y}
}
