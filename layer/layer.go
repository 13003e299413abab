package layer

import "fmt"

// ID identifies a layer for its whole lifetime. IDs are never reused.
type ID string

// Kind is the fixed type of a layer.
type Kind int

const (
	KindText Kind = iota
	KindEmoji
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindEmoji:
		return "emoji"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// ParseKind maps a lower-case kind name back to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "text":
		return KindText, nil
	case "emoji":
		return KindEmoji, nil
	case "image":
		return KindImage, nil
	default:
		return 0, fmt.Errorf("layer: unknown kind %q", s)
	}
}

const (
	// DefaultSize is the box edge shared by text and image layers.
	DefaultSize = 100.0
	// EmojiSize is the box edge of a new emoji layer.
	EmojiSize = 80.0

	DefaultFontSize = 24
	MinFontSize     = 10
	MaxFontSize     = 120

	// DefaultX and DefaultY anchor newly added layers.
	DefaultX = 250.0
	DefaultY = 250.0
)

// Layer is one placed element on the canvas. X/Y is the top-left anchor in
// canvas pixels; Rotation is in degrees and is never normalised.
type Layer struct {
	ID       ID
	Kind     Kind
	Content  string
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Rotation float64
	// FontSize is zero for non-text layers.
	FontSize int
}

// HasFontSize reports whether the layer carries a font size.
func (l Layer) HasFontSize() bool { return l.Kind == KindText }

// Center returns the centre of the layer box in canvas space.
func (l Layer) Center() (float64, float64) {
	return l.X + l.Width/2, l.Y + l.Height/2
}

// newLayer applies the kind-dependent defaults.
func newLayer(id ID, kind Kind, content string, x, y float64) Layer {
	l := Layer{
		ID:      id,
		Kind:    kind,
		Content: content,
		X:       x,
		Y:       y,
		Width:   DefaultSize,
		Height:  DefaultSize,
	}
	if kind == KindEmoji {
		l.Width = EmojiSize
		l.Height = EmojiSize
	}
	if kind == KindText {
		l.FontSize = DefaultFontSize
	}
	return l
}

// Patch is a partial update. Nil fields are left untouched; ID and Kind are
// deliberately absent.
type Patch struct {
	Content  *string
	X        *float64
	Y        *float64
	Width    *float64
	Height   *float64
	Rotation *float64
	FontSize *int
}

// Move is shorthand for a position-only patch.
func Move(x, y float64) Patch {
	return Patch{X: &x, Y: &y}
}

// Rotate is shorthand for a rotation-only patch.
func Rotate(deg float64) Patch {
	return Patch{Rotation: &deg}
}

// Text is shorthand for a content-only patch.
func Text(s string) Patch {
	return Patch{Content: &s}
}

// Font is shorthand for a font-size-only patch.
func Font(size int) Patch {
	return Patch{FontSize: &size}
}

func (p Patch) apply(l *Layer) {
	if p.Content != nil {
		l.Content = *p.Content
	}
	if p.X != nil {
		l.X = *p.X
	}
	if p.Y != nil {
		l.Y = *p.Y
	}
	if p.Width != nil {
		l.Width = *p.Width
	}
	if p.Height != nil {
		l.Height = *p.Height
	}
	if p.Rotation != nil {
		l.Rotation = *p.Rotation
	}
	// font size only exists on text layers
	if p.FontSize != nil && l.Kind == KindText {
		l.FontSize = *p.FontSize
	}
}

// ClampFontSize bounds a requested font size to the editable range.
func ClampFontSize(size int) int {
	if size < MinFontSize {
		return MinFontSize
	}
	if size > MaxFontSize {
		return MaxFontSize
	}
	return size
}
