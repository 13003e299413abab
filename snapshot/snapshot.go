// Package snapshot rasterises a composed scene into an image on the CPU. The
// result is what gets sent to the image generator, so it must match what the
// editor shows minus, by default, the selection chrome.
package snapshot

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/milk9111/totestudio/common"
	"github.com/milk9111/totestudio/composer"
	"github.com/milk9111/totestudio/layer"
)

var (
	Paper     = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Ink       = color.RGBA{R: 0x1e, G: 0x29, B: 0x3b, A: 0xff}
	RingColor = color.RGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}
	BarColor  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	BarBorder = color.RGBA{R: 0xe2, G: 0xe8, B: 0xf0, A: 0xff}
	RotateInk = color.RGBA{R: 0x47, G: 0x55, B: 0x69, A: 0xff}
	DeleteInk = color.RGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}
)

const ringWidth = 2

// ImageSource resolves an image layer's content to pixels.
type ImageSource func(content string) (image.Image, error)

// Renderer draws scenes. The zero value is not usable; call New.
type Renderer struct {
	fonts  *Fonts
	images ImageSource

	mu         sync.RWMutex
	background image.Image
}

type Option func(*Renderer)

// WithBackground sets the base artwork, drawn full-bleed with cover scaling.
func WithBackground(img image.Image) Option {
	return func(r *Renderer) { r.background = img }
}

// WithImageSource sets how image layers are resolved.
func WithImageSource(src ImageSource) Option {
	return func(r *Renderer) { r.images = src }
}

func New(fonts *Fonts, opts ...Option) *Renderer {
	r := &Renderer{fonts: fonts}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetBackground swaps the base artwork, e.g. after a hot reload.
func (r *Renderer) SetBackground(img image.Image) {
	r.mu.Lock()
	r.background = img
	r.mu.Unlock()
}

// Render draws sc at canvas resolution.
func (r *Renderer) Render(sc composer.Scene) (*image.RGBA, error) {
	w := int(math.Ceil(sc.Width))
	h := int(math.Ceil(sc.Height))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(Paper), image.Point{}, xdraw.Src)

	r.mu.RLock()
	bg := r.background
	r.mu.RUnlock()
	if bg != nil {
		b := bg.Bounds()
		cover := common.FitCover(sc.Bounds(), float64(b.Dx()), float64(b.Dy()))
		xdraw.CatmullRom.Scale(dst, toRectangle(cover), bg, b, xdraw.Over, nil)
	}

	for _, it := range sc.Items {
		if err := r.drawItem(dst, it.Spec); err != nil {
			return nil, fmt.Errorf("snapshot: layer %s: %w", it.ID, err)
		}
	}
	if sc.Chrome != nil {
		r.drawChrome(dst, *sc.Chrome)
	}
	return dst, nil
}

// RenderPNG renders sc and encodes it as PNG.
func (r *Renderer) RenderPNG(sc composer.Scene) ([]byte, error) {
	img, err := r.Render(sc)
	if err != nil {
		return nil, err
	}
	return EncodePNG(img)
}

func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("snapshot: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawItem(dst *image.RGBA, spec composer.RenderSpec) error {
	switch spec.Kind {
	case layer.KindText:
		return r.drawGlyphs(dst, spec, true)
	case layer.KindEmoji:
		return r.drawGlyphs(dst, spec, false)
	case layer.KindImage:
		return r.drawImage(dst, spec)
	}
	return nil
}

// drawGlyphs centres the content in the box. Text wider than the box
// overflows it symmetrically rather than wrapping.
func (r *Renderer) drawGlyphs(dst *image.RGBA, spec composer.RenderSpec, bold bool) error {
	if spec.Content == "" {
		return nil
	}
	face, err := r.fonts.Face(bold, spec.FontSize)
	if err != nil {
		return err
	}
	m := face.Metrics()
	textW := font.MeasureString(face, spec.Content).Ceil()
	textH := (m.Ascent + m.Descent).Ceil()

	lw := max(int(math.Ceil(spec.Box.Width)), textW)
	lh := max(int(math.Ceil(spec.Box.Height)), textH)
	local := image.NewRGBA(image.Rect(0, 0, lw, lh))
	d := font.Drawer{
		Dst:  local,
		Src:  image.NewUniform(Ink),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I((lw - textW) / 2),
			Y: fixed.I((lh-textH)/2) + m.Ascent,
		},
	}
	d.DrawString(spec.Content)

	ox := (spec.Box.Width - float64(lw)) / 2
	oy := (spec.Box.Height - float64(lh)) / 2
	place(dst, local, spec.Box, spec.Rotation, ox, oy)
	return nil
}

func (r *Renderer) drawImage(dst *image.RGBA, spec composer.RenderSpec) error {
	if r.images == nil {
		return nil
	}
	src, err := r.images(spec.Content)
	if err != nil {
		return err
	}
	lw := int(math.Ceil(spec.Box.Width))
	lh := int(math.Ceil(spec.Box.Height))
	local := image.NewRGBA(image.Rect(0, 0, lw, lh))
	b := src.Bounds()
	fit := common.FitContain(common.Rect{Width: spec.Box.Width, Height: spec.Box.Height}, float64(b.Dx()), float64(b.Dy()))
	xdraw.CatmullRom.Scale(local, toRectangle(fit), src, b, xdraw.Over, nil)
	place(dst, local, spec.Box, spec.Rotation, 0, 0)
	return nil
}

func (r *Renderer) drawChrome(dst *image.RGBA, ch composer.Chrome) {
	// local canvas spans the ring and the floating bar
	top := math.Min(ch.Bar.Y, 0) - ringWidth
	left := math.Min(ch.Bar.X, 0) - ringWidth
	right := math.Max(ch.Bar.X+ch.Bar.Width, ch.Ring.Width) + ringWidth
	bottom := math.Max(ch.Bar.Y+ch.Bar.Height, ch.Ring.Height) + ringWidth
	lw := int(math.Ceil(right - left))
	lh := int(math.Ceil(bottom - top))
	local := image.NewRGBA(image.Rect(0, 0, lw, lh))

	shift := func(rc common.Rect) image.Rectangle {
		return toRectangle(common.Rect{X: rc.X - left, Y: rc.Y - top, Width: rc.Width, Height: rc.Height})
	}
	outline(local, shift(ch.Ring), ringWidth, RingColor)
	fill(local, shift(ch.Bar), BarColor)
	outline(local, shift(ch.Bar), 1, BarBorder)
	fill(local, shift(ch.Rotate).Inset(6), RotateInk)
	fill(local, shift(ch.Delete).Inset(6), DeleteInk)

	place(dst, local, ch.Box, ch.Rotation, left, top)
}

// place composites local onto dst. local's pixel (0,0) sits at (ox,oy) in the
// box's own frame; the whole frame is rotated about the box centre.
func place(dst *image.RGBA, local *image.RGBA, box common.Rect, rotation, ox, oy float64) {
	sin, cos := math.Sincos(rotation * math.Pi / 180)
	c := box.Center()
	hx := ox - box.Width/2
	hy := oy - box.Height/2
	aff := f64.Aff3{
		cos, -sin, c.X + cos*hx - sin*hy,
		sin, cos, c.Y + sin*hx + cos*hy,
	}
	xdraw.BiLinear.Transform(dst, aff, local, local.Bounds(), xdraw.Over, nil)
}

func fill(dst *image.RGBA, r image.Rectangle, c color.Color) {
	xdraw.Draw(dst, r, image.NewUniform(c), image.Point{}, xdraw.Over)
}

func outline(dst *image.RGBA, r image.Rectangle, w int, c color.Color) {
	fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+w), c)
	fill(dst, image.Rect(r.Min.X, r.Max.Y-w, r.Max.X, r.Max.Y), c)
	fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+w, r.Max.Y), c)
	fill(dst, image.Rect(r.Max.X-w, r.Min.Y, r.Max.X, r.Max.Y), c)
}

func toRectangle(r common.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.Width)), int(math.Ceil(r.Y+r.Height)),
	)
}
