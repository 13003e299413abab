package main

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/milk9111/totestudio/common"
	"github.com/milk9111/totestudio/composer"
	"github.com/milk9111/totestudio/layer"
	"github.com/milk9111/totestudio/snapshot"
	"github.com/milk9111/totestudio/upload"
)

const ringWidth = 2

// canvasView draws a composer scene with ebiten. Content is composed on an
// offscreen image the size of the canvas, so layers and chrome are clipped
// to it, then scaled onto the screen by the viewport.
type canvasView struct {
	faces   *fontFaces
	decoded *upload.Cache
	log     *zap.Logger

	offscreen  *ebiten.Image
	pixel      *ebiten.Image
	artwork    *ebiten.Image
	images     map[string]*ebiten.Image
	rotateIcon *ebiten.Image
	deleteIcon *ebiten.Image
}

func newCanvasView(faces *fontFaces, decoded *upload.Cache, log *zap.Logger) *canvasView {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &canvasView{
		faces:      faces,
		decoded:    decoded,
		log:        log,
		pixel:      pixel,
		images:     make(map[string]*ebiten.Image),
		rotateIcon: rotateIcon(int(composer.ControlButton)),
		deleteIcon: deleteIcon(int(composer.ControlButton)),
	}
}

// SetArtwork replaces the base tote image.
func (v *canvasView) SetArtwork(img image.Image) {
	if img == nil {
		v.artwork = nil
		return
	}
	v.artwork = ebiten.NewImageFromImage(img)
}

func (v *canvasView) Draw(screen *ebiten.Image, sc composer.Scene, vp composer.Viewport) {
	w, h := int(math.Ceil(sc.Width)), int(math.Ceil(sc.Height))
	if w <= 0 || h <= 0 {
		return
	}
	if v.offscreen == nil || v.offscreen.Bounds().Dx() != w || v.offscreen.Bounds().Dy() != h {
		v.offscreen = ebiten.NewImage(w, h)
	}
	dst := v.offscreen
	dst.Fill(snapshot.Paper)
	v.drawArtwork(dst, sc.Bounds())

	used := make(map[string]bool)
	for _, it := range sc.Items {
		switch it.Spec.Kind {
		case layer.KindText, layer.KindEmoji:
			v.drawGlyphs(dst, it.Spec)
		case layer.KindImage:
			used[it.Spec.Content] = true
			v.drawImage(dst, it.Spec)
		}
	}
	if sc.Chrome != nil {
		v.drawChrome(dst, *sc.Chrome)
	}
	v.forget(used)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(vp.Scale, vp.Scale)
	op.GeoM.Translate(vp.OffsetX, vp.OffsetY)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(dst, op)
}

func (v *canvasView) drawArtwork(dst *ebiten.Image, bounds common.Rect) {
	if v.artwork == nil {
		return
	}
	aw, ah := v.artwork.Bounds().Dx(), v.artwork.Bounds().Dy()
	r := common.FitCover(bounds, float64(aw), float64(ah))
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.Width/float64(aw), r.Height/float64(ah))
	op.GeoM.Translate(r.X, r.Y)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(v.artwork, op)
}

// boxGeoM maps the box's own frame onto the canvas: rotation is about the
// box centre.
func boxGeoM(box common.Rect, rotation float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(-box.Width/2, -box.Height/2)
	g.Rotate(rotation * math.Pi / 180)
	c := box.Center()
	g.Translate(c.X, c.Y)
	return g
}

func (v *canvasView) drawGlyphs(dst *ebiten.Image, spec composer.RenderSpec) {
	if spec.Content == "" {
		return
	}
	face := v.faces.layerFace(spec.Bold, spec.FontSize)
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.LineSpacing = spec.FontSize * 1.2
	op.GeoM.Translate(spec.Box.Width/2, spec.Box.Height/2)
	op.GeoM.Concat(boxGeoM(spec.Box, spec.Rotation))
	op.ColorScale.ScaleWithColor(snapshot.Ink)
	op.Filter = ebiten.FilterLinear
	text.Draw(dst, spec.Content, face, op)
}

func (v *canvasView) drawImage(dst *ebiten.Image, spec composer.RenderSpec) {
	img := v.image(spec.Content)
	if img == nil {
		return
	}
	iw, ih := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	local := common.Rect{Width: spec.Box.Width, Height: spec.Box.Height}
	r := common.FitContain(local, iw, ih)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.Width/iw, r.Height/ih)
	op.GeoM.Translate(r.X, r.Y)
	op.GeoM.Concat(boxGeoM(spec.Box, spec.Rotation))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, op)
}

// image returns the GPU copy of a data URI, decoding it on first use.
func (v *canvasView) image(uri string) *ebiten.Image {
	if img, ok := v.images[uri]; ok {
		return img
	}
	decoded, err := v.decoded.Image(uri)
	if err != nil {
		v.log.Warn("image layer could not be decoded", zap.Error(err))
		v.images[uri] = nil
		return nil
	}
	img := ebiten.NewImageFromImage(decoded)
	v.images[uri] = img
	return img
}

func (v *canvasView) forget(used map[string]bool) {
	for uri, img := range v.images {
		if used[uri] {
			continue
		}
		if img != nil {
			img.Deallocate()
		}
		delete(v.images, uri)
	}
	v.decoded.Forget(used)
}

func (v *canvasView) drawChrome(dst *ebiten.Image, ch composer.Chrome) {
	frame := boxGeoM(ch.Box, ch.Rotation)
	ring := ch.Ring
	v.outline(dst, frame, common.Rect{
		X: ring.X - ringWidth, Y: ring.Y - ringWidth,
		Width: ring.Width + 2*ringWidth, Height: ring.Height + 2*ringWidth,
	}, ringWidth, snapshot.RingColor)

	v.fillRect(dst, frame, ch.Bar, snapshot.BarColor)
	v.outline(dst, frame, ch.Bar, 1, snapshot.BarBorder)
	v.icon(dst, frame, ch.Rotate, v.rotateIcon)
	v.icon(dst, frame, ch.Delete, v.deleteIcon)
}

func (v *canvasView) fillRect(dst *ebiten.Image, frame ebiten.GeoM, r common.Rect, c color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.GeoM.Concat(frame)
	op.ColorScale.ScaleWithColor(c)
	dst.DrawImage(v.pixel, op)
}

func (v *canvasView) outline(dst *ebiten.Image, frame ebiten.GeoM, r common.Rect, w float64, c color.Color) {
	v.fillRect(dst, frame, common.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: w}, c)
	v.fillRect(dst, frame, common.Rect{X: r.X, Y: r.Y + r.Height - w, Width: r.Width, Height: w}, c)
	v.fillRect(dst, frame, common.Rect{X: r.X, Y: r.Y, Width: w, Height: r.Height}, c)
	v.fillRect(dst, frame, common.Rect{X: r.X + r.Width - w, Y: r.Y, Width: w, Height: r.Height}, c)
}

func (v *canvasView) icon(dst *ebiten.Image, frame ebiten.GeoM, r common.Rect, img *ebiten.Image) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.Width/float64(img.Bounds().Dx()), r.Height/float64(img.Bounds().Dy()))
	op.GeoM.Translate(r.X, r.Y)
	op.GeoM.Concat(frame)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, op)
}

// rotateIcon is a circle with a gap at the top and an arrow head closing it.
func rotateIcon(size int) *ebiten.Image {
	img := ebiten.NewImage(size, size)
	s := float32(size)
	c, r := s/2, s*0.28
	vector.StrokeCircle(img, c, c, r, 2, snapshot.RotateInk, true)
	vector.DrawFilledRect(img, c-s*0.18, c-r-2, s*0.18, 5, snapshot.BarColor, false)
	vector.StrokeLine(img, c-3, c-r-4, c+1, c-r, 2, snapshot.RotateInk, true)
	vector.StrokeLine(img, c-3, c-r+4, c+1, c-r, 2, snapshot.RotateInk, true)
	return img
}

// deleteIcon is a cross.
func deleteIcon(size int) *ebiten.Image {
	img := ebiten.NewImage(size, size)
	s := float32(size)
	lo, hi := s*0.3, s*0.7
	vector.StrokeLine(img, lo, lo, hi, hi, 2, snapshot.DeleteInk, true)
	vector.StrokeLine(img, hi, lo, lo, hi, 2, snapshot.DeleteInk, true)
	return img
}
