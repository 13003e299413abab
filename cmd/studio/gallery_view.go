package main

import (
	"bytes"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"

	"github.com/milk9111/totestudio/common"
	"github.com/milk9111/totestudio/gallery"
)

const (
	galleryColumns = 3
	galleryGap     = 24.0
	galleryHeader  = 72.0
	galleryCaption = 28.0
	galleryEmpty   = "No AI designs yet. Create one in the AI Gen tab!"
)

// galleryAction is what a click on a gallery card asks for.
type galleryAction int

const (
	galleryNone galleryAction = iota
	galleryOpen
	galleryCopy
)

// galleryView draws the generated designs as a grid of cards, newest first.
type galleryView struct {
	faces  *fontFaces
	log    *zap.Logger
	pixel  *ebiten.Image
	thumbs map[string]*ebiten.Image
	scroll float64
}

func newGalleryView(faces *fontFaces, log *zap.Logger) *galleryView {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &galleryView{faces: faces, log: log, pixel: pixel, thumbs: make(map[string]*ebiten.Image)}
}

// cards lays out one square card per design inside area.
func (v *galleryView) cards(area common.Rect, n int) []common.Rect {
	inner := area.Width - 2*galleryGap
	size := (inner - galleryGap*(galleryColumns-1)) / galleryColumns
	if size <= 0 {
		return nil
	}
	out := make([]common.Rect, n)
	for i := range out {
		col, row := i%galleryColumns, i/galleryColumns
		out[i] = common.Rect{
			X:      area.X + galleryGap + float64(col)*(size+galleryGap),
			Y:      area.Y + galleryHeader + float64(row)*(size+galleryCaption+galleryGap) - v.scroll,
			Width:  size,
			Height: size,
		}
	}
	return out
}

// Scroll moves the grid by dy pixels, keeping it within its content.
func (v *galleryView) Scroll(area common.Rect, n int, dy float64) {
	v.scroll -= dy * 40
	cards := v.cards(area, n)
	maxScroll := 0.0
	if len(cards) > 0 {
		last := cards[len(cards)-1]
		bottom := last.Y + v.scroll + last.Height + galleryCaption + galleryGap
		maxScroll = bottom - (area.Y + area.Height)
	}
	if v.scroll > maxScroll {
		v.scroll = maxScroll
	}
	if v.scroll < 0 {
		v.scroll = 0
	}
}

// HitTest returns the design under p and the action for the button used.
func (v *galleryView) HitTest(area common.Rect, designs []gallery.Design, p common.Point, right bool) (string, galleryAction) {
	if !area.Contains(p) {
		return "", galleryNone
	}
	for i, r := range v.cards(area, len(designs)) {
		if !r.Contains(p) {
			continue
		}
		if right {
			return designs[i].ID, galleryCopy
		}
		return designs[i].ID, galleryOpen
	}
	return "", galleryNone
}

func (v *galleryView) Draw(screen *ebiten.Image, area common.Rect, designs []gallery.Design) {
	v.fill(screen, area, colorWorkspace)

	title := &text.DrawOptions{}
	title.GeoM.Translate(area.X+galleryGap, area.Y+galleryGap)
	title.ColorScale.ScaleWithColor(colorInk)
	text.Draw(screen, "AI Design Gallery", v.faces.title, title)

	if len(designs) == 0 {
		op := &text.DrawOptions{}
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		c := area.Center()
		op.GeoM.Translate(c.X, c.Y)
		op.ColorScale.ScaleWithColor(colorMuted)
		text.Draw(screen, galleryEmpty, v.faces.ui, op)
		return
	}

	live := make(map[string]bool, len(designs))
	for i, r := range v.cards(area, len(designs)) {
		d := designs[i]
		live[d.ID] = true
		if r.Y+r.Height+galleryCaption < area.Y || r.Y > area.Y+area.Height {
			continue
		}
		v.fill(screen, common.Rect{X: r.X - 1, Y: r.Y - 1, Width: r.Width + 2, Height: r.Height + 2}, colorBorder)
		v.fill(screen, r, colorSidebar)
		if thumb := v.thumb(d); thumb != nil {
			tw, th := float64(thumb.Bounds().Dx()), float64(thumb.Bounds().Dy())
			fit := common.FitContain(r, tw, th)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(fit.Width/tw, fit.Height/th)
			op.GeoM.Translate(fit.X, fit.Y)
			op.Filter = ebiten.FilterLinear
			screen.DrawImage(thumb, op)
		}
		caption := &text.DrawOptions{}
		caption.GeoM.Translate(r.X, r.Y+r.Height+8)
		caption.ColorScale.ScaleWithColor(colorMuted)
		text.Draw(screen, clip(d.Prompt, 40), v.faces.small, caption)
	}
	for id, img := range v.thumbs {
		if !live[id] {
			if img != nil {
				img.Deallocate()
			}
			delete(v.thumbs, id)
		}
	}

	hint := &text.DrawOptions{}
	hint.GeoM.Translate(area.X+galleryGap, area.Y+galleryGap+30)
	hint.ColorScale.ScaleWithColor(colorMuted)
	text.Draw(screen, "Click a design to open it, right-click to copy it.", v.faces.small, hint)
}

func (v *galleryView) thumb(d gallery.Design) *ebiten.Image {
	if img, ok := v.thumbs[d.ID]; ok {
		return img
	}
	decoded, _, err := image.Decode(bytes.NewReader(d.Data))
	if err != nil {
		v.log.Warn("gallery design could not be decoded", zap.String("design", d.ID), zap.Error(err))
		v.thumbs[d.ID] = nil
		return nil
	}
	img := ebiten.NewImageFromImage(decoded)
	v.thumbs[d.ID] = img
	return img
}

func (v *galleryView) fill(dst *ebiten.Image, r common.Rect, c color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.ScaleWithColor(c)
	dst.DrawImage(v.pixel, op)
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
