package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/totestudio/common"
	"github.com/milk9111/totestudio/studio"
)

const (
	toastLife  = 4 * time.Second
	toastLimit = 4
)

type toast struct {
	notice  studio.Notice
	expires time.Time
}

// overlay draws the workspace status: a busy banner while a design is being
// generated, a file-loading hint, and short-lived notices.
type overlay struct {
	faces  *fontFaces
	pixel  *ebiten.Image
	toasts []toast
	now    func() time.Time
}

func newOverlay(faces *fontFaces) *overlay {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &overlay{faces: faces, pixel: pixel, now: time.Now}
}

// Push queues notices; the oldest are dropped past the limit.
func (o *overlay) Push(notices ...studio.Notice) {
	now := o.now()
	for _, n := range notices {
		o.toasts = append(o.toasts, toast{notice: n, expires: now.Add(toastLife)})
	}
	if extra := len(o.toasts) - toastLimit; extra > 0 {
		o.toasts = o.toasts[extra:]
	}
}

// Update drops expired toasts.
func (o *overlay) Update() {
	now := o.now()
	kept := o.toasts[:0]
	for _, t := range o.toasts {
		if now.Before(t.expires) {
			kept = append(kept, t)
		}
	}
	o.toasts = kept
}

func (o *overlay) Draw(screen *ebiten.Image, area common.Rect, busy bool, loading int) {
	y := area.Y + 16
	if busy {
		o.banner(screen, area, y, colorAccent, color.White,
			"Gemini is designing...", "Crafting a professional render of your vision")
		y += 64
	}
	if loading > 0 {
		msg := "Loading image..."
		if loading > 1 {
			msg = fmt.Sprintf("Loading %d images...", loading)
		}
		o.banner(screen, area, y, colorSidebar, colorInk, msg, "")
		y += 48
	}

	ty := area.Y + area.Height - 16
	for i := len(o.toasts) - 1; i >= 0; i-- {
		t := o.toasts[i]
		bg, fg := colorInk, color.Color(color.White)
		if t.notice.Level == studio.LevelError {
			bg = colorDanger
		}
		w := 420.0
		r := common.Rect{X: area.X + (area.Width-w)/2, Y: ty - 40, Width: w, Height: 40}
		o.fill(screen, r, bg)
		op := &text.DrawOptions{}
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		c := r.Center()
		op.GeoM.Translate(c.X, c.Y)
		op.ColorScale.ScaleWithColor(fg)
		text.Draw(screen, t.notice.Text, o.faces.ui, op)
		ty -= 48
	}
}

func (o *overlay) banner(screen *ebiten.Image, area common.Rect, y float64, bg, fg color.Color, title, sub string) {
	w := 380.0
	h := 40.0
	if sub != "" {
		h = 56
	}
	r := common.Rect{X: area.X + (area.Width-w)/2, Y: y, Width: w, Height: h}
	o.fill(screen, r, bg)

	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.GeoM.Translate(r.X+w/2, r.Y+10)
	op.ColorScale.ScaleWithColor(fg)
	text.Draw(screen, title, o.faces.ui, op)
	if sub == "" {
		return
	}
	op = &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.GeoM.Translate(r.X+w/2, r.Y+32)
	op.ColorScale.ScaleWithColor(fg)
	op.ColorScale.ScaleAlpha(0.8)
	text.Draw(screen, sub, o.faces.small, op)
}

func (o *overlay) fill(dst *ebiten.Image, r common.Rect, c color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.ScaleWithColor(c)
	dst.DrawImage(o.pixel, op)
}
