// Package artwork provides the base tote image the design is composed on.
package artwork

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"

	"github.com/milk9111/totestudio/upload"
)

var (
	Canvas = color.RGBA{R: 0xf8, G: 0xfa, B: 0xfc, A: 0xff}
	Fabric = color.RGBA{R: 0xe9, G: 0xdf, B: 0xc9, A: 0xff}
	Handle = color.RGBA{R: 0xc8, G: 0xb8, B: 0x96, A: 0xff}
	Seam   = color.RGBA{R: 0xd6, G: 0xc8, B: 0xaa, A: 0xff}
)

// Load decodes the artwork at path. An empty path yields the built-in tote
// drawn at w×h.
func Load(path string, w, h int) (image.Image, error) {
	if path == "" {
		return Tote(w, h), nil
	}
	f, err := upload.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("artwork: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(f.Data))
	if err != nil {
		return nil, fmt.Errorf("artwork: decode %s: %w", path, err)
	}
	return img, nil
}

// Tote draws a flat tote bag silhouette: a slightly tapered body with two
// looped handles.
func Tote(w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(Canvas), image.Point{}, draw.Src)

	fw, fh := float32(w), float32(h)
	bodyTop := fh * 0.34
	bodyBottom := fh * 0.92
	topInset := fw * 0.18
	bottomInset := fw * 0.12

	handles := vector.NewRasterizer(w, h)
	for _, cx := range []float32{fw * 0.38, fw * 0.62} {
		loop(handles, cx, bodyTop+fh*0.01, fw*0.09, fh*0.24, fw*0.025)
	}
	handles.Draw(dst, dst.Bounds(), image.NewUniform(Handle), image.Point{})

	body := vector.NewRasterizer(w, h)
	body.MoveTo(topInset, bodyTop)
	body.LineTo(fw-topInset, bodyTop)
	body.LineTo(fw-bottomInset, bodyBottom-fh*0.02)
	body.QuadTo(fw-bottomInset, bodyBottom, fw-bottomInset-fw*0.02, bodyBottom)
	body.LineTo(bottomInset+fw*0.02, bodyBottom)
	body.QuadTo(bottomInset, bodyBottom, bottomInset, bodyBottom-fh*0.02)
	body.ClosePath()
	body.Draw(dst, dst.Bounds(), image.NewUniform(Fabric), image.Point{})

	seam := vector.NewRasterizer(w, h)
	seamY := bodyTop + fh*0.05
	seam.MoveTo(topInset+fw*0.01, seamY)
	seam.LineTo(fw-topInset-fw*0.01, seamY)
	seam.LineTo(fw-topInset-fw*0.01, seamY+fh*0.004)
	seam.LineTo(topInset+fw*0.01, seamY+fh*0.004)
	seam.ClosePath()
	seam.Draw(dst, dst.Bounds(), image.NewUniform(Seam), image.Point{})
	return dst
}

// loop adds a handle: an arch of thickness t whose feet stand on baseY.
// The inner arch runs the other way so it cuts a hole.
func loop(z *vector.Rasterizer, cx, baseY, halfW, height, t float32) {
	z.MoveTo(cx-halfW, baseY)
	z.CubeTo(cx-halfW, baseY-height, cx+halfW, baseY-height, cx+halfW, baseY)
	z.LineTo(cx+halfW-t, baseY)
	iw := halfW - t
	ih := height - t*1.5
	z.CubeTo(cx+iw, baseY-ih, cx-iw, baseY-ih, cx-iw, baseY)
	z.ClosePath()
}
