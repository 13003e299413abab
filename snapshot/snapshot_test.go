package snapshot

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/totestudio/composer"
	"github.com/milk9111/totestudio/drag"
	"github.com/milk9111/totestudio/layer"
)

var red = color.RGBA{R: 0xff, A: 0xff}

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func newRenderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()
	fonts, err := NewFonts(nil)
	require.NoError(t, err)
	src := WithImageSource(func(content string) (image.Image, error) {
		return solid(40, 40, red), nil
	})
	return New(fonts, append([]Option{src}, opts...)...)
}

func scene(items ...layer.Layer) composer.Scene {
	sc := composer.Scene{Width: 200, Height: 200}
	for _, l := range items {
		sc.Items = append(sc.Items, composer.Item{ID: l.ID, Spec: composer.SpecFor(l)})
	}
	return sc
}

func rgba(img *image.RGBA, x, y int) color.RGBA {
	return img.RGBAAt(x, y)
}

// near tolerates resampling rounding.
func near(a, b color.RGBA) bool {
	d := func(x, y uint8) bool { return x-y < 8 || y-x < 8 }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func TestRenderEmptyScene(t *testing.T) {
	img, err := newRenderer(t).Render(scene())
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 200), img.Bounds())
	assert.Equal(t, Paper, rgba(img, 100, 100))
}

func TestRenderBackgroundCovers(t *testing.T) {
	// a wide background still reaches every corner
	bg := solid(400, 100, color.RGBA{G: 0xff, A: 0xff})
	img, err := newRenderer(t, WithBackground(bg)).Render(scene())
	require.NoError(t, err)
	for _, p := range []image.Point{{1, 1}, {198, 1}, {1, 198}, {198, 198}} {
		assert.GreaterOrEqual(t, rgba(img, p.X, p.Y).G, uint8(0xf0), "corner %v", p)
	}
}

func TestRenderImageLayerRotated(t *testing.T) {
	l := layer.Layer{ID: "img", Kind: layer.KindImage, Content: "x", X: 50, Y: 50, Width: 100, Height: 100, Rotation: 45}
	img, err := newRenderer(t).Render(scene(l))
	require.NoError(t, err)

	assert.True(t, near(red, rgba(img, 100, 100)), "centre is covered")
	// the unrotated corner falls outside the rotated box
	assert.Equal(t, Paper, rgba(img, 52, 52))
}

func TestRenderTextLayerDrawsInk(t *testing.T) {
	l := layer.Layer{ID: "t", Kind: layer.KindText, Content: "TOTE", X: 50, Y: 50, Width: 100, Height: 100, FontSize: 32}
	img, err := newRenderer(t).Render(scene(l))
	require.NoError(t, err)

	inked := 0
	for y := 50; y < 150; y++ {
		for x := 50; x < 150; x++ {
			if rgba(img, x, y) != Paper {
				inked++
			}
		}
	}
	assert.Greater(t, inked, 50)
	assert.Equal(t, Paper, rgba(img, 10, 10))
}

func TestRenderChromeOnlyWhenIncluded(t *testing.T) {
	store := layer.NewStore(layer.WithOrigin(50, 80))
	store.Add(layer.KindEmoji, "x")
	c := composer.New(store, drag.NewController(store), composer.Options{Width: 200, Height: 200})
	r := newRenderer(t)

	plain, err := r.Render(c.Scene(false))
	require.NoError(t, err)
	withChrome, err := r.Render(c.Scene(true))
	require.NoError(t, err)

	// left edge of the selection ring
	assert.False(t, near(RingColor, rgba(plain, 50, 120)))
	assert.True(t, near(RingColor, rgba(withChrome, 50, 120)))
}

func TestRenderPNG(t *testing.T) {
	data, err := newRenderer(t).RenderPNG(scene())
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
}
