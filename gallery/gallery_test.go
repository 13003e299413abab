package gallery

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClip struct {
	got []byte
	err error
}

func (f *fakeClip) WriteImage(png []byte) error {
	f.got = png
	return f.err
}

func TestAddNewestFirst(t *testing.T) {
	g := New()
	a := g.Add([]byte("a"), "image/png", "first")
	b := g.Add([]byte("b"), "image/png", "second")

	all := g.All()
	require.Len(t, all, 2)
	assert.Equal(t, b.ID, all[0].ID)
	assert.Equal(t, a.ID, all[1].ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, g.Len())
}

func TestDesignDataURI(t *testing.T) {
	g := New(WithClock(func() time.Time { return time.Unix(10, 0) }))
	d := g.Add([]byte("hi"), "image/png", "p")
	assert.Equal(t, "data:image/png;base64,aGk=", d.DataURI())
	assert.Equal(t, time.Unix(10, 0), d.CreatedAt)
}

func TestOpenWritesFile(t *testing.T) {
	var opened string
	dir := t.TempDir()
	g := New(WithDir(dir), WithOpener(func(path string) error {
		opened = path
		return nil
	}))
	d := g.Add([]byte("pixels"), "image/jpeg", "p")

	path, err := g.Open(d.ID)
	require.NoError(t, err)
	assert.Equal(t, path, opened)
	assert.Equal(t, ".jpg", path[len(path)-4:])
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("pixels"), data)
}

func TestOpenErrors(t *testing.T) {
	g := New(WithDir(t.TempDir()), WithOpener(func(string) error { return errors.New("no viewer") }))
	_, err := g.Open("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	d := g.Add([]byte("x"), "image/png", "p")
	_, err = g.Open(d.ID)
	assert.ErrorContains(t, err, "no viewer")
}

func TestCopy(t *testing.T) {
	clip := &fakeClip{}
	g := New(WithClipboard(clip))
	d := g.Add([]byte("png"), "image/png", "p")

	require.NoError(t, g.Copy(d.ID))
	assert.Equal(t, []byte("png"), clip.got)
	assert.ErrorIs(t, g.Copy("nope"), ErrNotFound)

	clip.err = errors.New("busy")
	assert.Error(t, g.Copy(d.ID))
}

func TestCopyConvertsToPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8)), nil))

	clip := &fakeClip{}
	g := New(WithClipboard(clip))
	d := g.Add(buf.Bytes(), "image/jpeg", "jpeg render")
	require.NoError(t, g.Copy(d.ID))

	img, err := png.Decode(bytes.NewReader(clip.got))
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())

	bad := g.Add([]byte("garbage"), "image/jpeg", "broken")
	assert.Error(t, g.Copy(bad.ID))
}
