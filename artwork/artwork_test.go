package artwork

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/totestudio/upload"
)

func TestToteSilhouette(t *testing.T) {
	img := Tote(600, 600)
	require.Equal(t, 600, img.Bounds().Dx())

	assert.Equal(t, Canvas, img.RGBAAt(5, 5), "corner is background")
	assert.Equal(t, Fabric, img.RGBAAt(300, 400), "middle of the body is fabric")
	// top of the left handle arch
	assert.NotEqual(t, Canvas, img.RGBAAt(int(600*0.38), 110))
}

func TestLoadBuiltinWhenPathEmpty(t *testing.T) {
	img, err := Load("", 100, 80)
	require.NoError(t, err)
	assert.Equal(t, 80, img.Bounds().Dy())
}

func TestLoadFile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, Tote(40, 30)))
	path := filepath.Join(t.TempDir(), "tote.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	img, err := Load(path, 600, 600)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
}

func TestLoadRejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tote.txt")
	require.NoError(t, os.WriteFile(path, []byte("not a picture"), 0o644))

	_, err := Load(path, 600, 600)
	assert.ErrorIs(t, err, upload.ErrNotImage)
}
