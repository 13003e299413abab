package snapshot

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Fonts hands out sized faces for text and emoji layers, caching them by
// size. It is safe for concurrent use.
type Fonts struct {
	regular *opentype.Font
	bold    *opentype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

type faceKey struct {
	bold bool
	size float64
}

// NewFonts parses the bundled Go fonts. A non-nil emoji TTF replaces the
// regular face used for emoji layers.
func NewFonts(emojiTTF []byte) (*Fonts, error) {
	regularTTF := goregular.TTF
	if len(emojiTTF) > 0 {
		regularTTF = emojiTTF
	}
	regular, err := opentype.Parse(regularTTF)
	if err != nil {
		return nil, fmt.Errorf("snapshot: parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("snapshot: parse bold font: %w", err)
	}
	return &Fonts{regular: regular, bold: bold, faces: make(map[faceKey]font.Face)}, nil
}

// Face returns a face at size pixels.
func (f *Fonts) Face(bold bool, size float64) (font.Face, error) {
	if size <= 0 {
		size = 1
	}
	key := faceKey{bold: bold, size: size}

	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.faces[key]; ok {
		return face, nil
	}
	src := f.regular
	if bold {
		src = f.bold
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot: face %.1fpx: %w", size, err)
	}
	f.faces[key] = face
	return face, nil
}
