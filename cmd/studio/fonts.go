package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// fontFaces holds the sources and the fixed UI faces. Canvas faces are built
// per size on demand.
type fontFaces struct {
	regular *text.GoTextFaceSource
	bold    *text.GoTextFaceSource
	// emojiSrc is nil unless an emoji font was configured.
	emojiSrc *text.GoTextFaceSource

	ui    text.Face
	small text.Face
	title text.Face
	emoji text.Face

	// emojiTTF is shared with the snapshot renderer.
	emojiTTF []byte
}

func loadFontFaces(emojiFontPath string) (*fontFaces, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("load bold font: %w", err)
	}
	f := &fontFaces{regular: regular, bold: bold}

	if emojiFontPath != "" {
		data, err := os.ReadFile(emojiFontPath)
		if err != nil {
			return nil, fmt.Errorf("read emoji font: %w", err)
		}
		src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("load emoji font %s: %w", emojiFontPath, err)
		}
		f.emojiSrc = src
		f.emojiTTF = data
	}

	f.ui = &text.GoTextFace{Source: regular, Size: 14}
	f.small = &text.GoTextFace{Source: bold, Size: 11}
	f.title = &text.GoTextFace{Source: bold, Size: 22}
	f.emoji = f.layerFace(false, 22)
	return f, nil
}

// layerFace returns a face for canvas glyphs. With an emoji font configured,
// bold text prefers the Go font and emoji prefer the emoji font.
func (f *fontFaces) layerFace(bold bool, size float64) text.Face {
	if size <= 0 {
		size = 1
	}
	src := f.regular
	if bold {
		src = f.bold
	}
	base := &text.GoTextFace{Source: src, Size: size}
	if f.emojiSrc == nil {
		return base
	}
	emoji := &text.GoTextFace{Source: f.emojiSrc, Size: size}
	faces := []text.Face{emoji, base}
	if bold {
		faces = []text.Face{base, emoji}
	}
	multi, err := text.NewMultiFace(faces...)
	if err != nil {
		return base
	}
	return multi
}
