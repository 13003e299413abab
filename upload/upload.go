// Package upload turns user-supplied image files into data URIs for image
// layers and decodes them back for drawing.
package upload

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var (
	ErrNotImage   = errors.New("upload: file is not an image")
	ErrBadDataURI = errors.New("upload: malformed data uri")
)

// MaxFileSize bounds what ReadFile will accept.
const MaxFileSize = 32 << 20

// File is an image read from disk.
type File struct {
	Name     string
	MIMEType string
	Data     []byte
}

// DataURI returns the file as a base64 data URI.
func (f File) DataURI() string {
	return EncodeDataURI(f.MIMEType, f.Data)
}

// ReadFile reads path and rejects anything that does not sniff as an image.
func ReadFile(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, fmt.Errorf("upload: %w", err)
	}
	if info.Size() > MaxFileSize {
		return File{}, fmt.Errorf("upload: %s is larger than %d bytes", path, MaxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("upload: %w", err)
	}
	f, err := FromBytes(data)
	if err != nil {
		return File{}, err
	}
	f.Name = path
	return f, nil
}

// FromBytes sniffs data and wraps it as a File.
func FromBytes(data []byte) (File, error) {
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return File{}, fmt.Errorf("%w (detected %s)", ErrNotImage, mt.String())
	}
	return File{MIMEType: baseType(mt.String()), Data: data}, nil
}

func EncodeDataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI splits a base64 data URI into its MIME type and payload.
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, ErrBadDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrBadDataURI
	}
	mimeType, enc, _ := strings.Cut(meta, ";")
	if enc != "base64" {
		return "", nil, fmt.Errorf("%w: unsupported encoding %q", ErrBadDataURI, enc)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrBadDataURI, err)
	}
	return mimeType, data, nil
}

// DecodeImage decodes an image data URI.
func DecodeImage(uri string) (image.Image, error) {
	_, data, err := DecodeDataURI(uri)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("upload: decode image: %w", err)
	}
	return img, nil
}

func baseType(s string) string {
	t, _, _ := strings.Cut(s, ";")
	return t
}
