//go:build dialog

package main

import (
	"errors"

	"github.com/sqweek/dialog"
)

// openImageDialog asks for an image file. A cancelled dialog returns an
// empty path and no error.
func openImageDialog() (string, error) {
	path, err := dialog.File().
		Title("Upload image").
		Filter("Images", "png", "jpg", "jpeg", "gif", "webp", "bmp").
		Load()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", nil
	}
	return path, err
}
