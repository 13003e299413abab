//go:build !dialog

package main

import "errors"

// openImageDialog is a stub used when the native dialog build tag isn't set.
// Images can still be dropped onto the window.
func openImageDialog() (string, error) {
	return "", errors.New("native file dialog unavailable; build with -tags dialog to enable")
}
