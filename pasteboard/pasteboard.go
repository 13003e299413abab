// Package pasteboard is a thin wrapper over the system clipboard.
package pasteboard

import (
	"errors"
	"fmt"
	"sync"

	"golang.design/x/clipboard"
)

var ErrUnavailable = errors.New("pasteboard: system clipboard unavailable")

// System is the process-wide clipboard. Init is attempted lazily once;
// headless sessions get ErrUnavailable from every call.
type System struct {
	once sync.Once
	err  error
}

func (s *System) init() error {
	s.once.Do(func() {
		if err := clipboard.Init(); err != nil {
			s.err = fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	})
	return s.err
}

// Available reports whether the clipboard could be initialised.
func (s *System) Available() bool {
	return s.init() == nil
}

// WriteImage places PNG bytes on the clipboard.
func (s *System) WriteImage(png []byte) error {
	if err := s.init(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtImage, png)
	return nil
}

func (s *System) WriteText(text string) error {
	if err := s.init(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

// ReadImage returns PNG bytes, or nil when the clipboard holds no image.
func (s *System) ReadImage() ([]byte, error) {
	if err := s.init(); err != nil {
		return nil, err
	}
	return clipboard.Read(clipboard.FmtImage), nil
}

func (s *System) ReadText() (string, error) {
	if err := s.init(); err != nil {
		return "", err
	}
	return string(clipboard.Read(clipboard.FmtText)), nil
}
