// Package gallery keeps the generated designs of a session, newest first.
package gallery

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pkg/browser"
	"go.uber.org/zap"

	"github.com/milk9111/totestudio/upload"
)

var ErrNotFound = errors.New("gallery: design not found")

// Design is one generated image.
type Design struct {
	ID        string
	Data      []byte
	MIMEType  string
	Prompt    string
	CreatedAt time.Time
}

func (d Design) DataURI() string {
	return upload.EncodeDataURI(d.MIMEType, d.Data)
}

// Clipboard receives copied designs.
type Clipboard interface {
	WriteImage(png []byte) error
}

type Option func(*Gallery)

// WithOpener replaces the function that shows a file to the user.
func WithOpener(open func(path string) error) Option {
	return func(g *Gallery) { g.open = open }
}

func WithClipboard(c Clipboard) Option {
	return func(g *Gallery) { g.clip = c }
}

// WithDir sets where opened designs are written. Defaults to a fresh temp dir.
func WithDir(dir string) Option {
	return func(g *Gallery) { g.dir = dir }
}

func WithLogger(l *zap.Logger) Option {
	return func(g *Gallery) { g.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(g *Gallery) { g.now = now }
}

// Gallery is append-only. Reads may happen from any goroutine.
type Gallery struct {
	mu      sync.RWMutex
	designs []Design

	open func(path string) error
	clip Clipboard
	dir  string
	log  *zap.Logger
	now  func() time.Time
}

func New(opts ...Option) *Gallery {
	g := &Gallery{
		open: browser.OpenFile,
		log:  zap.NewNop(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Add records a design at the front and returns it.
func (g *Gallery) Add(data []byte, mimeType, prompt string) Design {
	d := Design{
		ID:        ulid.Make().String(),
		Data:      data,
		MIMEType:  mimeType,
		Prompt:    prompt,
		CreatedAt: g.now(),
	}
	g.mu.Lock()
	g.designs = append([]Design{d}, g.designs...)
	g.mu.Unlock()
	g.log.Info("design added", zap.String("design", d.ID), zap.String("prompt", prompt))
	return d
}

// All returns the designs newest first.
func (g *Gallery) All() []Design {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Design, len(g.designs))
	copy(out, g.designs)
	return out
}

func (g *Gallery) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.designs)
}

func (g *Gallery) Get(id string) (Design, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, d := range g.designs {
		if d.ID == id {
			return d, true
		}
	}
	return Design{}, false
}

// Open writes the design to disk and hands it to the system viewer.
func (g *Gallery) Open(id string) (string, error) {
	d, ok := g.Get(id)
	if !ok {
		return "", ErrNotFound
	}
	path, err := g.write(d)
	if err != nil {
		return "", err
	}
	if err := g.open(path); err != nil {
		return path, fmt.Errorf("gallery: open %s: %w", path, err)
	}
	g.log.Debug("design opened", zap.String("design", id), zap.String("path", path))
	return path, nil
}

// Copy places the design on the clipboard. Clipboards take PNG, so other
// formats are converted first.
func (g *Gallery) Copy(id string) error {
	d, ok := g.Get(id)
	if !ok {
		return ErrNotFound
	}
	if g.clip == nil {
		return errors.New("gallery: no clipboard configured")
	}
	data, err := asPNG(d)
	if err != nil {
		return fmt.Errorf("gallery: copy: %w", err)
	}
	if err := g.clip.WriteImage(data); err != nil {
		return fmt.Errorf("gallery: copy: %w", err)
	}
	return nil
}

func asPNG(d Design) ([]byte, error) {
	if d.MIMEType == "image/png" {
		return d.Data, nil
	}
	img, err := upload.DecodeImage(d.DataURI())
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Gallery) write(d Design) (string, error) {
	g.mu.Lock()
	if g.dir == "" {
		dir, err := os.MkdirTemp("", "totestudio-")
		if err != nil {
			g.mu.Unlock()
			return "", fmt.Errorf("gallery: %w", err)
		}
		g.dir = dir
	}
	dir := g.dir
	g.mu.Unlock()

	path := filepath.Join(dir, d.ID+extension(d.MIMEType))
	if err := os.WriteFile(path, d.Data, 0o644); err != nil {
		return "", fmt.Errorf("gallery: write %s: %w", path, err)
	}
	return path, nil
}

func extension(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
