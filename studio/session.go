// Package studio is one editing session: the layer store, the drag
// controller and the composer, plus the slower work that hangs off them
// (file loading, AI generation) and the notices shown to the user.
//
// A Session is driven from a single goroutine. Background work never
// touches session state directly; it posts a closure that Poll applies.
package studio

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/milk9111/totestudio/aibridge"
	"github.com/milk9111/totestudio/composer"
	"github.com/milk9111/totestudio/drag"
	"github.com/milk9111/totestudio/gallery"
	"github.com/milk9111/totestudio/layer"
	"github.com/milk9111/totestudio/presets"
	"github.com/milk9111/totestudio/upload"
)

const (
	DefaultText         = "Your Text"
	DefaultDesignPrompt = "Custom designer tote"

	MsgEmptyPrompt  = "Please enter a prompt for the AI!"
	MsgMockupFailed = "Error generating AI design. Please try again."
	MsgPromptFailed = "Error generating AI design."
	MsgExport       = "Ready to order! This feature is coming soon."
	MsgBusy         = "A design is already being generated."
)

var ErrBusy = errors.New("studio: a generation is already running")

// Generator produces product renders.
type Generator interface {
	FromMockup(ctx context.Context, mockupPNG []byte, prompt string) (aibridge.Image, error)
	FromPrompt(ctx context.Context, prompt string) (aibridge.Image, error)
}

// Rasterizer turns a scene into PNG bytes.
type Rasterizer interface {
	RenderPNG(sc composer.Scene) ([]byte, error)
}

type View int

const (
	ViewEditor View = iota
	ViewGallery
)

type Level int

const (
	LevelInfo Level = iota
	LevelError
)

type Notice struct {
	Level Level
	Text  string
}

type Options struct {
	Width      float64
	Height     float64
	RotateStep float64
	// IncludeChrome keeps the selection ring and controls in AI snapshots.
	IncludeChrome bool
	// Timeout bounds one generation; zero leaves it to the generator.
	Timeout    time.Duration
	Generator  Generator
	Rasterizer Rasterizer
	Gallery    *gallery.Gallery
	Logger     *zap.Logger
	StoreOpts  []layer.Option
}

type Session struct {
	store    *layer.Store
	drag     *drag.Controller
	composer *composer.Composer
	gallery  *gallery.Gallery

	gen           Generator
	raster        Rasterizer
	includeChrome bool
	timeout       time.Duration
	log           *zap.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	results chan func()

	busy    bool
	loading int
	prompt  string
	view    View
	notices []Notice
}

func New(opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Gallery == nil {
		opts.Gallery = gallery.New(gallery.WithLogger(opts.Logger))
	}
	store := layer.NewStore(opts.StoreOpts...)
	ctl := drag.NewController(store)
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		store: store,
		drag:  ctl,
		composer: composer.New(store, ctl, composer.Options{
			Width:      opts.Width,
			Height:     opts.Height,
			RotateStep: opts.RotateStep,
			Logger:     opts.Logger.Named("composer"),
		}),
		gallery:       opts.Gallery,
		gen:           opts.Generator,
		raster:        opts.Rasterizer,
		includeChrome: opts.IncludeChrome,
		timeout:       opts.Timeout,
		log:           opts.Logger,
		ctx:           ctx,
		cancel:        cancel,
		results:       make(chan func(), 16),
	}
}

func (s *Session) Store() *layer.Store          { return s.store }
func (s *Session) Drag() *drag.Controller       { return s.drag }
func (s *Session) Composer() *composer.Composer { return s.composer }
func (s *Session) Gallery() *gallery.Gallery    { return s.gallery }

func (s *Session) AddText() layer.ID {
	return s.add(layer.KindText, DefaultText)
}

func (s *Session) AddEmoji(glyph string) layer.ID {
	return s.add(layer.KindEmoji, glyph)
}

// AddImage adds an image layer from a data URI.
func (s *Session) AddImage(dataURI string) layer.ID {
	return s.add(layer.KindImage, dataURI)
}

func (s *Session) add(kind layer.Kind, content string) layer.ID {
	id := s.store.Add(kind, content)
	s.log.Debug("layer added", zap.String("layer", string(id)), zap.Stringer("kind", kind))
	return id
}

// AddImageFile reads path in the background; the layer appears on a later
// Poll, or a notice explains why it did not.
func (s *Session) AddImageFile(path string) {
	s.loading++
	s.spawn(func(ctx context.Context) func() {
		f, err := upload.ReadFile(path)
		return func() {
			s.loading--
			if err != nil {
				s.log.Warn("image upload failed", zap.String("path", path), zap.Error(err))
				s.notify(LevelError, uploadMessage(err))
				return
			}
			s.AddImage(f.DataURI())
		}
	})
}

// AddImageBytes adds an image layer from raw file bytes, such as a dropped
// file or a clipboard image.
func (s *Session) AddImageBytes(data []byte) (layer.ID, error) {
	f, err := upload.FromBytes(data)
	if err != nil {
		return "", err
	}
	return s.AddImage(f.DataURI()), nil
}

// Paste adds an image layer for image bytes, otherwise a text layer for
// non-empty text.
func (s *Session) Paste(imageData []byte, text string) (layer.ID, bool) {
	if len(imageData) > 0 {
		if id, err := s.AddImageBytes(imageData); err == nil {
			return id, true
		}
	}
	if text = strings.TrimSpace(text); text != "" {
		return s.add(layer.KindText, text), true
	}
	return "", false
}

func uploadMessage(err error) string {
	if errors.Is(err, upload.ErrNotImage) {
		return "That file is not an image."
	}
	return "Could not read that file."
}

// SelectedText returns the selected layer when it is a text layer.
func (s *Session) SelectedText() (layer.Layer, bool) {
	l, ok := s.store.SelectedLayer()
	if !ok || l.Kind != layer.KindText {
		return layer.Layer{}, false
	}
	return l, true
}

func (s *Session) SetSelectedText(content string) bool {
	l, ok := s.SelectedText()
	if !ok {
		return false
	}
	s.store.Update(l.ID, layer.Text(content))
	return true
}

// SetSelectedFontSize clamps size to the editable range.
func (s *Session) SetSelectedFontSize(size int) bool {
	l, ok := s.SelectedText()
	if !ok {
		return false
	}
	s.store.Update(l.ID, layer.Font(layer.ClampFontSize(size)))
	return true
}

func (s *Session) ApplyPreset(p presets.Preset) []layer.ID {
	ids := presets.Apply(s.store, p)
	s.log.Info("preset applied", zap.String("preset", p.Name), zap.Int("layers", len(ids)))
	return ids
}

func (s *Session) Prompt() string     { return s.prompt }
func (s *Session) SetPrompt(p string) { s.prompt = p }

func (s *Session) View() View     { return s.view }
func (s *Session) SetView(v View) { s.view = v }
func (s *Session) ToggleView() View {
	if s.view == ViewEditor {
		s.view = ViewGallery
	} else {
		s.view = ViewEditor
	}
	return s.view
}

// Busy reports whether a generation is in flight.
func (s *Session) Busy() bool { return s.busy }

// Loading reports how many files are still being read.
func (s *Session) Loading() int { return s.loading }

func (s *Session) Export() {
	s.notify(LevelInfo, MsgExport)
}

// GenerateFromMockup snapshots the canvas now and sends it with the current
// prompt.
func (s *Session) GenerateFromMockup() error {
	if s.busy {
		s.notify(LevelInfo, MsgBusy)
		return ErrBusy
	}
	scene := s.composer.Scene(s.includeChrome)
	prompt := s.prompt
	s.busy = true
	s.spawn(func(ctx context.Context) func() {
		img, err := s.mockup(ctx, scene, prompt)
		return func() {
			label := prompt
			if strings.TrimSpace(label) == "" {
				label = DefaultDesignPrompt
			}
			s.finish(img, label, err, MsgMockupFailed)
		}
	})
	return nil
}

func (s *Session) mockup(ctx context.Context, scene composer.Scene, prompt string) (aibridge.Image, error) {
	if s.raster == nil || s.gen == nil {
		return aibridge.Image{}, errors.New("studio: generation is not configured")
	}
	png, err := s.raster.RenderPNG(scene)
	if err != nil {
		return aibridge.Image{}, err
	}
	return s.gen.FromMockup(ctx, png, prompt)
}

// GenerateFromPrompt generates from the prompt alone. An empty prompt is
// rejected before anything is sent.
func (s *Session) GenerateFromPrompt() error {
	if s.busy {
		s.notify(LevelInfo, MsgBusy)
		return ErrBusy
	}
	prompt := s.prompt
	if strings.TrimSpace(prompt) == "" {
		s.notify(LevelError, MsgEmptyPrompt)
		return aibridge.ErrEmptyPrompt
	}
	s.busy = true
	s.spawn(func(ctx context.Context) func() {
		var (
			img aibridge.Image
			err error
		)
		if s.gen == nil {
			err = errors.New("studio: generation is not configured")
		} else {
			img, err = s.gen.FromPrompt(ctx, prompt)
		}
		return func() { s.finish(img, prompt, err, MsgPromptFailed) }
	})
	return nil
}

func (s *Session) finish(img aibridge.Image, prompt string, err error, failMsg string) {
	s.busy = false
	if err != nil {
		s.log.Error("generation failed", zap.Error(err))
		s.notify(LevelError, failMsg)
		return
	}
	d := s.gallery.Add(img.Data, img.MIMEType, prompt)
	s.view = ViewGallery
	s.log.Info("generation finished", zap.String("design", d.ID))
}

// spawn runs work off the UI goroutine. work returns the closure to apply on
// the next Poll.
func (s *Session) spawn(work func(ctx context.Context) func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx := s.ctx
		if s.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}
		apply := work(ctx)
		select {
		case s.results <- apply:
		case <-s.ctx.Done():
		}
	}()
}

// Poll applies finished background work. Call it once per frame.
func (s *Session) Poll() int {
	n := 0
	for {
		select {
		case apply := <-s.results:
			apply()
			n++
		default:
			return n
		}
	}
}

// Wait blocks until every background task has posted its result.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close cancels in-flight work and waits for it to stop.
func (s *Session) Close() {
	s.cancel()
	s.wg.Wait()
}

func (s *Session) notify(level Level, text string) {
	s.notices = append(s.notices, Notice{Level: level, Text: text})
}

// Notices drains the pending notices.
func (s *Session) Notices() []Notice {
	out := s.notices
	s.notices = nil
	return out
}
