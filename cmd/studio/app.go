package main

import (
	"errors"
	"io/fs"

	"github.com/ebitenui/ebitenui"
	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/milk9111/totestudio/artwork"
	"github.com/milk9111/totestudio/common"
	"github.com/milk9111/totestudio/config"
	"github.com/milk9111/totestudio/presets"
	"github.com/milk9111/totestudio/snapshot"
	"github.com/milk9111/totestudio/studio"
	"github.com/milk9111/totestudio/upload"
	"github.com/milk9111/totestudio/watch"
)

// StudioGame is the ebiten game: the sidebar UI on the left, the canvas or
// the gallery in the workspace on the right.
type StudioGame struct {
	cfg      *config.Config
	log      *zap.Logger
	session  *studio.Session
	library  *presets.Library
	renderer *snapshot.Renderer
	clip     clipboardReader

	ui      *ebitenui.UI
	sidebar *Sidebar
	canvas  *canvasView
	gallery *galleryView
	overlay *overlay

	presetWatch  *watch.Watcher
	artworkWatch *watch.Watcher

	width, height int
}

// clipboardReader is the part of the system clipboard the editor pastes from.
type clipboardReader interface {
	ReadImage() ([]byte, error)
	ReadText() (string, error)
}

type gameDeps struct {
	cfg      *config.Config
	log      *zap.Logger
	session  *studio.Session
	library  *presets.Library
	renderer *snapshot.Renderer
	faces    *fontFaces
	decoded  *upload.Cache
	art      *ebiten.Image
	clip     clipboardReader
}

func NewStudioGame(d gameDeps) *StudioGame {
	g := &StudioGame{
		cfg:      d.cfg,
		log:      d.log,
		session:  d.session,
		library:  d.library,
		renderer: d.renderer,
		clip:     d.clip,
		canvas:   newCanvasView(d.faces, d.decoded, d.log.Named("canvas")),
		gallery:  newGalleryView(d.faces, d.log.Named("gallery")),
		overlay:  newOverlay(d.faces),
		width:    d.cfg.Window.Width,
		height:   d.cfg.Window.Height,
	}
	g.canvas.artwork = d.art

	g.ui, g.sidebar = BuildStudioUI(d.faces, d.cfg.Window.SidebarWidth, d.cfg.Editor.Emojis, uiHandlers{
		onUpload:        g.upload,
		onEmoji:         func(glyph string) { g.session.AddEmoji(glyph) },
		onPreset:        func(p presets.Preset) { g.session.ApplyPreset(p) },
		onAddText:       func() { g.session.AddText() },
		onTextChanged:   func(content string) { g.session.SetSelectedText(content) },
		onFontSize:      func(size int) { g.session.SetSelectedFontSize(size) },
		onPromptChanged: g.session.SetPrompt,
		onMockup:        func() { _ = g.session.GenerateFromMockup() },
		onPurePrompt:    func() { _ = g.session.GenerateFromPrompt() },
		onToggleView:    func() { g.session.ToggleView() },
		onExport:        g.session.Export,
	})
	g.sidebar.SetPresets(g.library.All())
	g.startWatchers()
	return g
}

func (g *StudioGame) startWatchers() {
	if g.cfg.Presets.Watch && g.library.Dir() != "" {
		w, err := watch.NewWatcher(watch.Extensions(".yaml", ".yml", ".tengo"), g.library.Dir())
		if err != nil {
			g.log.Warn("preset watcher not started", zap.String("dir", g.library.Dir()), zap.Error(err))
		} else {
			g.presetWatch = w
		}
	}
	if g.cfg.Artwork.Watch && g.cfg.Artwork.Path != "" {
		w, err := watch.ForFile(g.cfg.Artwork.Path)
		if err != nil {
			g.log.Warn("artwork watcher not started", zap.String("path", g.cfg.Artwork.Path), zap.Error(err))
		} else {
			g.artworkWatch = w
		}
	}
}

// Close stops the watchers and background work.
func (g *StudioGame) Close() {
	if g.presetWatch != nil {
		_ = g.presetWatch.Close()
	}
	if g.artworkWatch != nil {
		_ = g.artworkWatch.Close()
	}
	g.session.Close()
}

func (g *StudioGame) workspace() common.Rect {
	sw := float64(g.cfg.Window.SidebarWidth)
	return common.Rect{X: sw, Width: float64(g.width) - sw, Height: float64(g.height)}
}

func (g *StudioGame) Update() error {
	g.session.Poll()
	g.overlay.Push(g.session.Notices()...)
	g.overlay.Update()
	g.pollWatchers()
	g.handleDrops()

	area := g.workspace()
	g.session.Composer().SetSurface(area, g.cfg.Canvas.Margin)

	g.ui.Update()

	typing := false
	if fw := g.ui.GetFocusedWidget(); fw != nil {
		if _, ok := fw.(*widget.TextInput); ok {
			typing = true
		}
	}

	mx, my := ebiten.CursorPosition()
	cursor := common.Point{X: float64(mx), Y: float64(my)}
	switch g.session.View() {
	case studio.ViewEditor:
		g.updateEditor(cursor, typing)
	case studio.ViewGallery:
		g.updateGallery(area, cursor)
	}

	g.sidebar.SyncText(g.session.SelectedText())
	g.sidebar.SetBusy(g.session.Busy())
	g.sidebar.SetView(g.session.View())
	return nil
}

func (g *StudioGame) updateEditor(cursor common.Point, typing bool) {
	comp := g.session.Composer()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && !ebuiinput.UIHovered {
		comp.PointerDown(cursor)
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		comp.PointerMove(cursor)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		comp.PointerUp(cursor)
	}

	if typing {
		return
	}
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyR):
		comp.RotateSelected()
	case ctrl && (inpututil.IsKeyJustPressed(ebiten.KeyDelete) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace)):
		comp.DeleteSelected()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.session.Store().ClearSelection()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyV) && comp.Surface().Contains(cursor):
		g.paste()
	}
}

func (g *StudioGame) updateGallery(area common.Rect, cursor common.Point) {
	designs := g.session.Gallery().All()
	if _, dy := ebiten.Wheel(); dy != 0 && area.Contains(cursor) {
		g.gallery.Scroll(area, len(designs), dy)
	}
	if ebuiinput.UIHovered {
		return
	}
	right := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight)
	if !right && !inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		return
	}
	id, action := g.gallery.HitTest(area, designs, cursor, right)
	switch action {
	case galleryOpen:
		if _, err := g.session.Gallery().Open(id); err != nil {
			g.log.Error("open design failed", zap.String("design", id), zap.Error(err))
			g.overlay.Push(studio.Notice{Level: studio.LevelError, Text: "Could not open that design."})
		}
	case galleryCopy:
		if err := g.session.Gallery().Copy(id); err != nil {
			g.log.Error("copy design failed", zap.String("design", id), zap.Error(err))
			g.overlay.Push(studio.Notice{Level: studio.LevelError, Text: "Could not copy that design."})
			return
		}
		g.overlay.Push(studio.Notice{Level: studio.LevelInfo, Text: "Design copied to clipboard."})
	}
}

func (g *StudioGame) upload() {
	path, err := openImageDialog()
	if err != nil {
		g.log.Warn("file dialog failed", zap.Error(err))
		g.overlay.Push(studio.Notice{Level: studio.LevelInfo, Text: "Drop an image onto the window to upload it."})
		return
	}
	if path != "" {
		g.session.AddImageFile(path)
	}
}

func (g *StudioGame) paste() {
	if g.clip == nil {
		return
	}
	img, imgErr := g.clip.ReadImage()
	txt, txtErr := g.clip.ReadText()
	if imgErr != nil && txtErr != nil {
		g.log.Debug("clipboard unavailable", zap.Error(errors.Join(imgErr, txtErr)))
		return
	}
	g.session.Paste(img, txt)
}

// handleDrops adds an image layer for every image dropped on the window.
func (g *StudioGame) handleDrops() {
	dropped := ebiten.DroppedFiles()
	if dropped == nil {
		return
	}
	entries, err := fs.ReadDir(dropped, ".")
	if err != nil {
		g.log.Warn("dropped files unreadable", zap.Error(err))
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := fs.ReadFile(dropped, e.Name())
		if err == nil {
			_, err = g.session.AddImageBytes(data)
		}
		if err != nil {
			g.log.Warn("dropped file rejected", zap.String("file", e.Name()), zap.Error(err))
			g.overlay.Push(studio.Notice{Level: studio.LevelError, Text: e.Name() + " is not an image."})
		}
	}
}

func (g *StudioGame) pollWatchers() {
	if g.presetWatch != nil {
	drain:
		for {
			select {
			case path, ok := <-g.presetWatch.Events:
				if !ok {
					g.presetWatch = nil
					break drain
				}
				if err := g.library.Reload(path); err != nil {
					g.log.Warn("preset reload failed", zap.String("path", path), zap.Error(err))
					continue
				}
				g.sidebar.SetPresets(g.library.All())
			case err, ok := <-g.presetWatch.Errors:
				if !ok {
					g.presetWatch = nil
					break drain
				}
				g.log.Warn("preset watcher", zap.Error(err))
			default:
				break drain
			}
		}
	}
	if g.artworkWatch != nil {
		select {
		case _, ok := <-g.artworkWatch.Events:
			if !ok {
				g.artworkWatch = nil
				return
			}
			g.reloadArtwork()
		default:
		}
	}
}

func (g *StudioGame) reloadArtwork() {
	img, err := artwork.Load(g.cfg.Artwork.Path, int(g.cfg.Canvas.Width), int(g.cfg.Canvas.Height))
	if err != nil {
		g.log.Warn("artwork reload failed", zap.String("path", g.cfg.Artwork.Path), zap.Error(err))
		return
	}
	g.canvas.SetArtwork(img)
	g.renderer.SetBackground(img)
	g.log.Info("artwork reloaded", zap.String("path", g.cfg.Artwork.Path))
}

func (g *StudioGame) Draw(screen *ebiten.Image) {
	screen.Fill(colorWorkspace)
	area := g.workspace()
	switch g.session.View() {
	case studio.ViewEditor:
		comp := g.session.Composer()
		g.canvas.Draw(screen, comp.Scene(true), comp.Viewport())
	case studio.ViewGallery:
		g.gallery.Draw(screen, area, g.session.Gallery().All())
	}
	g.overlay.Draw(screen, area, g.session.Busy(), g.session.Loading())
	g.ui.Draw(screen)
}

func (g *StudioGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
