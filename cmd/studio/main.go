package main

import (
	"context"
	"fmt"
	"image"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/milk9111/totestudio/aibridge"
	"github.com/milk9111/totestudio/artwork"
	"github.com/milk9111/totestudio/config"
	"github.com/milk9111/totestudio/gallery"
	"github.com/milk9111/totestudio/layer"
	"github.com/milk9111/totestudio/logging"
	"github.com/milk9111/totestudio/pasteboard"
	"github.com/milk9111/totestudio/presets"
	"github.com/milk9111/totestudio/snapshot"
	"github.com/milk9111/totestudio/studio"
	"github.com/milk9111/totestudio/upload"
)

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Bool("debug") {
		cfg.Log = logging.DevelopmentConfig()
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Zap()

	var (
		art     image.Image
		faces   *fontFaces
		library = presets.NewLibrary(cfg.Presets.Dir, presets.Canvas{Width: cfg.Canvas.Width, Height: cfg.Canvas.Height}, log.Named("presets"))
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		img, err := artwork.Load(cfg.Artwork.Path, int(cfg.Canvas.Width), int(cfg.Canvas.Height))
		if err != nil {
			return fmt.Errorf("load artwork: %w", err)
		}
		art = img
		return nil
	})
	g.Go(func() error {
		f, err := loadFontFaces(cfg.Editor.EmojiFont)
		if err != nil {
			return err
		}
		faces = f
		return nil
	})
	g.Go(func() error {
		// broken preset files are reported, not fatal
		if err := library.Load(); err != nil {
			log.Warn("some presets failed to load", logging.Error(err))
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	snapFonts, err := snapshot.NewFonts(faces.emojiTTF)
	if err != nil {
		return err
	}
	decoded := upload.NewCache()
	renderer := snapshot.New(snapFonts,
		snapshot.WithBackground(art),
		snapshot.WithImageSource(decoded.Image),
	)

	if cfg.AI.APIKey == "" {
		log.Warn("GEMINI_API_KEY is not set; AI generation will fail")
	}
	client := aibridge.NewClient(aibridge.Config{
		Endpoint: cfg.AI.Endpoint,
		Model:    cfg.AI.Model,
		APIKey:   cfg.AI.APIKey,
		Timeout:  cfg.AI.Timeout,
		Logger:   log.Named("ai"),
	})

	clip := &pasteboard.System{}
	if !clip.Available() {
		log.Warn("system clipboard unavailable; paste and copy are disabled")
	}
	session := studio.New(studio.Options{
		Width:         cfg.Canvas.Width,
		Height:        cfg.Canvas.Height,
		RotateStep:    cfg.Editor.RotateStep,
		IncludeChrome: cfg.Snapshot.IncludeChrome,
		Timeout:       cfg.AI.Timeout,
		Generator:     client,
		Rasterizer:    renderer,
		Gallery:       gallery.New(gallery.WithClipboard(clip), gallery.WithLogger(log.Named("gallery"))),
		Logger:        log.Named("studio"),
		StoreOpts:     []layer.Option{layerOrigin(cfg.Canvas)},
	})

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	game := NewStudioGame(gameDeps{
		cfg:      cfg,
		log:      log,
		session:  session,
		library:  library,
		renderer: renderer,
		faces:    faces,
		decoded:  decoded,
		art:      ebiten.NewImageFromImage(art),
		clip:     clip,
	})
	defer game.Close()

	log.Info("studio starting",
		zap.Float64("canvas_width", cfg.Canvas.Width),
		zap.Float64("canvas_height", cfg.Canvas.Height),
		zap.Int("presets", len(library.All())),
	)
	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("game loop: %w", err)
	}
	return nil
}

// layerOrigin keeps new layers at the same relative spot as on the
// reference 600px canvas.
func layerOrigin(c config.CanvasConfig) layer.Option {
	return layer.WithOrigin(c.Width*layer.DefaultX/600, c.Height*layer.DefaultY/600)
}

func main() {
	cmd := &cli.Command{
		Name:   "totestudio",
		Usage:  "Design a tote bag mockup and turn it into an AI product render",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "studio.yaml",
				Value:       "studio.yaml",
				Sources:     cli.EnvVars("TOTE_CONFIG_FILE"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "totestudio:", err)
		os.Exit(1)
	}
}
