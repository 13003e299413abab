package config

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/kelseyhightower/envconfig"

	"github.com/milk9111/totestudio/logging"
)

// Config is the full studio configuration.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Canvas   CanvasConfig   `yaml:"canvas"`
	Artwork  ArtworkConfig  `yaml:"artwork"`
	Editor   EditorConfig   `yaml:"editor"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	AI       AIConfig       `yaml:"ai"`
	Presets  PresetsConfig  `yaml:"presets"`
	Log      logging.Config `yaml:"log"`
}

// Validate validates every section.
func (c *Config) Validate() error {
	if err := c.Window.Validate(); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	if err := c.Canvas.Validate(); err != nil {
		return fmt.Errorf("canvas: %w", err)
	}
	if err := c.Editor.Validate(); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	if err := c.AI.Validate(); err != nil {
		return fmt.Errorf("ai: %w", err)
	}
	return nil
}

type WindowConfig struct {
	Title        string `yaml:"title"`
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	SidebarWidth int    `yaml:"sidebar_width"`
}

func (c *WindowConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Width, validation.Required, validation.Min(320)),
		validation.Field(&c.Height, validation.Required, validation.Min(240)),
		validation.Field(&c.SidebarWidth, validation.Required, validation.Min(120)),
	)
}

// CanvasConfig sizes the design canvas in canvas pixels. Margin is screen
// space kept around the canvas inside the workspace.
type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Margin float64 `yaml:"margin"`
}

func (c *CanvasConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Width, validation.Required, validation.Min(1.0)),
		validation.Field(&c.Height, validation.Required, validation.Min(1.0)),
		validation.Field(&c.Margin, validation.Min(0.0)),
	)
}

// ArtworkConfig points at the base tote image. An empty path uses the
// built-in silhouette.
type ArtworkConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// EditorConfig tunes editing. EmojiFont optionally points at a TTF with
// colour-free emoji glyphs; the bundled Go fonts draw most emoji as boxes.
type EditorConfig struct {
	RotateStep float64  `yaml:"rotate_step"`
	Emojis     []string `yaml:"emojis"`
	EmojiFont  string   `yaml:"emoji_font"`
}

func (c *EditorConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.RotateStep, validation.Required),
		validation.Field(&c.Emojis, validation.Required),
	)
}

type SnapshotConfig struct {
	IncludeChrome bool `yaml:"include_chrome"`
}

// AIConfig configures the image generation client. APIKey, Model and
// Endpoint can be overridden from the environment.
type AIConfig struct {
	Endpoint string        `yaml:"endpoint" envconfig:"TOTE_AI_ENDPOINT"`
	Model    string        `yaml:"model" envconfig:"TOTE_AI_MODEL"`
	APIKey   string        `yaml:"api_key" envconfig:"GEMINI_API_KEY"`
	Timeout  time.Duration `yaml:"timeout" ignored:"true"`
}

func (c *AIConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Endpoint, validation.Required),
		validation.Field(&c.Model, validation.Required),
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Second)),
	)
}

type PresetsConfig struct {
	Dir   string `yaml:"dir"`
	Watch bool   `yaml:"watch"`
}

// NewDefaultConfig returns the configuration used when no file is given.
func NewDefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:        "Tote Studio",
			Width:        1280,
			Height:       800,
			SidebarWidth: 320,
		},
		Canvas: CanvasConfig{
			Width:  600,
			Height: 600,
			Margin: 24,
		},
		Editor: EditorConfig{
			RotateStep: 15,
			Emojis:     []string{"🔥", "✨", "🌸", "🌈", "⭐", "💖", "🍀", "🌊", "☀️", "🎨", "🦋", "🍓"},
		},
		AI: AIConfig{
			Endpoint: "https://generativelanguage.googleapis.com/v1beta",
			Model:    "gemini-2.5-flash-image",
			Timeout:  120 * time.Second,
		},
		Presets: PresetsConfig{
			Dir:   "studio-presets",
			Watch: true,
		},
		Log: logging.DefaultConfig(),
	}
}

// Load builds the configuration: defaults, then the YAML file when path is
// set and exists, then environment overrides. The result is validated.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	if err := LoadFileOrDefault(path, cfg); err != nil {
		return nil, err
	}
	if err := envconfig.Process("", &cfg.AI); err != nil {
		return nil, fmt.Errorf("config: env: %w", err)
	}
	if err := envconfig.Process("", &cfg.Log); err != nil {
		return nil, fmt.Errorf("config: env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}
