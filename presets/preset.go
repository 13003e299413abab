// Package presets loads reusable layer arrangements from YAML files and
// tengo scripts and applies them to a layer store.
package presets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/totestudio/layer"
)

// Preset is a named list of layers.
type Preset struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Layers      []LayerSpec `yaml:"layers"`

	// Source is the file the preset came from.
	Source string `yaml:"-"`
}

// LayerSpec describes one layer. Unset fields keep the store's defaults.
type LayerSpec struct {
	Kind     string   `yaml:"kind"`
	Content  string   `yaml:"content"`
	X        *float64 `yaml:"x"`
	Y        *float64 `yaml:"y"`
	Width    *float64 `yaml:"width"`
	Height   *float64 `yaml:"height"`
	Rotation *float64 `yaml:"rotation"`
	FontSize *int     `yaml:"font_size"`
}

func (p *Preset) Validate() error {
	if err := validation.ValidateStruct(p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Layers, validation.Required),
	); err != nil {
		return err
	}
	for i := range p.Layers {
		if err := p.Layers[i].Validate(); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return nil
}

func (s *LayerSpec) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Kind, validation.Required, validation.In("text", "emoji", "image")),
		validation.Field(&s.Content, validation.Required),
	)
}

// Canvas is exposed to preset scripts.
type Canvas struct {
	Width  float64
	Height float64
}

// LoadFile reads a preset from a .yaml/.yml or .tengo file.
func LoadFile(path string, canvas Canvas) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("presets: load %s: %w", path, err)
	}
	return Parse(path, data, canvas)
}

// Parse decodes a preset; the file name picks the format.
func Parse(name string, data []byte, canvas Canvas) (Preset, error) {
	var (
		p   Preset
		err error
	)
	switch {
	case IsSpecFile(name):
		err = yaml.Unmarshal(data, &p)
	case IsScriptFile(name):
		p, err = runScript(data, canvas)
	default:
		return Preset{}, fmt.Errorf("presets: %s: unsupported file type", name)
	}
	if err != nil {
		return Preset{}, fmt.Errorf("presets: %s: %w", name, err)
	}
	if err := p.Validate(); err != nil {
		return Preset{}, fmt.Errorf("presets: %s: %w", name, err)
	}
	p.Source = name
	return p, nil
}

// Apply adds the preset's layers to store in order. The last one ends up
// selected. It returns the new ids.
func Apply(store *layer.Store, p Preset) []layer.ID {
	ids := make([]layer.ID, 0, len(p.Layers))
	for _, s := range p.Layers {
		kind, err := layer.ParseKind(s.Kind)
		if err != nil {
			continue
		}
		id := store.Add(kind, s.Content)
		store.Update(id, s.patch())
		ids = append(ids, id)
	}
	return ids
}

func (s LayerSpec) patch() layer.Patch {
	p := layer.Patch{
		X:        s.X,
		Y:        s.Y,
		Width:    s.Width,
		Height:   s.Height,
		Rotation: s.Rotation,
	}
	if s.FontSize != nil {
		size := layer.ClampFontSize(*s.FontSize)
		p.FontSize = &size
	}
	return p
}

func IsSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func IsScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
