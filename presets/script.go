package presets

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// runScript executes a tengo preset. The script sees canvas_width and
// canvas_height and must define name and layers; description is optional.
func runScript(src []byte, canvas Canvas) (Preset, error) {
	script := tengo.NewScript(src)
	_ = script.Add("canvas_width", canvas.Width)
	_ = script.Add("canvas_height", canvas.Height)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Run()
	if err != nil {
		return Preset{}, err
	}

	var p Preset
	if compiled.IsDefined("name") {
		p.Name = compiled.Get("name").String()
	}
	if compiled.IsDefined("description") {
		p.Description = compiled.Get("description").String()
	}
	if !compiled.IsDefined("layers") {
		return Preset{}, fmt.Errorf("script does not define layers")
	}
	for i, raw := range compiled.Get("layers").Array() {
		m, ok := raw.(map[string]any)
		if !ok {
			return Preset{}, fmt.Errorf("layers[%d]: expected map, got %T", i, raw)
		}
		spec, err := specFromMap(m)
		if err != nil {
			return Preset{}, fmt.Errorf("layers[%d]: %w", i, err)
		}
		p.Layers = append(p.Layers, spec)
	}
	return p, nil
}

func specFromMap(m map[string]any) (LayerSpec, error) {
	var s LayerSpec
	s.Kind, _ = m["kind"].(string)
	s.Content, _ = m["content"].(string)

	floats := map[string]**float64{
		"x":        &s.X,
		"y":        &s.Y,
		"width":    &s.Width,
		"height":   &s.Height,
		"rotation": &s.Rotation,
	}
	for key, dst := range floats {
		v, ok := m[key]
		if !ok {
			continue
		}
		f, ok := number(v)
		if !ok {
			return s, fmt.Errorf("%s: expected number, got %T", key, v)
		}
		*dst = &f
	}
	if v, ok := m["font_size"]; ok {
		f, ok := number(v)
		if !ok {
			return s, fmt.Errorf("font_size: expected number, got %T", v)
		}
		size := int(f)
		s.FontSize = &size
	}
	return s, nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
