package presets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"sync"

	"go.uber.org/zap"
)

//go:embed builtin/*.yaml builtin/*.tengo
var BuiltinFS embed.FS

// Library holds every known preset keyed by source file. Files on disk take
// precedence over built-ins with the same base name.
type Library struct {
	dir    string
	canvas Canvas
	log    *zap.Logger

	mu      sync.RWMutex
	presets map[string]Preset
}

func NewLibrary(dir string, canvas Canvas, log *zap.Logger) *Library {
	if log == nil {
		log = zap.NewNop()
	}
	return &Library{dir: dir, canvas: canvas, log: log, presets: make(map[string]Preset)}
}

func (l *Library) Dir() string { return l.dir }

// Load reads the built-ins and then the directory. Broken files are logged
// and skipped; the returned error joins their failures.
func (l *Library) Load() error {
	var errs []error
	loaded := make(map[string]Preset)

	builtins, _ := fs.Glob(BuiltinFS, "builtin/*")
	for _, name := range builtins {
		data, err := BuiltinFS.ReadFile(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		p, err := Parse(name, data, l.canvas)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		loaded[path.Base(name)] = p
	}

	if l.dir != "" {
		entries, err := os.ReadDir(l.dir)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			errs = append(errs, fmt.Errorf("presets: %w", err))
		default:
			for _, e := range entries {
				if e.IsDir() || !(IsSpecFile(e.Name()) || IsScriptFile(e.Name())) {
					continue
				}
				p, err := LoadFile(filepath.Join(l.dir, e.Name()), l.canvas)
				if err != nil {
					l.log.Warn("preset skipped", zap.String("file", e.Name()), zap.Error(err))
					errs = append(errs, err)
					continue
				}
				loaded[e.Name()] = p
			}
		}
	}

	l.mu.Lock()
	l.presets = loaded
	l.mu.Unlock()
	l.log.Info("presets loaded", zap.Int("count", len(loaded)))
	return errors.Join(errs...)
}

// Reload refreshes one file after a change on disk. A file that no longer
// exists is dropped, uncovering the built-in of the same name if there is one.
func (l *Library) Reload(file string) error {
	key := filepath.Base(file)
	if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
		builtin, hasBuiltin := l.builtin(key)
		l.mu.Lock()
		if hasBuiltin {
			l.presets[key] = builtin
		} else {
			delete(l.presets, key)
		}
		l.mu.Unlock()
		l.log.Info("preset removed", zap.String("file", key))
		return nil
	}
	p, err := LoadFile(file, l.canvas)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.presets[key] = p
	l.mu.Unlock()
	l.log.Info("preset reloaded", zap.String("file", key), zap.String("name", p.Name))
	return nil
}

func (l *Library) builtin(name string) (Preset, bool) {
	data, err := BuiltinFS.ReadFile(path.Join("builtin", name))
	if err != nil {
		return Preset{}, false
	}
	p, err := Parse(name, data, l.canvas)
	if err != nil {
		return Preset{}, false
	}
	return p, true
}

// All returns the presets sorted by name.
func (l *Library) All() []Preset {
	l.mu.RLock()
	out := make([]Preset, 0, len(l.presets))
	for _, p := range l.presets {
		out = append(out, p)
	}
	l.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (l *Library) Find(name string) (Preset, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, p := range l.presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
