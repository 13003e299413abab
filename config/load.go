// Package config loads the studio configuration: a YAML file with ${ENV}
// expansion, overlaid with a handful of environment variables.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Validator is implemented by configuration types that can check themselves.
type Validator interface {
	Validate() error
}

// LoadFile decodes a YAML file into target after expanding environment
// variables, then validates it when target implements Validator.
func LoadFile[T any](filename string, target *T) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", filename, err)
	}
	return Decode(data, target)
}

// Decode is LoadFile for in-memory YAML.
func Decode[T any](data []byte, target *T) error {
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), target); err != nil {
		return fmt.Errorf("config: parse: %w", err)
	}
	if v, ok := any(target).(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("config: validation failed: %w", err)
		}
	}
	return nil
}

// LoadFileOrDefault loads filename into target when it exists; a missing file
// leaves target untouched.
func LoadFileOrDefault[T any](filename string, target *T) error {
	if filename == "" {
		return nil
	}
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return LoadFile(filename, target)
}
