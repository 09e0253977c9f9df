// Package config provides configuration helpers and TOML parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FileConfig represents the configuration file.
type FileConfig struct {
	Data    DataConfig        `toml:"data" yaml:"data"`
	Filters FilterConfig      `toml:"filters" yaml:"filters"`
	Cities  map[string]string `toml:"cities" yaml:"cities" validate:"dive,keys,required,endkeys,required"`
	Log     LogConfig         `toml:"log" yaml:"log"`
}

// DataConfig maps data source settings.
type DataConfig struct {
	Dir      *string `toml:"dir" yaml:"dir" validate:"omitempty,min=1"`
	PageSize *int    `toml:"page-size" yaml:"page-size" validate:"omitempty,gt=0"`
}

// FilterConfig maps default selections for the stats commands.
type FilterConfig struct {
	City  *string `toml:"city" yaml:"city" validate:"omitempty,min=1"`
	Month *string `toml:"month" yaml:"month" validate:"omitempty,min=1"`
	Day   *string `toml:"day" yaml:"day" validate:"omitempty,min=1"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level" yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
}

var validate = validator.New()

// LoadConfig reads a TOML (or YAML, by extension) config from the given path.
// Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		raw, err := os.ReadFile(path)
		if err != nil {
			return FileConfig{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
		}
	default:
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
		}
	}
	if err := Validate(cfg); err != nil {
		return FileConfig{}, err
	}
	return cfg, nil
}

// Validate checks value constraints of a decoded config.
func Validate(cfg FileConfig) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q check", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
