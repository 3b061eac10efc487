// Package config loads and validates the command-line configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alnah/go-novelfmt/internal/fileutil"
	"github.com/alnah/go-novelfmt/internal/hints"
	"github.com/alnah/go-novelfmt/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field limits.
const (
	MaxPathLength      = 4096 // Linux PATH_MAX
	MaxAssetNameLength = 64   // Style or template set name
	MaxTitleLength     = 200  // Illustration page title

	MaxMinContentLength = 10000 // Runes
	MaxWorkers          = 64
)

// Log formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Defaults applied before the config file is read.
const (
	DefaultStyle             = "main"
	DefaultTemplateSet       = "default"
	DefaultMinContentLength  = 10
	DefaultIllustrationTitle = "插图"
	DefaultLogLevel          = "info"
)

// Config holds all configuration for the command-line tool.
type Config struct {
	Input         InputConfig        `yaml:"input"`
	Output        OutputConfig       `yaml:"output"`
	Assets        AssetsConfig       `yaml:"assets"`
	Chapter       ChapterConfig      `yaml:"chapter"`
	Illustrations IllustrationConfig `yaml:"illustrations"`
	Log           LogConfig          `yaml:"log"`
	Workers       int                `yaml:"workers"` // 0 = auto
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = <input>/xhtml)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath    string `yaml:"basePath"`    // Empty = use embedded assets
	Style       string `yaml:"style"`       // Stylesheet name
	TemplateSet string `yaml:"templateSet"` // Template set name
}

// ChapterConfig defines chapter filtering options.
type ChapterConfig struct {
	MinContentLength int `yaml:"minContentLength"` // Shorter bodies are skipped (runes)
}

// IllustrationConfig defines the optional illustration page.
type IllustrationConfig struct {
	Dir   string `yaml:"dir"`   // Image directory (empty = no illustration page)
	Title string `yaml:"title"` // Page title
}

// LogConfig defines logging options.
type LogConfig struct {
	Level  string `yaml:"level"`  // zerolog level name
	Format string `yaml:"format"` // "console" or "json"
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Assets: AssetsConfig{
			Style:       DefaultStyle,
			TemplateSet: DefaultTemplateSet,
		},
		Chapter:       ChapterConfig{MinContentLength: DefaultMinContentLength},
		Illustrations: IllustrationConfig{Title: DefaultIllustrationTitle},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: LogFormatConsole,
		},
	}
}

// Validate checks field lengths, ranges and enum values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	paths := []struct {
		name  string
		value string
	}{
		{"input.defaultDir", c.Input.DefaultDir},
		{"output.defaultDir", c.Output.DefaultDir},
		{"assets.basePath", c.Assets.BasePath},
		{"illustrations.dir", c.Illustrations.Dir},
	}
	for _, p := range paths {
		if err := validateFieldLength(p.name, p.value, MaxPathLength); err != nil {
			return err
		}
	}

	if err := validateFieldLength("assets.style", c.Assets.Style, MaxAssetNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.templateSet", c.Assets.TemplateSet, MaxAssetNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("illustrations.title", c.Illustrations.Title, MaxTitleLength); err != nil {
		return err
	}

	if c.Chapter.MinContentLength < 0 || c.Chapter.MinContentLength > MaxMinContentLength {
		return fmt.Errorf("%w: chapter.minContentLength must be between 0 and %d, got %d",
			ErrInvalidValue, MaxMinContentLength, c.Chapter.MinContentLength)
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}

	if c.Log.Level != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
			return fmt.Errorf("%w: log.level %q", ErrInvalidValue, c.Log.Level)
		}
	}

	switch strings.ToLower(c.Log.Format) {
	case "", LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("%w: log.format %q (must be console or json)", ErrInvalidValue, c.Log.Format)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.ReadFileStrict(configPath, cfg); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/novelfmt/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "novelfmt", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s%s", ErrConfigNotFound, strings.Join(triedPaths, ", "), hints.ForConfigNotFound(triedPaths))
}
