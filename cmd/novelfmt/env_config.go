package main

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alnah/go-novelfmt/internal/config"
)

const envPrefix = "NOVELFMT_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath        string // NOVELFMT_CONFIG: config file name or path
	InputDir          string // NOVELFMT_INPUT_DIR: default input directory
	OutputDir         string // NOVELFMT_OUTPUT_DIR: default output directory
	AssetPath         string // NOVELFMT_ASSET_PATH: custom asset directory
	Style             string // NOVELFMT_STYLE: stylesheet name
	TemplateSet       string // NOVELFMT_TEMPLATE_SET: template set name
	IllustrationsDir  string // NOVELFMT_ILLUSTRATIONS_DIR: image directory
	IllustrationTitle string // NOVELFMT_ILLUSTRATIONS_TITLE: illustration page title
	LogLevel          string // NOVELFMT_LOG_LEVEL: zerolog level
	LogFormat         string // NOVELFMT_LOG_FORMAT: console or json
	MinContentLength  *int   // NOVELFMT_MIN_CONTENT_LENGTH: runes
	Workers           *int   // NOVELFMT_WORKERS: parallel workers

	// invalid lists variables whose values could not be parsed.
	invalid []string
}

// knownEnvVars lists valid NOVELFMT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"NOVELFMT_CONFIG":              true,
	"NOVELFMT_INPUT_DIR":           true,
	"NOVELFMT_OUTPUT_DIR":          true,
	"NOVELFMT_ASSET_PATH":          true,
	"NOVELFMT_STYLE":               true,
	"NOVELFMT_TEMPLATE_SET":        true,
	"NOVELFMT_ILLUSTRATIONS_DIR":   true,
	"NOVELFMT_ILLUSTRATIONS_TITLE": true,
	"NOVELFMT_LOG_LEVEL":           true,
	"NOVELFMT_LOG_FORMAT":          true,
	"NOVELFMT_MIN_CONTENT_LENGTH":  true,
	"NOVELFMT_WORKERS":             true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:        getenv("NOVELFMT_CONFIG"),
		InputDir:          getenv("NOVELFMT_INPUT_DIR"),
		OutputDir:         getenv("NOVELFMT_OUTPUT_DIR"),
		AssetPath:         getenv("NOVELFMT_ASSET_PATH"),
		Style:             getenv("NOVELFMT_STYLE"),
		TemplateSet:       getenv("NOVELFMT_TEMPLATE_SET"),
		IllustrationsDir:  getenv("NOVELFMT_ILLUSTRATIONS_DIR"),
		IllustrationTitle: getenv("NOVELFMT_ILLUSTRATIONS_TITLE"),
		LogLevel:          getenv("NOVELFMT_LOG_LEVEL"),
		LogFormat:         getenv("NOVELFMT_LOG_FORMAT"),
	}

	cfg.MinContentLength = cfg.parseInt(getenv, "NOVELFMT_MIN_CONTENT_LENGTH")
	cfg.Workers = cfg.parseInt(getenv, "NOVELFMT_WORKERS")

	return cfg
}

// parseInt returns nil when name is unset or not an integer.
// Unparsable values are recorded for warnEnvProblems.
func (e *envConfig) parseInt(getenv func(string) string, name string) *int {
	raw := getenv(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		e.invalid = append(e.invalid, name)
		return nil
	}
	return &n
}

// warnEnvProblems logs unparsable values and unrecognized NOVELFMT_*
// variables, to catch typos like NOVELFMT_WORKER.
func warnEnvProblems(log zerolog.Logger, env *envConfig, environ []string) {
	for _, name := range env.invalid {
		log.Warn().Str("variable", name).Msg("ignoring non-integer environment variable")
	}
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			log.Warn().Str("variable", name).Msg("unknown environment variable (typo?)")
		}
	}
}

// applyEnvConfig overrides config values with set environment variables.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	setString(&cfg.Input.DefaultDir, env.InputDir)
	setString(&cfg.Output.DefaultDir, env.OutputDir)
	setString(&cfg.Assets.BasePath, env.AssetPath)
	setString(&cfg.Assets.Style, env.Style)
	setString(&cfg.Assets.TemplateSet, env.TemplateSet)
	setString(&cfg.Illustrations.Dir, env.IllustrationsDir)
	setString(&cfg.Illustrations.Title, env.IllustrationTitle)
	setString(&cfg.Log.Level, env.LogLevel)
	setString(&cfg.Log.Format, env.LogFormat)

	if env.MinContentLength != nil {
		cfg.Chapter.MinContentLength = *env.MinContentLength
	}
	if env.Workers != nil {
		cfg.Workers = *env.Workers
	}
}
