package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/alnah/go-novelfmt/internal/config"
)

func mapGetenv(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	env := loadEnvConfig(mapGetenv(map[string]string{
		"NOVELFMT_CONFIG":              "prod",
		"NOVELFMT_INPUT_DIR":           "/in",
		"NOVELFMT_OUTPUT_DIR":          "/out",
		"NOVELFMT_STYLE":               "night",
		"NOVELFMT_ILLUSTRATIONS_TITLE": "图",
		"NOVELFMT_MIN_CONTENT_LENGTH":  " 0 ",
		"NOVELFMT_WORKERS":             "four",
	}))

	if env.ConfigPath != "prod" || env.InputDir != "/in" || env.OutputDir != "/out" {
		t.Errorf("string fields not read: %+v", env)
	}
	if env.MinContentLength == nil || *env.MinContentLength != 0 {
		t.Errorf("MinContentLength = %v, want 0", env.MinContentLength)
	}
	if env.Workers != nil {
		t.Errorf("Workers = %d, want nil for unparsable value", *env.Workers)
	}
	if len(env.invalid) != 1 || env.invalid[0] != "NOVELFMT_WORKERS" {
		t.Errorf("invalid = %v, want [NOVELFMT_WORKERS]", env.invalid)
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("overrides file values", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Assets.Style = "from-file"
		cfg.Chapter.MinContentLength = 100
		cfg.Workers = 8

		zero := 0
		applyEnvConfig(&envConfig{
			Style:             "from-env",
			IllustrationTitle: "图集",
			LogFormat:         "json",
			MinContentLength:  &zero,
			Workers:           &zero,
		}, cfg)

		if cfg.Assets.Style != "from-env" {
			t.Errorf("Style = %q, want from-env", cfg.Assets.Style)
		}
		if cfg.Illustrations.Title != "图集" {
			t.Errorf("Illustrations.Title = %q", cfg.Illustrations.Title)
		}
		if cfg.Log.Format != "json" {
			t.Errorf("Log.Format = %q", cfg.Log.Format)
		}
		if cfg.Chapter.MinContentLength != 0 || cfg.Workers != 0 {
			t.Errorf("ints not overridden: min=%d workers=%d", cfg.Chapter.MinContentLength, cfg.Workers)
		}
	})

	t.Run("unset variables keep file values", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Assets.Style = "from-file"
		cfg.Workers = 8

		applyEnvConfig(&envConfig{}, cfg)

		if cfg.Assets.Style != "from-file" || cfg.Workers != 8 {
			t.Errorf("config changed by empty env: %+v", cfg)
		}
	})
}

func TestWarnEnvProblems(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := zerolog.New(&buf)

	env := &envConfig{invalid: []string{"NOVELFMT_WORKERS"}}
	warnEnvProblems(log, env, []string{
		"PATH=/usr/bin",
		"NOVELFMT_STYLE=night",
		"NOVELFMT_WORKER=2",
		"NOVELFMT_WORKERS=x",
	})

	out := buf.String()
	if !strings.Contains(out, `"variable":"NOVELFMT_WORKER"`) {
		t.Errorf("missing typo warning:\n%s", out)
	}
	if !strings.Contains(out, "ignoring non-integer") {
		t.Errorf("missing parse warning:\n%s", out)
	}
	if strings.Contains(out, `"variable":"NOVELFMT_STYLE"`) {
		t.Errorf("known variable reported as unknown:\n%s", out)
	}
	if got := strings.Count(out, "\n"); got != 2 {
		t.Errorf("warnings = %d, want 2:\n%s", got, out)
	}
}
