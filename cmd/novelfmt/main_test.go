package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// testEnv returns an Environment with captured output and the given
// environment variables.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) },
		Stdout: &stdout,
		Stderr: &stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
	}
	return env, &stdout, &stderr
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", path, err)
	}
	return string(data)
}

// ---------------------------------------------------------------------------
// TestIsCommand - Command name detection
// ---------------------------------------------------------------------------

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"convert", true},
		{"version", true},
		{"help", true},
		{"completion", true},
		{"foo", false},
		{"", false},
		{"chapter.txt", false},
		{"Convert", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := isCommand(tt.input); got != tt.want {
				t.Errorf("isCommand(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain - Command dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRunMain_Commands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{name: "no args", args: []string{"novelfmt"}, wantCode: ExitUsage, wantStderr: "Usage: novelfmt"},
		{name: "version", args: []string{"novelfmt", "version"}, wantCode: ExitSuccess, wantStdout: "novelfmt " + Version},
		{name: "help", args: []string{"novelfmt", "help"}, wantCode: ExitSuccess, wantStdout: "Commands:"},
		{name: "help convert", args: []string{"novelfmt", "help", "convert"}, wantCode: ExitSuccess, wantStdout: "--min-length"},
		{name: "help unknown", args: []string{"novelfmt", "help", "nope"}, wantCode: ExitUsage, wantStderr: "Unknown command: nope"},
		{name: "convert --help", args: []string{"novelfmt", "convert", "--help"}, wantCode: ExitSuccess, wantStderr: "Usage: novelfmt convert"},
		{name: "bad flag", args: []string{"novelfmt", "convert", "--nope"}, wantCode: ExitUsage, wantStderr: "unknown flag"},
		{name: "no input", args: []string{"novelfmt", "convert"}, wantCode: ExitIO, wantStderr: "no input specified"},
		{name: "too many workers", args: []string{"novelfmt", "convert", "-w", "1000", "x"}, wantCode: ExitUsage, wantStderr: "invalid worker count"},
		{name: "missing input", args: []string{"novelfmt", "/nonexistent/novelfmt/in"}, wantCode: ExitIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(nil)
			code := runMain(context.Background(), tt.args, env)

			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, stderr)
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want substring %q", stdout, tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want substring %q", stderr, tt.wantStderr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Convert - End-to-end conversion into a temp directory
// ---------------------------------------------------------------------------

func TestRunMain_Convert(t *testing.T) {
	t.Parallel()

	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "book")

	writeTestFile(t, filepath.Join(in, "01.txt"), "「你好，」她说道。\n\n（这是内心独白。）")
	writeTestFile(t, filepath.Join(in, "02.txt"), "短")
	writeTestFile(t, filepath.Join(in, "03.yaml"), "title: 第三章\nbody: |\n  1. 小标题\n\n  普通段落内容。\nsource: https://example.com/3\n")
	writeTestFile(t, filepath.Join(in, "notes.md"), "ignored")
	writeTestFile(t, filepath.Join(in, "img", "cover_art.jpg"), "jpeg")
	writeTestFile(t, filepath.Join(in, "img", "readme.txt"), "not an image")

	env, stdout, stderr := testEnv(nil)
	code := runMain(context.Background(), []string{
		"novelfmt", in, "-o", out, "--images", filepath.Join(in, "img"), "--images-title", "卷一 插图",
	}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}

	ch1 := readTestFile(t, filepath.Join(out, "chapter_001.xhtml"))
	for _, want := range []string{
		"<title>01</title>",
		`  <p class="dialogue">「你好，」她说道。</p>`,
		`  <p class="thought">（这是内心独白。）</p>`,
	} {
		if !strings.Contains(ch1, want) {
			t.Errorf("chapter_001.xhtml missing %q:\n%s", want, ch1)
		}
	}

	if _, err := os.Stat(filepath.Join(out, "chapter_002.xhtml")); !os.IsNotExist(err) {
		t.Errorf("short chapter was written (stat error = %v)", err)
	}
	if !strings.Contains(stderr.String(), "too short") {
		t.Errorf("missing skip warning in stderr:\n%s", stderr)
	}

	ch3 := readTestFile(t, filepath.Join(out, "chapter_003.xhtml"))
	if !strings.Contains(ch3, "<h1>第三章</h1>") || !strings.Contains(ch3, "  <h2>1. 小标题</h2>") {
		t.Errorf("chapter_003.xhtml unexpected:\n%s", ch3)
	}

	if css := readTestFile(t, filepath.Join(out, "style", "main.css")); !strings.Contains(css, ".dialogue") {
		t.Errorf("stylesheet missing .dialogue rule")
	}

	ill := readTestFile(t, filepath.Join(out, "illustrations.xhtml"))
	for _, want := range []string{
		"<h1>卷一 插图</h1>",
		`<img src="images/cover_art.jpg" alt="插图 1" />`,
		`<div class="illustration-caption">插图 1: cover art</div>`,
	} {
		if !strings.Contains(ill, want) {
			t.Errorf("illustrations.xhtml missing %q:\n%s", want, ill)
		}
	}
	if got := readTestFile(t, filepath.Join(out, "images", "cover_art.jpg")); got != "jpeg" {
		t.Errorf("copied image = %q", got)
	}

	if !strings.Contains(stdout.String(), "2 written, 1 skipped, 0 failed") {
		t.Errorf("summary missing from stdout:\n%s", stdout)
	}
}

func TestRunMain_Convert_FailedChapter(t *testing.T) {
	t.Parallel()

	in := t.TempDir()
	writeTestFile(t, filepath.Join(in, "a.txt"), "这是一段足够长的正文内容。")
	writeTestFile(t, filepath.Join(in, "b.yaml"), "title: x\nunknown: y\n")

	env, stdout, stderr := testEnv(nil)
	code := runMain(context.Background(), []string{"novelfmt", "convert", in}, env)

	if code != ExitGeneral {
		t.Errorf("exit code = %d, want %d", code, ExitGeneral)
	}
	if !strings.Contains(stderr.String(), "FAILED") {
		t.Errorf("stderr missing FAILED line:\n%s", stderr)
	}
	if !strings.Contains(stdout.String(), "1 written, 0 skipped, 1 failed") {
		t.Errorf("summary missing:\n%s", stdout)
	}
	// Default output directory sits next to the chapters
	if _, err := os.Stat(filepath.Join(in, "xhtml", "chapter_001.xhtml")); err != nil {
		t.Errorf("chapter_001.xhtml not written: %v", err)
	}
}

func TestRunMain_Convert_EnvAndConfig(t *testing.T) {
	t.Parallel()

	in := t.TempDir()
	out := t.TempDir()
	writeTestFile(t, filepath.Join(in, "only.txt"), "12345")

	cfgPath := filepath.Join(t.TempDir(), "novelfmt.yaml")
	writeTestFile(t, cfgPath, "chapter:\n  minContentLength: 100\nlog:\n  format: json\n")

	// Config says 100, env lowers the threshold so the 5-rune chapter is kept.
	env, _, stderr := testEnv(map[string]string{
		"NOVELFMT_CONFIG":             cfgPath,
		"NOVELFMT_OUTPUT_DIR":         out,
		"NOVELFMT_MIN_CONTENT_LENGTH": "3",
		"NOVELFMT_WORKRES":            "2",
	})
	code := runMain(context.Background(), []string{"novelfmt", in}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr:\n%s", code, stderr)
	}

	if _, err := os.Stat(filepath.Join(out, "chapter_001.xhtml")); err != nil {
		t.Errorf("chapter not written to env output dir: %v", err)
	}
	if !strings.Contains(stderr.String(), `"variable":"NOVELFMT_WORKRES"`) {
		t.Errorf("missing JSON warning for unknown variable:\n%s", stderr)
	}
}

func TestRunMain_Convert_CanceledContext(t *testing.T) {
	t.Parallel()

	in := t.TempDir()
	writeTestFile(t, filepath.Join(in, "a.txt"), "这是一段足够长的正文内容。")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	env, _, _ := testEnv(nil)
	if code := runMain(ctx, []string{"novelfmt", in, "-q"}, env); code == ExitSuccess {
		t.Error("exit code = 0 for canceled context")
	}
}

func TestRunMain_Convert_UnknownStyle(t *testing.T) {
	t.Parallel()

	in := t.TempDir()
	writeTestFile(t, filepath.Join(in, "a.txt"), "这是一段足够长的正文内容。")

	env, _, stderr := testEnv(nil)
	code := runMain(context.Background(), []string{"novelfmt", in, "--style", "nope"}, env)

	if code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "hint: available: main") {
		t.Errorf("stderr missing style hint:\n%s", stderr)
	}
}
