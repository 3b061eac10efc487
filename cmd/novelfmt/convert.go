package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	novelfmt "github.com/alnah/go-novelfmt"
	"github.com/alnah/go-novelfmt/internal/config"
	"github.com/alnah/go-novelfmt/internal/fileutil"
	"github.com/alnah/go-novelfmt/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no input specified")
	ErrNoChapters     = errors.New("no chapter files found")
	ErrWriteOutput    = errors.New("failed to write output")
	ErrChaptersFailed = errors.New("some chapters failed")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Output layout.
const (
	defaultOutputSubdir = "xhtml"
	illustrationsFile   = "illustrations.xhtml"
	imagesDir           = "images"
)

// chapterOutcome holds the result of one chapter file.
type chapterOutcome struct {
	InputPath  string
	OutputPath string
	Title      string
	Paragraphs int
	Skipped    bool
	Err        error
}

// runConvert orchestrates reading, formatting and writing chapters.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	if flags.isSet("workers") {
		if err := validateWorkers(flags.workers); err != nil {
			return err
		}
	}

	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := newLogger(env.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	warnEnvProblems(log, envCfg, env.Environ())

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}

	paths, baseDir, err := discoverChapters(inputPath)
	if err != nil {
		return fmt.Errorf("discovering chapters: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("%w in %s", ErrNoChapters, inputPath)
	}
	outputDir := resolveOutputDir(flags.output, baseDir, cfg)

	formatter, err := novelfmt.NewFormatter(
		novelfmt.WithLogger(log),
		novelfmt.WithAssetPath(cfg.Assets.BasePath),
		novelfmt.WithStyle(cfg.Assets.Style),
		novelfmt.WithTemplateSet(cfg.Assets.TemplateSet),
	)
	if err != nil {
		return fmt.Errorf("initializing formatter: %w", err)
	}

	log.Debug().
		Int("chapters", len(paths)).
		Int("workers", novelfmt.ResolveWorkers(cfg.Workers)).
		Str("output", outputDir).
		Msg("starting")

	start := env.Now()
	outcomes := formatChapters(ctx, formatter, paths, outputDir, cfg, log)
	elapsed := env.Now().Sub(start)

	if err := writeStylesheet(formatter, outputDir); err != nil {
		return err
	}

	if cfg.Illustrations.Dir != "" {
		if err := writeIllustrations(ctx, formatter, cfg.Illustrations, outputDir, log); err != nil {
			return err
		}
	}

	failed := printResults(outcomes, flags.common.quiet, flags.common.verbose, env.Stdout, env.Stderr)
	log.Debug().Dur("elapsed", elapsed.Round(time.Millisecond)).Msg("done")

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrChaptersFailed, failed, len(outcomes))
	}
	return ctx.Err()
}

// loadConfig loads the config named by the flag, else by NOVELFMT_CONFIG,
// else returns the defaults.
func loadConfig(flagConfig string, env *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags applies explicitly set CLI flags to cfg (CLI wins).
// --log-level beats --verbose, which beats --quiet.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.isSet("workers") {
		cfg.Workers = flags.workers
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
	if flags.assets.style != "" {
		cfg.Assets.Style = flags.assets.style
	}
	if flags.assets.templateSet != "" {
		cfg.Assets.TemplateSet = flags.assets.templateSet
	}
	if flags.isSet("min-length") {
		cfg.Chapter.MinContentLength = flags.chapter.minLength
	}
	if flags.illustrations.dir != "" {
		cfg.Illustrations.Dir = flags.illustrations.dir
	}
	if flags.illustrations.title != "" {
		cfg.Illustrations.Title = flags.illustrations.title
	}
	if flags.log.format != "" {
		cfg.Log.Format = flags.log.format
	}

	switch {
	case flags.isSet("log-level"):
		cfg.Log.Level = flags.log.level
	case flags.common.verbose:
		cfg.Log.Level = zerolog.LevelDebugValue
	case flags.common.quiet:
		cfg.Log.Level = zerolog.LevelErrorValue
	}
}

// resolveInputPath returns the positional input or the configured default.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir returns the output flag, the configured default, or an
// xhtml directory next to the chapters.
func resolveOutputDir(flagOutput, baseDir string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	if cfg.Output.DefaultDir != "" {
		return cfg.Output.DefaultDir
	}
	return filepath.Join(baseDir, defaultOutputSubdir)
}

// tooShort reports whether body has fewer than minRunes non-blank-edged runes.
func tooShort(body string, minRunes int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(body)) < minRunes
}

// formatChapters reads, filters, formats and writes chapters. Outcomes are
// in input order; output names follow the input index, so skipped chapters
// leave gaps in the numbering.
func formatChapters(ctx context.Context, f *novelfmt.Formatter, paths []string, outputDir string, cfg *config.Config, log zerolog.Logger) []chapterOutcome {
	outcomes := make([]chapterOutcome, len(paths))
	var (
		chapters []novelfmt.RawChapter
		indexes  []int
	)

	for i, path := range paths {
		outcomes[i] = chapterOutcome{InputPath: path, OutputPath: filepath.Join(outputDir, chapterFileName(i))}

		ch, err := readChapter(path)
		if err != nil {
			outcomes[i].Err = err
			continue
		}
		outcomes[i].Title = ch.Title

		if tooShort(ch.Body, cfg.Chapter.MinContentLength) {
			log.Warn().Str("title", ch.Title).Str("file", path).Msg("chapter empty or too short, skipping")
			outcomes[i].Skipped = true
			continue
		}

		chapters = append(chapters, ch)
		indexes = append(indexes, i)
	}

	if err := os.MkdirAll(outputDir, dirPermissions); err != nil {
		for _, i := range indexes {
			outcomes[i].Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return outcomes
	}

	for j, res := range f.FormatBatch(ctx, chapters, cfg.Workers) {
		o := &outcomes[indexes[j]]

		switch {
		case res.Err != nil:
			o.Err = res.Err
		case res.Result.Empty():
			log.Warn().Str("title", o.Title).Str("file", o.InputPath).Msg("chapter has no paragraphs, skipping")
			o.Skipped = true
		default:
			o.Paragraphs = len(res.Result.Paragraphs)
			if err := writeFile(o.OutputPath, res.Result.Document.HTML); err != nil {
				o.Err = err
			}
		}
	}

	return outcomes
}

// writeStylesheet writes the formatter's stylesheet where documents link it.
func writeStylesheet(f *novelfmt.Formatter, outputDir string) error {
	path := filepath.Join(outputDir, filepath.FromSlash(novelfmt.StylesheetPath))
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return writeFile(path, f.Stylesheet())
}

// writeIllustrations copies images into the output and writes the
// illustration page. A directory without images produces no page.
func writeIllustrations(ctx context.Context, f *novelfmt.Formatter, cfg config.IllustrationConfig, outputDir string, log zerolog.Logger) error {
	paths, err := discoverImages(cfg.Dir)
	if err != nil {
		return fmt.Errorf("reading illustrations: %w", err)
	}
	if len(paths) == 0 {
		log.Info().Str("dir", cfg.Dir).Msg("no images found, skipping illustration page")
		return nil
	}

	if err := os.MkdirAll(filepath.Join(outputDir, imagesDir), dirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	images := make([]novelfmt.Illustration, len(paths))
	for i, src := range paths {
		name := filepath.Base(src)
		if err := copyFile(src, filepath.Join(outputDir, imagesDir, name)); err != nil {
			return err
		}
		images[i] = novelfmt.Illustration{
			ImagePath: imagesDir + "/" + name,
			Caption:   imageCaption(i+1, src),
		}
	}

	doc, err := f.FormatIllustrations(ctx, cfg.Title, images)
	if err != nil {
		return fmt.Errorf("formatting illustrations: %w", err)
	}
	if err := writeFile(filepath.Join(outputDir, illustrationsFile), doc.HTML); err != nil {
		return err
	}

	log.Info().Int("images", len(images)).Msg("illustration page written")
	return nil
}

func writeFile(path, content string) error {
	if err := fileutil.WriteFileAtomic(path, []byte(content), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	if err := fileutil.CopyFile(src, dst, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, novelfmt.ErrStyleNotFound):
		return hints.ForStyleNotFound(novelfmt.EmbeddedStyles())
	case errors.Is(err, novelfmt.ErrTemplateSetNotFound):
		return hints.ForTemplateSetNotFound(novelfmt.EmbeddedTemplateSets())
	case errors.Is(err, ErrNoChapters):
		return hints.ForNoChapters()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}

// resultSummary holds outcome counts.
type resultSummary struct {
	Written int
	Skipped int
	Failed  int
}

// countResults tallies outcomes.
func countResults(outcomes []chapterOutcome) resultSummary {
	var s resultSummary
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			s.Failed++
		case o.Skipped:
			s.Skipped++
		default:
			s.Written++
		}
	}
	return s
}

// printResults reports outcomes and returns the failure count.
func printResults(outcomes []chapterOutcome, quiet, verbose bool, stdout, stderr io.Writer) int {
	summary := countResults(outcomes)

	for _, o := range outcomes {
		if o.Err != nil {
			fmt.Fprintf(stderr, "FAILED %s: %v\n", o.InputPath, o.Err)
			continue
		}
		if quiet || o.Skipped {
			continue
		}
		if verbose {
			fmt.Fprintf(stdout, "%s -> %s (%d paragraphs)\n", o.InputPath, o.OutputPath, o.Paragraphs)
		} else {
			fmt.Fprintf(stdout, "Created %s\n", o.OutputPath)
		}
	}

	if !quiet && len(outcomes) > 1 {
		fmt.Fprintf(stdout, "\n%d written, %d skipped, %d failed\n", summary.Written, summary.Skipped, summary.Failed)
	}

	return summary.Failed
}
