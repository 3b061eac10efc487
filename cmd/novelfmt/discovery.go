package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	novelfmt "github.com/alnah/go-novelfmt"
	"github.com/alnah/go-novelfmt/internal/config"
	"github.com/alnah/go-novelfmt/internal/hints"
	"github.com/alnah/go-novelfmt/internal/yamlutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("chapter file must have .txt, .yaml or .yml extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrReadChapter        = errors.New("failed to read chapter file")
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

// chapterFile is the layout of a YAML chapter file.
type chapterFile struct {
	Title  string `yaml:"title"`
	Body   string `yaml:"body"`
	Source string `yaml:"source"`
}

// discoverChapters lists chapter files for inputPath in name order, and the
// directory they live in. A single file must have a chapter extension;
// in a directory, other files and subdirectories are ignored.
func discoverChapters(inputPath string) (paths []string, baseDir string, err error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, "", err
	}

	if !info.IsDir() {
		if !isChapterFile(inputPath) {
			return nil, "", fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(inputPath))
		}
		return []string{inputPath}, filepath.Dir(inputPath), nil
	}

	entries, err := os.ReadDir(inputPath)
	if err != nil {
		return nil, "", fmt.Errorf("scanning %s: %w", inputPath, err)
	}
	for _, e := range entries {
		if e.IsDir() || !isChapterFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(inputPath, e.Name()))
	}
	return paths, inputPath, nil
}

func isChapterFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".yaml", ".yml":
		return true
	}
	return false
}

// readChapter loads a chapter file. Plain text files are titled after their
// name; YAML files fall back to it when they have no title.
func readChapter(path string) (novelfmt.RawChapter, error) {
	stem := fileStem(path)

	if strings.EqualFold(filepath.Ext(path), ".txt") {
		data, err := os.ReadFile(path) // #nosec G304 -- path comes from discovery
		if err != nil {
			return novelfmt.RawChapter{}, fmt.Errorf("%w: %v", ErrReadChapter, err)
		}
		return novelfmt.RawChapter{Title: stem, Body: string(data), SourceReference: path}, nil
	}

	var cf chapterFile
	if err := yamlutil.ReadFileStrict(path, &cf); err != nil {
		return novelfmt.RawChapter{}, fmt.Errorf("%w: %s: %v%s", ErrReadChapter, path, err, hints.ForChapterFile())
	}
	ch := novelfmt.RawChapter{Title: cf.Title, Body: cf.Body, SourceReference: cf.Source}
	if ch.Title == "" {
		ch.Title = stem
	}
	if ch.SourceReference == "" {
		ch.SourceReference = path
	}
	return ch, nil
}

// discoverImages lists image files in dir in name order.
func discoverImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

// imageCaption captions the i-th image (1-based) after its file name,
// with underscores read as spaces.
func imageCaption(i int, path string) string {
	return fmt.Sprintf("插图 %d: %s", i, strings.ReplaceAll(fileStem(path), "_", " "))
}

// chapterFileName names the output for the chapter at 0-based input index.
func chapterFileName(index int) string {
	return fmt.Sprintf("chapter_%03d.xhtml", index+1)
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}
