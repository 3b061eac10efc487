package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
)

//go:embed styles/*
var styles embed.FS

//go:embed templates/*
var templates embed.FS

// EmbeddedLoader loads assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a CSS style from embedded assets by name.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}

	return string(content), nil
}

// LoadTemplateSet loads the chapter and illustration templates for name.
func (e *EmbeddedLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	dir := path.Join("templates", name)
	chapter, chapterErr := fs.ReadFile(templates, path.Join(dir, ChapterTemplateFile))
	illustration, illusErr := fs.ReadFile(templates, path.Join(dir, IllustrationTemplateFile))

	chapterMissing := errors.Is(chapterErr, fs.ErrNotExist)
	illusMissing := errors.Is(illusErr, fs.ErrNotExist)

	if chapterMissing && illusMissing {
		return nil, fmt.Errorf("%w: %q", ErrTemplateSetNotFound, name)
	}
	if chapterMissing {
		return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTemplateSet, name, ChapterTemplateFile)
	}
	if illusMissing {
		return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTemplateSet, name, IllustrationTemplateFile)
	}
	if chapterErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, chapterErr)
	}
	if illusErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, illusErr)
	}

	return &TemplateSet{
		Name:         name,
		Chapter:      string(chapter),
		Illustration: string(illustration),
	}, nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
