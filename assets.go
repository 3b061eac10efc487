package novelfmt

import (
	"errors"

	"github.com/alnah/go-novelfmt/internal/assets"
)

// Asset name constants for the built-in stylesheet and templates.
const (
	// DefaultStyle is the name of the built-in stylesheet.
	DefaultStyle = assets.DefaultStyleName

	// DefaultTemplateSet is the name of the built-in template set.
	DefaultTemplateSet = assets.DefaultTemplateSetName
)

// EmbeddedStyles lists the stylesheets compiled into the library.
func EmbeddedStyles() []string {
	return assets.ListStyles()
}

// EmbeddedTemplateSets lists the template sets compiled into the library.
func EmbeddedTemplateSets() []string {
	return assets.ListTemplateSets()
}

// AssetLoader defines the contract for loading stylesheets and document
// templates. Implementations may load from a directory, embedded files, a
// database, etc.
//
// NewAssetLoader provides a filesystem loader with fallback to the embedded
// defaults.
type AssetLoader interface {
	// LoadStyle loads a stylesheet by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads the chapter and illustration templates by name.
	// Returns ErrTemplateSetNotFound if the template set doesn't exist.
	// Returns ErrIncompleteTemplateSet if a template is missing.
	LoadTemplateSet(name string) (*TemplateSet, error)
}

// TemplateSet holds the document templates used together by a Formatter.
type TemplateSet struct {
	Name         string // Identifier (name or path)
	Chapter      string // Chapter document template
	Illustration string // Illustration page template
}

// NewTemplateSet creates a TemplateSet from template sources.
func NewTemplateSet(name, chapter, illustration string) *TemplateSet {
	return &TemplateSet{
		Name:         name,
		Chapter:      chapter,
		Illustration: illustration,
	}
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, the loader serves only embedded assets.
// Otherwise custom assets take precedence with fallback to embedded ones.
//
// The basePath directory may contain:
//   - styles/{name}.css for stylesheets
//   - templates/{name}/chapter.html and illustration.html for template sets
//
// Returns ErrInvalidAssetPath if basePath is not a readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// assetLoaderAdapter wraps the internal AssetResolver to return public types.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.resolver.LoadStyle(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

func (a *assetLoaderAdapter) LoadTemplateSet(name string) (*TemplateSet, error) {
	ts, err := a.resolver.LoadTemplateSet(name)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return NewTemplateSet(ts.Name, ts.Chapter, ts.Illustration), nil
}

// publicToInternalAdapter lets a user AssetLoader feed the formatter.
type publicToInternalAdapter struct {
	pub AssetLoader
}

func (a *publicToInternalAdapter) LoadStyle(name string) (string, error) {
	return a.pub.LoadStyle(name)
}

func (a *publicToInternalAdapter) LoadTemplateSet(name string) (*assets.TemplateSet, error) {
	ts, err := a.pub.LoadTemplateSet(name)
	if err != nil {
		return nil, err
	}
	return &assets.TemplateSet{
		Name:         ts.Name,
		Chapter:      ts.Chapter,
		Illustration: ts.Illustration,
	}, nil
}

// convertAssetError maps internal asset errors to public errors.
// Errors that already carry a public sentinel pass through unchanged.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrStyleNotFound):
		return wrapError(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrTemplateSetNotFound):
		return wrapError(ErrTemplateSetNotFound, err)
	case errors.Is(err, assets.ErrIncompleteTemplateSet):
		return wrapError(ErrIncompleteTemplateSet, err)
	case errors.Is(err, assets.ErrInvalidBasePath):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrInvalidAssetName, err)
	default:
		return err
	}
}

// wrapError returns an error that prints like original but matches sentinel
// under errors.Is.
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel. Internal errors stay hidden.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
