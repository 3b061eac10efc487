package novelfmt

import "github.com/rs/zerolog"

// Option configures a Formatter.
type Option func(*Formatter)

// formatterConfig holds internal configuration for Formatter.
type formatterConfig struct {
	log             zerolog.Logger
	assetPath       string
	styleName       string
	templateSetName string
	assetLoader     AssetLoader
}

func defaultFormatterConfig() formatterConfig {
	return formatterConfig{
		log:             zerolog.Nop(),
		styleName:       DefaultStyle,
		templateSetName: DefaultTemplateSet,
	}
}

// WithLogger sets the logger passed to every stage.
func WithLogger(log zerolog.Logger) Option {
	return func(f *Formatter) {
		f.cfg.log = log
	}
}

// WithAssetPath loads assets from dir, falling back to embedded ones.
// Ignored when WithAssetLoader is also given.
func WithAssetPath(dir string) Option {
	return func(f *Formatter) {
		f.cfg.assetPath = dir
	}
}

// WithStyle selects the stylesheet by name.
func WithStyle(name string) Option {
	return func(f *Formatter) {
		f.cfg.styleName = name
	}
}

// WithTemplateSet selects the template set by name.
func WithTemplateSet(name string) Option {
	return func(f *Formatter) {
		f.cfg.templateSetName = name
	}
}

// WithAssetLoader sets a custom asset source.
// Panics if loader is nil (programmer error).
func WithAssetLoader(loader AssetLoader) Option {
	if loader == nil {
		panic("novelfmt: WithAssetLoader loader must not be nil")
	}
	return func(f *Formatter) {
		f.cfg.assetLoader = loader
	}
}
