// Package assets provides the stylesheet and document templates for
// rendered chapters.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (defaults)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the formatter. It tries the custom
// FilesystemLoader first and falls back to EmbeddedLoader when the asset
// is not found there, so single assets can be overridden.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css             # stylesheet (default: main)
//	└── templates/
//	    └── {name}/
//	        ├── chapter.html       # chapter document template
//	        └── illustration.html  # illustration page template
//
// Templates are text/template sources. The embedded default set reproduces
// the fixed chapter skeleton, including the style/main.css link.
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
