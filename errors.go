package novelfmt

import "errors"

// Sentinel errors for library operations.
var (
	ErrRender          = errors.New("document rendering failed")
	ErrInvalidTemplate = errors.New("invalid document template")

	// Asset loading errors.
	ErrStyleNotFound         = errors.New("style not found")
	ErrTemplateSetNotFound   = errors.New("template set not found")
	ErrIncompleteTemplateSet = errors.New("template set missing required template")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
	ErrInvalidAssetName      = errors.New("invalid asset name")
)
