package assets

// TemplateSet holds the document templates used together by the renderer.
type TemplateSet struct {
	Name         string // Identifier (name or directory path)
	Chapter      string // Chapter document template
	Illustration string // Illustration page template
}

// Template file names inside a template set directory.
const (
	ChapterTemplateFile      = "chapter.html"
	IllustrationTemplateFile = "illustration.html"
)

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// DefaultStyleName is the name of the built-in stylesheet.
const DefaultStyleName = "main"
