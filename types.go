package novelfmt

import "github.com/alnah/go-novelfmt/internal/pipeline"

// Category is the semantic kind of a paragraph.
type Category = pipeline.Category

// Paragraph categories, in classification priority order.
const (
	CategorySubtitle = pipeline.CategorySubtitle
	CategoryDialogue = pipeline.CategoryDialogue
	CategoryThought  = pipeline.CategoryThought
	CategoryNarrator = pipeline.CategoryNarrator
	CategoryNormal   = pipeline.CategoryNormal
)

// RawChapter is scraped chapter prose as handed over by a fetcher.
type RawChapter struct {
	Title           string
	Body            string
	SourceReference string // URL or path, for diagnostics only
}

// Paragraph is one formatted paragraph of a chapter.
type Paragraph struct {
	Ordinal  int      // 0-based position in the chapter
	Text     string   // Trimmed source text
	Category Category // Empty when only segmented
	HTML     string   // Escaped, rewritten markup; empty when only segmented
}

// RenderedDocument is a complete XHTML document.
type RenderedDocument struct {
	Title string
	HTML  string
}

// Illustration pairs an image path with its caption.
type Illustration struct {
	ImagePath string
	Caption   string
}

// ChapterResult holds the outcome of formatting one chapter.
type ChapterResult struct {
	Document   RenderedDocument
	Paragraphs []Paragraph
}

// Empty reports whether the chapter produced no paragraphs.
// The document of an empty chapter holds only the title and separators.
func (r *ChapterResult) Empty() bool {
	return r == nil || len(r.Paragraphs) == 0
}

// BatchResult is the outcome for one chapter of FormatBatch.
type BatchResult struct {
	Chapter RawChapter
	Result  *ChapterResult
	Err     error
}

// StylesheetPath is where documents expect the stylesheet, relative to
// themselves.
const StylesheetPath = pipeline.StylesheetPath
