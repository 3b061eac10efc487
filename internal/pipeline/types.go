package pipeline

// Category is the narrative function assigned to a paragraph.
type Category string

// Paragraph categories, in classification priority order.
const (
	CategorySubtitle Category = "subtitle"
	CategoryDialogue Category = "dialogue"
	CategoryThought  Category = "thought"
	CategoryNarrator Category = "narrator"
	CategoryNormal   Category = "normal"
)

// Categories lists every category in classification priority order.
var Categories = []Category{
	CategorySubtitle,
	CategoryDialogue,
	CategoryThought,
	CategoryNarrator,
	CategoryNormal,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategorySubtitle, CategoryDialogue, CategoryThought, CategoryNarrator, CategoryNormal:
		return true
	}
	return false
}

// Paragraph is a trimmed, non-empty segment of a chapter body.
// Ordinal is the 0-based position in the segmented sequence.
type Paragraph struct {
	Ordinal int
	Text    string
}

// ClassifiedParagraph is a Paragraph with its assigned category.
type ClassifiedParagraph struct {
	Paragraph
	Category Category
}

// RewrittenParagraph carries the escaped, emphasis-rewritten markup for a
// classified paragraph. Text keeps the original plain text.
type RewrittenParagraph struct {
	ClassifiedParagraph
	HTML string
}

// ImageRef is one entry of an illustration page.
type ImageRef struct {
	Path    string
	Caption string
}
