package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/rs/zerolog"
)

// Document constants shared by chapter and illustration pages.
const (
	// StylesheetPath is the stylesheet href, relative to the document.
	StylesheetPath = "style/main.css"

	// Separator is the decorative marker bracketing page content.
	Separator = "※ ※ ※"

	fragmentIndent = "  "
)

// Sentinel errors for template handling.
var (
	ErrTemplateParse  = errors.New("template parsing failed")
	ErrTemplateRender = errors.New("template rendering failed")
)

// fragmentFormats maps each category to its markup. Input is already escaped.
var fragmentFormats = map[Category]string{
	CategoryDialogue: `<p class="dialogue">%s</p>`,
	CategoryThought:  `<p class="thought">%s</p>`,
	CategoryNarrator: `<p class="narrator">%s</p>`,
	CategorySubtitle: `<h2>%s</h2>`,
	CategoryNormal:   `<p>%s</p>`,
}

// chapterData feeds the chapter template. All fields are escaped markup.
type chapterData struct {
	Title      string
	Stylesheet string
	Separator  string
	Body       string
}

// illustrationData feeds the illustration template.
type illustrationData struct {
	Title      string
	Stylesheet string
	Separator  string
	Images     []imageData
}

type imageData struct {
	Index   int
	Path    string
	Caption string
}

// Renderer assembles documents from templates. Templates are text/template
// sources; every value handed to them is escaped beforehand.
type Renderer struct {
	chapter      *template.Template
	illustration *template.Template
	log          zerolog.Logger
}

// NewRenderer parses the chapter and illustration templates.
// Returns ErrTemplateParse if either template is invalid.
func NewRenderer(chapterTmpl, illustrationTmpl string, log zerolog.Logger) (*Renderer, error) {
	chapter, err := template.New("chapter").Option("missingkey=error").Parse(chapterTmpl)
	if err != nil {
		return nil, fmt.Errorf("%w: chapter: %v", ErrTemplateParse, err)
	}

	illustration, err := template.New("illustration").Option("missingkey=error").Parse(illustrationTmpl)
	if err != nil {
		return nil, fmt.Errorf("%w: illustration: %v", ErrTemplateParse, err)
	}

	return &Renderer{
		chapter:      chapter,
		illustration: illustration,
		log:          log.With().Str("stage", "render").Logger(),
	}, nil
}

// Fragment returns the indented markup for one paragraph.
// Unknown categories render as normal paragraphs.
func (r *Renderer) Fragment(rp RewrittenParagraph) string {
	format, ok := fragmentFormats[rp.Category]
	if !ok {
		format = fragmentFormats[CategoryNormal]
	}
	return fragmentIndent + fmt.Sprintf(format, rp.HTML)
}

// RenderChapter builds the chapter document. An empty paragraph slice still
// yields a valid document holding only the title and separators.
func (r *Renderer) RenderChapter(title string, paragraphs []RewrittenParagraph) (string, error) {
	fragments := make([]string, len(paragraphs))
	for i, rp := range paragraphs {
		fragments[i] = r.Fragment(rp)
	}

	data := chapterData{
		Title:      EscapeHTML(title),
		Stylesheet: StylesheetPath,
		Separator:  Separator,
		Body:       strings.Join(fragments, "\n"),
	}

	var buf bytes.Buffer
	if err := r.chapter.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: chapter %q: %v", ErrTemplateRender, title, err)
	}

	r.log.Debug().Str("title", title).Int("paragraphs", len(paragraphs)).Msg("chapter rendered")
	return buf.String(), nil
}

// RenderIllustrations builds the illustration page. Images are numbered
// from 1 in the given order.
func (r *Renderer) RenderIllustrations(title string, images []ImageRef) (string, error) {
	data := illustrationData{
		Title:      EscapeHTML(title),
		Stylesheet: StylesheetPath,
		Separator:  Separator,
		Images:     make([]imageData, len(images)),
	}
	for i, img := range images {
		data.Images[i] = imageData{
			Index:   i + 1,
			Path:    EscapeHTML(img.Path),
			Caption: EscapeHTML(img.Caption),
		}
	}

	var buf bytes.Buffer
	if err := r.illustration.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: illustrations %q: %v", ErrTemplateRender, title, err)
	}

	r.log.Debug().Str("title", title).Int("images", len(images)).Msg("illustrations rendered")
	return buf.String(), nil
}
