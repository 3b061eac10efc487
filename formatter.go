package novelfmt

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/alnah/go-novelfmt/internal/assets"
	"github.com/alnah/go-novelfmt/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ AssetLoader        = (*assetLoaderAdapter)(nil)
	_ assets.AssetLoader = (*publicToInternalAdapter)(nil)
)

// Formatter orchestrates the chapter formatting pipeline.
// Create with NewFormatter. A Formatter is safe for concurrent use.
type Formatter struct {
	cfg         formatterConfig
	log         zerolog.Logger
	assetLoader assets.AssetLoader
	segmenter   *pipeline.Segmenter
	classifier  *pipeline.Classifier
	rewriter    *pipeline.Rewriter
	renderer    *pipeline.Renderer
	stylesheet  string
}

// NewFormatter creates a Formatter using the embedded stylesheet and
// templates unless options say otherwise.
// Returns an error if asset loading or template parsing fails.
func NewFormatter(opts ...Option) (*Formatter, error) {
	f := &Formatter{
		cfg:         defaultFormatterConfig(),
		assetLoader: assets.NewEmbeddedLoader(),
	}

	for _, opt := range opts {
		opt(f)
	}

	// WithAssetPath: resolve to the internal custom-first loader
	if f.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(f.cfg.assetPath)
		if err != nil {
			return nil, convertAssetError(err)
		}
		f.assetLoader = resolver
	}

	// WithAssetLoader wins over WithAssetPath
	if f.cfg.assetLoader != nil {
		f.assetLoader = &publicToInternalAdapter{pub: f.cfg.assetLoader}
	}

	f.log = f.cfg.log.With().Str("component", "formatter").Logger()

	css, err := f.assetLoader.LoadStyle(f.cfg.styleName)
	if err != nil {
		return nil, fmt.Errorf("loading style %q: %w", f.cfg.styleName, convertAssetError(err))
	}
	f.stylesheet = css

	ts, err := f.assetLoader.LoadTemplateSet(f.cfg.templateSetName)
	if err != nil {
		return nil, fmt.Errorf("loading template set %q: %w", f.cfg.templateSetName, convertAssetError(err))
	}

	f.renderer, err = pipeline.NewRenderer(ts.Chapter, ts.Illustration, f.cfg.log)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTemplate, ts.Name, err)
	}

	f.segmenter = pipeline.NewSegmenter(f.cfg.log)
	f.classifier = pipeline.NewClassifier(f.cfg.log)
	f.rewriter = pipeline.NewRewriter(f.cfg.log)

	f.log.Debug().
		Str("style", f.cfg.styleName).
		Str("templateSet", ts.Name).
		Msg("formatter ready")

	return f, nil
}

// Format runs the full pipeline on one chapter.
// An empty body is not an error: the result is Empty and its document holds
// only the title and separators. Errors come from ctx or a failing template.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (f *Formatter) Format(ctx context.Context, ch RawChapter) (result *ChapterResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	paragraphs := f.segmenter.Segment(ch.Body)
	classified := f.classifier.ClassifyAll(paragraphs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rewritten := f.rewriter.RewriteAll(classified)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	html, err := f.renderer.RenderChapter(ch.Title, rewritten)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	res := &ChapterResult{
		Document:   RenderedDocument{Title: ch.Title, HTML: html},
		Paragraphs: toParagraphs(rewritten),
	}

	f.log.Debug().
		Str("title", ch.Title).
		Str("source", ch.SourceReference).
		Int("paragraphs", len(res.Paragraphs)).
		Msg("chapter formatted")

	return res, nil
}

// FormatIllustrations renders the illustration page for images, numbered
// from 1 in the given order.
func (f *Formatter) FormatIllustrations(ctx context.Context, title string, images []Illustration) (*RenderedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	refs := make([]pipeline.ImageRef, len(images))
	for i, img := range images {
		refs[i] = pipeline.ImageRef{Path: img.ImagePath, Caption: img.Caption}
	}

	html, err := f.renderer.RenderIllustrations(title, refs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	f.log.Debug().Str("title", title).Int("images", len(images)).Msg("illustrations formatted")
	return &RenderedDocument{Title: title, HTML: html}, nil
}

// Stylesheet returns the stylesheet documents link to as style/main.css.
func (f *Formatter) Stylesheet() string {
	return f.stylesheet
}

// Segment splits body into paragraphs without classifying them.
func (f *Formatter) Segment(body string) []Paragraph {
	segmented := f.segmenter.Segment(body)
	out := make([]Paragraph, len(segmented))
	for i, p := range segmented {
		out[i] = Paragraph{Ordinal: p.Ordinal, Text: p.Text}
	}
	return out
}

// Classify returns the category of a single paragraph of text.
func (f *Formatter) Classify(text string) Category {
	return f.classifier.Classify(pipeline.Paragraph{Text: text})
}

// Rewrite escapes text and converts its inline markup to HTML.
func (f *Formatter) Rewrite(text string) string {
	return pipeline.RewriteInline(text)
}

func toParagraphs(rewritten []pipeline.RewrittenParagraph) []Paragraph {
	out := make([]Paragraph, len(rewritten))
	for i, rp := range rewritten {
		out[i] = Paragraph{
			Ordinal:  rp.Ordinal,
			Text:     rp.Text,
			Category: rp.Category,
			HTML:     rp.HTML,
		}
	}
	return out
}
