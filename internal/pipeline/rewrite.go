package pipeline

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// htmlEscaper replaces the five HTML metacharacters. strings.Replacer scans
// once, so "&" in a replacement is never re-escaped.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// substitution is one delimiter rewrite applied to escaped text.
type substitution struct {
	pattern     *regexp.Regexp
	replacement string
}

// Emphasis rewrites, applied in order. Double delimiters run before single
// ones so "**x**" is not consumed as two empty italics.
var emphasisSubstitutions = []substitution{
	{regexp.MustCompile(`\*\*([^*]+)\*\*`), "<strong>${1}</strong>"},
	{regexp.MustCompile(`__([^_]+)__`), "<strong>${1}</strong>"},
	{regexp.MustCompile(`\*([^*]+)\*`), "<em>${1}</em>"},
	{regexp.MustCompile(`_([^_]+)_`), "<em>${1}</em>"},
}

// Bracket rewrites, applied after emphasis.
var specialSubstitutions = []substitution{
	{regexp.MustCompile(`《([^》]+)》`), `<em class="book-title">《${1}》</em>`},
	{regexp.MustCompile(`【([^】]+)】`), `<strong class="special">${1}</strong>`},
}

// EscapeHTML escapes &, <, >, " and ' for safe inclusion in markup.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// Rewriter turns paragraph text into presentation markup.
type Rewriter struct {
	log zerolog.Logger
}

// NewRewriter creates a Rewriter.
func NewRewriter(log zerolog.Logger) *Rewriter {
	return &Rewriter{log: log.With().Str("stage", "rewrite").Logger()}
}

// Rewrite escapes cp's text and rewrites emphasis and bracket delimiters.
// Escaping runs first so inserted tags stay intact. Unmatched delimiters
// are left as literal text.
func (r *Rewriter) Rewrite(cp ClassifiedParagraph) RewrittenParagraph {
	rp := RewrittenParagraph{
		ClassifiedParagraph: cp,
		HTML:                RewriteInline(cp.Text),
	}
	r.log.Trace().Int("ordinal", cp.Ordinal).Int("bytes", len(rp.HTML)).Msg("paragraph rewritten")
	return rp
}

// RewriteAll rewrites paragraphs, preserving order.
func (r *Rewriter) RewriteAll(paragraphs []ClassifiedParagraph) []RewrittenParagraph {
	out := make([]RewrittenParagraph, len(paragraphs))
	for i, cp := range paragraphs {
		out[i] = r.Rewrite(cp)
	}
	return out
}

// RewriteInline escapes text and applies the emphasis and bracket rewrites.
func RewriteInline(text string) string {
	text = EscapeHTML(text)
	for _, sub := range emphasisSubstitutions {
		text = sub.pattern.ReplaceAllString(text, sub.replacement)
	}
	for _, sub := range specialSubstitutions {
		text = sub.pattern.ReplaceAllString(text, sub.replacement)
	}
	return text
}
