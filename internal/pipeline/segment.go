package pipeline

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// Segmentation thresholds, in runes.
const (
	// ResplitMinRunes is the length a block must exceed before it is
	// re-split at sentence boundaries.
	ResplitMinRunes = 200

	// ParagraphMinRunes is the length the re-split buffer must exceed
	// before it is emitted as a paragraph.
	ParagraphMinRunes = 50
)

var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Whitespace run holding at least two line breaks
	blankLineRun = regexp.MustCompile(`\n[ \t\f\v\p{Zs}]*\n[\s\p{Zs}]*`)

	// Sentence-terminal mark immediately followed by a line break
	sentenceBreak = regexp.MustCompile(`([。！？])\n`)
)

// Segmenter splits raw chapter bodies into paragraphs.
type Segmenter struct {
	log zerolog.Logger
}

// NewSegmenter creates a Segmenter that reports re-splits to log.
func NewSegmenter(log zerolog.Logger) *Segmenter {
	return &Segmenter{log: log.With().Str("stage", "segment").Logger()}
}

// Segment splits body on blank lines, re-splits overlong blocks at sentence
// boundaries, and returns the trimmed, non-empty results in order.
// An empty or whitespace-only body yields an empty slice.
func (s *Segmenter) Segment(body string) []Paragraph {
	body = normalizeLineEndings(body)

	var texts []string
	for _, block := range blankLineRun.Split(body, -1) {
		if !needsResplit(block) {
			texts = append(texts, block)
			continue
		}
		parts := resplit(block)
		s.log.Debug().
			Int("runes", utf8.RuneCountInString(block)).
			Int("parts", len(parts)).
			Msg("re-split long block")
		texts = append(texts, parts...)
	}

	paragraphs := make([]Paragraph, 0, len(texts))
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		paragraphs = append(paragraphs, Paragraph{Ordinal: len(paragraphs), Text: text})
	}
	return paragraphs
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// needsResplit reports whether block is long enough and still holds line breaks.
func needsResplit(block string) bool {
	return utf8.RuneCountInString(block) > ResplitMinRunes && strings.Contains(block, "\n")
}

// resplit breaks block after sentence-terminal marks followed by a line break.
// The line break is consumed. Text accumulates until the buffer exceeds
// ParagraphMinRunes at a sentence end, so short sentences merge with the next.
func resplit(block string) []string {
	var (
		parts []string
		buf   strings.Builder
		last  int
	)

	for _, m := range sentenceBreak.FindAllStringSubmatchIndex(block, -1) {
		buf.WriteString(block[last:m[2]])
		buf.WriteString(block[m[2]:m[3]])
		last = m[1]

		if utf8.RuneCountInString(buf.String()) > ParagraphMinRunes {
			parts = append(parts, buf.String())
			buf.Reset()
		}
	}

	buf.WriteString(block[last:])
	if strings.TrimSpace(buf.String()) != "" {
		parts = append(parts, buf.String())
	}
	return parts
}
