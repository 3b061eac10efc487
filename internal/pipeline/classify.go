package pipeline

import (
	"regexp"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// SubtitleMaxRunes is the longest paragraph still considered a subtitle.
const SubtitleMaxRunes = 50

// Pattern tables. Built once and shared read-only.
var (
	// Anchored at the paragraph start; only tried on short paragraphs.
	// Matches "1、", "二.", "第三章", "*** 标题 ***" and "=== 标题 ===".
	subtitlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\p{Nd}+[、.]`),
		regexp.MustCompile(`^[一二三四五六七八九十]+[、.]`),
		regexp.MustCompile(`^第[一二三四五六七八九十\p{Nd}]+[章节部分]`),
		regexp.MustCompile(`^\*+[\s\p{Z}]*[\p{L}\p{N}_]+[\s\p{Z}]*\*+$`),
		regexp.MustCompile(`^=+[\s\p{Z}]*[\p{L}\p{N}_]+[\s\p{Z}]*=+$`),
	}

	dialoguePatterns = []*regexp.Regexp{
		regexp.MustCompile(`"[^"]*"`),
		regexp.MustCompile(`“[^”]*”`),
		regexp.MustCompile(`「[^」]*」`),
		regexp.MustCompile(`『[^』]*』`),
	}

	thoughtPatterns = []*regexp.Regexp{
		regexp.MustCompile(`（[^）]*）`),
		regexp.MustCompile(`\([^)]*\)`),
		regexp.MustCompile(`——[^—]*——`),
		regexp.MustCompile(`…[^…]*…`),
	}

	// Closing marks are optional: a lone marker is enough.
	narratorPatterns = []*regexp.Regexp{
		regexp.MustCompile(`※[^※]*※?`),
		regexp.MustCompile(`＊[^＊]*＊?`),
		regexp.MustCompile(`★[^★]*★?`),
		regexp.MustCompile(`☆[^☆]*☆?`),
		regexp.MustCompile(`\[[^\]]*\]`),
	}
)

// Rule pairs a predicate with the category it assigns.
type Rule struct {
	Category Category
	Match    func(text string) bool
}

// defaultRules is the classification table. Order is priority.
var defaultRules = []Rule{
	{Category: CategorySubtitle, Match: isSubtitle},
	{Category: CategoryDialogue, Match: containsAny(dialoguePatterns)},
	{Category: CategoryThought, Match: containsAny(thoughtPatterns)},
	{Category: CategoryNarrator, Match: containsAny(narratorPatterns)},
}

// Classifier assigns a category to each paragraph. First matching rule wins;
// a paragraph no rule matches is CategoryNormal.
type Classifier struct {
	rules []Rule
	log   zerolog.Logger
}

// NewClassifier creates a Classifier using the default rule table.
func NewClassifier(log zerolog.Logger) *Classifier {
	return &Classifier{
		rules: defaultRules,
		log:   log.With().Str("stage", "classify").Logger(),
	}
}

// Rules returns a copy of the rule table in priority order.
func (c *Classifier) Rules() []Rule {
	rules := make([]Rule, len(c.rules))
	copy(rules, c.rules)
	return rules
}

// Classify returns the category of p. It never fails.
func (c *Classifier) Classify(p Paragraph) Category {
	for _, rule := range c.rules {
		if rule.Match(p.Text) {
			c.log.Trace().Int("ordinal", p.Ordinal).Str("category", string(rule.Category)).Msg("rule matched")
			return rule.Category
		}
	}
	return CategoryNormal
}

// ClassifyAll classifies paragraphs, preserving order.
func (c *Classifier) ClassifyAll(paragraphs []Paragraph) []ClassifiedParagraph {
	out := make([]ClassifiedParagraph, len(paragraphs))
	for i, p := range paragraphs {
		out[i] = ClassifiedParagraph{Paragraph: p, Category: c.Classify(p)}
	}
	return out
}

// isSubtitle reports whether text is short and shaped like a heading.
func isSubtitle(text string) bool {
	if utf8.RuneCountInString(text) > SubtitleMaxRunes {
		return false
	}
	return containsAny(subtitlePatterns)(text)
}

// containsAny builds a predicate matching when any pattern is found in text.
func containsAny(patterns []*regexp.Regexp) func(string) bool {
	return func(text string) bool {
		for _, re := range patterns {
			if re.MatchString(text) {
				return true
			}
		}
		return false
	}
}
