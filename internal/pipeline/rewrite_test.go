package pipeline

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestEscapeHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "plain text unchanged", input: "普通段落内容。", want: "普通段落内容。"},
		{name: "ampersand", input: "A&B", want: "A&amp;B"},
		{name: "angle brackets", input: "<script>", want: "&lt;script&gt;"},
		{name: "double quote", input: `"x"`, want: "&quot;x&quot;"},
		{name: "single quote", input: "it's", want: "it&#x27;s"},
		{name: "existing entity re-escaped", input: "&amp;", want: "&amp;amp;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := EscapeHTML(tt.input); got != tt.want {
				t.Errorf("EscapeHTML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRewriteInline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bold asterisks", input: "**重要**内容", want: "<strong>重要</strong>内容"},
		{name: "bold underscores", input: "__重要__", want: "<strong>重要</strong>"},
		{name: "italic asterisk", input: "*轻声*说", want: "<em>轻声</em>说"},
		{name: "italic underscore", input: "_轻声_", want: "<em>轻声</em>"},
		{name: "triple asterisks nest", input: "***强***", want: "<em><strong>强</strong></em>"},
		{name: "book title keeps brackets", input: "读《三体》", want: `读<em class="book-title">《三体》</em>`},
		{name: "special drops brackets", input: "【警告】小心", want: `<strong class="special">警告</strong>小心`},
		{name: "empty book title untouched", input: "《》", want: "《》"},
		{name: "unmatched bold left literal", input: "**未闭合", want: "**未闭合"},
		{name: "lone asterisk left literal", input: "3 * 4", want: "3 * 4"},
		{name: "escaping precedes tags", input: "**<b>**", want: "<strong>&lt;b&gt;</strong>"},
		{name: "quotes inside emphasis", input: `*"嗯"*`, want: "<em>&quot;嗯&quot;</em>"},
		{name: "no delimiters", input: "普通段落内容。", want: "普通段落内容。"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := RewriteInline(tt.input); got != tt.want {
				t.Errorf("RewriteInline(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRewriter_RewriteAll(t *testing.T) {
	t.Parallel()

	in := []ClassifiedParagraph{
		{Paragraph: Paragraph{Ordinal: 0, Text: "**一**"}, Category: CategoryNormal},
		{Paragraph: Paragraph{Ordinal: 1, Text: "「二」"}, Category: CategoryDialogue},
	}

	got := NewRewriter(zerolog.Nop()).RewriteAll(in)
	if len(got) != 2 {
		t.Fatalf("RewriteAll() returned %d, want 2", len(got))
	}
	if got[0].HTML != "<strong>一</strong>" || got[0].Text != "**一**" {
		t.Errorf("paragraph 0 = %+v", got[0])
	}
	if got[1].Category != CategoryDialogue || got[1].Ordinal != 1 {
		t.Errorf("paragraph 1 lost classification: %+v", got[1])
	}
}

// rewriterTags are the only tags RewriteInline may emit.
var rewriterTags = strings.NewReplacer(
	"<strong>", "",
	"</strong>", "",
	"<em>", "",
	"</em>", "",
	`<em class="book-title">`, "",
	`<strong class="special">`, "",
)

// knownEntities are the only entities RewriteInline may emit.
var knownEntities = strings.NewReplacer(
	"&amp;", "",
	"&lt;", "",
	"&gt;", "",
	"&quot;", "",
	"&#x27;", "",
)

func FuzzRewrite(f *testing.F) {
	f.Add("**重要**内容")
	f.Add(`<a href="x">'&'</a>`)
	f.Add("《**书**》【_注_】")
	f.Add("***")
	f.Add("&lt;")

	f.Fuzz(func(t *testing.T, input string) {
		out := knownEntities.Replace(rewriterTags.Replace(RewriteInline(input)))
		if strings.ContainsAny(out, `<>&"'`) {
			t.Fatalf("RewriteInline(%q) leaked a metacharacter: %q", input, out)
		}
	})
}

func FuzzEscapeHTML_Idempotent(f *testing.F) {
	f.Add("普通段落内容。")
	f.Add("plain ascii")

	f.Fuzz(func(t *testing.T, input string) {
		if strings.ContainsAny(input, `<>&"'`) {
			return
		}
		if got := EscapeHTML(input); got != input {
			t.Fatalf("EscapeHTML(%q) = %q, want unchanged", input, got)
		}
	})
}
