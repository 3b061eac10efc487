// Package novelfmt turns raw chapter prose into semantically tagged XHTML
// for e-book rendering.
//
// # Quick Start
//
// Create a formatter and format a chapter:
//
//	f, err := novelfmt.NewFormatter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := f.Format(ctx, novelfmt.RawChapter{
//	    Title: "第一章",
//	    Body:  "「你好，」她说道。\n\n（这是内心独白。）",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("chapter_001.xhtml", []byte(result.Document.HTML), 0o644)
//
// The result carries the rendered document and the classified paragraphs.
// Use ChapterResult.Empty to detect chapters without any content.
//
// # Formatting Pipeline
//
// A chapter goes through four stages:
//
//  1. Segmentation into paragraphs, re-splitting long unbroken text at
//     sentence-ending punctuation
//  2. Classification of each paragraph as dialogue, thought, narrator,
//     subtitle or normal prose
//  3. Inline rewriting: HTML escaping, then emphasis and bracket markup
//  4. Rendering into a document template
//
// Every stage is pure. A Formatter is safe for concurrent use.
//
// # Configuration
//
// Use functional options to customize the formatter:
//
//	f, err := novelfmt.NewFormatter(
//	    novelfmt.WithLogger(logger),
//	    novelfmt.WithStyle("main"),
//	    novelfmt.WithAssetPath("/path/to/custom/assets"),
//	)
//
// The formatter never logs unless a zerolog.Logger is supplied.
//
// # Parallel Processing
//
// FormatBatch formats many chapters concurrently and returns results in
// input order:
//
//	results := f.FormatBatch(ctx, chapters, 0) // 0 picks a worker count
//
// # Custom Assets
//
// Override the built-in stylesheet and templates with a directory:
//
//	assets/
//	├── styles/
//	│   └── main.css
//	└── templates/
//	    └── default/
//	        ├── chapter.html
//	        └── illustration.html
//
// Templates are text/template sources. Every value passed to them is already
// HTML-escaped.
package novelfmt
