// Package pipeline implements the chapter formatting pipeline.
//
// The pipeline has four stages, each a pure function of its input:
//   - Segmenter: splits a raw chapter body into ordered paragraphs
//   - Classifier: assigns one Category per paragraph from an ordered rule table
//   - Rewriter: escapes HTML metacharacters and rewrites emphasis delimiters
//   - Renderer: maps paragraphs to fragments and executes document templates
//
// Stages share no mutable state. Pattern tables are package-level values
// compiled once, and a Renderer's parsed templates are read-only after
// construction, so any number of chapters can flow through the same stage
// values concurrently. Paragraph order is preserved end to end.
//
// Loggers are injected per stage; a zero-value stage logs nothing.
package pipeline
