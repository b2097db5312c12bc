// Package output formats review results for display or machine consumption.
//
// Three formats are supported:
//   - text     — human-readable terminal output (default)
//   - json     — structured result with verdict_summary and ai_review
//   - markdown — PR-comment-friendly with a severity table
//
// Use [GetWriter] to obtain a [Writer] for a given format string, or
// [WriteResult] to handle destination selection (file path or stdout).
package output
