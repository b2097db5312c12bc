package output

import (
	"io"
	"strings"

	"terraform-review-agent/internal/review"
)

// MarkdownWriter outputs a PR-comment-friendly markdown review.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, result *review.Result) error {
	ew := &errWriter{w: w}
	s := result.Summary

	ew.printf("## Terraform Security Review\n\n")

	if verdict := review.DetectVerdict(result.Text); verdict != "" {
		ew.printf("**Verdict: `%s`**\n\n", verdict)
	}

	ew.printf("| Severity | Count |\n")
	ew.printf("|----------|-------|\n")
	ew.printf("| High     | %d    |\n", s.High)
	ew.printf("| Medium   | %d    |\n", s.Medium)
	ew.printf("| Low      | %d    |\n", s.Low)
	ew.printf("| **Total** | **%d** |\n\n", s.TotalViolations)

	ew.printf("%s\n", strings.TrimSpace(result.Text))

	return ew.err
}
