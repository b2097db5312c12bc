package output

import (
	"fmt"
	"io"
	"strings"

	"terraform-review-agent/internal/review"
)

// TextWriter outputs a human-readable review.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, result *review.Result) error {
	ew := &errWriter{w: w}

	s := result.Summary
	ew.println("Terraform Security Review")
	ew.println(strings.Repeat("─", 60))
	ew.printf("Violations: %d total", s.TotalViolations)
	if s.TotalViolations > 0 {
		ew.printf(" (%d high, %d medium, %d low)", s.High, s.Medium, s.Low)
	}
	ew.println("")
	if verdict := review.DetectVerdict(result.Text); verdict != "" {
		ew.printf("Verdict: %s\n", verdict)
	}
	ew.println(strings.Repeat("─", 60))
	ew.println("")
	ew.println(strings.TrimSpace(result.Text))

	return ew.err
}

// errWriter accumulates the first write error so each print call doesn't
// need its own check.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *errWriter) println(args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w, args...)
}
