package review

import (
	"regexp"

	"terraform-review-agent/internal/terrascan"
)

// Result is the outcome of one review run: the aggregate counts that were
// reviewed and the generated review text. The text may be an error
// description when the model call failed; the call site decides whether
// that distinction matters.
type Result struct {
	Summary terrascan.ScanSummary `json:"verdict_summary"`
	Text    string                `json:"ai_review"`
}

// verdictPatterns for the three verdict tokens. Word boundaries keep
// APPROVE from matching inside APPROVE_WITH_CHANGES or longer identifiers.
var verdictPatterns = []struct {
	verdict string
	re      *regexp.Regexp
}{
	{VerdictApproveWithChanges, regexp.MustCompile(`\bAPPROVE_WITH_CHANGES\b`)},
	{VerdictReject, regexp.MustCompile(`\bREJECT\b`)},
	{VerdictApprove, regexp.MustCompile(`\bAPPROVE\b`)},
}

// DetectVerdict scans review text for the verdict token the model was
// instructed to emit. Returns the empty string when none is present.
// The prompt places the final verdict last, so when several tokens appear
// (a review may discuss REJECT in prose before concluding APPROVE) the
// last occurrence wins.
func DetectVerdict(text string) string {
	verdict, last := "", -1
	for _, p := range verdictPatterns {
		locs := p.re.FindAllStringIndex(text, -1)
		if len(locs) == 0 {
			continue
		}
		if start := locs[len(locs)-1][0]; start > last {
			last = start
			verdict = p.verdict
		}
	}
	return verdict
}
