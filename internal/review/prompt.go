package review

import (
	"encoding/json"
	"fmt"
	"strings"

	"terraform-review-agent/internal/redact"
	"terraform-review-agent/internal/terrascan"
)

const rolePrompt = `You are a senior DevOps and Terraform security reviewer.`

// Verdict values the reviewer is instructed to choose from.
const (
	VerdictApprove            = "APPROVE"
	VerdictApproveWithChanges = "APPROVE_WITH_CHANGES"
	VerdictReject             = "REJECT"
)

// PromptOptions adjusts prompt construction.
type PromptOptions struct {
	// RedactSecrets scrubs secret-looking literals from the serialized
	// findings before they are embedded in the prompt.
	RedactSecrets bool
}

// BuildPrompt renders normalized findings and an evaluation policy into the
// instruction prompt sent to the model. Identical inputs always produce an
// identical prompt string; no network, no side effects.
func BuildPrompt(findings terrascan.Findings, policy Policy, opts PromptOptions) string {
	var b strings.Builder

	b.WriteString(rolePrompt)
	b.WriteString("\n\nAnalyze the Terrascan findings below and provide:\n\n")
	b.WriteString("1. Security issues ordered by severity\n")
	b.WriteString("2. Terraform remediation suggestions\n")
	b.WriteString("3. Production risk explanation\n")
	fmt.Fprintf(&b, "4. Final verdict:\n   - %s\n   - %s\n   - %s\n",
		VerdictApprove, VerdictApproveWithChanges, VerdictReject)

	if section := policy.PromptSection(); section != "" {
		b.WriteString(section)
	}

	serialized := serializeFindings(findings)
	if opts.RedactSecrets {
		serialized = redact.Secrets(serialized)
	}

	b.WriteString("\nFindings:\n")
	b.WriteString(serialized)
	b.WriteString("\n")

	return b.String()
}

// serializeFindings renders findings as indented JSON. Struct field order is
// fixed, so equal findings yield byte-identical output.
func serializeFindings(findings terrascan.Findings) string {
	data, err := json.MarshalIndent(findings, "", "  ")
	if err != nil {
		// Findings holds only plain values; MarshalIndent cannot fail on it.
		return fmt.Sprintf("(unserializable findings: %v)", err)
	}
	return string(data)
}
