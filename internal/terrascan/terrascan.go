package terrascan

import (
	"encoding/json"
	"fmt"
)

// ScanSummary holds aggregate violation counts from a Terrascan run.
type ScanSummary struct {
	TotalViolations int `json:"total_violations"`
	High            int `json:"high"`
	Medium          int `json:"medium"`
	Low             int `json:"low"`
}

// Violation is a single policy breach reported by Terrascan. Every field
// is optional in the scanner output; absent fields stay nil and marshal
// as null.
type Violation struct {
	RuleID       *string `json:"rule_id"`
	RuleName     *string `json:"rule_name"`
	Severity     *string `json:"severity"`
	Description  *string `json:"description"`
	ResourceType *string `json:"resource_type"`
	ResourceName *string `json:"resource_name"`
	File         *string `json:"file"`
	Line         *int    `json:"line"`
}

// Findings is the normalized form handed to the prompt builder.
type Findings struct {
	Summary    ScanSummary `json:"summary"`
	Violations []Violation `json:"violations"`
}

// Extract normalizes raw Terrascan output into Findings. It is total over
// any JSON object: missing keys default to empty, missing sub-fields to
// zero or null, and violation order is preserved. It fails only when raw
// is not an object at all.
func Extract(raw any) (Findings, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return Findings{}, fmt.Errorf("terrascan results must be a JSON object, got %T", raw)
	}

	summary, _ := obj["scan_summary"].(map[string]any)
	findings := Findings{
		Summary: ScanSummary{
			TotalViolations: intField(summary, "violated_policies"),
			High:            intField(summary, "high"),
			Medium:          intField(summary, "medium"),
			Low:             intField(summary, "low"),
		},
		Violations: []Violation{},
	}

	rawViolations, _ := obj["violations"].([]any)
	for _, rv := range rawViolations {
		v, _ := rv.(map[string]any)
		findings.Violations = append(findings.Violations, Violation{
			RuleID:       stringField(v, "rule_id"),
			RuleName:     stringField(v, "rule_name"),
			Severity:     stringField(v, "severity"),
			Description:  stringField(v, "description"),
			ResourceType: stringField(v, "resource_type"),
			ResourceName: stringField(v, "resource_name"),
			File:         stringField(v, "file"),
			Line:         intPtrField(v, "line"),
		})
	}

	return findings, nil
}

func stringField(m map[string]any, key string) *string {
	if m == nil {
		return nil
	}
	s, ok := m[key].(string)
	if !ok {
		return nil
	}
	return &s
}

// intField reads a count, tolerating the number representations a JSON
// decoder may produce. Anything else counts as absent.
func intField(m map[string]any, key string) int {
	if m == nil {
		return 0
	}
	switch n := m[key].(type) {
	case float64:
		return int(n)
	case int:
		return n
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	}
	return 0
}

func intPtrField(m map[string]any, key string) *int {
	if m == nil {
		return nil
	}
	switch n := m[key].(type) {
	case float64:
		i := int(n)
		return &i
	case int:
		return &n
	case json.Number:
		if v, err := n.Int64(); err == nil {
			i := int(v)
			return &i
		}
	}
	return nil
}
