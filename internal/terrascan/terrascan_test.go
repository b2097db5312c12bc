package terrascan

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}
	return v
}

func TestExtract_MissingSummary(t *testing.T) {
	findings, err := Extract(decode(t, `{"violations": []}`))
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	want := ScanSummary{}
	if findings.Summary != want {
		t.Errorf("Summary = %+v, want all zeros", findings.Summary)
	}
}

func TestExtract_MissingViolations(t *testing.T) {
	findings, err := Extract(decode(t, `{"scan_summary": {"violated_policies": 2, "high": 1, "medium": 1, "low": 0}}`))
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if len(findings.Violations) != 0 {
		t.Errorf("Violations = %d, want 0", len(findings.Violations))
	}
	if findings.Violations == nil {
		t.Error("Violations should be an empty slice, not nil")
	}
	if findings.Summary.TotalViolations != 2 || findings.Summary.High != 1 {
		t.Errorf("Summary = %+v, want total 2, high 1", findings.Summary)
	}
}

func TestExtract_EmptyObject(t *testing.T) {
	findings, err := Extract(decode(t, `{}`))
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if findings.Summary != (ScanSummary{}) {
		t.Errorf("Summary = %+v, want all zeros", findings.Summary)
	}
	if len(findings.Violations) != 0 {
		t.Errorf("Violations = %d, want 0", len(findings.Violations))
	}
}

func TestExtract_OrderAndFieldMapping(t *testing.T) {
	findings, err := Extract(decode(t, `{
		"violations": [
			{"rule_id": "AC_AWS_0001", "rule_name": "albNoHTTPS", "severity": "HIGH",
			 "description": "ALB listener uses HTTP", "resource_type": "aws_lb_listener",
			 "resource_name": "front", "file": "alb.tf", "line": 12},
			{"rule_id": "AC_AWS_0002", "severity": "LOW", "line": 3},
			{"rule_name": "noTags", "severity": "MEDIUM", "file": "main.tf"}
		],
		"scan_summary": {"violated_policies": 3, "high": 1, "medium": 1, "low": 1}
	}`))
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}

	if len(findings.Violations) != 3 {
		t.Fatalf("Violations = %d, want 3", len(findings.Violations))
	}

	v0 := findings.Violations[0]
	if v0.RuleID == nil || *v0.RuleID != "AC_AWS_0001" {
		t.Errorf("Violations[0].RuleID = %v, want AC_AWS_0001", v0.RuleID)
	}
	if v0.RuleName == nil || *v0.RuleName != "albNoHTTPS" {
		t.Errorf("Violations[0].RuleName = %v, want albNoHTTPS", v0.RuleName)
	}
	if v0.Description == nil || *v0.Description != "ALB listener uses HTTP" {
		t.Errorf("Violations[0].Description = %v", v0.Description)
	}
	if v0.ResourceType == nil || *v0.ResourceType != "aws_lb_listener" {
		t.Errorf("Violations[0].ResourceType = %v", v0.ResourceType)
	}
	if v0.ResourceName == nil || *v0.ResourceName != "front" {
		t.Errorf("Violations[0].ResourceName = %v", v0.ResourceName)
	}
	if v0.File == nil || *v0.File != "alb.tf" {
		t.Errorf("Violations[0].File = %v", v0.File)
	}
	if v0.Line == nil || *v0.Line != 12 {
		t.Errorf("Violations[0].Line = %v, want 12", v0.Line)
	}

	v1 := findings.Violations[1]
	if v1.Severity == nil || *v1.Severity != "LOW" {
		t.Errorf("Violations[1].Severity = %v, want LOW", v1.Severity)
	}
	if v1.RuleName != nil || v1.Description != nil || v1.File != nil {
		t.Errorf("Violations[1] missing fields should be nil: %+v", v1)
	}

	v2 := findings.Violations[2]
	if v2.Severity == nil || *v2.Severity != "MEDIUM" {
		t.Errorf("Violations[2].Severity = %v, want MEDIUM", v2.Severity)
	}
	if v2.Line != nil {
		t.Errorf("Violations[2].Line = %v, want nil", v2.Line)
	}
}

func TestExtract_NonObjectInput(t *testing.T) {
	for _, raw := range []any{"a string", []any{1, 2}, 42.0, nil, true} {
		if _, err := Extract(raw); err == nil {
			t.Errorf("Extract(%v) should fail for non-object input", raw)
		}
	}
}

func TestExtract_ToleratesMalformedEntries(t *testing.T) {
	findings, err := Extract(decode(t, `{
		"violations": ["not-an-object", {"rule_id": 17, "line": "twelve"}],
		"scan_summary": {"violated_policies": "many", "high": 1}
	}`))
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if len(findings.Violations) != 2 {
		t.Fatalf("Violations = %d, want 2", len(findings.Violations))
	}
	// Mistyped fields count as absent.
	if findings.Violations[1].RuleID != nil {
		t.Errorf("mistyped rule_id should be nil, got %v", *findings.Violations[1].RuleID)
	}
	if findings.Violations[1].Line != nil {
		t.Errorf("mistyped line should be nil, got %v", *findings.Violations[1].Line)
	}
	if findings.Summary.TotalViolations != 0 {
		t.Errorf("mistyped violated_policies should count as 0, got %d", findings.Summary.TotalViolations)
	}
	if findings.Summary.High != 1 {
		t.Errorf("High = %d, want 1", findings.Summary.High)
	}
}

func TestExtract_JSONNumberCounts(t *testing.T) {
	raw := map[string]any{
		"scan_summary": map[string]any{
			"violated_policies": json.Number("5"),
			"high":              2,
			"medium":            2.0,
		},
	}
	findings, err := Extract(raw)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if findings.Summary.TotalViolations != 5 || findings.Summary.High != 2 || findings.Summary.Medium != 2 {
		t.Errorf("Summary = %+v, want 5/2/2/0", findings.Summary)
	}
}
