package handler

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"terraform-review-agent/internal/config"
	"terraform-review-agent/internal/providers"
	"terraform-review-agent/internal/secrets"
)

type fakeCreds struct {
	calls int
	err   error
}

func (f *fakeCreds) APIKey(ctx context.Context) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "test-key", nil
}

type fakeReviewer struct {
	text  string
	err   error
	panic bool
}

func (f *fakeReviewer) Name() string { return "fake" }

func (f *fakeReviewer) Generate(ctx context.Context, prompt string) (string, error) {
	if f.panic {
		panic("reviewer blew up")
	}
	return f.text, f.err
}

func newTestHandler(t *testing.T, creds CredentialSource, r *fakeReviewer) *Handler {
	t.Helper()
	h, err := New(config.Default(), creds)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	h.newReviewer = func(model, apiKey string) (providers.Reviewer, error) {
		return r, nil
	}
	return h
}

func validResults() map[string]any {
	return map[string]any{
		"violations": []any{
			map[string]any{"rule_id": "AC_AWS_0001", "severity": "HIGH"},
		},
		"scan_summary": map[string]any{"violated_policies": 1.0, "high": 1.0},
	}
}

func TestHandle_MissingResults(t *testing.T) {
	creds := &fakeCreds{}
	h := newTestHandler(t, creds, &fakeReviewer{text: "ok"})

	// Absent and every falsy JSON value count as missing.
	for _, results := range []any{nil, map[string]any{}, []any{}, "", 0.0, false} {
		resp, err := h.Handle(context.Background(), Request{Results: results})
		if err != nil {
			t.Fatalf("Handle(%#v) returned error: %v", results, err)
		}
		if resp.StatusCode != 400 {
			t.Errorf("Handle(%#v) StatusCode = %d, want 400", results, resp.StatusCode)
		}
		if resp.Error != "Missing Terrascan results in payload" {
			t.Errorf("Handle(%#v) Error = %q", results, resp.Error)
		}
		if resp.VerdictSummary != nil || resp.AIReview != "" {
			t.Errorf("Handle(%#v) 400 response should carry no review payload", results)
		}
	}

	if creds.calls != 0 {
		t.Errorf("credential fetched %d times on missing input, want 0", creds.calls)
	}
}

func TestHandle_NonObjectResults(t *testing.T) {
	h := newTestHandler(t, &fakeCreds{}, &fakeReviewer{text: "ok"})

	// Truthy values of the wrong shape are extraction faults, not missing input.
	for _, results := range []any{"not an object", []any{1.0, 2.0}, 7.0, true} {
		resp, err := h.Handle(context.Background(), Request{Results: results})
		if err != nil {
			t.Fatalf("Handle(%#v) returned error: %v", results, err)
		}
		if resp.StatusCode != 500 {
			t.Errorf("Handle(%#v) StatusCode = %d, want 500", results, resp.StatusCode)
		}
		if !strings.Contains(resp.Error, "JSON object") {
			t.Errorf("Handle(%#v) Error = %q, want extraction fault description", results, resp.Error)
		}
	}
}

func TestHandle_Success(t *testing.T) {
	h := newTestHandler(t, &fakeCreds{}, &fakeReviewer{text: "Looks fine. Verdict: APPROVE"})

	resp, err := h.Handle(context.Background(), Request{Results: validResults()})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if resp.AIReview != "Looks fine. Verdict: APPROVE" {
		t.Errorf("AIReview = %q", resp.AIReview)
	}
	if resp.VerdictSummary == nil {
		t.Fatal("VerdictSummary missing")
	}
	if resp.VerdictSummary.TotalViolations != 1 || resp.VerdictSummary.High != 1 {
		t.Errorf("VerdictSummary = %+v, want total 1, high 1", resp.VerdictSummary)
	}
}

func TestHandle_ReviewerFailureDegrades(t *testing.T) {
	h := newTestHandler(t, &fakeCreds{}, &fakeReviewer{
		err: fmt.Errorf("Gemini API HTTP error (status 503): overloaded"),
	})

	resp, err := h.Handle(context.Background(), Request{Results: validResults()})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("StatusCode = %d, want 200 despite reviewer failure", resp.StatusCode)
	}
	if !strings.Contains(resp.AIReview, "overloaded") {
		t.Errorf("AIReview = %q, want error description", resp.AIReview)
	}
	if resp.VerdictSummary == nil || resp.VerdictSummary.TotalViolations != 1 {
		t.Errorf("VerdictSummary = %+v, want extracted summary", resp.VerdictSummary)
	}
}

func TestHandle_CredentialFailureDegrades(t *testing.T) {
	h := newTestHandler(t, &fakeCreds{err: fmt.Errorf("access denied")}, &fakeReviewer{text: "unused"})

	resp, err := h.Handle(context.Background(), Request{Results: validResults()})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(resp.AIReview, "Unexpected error calling Gemini") ||
		!strings.Contains(resp.AIReview, "access denied") {
		t.Errorf("AIReview = %q", resp.AIReview)
	}
}

func TestHandle_PanicRecovered(t *testing.T) {
	h := newTestHandler(t, &fakeCreds{}, &fakeReviewer{panic: true})

	resp, err := h.Handle(context.Background(), Request{Results: validResults()})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if resp.StatusCode != 500 {
		t.Errorf("StatusCode = %d, want 500", resp.StatusCode)
	}
	if !strings.Contains(resp.Error, "reviewer blew up") {
		t.Errorf("Error = %q, want panic description", resp.Error)
	}
}

type countingSecretsAPI struct {
	calls int
}

func (c *countingSecretsAPI) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	c.calls++
	return &secretsmanager.GetSecretValueOutput{
		SecretString: aws.String(`{"GEMINI_API_KEY": "abc"}`),
	}, nil
}

func TestHandle_CredentialFetchedOncePerProcess(t *testing.T) {
	api := &countingSecretsAPI{}
	cfg := config.Default()
	h, err := New(cfg, secrets.NewCache(api, cfg.SecretName, cfg.SecretKey))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	h.newReviewer = func(model, apiKey string) (providers.Reviewer, error) {
		if apiKey != "abc" {
			t.Errorf("apiKey = %q, want abc", apiKey)
		}
		return &fakeReviewer{text: "APPROVE"}, nil
	}

	for i := 0; i < 2; i++ {
		resp, err := h.Handle(context.Background(), Request{Results: validResults()})
		if err != nil {
			t.Fatalf("Handle %d error: %v", i+1, err)
		}
		if resp.StatusCode != 200 {
			t.Fatalf("Handle %d StatusCode = %d", i+1, resp.StatusCode)
		}
	}

	if api.calls != 1 {
		t.Errorf("GetSecretValue calls = %d, want 1 across invocations", api.calls)
	}
}
