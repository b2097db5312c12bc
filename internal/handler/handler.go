package handler

import (
	"context"
	"fmt"

	"terraform-review-agent/internal/config"
	"terraform-review-agent/internal/providers"
	"terraform-review-agent/internal/review"
	"terraform-review-agent/internal/terrascan"
)

// Request is the invocation payload: raw Terrascan output under "results".
type Request struct {
	Results any `json:"results"`
}

// Response is the invocation result. Success carries the verdict summary and
// review text; failure carries an error description. StatusCode follows HTTP
// conventions even though the Lambda is invoked directly.
type Response struct {
	StatusCode     int                    `json:"statusCode"`
	VerdictSummary *terrascan.ScanSummary `json:"verdict_summary,omitempty"`
	AIReview       string                 `json:"ai_review,omitempty"`
	Error          string                 `json:"error,omitempty"`
}

// CredentialSource resolves the LLM API key.
type CredentialSource interface {
	APIKey(ctx context.Context) (string, error)
}

// Handler orchestrates extract -> prompt -> model call for one invocation.
type Handler struct {
	cfg    config.Config
	creds  CredentialSource
	policy review.Policy

	// newReviewer is a seam for tests; defaults to the Gemini client.
	newReviewer func(model, apiKey string) (providers.Reviewer, error)
}

// New creates a Handler from config and a credential source.
func New(cfg config.Config, creds CredentialSource) (*Handler, error) {
	policy, err := review.ResolvePolicy(cfg.Policy)
	if err != nil {
		return nil, fmt.Errorf("resolving review policy: %w", err)
	}
	return &Handler{
		cfg:    cfg,
		creds:  creds,
		policy: policy,
		newReviewer: func(model, apiKey string) (providers.Reviewer, error) {
			return providers.NewGemini(model, apiKey)
		},
	}, nil
}

// Handle processes one review request. It never returns a Go error to the
// runtime: every fault terminates in a structured Response.
func (h *Handler) Handle(ctx context.Context, req Request) (resp Response, _ error) {
	defer func() {
		if r := recover(); r != nil {
			resp = Response{StatusCode: 500, Error: fmt.Sprintf("%v", r)}
		}
	}()

	if missingResults(req.Results) {
		return Response{StatusCode: 400, Error: "Missing Terrascan results in payload"}, nil
	}

	findings, err := terrascan.Extract(req.Results)
	if err != nil {
		return Response{StatusCode: 500, Error: err.Error()}, nil
	}

	prompt := review.BuildPrompt(findings, h.policy, review.PromptOptions{
		RedactSecrets: h.cfg.RedactSecrets,
	})

	return Response{
		StatusCode:     200,
		VerdictSummary: &findings.Summary,
		AIReview:       h.reviewText(ctx, prompt),
	}, nil
}

// reviewText runs the model call stage. It never fails: any credential or
// transport problem comes back as descriptive text, so the overall request
// still completes with the extracted summary.
func (h *Handler) reviewText(ctx context.Context, prompt string) string {
	apiKey, err := h.creds.APIKey(ctx)
	if err != nil {
		return fmt.Sprintf("Unexpected error calling Gemini: %v", err)
	}

	reviewer, err := h.newReviewer(h.cfg.Model, apiKey)
	if err != nil {
		return fmt.Sprintf("Unexpected error calling Gemini: %v", err)
	}

	text, err := reviewer.Generate(ctx, prompt)
	if err != nil {
		// The error already names the failure stage and carries the raw
		// upstream body on HTTP failures.
		return err.Error()
	}
	return text
}

// missingResults reports whether the results field is absent or falsy:
// nil, an empty object or array, an empty string, zero, or false. Truthy
// values of the wrong shape fall through to extraction and fail there.
func missingResults(results any) bool {
	switch v := results.(type) {
	case nil:
		return true
	case map[string]any:
		return len(v) == 0
	case []any:
		return len(v) == 0
	case string:
		return v == ""
	case float64:
		return v == 0
	case int:
		return v == 0
	case bool:
		return !v
	}
	return false
}
