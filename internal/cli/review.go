package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"terraform-review-agent/internal/config"
	"terraform-review-agent/internal/output"
	"terraform-review-agent/internal/providers"
	"terraform-review-agent/internal/review"
	"terraform-review-agent/internal/terrascan"
)

var (
	flagModel    string
	flagPolicy   string
	flagFormat   string
	flagOut      string
	flagNoRedact bool
)

func addReviewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagModel, "model", "", "Gemini model name")
	cmd.Flags().StringVar(&flagPolicy, "policy", "", "Review policy: builtin name (alb-tls, strict) or path to a policy file")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json, markdown)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction in the prompt (use with caution)")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagPolicy != "" {
		m["policy"] = flagPolicy
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	return m
}

var reviewCmd = &cobra.Command{
	Use:   "review <terrascan.json>",
	Short: "Review a Terrascan results file with Gemini",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Local convenience; a missing .env is fine.
		_ = godotenv.Load()

		cfg, err := config.Load(buildOverrides())
		if err != nil {
			exitCode = ExitRuntimeError
			return err
		}
		if flagNoRedact {
			cfg.RedactSecrets = false
			fmt.Fprintln(os.Stderr, "WARNING: secret redaction is disabled")
		}

		findings, policy, err := loadFindings(args[0], cfg)
		if err != nil {
			exitCode = ExitRuntimeError
			return err
		}

		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			apiKey = os.Getenv("GOOGLE_API_KEY")
		}
		if apiKey == "" {
			exitCode = ExitAuthError
			return fmt.Errorf("GEMINI_API_KEY (or GOOGLE_API_KEY) environment variable is not set")
		}

		gemini, err := providers.NewGemini(cfg.Model, apiKey)
		if err != nil {
			exitCode = ExitRuntimeError
			return err
		}

		prompt := review.BuildPrompt(findings, policy, review.PromptOptions{
			RedactSecrets: cfg.RedactSecrets,
		})

		text, err := gemini.Generate(context.Background(), prompt)
		if err != nil {
			exitCode = ExitRuntimeError
			return fmt.Errorf("review failed: %w", err)
		}

		result := &review.Result{Summary: findings.Summary, Text: text}
		if err := output.WriteResult(result, cfg.Format, flagOut); err != nil {
			exitCode = ExitRuntimeError
			return err
		}

		if review.DetectVerdict(text) == review.VerdictReject {
			exitCode = ExitReject
		}
		return nil
	},
}

var promptCmd = &cobra.Command{
	Use:   "prompt <terrascan.json>",
	Short: "Print the prompt that review would send, without calling the API",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			exitCode = ExitRuntimeError
			return err
		}
		if flagNoRedact {
			cfg.RedactSecrets = false
		}

		findings, policy, err := loadFindings(args[0], cfg)
		if err != nil {
			exitCode = ExitRuntimeError
			return err
		}

		fmt.Fprint(os.Stdout, review.BuildPrompt(findings, policy, review.PromptOptions{
			RedactSecrets: cfg.RedactSecrets,
		}))
		return nil
	},
}

// loadFindings reads a Terrascan output file and resolves the review policy.
// Both the raw scanner output and the Lambda payload wrapper
// {"results": {...}} are accepted.
func loadFindings(path string, cfg config.Config) (terrascan.Findings, review.Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return terrascan.Findings{}, review.Policy{}, fmt.Errorf("reading scan file: %w", err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return terrascan.Findings{}, review.Policy{}, fmt.Errorf("parsing scan file: %w", err)
	}
	if obj, ok := raw.(map[string]any); ok {
		if results, ok := obj["results"].(map[string]any); ok {
			raw = results
		}
	}

	findings, err := terrascan.Extract(raw)
	if err != nil {
		return terrascan.Findings{}, review.Policy{}, err
	}

	policy, err := review.ResolvePolicy(cfg.Policy)
	if err != nil {
		return terrascan.Findings{}, review.Policy{}, err
	}
	return findings, policy, nil
}

func init() {
	addReviewFlags(reviewCmd)
	addReviewFlags(promptCmd)
}
