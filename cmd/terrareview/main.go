// Terrareview reviews Terrascan findings with Gemini from the command line.
//
// It normalizes scanner output, builds a policy-aware review prompt, calls
// the Gemini generateContent endpoint, and prints the review with a final
// APPROVE / APPROVE_WITH_CHANGES / REJECT verdict.
//
// Usage:
//
//	terrareview review scan.json             # review a Terrascan results file
//	terrareview review scan.json --policy strict --format markdown
//	terrareview prompt scan.json             # print the prompt, no API call
//	terrareview config init                  # write a default config file
//
// The same pipeline runs in AWS Lambda via cmd/lambda, with the API key
// fetched from Secrets Manager instead of the environment.
package main

import (
	"os"

	"terraform-review-agent/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
