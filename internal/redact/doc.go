// Package redact removes secret-looking literals from findings text before
// it is sent to the LLM.
//
// Detection uses regex heuristics covering common secret shapes: API keys,
// AWS access key IDs and secret access keys, bearer tokens, private key
// blocks, and generic secret/token/password assignments. Scanner findings
// quote fragments of Terraform source, which is where these leak in.
package redact
