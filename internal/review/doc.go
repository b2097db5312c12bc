// Package review builds the instruction prompt for Terraform security
// review and defines the review result types.
//
// [BuildPrompt] is deterministic and pure: equal findings and policy produce
// a byte-identical prompt. The prompt asks for severity-ordered issues,
// remediation suggestions, a production risk explanation, and a final verdict
// from the enumerated set (APPROVE, APPROVE_WITH_CHANGES, REJECT).
//
// Evaluation rules are carried by [Policy] values rather than hardcoded
// text. Two built-in variants ship with the tool: "alb-tls" accepts TLS
// termination at a load balancer, "strict" requires HTTPS end to end.
// Custom policy packs load from JSON files via [LoadPolicy].
package review
