// Package cli wires together the Cobra command tree for the terrareview
// binary.
//
// It defines the root command and all subcommands (review, prompt, config,
// version), binds flags, reads configuration, runs the review pipeline
// locally, and returns deterministic exit codes: 1 signals a REJECT verdict
// for CI gating, 3 a missing API key, 4 a runtime failure.
package cli
