// Package config loads and merges terrareview configuration from multiple
// sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (TERRAREVIEW_MODEL, TERRAREVIEW_SECRET_NAME, etc.)
//  3. Config file ($XDG_CONFIG_HOME/terrareview/config.json)
//  4. Built-in defaults
//
// The defaults mirror the deployed Lambda: model gemini-2.5-flash, secret
// gemini-api-key in us-east-1, the alb-tls review policy.
package config
