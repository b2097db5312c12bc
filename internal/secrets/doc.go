// Package secrets retrieves the LLM API credential from AWS Secrets Manager
// and caches it for the life of the process.
//
// The secret value is a JSON blob; the credential lives under a named key
// inside it. There is no refresh or rotation handling; a rotated credential
// requires a fresh process.
package secrets
