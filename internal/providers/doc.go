// Package providers implements the Reviewer interface over external LLM
// endpoints.
//
// Gemini is the only wired provider: a single synchronous POST to the
// generateContent endpoint, bounded by a 30 second timeout, with no retry at
// any layer. A non-2xx status returns an error carrying the raw upstream
// body so the caller can surface it verbatim.
//
// The HTTP client is a struct field so tests can redirect calls to local
// httptest servers without making live API requests.
package providers
