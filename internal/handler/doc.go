// Package handler is the Lambda entry point: it sequences extraction, prompt
// construction, and the model call, and maps every failure to a structured
// response.
//
// Missing input is a 400, an extraction fault or panic is a 500, and a failed
// model call degrades into error text inside ai_review with status 200, so
// the caller always receives some review text.
package handler
