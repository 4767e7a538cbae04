package grok

import "errors"

// ErrEmptyAPIKey indicates that the API key was not provided.
var ErrEmptyAPIKey = errors.New("API key is required")

// ErrEmptyCompletion indicates the API responded without a usable choice.
// The response was well-formed HTTP-wise, so this is not retried: the retry
// budget was already spent inside the completion call.
var ErrEmptyCompletion = errors.New("completion response has no choices")
