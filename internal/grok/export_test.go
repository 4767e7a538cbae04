package grok

// Exports for testing. These allow black-box tests to inject dependencies
// without modifying the public API.

// WithChatCompleter injects a mock chat completer.
var WithChatCompleter = withChatCompleter

// Function exports for unit testing internal logic.
var (
	ClassifyError = classifyError
	Truncate      = truncate
)
