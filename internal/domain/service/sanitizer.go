package service

// Sanitizer strips markup from user-supplied text before it is stored.
type Sanitizer interface {
	// Text removes all tags and surrounding whitespace. Script and style bodies are dropped entirely.
	Text(input string) string
}
