package chat

import "strings"

// Sanitize normalizes model output before it reaches the delivery
// surface: trims whitespace and strips a stray enclosing quote pair
// the model sometimes wraps answers in.
func Sanitize(text string) string {
	text = strings.TrimSpace(text)
	for len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = strings.TrimSpace(text[1 : len(text)-1])
	}
	return text
}
