package internal

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// HintSuppressed reports whether the message already shows its own default,
// in which case no generated hint is appended.
func HintSuppressed(message string) bool {
	return strings.Contains(message, HintOpenBracket) || strings.Contains(message, HintDefaultMarker)
}

// DefaultHint formats the hint for a string default.
func DefaultHint(value string) string {
	return fmt.Sprintf(HintDefaultFormat, value)
}

// RenderPrompt builds the text written before each read.
//
// An empty hint leaves the message untouched. A suppressed hint collapses to
// a single separating space. Otherwise the hint is appended, with a space in
// between when the message does not already end in whitespace.
func RenderPrompt(message, hint string) string {
	if hint == "" {
		return message
	}
	if HintSuppressed(message) {
		return message + PromptSeparator
	}
	if message != "" {
		last, _ := utf8.DecodeLastRuneInString(message)
		if !unicode.IsSpace(last) {
			message += PromptSeparator
		}
	}
	return message + hint
}
