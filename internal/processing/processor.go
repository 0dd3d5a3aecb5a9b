package processing

import (
	"regexp"
	"strings"
)

var whitespace = regexp.MustCompile(`\s+`)

// Description is one language variant of an advisory summary.
type Description struct {
	Lang  string
	Value string
}

// NormalizeText squeezes runs of whitespace (including newlines) into single
// spaces and trims the result.
func NormalizeText(input string) string {
	if input == "" {
		return ""
	}
	return strings.TrimSpace(whitespace.ReplaceAllString(input, " "))
}

// FirstDescription returns the first variant that still has text after
// normalisation, or an empty string when none does.
func FirstDescription(variants []Description) string {
	for _, d := range variants {
		if text := NormalizeText(d.Value); text != "" {
			return text
		}
	}
	return ""
}

// Truncate shortens text to at most maxRunes runes, appending an ellipsis
// when it had to cut. maxRunes <= 0 disables truncation.
func Truncate(text string, maxRunes int) string {
	if maxRunes <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	cut := strings.TrimSpace(string(runes[:maxRunes]))
	return cut + "..."
}
