package content

import (
	"regexp"
	"strings"
)

var fenceRe = regexp.MustCompile("(?i)```(json)?")

// NormalizeSlides cleans model output for slide extraction: code fences
// and emphasis markers are removed and the text is trimmed. Line breaks
// are kept because slides are separated by blank lines.
func NormalizeSlides(raw string) string {
	return fixpoint(raw, func(s string) string {
		s = fenceRe.ReplaceAllString(s, "")
		s = stripEmphasis(s)
		return strings.TrimSpace(s)
	})
}

// NormalizeQuiz cleans model output for JSON question extraction: code
// fences, every line break and every escaped quote (\") are removed and
// the text is trimmed.
func NormalizeQuiz(raw string) string {
	return fixpoint(raw, func(s string) string {
		s = fenceRe.ReplaceAllString(s, "")
		s = lineBreaks.Replace(s)
		s = strings.ReplaceAll(s, `\"`, "")
		return strings.TrimSpace(s)
	})
}

var lineBreaks = strings.NewReplacer("\r\n", "", "\n", "", "\r", "")

// stripEmphasis removes markdown bold and italic markers.
func stripEmphasis(s string) string {
	return strings.ReplaceAll(s, "*", "")
}

// fixpoint applies step until the text stops changing. Every step only
// deletes characters, so this terminates, and the result is stable under
// another application.
func fixpoint(s string, step func(string) string) string {
	for {
		next := step(s)
		if next == s {
			return s
		}
		s = next
	}
}
