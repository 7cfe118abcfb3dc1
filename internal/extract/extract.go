// Package extract pulls the final numeric answer out of free-form model
// output. Well-formed solutions end with "#### <number>"; degraded output
// may not, so a last-number fallback exists as a second, less trusted tier.
package extract

import (
	"regexp"
	"strings"
)

// Method reports which extraction tier produced a value.
type Method int

const (
	// MethodNone means no numeric answer was found.
	MethodNone Method = iota
	// MethodMarker means the value followed the "####" marker.
	MethodMarker
	// MethodFallback means the value is the last number in the text.
	// Callers should treat fallback extractions as less trusted and log them.
	MethodFallback
)

func (m Method) String() string {
	switch m {
	case MethodMarker:
		return "marker"
	case MethodFallback:
		return "fallback"
	default:
		return "none"
	}
}

var (
	markerRe = regexp.MustCompile(`####\s*([-\d\.,]+)`)
	numberRe = regexp.MustCompile(`[-+]?\s*[\d,]+\.?\d*|[-+]?\s*\.?[\d,]+`)
)

// FinalAnswer extracts the final numeric answer from text.
// It returns the normalized value (thousands separators stripped), the
// extraction method, and whether a value was found.
func FinalAnswer(text string) (string, Method, bool) {
	if strings.TrimSpace(text) == "" {
		return "", MethodNone, false
	}

	if m := markerRe.FindStringSubmatch(text); m != nil {
		if v, ok := normalize(m[1]); ok {
			return v, MethodMarker, true
		}
	}

	matches := numberRe.FindAllString(text, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		if v, ok := normalize(matches[i]); ok {
			return v, MethodFallback, true
		}
	}

	return "", MethodNone, false
}

// normalize strips thousands separators and surrounding whitespace.
// A literal that is only punctuation after stripping is rejected.
func normalize(raw string) (string, bool) {
	s := strings.ReplaceAll(raw, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.TrimSpace(s)
	if s == "" || s == "." || s == "-" || s == "+" || s == "-." || s == "+." {
		return "", false
	}
	return s, true
}
