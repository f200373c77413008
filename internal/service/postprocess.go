package service

import (
	"regexp"
	"strings"
)

var outputLabelPattern = regexp.MustCompile(`(?i)^(?:translation|improved text)\s*:\s*`)

// quotePairs maps an opening quote to the closing quote that makes a symmetric pair.
var quotePairs = map[rune]rune{
	'"':      '"',
	'\'':     '\'',
	'\u201c': '\u201d',
	'\u201e': '\u201c',
	'\u00ab': '\u00bb',
}

// cleanOutput removes one surrounding quote pair and a leading label from a
// transform completion. The quote strip runs again after the label so both
// `"Translation: Hallo"` and `Translation: "Hallo"` come out bare. An empty
// result is a malformed response.
func cleanOutput(content string) (string, error) {
	out := strings.TrimSpace(stripQuotePair(strings.TrimSpace(content)))
	if labelled := outputLabelPattern.ReplaceAllString(out, ""); labelled != out {
		out = strings.TrimSpace(stripQuotePair(strings.TrimSpace(labelled)))
	}
	if out == "" {
		return "", ErrMalformedResponse
	}
	return out, nil
}

func stripQuotePair(s string) string {
	r := []rune(s)
	if len(r) < 2 {
		return s
	}
	closing, ok := quotePairs[r[0]]
	if !ok || r[len(r)-1] != closing {
		return s
	}
	return string(r[1 : len(r)-1])
}
