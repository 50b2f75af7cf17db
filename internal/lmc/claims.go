package lmc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxClaims caps the number of claims extracted from a single text.
const maxClaims = 20

// assertionMarkers flag sentences that state something about the world.
// Matched as plain substrings of the lowercase sentence; "est " and "sont "
// keep their trailing space to avoid firing inside longer words.
var assertionMarkers = []string{
	"est ", "sont ", "représente", "correspond", "signifie", "implique",
	"démontre", "prouve", "permet", "cause", "entraîne", "résulte",
	"montre", "indique", "suggère", "confirme", "révèle", "favorise",
	"aide", "améliore", "réduit", "augmente", "consiste",
}

// splitRaw cuts text on sentence punctuation followed by whitespace and,
// when paragraphBreaks is set, on runs of two or more newlines. The
// separator is consumed; segments are returned untrimmed so callers can
// apply the legacy length filters on the raw segment.
func splitRaw(text string, paragraphBreaks bool) []string {
	runes := []rune(text)
	var segs []string
	start := 0
	i := 0
	for i < len(runes) {
		r := runes[i]
		if (r == '.' || r == '!' || r == '?') && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			segs = append(segs, string(runes[start:i]))
			i++
			for i < len(runes) && unicode.IsSpace(runes[i]) {
				i++
			}
			start = i
			continue
		}
		if paragraphBreaks && r == '\n' && i+1 < len(runes) && runes[i+1] == '\n' {
			segs = append(segs, string(runes[start:i]))
			for i < len(runes) && runes[i] == '\n' {
				i++
			}
			start = i
			continue
		}
		i++
	}
	segs = append(segs, string(runes[start:]))
	return segs
}

// sentenceSegments returns the trimmed sentences used for coherence scoring:
// segments whose raw length exceeds 20 runes.
func sentenceSegments(text string) []string {
	segs := splitRaw(text, false)
	out := make([]string, 0, len(segs))
	for _, s := range segs {
		if utf8.RuneCountInString(s) > 20 {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

// SplitSentences splits text into sentences on punctuation followed by
// whitespace or on blank lines, keeping only segments strictly between
// 20 and 500 runes. Order is preserved.
func (c *Calculator) SplitSentences(text string) []string {
	if text == "" {
		return nil
	}
	segs := splitRaw(text, true)
	out := make([]string, 0, len(segs))
	for _, s := range segs {
		if n := utf8.RuneCountInString(s); n > 20 && n < 500 {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

// ExtractClaims returns up to 20 sentences that assert something: sentences
// containing an assertion marker or a negation phrase. Texts shorter than
// 100 runes yield no claims. Input order is preserved.
func (c *Calculator) ExtractClaims(text string) []string {
	if utf8.RuneCountInString(text) < 100 {
		return nil
	}

	var claims []string
	for _, sentence := range c.SplitSentences(text) {
		lower := strings.ToLower(sentence)
		if containsAny(lower, assertionMarkers) || containsAny(lower, negationPhrases) {
			claims = append(claims, sentence)
			if len(claims) == maxClaims {
				break
			}
		}
	}
	return claims
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
