package lmc

import (
	"strings"
	"unicode"
)

// frenchLetters is the lowercase alphabet accepted for concept words:
// ASCII letters plus the accented letters used in French.
var frenchLetters = map[rune]struct{}{
	'à': {}, 'â': {}, 'ä': {}, 'é': {}, 'è': {}, 'ê': {}, 'ë': {},
	'ï': {}, 'î': {}, 'ô': {}, 'ö': {}, 'ù': {}, 'û': {}, 'ü': {},
	'œ': {}, 'æ': {}, 'ç': {},
}

func isFrenchLetter(r rune) bool {
	if r >= 'a' && r <= 'z' {
		return true
	}
	_, ok := frenchLetters[r]
	return ok
}

// isWordRune reports whether r can be part of a word run
// (letter, digit, or underscore).
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// Words tokenizes text into lowercase words of the French alphabet with at
// least minLen runes. Tokens are maximal word runs; a run touching a digit,
// underscore, or letter outside the alphabet is rejected whole, so "abc1def"
// yields nothing. Order is the order of appearance, duplicates included.
func Words(text string, minLen int) []string {
	lower := strings.ToLower(text)
	var words []string
	run := make([]rune, 0, 16)
	valid := true

	flush := func() {
		if valid && len(run) >= minLen {
			words = append(words, string(run))
		}
		run = run[:0]
		valid = true
	}

	for _, r := range lower {
		if isWordRune(r) {
			if !isFrenchLetter(r) {
				valid = false
			}
			run = append(run, r)
			continue
		}
		if len(run) > 0 {
			flush()
		}
	}
	if len(run) > 0 {
		flush()
	}
	return words
}

// Terms tokenizes text into lowercase word runs of at least minLen runes,
// accepting any letter, digit, or underscore. Used for claim comparison,
// where proper nouns and numbers still carry signal.
func Terms(text string, minLen int) []string {
	lower := strings.ToLower(text)
	var terms []string
	run := make([]rune, 0, 16)

	for _, r := range lower {
		if isWordRune(r) {
			run = append(run, r)
			continue
		}
		if len(run) >= minLen {
			terms = append(terms, string(run))
		}
		run = run[:0]
	}
	if len(run) >= minLen {
		terms = append(terms, string(run))
	}
	return terms
}

// TermSet returns the distinct Terms of text as a set.
func TermSet(text string, minLen int) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range Terms(text, minLen) {
		set[t] = struct{}{}
	}
	return set
}
