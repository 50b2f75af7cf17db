package lmc

import "strings"

// Similarity compares two full texts by normalized Levenshtein distance:
// 1 - distance / len(longer), computed over lowercase runes. Two empty
// texts are identical (1.0); one empty text shares nothing (0.0).
func (c *Calculator) Similarity(text1, text2 string) float64 {
	if text1 == "" && text2 == "" {
		return 1.0
	}
	if text1 == "" || text2 == "" {
		return 0.0
	}

	a := []rune(strings.ToLower(text1))
	b := []rune(strings.ToLower(text2))
	longer, shorter := a, b
	if len(b) > len(a) {
		longer, shorter = b, a
	}

	distance := editDistance(longer, shorter)
	return float64(len(longer)-distance) / float64(len(longer))
}

// editDistance computes the Levenshtein distance with a rolling row,
// O(len(a)*len(b)) time and O(len(b)) memory.
func editDistance(a, b []rune) int {
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i, ra := range a {
		curr[0] = i + 1
		for j, rb := range b {
			cost := 0
			if ra != rb {
				cost = 1
			}
			insertion := prev[j+1] + 1
			deletion := curr[j] + 1
			substitution := prev[j] + cost
			curr[j+1] = min3(insertion, deletion, substitution)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// ClaimsSimilarity compares two claims by Jaccard index over their distinct
// word runs of 4+ runes. Claims without qualifying words score 0.
func (c *Calculator) ClaimsSimilarity(claim1, claim2 string) float64 {
	if claim1 == "" || claim2 == "" {
		return 0.0
	}

	set1 := TermSet(claim1, 4)
	set2 := TermSet(claim2, 4)
	if len(set1) == 0 || len(set2) == 0 {
		return 0.0
	}

	intersection := 0
	for t := range set1 {
		if _, ok := set2[t]; ok {
			intersection++
		}
	}
	union := len(set1) + len(set2) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}
