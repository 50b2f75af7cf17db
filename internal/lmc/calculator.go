// Package lmc implements the per-text scoring engine behind nordique:
// lexical entropy, structural coherence, and the LMC ratio score
// J = C / (H + epsilon).
package lmc

import (
	"math"
	"strings"
	"unicode/utf8"
)

// DefaultEpsilon is the regularization constant used when none is configured.
const DefaultEpsilon = 0.001

// minScorableLength is the text length (in runes) below which entropy and
// coherence degrade to 0 instead of being computed.
const minScorableLength = 50

// stopwords are French filler words excluded from the content-word ratio.
var stopwords = map[string]struct{}{
	"cette": {}, "comme": {}, "dans": {}, "pour": {}, "avec": {}, "sont": {},
	"leurs": {}, "plus": {}, "peut": {}, "être": {}, "fait": {}, "permet": {},
	"avoir": {}, "faire": {}, "entre": {}, "donc": {}, "aussi": {}, "ainsi": {},
	"selon": {}, "toute": {}, "tous": {}, "était": {}, "serait": {},
	"pourrait": {}, "existe": {}, "autres": {}, "chaque": {}, "peuvent": {},
	"encore": {}, "toujours": {}, "quelque": {}, "certains": {}, "plusieurs": {},
}

// negationPhrases mark qualified or nuanced statements. They feed both the
// coherence negation bonus and claim extraction.
var negationPhrases = []string{
	"n'est pas", "ne sont pas", "n'a pas", "ne peut pas", "jamais", "aucun",
}

// Scores bundles the three per-text metrics.
type Scores struct {
	H     float64 `json:"H"`
	C     float64 `json:"C"`
	Score float64 `json:"score"`
}

// Calculator computes LMC scores. It is stateless apart from epsilon and safe
// for concurrent use.
type Calculator struct {
	epsilon float64
}

// New creates a Calculator with the given epsilon. Epsilon must be positive;
// that precondition is enforced at the configuration boundary, not here.
// A non-positive epsilon yields IEEE infinities rather than a panic.
func New(epsilon float64) *Calculator {
	return &Calculator{epsilon: epsilon}
}

// Default returns a Calculator with DefaultEpsilon.
func Default() *Calculator {
	return New(DefaultEpsilon)
}

// Epsilon returns the configured regularization constant.
func (c *Calculator) Epsilon() float64 {
	return c.epsilon
}

// Entropy computes the normalized Shannon entropy of the word-frequency
// distribution of text: H = -sum p*log2(p) over words of 3+ letters,
// divided by 10 and clamped to 1. Raw entropy of natural-language token
// distributions saturates near 10 bits, so the clamp keeps the metric
// bounded without per-corpus calibration. Texts shorter than 50 runes
// score 0.
func (c *Calculator) Entropy(text string) float64 {
	if utf8.RuneCountInString(text) < minScorableLength {
		return 0.0
	}

	words := Words(text, 3)
	if len(words) == 0 {
		return 0.0
	}

	freq := make(map[string]int, len(words))
	for _, w := range words {
		freq[w]++
	}

	total := float64(len(words))
	entropy := 0.0
	for _, count := range freq {
		p := float64(count) / total
		entropy -= p * math.Log2(p)
	}

	return math.Min(entropy/10.0, 1.0)
}

// Coherence computes a weighted composite of four structural signals:
// vocabulary repetition (0.25), sentence development (0.35), content-word
// ratio (0.30), and a small bonus for negated/nuanced statements (0.10).
// Texts shorter than 50 runes score 0; texts without at least two
// qualifying sentences score a flat 0.5. The weighted sum is deliberately
// not clamped, so values slightly above 1 can occur.
func (c *Calculator) Coherence(text string) float64 {
	if utf8.RuneCountInString(text) < minScorableLength {
		return 0.0
	}

	sentences := sentenceSegments(text)
	if len(sentences) < 2 {
		return 0.5
	}

	words := Words(text, 4)
	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}

	wordCount := float64(len(words))
	repetitionRate := 1.0 - float64(len(unique))/math.Max(wordCount, 1)

	avgSentenceLength := wordCount / float64(len(sentences))
	lengthCoherence := math.Min(avgSentenceLength/20.0, 1.0)

	contentWords := 0
	for _, w := range words {
		if _, stop := stopwords[w]; !stop {
			contentWords++
		}
	}
	contentRatio := float64(contentWords) / math.Max(wordCount, 1)

	negationBonus := math.Min(float64(countNegations(text))/10.0, 0.1)

	return repetitionRate*0.25 +
		lengthCoherence*0.35 +
		contentRatio*0.30 +
		negationBonus*0.10
}

// Score computes H, C, and the LMC ratio J = C / (H + epsilon) in one pass.
func (c *Calculator) Score(text string) Scores {
	h := c.Entropy(text)
	co := c.Coherence(text)
	return Scores{
		H:     h,
		C:     co,
		Score: co / (h + c.epsilon),
	}
}

func countNegations(text string) int {
	lower := strings.ToLower(text)
	n := 0
	for _, phrase := range negationPhrases {
		n += strings.Count(lower, phrase)
	}
	return n
}
