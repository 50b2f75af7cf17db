// Package consensus cross-compares scored agent responses to surface shared
// concepts, shared claims, per-agent divergences, and rare concepts that
// exactly two agents have in common.
package consensus

import (
	"sort"

	"github.com/nordique-ai/nordique/internal/core"
	"github.com/nordique-ai/nordique/internal/lmc"
)

// DefaultSimilarityThreshold is the claim-clustering cutoff used when none
// is configured.
const DefaultSimilarityThreshold = 0.5

const (
	maxConsensusConcepts = 30
	maxConsensusClaims   = 15
	maxDivergenceList    = 10
	maxEmergentInsights  = 10
	divergenceScanDepth  = 20
)

// Claim is a representative sentence supported by two or more agents.
type Claim struct {
	Claim      string   `json:"claim"`
	Support    int      `json:"support"`
	Agents     []string `json:"ais"`
	Confidence float64  `json:"confidence"`
}

// Divergence lists the concepts an agent leans on that never reached
// consensus.
type Divergence struct {
	Agent    string   `json:"ai"`
	Concepts []string `json:"concepts"`
	Score    float64  `json:"score"`
}

// EmergentInsight is a minority concept shared by exactly one pair of
// agents. Concept1 and Concept2 carry the same token; the pair form mirrors
// the serialized layout consumers already parse.
type EmergentInsight struct {
	Concept1   string  `json:"concept1"`
	Concept2   string  `json:"concept2"`
	Agent1     string  `json:"ai1"`
	Agent2     string  `json:"ai2"`
	Similarity float64 `json:"similarity"`
	Rarity1    float64 `json:"rarity1"`
	Rarity2    float64 `json:"rarity2"`
}

// Consensus groups what the agents agree on.
type Consensus struct {
	Concepts   []string `json:"concepts"`
	Claims     []Claim  `json:"claims"`
	Confidence float64  `json:"confidence"`
}

// Result is the full cross-agent analysis, recomputed from scratch on every
// Analyze call.
type Result struct {
	Consensus        Consensus           `json:"consensus"`
	Divergences      []Divergence        `json:"divergences"`
	Insights         map[string][]string `json:"insights"`
	EmergentInsights []EmergentInsight   `json:"emergent_insights"`
}

// Analyzer runs the consensus pipeline. It holds only configuration and is
// safe for concurrent use; no state is carried across Analyze calls.
type Analyzer struct {
	calc      *lmc.Calculator
	threshold float64
}

// New creates an Analyzer using calc for claim extraction and similarity.
func New(calc *lmc.Calculator, similarityThreshold float64) *Analyzer {
	return &Analyzer{calc: calc, threshold: similarityThreshold}
}

// Threshold returns the claim-clustering similarity cutoff.
func (a *Analyzer) Threshold() float64 {
	return a.threshold
}

// conceptStats tracks a word across all agents: total occurrences and the
// set of agents (by input position) containing it.
type conceptStats struct {
	total  int
	agents map[int]struct{}
}

// agentConcepts is one agent's local word-frequency table, with words kept
// in first-seen order so every downstream tie-break is deterministic.
type agentConcepts struct {
	freq  map[string]int
	order []string
}

// Analyze runs the full pipeline over responses in their given order.
// Fewer than two responses is a defined degenerate case and yields the
// all-empty result. Input order matters: claim clustering is greedy and
// single-pass, and ties everywhere break on first-seen order.
func (a *Analyzer) Analyze(responses []core.AgentResponse) Result {
	if len(responses) < 2 {
		return emptyResult()
	}

	global, firstSeen := extractConcepts(responses)
	concepts := a.consensusConcepts(global, firstSeen, len(responses))

	claims := make([][]string, len(responses))
	for i, r := range responses {
		claims[i] = a.calc.ExtractClaims(r.Content)
	}
	consensusClaims := a.consensusClaims(responses, claims)

	local := localConcepts(responses)
	divergences := a.findDivergences(responses, local, concepts)
	emergent := a.findEmergentInsights(responses, local)
	insights := categorizeConcepts(concepts)

	return Result{
		Consensus: Consensus{
			Concepts:   concepts,
			Claims:     consensusClaims,
			Confidence: consensusConfidence(len(concepts), len(consensusClaims)),
		},
		Divergences:      divergences,
		Insights:         insights,
		EmergentInsights: emergent,
	}
}

func emptyResult() Result {
	return Result{
		Consensus: Consensus{
			Concepts: []string{},
			Claims:   []Claim{},
		},
		Divergences:      []Divergence{},
		Insights:         map[string][]string{},
		EmergentInsights: []EmergentInsight{},
	}
}

// extractConcepts builds the global word table over all agents, recording
// first-seen order for stable sorting.
func extractConcepts(responses []core.AgentResponse) (map[string]*conceptStats, []string) {
	global := make(map[string]*conceptStats)
	var firstSeen []string

	for i, r := range responses {
		for _, w := range lmc.Words(r.Content, 4) {
			st, ok := global[w]
			if !ok {
				st = &conceptStats{agents: make(map[int]struct{})}
				global[w] = st
				firstSeen = append(firstSeen, w)
			}
			st.total++
			st.agents[i] = struct{}{}
		}
	}
	return global, firstSeen
}

// consensusConcepts selects words present in at least half the agents with
// total frequency >= 3, ordered by total frequency descending. Ties keep
// first-seen order; the list is capped at 30.
func (a *Analyzer) consensusConcepts(global map[string]*conceptStats, firstSeen []string, agentCount int) []string {
	half := float64(agentCount) * 0.5

	qualifying := make([]string, 0, len(firstSeen))
	for _, w := range firstSeen {
		st := global[w]
		if float64(len(st.agents)) >= half && st.total >= 3 {
			qualifying = append(qualifying, w)
		}
	}

	sort.SliceStable(qualifying, func(i, j int) bool {
		return global[qualifying[i]].total > global[qualifying[j]].total
	})

	if len(qualifying) > maxConsensusConcepts {
		qualifying = qualifying[:maxConsensusConcepts]
	}
	return qualifying
}

// consensusClaims clusters near-duplicate claims greedily: each agent's
// unconsumed claims seed a cluster in turn, gathering similar unconsumed
// claims from later agents only. This is single-link and order-dependent,
// not a global optimum; the behavior is part of the output contract and
// must not be "improved".
func (a *Analyzer) consensusClaims(responses []core.AgentResponse, claims [][]string) []Claim {
	consumed := make(map[string]bool)
	var clusters []Claim

	for i := range responses {
		for _, seed := range claims[i] {
			if consumed[seed] {
				continue
			}

			supporters := []string{responses[i].Name}
			for j := i + 1; j < len(responses); j++ {
				for _, cand := range claims[j] {
					if consumed[cand] {
						continue
					}
					if a.calc.ClaimsSimilarity(seed, cand) >= a.threshold {
						supporters = append(supporters, responses[j].Name)
						consumed[cand] = true
					}
				}
			}

			if len(supporters) >= 2 {
				clusters = append(clusters, Claim{
					Claim:      seed,
					Support:    len(supporters),
					Agents:     supporters,
					Confidence: float64(len(supporters)) / float64(len(responses)),
				})
			}
			consumed[seed] = true
		}
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].Support > clusters[j].Support
	})
	if len(clusters) > maxConsensusClaims {
		clusters = clusters[:maxConsensusClaims]
	}
	if clusters == nil {
		clusters = []Claim{}
	}
	return clusters
}

// localConcepts builds each agent's word-frequency table.
func localConcepts(responses []core.AgentResponse) []agentConcepts {
	local := make([]agentConcepts, len(responses))
	for i, r := range responses {
		freq := make(map[string]int)
		var order []string
		for _, w := range lmc.Words(r.Content, 4) {
			if _, ok := freq[w]; !ok {
				order = append(order, w)
			}
			freq[w]++
		}
		local[i] = agentConcepts{freq: freq, order: order}
	}
	return local
}

// findDivergences reports, per agent, the repeated concepts among its 20
// most frequent words that never reached consensus. The score is computed
// over the full filtered list; only the stored concept list is capped at 10.
func (a *Analyzer) findDivergences(responses []core.AgentResponse, local []agentConcepts, concepts []string) []Divergence {
	consensusSet := make(map[string]struct{}, len(concepts))
	for _, c := range concepts {
		consensusSet[c] = struct{}{}
	}

	divergences := []Divergence{}
	for i, r := range responses {
		top := topByFrequency(local[i], divergenceScanDepth)

		var unique []string
		for _, w := range top {
			if _, ok := consensusSet[w]; !ok && local[i].freq[w] >= 2 {
				unique = append(unique, w)
			}
		}
		if len(unique) == 0 {
			continue
		}

		score := float64(len(unique)) / float64(maxInt(len(concepts), 1))
		if len(unique) > maxDivergenceList {
			unique = unique[:maxDivergenceList]
		}
		divergences = append(divergences, Divergence{
			Agent:    r.Name,
			Concepts: unique,
			Score:    score,
		})
	}

	sort.SliceStable(divergences, func(i, j int) bool {
		return divergences[i].Score > divergences[j].Score
	})
	return divergences
}

// topByFrequency returns up to n words sorted by local frequency descending,
// ties keeping first-seen order.
func topByFrequency(ac agentConcepts, n int) []string {
	words := make([]string, len(ac.order))
	copy(words, ac.order)
	sort.SliceStable(words, func(i, j int) bool {
		return ac.freq[words[i]] > ac.freq[words[j]]
	})
	if len(words) > n {
		words = words[:n]
	}
	return words
}

// findEmergentInsights scans every agent pair for concepts repeated (freq
// >= 2) on both sides while present in at most half of all agents. For each
// pair, concepts are visited in the first agent's first-seen order, keeping
// the output deterministic for a given input order.
func (a *Analyzer) findEmergentInsights(responses []core.AgentResponse, local []agentConcepts) []EmergentInsight {
	half := float64(len(responses)) * 0.5

	holders := func(concept string) int {
		n := 0
		for k := range local {
			if _, ok := local[k].freq[concept]; ok {
				n++
			}
		}
		return n
	}

	insights := []EmergentInsight{}
	for i := 0; i < len(responses); i++ {
		for j := i + 1; j < len(responses); j++ {
			for _, concept := range local[i].order {
				f2, shared := local[j].freq[concept]
				if !shared {
					continue
				}
				f1 := local[i].freq[concept]
				if f1 < 2 || f2 < 2 {
					continue
				}

				count := holders(concept)
				if float64(count) > half {
					continue
				}
				rarity := 1.0 / float64(count)

				insights = append(insights, EmergentInsight{
					Concept1:   concept,
					Concept2:   concept,
					Agent1:     responses[i].Name,
					Agent2:     responses[j].Name,
					Similarity: float64(minInt(f1, f2)) / float64(maxInt(f1, f2)),
					Rarity1:    rarity,
					Rarity2:    rarity,
				})
			}
		}
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Rarity1 > insights[j].Rarity1
	})
	if len(insights) > maxEmergentInsights {
		insights = insights[:maxEmergentInsights]
	}
	return insights
}

// consensusConfidence combines concept and claim counts into [0,1]:
// 0.6 on concepts (saturating at 20) and 0.4 on claims (saturating at 10).
func consensusConfidence(conceptCount, claimCount int) float64 {
	conceptScore := minFloat(float64(conceptCount)/20.0, 1.0)
	claimScore := minFloat(float64(claimCount)/10.0, 1.0)
	return minFloat(conceptScore*0.6+claimScore*0.4, 1.0)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
