package consensus

import "strings"

// category is a fixed thematic bucket with its trigger keywords.
// Matching is a substring test of the keyword inside the concept word.
type category struct {
	name     string
	keywords []string
}

// categories is evaluated in this fixed order; a concept lands in the first
// bucket that matches and is never listed twice.
var categories = []category{
	{"structure", []string{"système", "architecture", "organisation", "structure", "modèle", "composant"}},
	{"processus", []string{"processus", "méthode", "approche", "mécanisme", "fonctionnement", "évolution"}},
	{"impact", []string{"effet", "impact", "conséquence", "résultat", "influence", "changement"}},
	{"relation", []string{"relation", "lien", "connexion", "interaction", "corrélation", "dépendance"}},
}

// CategoryNames returns the bucket names in evaluation order.
func CategoryNames() []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.name
	}
	return names
}

// categorizeConcepts distributes consensus concepts into the fixed buckets.
// Concepts matching no bucket are dropped from this view; they remain in the
// consensus concept list. All buckets are present in the output, empty ones
// included.
func categorizeConcepts(concepts []string) map[string][]string {
	out := make(map[string][]string, len(categories))
	for _, c := range categories {
		out[c.name] = []string{}
	}

	for _, concept := range concepts {
		for _, c := range categories {
			if matchesCategory(concept, c) {
				out[c.name] = append(out[c.name], concept)
				break
			}
		}
	}
	return out
}

func matchesCategory(concept string, c category) bool {
	for _, kw := range c.keywords {
		if strings.Contains(concept, kw) {
			return true
		}
	}
	return false
}
