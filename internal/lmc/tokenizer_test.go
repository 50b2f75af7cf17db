package lmc

import (
	"reflect"
	"testing"
)

func TestWords_FrenchAlphabet(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		minLen int
		want   []string
	}{
		{
			name:   "basic tokenization",
			text:   "Le système fonctionne bien",
			minLen: 4,
			want:   []string{"système", "fonctionne", "bien"},
		},
		{
			name:   "short words dropped",
			text:   "Le chat dort sur le lit",
			minLen: 4,
			want:   []string{"chat", "dort"},
		},
		{
			name:   "duplicates kept in order",
			text:   "structure puis structure encore",
			minLen: 4,
			want:   []string{"structure", "puis", "structure", "encore"},
		},
		{
			name:   "accented words accepted",
			text:   "également présent évalué",
			minLen: 4,
			want:   []string{"également", "présent", "évalué"},
		},
		{
			name:   "digit invalidates the whole run",
			text:   "abc1def quantique",
			minLen: 4,
			want:   []string{"quantique"},
		},
		{
			name:   "underscore invalidates the run",
			text:   "mot_clef valide",
			minLen: 4,
			want:   []string{"valide"},
		},
		{
			name:   "empty text",
			text:   "",
			minLen: 4,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Words(tt.text, tt.minLen)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Words(%q, %d) = %v, want %v", tt.text, tt.minLen, got, tt.want)
			}
		})
	}
}

func TestWords_MinLenCountsRunes(t *testing.T) {
	// "été" is 3 runes even though its UTF-8 encoding is longer.
	got := Words("été chaud", 3)
	want := []string{"été", "chaud"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Words() = %v, want %v", got, want)
	}
}

func TestTerms_AcceptsDigits(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		minLen int
		want   []string
	}{
		{
			name:   "alphanumeric tokens kept",
			text:   "le modèle gpt4 répond vite",
			minLen: 4,
			want:   []string{"modèle", "gpt4", "répond", "vite"},
		},
		{
			name:   "punctuation separates",
			text:   "vite,vite;vite",
			minLen: 4,
			want:   []string{"vite", "vite", "vite"},
		},
		{
			name:   "empty text",
			text:   "",
			minLen: 4,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Terms(tt.text, tt.minLen)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Terms(%q, %d) = %v, want %v", tt.text, tt.minLen, got, tt.want)
			}
		})
	}
}

func TestTermSet_Dedupes(t *testing.T) {
	set := TermSet("note note note finale", 4)
	if len(set) != 2 {
		t.Fatalf("TermSet() has %d entries, want 2", len(set))
	}
	if _, ok := set["note"]; !ok {
		t.Error("TermSet() missing \"note\"")
	}
	if _, ok := set["finale"]; !ok {
		t.Error("TermSet() missing \"finale\"")
	}
}
