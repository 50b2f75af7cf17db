// Package session manages one round of multi-agent comparison: admission
// and scoring of agent responses, analysis settings, and a log of past
// analysis runs. It replaces implicit UI session state with an explicit,
// caller-owned value; nothing here is shared between sessions.
package session

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/nordique-ai/nordique/internal/consensus"
	"github.com/nordique-ai/nordique/internal/core"
	"github.com/nordique-ai/nordique/internal/lmc"
)

// Settings are the analysis knobs carried by a session.
type Settings struct {
	Epsilon             float64 `json:"epsilon"`
	SimilarityThreshold float64 `json:"similarity_threshold"`
	MinLength           int     `json:"min_length"`
}

// Entry records one analysis run.
type Entry struct {
	ID        string               `json:"id"`
	Timestamp time.Time            `json:"timestamp"`
	Settings  Settings             `json:"settings"`
	Responses []core.AgentResponse `json:"responses"`
	Result    consensus.Result     `json:"synthesis"`
}

// Session holds the responses under comparison. Not safe for concurrent
// use; each caller owns its session.
type Session struct {
	settings Settings
	calc     *lmc.Calculator
	analyzer *consensus.Analyzer
	order    []string
	byID     map[string]core.AgentResponse
	history  []Entry
}

// New creates a session with the given settings.
func New(settings Settings) *Session {
	s := &Session{
		byID: make(map[string]core.AgentResponse),
	}
	s.applySettings(settings)
	return s
}

func (s *Session) applySettings(settings Settings) {
	s.settings = settings
	s.calc = lmc.New(settings.Epsilon)
	s.analyzer = consensus.New(s.calc, settings.SimilarityThreshold)
}

// Settings returns the current settings.
func (s *Session) Settings() Settings {
	return s.settings
}

// UpdateSettings replaces the settings and rescores every admitted
// response, since H, C, and the score depend on epsilon.
func (s *Session) UpdateSettings(settings Settings) {
	s.applySettings(settings)
	for id, r := range s.byID {
		scores := s.calc.Score(r.Content)
		r.H, r.C, r.Score = scores.H, scores.C, scores.Score
		s.byID[id] = r
	}
}

// SetResponse admits or replaces an agent response under the given slot id,
// scoring it immediately. Content shorter than the configured minimum
// length (in runes) is rejected; the slot is left untouched.
func (s *Session) SetResponse(id, name, content string) (core.AgentResponse, error) {
	if name == "" {
		return core.AgentResponse{}, core.ErrValidation(core.CodeEmptyAgentName,
			"agent name must not be empty")
	}
	if n := utf8.RuneCountInString(content); n < s.settings.MinLength {
		return core.AgentResponse{}, core.ErrValidation(core.CodeTextTooShort,
			fmt.Sprintf("response %q is %d runes, below the minimum of %d", name, n, s.settings.MinLength)).
			WithDetail("length", n).
			WithDetail("min_length", s.settings.MinLength)
	}

	scores := s.calc.Score(content)
	resp := core.AgentResponse{
		ID:      id,
		Name:    name,
		Content: content,
		H:       scores.H,
		C:       scores.C,
		Score:   scores.Score,
	}

	if _, exists := s.byID[id]; !exists {
		s.order = append(s.order, id)
	}
	s.byID[id] = resp
	return resp, nil
}

// Remove drops a response slot.
func (s *Session) Remove(id string) bool {
	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Reset clears all responses but keeps settings and history.
func (s *Session) Reset() {
	s.order = nil
	s.byID = make(map[string]core.AgentResponse)
}

// Responses returns the admitted responses in insertion order.
func (s *Session) Responses() []core.AgentResponse {
	out := make([]core.AgentResponse, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Len returns the number of admitted responses.
func (s *Session) Len() int {
	return len(s.order)
}

// Analyze runs the consensus pipeline over the admitted responses and
// records the run in the session history. At least two responses are
// required; the core's degenerate empty result is reserved for direct
// analyzer callers.
func (s *Session) Analyze() (Entry, error) {
	if len(s.order) < 2 {
		return Entry{}, core.ErrValidation(core.CodeNotEnoughResponses,
			fmt.Sprintf("need at least 2 admitted responses, have %d", len(s.order)))
	}

	responses := s.Responses()
	entry := Entry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Settings:  s.settings,
		Responses: responses,
		Result:    s.analyzer.Analyze(responses),
	}
	s.history = append(s.history, entry)
	return entry, nil
}

// History returns the recorded analysis runs, oldest first.
func (s *Session) History() []Entry {
	out := make([]Entry, len(s.history))
	copy(out, s.history)
	return out
}
