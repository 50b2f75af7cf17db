package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/nordique-ai/nordique/internal/config"
	"github.com/nordique-ai/nordique/internal/core"
	"github.com/nordique-ai/nordique/internal/lmc"
	"github.com/nordique-ai/nordique/internal/session"
)

// scoreRequest asks for the LMC scores of a single text.
type scoreRequest struct {
	Text    string   `json:"text"`
	Epsilon *float64 `json:"epsilon,omitempty"`
}

// scoreResponse carries the scores plus the measured length in runes.
type scoreResponse struct {
	H      float64 `json:"H"`
	C      float64 `json:"C"`
	Score  float64 `json:"score"`
	Length int     `json:"length"`
}

// analyzeRequest asks for a full consensus analysis. Settings left unset
// fall back to the preset (if named) and then the server defaults.
type analyzeRequest struct {
	Responses []struct {
		Name    string `json:"name"`
		Content string `json:"content"`
	} `json:"responses"`
	Preset              string   `json:"preset,omitempty"`
	Epsilon             *float64 `json:"epsilon,omitempty"`
	SimilarityThreshold *float64 `json:"similarity_threshold,omitempty"`
	MinLength           *int     `json:"min_length,omitempty"`
}

// handleScore scores one text.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	epsilon := s.defaults.Epsilon
	if req.Epsilon != nil {
		epsilon = *req.Epsilon
	}
	if epsilon <= 0 {
		respondDomainError(w, core.ErrValidation(core.CodeInvalidEpsilon,
			fmt.Sprintf("epsilon must be positive, got %g", epsilon)))
		return
	}

	scores := lmc.New(epsilon).Score(req.Text)
	respondJSON(w, http.StatusOK, scoreResponse{
		H:      scores.H,
		C:      scores.C,
		Score:  scores.Score,
		Length: utf8.RuneCountInString(req.Text),
	})
}

// handleAnalyze runs the full consensus pipeline over the submitted
// responses. The run is persisted when a history store is attached.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	settings, err := s.resolveSettings(req)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	sess := session.New(settings)
	for _, resp := range req.Responses {
		if _, err := sess.SetResponse(resp.Name, resp.Name, resp.Content); err != nil {
			respondDomainError(w, err)
			return
		}
	}

	entry, err := sess.Analyze()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if s.store != nil {
		if err := s.store.Save(r.Context(), entry); err != nil {
			s.logger.Error("failed to persist analysis", "analysis_id", entry.ID, "error", err)
			respondDomainError(w, err)
			return
		}
	}

	respondJSON(w, http.StatusOK, entry)
}

// resolveSettings layers request overrides on top of the preset (if any) on
// top of the server defaults, then validates the result.
func (s *Server) resolveSettings(req analyzeRequest) (session.Settings, error) {
	cfg := config.Config{
		Log:      config.LogConfig{Level: "info", Format: "auto"},
		Analysis: s.defaults,
	}
	if req.Preset != "" {
		if err := config.ApplyPreset(&cfg, req.Preset); err != nil {
			return session.Settings{}, err
		}
	}
	if req.Epsilon != nil {
		cfg.Analysis.Epsilon = *req.Epsilon
	}
	if req.SimilarityThreshold != nil {
		cfg.Analysis.SimilarityThreshold = *req.SimilarityThreshold
	}
	if req.MinLength != nil {
		cfg.Analysis.MinLength = *req.MinLength
	}
	if err := config.Validate(&cfg); err != nil {
		return session.Settings{}, err
	}
	return session.Settings{
		Epsilon:             cfg.Analysis.Epsilon,
		SimilarityThreshold: cfg.Analysis.SimilarityThreshold,
		MinLength:           cfg.Analysis.MinLength,
	}, nil
}

// presetEntry is one named analysis profile in the presets listing.
type presetEntry struct {
	Name                string  `json:"name"`
	Epsilon             float64 `json:"epsilon"`
	SimilarityThreshold float64 `json:"similarity_threshold"`
	MinLength           int     `json:"min_length"`
}

// handlePresets lists the built-in analysis profiles.
func (s *Server) handlePresets(w http.ResponseWriter, _ *http.Request) {
	names := config.PresetNames()
	entries := make([]presetEntry, 0, len(names))
	for _, name := range names {
		p, _ := config.GetPreset(name)
		entries = append(entries, presetEntry{
			Name:                name,
			Epsilon:             p.Epsilon,
			SimilarityThreshold: p.SimilarityThreshold,
			MinLength:           p.MinLength,
		})
	}
	respondJSON(w, http.StatusOK, entries)
}

// handleListHistory lists persisted analysis runs, newest first.
func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	entries, err := s.store.List(r.Context(), limit)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if entries == nil {
		entries = []session.Entry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

// handleGetHistory loads one persisted analysis run.
func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "analysisID")
	entry, err := s.store.Get(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}
