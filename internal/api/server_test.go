package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nordique-ai/nordique/internal/config"
	"github.com/nordique-ai/nordique/internal/logging"
)

func newTestServer(t *testing.T, opts ...ServerOption) *Server {
	t.Helper()
	defaults := config.AnalysisConfig{
		Epsilon:             0.1,
		SimilarityThreshold: 0.45,
		MinLength:           10,
	}
	opts = append([]ServerOption{WithLogger(logging.NewNop().Logger)}, opts...)
	return NewServer(defaults, opts...)
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/health", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %q, want healthy", body["status"])
	}
}

func TestHandleScore(t *testing.T) {
	s := newTestServer(t)
	text := "Le protocole garantit une livraison ordonnée des messages. " +
		"Le protocole tolère une partition réseau prolongée sans perte."
	reqBody, _ := json.Marshal(map[string]string{"text": text})

	w := doRequest(t, s, http.MethodPost, "/api/v1/score", string(reqBody))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var body scoreResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.H <= 0 || body.C <= 0 || body.Score <= 0 {
		t.Errorf("scores not computed: %+v", body)
	}
	if body.Length == 0 {
		t.Error("length missing")
	}
}

func TestHandleScore_InvalidEpsilon(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodPost, "/api/v1/score",
		`{"text": "peu importe", "epsilon": 0}`)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["code"] != "INVALID_EPSILON" {
		t.Errorf("code = %v, want INVALID_EPSILON", body["code"])
	}
}

func TestHandleScore_BadJSON(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodPost, "/api/v1/score", `{"text": `)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestHistoryRoutes_AbsentWithoutStore(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/api/v1/history", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d without store, got %d", http.StatusNotFound, w.Code)
	}
}
