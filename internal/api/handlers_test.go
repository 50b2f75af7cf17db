package api

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordique-ai/nordique/internal/adapters/history"
	"github.com/nordique-ai/nordique/internal/session"
)

const (
	analyzeTextA = "La structure centrale guide la structure générale du montage. " +
		"La structure reste stable malgré les pannes répétées et les pannes fréquentes."
	analyzeTextB = "Une structure modulaire simplifie la maintenance quotidienne. " +
		"Cette structure évolue sans casser les modules internes existants."
)

func analyzeBody(t *testing.T, extra map[string]interface{}) string {
	t.Helper()
	payload := map[string]interface{}{
		"responses": []map[string]string{
			{"name": "nord", "content": analyzeTextA},
			{"name": "sud", "content": analyzeTextB},
		},
	}
	for k, v := range extra {
		payload[k] = v
	}
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return string(data)
}

func TestHandleAnalyze(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodPost, "/api/v1/analyze", analyzeBody(t, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var entry session.Entry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))

	assert.NotEmpty(t, entry.ID)
	assert.Len(t, entry.Responses, 2)
	assert.Contains(t, entry.Result.Consensus.Concepts, "structure")
	assert.Contains(t, entry.Result.Insights, "structure")
}

func TestHandleAnalyze_NotEnoughResponses(t *testing.T) {
	s := newTestServer(t)
	body := `{"responses": [{"name": "solo", "content": "` + analyzeTextA + `"}]}`
	w := doRequest(t, s, http.MethodPost, "/api/v1/analyze", body)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "NOT_ENOUGH_RESPONSES", resp["code"])
}

func TestHandleAnalyze_TooShortResponse(t *testing.T) {
	s := newTestServer(t)
	body := `{"responses": [{"name": "a", "content": "court"}, {"name": "b", "content": "` + analyzeTextB + `"}]}`
	w := doRequest(t, s, http.MethodPost, "/api/v1/analyze", body)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "TEXT_TOO_SHORT", resp["code"])
}

func TestHandleAnalyze_PresetApplied(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodPost, "/api/v1/analyze",
		analyzeBody(t, map[string]interface{}{"preset": "creatif"}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var entry session.Entry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	assert.Equal(t, 0.2, entry.Settings.Epsilon)
	assert.Equal(t, 0.4, entry.Settings.SimilarityThreshold)
}

func TestHandleAnalyze_UnknownPreset(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodPost, "/api/v1/analyze",
		analyzeBody(t, map[string]interface{}{"preset": "fantaisie"}))

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "UNKNOWN_PRESET", resp["code"])
}

func TestHandleAnalyze_OverridesValidated(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodPost, "/api/v1/analyze",
		analyzeBody(t, map[string]interface{}{"epsilon": -1}))

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_EPSILON", resp["code"])
}

func TestHandlePresets(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/api/v1/presets", "")
	require.Equal(t, http.StatusOK, w.Code)

	var entries []presetEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 4)

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	assert.Equal(t, []string{"academique", "creatif", "standard", "strict"}, names)
}

func TestHistoryEndpoints(t *testing.T) {
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	s := newTestServer(t, WithHistory(store))

	// An analysis run is persisted automatically.
	w := doRequest(t, s, http.MethodPost, "/api/v1/analyze", analyzeBody(t, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var entry session.Entry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))

	w = doRequest(t, s, http.MethodGet, "/api/v1/history", "")
	require.Equal(t, http.StatusOK, w.Code)

	var listed []session.Entry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, entry.ID, listed[0].ID)

	w = doRequest(t, s, http.MethodGet, "/api/v1/history/"+entry.ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	var got session.Entry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, entry.ID, got.ID)
	assert.Len(t, got.Responses, 2)

	w = doRequest(t, s, http.MethodGet, "/api/v1/history/inexistant", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHistoryList_BadLimit(t *testing.T) {
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	s := newTestServer(t, WithHistory(store))
	w := doRequest(t, s, http.MethodGet, "/api/v1/history?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
