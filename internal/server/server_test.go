package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voralis/catalogd/internal/config"
	"github.com/voralis/catalogd/internal/events"
	"github.com/voralis/catalogd/internal/repository"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := config.Default()
	cfg.Database.URL = "sqlite://:memory:"

	db := repository.NewTestDB(t)
	bus := events.NewBus(16)
	t.Cleanup(bus.Close)

	return New(cfg, db, bus)
}

func doJSON(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func seedSeries(t *testing.T, srv *Server, name string) {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/api/series", map[string]interface{}{
		"name":      name,
		"thumbnail": "https://img.example/" + name + ".jpg",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func seedSeason(t *testing.T, srv *Server, series string, number int) {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/api/series/"+series+"/seasons", map[string]interface{}{
		"season_number": number,
		"title":         "Season",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func seedEpisode(t *testing.T, srv *Server, series string, season int, episode int, title string) {
	t.Helper()
	path := "/api/series/" + series + "/seasons/" + itoa(season) + "/episodes"
	rec := doJSON(t, srv, http.MethodPost, path, map[string]interface{}{
		"episode_number": episode,
		"title":          title,
		"streaming_url":  "https://stream.example/ep",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func TestSeriesLifecycle(t *testing.T) {
	srv := newTestServer(t)

	seedSeries(t, srv, "Dark")

	rec := doJSON(t, srv, http.MethodGet, "/api/series/Dark", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Dark", body["name"])
	assert.Equal(t, "series", body["type"])

	rec = doJSON(t, srv, http.MethodPut, "/api/series/Dark", map[string]interface{}{
		"thumbnail":   "https://img.example/dark-v2.jpg",
		"description": "time travel",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	assert.Equal(t, "time travel", body["description"])

	rec = doJSON(t, srv, http.MethodGet, "/api/series/Missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeBody(t, rec)["code"])
}

func TestSeriesCreateValidation(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/series", map[string]interface{}{
		"description": "no name, no thumbnail",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, rec)["code"])
}

func TestSeriesDeleteCascadesOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	seedSeries(t, srv, "Dark")
	seedSeason(t, srv, "Dark", 1)
	seedSeason(t, srv, "Dark", 2)
	seedEpisode(t, srv, "Dark", 1, 1, "Secrets")
	seedEpisode(t, srv, "Dark", 1, 2, "Lies")
	seedEpisode(t, srv, "Dark", 2, 1, "Beginnings")

	rec := doJSON(t, srv, http.MethodDelete, "/api/series/Dark", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.EqualValues(t, 2, body["seasons_deleted"])
	assert.EqualValues(t, 3, body["episodes_deleted"])

	rec = doJSON(t, srv, http.MethodGet, "/api/series/Dark", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/episodes?series=Dark", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestSeasonRoutesValidateNumbers(t *testing.T) {
	srv := newTestServer(t)
	seedSeries(t, srv, "Dark")

	rec := doJSON(t, srv, http.MethodGet, "/api/series/Dark/seasons/zero", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/series/Dark/seasons", map[string]interface{}{
		"season_number": 1,
		"title":         "Season 1",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/series/Dark/seasons/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Season 1", decodeBody(t, rec)["title"])
}

func TestOrphanSeasonRejectedInStrictMode(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/series/Nope/seasons", map[string]interface{}{
		"season_number": 1,
		"title":         "Season 1",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, rec)["code"])
}

func TestBulkEpisodeCreation(t *testing.T) {
	srv := newTestServer(t)
	seedSeries(t, srv, "Dark")
	seedSeason(t, srv, "Dark", 1)

	rec := doJSON(t, srv, http.MethodPost, "/api/series/Dark/seasons/1/episodes/bulk", map[string]interface{}{
		"episodes": []map[string]interface{}{
			{"episode_number": 1, "title": "One", "streaming_url": "https://stream.example/1"},
			{"episode_number": 2, "title": "Two", "streaming_url": "https://stream.example/2"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, srv, http.MethodGet, "/api/series/Dark/seasons/1/episodes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var episodes []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &episodes))
	assert.Len(t, episodes, 2)
}

func TestBulkEpisodeCreationRejectsBadEntry(t *testing.T) {
	srv := newTestServer(t)
	seedSeries(t, srv, "Dark")
	seedSeason(t, srv, "Dark", 1)

	rec := doJSON(t, srv, http.MethodPost, "/api/series/Dark/seasons/1/episodes/bulk", map[string]interface{}{
		"episodes": []map[string]interface{}{
			{"episode_number": 1, "title": "One", "streaming_url": "https://stream.example/1"},
			{"episode_number": 2},
		},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/series/Dark/seasons/1/episodes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestCompleteSeriesView(t *testing.T) {
	srv := newTestServer(t)
	seedSeries(t, srv, "Dark")
	seedSeason(t, srv, "Dark", 1)
	seedEpisode(t, srv, "Dark", 1, 1, "Secrets")

	rec := doJSON(t, srv, http.MethodGet, "/api/series/Dark/complete", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Dark", body["name"])

	seasons, ok := body["seasons"].([]interface{})
	require.True(t, ok)
	require.Len(t, seasons, 1)
	season := seasons[0].(map[string]interface{})
	episodes := season["episodes"].([]interface{})
	assert.Len(t, episodes, 1)
}

func TestCombinedMediaEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/movies", map[string]interface{}{
		"name":          "Arrival",
		"thumbnail":     "https://img.example/arrival.jpg",
		"streaming_url": "https://stream.example/arrival",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	seedSeries(t, srv, "Dark")

	rec = doJSON(t, srv, http.MethodGet, "/api/media", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)
	types := []string{items[0]["type"].(string), items[1]["type"].(string)}
	assert.ElementsMatch(t, []string{"movie", "series"}, types)
}

func TestSearchIsCaseInsensitiveOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	seedSeries(t, srv, "Breaking Bad")
	seedSeries(t, srv, "Dark")

	rec := doJSON(t, srv, http.MethodGet, "/api/series?search=BREAKING", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var series []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &series))
	require.Len(t, series, 1)
	assert.Equal(t, "Breaking Bad", series[0]["name"])
}

func TestStatsEndpoints(t *testing.T) {
	srv := newTestServer(t)
	seedSeries(t, srv, "Dark")
	seedSeason(t, srv, "Dark", 1)
	seedEpisode(t, srv, "Dark", 1, 1, "Secrets")

	rec := doJSON(t, srv, http.MethodGet, "/api/series/Dark/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.EqualValues(t, 1, body["total_seasons"])
	assert.EqualValues(t, 1, body["total_episodes"])

	rec = doJSON(t, srv, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	assert.EqualValues(t, 1, body["series"])
	assert.EqualValues(t, 1, body["episodes"])
	assert.EqualValues(t, 2, body["total"])

	rec = doJSON(t, srv, http.MethodGet, "/api/series/Missing/stats", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, true, body["storeConnected"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
