package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"text-summary/dto"
	"text-summary/testutil"
)

func doJSON(t *testing.T, app *testutil.App, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.Engine.ServeHTTP(w, req)
	return w
}

func createSummary(t *testing.T, app *testutil.App, url string) dto.CreateSummaryResponse {
	t.Helper()

	w := doJSON(t, app, http.MethodPost, "/api/v1/summaries", dto.CreateSummaryRequest{URL: url})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp dto.CreateSummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotZero(t, resp.ID)
	return resp
}

func TestPing(t *testing.T) {
	app := testutil.NewApp(t)

	w := doJSON(t, app, http.MethodGet, "/ping", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pong!", resp["ping"])
	assert.Equal(t, "test", resp["environment"])
	assert.Equal(t, true, resp["testing"])
}

func TestHealth(t *testing.T) {
	app := testutil.NewApp(t)

	w := doJSON(t, app, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestCreateSummary(t *testing.T) {
	app := testutil.NewApp(t)

	resp := createSummary(t, app, "http://app.invalid/article")
	assert.Equal(t, "http://app.invalid/article", resp.URL)

	w := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/summaries/%d", resp.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got dto.SummaryDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, resp.ID, got.ID)
	assert.Equal(t, "http://app.invalid/article", got.URL)
}

func TestCreateSummary_InvalidPayload(t *testing.T) {
	app := testutil.NewApp(t)

	cases := []struct {
		name string
		body any
	}{
		{name: "missing url", body: map[string]string{}},
		{name: "not a url", body: map[string]string{"url": "not-a-url"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, app, http.MethodPost, "/api/v1/summaries", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetSummary_NotFound(t *testing.T) {
	app := testutil.NewApp(t)

	for _, path := range []string{"/api/v1/summaries/999999", "/api/v1/summaries/abc", "/api/v1/summaries/0"} {
		w := doJSON(t, app, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestListSummaries(t *testing.T) {
	app := testutil.NewApp(t)

	w := doJSON(t, app, http.MethodGet, "/api/v1/summaries", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	createSummary(t, app, "http://app.invalid/one")
	createSummary(t, app, "http://app.invalid/two")

	w = doJSON(t, app, http.MethodGet, "/api/v1/summaries", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items []dto.SummaryDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "http://app.invalid/one", items[0].URL)
	assert.Equal(t, "http://app.invalid/two", items[1].URL)
}

func TestUpdateSummary(t *testing.T) {
	app := testutil.NewApp(t)
	resp := createSummary(t, app, "http://app.invalid/old")

	w := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/summaries/%d", resp.ID), dto.UpdateSummaryRequest{
		URL:     "http://app.invalid/new",
		Summary: "hand-written summary",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got dto.SummaryDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "http://app.invalid/new", got.URL)
	assert.Equal(t, "hand-written summary", got.Summary)
}

func TestUpdateSummary_Validation(t *testing.T) {
	app := testutil.NewApp(t)
	resp := createSummary(t, app, "http://app.invalid/article")
	path := fmt.Sprintf("/api/v1/summaries/%d", resp.ID)

	w := doJSON(t, app, http.MethodPut, path, map[string]string{"url": "http://app.invalid/article"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, app, http.MethodPut, "/api/v1/summaries/999999", dto.UpdateSummaryRequest{
		URL:     "http://app.invalid/article",
		Summary: "s",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteSummary(t *testing.T) {
	app := testutil.NewApp(t)
	resp := createSummary(t, app, "http://app.invalid/doomed")
	path := fmt.Sprintf("/api/v1/summaries/%d", resp.ID)

	w := doJSON(t, app, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got dto.SummaryDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "http://app.invalid/doomed", got.URL)

	w = doJSON(t, app, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, app, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateSummary_GeneratesThroughBus(t *testing.T) {
	app := testutil.NewApp(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<!DOCTYPE html><html><head><title>Consistent Hashing in Practice</title></head><body><article>
<h1>Consistent Hashing in Practice</h1>
<p>Consistent hashing places servers on a ring so that adding a node moves only a small slice of keys.
Virtual nodes smooth the distribution by giving each server many positions on the ring.
Lookups walk clockwise from the key position to the first server marker.
Replication stores each key on the next several distinct servers along the ring.
When a server leaves, its keys flow to the clockwise neighbor without a global reshuffle.</p>
</article></body></html>`)
	}))
	t.Cleanup(srv.Close)

	resp := createSummary(t, app, srv.URL)

	// generation runs on the bus subscriber; poll until the summary lands
	path := fmt.Sprintf("/api/v1/summaries/%d", resp.ID)
	require.Eventually(t, func() bool {
		w := doJSON(t, app, http.MethodGet, path, nil)
		if w.Code != http.StatusOK {
			return false
		}
		var got dto.SummaryDTO
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			return false
		}
		return got.Summary != ""
	}, 10*time.Second, 50*time.Millisecond)
}

func TestRequestIDHeader(t *testing.T) {
	app := testutil.NewApp(t)

	w := doJSON(t, app, http.MethodGet, "/ping", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}
