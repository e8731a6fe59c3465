package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/japaniel/visionary/pkg/db"
	"github.com/japaniel/visionary/pkg/service"
	"github.com/japaniel/visionary/pkg/symbols"
	"github.com/japaniel/visionary/pkg/vision"
)

type stubAnalyzer struct{}

func (stubAnalyzer) AnalyzeVision(description, context string) vision.Result {
	return vision.Result{
		Themes: []vision.Theme{vision.Guidance},
		Commentary: vision.Commentary{
			PrayerPoints: []string{"Lead me."},
		},
	}
}

type brokenStore struct {
	service.Store
	err error
}

func (b brokenStore) AttachInterpretation(context.Context, string, string) error { return b.err }
func (b brokenStore) Ping(context.Context) error                                 { return b.err }

var seed = []symbols.Entry{
	{Symbol: "Dove", Meaning: "Holy Spirit", Category: "Animals"},
	{Symbol: "Lion", Meaning: "Courage", Category: "Animals"},
	{Symbol: "Water", Meaning: "Cleansing", Category: "Elements"},
}

func newTestRouter(t *testing.T, wrap func(service.Store) service.Store) (*gin.Engine, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	var s service.Store = store
	if wrap != nil {
		s = wrap(store)
	}
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)
	return NewRouter(service.New(stubAnalyzer{}, s, seed, logger), logger), logs
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestSubmitVision(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	for _, path := range []string{"/visions", "/submit_vision"} {
		w := do(r, http.MethodPost, path, `{"title":"t","description":"a dove"}`)
		require.Equal(t, http.StatusOK, w.Code, path)

		body := decode(t, w)
		assert.Equal(t, "success", body["status"])
		assert.NotEmpty(t, body["id"])
		assert.Equal(t, "Biblical Commentary and Prayer Guide:\nThemes:\n• Guidance\n\nPrayer Points:\n• Lead me.", body["interpretation"])
		analysis, ok := body["analysis"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, []any{"guidance"}, analysis["themes"])
	}
}

func TestSubmitVisionBadRequest(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"missing description", `{"title":"t"}`},
		{"blank description", `{"description":"   "}`},
		{"malformed json", `{"description":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/visions", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "error", decode(t, w)["status"])
		})
	}
}

func TestSubmitVisionPersistenceFailure(t *testing.T) {
	r, logs := newTestRouter(t, func(s service.Store) service.Store {
		return brokenStore{Store: s, err: errors.New("disk full")}
	})

	w := do(r, http.MethodPost, "/visions", `{"description":"a dove"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	body := decode(t, w)
	assert.Equal(t, "error", body["status"])
	assert.Contains(t, body["error"], "disk full")
	assert.Equal(t, "Biblical Commentary and Prayer Guide:\nThemes:\n• Guidance\n\nPrayer Points:\n• Lead me.", body["interpretation"])
	assert.Equal(t, 1, logs.FilterMessage("request").FilterField(zap.Int("status", 500)).Len())
}

func TestGetVision(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := do(r, http.MethodPost, "/visions", `{"description":"a dove","context":"at dawn"}`)
	require.Equal(t, http.StatusOK, w.Code)
	id := decode(t, w)["id"].(string)

	w = do(r, http.MethodGet, "/visions/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, id, body["id"])
	assert.Equal(t, "at dawn", body["context"])
	assert.Contains(t, body["interpretation"], "Lead me.")

	w = do(r, http.MethodGet, "/visions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["visions"], 1)

	w = do(r, http.MethodGet, "/visions/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSymbolsAndReset(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	for i := 0; i < 2; i++ {
		w := do(r, http.MethodPost, "/admin/symbols/reset", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(3), decode(t, w)["symbols"])
	}

	w := do(r, http.MethodGet, "/symbols", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["symbols"], 3)

	w = do(r, http.MethodGet, "/symbols?group=category", "")
	require.Equal(t, http.StatusOK, w.Code)
	groups, ok := decode(t, w)["categories"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, groups["Animals"], 2)
	assert.Len(t, groups["Elements"], 1)
}

func TestStatus(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	do(r, http.MethodPost, "/admin/symbols/reset", "")

	w := do(r, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "connected", body["database"])
	assert.Equal(t, float64(3), body["symbols"])

	down, _ := newTestRouter(t, func(s service.Store) service.Store {
		return brokenStore{Store: s, err: errors.New("gone")}
	})
	w = do(down, http.MethodGet, "/status", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unavailable", decode(t, w)["database"])
}

func TestRequestLogging(t *testing.T) {
	r, logs := newTestRouter(t, nil)
	do(r, http.MethodGet, "/status", "")

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/status", fields["path"])
	assert.EqualValues(t, 200, fields["status"])
}
