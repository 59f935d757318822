package cachegw

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventsValidBatch(t *testing.T) {
	router := newTestRouter(t, newFakeStore())

	body := `[
		{"sessionId":"s1","source":"LOCAL","hash":"abc","event":"HIT","duration":40},
		{"sessionId":"s1","source":"REMOTE","hash":"def","event":"MISS"}
	]`
	rec := doRequest(router, http.MethodPost, "/v8/artifacts/events?teamId=t1", strings.NewReader(body), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"success": true}, decodeBody(t, rec))
}

func TestEventsEmptyBatch(t *testing.T) {
	router := newTestRouter(t, newFakeStore())

	rec := doRequest(router, http.MethodPost, "/v8/artifacts/events?teamId=t1", strings.NewReader(`[]`), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"success": true}, decodeBody(t, rec))
}

func TestEventsMissingFields(t *testing.T) {
	router := newTestRouter(t, newFakeStore())

	cases := []struct {
		name string
		body string
	}{
		{name: "missing sessionId", body: `[{"source":"LOCAL","hash":"abc","event":"MISS"}]`},
		{name: "missing source", body: `[{"sessionId":"s1","hash":"abc","event":"MISS"}]`},
		{name: "missing hash", body: `[{"sessionId":"s1","source":"LOCAL","event":"MISS"}]`},
		{name: "missing event", body: `[{"sessionId":"s1","source":"LOCAL","hash":"abc"}]`},
		{name: "not json", body: `nope`},
		{name: "object instead of list", body: `{"sessionId":"s1"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(router, http.MethodPost, "/v8/artifacts/events?teamId=t1", strings.NewReader(tc.body), nil)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Invalid event data", errorMessage(t, rec))
		})
	}
}

func TestEventsHitRequiresDuration(t *testing.T) {
	router := newTestRouter(t, newFakeStore())

	body := `[{"sessionId":"s1","source":"LOCAL","hash":"abc","event":"HIT"}]`
	rec := doRequest(router, http.MethodPost, "/v8/artifacts/events?teamId=t1", strings.NewReader(body), nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Duration is required for HIT events", errorMessage(t, rec))
}

func TestEventsOneInvalidEntryRejectsBatch(t *testing.T) {
	router := newTestRouter(t, newFakeStore())

	body := `[
		{"sessionId":"s1","source":"LOCAL","hash":"abc","event":"MISS"},
		{"sessionId":"s1","source":"REMOTE","hash":"def","event":"HIT"},
		{"sessionId":"s1","source":"LOCAL","hash":"ghi","event":"MISS"}
	]`
	rec := doRequest(router, http.MethodPost, "/v8/artifacts/events?teamId=t1", strings.NewReader(body), nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Duration is required for HIT events", errorMessage(t, rec))
}

func TestEventsMissWithoutDurationAccepted(t *testing.T) {
	router := newTestRouter(t, newFakeStore())

	body := `[{"sessionId":"s1","source":"REMOTE","hash":"abc","event":"MISS"}]`
	rec := doRequest(router, http.MethodPost, "/v8/artifacts/events?teamId=t1", strings.NewReader(body), nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
