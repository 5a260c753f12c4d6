package integration_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/emimeter/internal/emissions"
	"github.com/rshade/emimeter/internal/render"
	"github.com/rshade/emimeter/internal/server"
)

type apiEnvelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

type apiSession struct {
	ID         string                  `json:"id"`
	Parameters emissions.Parameters    `json:"parameters"`
	Report     render.ReportJSONOutput `json:"report"`
}

// apiRequest performs one request against the fiber app and decodes
// the response envelope.
func apiRequest(t *testing.T, srv *server.Server, method, path string, body any) (int, apiEnvelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env apiEnvelope
	require.NoError(t, json.Unmarshal(raw, &env), "response should be an envelope: %s", raw)
	return resp.StatusCode, env
}

func decodeAPISession(t *testing.T, env apiEnvelope) apiSession {
	t.Helper()
	var sess apiSession
	require.NoError(t, json.Unmarshal(env.Data, &sess))
	return sess
}

// TestSessionLifecycleOverHTTP walks a dashboard session through the
// HTTP API: create with sample data, raise the EV lever, read it back,
// and delete it.
func TestSessionLifecycleOverHTTP(t *testing.T) {
	srv := server.New(server.Options{
		Addr:        ":0",
		SessionTTL:  time.Hour,
		MaxSessions: 10,
		Factors:     emissions.DefaultFactors(),
		Logger:      zerolog.Nop(),
	})

	status, env := apiRequest(t, srv, http.MethodPost, "/api/v1/sessions", map[string]bool{"sample": true})
	require.Equal(t, http.StatusCreated, status)
	require.True(t, env.Success)

	created := decodeAPISession(t, env)
	require.NotEmpty(t, created.ID)
	assert.InDelta(t, 4285.2, created.Report.Summary.BaselineTotalTons, 0.001)

	params := emissions.Parameters{EVShare: 1.0, DistanceReduction: 0.1, LoadFactorImprovement: 0.2}
	status, env = apiRequest(t, srv, http.MethodPut, "/api/v1/sessions/"+created.ID+"/parameters", params)
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)

	updated := decodeAPISession(t, env)
	assert.InDelta(t, 3297.2, updated.Report.Summary.OptimizedTotalTons, 0.001)
	assert.InDelta(t, 1.0, updated.Parameters.EVShare, 1e-9)

	status, env = apiRequest(t, srv, http.MethodGet, "/api/v1/sessions/"+created.ID, nil)
	require.Equal(t, http.StatusOK, status)
	fetched := decodeAPISession(t, env)
	assert.InDelta(t, 3297.2, fetched.Report.Summary.OptimizedTotalTons, 0.001)

	status, env = apiRequest(t, srv, http.MethodDelete, "/api/v1/sessions/"+created.ID, nil)
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)

	status, env = apiRequest(t, srv, http.MethodGet, "/api/v1/sessions/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "session not found")
}
