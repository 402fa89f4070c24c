package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/experiment"
	"github.com/samuelfneumann/tabular/experiment/tracker"
)

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestStatus(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s := New(DefaultAddr, prometheus.NewRegistry(), logger)

	rec := get(t, s, "/status")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"episodes": 0, "latest": null}`, rec.Body.String())

	s.Observe(experiment.Update{RunID: "run", Episode: 4, Return: 2.5,
		Steps: 10, Epsilon: 0.1})

	rec = get(t, s, "/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var status Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, 5, status.Episodes)
	require.NotNil(t, status.Latest)
	assert.Equal(t, 2.5, status.Latest.Return)
	assert.Equal(t, "run", status.Latest.RunID)
}

func TestMetrics(t *testing.T) {
	logger, _ := test.NewNullLogger()
	reg := prometheus.NewRegistry()
	tracker.NewPrometheus(reg, "run").Track(agent.Summary{Return: 3,
		Steps: 7})
	s := New(DefaultAddr, reg, logger)

	rec := get(t, s, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `tabular_episodes_total{run="run"} 1`))
	assert.True(t, strings.Contains(body, `tabular_episode_return{run="run"} 3`))
}

func TestNotFound(t *testing.T) {
	logger, _ := test.NewNullLogger()
	s := New(DefaultAddr, prometheus.NewRegistry(), logger)
	assert.Equal(t, http.StatusNotFound, get(t, s, "/missing").Code)
}
