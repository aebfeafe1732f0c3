package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GNINE11/ProjAutomata-TC/internal/adapters/memory"
	"github.com/GNINE11/ProjAutomata-TC/pkg/registry"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const evenAsCreateBody = `{
	"kind": "dfa",
	"definition": {
		"states": ["even", "odd"],
		"input_alphabet": ["a"],
		"initial_state": "even",
		"final_states": ["even"],
		"transitions": {
			"even": {"a": "odd"},
			"odd": {"a": "even"}
		}
	}
}`

func newTestHandler(opts ...Option) http.Handler {
	return NewHandler(registry.New(memory.NewStore()), opts...)
}

func doRequest(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func createMachine(t *testing.T, handler http.Handler, body string) string {
	t.Helper()

	rec := doRequest(t, handler, http.MethodPost, "/machines", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["id"])
	return resp["id"]
}

func TestGetHealth(t *testing.T) {
	rec := doRequest(t, newTestHandler(), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestGetInfo(t *testing.T) {
	rec := doRequest(t, newTestHandler(), http.MethodGet, "/info", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "automata-http", resp["app"])
	assert.NotEmpty(t, resp["version"])
	assert.Equal(t, "1.0.0", resp["api_version"])
}

func TestOpenAPIDocumentParses(t *testing.T) {
	swagger, err := GetSwagger()
	require.NoError(t, err)
	require.NotNil(t, swagger.Info)
	assert.Equal(t, "Automata API", swagger.Info.Title)
}

func TestCreateMachine(t *testing.T) {
	handler := newTestHandler()

	rec := doRequest(t, handler, http.MethodPost, "/machines", evenAsCreateBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp registry.Info
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "dfa", string(resp.Kind))

	_, err := uuid.Parse(resp.ID)
	assert.NoError(t, err, "identifiers should be UUIDs")
}

func TestCreateMachineRejectsBadRequests(t *testing.T) {
	handler := newTestHandler()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed json", `{"kind": `, "invalid request body"},
		{"unknown kind", `{"kind": "nfa", "definition": {}}`, "unknown machine kind"},
		{"missing definition", `{"kind": "dfa"}`, "definition is required"},
		{"failed validation", `{"kind": "dfa", "definition": {"states": ["q0"], "input_alphabet": ["a"], "initial_state": "q0", "final_states": [], "transitions": {}}}`, "no transition"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, handler, http.MethodPost, "/machines", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.want)
		})
	}
}

func TestGetMachine(t *testing.T) {
	handler := newTestHandler()
	id := createMachine(t, handler, evenAsCreateBody)

	rec := doRequest(t, handler, http.MethodGet, "/machines/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp machineResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, id, resp.ID)
	assert.Equal(t, "dfa", string(resp.Kind))
	assert.ElementsMatch(t, []string{"even", "odd"}, []string{string(resp.States[0]), string(resp.States[1])})
	assert.Equal(t, "even", string(resp.InitialState))
	assert.Len(t, resp.Edges, 2)
}

func TestGetMachineNotFound(t *testing.T) {
	rec := doRequest(t, newTestHandler(), http.MethodGet, "/machines/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListMachines(t *testing.T) {
	handler := newTestHandler()
	id := createMachine(t, handler, evenAsCreateBody)

	rec := doRequest(t, handler, http.MethodGet, "/machines", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Machines []registry.Info `json:"machines"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Machines, 1)
	assert.Equal(t, id, resp.Machines[0].ID)
	assert.Equal(t, "dfa", string(resp.Machines[0].Kind))
}

func TestRunMachine(t *testing.T) {
	handler := newTestHandler()
	id := createMachine(t, handler, evenAsCreateBody)

	rec := doRequest(t, handler, http.MethodPost, "/machines/"+id+"/run", `{"input": "aa"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp runResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Accepted)
	assert.Equal(t, "accepted", string(resp.Verdict))
	assert.Equal(t, 2, resp.Steps)

	rec = doRequest(t, handler, http.MethodPost, "/machines/"+id+"/run", `{"input": "aaa"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Accepted)
}

func TestRunMachineRejectsForeignInput(t *testing.T) {
	handler := newTestHandler()
	id := createMachine(t, handler, evenAsCreateBody)

	rec := doRequest(t, handler, http.MethodPost, "/machines/"+id+"/run", `{"input": "ab"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "position 1")
}

func TestRunMachineNotFound(t *testing.T) {
	rec := doRequest(t, newTestHandler(), http.MethodPost, "/machines/nope/run", `{"input": ""}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteMachine(t *testing.T) {
	handler := newTestHandler()
	id := createMachine(t, handler, evenAsCreateBody)

	rec := doRequest(t, handler, http.MethodDelete, "/machines/"+id, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/machines/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, handler, http.MethodDelete, "/machines/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetDiagram(t *testing.T) {
	handler := newTestHandler()
	id := createMachine(t, handler, evenAsCreateBody)

	rec := doRequest(t, handler, http.MethodGet, "/machines/"+id+"/diagram", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/vnd.graphviz", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "digraph {")
	assert.Contains(t, rec.Body.String(), `"even" [shape=doublecircle];`)

	rec = doRequest(t, handler, http.MethodGet, "/machines/"+id+"/diagram?format=mermaid", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "stateDiagram-v2")

	rec = doRequest(t, handler, http.MethodGet, "/machines/"+id+"/diagram?format=png", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	handler := newTestHandler(WithMetrics(NewMetrics()))
	id := createMachine(t, handler, evenAsCreateBody)

	doRequest(t, handler, http.MethodPost, "/machines/"+id+"/run", `{"input": "aa"}`)

	rec := doRequest(t, handler, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `automata_machines_created_total{kind="dfa"} 1`)
	assert.Contains(t, rec.Body.String(), `automata_runs_total{kind="dfa",verdict="accepted"} 1`)
}

func TestRunStepLimitOption(t *testing.T) {
	handler := newTestHandler(WithStepLimit(1))
	id := createMachine(t, handler, evenAsCreateBody)

	rec := doRequest(t, handler, http.MethodPost, "/machines/"+id+"/run", `{"input": "aa"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp runResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Accepted)
	assert.Equal(t, "step_limit_exceeded", string(resp.Diagnostic))
}

func TestCORSPreflight(t *testing.T) {
	rec := doRequest(t, newTestHandler(), http.MethodOptions, "/machines", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestDocsServeSwaggerUI(t *testing.T) {
	rec := doRequest(t, newTestHandler(), http.MethodGet, "/docs", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "swagger-ui")

	rec = doRequest(t, newTestHandler(), http.MethodGet, "/openapi.yaml", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "openapi: 3.0.3")
}
