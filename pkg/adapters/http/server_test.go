package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/casegen"
	"github.com/aretw0/casegen/pkg/adapters/memory"
	"github.com/aretw0/casegen/pkg/domain"
	"github.com/aretw0/casegen/pkg/observability"
)

const triangle = `"transitions": [
	{"source": "A", "target": "B", "label": "go"},
	{"source": "B", "target": "C", "label": "ok"},
	{"source": "C", "target": "A", "label": "reset"}
]`

func newTestHandler(opts ...casegen.Option) http.Handler {
	return NewHandler(casegen.New(opts...))
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestGenerate(t *testing.T) {
	store := memory.NewStore()
	h := newTestHandler(casegen.WithStore(store))

	w := do(t, h, "POST", "/generate", `{"strategy": "node", "from": "A", "to": "C", `+triangle+`}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var run domain.Run
	require.NoError(t, json.NewDecoder(w.Body).Decode(&run))
	assert.Equal(t, domain.StrategyNode, run.Strategy)
	require.Len(t, run.Cases, 1)
	assert.Equal(t, "A--go-->B--ok-->C", run.Cases[0].String())

	w = do(t, h, "GET", "/runs/"+run.ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, "GET", "/runs", "")
	require.Equal(t, http.StatusOK, w.Code)
	var ids []string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&ids))
	assert.Equal(t, []string{run.ID}, ids)
}

func TestGenerate_DefaultsToPath(t *testing.T) {
	h := newTestHandler()

	w := do(t, h, "POST", "/generate", `{`+triangle+`}`)
	require.Equal(t, http.StatusOK, w.Code)

	var run domain.Run
	require.NoError(t, json.NewDecoder(w.Body).Decode(&run))
	assert.Equal(t, domain.StrategyPath, run.Strategy)
	assert.Len(t, run.Cases, 3)
}

func TestErrors(t *testing.T) {
	h := newTestHandler()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{name: "Invalid JSON", method: "POST", path: "/generate", body: `{`, status: http.StatusBadRequest},
		{name: "Unknown Field", method: "POST", path: "/generate", body: `{"colour": "red"}`, status: http.StatusBadRequest},
		{name: "No Transitions", method: "POST", path: "/generate", body: `{"transitions": []}`, status: http.StatusBadRequest},
		{name: "Unknown Strategy", method: "POST", path: "/generate", body: `{"strategy": "random", ` + triangle + `}`, status: http.StatusBadRequest},
		{name: "Unknown Node", method: "POST", path: "/generate", body: `{"strategy": "node", "from": "A", "to": "Z", ` + triangle + `}`, status: http.StatusBadRequest},
		{
			name:   "Unreachable",
			method: "POST",
			path:   "/generate",
			body:   `{"strategy": "node", "from": "B", "to": "A", "transitions": [{"source": "A", "target": "B"}]}`,
			status: http.StatusUnprocessableEntity,
		},
		{name: "No Store", method: "GET", path: "/runs", status: http.StatusNotImplemented},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestGetRun_NotFound(t *testing.T) {
	h := newTestHandler(casegen.WithStore(memory.NewStore()))

	w := do(t, h, "GET", "/runs/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGraph(t *testing.T) {
	h := newTestHandler()

	w := do(t, h, "POST", "/graph", `{"begin": "B", `+triangle+`}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "graph TD")
	assert.Contains(t, w.Body.String(), `B(("B"))`)

	w = do(t, h, "POST", "/graph?format=dump", `{`+triangle+`}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "BALANCE")
}

func TestHealthAndInfo(t *testing.T) {
	h := newTestHandler()

	w := do(t, h, "GET", "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())

	w = do(t, h, "GET", "/info", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"strategies":["node","path","euler","all"]`)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	h := NewHandler(casegen.New(casegen.WithHooks(m.Hooks())), WithGatherer(reg))

	w := do(t, h, "POST", "/generate", `{`+triangle+`}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `casegen_cases_total{strategy="path"} 3`)
}

func TestMetrics_NotConfigured(t *testing.T) {
	w := do(t, newTestHandler(), "GET", "/metrics", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubscribeEvents(t *testing.T) {
	h := newTestHandler(casegen.WithName("triangle"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wSub := httptest.NewRecorder()
	reqSub := httptest.NewRequest("GET", "/events?graph=triangle", nil).WithContext(ctx)

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.ServeHTTP(wSub, reqSub)
	}()

	time.Sleep(100 * time.Millisecond) // Wait for subscription to register

	w := do(t, h, "POST", "/generate", `{"strategy": "euler", `+triangle+`}`)
	require.Equal(t, http.StatusOK, w.Code)

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	output := wSub.Body.String()
	assert.Contains(t, output, "event: ping")
	assert.Contains(t, output, "event: run")
	assert.Contains(t, output, `"strategy":"euler"`)
	assert.Contains(t, output, `"cases":1`)
}

func TestStreamManager_Broadcast(t *testing.T) {
	sm := NewStreamManager()
	all, cancelAll := sm.Subscribe("")
	defer cancelAll()
	one, cancelOne := sm.Subscribe("door")
	defer cancelOne()
	other, cancelOther := sm.Subscribe("lamp")
	defer cancelOther()

	sm.Broadcast("door", "hello")

	assert.Equal(t, "hello", <-all)
	assert.Equal(t, "hello", <-one)
	assert.Empty(t, other)
}
