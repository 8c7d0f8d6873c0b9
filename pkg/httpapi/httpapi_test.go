package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/lintang-bs/pathcore/internal/errs"
	"github.com/lintang-bs/pathcore/pkg/graph"
)

type fakeGraphSource struct {
	graphs map[string]*graph.XYGraph
}

func (f *fakeGraphSource) Get(name string) (*graph.XYGraph, error) {
	g, ok := f.graphs[name]
	if !ok {
		return nil, errs.WrapErrorf(nil, errs.ErrScenarioNotFound, "no such graph %s", name)
	}
	return g, nil
}

func testGraph() *graph.XYGraph {
	g := graph.NewXYGraph(2)
	g.SetXY(0, 0, 0)
	g.SetXY(1, 1, 0)
	g.SetRank(0, 0)
	g.SetRank(1, 1)
	g.AddEdge(0, 1, 5)
	g.AddEdge(1, 0, 3)
	return g
}

func newTestServer() *httptest.Server {
	src := &fakeGraphSource{graphs: map[string]*graph.XYGraph{"tiny": testGraph()}}
	h := NewHandler(src)
	r := chi.NewRouter()
	Router(r, h)
	return httptest.NewServer(r)
}

func TestRouteReturnsShortestPath(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	body, _ := json.Marshal(RouteRequest{Graph: "tiny", Algorithm: "bch", Start: 0, Target: 1})
	resp, err := http.Post(srv.URL+"/route", "application/json", bytes.NewReader(body))
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out RouteResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Found)
	assert.InDelta(t, 5.0, out.SumOfEdgeCosts, 1e-9)
	assert.Equal(t, []int32{0, 1}, out.Path)
}

func TestRouteUnknownGraphReturns404(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	body, _ := json.Marshal(RouteRequest{Graph: "missing", Algorithm: "bch", Start: 0, Target: 1})
	resp, err := http.Post(srv.URL+"/route", "application/json", bytes.NewReader(body))
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouteInvalidAlgorithmReturns400(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	body, _ := json.Marshal(RouteRequest{Graph: "tiny", Algorithm: "not-real", Start: 0, Target: 1})
	resp, err := http.Post(srv.URL+"/route", "application/json", bytes.NewReader(body))
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouteWithPolylineEncoding(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	body, _ := json.Marshal(RouteRequest{Graph: "tiny", Algorithm: "chase", Start: 0, Target: 1, EncodePolyline: true})
	resp, err := http.Post(srv.URL+"/route", "application/json", bytes.NewReader(body))
	assert.NoError(t, err)
	defer resp.Body.Close()

	var out RouteResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out.Polyline)
}
