// Package httpapi exposes the search engine behind a single POST /route
// query endpoint, in the same router/middleware/render/validate shape as
// the teacher's pkg/server/rest/handlers.go and
// pkg/server/rest/service/navigation.go, generalized away from
// lat/lon-specific driving directions to a generic node-id query over a
// prepared contraction-hierarchy graph.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/twpayne/go-polyline"

	"github.com/lintang-bs/pathcore/internal/errs"
	"github.com/lintang-bs/pathcore/pkg/core"
	"github.com/lintang-bs/pathcore/pkg/expansion"
	"github.com/lintang-bs/pathcore/pkg/graph"
	"github.com/lintang-bs/pathcore/pkg/heuristic"
	"github.com/lintang-bs/pathcore/pkg/problem"
	"github.com/lintang-bs/pathcore/pkg/search"
	"github.com/lintang-bs/pathcore/pkg/util"
)

// GraphSource resolves a graph name to a prepared XYGraph, backed by a
// pkg/store.GraphStore in production and an in-memory map in tests.
type GraphSource interface {
	Get(name string) (*graph.XYGraph, error)
}

// Handler serves the /route endpoint over graphs resolved from src.
type Handler struct {
	src        GraphSource
	validate   *validator.Validate
	instanceID uint32
}

// NewHandler builds a Handler.
func NewHandler(src GraphSource) *Handler {
	return &Handler{src: src, validate: validator.New()}
}

// Router mounts the handler's routes onto r, with permissive CORS matching
// the teacher's server setup and go-chi/render for JSON responses.
func Router(r *chi.Mux, h *Handler) {
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Post("/route", h.route)
}

// RouteRequest is the POST /route request body: a named prepared graph, an
// algorithm choice, and a start/target node id pair.
type RouteRequest struct {
	Graph          string `json:"graph" validate:"required"`
	Algorithm      string `json:"algorithm" validate:"required,oneof=bch chase fch"`
	Start          int32  `json:"start" validate:"gte=0"`
	Target         int32  `json:"target" validate:"gte=0"`
	EncodePolyline bool   `json:"encode_polyline"`
}

// Bind implements render.Binder.
func (req *RouteRequest) Bind(r *http.Request) error { return nil }

// RouteResponse mirrors problem.Solution, plus an optional encoded
// polyline of the path's (x,y) coordinates (spec section 13's sibling
// domain-stack wiring for twpayne/go-polyline, generalized from
// datastructure.RenderPath2's lat/lon pairs to xy_graph coordinates).
type RouteResponse struct {
	Found            bool    `json:"found"`
	Path             []int32 `json:"path"`
	SumOfEdgeCosts   float64 `json:"sum_of_edge_costs"`
	NodesExpanded    int64   `json:"nodes_expanded"`
	NodesInserted    int64   `json:"nodes_inserted"`
	NodesUpdated     int64   `json:"nodes_updated"`
	NodesTouched     int64   `json:"nodes_touched"`
	TimeElapsedMicro int64   `json:"time_elapsed_micro"`
	Polyline         string  `json:"polyline,omitempty"`
}

func newRouteResponse(sol problem.Solution, g *graph.XYGraph, encodePolyline bool) *RouteResponse {
	resp := &RouteResponse{
		Found:            sol.Found(),
		Path:             make([]int32, len(sol.Path)),
		SumOfEdgeCosts:   util.RoundFloat(sol.SumOfEdgeCosts, 4),
		NodesExpanded:    sol.NodesExpanded,
		NodesInserted:    sol.NodesInserted,
		NodesUpdated:     sol.NodesUpdated,
		NodesTouched:     sol.NodesTouched,
		TimeElapsedMicro: sol.TimeElapsedMicro,
	}
	for i, id := range sol.Path {
		resp.Path[i] = int32(id)
	}
	if encodePolyline && sol.Found() {
		coords := make([][]float64, len(sol.Path))
		for i, id := range sol.Path {
			x, y := g.GetXY(id)
			coords[i] = []float64{float64(y), float64(x)}
		}
		resp.Polyline = string(polyline.EncodeCoords(coords))
	}
	return resp
}

func (h *Handler) route(w http.ResponseWriter, r *http.Request) {
	req := &RouteRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, errInvalidRequest(err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		render.Render(w, r, errInvalidRequest(err))
		return
	}

	g, err := h.src.Get(req.Graph)
	if err != nil {
		render.Render(w, r, errNotFound(err))
		return
	}

	h.instanceID++
	pi := &problem.Instance{
		StartID:    core.NodeID(req.Start),
		TargetID:   core.NodeID(req.Target),
		InstanceID: h.instanceID,
	}

	var sol problem.Solution
	switch req.Algorithm {
	case "bch":
		sol = search.NewBidirectionalCH(g).GetPath(pi)
	case "chase":
		sol = search.NewChaseSearch(g).GetPath(pi)
	case "fch":
		sol = search.NewFCH(expansion.NewFCHPolicy(g), heuristic.Zero{}).GetPath(pi)
	default:
		render.Render(w, r, errInvalidRequest(errs.WrapErrorf(nil, errs.ErrUnknownAlgorithm, "%s", req.Algorithm)))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, newRouteResponse(sol, g, req.EncodePolyline))
}

// errResponse mirrors the teacher's ErrResponse render.Renderer shape.
type errResponse struct {
	Err            error  `json:"-"`
	HTTPStatusCode int    `json:"-"`
	StatusText     string `json:"status"`
	ErrorText      string `json:"error,omitempty"`
}

func (e *errResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func errInvalidRequest(err error) render.Renderer {
	return &errResponse{Err: err, HTTPStatusCode: http.StatusBadRequest, StatusText: "Invalid request.", ErrorText: err.Error()}
}

func errNotFound(err error) render.Renderer {
	return &errResponse{Err: err, HTTPStatusCode: http.StatusNotFound, StatusText: "Graph not found.", ErrorText: err.Error()}
}
