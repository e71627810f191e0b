package server

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vintermark/facet-engine/pkg/common/jsoncompat"
	"github.com/vintermark/facet-engine/pkg/engine"
)

// FacetServer exposes the two public engine operations over HTTP. It only
// translates between the wire and the orchestrator, transport concerns stay
// out of the engine.
type FacetServer struct {
	Engine *engine.Orchestrator
	Logger zerolog.Logger
}

func (s *FacetServer) Router() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/aggregate", s.HandleAggregate)
	mux.HandleFunc("GET /api/categories/{categoryId}/facets", s.HandleListFacets)
	mux.HandleFunc("OPTIONS /api/", s.handleOptions)
	return mux
}

func (s *FacetServer) HandleAggregate(w http.ResponseWriter, r *http.Request) {
	req, err := AggregateRequestFromHTTP(r)
	if err != nil {
		s.Logger.Debug().Err(err).Msg("bad aggregate request")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defaultHeaders(w, r, "60")
	s.writeJson(w, s.Engine.Aggregate(r.Context(), req))
}

func (s *FacetServer) HandleListFacets(w http.ResponseWriter, r *http.Request) {
	categoryId := r.PathValue("categoryId")
	if categoryId == "" {
		http.Error(w, "categoryId is required", http.StatusBadRequest)
		return
	}
	publicHeaders(w, r, "120")
	s.writeJson(w, s.Engine.ListFacetsForCategory(r.Context(), categoryId))
}

func (s *FacetServer) handleOptions(w http.ResponseWriter, r *http.Request) {
	genericHeaders(w, r)
	w.WriteHeader(http.StatusNoContent)
}

func (s *FacetServer) writeJson(w http.ResponseWriter, v any) {
	data, err := jsoncompat.Marshal(v)
	if err != nil {
		s.Logger.Error().Err(err).Msg("response encoding failed")
		http.Error(w, "encoding failure", http.StatusInternalServerError)
		return
	}
	if _, err := w.Write(data); err != nil {
		s.Logger.Debug().Err(err).Msg("response write failed")
	}
}
