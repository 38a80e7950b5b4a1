package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/obraflow/obraflow/internal/entities"
	"github.com/obraflow/obraflow/internal/pipeline"
)

func (s *Server) registerRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/ask", s.handleAsk)
		r.Get("/entities/search", s.handleEntitySearch)
		r.Post("/cache/invalidate", s.handleCacheInvalidate)
		r.Get("/cache/stats", s.handleCacheStats)
	})
}

type askRequest struct {
	Question       string `json:"question"`
	UserID         string `json:"userId"`
	OrganizationID string `json:"organizationId"`
	SessionID      string `json:"sessionId"`
	Timezone       string `json:"timezone"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}
	if req.OrganizationID == "" {
		writeError(w, http.StatusBadRequest, "organizationId is required")
		return
	}

	resp, err := s.assistant.Answer(r.Context(), req.Question, pipeline.ReqContext{
		UserID:         req.UserID,
		OrganizationID: req.OrganizationID,
		SessionID:      req.SessionID,
		Language:       "es",
		Timezone:       req.Timezone,
	})
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, resp)
}

type entitySearchResponse struct {
	Query    string            `json:"query"`
	Entities []entities.Entity `json:"entities"`
}

func (s *Server) handleEntitySearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	orgID := r.URL.Query().Get("organizationId")
	if q == "" || orgID == "" {
		writeError(w, http.StatusBadRequest, "q and organizationId are required")
		return
	}

	found := s.resolver.Resolve(r.Context(), q, orgID, entities.Options{})
	writeJSON(w, entitySearchResponse{Query: q, Entities: found})
}

type invalidateRequest struct {
	OrganizationID string `json:"organizationId"`
}

func (s *Server) handleCacheInvalidate(w http.ResponseWriter, r *http.Request) {
	var req invalidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OrganizationID == "" {
		writeError(w, http.StatusBadRequest, "organizationId is required")
		return
	}

	removed := s.pipeline.InvalidateEntityCache(req.OrganizationID)
	writeJSON(w, map[string]int{"removed": removed})
}

func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.cache.Stats())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// writeError marshals the message so quotes and backslashes in upstream
// errors cannot corrupt the JSON body.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
