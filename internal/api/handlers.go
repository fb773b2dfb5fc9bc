// Package api exposes the indexing and analysis services over HTTP.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/codesense/codesense/internal/analyzer"
	"github.com/codesense/codesense/internal/constants"
	"github.com/codesense/codesense/internal/models"
	"github.com/codesense/codesense/internal/semantic"
)

// Handler holds the dependencies for HTTP handlers.
type Handler struct {
	semantic *semantic.Store
	service  *analyzer.Service
}

// NewHandler creates a new Handler.
func NewHandler(sem *semantic.Store, service *analyzer.Service) *Handler {
	return &Handler{semantic: sem, service: service}
}

// IndexRequest is the body of POST /index.
type IndexRequest struct {
	Path string `json:"path"`
}

// IndexResponse reports how much was indexed.
type IndexResponse struct {
	FilesIndexed int `json:"files_indexed"`
	ChunksStored int `json:"chunks_stored"`
}

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k,omitempty"`
	Scope string `json:"scope,omitempty"`
}

// SearchResponse carries ranked search results.
type SearchResponse struct {
	Results []models.SearchResult `json:"results"`
}

// AnalyzeRequest is the body of POST /analyze. Either Path or Content
// must be set; when both are present Content wins and Path only labels
// the findings.
type AnalyzeRequest struct {
	Path    string `json:"path"`
	Content string `json:"content,omitempty"`
}

// AnalyzeResponse carries analysis findings.
type AnalyzeResponse struct {
	Findings []models.Finding `json:"findings"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// HandleIndex handles POST /index requests.
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	var req IndexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Path == "" {
		sendError(w, http.StatusBadRequest, "path is required")
		return
	}

	summary, err := h.semantic.IndexProject(r.Context(), req.Path)
	if err != nil {
		sendError(w, http.StatusInternalServerError, err.Error())
		return
	}
	sendJSON(w, http.StatusOK, IndexResponse{
		FilesIndexed: summary.FilesIndexed,
		ChunksStored: summary.ChunksStored,
	})
}

// HandleSearch handles POST /search requests.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Query == "" {
		sendError(w, http.StatusBadRequest, "query is required")
		return
	}
	if req.TopK <= 0 {
		req.TopK = constants.DefaultTopK
	}

	results, err := h.semantic.Search(r.Context(), req.Query, req.TopK, req.Scope)
	if err != nil {
		sendError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if results == nil {
		results = []models.SearchResult{}
	}
	sendJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// HandleAnalyze handles POST /analyze requests.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	content := req.Content
	if content == "" {
		if req.Path == "" {
			sendError(w, http.StatusBadRequest, "path or content is required")
			return
		}
		data, err := readFile(req.Path)
		if err != nil {
			sendError(w, http.StatusBadRequest, err.Error())
			return
		}
		content = data
	}

	findings, err := h.service.AnalyzeFile(content, req.Path)
	if err != nil {
		sendError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if findings == nil {
		findings = []models.Finding{}
	}
	sendJSON(w, http.StatusOK, AnalyzeResponse{Findings: findings})
}

// HandleStats handles GET /stats requests.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.semantic.Stats()
	if err != nil {
		sendError(w, http.StatusInternalServerError, err.Error())
		return
	}
	sendJSON(w, http.StatusOK, stats)
}

// HandleHealth handles GET /health requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(data), nil
}

func sendJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, status int, msg string) {
	sendJSON(w, status, map[string]string{"error": msg})
}
