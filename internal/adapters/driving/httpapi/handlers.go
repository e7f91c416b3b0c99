package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/filehub-labs/filehub/internal/core/domain"
	"github.com/filehub-labs/filehub/internal/logger"
)

// defaultLimit caps result counts when the request does not specify one.
const defaultLimit = 10

// fileResponse is the wire shape of a file record. Content and vector are
// deliberately omitted; listings stay light.
type fileResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Path         string    `json:"path,omitempty"`
	FileType     string    `json:"file_type,omitempty"`
	Category     string    `json:"category"`
	Source       string    `json:"source"`
	SourceID     string    `json:"source_id,omitempty"`
	LastModified time.Time `json:"last_modified,omitempty"`
	Size         int64     `json:"size"`
	Summary      string    `json:"summary,omitempty"`
	IsProcessed  bool      `json:"is_processed"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// matchResponse pairs a file with its similarity score.
type matchResponse struct {
	File  fileResponse `json:"file"`
	Score float64      `json:"score"`
}

// integrationResponse is the wire shape of an integration. Config is omitted;
// it may hold credentials.
type integrationResponse struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Status     string    `json:"status"`
	LastSynced time.Time `json:"last_synced,omitempty"`
}

// searchRequest is the POST /api/search body.
type searchRequest struct {
	Query     string  `json:"query"`
	Threshold float64 `json:"threshold"`
	Limit     int     `json:"limit"`
}

// createIntegrationRequest is the POST /api/integrations body.
type createIntegrationRequest struct {
	Type   string            `json:"type"`
	Config map[string]string `json:"config"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	records, err := s.files.List(r.Context(), ownerID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]fileResponse, 0, len(records))
	for _, record := range records {
		out = append(out, toFileResponse(record))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	record, err := s.files.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toFileResponse(*record))
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	if err := s.files.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReprocessFile(w http.ResponseWriter, r *http.Request) {
	if err := s.files.Reprocess(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleFindSimilar(w http.ResponseWriter, r *http.Request) {
	opts := searchOptionsFromQuery(r)

	matches, err := s.search.FindSimilar(r.Context(), chi.URLParam(r, "id"), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMatchResponses(matches))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidInput)
		return
	}
	if req.Limit <= 0 {
		req.Limit = defaultLimit
	}

	matches, err := s.search.SearchByText(r.Context(), ownerID(r), req.Query, domain.SearchOptions{
		Threshold: req.Threshold,
		Limit:     req.Limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMatchResponses(matches))
}

func (s *Server) handleListIntegrations(w http.ResponseWriter, r *http.Request) {
	integrations, err := s.integrations.List(r.Context(), ownerID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]integrationResponse, 0, len(integrations))
	for _, integration := range integrations {
		out = append(out, toIntegrationResponse(integration))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateIntegration(w http.ResponseWriter, r *http.Request) {
	var req createIntegrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidInput)
		return
	}

	platform := domain.Platform(req.Type)
	if !platform.Valid() {
		writeError(w, domain.ErrUnsupportedPlatform)
		return
	}

	integration := domain.Integration{
		OwnerID: ownerID(r),
		Type:    platform,
		Status:  domain.IntegrationDisconnected,
		Config:  req.Config,
	}
	if err := s.integrations.Save(r.Context(), &integration); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toIntegrationResponse(integration))
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	if err := s.sync.Sync(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}

func (s *Server) handleSyncAll(w http.ResponseWriter, r *http.Request) {
	if err := s.sync.SyncAll(r.Context(), ownerID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}

func (s *Server) handleSyncStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.sync.Status(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// searchOptionsFromQuery reads threshold and limit query parameters.
func searchOptionsFromQuery(r *http.Request) domain.SearchOptions {
	opts := domain.SearchOptions{Limit: defaultLimit}

	if raw := r.URL.Query().Get("threshold"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			opts.Threshold = v
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			opts.Limit = v
		}
	}
	return opts
}

func toFileResponse(record domain.FileRecord) fileResponse {
	return fileResponse{
		ID:           record.ID,
		Name:         record.Name,
		Path:         record.Path,
		FileType:     record.FileType,
		Category:     string(record.Category),
		Source:       string(record.Source),
		SourceID:     record.SourceID,
		LastModified: record.LastModified,
		Size:         record.Size,
		Summary:      record.ContentSummary,
		IsProcessed:  record.IsProcessed,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}
}

func toMatchResponses(matches []domain.Match) []matchResponse {
	out := make([]matchResponse, 0, len(matches))
	for _, match := range matches {
		out = append(out, matchResponse{
			File:  toFileResponse(match.Record),
			Score: match.Score,
		})
	}
	return out
}

func toIntegrationResponse(integration domain.Integration) integrationResponse {
	return integrationResponse{
		ID:         integration.ID,
		Type:       string(integration.Type),
		Status:     string(integration.Status),
		LastSynced: integration.LastSynced,
	}
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response: %v", err)
	}
}

// writeError translates domain errors into HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrUnsupportedPlatform),
		errors.Is(err, domain.ErrDimensionMismatch),
		errors.Is(err, domain.ErrMissingVector):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrSyncInProgress):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrRateLimited):
		status = http.StatusTooManyRequests
	case errors.Is(err, domain.ErrEmbeddingUnconfigured),
		errors.Is(err, domain.ErrEmbeddingProvider):
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}
