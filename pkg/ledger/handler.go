package ledger

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

type EntryDTO struct {
	ID        int64   `json:"id,omitempty"`
	ProjectID string  `json:"project_id"`
	Type      string  `json:"type"`
	Category  string  `json:"category"`
	Amount    float64 `json:"amount"`
	Notes     string  `json:"notes,omitempty"`
	CreatedAt string  `json:"created_at,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	projectID := r.URL.Query().Get("projectId")
	if projectID == "" {
		http.Error(w, "Project ID is required", http.StatusBadRequest)
		return
	}

	entries, err := h.service.GetAllForProject(r.Context(), projectID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, toDTO(entry))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) RecordEntry(w http.ResponseWriter, r *http.Request) {
	log.Debug("Recording new ledger entry")
	w.Header().Set("Content-Type", "application/json")

	var dto EntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := h.service.Record(r.Context(), Entry{
		ProjectID: dto.ProjectID,
		Type:      EntryType(dto.Type),
		Category:  Category(dto.Category),
		Amount:    dto.Amount,
		Notes:     dto.Notes,
	})
	if errors.Is(err, ErrInvalid) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(entry)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func toDTO(entry Entry) EntryDTO {
	dto := EntryDTO{
		ID:        entry.ID,
		ProjectID: entry.ProjectID,
		Type:      string(entry.Type),
		Category:  string(entry.Category),
		Amount:    entry.Amount,
		Notes:     entry.Notes,
	}
	if !entry.CreatedAt.IsZero() {
		dto.CreatedAt = entry.CreatedAt.Format(time.RFC3339)
	}
	return dto
}
