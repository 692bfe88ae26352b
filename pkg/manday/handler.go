package manday

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

type RecordDTO struct {
	ID         int64   `json:"id"`
	ProjectID  string  `json:"project_id"`
	Role       string  `json:"role"`
	Month      string  `json:"month"`
	Year       string  `json:"year"`
	TotalHours float64 `json:"total_hours"`
	Mandays    float64 `json:"mandays"`
	CreatedAt  string  `json:"created_at,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	projectID := r.URL.Query().Get("projectId")
	if projectID == "" {
		http.Error(w, "Project ID is required", http.StatusBadRequest)
		return
	}

	filter := Filter{
		ProjectID: projectID,
		Month:     r.URL.Query().Get("month"),
		Year:      r.URL.Query().Get("year"),
	}

	records, err := h.service.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]RecordDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, toDTO(record))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// maxImportSize caps uploaded CSV files at 10 MiB.
const maxImportSize = 10 << 20

func (h *Handler) ImportRecords(w http.ResponseWriter, r *http.Request) {
	log.Debug("Importing labor-day records")
	w.Header().Set("Content-Type", "application/json")

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	projectID := r.FormValue("projectId")
	year := r.FormValue("year")
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "CSV file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	applied, err := h.service.Import(r.Context(), projectID, year, file, header.Filename)
	if errors.Is(err, ErrInvalid) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errors.Is(err, ErrNoValidRows) {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.WriteHeader(http.StatusOK)
	response := struct {
		Applied int `json:"applied"`
	}{Applied: applied}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func toDTO(record Record) RecordDTO {
	dto := RecordDTO{
		ID:         record.ID,
		ProjectID:  record.ProjectID,
		Role:       record.Role,
		Month:      record.Month,
		Year:       record.Year,
		TotalHours: record.TotalHours,
		Mandays:    record.Mandays,
	}
	if !record.CreatedAt.IsZero() {
		dto.CreatedAt = record.CreatedAt.Format(time.RFC3339)
	}
	return dto
}
