package spending

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lijeuki/PM-dashboard/pkg/project"
)

type SummaryDTO struct {
	ProjectID   string  `json:"project_id"`
	ProjectName string  `json:"project_name"`
	TotalSpent  float64 `json:"total_spent"`
	BurnRate    float64 `json:"burn_rate"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// GetSummary serves the spending summary, for one project when projectId
// is given and for every project otherwise.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if projectID := r.URL.Query().Get("projectId"); projectID != "" {
		summary, err := h.service.Summary(r.Context(), projectID)
		if errors.Is(err, project.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(toSummaryDTO(*summary)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	summaries, err := h.service.Summaries(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]SummaryDTO, 0, len(summaries))
	for _, summary := range summaries {
		dtos = append(dtos, toSummaryDTO(summary))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func toSummaryDTO(summary Summary) SummaryDTO {
	return SummaryDTO{
		ProjectID:   summary.ProjectID,
		ProjectName: summary.ProjectName,
		TotalSpent:  summary.TotalSpent,
		BurnRate:    summary.BurnRate,
	}
}
