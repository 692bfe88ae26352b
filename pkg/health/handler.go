package health

import (
	"encoding/json"
	"net/http"
)

type StatusDTO struct {
	Status   string `json:"status"`
	Projects int    `json:"projects"`
	Error    string `json:"error,omitempty"`
}

type TableStatusDTO struct {
	Table      string `json:"table"`
	Accessible bool   `json:"accessible"`
	HasData    bool   `json:"has_data"`
	Error      string `json:"error,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := h.service.Check(r.Context())
	dto := StatusDTO{Status: "ok", Projects: status.Projects, Error: status.Error}
	if !status.Healthy {
		dto.Status = "unavailable"
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetTableHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	statuses := h.service.CheckTables(r.Context())
	dtos := make([]TableStatusDTO, 0, len(statuses))
	for _, status := range statuses {
		dtos = append(dtos, TableStatusDTO{
			Table:      status.Table,
			Accessible: status.Accessible,
			HasData:    status.HasData,
			Error:      status.Error,
		})
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
