package usage

import (
	"encoding/json"
	"errors"
	"net/http"
)

type ResourceRowDTO struct {
	Role      string    `json:"role"`
	Monthly   []float64 `json:"monthly"`
	TotalDays float64   `json:"total_days"`
	Rate      float64   `json:"rate"`
	TotalCost float64   `json:"total_cost"`
}

type ResourceTableDTO struct {
	Rows  []ResourceRowDTO `json:"rows"`
	Total ResourceRowDTO   `json:"total"`
}

type MonthTotalDTO struct {
	Month string  `json:"month"`
	Label string  `json:"label"`
	Days  float64 `json:"days"`
}

type RoleTotalDTO struct {
	Role string  `json:"role"`
	Days float64 `json:"days"`
}

type Handler struct {
	service  Service
	renderer TableRenderer
}

func NewHandler(service Service, renderer TableRenderer) *Handler {
	return &Handler{service, renderer}
}

// GetResourceTable serves the per-role usage table as JSON, or as CSV
// when the client asks for text/csv.
func (h *Handler) GetResourceTable(w http.ResponseWriter, r *http.Request) {
	projectID := r.URL.Query().Get("projectId")
	year := r.URL.Query().Get("year")

	table, err := h.service.ResourceTable(r.Context(), projectID, year)
	if err != nil {
		writeUsageError(w, err)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		h.writeCSV(w, *table)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(toTableDTO(*table)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// ExportResourceTable always serves CSV, for clients that cannot set an
// Accept header (browser download links).
func (h *Handler) ExportResourceTable(w http.ResponseWriter, r *http.Request) {
	projectID := r.URL.Query().Get("projectId")
	year := r.URL.Query().Get("year")

	table, err := h.service.ResourceTable(r.Context(), projectID, year)
	if err != nil {
		writeUsageError(w, err)
		return
	}
	h.writeCSV(w, *table)
}

func (h *Handler) GetMonthlyTotals(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	projectID := r.URL.Query().Get("projectId")
	year := r.URL.Query().Get("year")

	totals, err := h.service.MonthlyTotals(r.Context(), projectID, year)
	if err != nil {
		writeUsageError(w, err)
		return
	}

	dtos := make([]MonthTotalDTO, 0, len(totals))
	for _, total := range totals {
		dtos = append(dtos, MonthTotalDTO{Month: total.Month, Label: total.Label, Days: total.Days})
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetRoleTotals(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	projectID := r.URL.Query().Get("projectId")
	month := r.URL.Query().Get("month")
	year := r.URL.Query().Get("year")

	totals, err := h.service.RoleTotals(r.Context(), projectID, month, year)
	if err != nil {
		writeUsageError(w, err)
		return
	}

	dtos := make([]RoleTotalDTO, 0, len(totals))
	for _, total := range totals {
		dtos = append(dtos, RoleTotalDTO{Role: total.Role, Days: total.Days})
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetFilters serves the filter vocabularies: recorded years plus the
// canonical month numbers.
func (h *Handler) GetFilters(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	years, err := h.service.Years(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := struct {
		Years  []string `json:"years"`
		Months []string `json:"months"`
	}{Years: years, Months: MonthNumbers()}
	if response.Years == nil {
		response.Years = []string{}
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) writeCSV(w http.ResponseWriter, table ResourceTable) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	csvBody, err := h.renderer.RenderTable(table)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if _, err := w.Write([]byte(csvBody)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func writeUsageError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalid) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func toTableDTO(table ResourceTable) ResourceTableDTO {
	dto := ResourceTableDTO{
		Rows:  make([]ResourceRowDTO, 0, len(table.Rows)),
		Total: toRowDTO(table.Total),
	}
	for _, row := range table.Rows {
		dto.Rows = append(dto.Rows, toRowDTO(row))
	}
	return dto
}

func toRowDTO(row ResourceRow) ResourceRowDTO {
	monthly := make([]float64, monthsPerYear)
	copy(monthly, row.Monthly[:])
	return ResourceRowDTO{
		Role:      row.Role,
		Monthly:   monthly,
		TotalDays: row.TotalDays,
		Rate:      row.Rate,
		TotalCost: row.TotalCost,
	}
}
