package reconcile

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/lijeuki/PM-dashboard/pkg/project"
)

type FinancialsDTO struct {
	Budget           float64 `json:"budget"`
	Spent            float64 `json:"spent"`
	MandaysAllocated float64 `json:"mandays_allocated"`
	MandaysConsumed  float64 `json:"mandays_consumed"`
}

type ResultDTO struct {
	ProjectID string `json:"project_id"`
	Error     string `json:"error,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// ReconcileProject resyncs one project. The source query parameter picks
// what to resync from: "ledger" (default) rebuilds the financial totals,
// "mandays" rebuilds consumed labor days only.
func (h *Handler) ReconcileProject(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	projectID := mux.Vars(r)["projectId"]

	source := r.URL.Query().Get("source")
	if source == "" {
		source = "ledger"
	}

	switch source {
	case "ledger":
		totals, err := h.service.SyncWithLedger(r.Context(), projectID)
		if err != nil {
			writeReconcileError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		response := FinancialsDTO{
			Budget:           totals.Budget,
			Spent:            totals.Spent,
			MandaysAllocated: totals.MandaysAllocated,
			MandaysConsumed:  totals.MandaysConsumed,
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	case "mandays":
		total, err := h.service.SyncLaborDaysConsumed(r.Context(), projectID)
		if err != nil {
			writeReconcileError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		response := struct {
			MandaysConsumed float64 `json:"mandays_consumed"`
		}{MandaysConsumed: total}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	default:
		http.Error(w, "Unknown reconciliation source: "+source, http.StatusBadRequest)
	}
}

// ReconcileAll runs the ledger sync for every project and reports
// per-project outcomes.
func (h *Handler) ReconcileAll(w http.ResponseWriter, r *http.Request) {
	log.Debug("Reconciling all projects")
	w.Header().Set("Content-Type", "application/json")

	results, err := h.service.SyncAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ResultDTO, 0, len(results))
	for _, result := range results {
		dto := ResultDTO{ProjectID: result.ProjectID}
		if result.Err != nil {
			dto.Error = result.Err.Error()
		}
		dtos = append(dtos, dto)
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func writeReconcileError(w http.ResponseWriter, err error) {
	if errors.Is(err, project.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
