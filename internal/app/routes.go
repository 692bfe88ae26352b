package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Projects
	r.HandleFunc("/api/projects", deps.ProjectHandler.ListProjects).Methods("GET")
	r.HandleFunc("/api/projects", deps.ProjectHandler.CreateProject).Methods("POST")
	r.HandleFunc("/api/projects/{projectId}", deps.ProjectHandler.GetProject).Methods("GET")
	r.HandleFunc("/api/projects/{projectId}", deps.ProjectHandler.UpdateProject).Methods("PUT")
	r.HandleFunc("/api/projects/{projectId}", deps.ProjectHandler.DeleteProject).Methods("DELETE")

	// Reconciliation
	r.HandleFunc("/api/projects/{projectId}/reconcile", deps.ReconcileHandler.ReconcileProject).Methods("POST")
	r.HandleFunc("/api/reconcile", deps.ReconcileHandler.ReconcileAll).Methods("POST")

	// Ledger
	r.HandleFunc("/api/ledger", deps.LedgerHandler.ListEntries).Queries("projectId", "{projectId}").Methods("GET")
	r.HandleFunc("/api/ledger", deps.LedgerHandler.RecordEntry).Methods("POST")

	// Role rates
	r.HandleFunc("/api/role-rates", deps.RateHandler.ListRates).Queries("projectId", "{projectId}").Methods("GET")
	r.HandleFunc("/api/role-rates", deps.RateHandler.CreateRate).Methods("POST")
	r.HandleFunc("/api/role-rates/{rateId}", deps.RateHandler.UpdateRate).Methods("PUT")
	r.HandleFunc("/api/role-rates/{rateId}", deps.RateHandler.DeleteRate).Methods("DELETE")

	// Labor-day records
	r.HandleFunc("/api/mandays", deps.MandayHandler.ListRecords).Queries("projectId", "{projectId}").Methods("GET")
	r.HandleFunc("/api/mandays/import", deps.MandayHandler.ImportRecords).Methods("POST")

	// Spending summary
	r.HandleFunc("/api/spending-summary", deps.SpendingHandler.GetSummary).Methods("GET")

	// Resource usage
	r.HandleFunc("/api/usage/resources", deps.UsageHandler.GetResourceTable).Methods("GET")
	r.HandleFunc("/api/usage/resources/csv", deps.UsageHandler.ExportResourceTable).Methods("GET")
	r.HandleFunc("/api/usage/monthly", deps.UsageHandler.GetMonthlyTotals).Methods("GET")
	r.HandleFunc("/api/usage/roles", deps.UsageHandler.GetRoleTotals).Methods("GET")
	r.HandleFunc("/api/usage/filters", deps.UsageHandler.GetFilters).Methods("GET")

	// Health
	r.HandleFunc("/api/health", deps.HealthHandler.GetHealth).Methods("GET")
	r.HandleFunc("/api/health/tables", deps.HealthHandler.GetTableHealth).Methods("GET")
}
