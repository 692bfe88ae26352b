package app

import (
	"github.com/lijeuki/PM-dashboard/internal/config"
	"github.com/lijeuki/PM-dashboard/internal/database"
	"github.com/lijeuki/PM-dashboard/pkg/health"
	"github.com/lijeuki/PM-dashboard/pkg/ledger"
	"github.com/lijeuki/PM-dashboard/pkg/manday"
	"github.com/lijeuki/PM-dashboard/pkg/project"
	"github.com/lijeuki/PM-dashboard/pkg/rate"
	"github.com/lijeuki/PM-dashboard/pkg/reconcile"
	"github.com/lijeuki/PM-dashboard/pkg/spending"
	"github.com/lijeuki/PM-dashboard/pkg/usage"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	ProjectRepo    project.Repository
	ProjectService project.Service
	ProjectHandler *project.Handler

	LedgerRepo    ledger.Repository
	LedgerService ledger.Service
	LedgerHandler *ledger.Handler

	RateRepo    rate.Repository
	RateService rate.Service
	RateHandler *rate.Handler

	MandayRepo        manday.Repository
	MandayTransformer manday.Transformer
	MandayService     manday.Service
	MandayHandler     *manday.Handler

	SpendingSource  spending.Source
	SpendingService spending.Service
	SpendingHandler *spending.Handler

	ReconcileService reconcile.Service
	ReconcileHandler *reconcile.Handler

	UsageRepo        usage.Repository
	UsageService     usage.Service
	UsageCsvRenderer *usage.CsvTableRendererImpl
	UsageHandler     *usage.Handler

	HealthService health.Service
	HealthHandler *health.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(admin database.Admin, readOnly database.ReadOnly, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.ProjectRepo = project.NewRepository(admin)
	deps.ProjectService = project.NewService(deps.ProjectRepo)
	deps.ProjectHandler = project.NewHandler(deps.ProjectService)

	deps.LedgerRepo = ledger.NewRepository(admin)
	deps.LedgerService = ledger.NewService(deps.LedgerRepo)
	deps.LedgerHandler = ledger.NewHandler(deps.LedgerService)

	deps.RateRepo = rate.NewRepository(admin)
	deps.RateService = rate.NewService(deps.RateRepo)
	deps.RateHandler = rate.NewHandler(deps.RateService)

	deps.MandayRepo = manday.NewRepository(admin)
	deps.MandayTransformer = manday.NewWebhookTransformer(cfg.Import.WebhookURL, cfg.Import.APIKey)
	deps.MandayService = manday.NewService(deps.MandayRepo, deps.MandayTransformer)
	deps.MandayHandler = manday.NewHandler(deps.MandayService)

	deps.SpendingSource = spending.NewSourceWithFallback(
		spending.NewViewSource(readOnly),
		spending.NewManualSource(readOnly),
	)
	deps.SpendingService = spending.NewService(deps.SpendingSource)
	deps.SpendingHandler = spending.NewHandler(deps.SpendingService)

	deps.ReconcileService = reconcile.NewService(deps.ProjectRepo, deps.LedgerRepo, deps.MandayRepo)
	deps.ReconcileHandler = reconcile.NewHandler(deps.ReconcileService)

	deps.UsageRepo = usage.NewRepository(readOnly)
	deps.UsageService = usage.NewService(deps.UsageRepo)
	deps.UsageCsvRenderer = usage.NewCsvTableRenderer()
	deps.UsageHandler = usage.NewHandler(deps.UsageService, deps.UsageCsvRenderer)

	deps.HealthService = health.NewService(readOnly)
	deps.HealthHandler = health.NewHandler(deps.HealthService)

	return deps
}
