package reconcile

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/lijeuki/PM-dashboard/pkg/ledger"
	"github.com/lijeuki/PM-dashboard/pkg/manday"
	"github.com/lijeuki/PM-dashboard/pkg/project"
)

type Service interface {
	// SyncWithLedger recomputes budget, spent, allocated and consumed
	// labor days from the project's ledger entries and persists them in
	// a single update.
	SyncWithLedger(ctx context.Context, projectID string) (*project.Financials, error)
	// SyncLaborDaysConsumed recomputes consumed labor days from the
	// project's labor-day records and returns the new total.
	SyncLaborDaysConsumed(ctx context.Context, projectID string) (float64, error)
	// SyncAll runs the ledger sync for every project. A failing project
	// is reported in its Result; the rest are still synced.
	SyncAll(ctx context.Context) ([]Result, error)
}

type ServiceImpl struct {
	projects project.Repository
	entries  ledger.Repository
	records  manday.Repository
}

func NewService(projects project.Repository, entries ledger.Repository, records manday.Repository) *ServiceImpl {
	return &ServiceImpl{projects: projects, entries: entries, records: records}
}

func (s *ServiceImpl) SyncWithLedger(ctx context.Context, projectID string) (*project.Financials, error) {
	entries, err := s.entries.GetAllForProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	var totals project.Financials
	for _, entry := range entries {
		switch {
		case entry.Type == ledger.TypeCredit && entry.Category == ledger.CategoryBudget:
			totals.Budget += entry.Amount
		case entry.Type == ledger.TypeDebit && entry.Category == ledger.CategoryBudget:
			totals.Spent += entry.Amount
		case entry.Type == ledger.TypeCredit && entry.Category == ledger.CategoryMandays:
			totals.MandaysAllocated += entry.Amount
		case entry.Type == ledger.TypeDebit && entry.Category == ledger.CategoryMandays:
			totals.MandaysConsumed += entry.Amount
		}
	}

	ok, err := s.projects.UpdateFinancials(ctx, projectID, totals)
	if err != nil {
		return nil, err
	}
	if !ok {
		log.Warnf("Cannot reconcile project %s: not found", projectID)
		return nil, fmt.Errorf("project %s: %w", projectID, project.ErrNotFound)
	}
	return &totals, nil
}

func (s *ServiceImpl) SyncLaborDaysConsumed(ctx context.Context, projectID string) (float64, error) {
	total, err := s.records.SumForProject(ctx, projectID)
	if err != nil {
		return 0, err
	}

	ok, err := s.projects.UpdateMandaysConsumed(ctx, projectID, total)
	if err != nil {
		return 0, err
	}
	if !ok {
		log.Warnf("Cannot reconcile project %s: not found", projectID)
		return 0, fmt.Errorf("project %s: %w", projectID, project.ErrNotFound)
	}
	return total, nil
}

func (s *ServiceImpl) SyncAll(ctx context.Context) ([]Result, error) {
	projects, err := s.projects.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(projects))
	for _, p := range projects {
		_, err := s.SyncWithLedger(ctx, p.ID)
		if err != nil {
			log.Warnf("Reconciliation failed for project %s: %v", p.ID, err)
		}
		results = append(results, Result{ProjectID: p.ID, Err: err})
	}
	return results, nil
}
