package health

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/lijeuki/PM-dashboard/internal/database"
)

// probedTables is the fixed list of tables the diagnostics endpoint
// checks. Probing arbitrary table names is deliberately not supported.
var probedTables = []string{"projects", "project_ledger", "project_role_rates", "mandays"}

type Service interface {
	Check(ctx context.Context) Status
	CheckTables(ctx context.Context) []TableStatus
}

type ServiceImpl struct {
	db database.ReadOnly
}

func NewService(db database.ReadOnly) *ServiceImpl {
	return &ServiceImpl{db}
}

// Check probes the store with a one-row project read and reports the
// project count. Any failure marks the store unhealthy.
func (s *ServiceImpl) Check(ctx context.Context) Status {
	var id string
	err := s.db.QueryRowContext(ctx, "SELECT id FROM projects LIMIT 1").Scan(&id)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Errorf("Health probe failed: %v", err)
		return Status{Error: err.Error()}
	}

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects").Scan(&count); err != nil {
		log.Errorf("Health probe failed counting projects: %v", err)
		return Status{Error: err.Error()}
	}
	return Status{Healthy: true, Projects: count}
}

// CheckTables probes every known table and reports accessibility and
// whether it holds any rows. A failing table does not stop the others
// from being probed.
func (s *ServiceImpl) CheckTables(ctx context.Context) []TableStatus {
	statuses := make([]TableStatus, 0, len(probedTables))
	for _, table := range probedTables {
		status := TableStatus{Table: table}
		var count int
		err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count)
		if err != nil {
			log.Warnf("Table probe failed for %s: %v", table, err)
			status.Error = err.Error()
		} else {
			status.Accessible = true
			status.HasData = count > 0
		}
		statuses = append(statuses, status)
	}
	return statuses
}
