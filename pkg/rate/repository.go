package rate

import (
	"context"
	"fmt"

	"github.com/lijeuki/PM-dashboard/internal/database"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Store(ctx context.Context, roleRate RoleRate) (int64, error)
	// GetAllForProject returns the project's rates ordered by role.
	GetAllForProject(ctx context.Context, projectID string) ([]RoleRate, error)
	Update(ctx context.Context, roleRate RoleRate) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type RepositoryImpl struct {
	db database.Admin
}

func NewRepository(db database.Admin) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, roleRate RoleRate) (int64, error) {
	query := "INSERT INTO project_role_rates (project_id, role, cost_per_manday) VALUES (?, ?, ?)"
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return 0, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, roleRate.ProjectID, roleRate.Role, roleRate.CostPerManday)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return 0, err
	}

	return lastInsertID, nil
}

func (r *RepositoryImpl) GetAllForProject(ctx context.Context, projectID string) ([]RoleRate, error) {
	query := `SELECT id, project_id, role, cost_per_manday FROM project_role_rates
				WHERE project_id = ? ORDER BY role`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		err := fmt.Errorf("could not query role rates: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var roleRates []RoleRate
	for rows.Next() {
		var roleRate RoleRate
		if err := rows.Scan(&roleRate.ID, &roleRate.ProjectID, &roleRate.Role, &roleRate.CostPerManday); err != nil {
			err := fmt.Errorf("could not scan role rate: %w", err)
			log.Error(err)
			return nil, err
		}
		roleRates = append(roleRates, roleRate)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return roleRates, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, roleRate RoleRate) (bool, error) {
	query := "UPDATE project_role_rates SET role = ?, cost_per_manday = ? WHERE id = ?"
	result, err := r.db.ExecContext(ctx, query, roleRate.Role, roleRate.CostPerManday, roleRate.ID)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM project_role_rates WHERE id = ?", id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}
