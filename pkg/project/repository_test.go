package project

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lijeuki/PM-dashboard/internal/database"
	"github.com/lijeuki/PM-dashboard/internal/test_utils"
)

func setupTestRepository(t *testing.T) (*RepositoryImpl, database.Admin) {
	db := database.Admin{DB: test_utils.SetupTestDB(t)}
	return NewRepository(db), db
}

func TestRepositoryImpl_Store(t *testing.T) {
	t.Run("should store a project and read it back with a generated id", func(t *testing.T) {
		repo, _ := setupTestRepository(t)
		ctx := context.Background()

		// given
		project := Project{
			Name:        "Platform Rebuild",
			Description: "Replace the legacy stack",
			Status:      StatusActive,
			Department:  "Engineering",
			Budget:      100000,
			StartDate:   time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		}

		// when
		stored, err := repo.Store(ctx, project)

		// then
		require.NoError(t, err)
		assert.NotEmpty(t, stored.ID)
		assert.Equal(t, "Platform Rebuild", stored.Name)
		assert.Equal(t, StatusActive, stored.Status)
		assert.Equal(t, 100000.0, stored.Budget)
		assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), stored.StartDate)
		assert.True(t, stored.EndDate.IsZero())
		assert.False(t, stored.CreatedAt.IsZero())
	})

	t.Run("should store a project without dates", func(t *testing.T) {
		repo, _ := setupTestRepository(t)
		ctx := context.Background()

		// when
		stored, err := repo.Store(ctx, Project{Name: "Undated", Status: StatusActive})

		// then
		require.NoError(t, err)
		assert.True(t, stored.StartDate.IsZero())
		assert.True(t, stored.EndDate.IsZero())
	})
}

func TestRepositoryImpl_GetAll(t *testing.T) {
	t.Run("should list projects newest first", func(t *testing.T) {
		repo, _ := setupTestRepository(t)
		ctx := context.Background()

		// given
		_, err := repo.Store(ctx, Project{Name: "First", Status: StatusActive})
		require.NoError(t, err)
		_, err = repo.Store(ctx, Project{Name: "Second", Status: StatusActive})
		require.NoError(t, err)

		// when
		projects, err := repo.GetAll(ctx)

		// then
		require.NoError(t, err)
		require.Len(t, projects, 2)
		assert.Equal(t, "Second", projects[0].Name)
		assert.Equal(t, "First", projects[1].Name)
	})
}

func TestRepositoryImpl_FindByID(t *testing.T) {
	t.Run("should return not found for an unknown id", func(t *testing.T) {
		repo, _ := setupTestRepository(t)

		// when
		_, err := repo.FindByID(context.Background(), "missing")

		// then
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRepositoryImpl_Update(t *testing.T) {
	t.Run("should update editable fields and keep the derived totals", func(t *testing.T) {
		repo, _ := setupTestRepository(t)
		ctx := context.Background()

		// given
		stored, err := repo.Store(ctx, Project{Name: "Platform", Status: StatusActive, Budget: 100000})
		require.NoError(t, err)
		ok, err := repo.UpdateFinancials(ctx, stored.ID, Financials{Budget: 100000, Spent: 25000, MandaysConsumed: 50})
		require.NoError(t, err)
		require.True(t, ok)

		// when
		stored.Name = "Platform v2"
		stored.Status = StatusOnHold
		ok, err = repo.Update(ctx, stored)

		// then
		require.NoError(t, err)
		assert.True(t, ok)
		updated, err := repo.FindByID(ctx, stored.ID)
		require.NoError(t, err)
		assert.Equal(t, "Platform v2", updated.Name)
		assert.Equal(t, StatusOnHold, updated.Status)
		assert.Equal(t, 25000.0, updated.Spent)
		assert.Equal(t, 50.0, updated.MandaysConsumed)
	})

	t.Run("should report false for an unknown id", func(t *testing.T) {
		repo, _ := setupTestRepository(t)

		// when
		ok, err := repo.Update(context.Background(), Project{ID: "missing", Name: "Ghost", Status: StatusActive})

		// then
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestRepositoryImpl_Delete(t *testing.T) {
	t.Run("should delete the project together with its labor-day records", func(t *testing.T) {
		repo, db := setupTestRepository(t)
		ctx := context.Background()

		// given
		stored, err := repo.Store(ctx, Project{Name: "Platform", Status: StatusActive})
		require.NoError(t, err)
		_, err = db.Exec(`INSERT INTO mandays (project_id, role, month, year, total_hours, mandays)
			VALUES (?, 'Backend Developer', '03', '2025', 80, 10)`, stored.ID)
		require.NoError(t, err)

		// when
		ok, err := repo.Delete(ctx, stored.ID)

		// then
		require.NoError(t, err)
		assert.True(t, ok)
		var count int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM mandays WHERE project_id = ?", stored.ID).Scan(&count))
		assert.Equal(t, 0, count)
	})

	t.Run("should keep ledger history after deleting the project", func(t *testing.T) {
		repo, db := setupTestRepository(t)
		ctx := context.Background()

		// given
		stored, err := repo.Store(ctx, Project{Name: "Platform", Status: StatusActive})
		require.NoError(t, err)
		_, err = db.Exec(`INSERT INTO project_ledger (project_id, type, category, amount)
			VALUES (?, 'credit', 'budget', 100000)`, stored.ID)
		require.NoError(t, err)

		// when
		ok, err := repo.Delete(ctx, stored.ID)

		// then
		require.NoError(t, err)
		assert.True(t, ok)
		var count int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM project_ledger WHERE project_id = ?", stored.ID).Scan(&count))
		assert.Equal(t, 1, count)
	})

	t.Run("should report false for an unknown id", func(t *testing.T) {
		repo, _ := setupTestRepository(t)

		// when
		ok, err := repo.Delete(context.Background(), "missing")

		// then
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestRepositoryImpl_UpdateMandaysConsumed(t *testing.T) {
	t.Run("should overwrite only the consumed total", func(t *testing.T) {
		repo, _ := setupTestRepository(t)
		ctx := context.Background()

		// given
		stored, err := repo.Store(ctx, Project{Name: "Platform", Status: StatusActive, Budget: 100000})
		require.NoError(t, err)

		// when
		ok, err := repo.UpdateMandaysConsumed(ctx, stored.ID, 42.5)

		// then
		require.NoError(t, err)
		assert.True(t, ok)
		updated, err := repo.FindByID(ctx, stored.ID)
		require.NoError(t, err)
		assert.Equal(t, 42.5, updated.MandaysConsumed)
		assert.Equal(t, 100000.0, updated.Budget)
	})
}
