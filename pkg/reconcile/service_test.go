package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lijeuki/PM-dashboard/pkg/ledger"
	"github.com/lijeuki/PM-dashboard/pkg/manday"
	"github.com/lijeuki/PM-dashboard/pkg/project"
)

var ctx = context.Background()

var projectRepoStub = project.NewRepositoryStub()
var ledgerRepoStub = ledger.NewRepositoryStub()
var mandayRepoStub = manday.NewRepositoryStub()

var service Service

func setup(t *testing.T) func() {
	service = NewService(projectRepoStub, ledgerRepoStub, mandayRepoStub)
	return func() {
		t.Log("Teardown after test")
		projectRepoStub.Cleanup()
		ledgerRepoStub.Cleanup()
		mandayRepoStub.Cleanup()
	}
}

func storeProject(t *testing.T, name string) project.Project {
	t.Helper()
	stored, err := projectRepoStub.Store(ctx, project.Project{Name: name, Status: project.StatusActive})
	require.NoError(t, err)
	return stored
}

func storeEntry(t *testing.T, projectID string, entryType ledger.EntryType, category ledger.Category, amount float64) {
	t.Helper()
	_, err := ledgerRepoStub.Store(ctx, ledger.Entry{
		ProjectID: projectID,
		Type:      entryType,
		Category:  category,
		Amount:    amount,
	})
	require.NoError(t, err)
}

func TestServiceImpl_SyncWithLedger(t *testing.T) {
	t.Run("should split entries into the four financial buckets", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		stored := storeProject(t, "Platform")
		storeEntry(t, stored.ID, ledger.TypeCredit, ledger.CategoryBudget, 100000)
		storeEntry(t, stored.ID, ledger.TypeCredit, ledger.CategoryBudget, 20000)
		storeEntry(t, stored.ID, ledger.TypeDebit, ledger.CategoryBudget, 30000)
		storeEntry(t, stored.ID, ledger.TypeCredit, ledger.CategoryMandays, 200)
		storeEntry(t, stored.ID, ledger.TypeDebit, ledger.CategoryMandays, 45)

		// when
		totals, err := service.SyncWithLedger(ctx, stored.ID)

		// then
		require.NoError(t, err)
		assert.Equal(t, 120000.0, totals.Budget)
		assert.Equal(t, 30000.0, totals.Spent)
		assert.Equal(t, 200.0, totals.MandaysAllocated)
		assert.Equal(t, 45.0, totals.MandaysConsumed)

		persisted, err := projectRepoStub.FindByID(ctx, stored.ID)
		require.NoError(t, err)
		assert.Equal(t, 120000.0, persisted.Budget)
		assert.Equal(t, 30000.0, persisted.Spent)
	})

	t.Run("should be idempotent", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		stored := storeProject(t, "Platform")
		storeEntry(t, stored.ID, ledger.TypeCredit, ledger.CategoryBudget, 100000)
		storeEntry(t, stored.ID, ledger.TypeDebit, ledger.CategoryBudget, 30000)

		// when
		first, err := service.SyncWithLedger(ctx, stored.ID)
		require.NoError(t, err)
		second, err := service.SyncWithLedger(ctx, stored.ID)
		require.NoError(t, err)

		// then
		assert.Equal(t, first, second)
	})

	t.Run("should zero the totals when the project has no entries", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given: totals were set by an earlier sync, then the slate is clean
		stored := storeProject(t, "Platform")
		storeEntry(t, "someone-else", ledger.TypeCredit, ledger.CategoryBudget, 100000)

		// when
		totals, err := service.SyncWithLedger(ctx, stored.ID)

		// then
		require.NoError(t, err)
		assert.Equal(t, project.Financials{}, *totals)
	})

	t.Run("should return not found for an unknown project", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.SyncWithLedger(ctx, "missing")

		// then
		assert.ErrorIs(t, err, project.ErrNotFound)
	})

	t.Run("should propagate a ledger read failure", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		ledgerRepoStub.FailWith = errors.New("storage unavailable")

		// when
		_, err := service.SyncWithLedger(ctx, "proj-001")

		// then
		assert.Error(t, err)
	})
}

func TestServiceImpl_SyncLaborDaysConsumed(t *testing.T) {
	t.Run("should sum labor-day records into consumed days", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		stored := storeProject(t, "Platform")
		require.NoError(t, mandayRepoStub.Upsert(ctx, manday.Record{
			ProjectID: stored.ID, Role: "Backend Developer", Month: "03", Year: "2025", Mandays: 10,
		}))
		require.NoError(t, mandayRepoStub.Upsert(ctx, manday.Record{
			ProjectID: stored.ID, Role: "Designer", Month: "03", Year: "2025", Mandays: 4.5,
		}))
		require.NoError(t, mandayRepoStub.Upsert(ctx, manday.Record{
			ProjectID: "someone-else", Role: "Designer", Month: "03", Year: "2025", Mandays: 99,
		}))

		// when
		total, err := service.SyncLaborDaysConsumed(ctx, stored.ID)

		// then
		require.NoError(t, err)
		assert.Equal(t, 14.5, total)

		persisted, err := projectRepoStub.FindByID(ctx, stored.ID)
		require.NoError(t, err)
		assert.Equal(t, 14.5, persisted.MandaysConsumed)
	})

	t.Run("should not touch the other financial totals", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		stored := storeProject(t, "Platform")
		storeEntry(t, stored.ID, ledger.TypeCredit, ledger.CategoryBudget, 100000)
		_, err := service.SyncWithLedger(ctx, stored.ID)
		require.NoError(t, err)
		require.NoError(t, mandayRepoStub.Upsert(ctx, manday.Record{
			ProjectID: stored.ID, Role: "Backend Developer", Month: "03", Year: "2025", Mandays: 10,
		}))

		// when
		_, err = service.SyncLaborDaysConsumed(ctx, stored.ID)

		// then
		require.NoError(t, err)
		persisted, err := projectRepoStub.FindByID(ctx, stored.ID)
		require.NoError(t, err)
		assert.Equal(t, 100000.0, persisted.Budget)
		assert.Equal(t, 10.0, persisted.MandaysConsumed)
	})

	t.Run("should return not found for an unknown project", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.SyncLaborDaysConsumed(ctx, "missing")

		// then
		assert.ErrorIs(t, err, project.ErrNotFound)
	})
}

func TestServiceImpl_SyncAll(t *testing.T) {
	t.Run("should sync every project and report per-project outcomes", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		first := storeProject(t, "Platform")
		second := storeProject(t, "Mobile")
		storeEntry(t, first.ID, ledger.TypeCredit, ledger.CategoryBudget, 100000)
		storeEntry(t, second.ID, ledger.TypeCredit, ledger.CategoryBudget, 50000)

		// when
		results, err := service.SyncAll(ctx)

		// then
		require.NoError(t, err)
		require.Len(t, results, 2)
		for _, result := range results {
			assert.NoError(t, result.Err)
		}

		persisted, err := projectRepoStub.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, 100000.0, persisted.Budget)
	})

	t.Run("should fail when the project list cannot be read", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		projectRepoStub.FailWith = errors.New("storage unavailable")

		// when
		_, err := service.SyncAll(ctx)

		// then
		assert.Error(t, err)
	})
}
