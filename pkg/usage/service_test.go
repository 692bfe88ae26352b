package usage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var repoStub = NewRepositoryStub()

var service Service

func setup(t *testing.T) func() {
	service = NewService(repoStub)
	return func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
	}
}

func TestServiceImpl_ResourceTable(t *testing.T) {
	t.Run("should build one row per role with monthly sums and costs", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		repoStub.AddEntry("proj-001", "2025", Entry{Role: "Backend Developer", Month: "01", Mandays: 10})
		repoStub.AddEntry("proj-001", "2025", Entry{Role: "Backend Developer", Month: "03", Mandays: 5})
		repoStub.AddEntry("proj-001", "2025", Entry{Role: "Designer", Month: "01", Mandays: 4})
		repoStub.SetRate("proj-001", "Backend Developer", 500)
		repoStub.SetRate("proj-001", "Designer", 400)

		// when
		table, err := service.ResourceTable(ctx, "proj-001", "2025")

		// then
		require.NoError(t, err)
		require.Len(t, table.Rows, 2)

		backend := table.Rows[0]
		assert.Equal(t, "Backend Developer", backend.Role)
		assert.Equal(t, 10.0, backend.Monthly[0])
		assert.Equal(t, 0.0, backend.Monthly[1])
		assert.Equal(t, 5.0, backend.Monthly[2])
		assert.Equal(t, 15.0, backend.TotalDays)
		assert.Equal(t, 500.0, backend.Rate)
		assert.Equal(t, 7500.0, backend.TotalCost)

		designer := table.Rows[1]
		assert.Equal(t, "Designer", designer.Role)
		assert.Equal(t, 4.0, designer.TotalDays)
		assert.Equal(t, 1600.0, designer.TotalCost)
	})

	t.Run("should close the table with a summary row without a rate", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		repoStub.AddEntry("proj-001", "2025", Entry{Role: "Backend Developer", Month: "01", Mandays: 10})
		repoStub.AddEntry("proj-001", "2025", Entry{Role: "Designer", Month: "02", Mandays: 4})
		repoStub.SetRate("proj-001", "Backend Developer", 500)
		repoStub.SetRate("proj-001", "Designer", 400)

		// when
		table, err := service.ResourceTable(ctx, "proj-001", "2025")

		// then
		require.NoError(t, err)
		assert.Equal(t, TotalRowLabel, table.Total.Role)
		assert.Equal(t, 10.0, table.Total.Monthly[0])
		assert.Equal(t, 4.0, table.Total.Monthly[1])
		assert.Equal(t, 14.0, table.Total.TotalDays)
		assert.Equal(t, 0.0, table.Total.Rate)
		assert.Equal(t, 6600.0, table.Total.TotalCost)
	})

	t.Run("should cost a role without a rate at zero", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		repoStub.AddEntry("proj-001", "2025", Entry{Role: "Designer", Month: "01", Mandays: 4})

		// when
		table, err := service.ResourceTable(ctx, "proj-001", "2025")

		// then
		require.NoError(t, err)
		require.Len(t, table.Rows, 1)
		assert.Equal(t, 0.0, table.Rows[0].Rate)
		assert.Equal(t, 0.0, table.Rows[0].TotalCost)
		assert.Equal(t, 4.0, table.Rows[0].TotalDays)
	})

	t.Run("should return an empty table when the year has no records", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		table, err := service.ResourceTable(ctx, "proj-001", "2025")

		// then
		require.NoError(t, err)
		assert.Empty(t, table.Rows)
		assert.Equal(t, 0.0, table.Total.TotalDays)
	})

	t.Run("should merge all projects when the scope is all", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given: the same role on two projects
		repoStub.AddEntry("proj-001", "2025", Entry{Role: "Backend Developer", Month: "01", Mandays: 10})
		repoStub.AddEntry("proj-002", "2025", Entry{Role: "Backend Developer", Month: "02", Mandays: 6})
		repoStub.SetRate("proj-001", "Backend Developer", 500)

		// when
		table, err := service.ResourceTable(ctx, ScopeAll, "2025")

		// then
		require.NoError(t, err)
		require.Len(t, table.Rows, 1)
		assert.Equal(t, 16.0, table.Rows[0].TotalDays)
		assert.Equal(t, 500.0, table.Rows[0].Rate)
	})

	t.Run("should reject a missing project id", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.ResourceTable(ctx, "", "2025")

		// then
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("should reject a malformed year", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.ResourceTable(ctx, "proj-001", "25")

		// then
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("should propagate a read failure", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		repoStub.FailWith = errors.New("storage unavailable")

		// when
		_, err := service.ResourceTable(ctx, "proj-001", "2025")

		// then
		assert.Error(t, err)
	})
}

func TestServiceImpl_MonthlyTotals(t *testing.T) {
	t.Run("should return twelve labeled months zero-filled", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		repoStub.AddEntry("proj-001", "2025", Entry{Role: "Backend Developer", Month: "03", Mandays: 10})
		repoStub.AddEntry("proj-001", "2025", Entry{Role: "Designer", Month: "03", Mandays: 2})

		// when
		totals, err := service.MonthlyTotals(ctx, "proj-001", "2025")

		// then
		require.NoError(t, err)
		require.Len(t, totals, 12)
		assert.Equal(t, MonthTotal{Month: "01", Label: "Jan"}, totals[0])
		assert.Equal(t, MonthTotal{Month: "03", Label: "Mar", Days: 12}, totals[2])
		assert.Equal(t, MonthTotal{Month: "12", Label: "Dec"}, totals[11])
	})
}

func TestServiceImpl_RoleTotals(t *testing.T) {
	t.Run("should sum one month per role, largest first", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		repoStub.AddEntry("proj-001", "2025", Entry{Role: "Designer", Month: "03", Mandays: 2})
		repoStub.AddEntry("proj-001", "2025", Entry{Role: "Backend Developer", Month: "03", Mandays: 10})
		repoStub.AddEntry("proj-001", "2025", Entry{Role: "Backend Developer", Month: "04", Mandays: 99})

		// when
		totals, err := service.RoleTotals(ctx, "proj-001", "03", "2025")

		// then
		require.NoError(t, err)
		require.Len(t, totals, 2)
		assert.Equal(t, RoleTotal{Role: "Backend Developer", Days: 10}, totals[0])
		assert.Equal(t, RoleTotal{Role: "Designer", Days: 2}, totals[1])
	})

	t.Run("should reject a malformed month", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.RoleTotals(ctx, "proj-001", "13", "2025")

		// then
		assert.ErrorIs(t, err, ErrInvalid)
	})
}

func TestMonthNumbers(t *testing.T) {
	t.Run("should enumerate 01 through 12", func(t *testing.T) {
		months := MonthNumbers()
		require.Len(t, months, 12)
		assert.Equal(t, "01", months[0])
		assert.Equal(t, "09", months[8])
		assert.Equal(t, "12", months[11])
	})
}
