package spending

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lijeuki/PM-dashboard/pkg/project"
)

var ctx = context.Background()

var sourceStub = NewSourceStub()

var service Service

func setup(t *testing.T) func() {
	service = NewService(sourceStub)
	return func() {
		t.Log("Teardown after test")
		sourceStub.Cleanup()
	}
}

func TestServiceImpl_Summaries(t *testing.T) {
	t.Run("should combine labor-day and ledger costs into total spent and burn rate", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given: budget 100000, 10 labor days at rate 500, one 20000 budget debit
		sourceStub.Rows = []ProjectRow{{ID: "proj-001", Name: "Platform", Budget: 100000}}
		sourceStub.ComponentsByID["proj-001"] = Components{MandayCosts: 5000, LedgerCosts: 20000}

		// when
		summaries, err := service.Summaries(ctx)

		// then
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, 25000.0, summaries[0].TotalSpent)
		assert.Equal(t, 0.25, summaries[0].BurnRate)
	})

	t.Run("should report zero burn rate when budget is zero", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		sourceStub.Rows = []ProjectRow{{ID: "proj-001", Name: "Platform", Budget: 0}}
		sourceStub.ComponentsByID["proj-001"] = Components{MandayCosts: 5000, LedgerCosts: 20000}

		// when
		summaries, err := service.Summaries(ctx)

		// then
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, 25000.0, summaries[0].TotalSpent)
		assert.Equal(t, 0.0, summaries[0].BurnRate)
	})

	t.Run("should round total spent to a whole unit and burn rate to four decimals", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		sourceStub.Rows = []ProjectRow{{ID: "proj-001", Name: "Platform", Budget: 30000}}
		sourceStub.ComponentsByID["proj-001"] = Components{MandayCosts: 1234.56, LedgerCosts: 0.1}

		// when
		summaries, err := service.Summaries(ctx)

		// then
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, 1235.0, summaries[0].TotalSpent)
		assert.Equal(t, 0.0412, summaries[0].BurnRate)
	})

	t.Run("should report a zero row for a failing project and keep aggregating", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		sourceStub.Rows = []ProjectRow{
			{ID: "proj-001", Name: "Platform", Budget: 100000},
			{ID: "proj-002", Name: "Broken", Budget: 50000},
			{ID: "proj-003", Name: "Mobile", Budget: 40000},
		}
		sourceStub.ComponentsByID["proj-001"] = Components{MandayCosts: 5000, LedgerCosts: 20000}
		sourceStub.ComponentErrors["proj-002"] = errors.New("storage unavailable")
		sourceStub.ComponentsByID["proj-003"] = Components{LedgerCosts: 10000}

		// when
		summaries, err := service.Summaries(ctx)

		// then
		require.NoError(t, err)
		require.Len(t, summaries, 3)
		assert.Equal(t, 25000.0, summaries[0].TotalSpent)
		assert.Equal(t, Summary{ProjectID: "proj-002", ProjectName: "Broken"}, summaries[1])
		assert.Equal(t, 10000.0, summaries[2].TotalSpent)
		assert.Equal(t, 0.25, summaries[2].BurnRate)
	})

	t.Run("should preserve project creation order", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given: names deliberately out of alphabetical order
		sourceStub.Rows = []ProjectRow{
			{ID: "proj-001", Name: "Zeta", Budget: 1000},
			{ID: "proj-002", Name: "Alpha", Budget: 1000},
		}

		// when
		summaries, err := service.Summaries(ctx)

		// then
		require.NoError(t, err)
		require.Len(t, summaries, 2)
		assert.Equal(t, "Zeta", summaries[0].ProjectName)
		assert.Equal(t, "Alpha", summaries[1].ProjectName)
	})

	t.Run("should fail when the project list cannot be read", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		sourceStub.FailWith = errors.New("storage unavailable")

		// when
		_, err := service.Summaries(ctx)

		// then
		assert.Error(t, err)
	})
}

func TestServiceImpl_Summary(t *testing.T) {
	t.Run("should summarize a single project", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		sourceStub.Rows = []ProjectRow{{ID: "proj-001", Name: "Platform", Budget: 100000}}
		sourceStub.ComponentsByID["proj-001"] = Components{MandayCosts: 5000, LedgerCosts: 20000}

		// when
		summary, err := service.Summary(ctx, "proj-001")

		// then
		require.NoError(t, err)
		assert.Equal(t, 25000.0, summary.TotalSpent)
		assert.Equal(t, 0.25, summary.BurnRate)
	})

	t.Run("should return not found for an unknown project", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Summary(ctx, "missing")

		// then
		assert.ErrorIs(t, err, project.ErrNotFound)
	})

	t.Run("should propagate a component read failure for a single project", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		sourceStub.Rows = []ProjectRow{{ID: "proj-001", Name: "Platform", Budget: 100000}}
		sourceStub.ComponentErrors["proj-001"] = errors.New("storage unavailable")

		// when
		_, err := service.Summary(ctx, "proj-001")

		// then
		assert.Error(t, err)
	})
}
