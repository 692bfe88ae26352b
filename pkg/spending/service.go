package spending

import (
	"context"
	"math"

	log "github.com/sirupsen/logrus"
)

type Service interface {
	Summaries(ctx context.Context) ([]Summary, error)
	Summary(ctx context.Context, projectID string) (*Summary, error)
}

type ServiceImpl struct {
	source Source
}

func NewService(source Source) *ServiceImpl {
	return &ServiceImpl{source}
}

// Summaries returns one summary per project in creation order. A project
// whose components cannot be read gets a zero row; the batch never aborts
// because of one project.
func (s *ServiceImpl) Summaries(ctx context.Context) ([]Summary, error) {
	projects, err := s.source.Projects(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(projects))
	for _, row := range projects {
		components, err := s.source.Components(ctx, row.ID)
		if err != nil {
			log.Warnf("spending aggregation failed for project %s, reporting zero: %v", row.ID, err)
			summaries = append(summaries, Summary{ProjectID: row.ID, ProjectName: row.Name})
			continue
		}
		summaries = append(summaries, summarize(row, *components))
	}
	return summaries, nil
}

func (s *ServiceImpl) Summary(ctx context.Context, projectID string) (*Summary, error) {
	row, err := s.source.Project(ctx, projectID)
	if err != nil {
		return nil, err
	}
	components, err := s.source.Components(ctx, projectID)
	if err != nil {
		return nil, err
	}
	summary := summarize(*row, *components)
	return &summary, nil
}

// summarize is the single arithmetic path: total spent is rounded to a
// whole currency unit, burn rate to four decimals, and a non-positive
// budget yields a zero burn rate.
func summarize(row ProjectRow, components Components) Summary {
	totalSpent := math.Round(components.MandayCosts + components.LedgerCosts)
	var burnRate float64
	if row.Budget > 0 {
		burnRate = math.Round(totalSpent/row.Budget*10000) / 10000
	}
	return Summary{
		ProjectID:   row.ID,
		ProjectName: row.Name,
		TotalSpent:  totalSpent,
		BurnRate:    burnRate,
	}
}
