package manday

import (
	"errors"
	"time"
)

// HoursPerManday converts reported hours to labor days. The conversion
// happens once, at write time, so stored mandays values never disagree
// with stored hours.
const HoursPerManday = 8.0

var (
	ErrInvalid = errors.New("invalid labor-day record")
	// ErrNoValidRows is returned when a bulk import yields nothing usable.
	ErrNoValidRows = errors.New("no valid labor-day rows")
)

// Record is the labor-day consumption of one role on one project in one
// month. Uniqueness key is (project, role, month, year); re-imports for
// the same key overwrite hours and mandays in place.
type Record struct {
	ID         int64
	ProjectID  string
	Role       string
	Month      string // "01".."12"
	Year       string // four digits
	TotalHours float64
	Mandays    float64
	CreatedAt  time.Time
}

// Filter narrows List results. Zero values (and ScopeAll for ProjectID)
// mean "no constraint on this field".
type Filter struct {
	ProjectID string
	Month     string
	Year      string
}

// ScopeAll selects every project in project-scoped queries.
const ScopeAll = "all"

var monthNumbers = map[string]bool{
	"01": true, "02": true, "03": true, "04": true,
	"05": true, "06": true, "07": true, "08": true,
	"09": true, "10": true, "11": true, "12": true,
}

func IsValidMonth(month string) bool {
	return monthNumbers[month]
}

func IsValidYear(year string) bool {
	if len(year) != 4 {
		return false
	}
	for _, c := range year {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
