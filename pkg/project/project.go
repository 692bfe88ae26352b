package project

import (
	"errors"
	"time"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusOnHold    Status = "on-hold"
	StatusAtRisk    Status = "at-risk"
	StatusCompleted Status = "completed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusOnHold, StatusAtRisk, StatusCompleted:
		return true
	}
	return false
}

var (
	ErrNotFound = errors.New("project not found")
	// ErrInvalid is returned when a create or update request is missing a
	// required field or carries an out-of-range value.
	ErrInvalid = errors.New("invalid project")
)

// Project is a tracked initiative with a budget and denormalized financial
// totals. Spent, BurnRate, MandaysAllocated and MandaysConsumed are a
// materialized view over the ledger and labor-day tables: they are only
// refreshed by the reconciliation routine and must not be read as live
// figures.
type Project struct {
	ID          string
	Name        string
	Description string
	Status      Status
	Department  string
	// Budget is the allocated amount in whole currency units.
	Budget           float64
	Spent            float64
	BurnRate         float64
	MandaysAllocated float64
	MandaysConsumed  float64
	StartDate        time.Time
	EndDate          time.Time
	CreatedAt        time.Time
}
