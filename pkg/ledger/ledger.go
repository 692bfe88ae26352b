package ledger

import (
	"errors"
	"time"
)

type EntryType string

const (
	TypeCredit EntryType = "credit"
	TypeDebit  EntryType = "debit"
)

type Category string

const (
	CategoryBudget Category = "budget"
	// CategoryMandays tracks labor-day allocation movements. These entries
	// never contribute to currency spend.
	CategoryMandays Category = "mandays"
)

var ErrInvalid = errors.New("invalid ledger entry")

// Entry is an append-only transaction against a project's budget or
// labor-day allocation. Entries are immutable once stored.
type Entry struct {
	ID        int64
	ProjectID string
	Type      EntryType
	Category  Category
	Amount    float64
	Notes     string
	CreatedAt time.Time
}

func (t EntryType) IsValid() bool {
	return t == TypeCredit || t == TypeDebit
}

func (c Category) IsValid() bool {
	return c == CategoryBudget || c == CategoryMandays
}
