// Package repository persists building lookups.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Lookup is one recorded building report.
type Lookup struct {
	ID         uuid.UUID
	BBL        string
	Address    string
	Score      int
	Grade      string
	Label      string
	RedFlags   int
	LookedUpAt time.Time
}

// Reader lists recorded lookups.
type Reader interface {
	ListByBBL(ctx context.Context, bbl string, limit int) ([]Lookup, error)
}

// Writer records lookups.
type Writer interface {
	Insert(ctx context.Context, lookup Lookup) error
}

// Pruner deletes old lookups.
type Pruner interface {
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}

// Repository is the full lookup store.
type Repository interface {
	Reader
	Writer
	Pruner
}
