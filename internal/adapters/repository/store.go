// Package repository stores the hackathon catalog.
package repository

import (
	"context"

	"github.com/okian/hackstack/internal/domain/model"
)

// Catalog provides read/write access to hackathon records.
// Lists are ordered newest first: created records go to the front and
// seeded records go to the back.
type Catalog interface {
	// Create assigns an ID, zeroes participants, applies defaults and
	// validates before storing.
	Create(ctx context.Context, h model.Hackathon) (model.Hackathon, error)
	// Get returns ErrNotFound for unknown IDs.
	Get(ctx context.Context, id string) (model.Hackathon, error)
	// Update merges p into the stored record and validates the result.
	Update(ctx context.Context, id string, p model.HackathonPatch) (model.Hackathon, error)
	// Delete returns ErrNotFound for unknown IDs.
	Delete(ctx context.Context, id string) error
	// List returns a snapshot the caller may keep and modify.
	List(ctx context.Context) ([]model.Hackathon, error)
	Count(ctx context.Context) (int, error)
	// Seed appends records that already carry IDs. Duplicates fail with ErrConflict.
	Seed(ctx context.Context, hs []model.Hackathon) error
	Close() error
}
