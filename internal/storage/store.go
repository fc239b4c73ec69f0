// Package storage provides abstractions for persistent list storage.
package storage

import (
	"context"
	"errors"

	"github.com/dstam/planner/internal/models"
)

// ErrCorruptData marks a stored blob that could not be parsed. Loads
// treat it as an empty group; the caller reports it and moves on.
var ErrCorruptData = errors.New("stored data is corrupt")

// ListStore persists the items of exactly one group (kind, identifier,
// owner). Implementations are scoped at construction time; the group
// never changes for the life of a store. This abstraction is what lets
// the engine run against either the remote relational backend or the
// local blob store without branching on mode.
type ListStore interface {
	// Load returns all items of the group in stable creation order.
	// A group that was never written to loads as an empty slice.
	Load(ctx context.Context) ([]models.Item, error)

	// Insert persists a new incomplete item with the given content and
	// returns it with its assigned ID. Content is expected to be
	// trimmed and non-empty; validation happens above the store.
	Insert(ctx context.Context, content string) (*models.Item, error)

	// Delete removes the item with the given ID. Deleting an absent ID
	// is not an error.
	Delete(ctx context.Context, id int64) error

	// SetCompleted persists the completion flag of one item.
	SetCompleted(ctx context.Context, id int64, completed bool) error

	// SetContent persists the content of one item.
	SetContent(ctx context.Context, id int64, content string) error
}

// Projector is the bulk forward-projection capability. Only daily task
// stores implement it; monthly goal stores do not, so callers must
// discover it with a type assertion rather than assume it exists.
type Projector interface {
	// Apply copies source into each of the ProjectionDays day-groups
	// strictly after the store's own date. With replace set, each target
	// day is cleared first and receives a fresh copy of every source
	// item; otherwise source items whose trimmed content already exists
	// in the target are skipped. Copies always start incomplete and get
	// new IDs. A mid-window failure leaves already-written days in
	// place: the operation is at-least-partial, not transactional.
	Apply(ctx context.Context, source []models.Item, replace bool) error

	// RemoveFuture deletes every item in the ProjectionDays day-groups
	// after the store's own date. Idempotent.
	RemoveFuture(ctx context.Context) error
}
