// Package list implements the synchronization engine: an in-memory item
// collection kept in step with a backing store, with optimistic updates
// and rollback on the remote path and write-through on the local path.
package list

import (
	"context"
	"log/slog"

	"github.com/dstam/planner/internal/models"
	"github.com/dstam/planner/internal/notify"
	"github.com/dstam/planner/internal/storage"
)

// List is one group's live collection plus its mutation operations.
// Identity (kind, identifier, owner, mode) is fixed at construction;
// when any of those change the caller opens a new List instead of
// mutating this one.
//
// A List is confined to a single goroutine. Operations block at the
// store boundary and run to completion; there is no cancellation beyond
// what the passed context applies to the underlying store call.
type List struct {
	kind       models.Kind
	identifier string
	store      storage.ListStore
	notifier   notify.Notifier

	// rollback is set for remote-backed lists: a persistence failure
	// reverts the optimistic in-memory change. Local-backed lists keep
	// the change and only report, since their failures are storage
	// faults rather than lost writes.
	rollback bool

	items []models.Item
}

// Kind returns the list's kind.
func (l *List) Kind() models.Kind { return l.kind }

// Identifier returns the list's date or month identifier.
func (l *List) Identifier() string { return l.identifier }

// Items returns a copy of the current in-memory collection.
func (l *List) Items() []models.Item {
	return models.CloneItems(l.items)
}

// Load fetches the group's items from the store. Any failure, including
// a corrupt local blob, is reported and leaves the list empty; it never
// propagates to the caller as a fault.
func (l *List) Load(ctx context.Context) []models.Item {
	items, err := l.store.Load(ctx)
	if err != nil {
		l.notifier.Notify(notify.Notification{
			Title:       "Error loading " + string(l.kind),
			Description: err.Error(),
			Severity:    notify.SeverityError,
		})
		l.items = []models.Item{}
		return l.Items()
	}
	l.items = items
	return l.Items()
}

// Add validates, persists and appends one new incomplete item. Returns
// false without touching the store when content trims to empty.
func (l *List) Add(ctx context.Context, content string) bool {
	content = models.CleanContent(content)
	if content == "" {
		l.notifier.Notify(notify.Notification{
			Title:    "Cannot add empty item",
			Severity: notify.SeverityError,
		})
		return false
	}

	item, err := l.store.Insert(ctx, content)
	if err != nil {
		l.notifier.Notify(notify.Notification{
			Title:       "Error adding " + string(l.kind),
			Description: err.Error(),
			Severity:    notify.SeverityError,
		})
		return false
	}

	l.items = append(l.items, *item)
	l.notifier.Notify(notify.Notification{
		Title:    "Item added successfully!",
		Severity: notify.SeverityInfo,
	})
	return true
}

// Delete removes the item with the given ID. Remote lists drop it from
// memory only once the backend confirms; local lists drop it first and
// report a failed write without restoring it.
func (l *List) Delete(ctx context.Context, id int64) {
	if !l.rollback {
		l.removeFromMemory(id)
	}

	if err := l.store.Delete(ctx, id); err != nil {
		l.notifier.Notify(notify.Notification{
			Title:       "Error deleting " + string(l.kind),
			Description: err.Error(),
			Severity:    notify.SeverityError,
		})
		return
	}

	if l.rollback {
		l.removeFromMemory(id)
	}
	l.notifier.Notify(notify.Notification{
		Title:    "Item deleted",
		Severity: notify.SeverityInfo,
	})
}

// Toggle flips the item's completion flag optimistically, then persists
// it. current is the completion state the caller observed; a failed
// remote write restores exactly that state (a point fix, not a snapshot).
func (l *List) Toggle(ctx context.Context, id int64, current bool) {
	l.setCompletedInMemory(id, !current)

	if err := l.store.SetCompleted(ctx, id, !current); err != nil {
		l.notifier.Notify(notify.Notification{
			Title:       "Error updating " + string(l.kind),
			Description: err.Error(),
			Severity:    notify.SeverityError,
		})
		if l.rollback {
			l.setCompletedInMemory(id, current)
		}
	}
}

// Edit replaces the item's content optimistically, then persists it.
// A failed remote write restores the full pre-edit collection snapshot,
// coarser than Toggle's point fix, matching the engine's contract that
// the visible state after a failed edit is exactly the state before it.
func (l *List) Edit(ctx context.Context, id int64, newContent string) bool {
	newContent = models.CleanContent(newContent)
	if newContent == "" {
		l.notifier.Notify(notify.Notification{
			Title:    "Cannot update to empty item",
			Severity: notify.SeverityError,
		})
		return false
	}

	snapshot := models.CloneItems(l.items)
	for i := range l.items {
		if l.items[i].ID == id {
			l.items[i].Content = newContent
		}
	}

	if err := l.store.SetContent(ctx, id, newContent); err != nil {
		l.notifier.Notify(notify.Notification{
			Title:       "Error editing " + string(l.kind),
			Description: err.Error(),
			Severity:    notify.SeverityError,
		})
		if l.rollback {
			l.items = snapshot
		}
		return false
	}

	l.notifier.Notify(notify.Notification{
		Title:    "Item updated",
		Severity: notify.SeverityInfo,
	})
	return true
}

// ApplyToFuture copies the current items into the next 30 day-groups,
// merging or replacing per target. On lists without the projection
// capability (monthly goals) it logs a diagnostic and does nothing;
// that precondition miss is not a user-facing error.
func (l *List) ApplyToFuture(ctx context.Context, replace bool) {
	proj, ok := l.store.(storage.Projector)
	if !ok {
		slog.Warn("bulk projection not supported for this list",
			"kind", l.kind, "identifier", l.identifier)
		return
	}
	if len(l.items) == 0 {
		slog.Warn("bulk projection skipped: no items to apply",
			"identifier", l.identifier)
		return
	}

	l.notifier.Notify(notify.Notification{
		Title:       "Applying tasks...",
		Description: "This might take a moment.",
		Severity:    notify.SeverityInfo,
	})

	if err := proj.Apply(ctx, l.Items(), replace); err != nil {
		l.notifier.Notify(notify.Notification{
			Title:       "Error applying tasks",
			Description: err.Error(),
			Severity:    notify.SeverityError,
		})
		return
	}

	l.notifier.Notify(notify.Notification{
		Title:       "Tasks applied successfully!",
		Description: "Tasks copied to the next 30 days.",
		Severity:    notify.SeverityInfo,
	})
}

// RemoveFuture clears the next 30 day-groups. Same capability rule as
// ApplyToFuture.
func (l *List) RemoveFuture(ctx context.Context) {
	proj, ok := l.store.(storage.Projector)
	if !ok {
		slog.Warn("bulk projection not supported for this list",
			"kind", l.kind, "identifier", l.identifier)
		return
	}

	if err := proj.RemoveFuture(ctx); err != nil {
		l.notifier.Notify(notify.Notification{
			Title:       "Error removing future tasks",
			Description: err.Error(),
			Severity:    notify.SeverityError,
		})
		return
	}

	l.notifier.Notify(notify.Notification{
		Title:    "Future tasks removed successfully!",
		Severity: notify.SeverityInfo,
	})
}

// CanProject reports whether this list carries the bulk projection
// capability.
func (l *List) CanProject() bool {
	_, ok := l.store.(storage.Projector)
	return ok
}

func (l *List) removeFromMemory(id int64) {
	kept := l.items[:0]
	for _, item := range l.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	l.items = kept
}

func (l *List) setCompletedInMemory(id int64, completed bool) {
	for i := range l.items {
		if l.items[i].ID == id {
			l.items[i].Completed = completed
		}
	}
}
