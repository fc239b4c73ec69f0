package local

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dstam/planner/internal/models"
	"github.com/dstam/planner/internal/storage"
)

// GoalList must not implement storage.Projector.
var (
	_ storage.ListStore = (*TaskList)(nil)
	_ storage.ListStore = (*GoalList)(nil)
	_ storage.Projector = (*TaskList)(nil)
)

// itemList reads and writes one group's blob. The key encodes the whole
// group: kind, the anonymous owner, and the identifier.
type itemList struct {
	kv         KV
	kind       models.Kind
	identifier string
}

// TaskList is the local store for one daily task group.
type TaskList struct {
	itemList
}

// GoalList is the local store for one monthly goal group.
type GoalList struct {
	itemList
}

// NewTaskList returns the local store for the given day.
func NewTaskList(kv KV, date string) *TaskList {
	return &TaskList{itemList{kv: kv, kind: models.KindTask, identifier: date}}
}

// NewGoalList returns the local store for the given month.
func NewGoalList(kv KV, month string) *GoalList {
	return &GoalList{itemList{kv: kv, kind: models.KindGoal, identifier: month}}
}

func (l *itemList) key() string {
	return groupKey(l.kind, l.identifier)
}

// groupKey builds the storage key for one group, e.g.
// "tasks-anonymous-2024-01-31".
func groupKey(kind models.Kind, identifier string) string {
	return fmt.Sprintf("%s-%s", kind.LocalKeyBase(), identifier)
}

// Load returns the group's items. A missing key is an empty group; an
// unparseable blob loads as empty alongside ErrCorruptData so the caller
// can report it without failing.
func (l *itemList) Load(ctx context.Context) ([]models.Item, error) {
	return readItems(l.kv, l.key())
}

// Insert appends a new incomplete item to the blob and writes it back.
// IDs are monotonic within the group (max existing + 1) rather than the
// wall clock, so two inserts in the same instant cannot collide.
func (l *itemList) Insert(ctx context.Context, content string) (*models.Item, error) {
	items, err := readItems(l.kv, l.key())
	if err != nil {
		// Refuse to clobber a corrupt blob with a fresh list.
		return nil, err
	}

	item := models.Item{ID: nextID(items), Content: content, Completed: false}
	if err := writeItems(l.kv, l.key(), append(items, item)); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete filters the item out of the blob. An absent ID rewrites the
// blob unchanged.
func (l *itemList) Delete(ctx context.Context, id int64) error {
	items, err := readItems(l.kv, l.key())
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	return writeItems(l.kv, l.key(), kept)
}

// SetCompleted rewrites the blob with the item's completion flag set.
func (l *itemList) SetCompleted(ctx context.Context, id int64, completed bool) error {
	return l.update(id, func(item *models.Item) { item.Completed = completed })
}

// SetContent rewrites the blob with the item's content replaced.
func (l *itemList) SetContent(ctx context.Context, id int64, content string) error {
	return l.update(id, func(item *models.Item) { item.Content = content })
}

func (l *itemList) update(id int64, mutate func(*models.Item)) error {
	items, err := readItems(l.kv, l.key())
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == id {
			mutate(&items[i])
		}
	}
	return writeItems(l.kv, l.key(), items)
}

// readItems loads and decodes one group blob.
func readItems(kv KV, key string) ([]models.Item, error) {
	raw, ok, err := kv.Get(key)
	if err != nil {
		return []models.Item{}, err
	}
	if !ok || raw == "" {
		return []models.Item{}, nil
	}

	var items []models.Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []models.Item{}, fmt.Errorf("%w: key %s: %v", storage.ErrCorruptData, key, err)
	}
	if items == nil {
		items = []models.Item{}
	}
	return items, nil
}

// writeItems encodes and stores one group blob.
func writeItems(kv KV, key string, items []models.Item) error {
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal items: %w", err)
	}
	if err := kv.Set(key, string(b)); err != nil {
		return fmt.Errorf("failed to save items: %w", err)
	}
	return nil
}

// nextID returns max existing ID + 1, starting at 1 for empty groups.
func nextID(items []models.Item) int64 {
	var max int64
	for _, item := range items {
		if item.ID > max {
			max = item.ID
		}
	}
	return max + 1
}
