package local

import (
	"context"
	"strings"

	"github.com/dstam/planner/internal/dates"
	"github.com/dstam/planner/internal/models"
)

// Apply copies source into the 30 day-groups after this list's date,
// one read-modify-write per target day. A failure partway leaves the
// days already written in place.
func (l *TaskList) Apply(ctx context.Context, source []models.Item, replace bool) error {
	window, err := dates.Window(l.identifier, dates.ProjectionDays)
	if err != nil {
		return err
	}

	for _, day := range window {
		key := groupKey(models.KindTask, day)

		existing := []models.Item{}
		if !replace {
			existing, err = readItems(l.kv, key)
			if err != nil {
				return err
			}
		}

		next := models.CloneItems(existing)
		for _, item := range source {
			if !replace && containsContent(existing, item.Content) {
				continue
			}
			next = append(next, models.Item{
				ID:        nextID(next),
				Content:   item.Content,
				Completed: false,
			})
		}

		if err := writeItems(l.kv, key, next); err != nil {
			return err
		}
	}
	return nil
}

// RemoveFuture drops the blobs of the 30 day-groups after this list's
// date. Removing an absent key is a no-op, so repeating is safe.
func (l *TaskList) RemoveFuture(ctx context.Context) error {
	window, err := dates.Window(l.identifier, dates.ProjectionDays)
	if err != nil {
		return err
	}
	for _, day := range window {
		if err := l.kv.Delete(groupKey(models.KindTask, day)); err != nil {
			return err
		}
	}
	return nil
}

// containsContent reports whether any item matches content after
// trimming, the dedup rule of merge-mode projection.
func containsContent(items []models.Item, content string) bool {
	want := strings.TrimSpace(content)
	for _, item := range items {
		if strings.TrimSpace(item.Content) == want {
			return true
		}
	}
	return false
}
