package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dstam/planner/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "planner-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestTaskListCRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	tasks := store.TaskList("owner-1", "2024-05-10")

	t.Run("Load of empty group returns empty slice", func(t *testing.T) {
		items, err := tasks.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(items) != 0 {
			t.Errorf("expected 0 items, got %d", len(items))
		}
	})

	t.Run("Insert assigns IDs and preserves creation order", func(t *testing.T) {
		first, err := tasks.Insert(ctx, "first")
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		second, err := tasks.Insert(ctx, "second")
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}

		if first.ID == 0 || second.ID == 0 {
			t.Error("expected non-zero IDs")
		}
		if first.ID == second.ID {
			t.Error("expected distinct IDs")
		}
		if first.Completed || second.Completed {
			t.Error("new items must start incomplete")
		}

		items, err := tasks.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(items))
		}
		if items[0].Content != "first" || items[1].Content != "second" {
			t.Errorf("creation order lost: %+v", items)
		}
	})

	t.Run("SetCompleted and SetContent update in place", func(t *testing.T) {
		items, _ := tasks.Load(ctx)
		id := items[0].ID

		if err := tasks.SetCompleted(ctx, id, true); err != nil {
			t.Fatalf("SetCompleted failed: %v", err)
		}
		if err := tasks.SetContent(ctx, id, "first, edited"); err != nil {
			t.Fatalf("SetContent failed: %v", err)
		}

		items, _ = tasks.Load(ctx)
		if !items[0].Completed {
			t.Error("expected item to be completed")
		}
		if items[0].Content != "first, edited" {
			t.Errorf("content not updated: %q", items[0].Content)
		}
	})

	t.Run("Delete removes only the targeted item", func(t *testing.T) {
		items, _ := tasks.Load(ctx)
		if err := tasks.Delete(ctx, items[0].ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		items, _ = tasks.Load(ctx)
		if len(items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(items))
		}
		if items[0].Content != "second" {
			t.Errorf("wrong item removed: %+v", items)
		}
	})

	t.Run("Delete of absent ID is not an error", func(t *testing.T) {
		if err := tasks.Delete(ctx, 99999); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}

func TestOwnerScoping(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mine := store.TaskList("owner-a", "2024-05-10")
	theirs := store.TaskList("owner-b", "2024-05-10")

	item, err := mine.Insert(ctx, "private")
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	items, err := theirs.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("cross-owner visibility: %+v", items)
	}

	// A foreign owner cannot mutate the row either.
	if err := theirs.SetCompleted(ctx, item.ID, true); err != nil {
		t.Fatalf("SetCompleted failed: %v", err)
	}
	if err := theirs.Delete(ctx, item.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	items, _ = mine.Load(ctx)
	if len(items) != 1 || items[0].Completed {
		t.Errorf("row modified across owners: %+v", items)
	}
}

func TestGroupScoping(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	monday := store.TaskList("owner-1", "2024-05-06")
	tuesday := store.TaskList("owner-1", "2024-05-07")

	if _, err := monday.Insert(ctx, "standup"); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	items, err := tuesday.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("item leaked into another day: %+v", items)
	}
}

func TestGoalList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	goals := store.GoalList("owner-1", "2024-05")

	item, err := goals.Insert(ctx, "run a 10k")
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := goals.SetCompleted(ctx, item.ID, true); err != nil {
		t.Fatalf("SetCompleted failed: %v", err)
	}

	items, err := goals.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(items) != 1 || !items[0].Completed {
		t.Errorf("unexpected goal state: %+v", items)
	}

	// Goals and tasks live in separate tables even for the same owner.
	tasks := store.TaskList("owner-1", "2024-05-01")
	taskItems, _ := tasks.Load(ctx)
	if len(taskItems) != 0 {
		t.Errorf("goal leaked into tasks: %+v", taskItems)
	}
}

func TestIdenticalContentAllowedAcrossDays(t *testing.T) {
	// The uniqueness constraint spans (owner, day, content), so the same
	// content can recur on different days.
	store := newTestStore(t)
	ctx := context.Background()

	d1 := store.TaskList("owner-1", "2024-05-10")
	d2 := store.TaskList("owner-1", "2024-05-11")

	if _, err := d1.Insert(ctx, "gym"); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if _, err := d2.Insert(ctx, "gym"); err != nil {
		t.Fatalf("Insert on another day failed: %v", err)
	}
}

func loadDay(t *testing.T, store *Store, owner, day string) []models.Item {
	t.Helper()
	items, err := store.TaskList(owner, day).Load(context.Background())
	if err != nil {
		t.Fatalf("Load %s failed: %v", day, err)
	}
	return items
}
