package local

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dstam/planner/internal/models"
	"github.com/dstam/planner/internal/storage"
)

func TestFileKVRoundTripsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	kv, err := OpenFileKV(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set("tasks-anonymous-2024-05-10", `[{"id":1,"content":"a","is_completed":false}]`))

	// Every Set is durable: a fresh handle sees the write.
	reopened, err := OpenFileKV(path)
	require.NoError(t, err)
	v, ok, err := reopened.Get("tasks-anonymous-2024-05-10")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, v, `"content":"a"`)
}

func TestFileKVDeleteIsIdempotent(t *testing.T) {
	kv, err := OpenFileKV(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)

	require.NoError(t, kv.Set("k", "v"))
	require.NoError(t, kv.Delete("k"))
	require.NoError(t, kv.Delete("k"))

	_, ok, err := kv.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTaskListInsertAssignsMonotonicIDs(t *testing.T) {
	kv := NewMemKV()
	list := NewTaskList(kv, "2024-05-10")
	ctx := context.Background()

	a, err := list.Insert(ctx, "a")
	require.NoError(t, err)
	b, err := list.Insert(ctx, "b")
	require.NoError(t, err)

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)

	// Deleting the max and inserting again may reuse the slot, but two
	// live items never share an ID.
	require.NoError(t, list.Delete(ctx, b.ID))
	c, err := list.Insert(ctx, "c")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, c.ID)

	items, err := list.Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.NotEqual(t, items[0].ID, items[1].ID)
	assert.Equal(t, "c", items[1].Content)
}

func TestTaskListUpdatesRewriteBlob(t *testing.T) {
	kv := NewMemKV()
	list := NewTaskList(kv, "2024-05-10")
	ctx := context.Background()

	item, err := list.Insert(ctx, "original")
	require.NoError(t, err)

	require.NoError(t, list.SetCompleted(ctx, item.ID, true))
	require.NoError(t, list.SetContent(ctx, item.ID, "edited"))

	items, err := list.Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Completed)
	assert.Equal(t, "edited", items[0].Content)
}

func TestCorruptBlobLoadsEmptyWithError(t *testing.T) {
	kv := NewMemKV()
	require.NoError(t, kv.Set("tasks-anonymous-2024-05-10", "{not json"))

	list := NewTaskList(kv, "2024-05-10")
	items, err := list.Load(context.Background())

	require.ErrorIs(t, err, storage.ErrCorruptData)
	assert.Empty(t, items, "corrupt blob must read as an empty group")

	// Mutations refuse to clobber the corrupt blob.
	_, err = list.Insert(context.Background(), "new")
	assert.ErrorIs(t, err, storage.ErrCorruptData)
	raw, ok, _ := kv.Get("tasks-anonymous-2024-05-10")
	require.True(t, ok)
	assert.Equal(t, "{not json", raw)
}

func TestInsertFailureSurfacesStorageError(t *testing.T) {
	kv := NewMemKV()
	kv.SetErr = errors.New("quota exceeded")

	_, err := NewTaskList(kv, "2024-05-10").Insert(context.Background(), "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestGoalListUsesOwnKeySpace(t *testing.T) {
	kv := NewMemKV()
	ctx := context.Background()

	_, err := NewGoalList(kv, "2024-05").Insert(ctx, "goal")
	require.NoError(t, err)

	_, ok, _ := kv.Get("goals-anonymous-2024-05")
	assert.True(t, ok)

	// Task lists never see goal blobs.
	items, err := NewTaskList(kv, "2024-05-01").Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func seedDay(t *testing.T, kv KV, date string, contents ...string) []models.Item {
	t.Helper()
	list := NewTaskList(kv, date)
	for _, c := range contents {
		_, err := list.Insert(context.Background(), c)
		require.NoError(t, err)
	}
	items, err := list.Load(context.Background())
	require.NoError(t, err)
	return items
}

func TestApplyMergeSkipsDuplicateContent(t *testing.T) {
	kv := NewMemKV()
	ctx := context.Background()

	source := seedDay(t, kv, "2024-05-10", "A", "B")
	seedDay(t, kv, "2024-05-15", "A")

	require.NoError(t, NewTaskList(kv, "2024-05-10").Apply(ctx, source, false))

	items, err := NewTaskList(kv, "2024-05-15").Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)

	counts := map[string]int{}
	for _, item := range items {
		counts[item.Content]++
	}
	assert.Equal(t, 1, counts["A"])
	assert.Equal(t, 1, counts["B"])
}

func TestApplyReplaceDiscardsTargetItems(t *testing.T) {
	kv := NewMemKV()
	ctx := context.Background()

	source := seedDay(t, kv, "2024-05-10", "A", "B")
	seedDay(t, kv, "2024-05-15", "stale")

	require.NoError(t, NewTaskList(kv, "2024-05-10").Apply(ctx, source, true))

	items, err := NewTaskList(kv, "2024-05-15").Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.NotEqual(t, "stale", item.Content)
		assert.False(t, item.Completed)
	}
}

func TestApplyWindowCoversThirtyCalendarDays(t *testing.T) {
	kv := NewMemKV()
	ctx := context.Background()

	source := seedDay(t, kv, "2024-01-31", "A")
	require.NoError(t, NewTaskList(kv, "2024-01-31").Apply(ctx, source, false))

	for _, day := range []string{"2024-02-01", "2024-02-29", "2024-03-01"} {
		items, err := NewTaskList(kv, day).Load(ctx)
		require.NoError(t, err)
		assert.Len(t, items, 1, "day %s", day)
	}

	items, err := NewTaskList(kv, "2024-03-02").Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, items, "window must stop at 30 days")
}

func TestRemoveFutureIsIdempotent(t *testing.T) {
	kv := NewMemKV()
	ctx := context.Background()

	seedDay(t, kv, "2024-05-10", "anchor")
	seedDay(t, kv, "2024-05-20", "doomed")

	list := NewTaskList(kv, "2024-05-10")
	require.NoError(t, list.RemoveFuture(ctx))
	require.NoError(t, list.RemoveFuture(ctx))

	items, err := NewTaskList(kv, "2024-05-20").Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	anchor, err := list.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, anchor, 1, "anchor day must survive")
}
