package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dstam/planner/internal/models"
	"github.com/dstam/planner/internal/storage"
)

// Ensure the list stores satisfy the storage contracts. GoalList must
// NOT implement storage.Projector; projection is a task-only capability.
var (
	_ storage.ListStore = (*TaskList)(nil)
	_ storage.ListStore = (*GoalList)(nil)
	_ storage.Projector = (*TaskList)(nil)
)

// itemList holds the group scope shared by both kinds. Every statement
// filters by owner and identifier so rows from other owners or other
// days/months are never visible.
type itemList struct {
	db         *sql.DB
	kind       models.Kind
	owner      string
	identifier string
}

// TaskList is the remote store for one daily task group.
type TaskList struct {
	itemList
}

// GoalList is the remote store for one monthly goal group.
type GoalList struct {
	itemList
}

// Load returns the group's items in creation order.
func (l *itemList) Load(ctx context.Context) ([]models.Item, error) {
	query := fmt.Sprintf(
		"SELECT id, content, is_completed FROM %s WHERE user_id = ? AND %s = ? ORDER BY created_at, id",
		l.kind.Table(), l.kind.IdentifierColumn(),
	)

	rows, err := l.db.QueryContext(ctx, query, l.owner, l.identifier)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", l.kind, err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.Content, &item.Completed); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", l.kind, err)
	}

	return items, nil
}

// Insert persists a new incomplete item and returns it with the
// database-assigned ID.
func (l *itemList) Insert(ctx context.Context, content string) (*models.Item, error) {
	query := fmt.Sprintf(
		"INSERT INTO %s (user_id, %s, content, is_completed, created_at) VALUES (?, ?, ?, 0, ?)",
		l.kind.Table(), l.kind.IdentifierColumn(),
	)

	res, err := l.db.ExecContext(ctx, query, l.owner, l.identifier, content, time.Now().Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", l.kind, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted id: %w", err)
	}

	return &models.Item{ID: id, Content: content, Completed: false}, nil
}

// Delete removes one item. Missing IDs delete zero rows, which is fine.
func (l *itemList) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ? AND user_id = ?", l.kind.Table())

	if _, err := l.db.ExecContext(ctx, query, id, l.owner); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", l.kind, err)
	}
	return nil
}

// SetCompleted persists the completion flag of one item.
func (l *itemList) SetCompleted(ctx context.Context, id int64, completed bool) error {
	query := fmt.Sprintf("UPDATE %s SET is_completed = ? WHERE id = ? AND user_id = ?", l.kind.Table())

	if _, err := l.db.ExecContext(ctx, query, completed, id, l.owner); err != nil {
		return fmt.Errorf("failed to update %s: %w", l.kind, err)
	}
	return nil
}

// SetContent persists the content of one item.
func (l *itemList) SetContent(ctx context.Context, id int64, content string) error {
	query := fmt.Sprintf("UPDATE %s SET content = ? WHERE id = ? AND user_id = ?", l.kind.Table())

	if _, err := l.db.ExecContext(ctx, query, content, id, l.owner); err != nil {
		return fmt.Errorf("failed to update %s: %w", l.kind, err)
	}
	return nil
}
