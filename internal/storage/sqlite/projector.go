package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dstam/planner/internal/dates"
	"github.com/dstam/planner/internal/models"
)

// Apply copies source into the 30 day-groups after this list's date.
// Replace mode issues one windowed delete first; both modes then issue a
// single multi-row insert covering every target day. Merge mode inserts
// with OR IGNORE so the unique (user_id, task_date, content) index drops
// duplicates instead of erroring.
func (l *TaskList) Apply(ctx context.Context, source []models.Item, replace bool) error {
	window, err := dates.Window(l.identifier, dates.ProjectionDays)
	if err != nil {
		return err
	}

	if replace {
		if err := l.deleteWindow(ctx, window); err != nil {
			return fmt.Errorf("failed to clear future tasks for replacement: %w", err)
		}
	}

	// OR IGNORE serves both modes: in merge it skips contents already
	// present in a target day, in replace (targets just cleared) it only
	// collapses duplicate contents within the source itself.
	var (
		rows = make([]string, 0, len(window)*len(source))
		args = make([]interface{}, 0, len(window)*len(source)*5)
		now  = time.Now().Unix()
	)
	for _, day := range window {
		for _, item := range source {
			rows = append(rows, "(?, ?, ?, 0, ?)")
			args = append(args, l.owner, day, item.Content, now)
		}
	}
	if len(rows) == 0 {
		return nil
	}

	query := "INSERT OR IGNORE INTO tasks (user_id, task_date, content, is_completed, created_at) VALUES " +
		strings.Join(rows, ", ")

	if _, err := l.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert future tasks: %w", err)
	}
	return nil
}

// RemoveFuture deletes everything in the 30 day-groups after this
// list's date. Running it twice is safe; the second pass matches nothing.
func (l *TaskList) RemoveFuture(ctx context.Context) error {
	window, err := dates.Window(l.identifier, dates.ProjectionDays)
	if err != nil {
		return err
	}
	if err := l.deleteWindow(ctx, window); err != nil {
		return fmt.Errorf("failed to remove future tasks: %w", err)
	}
	return nil
}

// deleteWindow removes all of the owner's tasks on the given days with a
// single IN-clause delete.
func (l *TaskList) deleteWindow(ctx context.Context, window []string) error {
	query := "DELETE FROM tasks WHERE user_id = ? AND task_date IN (?" +
		repeatPlaceholder(len(window)-1) + ")"

	args := make([]interface{}, 0, len(window)+1)
	args = append(args, l.owner)
	for _, day := range window {
		args = append(args, day)
	}

	_, err := l.db.ExecContext(ctx, query, args...)
	return err
}
