package list

import (
	"errors"
	"fmt"

	"github.com/dstam/planner/internal/dates"
	"github.com/dstam/planner/internal/models"
	"github.com/dstam/planner/internal/notify"
	"github.com/dstam/planner/internal/session"
	"github.com/dstam/planner/internal/storage/local"
	"github.com/dstam/planner/internal/storage/sqlite"
)

var (
	// ErrNoSession: the session is unresolved, or remote mode arrived
	// without an owner. Nothing may be read or written.
	ErrNoSession = errors.New("no active session")

	// ErrUnknownKind: the kind is neither tasks nor goals.
	ErrUnknownKind = errors.New("unknown list kind")
)

// Backends bundles the two store families a deployment offers.
type Backends struct {
	Remote *sqlite.Store
	Local  local.KV
}

// Open selects the store for (kind, identifier) under the given session
// and wraps it in a List. The choice is made exactly once, here; the
// engine itself never branches on storage mode. Identity changes mean a
// new Open call, never a mutation of an existing List.
func Open(sess session.Session, kind models.Kind, identifier string, backends Backends, notifier notify.Notifier) (*List, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if err := validIdentifier(kind, identifier); err != nil {
		return nil, err
	}
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}

	l := &List{
		kind:       kind,
		identifier: identifier,
		notifier:   notifier,
		items:      []models.Item{},
	}

	switch sess.Mode {
	case session.ModeRemote:
		if sess.Owner == "" || backends.Remote == nil {
			return nil, ErrNoSession
		}
		if kind == models.KindTask {
			l.store = backends.Remote.TaskList(sess.Owner, identifier)
		} else {
			l.store = backends.Remote.GoalList(sess.Owner, identifier)
		}
		l.rollback = true
		return l, nil

	case session.ModeLocal:
		if backends.Local == nil {
			return nil, ErrNoSession
		}
		if kind == models.KindTask {
			l.store = local.NewTaskList(backends.Local, identifier)
		} else {
			l.store = local.NewGoalList(backends.Local, identifier)
		}
		return l, nil

	default:
		return nil, ErrNoSession
	}
}

func validIdentifier(kind models.Kind, identifier string) error {
	if kind == models.KindTask {
		_, err := dates.ParseDay(identifier)
		return err
	}
	_, err := dates.ParseMonth(identifier)
	return err
}
