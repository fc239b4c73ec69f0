// Package session models the already-resolved identity a request acts
// under. The engine never authenticates anyone; it only consumes the
// owner reference and storage mode a Provider hands it.
package session

import "context"

// Mode selects which backend family a session's lists live in.
type Mode string

const (
	// ModeRemote: lists live in the relational backend, scoped by owner.
	ModeRemote Mode = "remote"

	// ModeLocal: lists live in the anonymous local blob store.
	ModeLocal Mode = "local"

	// ModeNone: no session resolved; no store may be opened.
	ModeNone Mode = ""
)

// Session is the resolved identity for one request or list instance.
type Session struct {
	// Owner references the authenticated user. Set only in remote mode.
	Owner string

	Mode Mode
}

// Provider supplies the current session.
type Provider interface {
	Session(ctx context.Context) Session
}

// Static is a Provider that always returns the same session.
type Static struct {
	S Session
}

// Session implements Provider.
func (s Static) Session(ctx context.Context) Session {
	return s.S
}
