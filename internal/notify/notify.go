// Package notify is the outcome side channel of the list engine. Every
// operation reports success or failure here instead of returning rich
// errors to the presentation layer; a UI would render these as toasts,
// the server renders them as log lines.
package notify

import (
	"log/slog"
	"sync"
)

// Severity classifies a notification.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Notification is one reported outcome.
type Notification struct {
	Title       string
	Description string
	Severity    Severity
}

// Notifier receives operation outcomes.
type Notifier interface {
	Notify(n Notification)
}

// LogNotifier emits notifications through slog.
type LogNotifier struct{}

// Notify implements Notifier.
func (LogNotifier) Notify(n Notification) {
	if n.Severity == SeverityError {
		slog.Warn(n.Title, "description", n.Description)
		return
	}
	slog.Info(n.Title, "description", n.Description)
}

// Multi fans a notification out to several sinks, e.g. a per-request
// recorder plus the process log.
func Multi(notifiers ...Notifier) Notifier {
	return multi(notifiers)
}

type multi []Notifier

func (m multi) Notify(n Notification) {
	for _, sink := range m {
		sink.Notify(n)
	}
}

// Recorder captures notifications for inspection; used by tests and by
// the HTTP layer to echo outcomes back to the client.
type Recorder struct {
	mu            sync.Mutex
	notifications []Notification
}

// Notify implements Notifier.
func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
}

// All returns a copy of everything recorded so far.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}

// Errors returns only the error-severity notifications.
func (r *Recorder) Errors() []Notification {
	var out []Notification
	for _, n := range r.All() {
		if n.Severity == SeverityError {
			out = append(out, n)
		}
	}
	return out
}
