package models

// Kind distinguishes the two list families the planner tracks.
type Kind string

const (
	// KindTask is a daily task list, identified by an ISO date (2006-01-02).
	KindTask Kind = "tasks"

	// KindGoal is a monthly goal list, identified by a year-month (2006-01).
	KindGoal Kind = "goals"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindTask || k == KindGoal
}

// Table is the remote table holding this kind's rows.
func (k Kind) Table() string {
	return string(k)
}

// IdentifierColumn is the remote column scoping rows to one group.
func (k Kind) IdentifierColumn() string {
	if k == KindTask {
		return "task_date"
	}
	return "goal_month"
}

// LocalKeyBase is the prefix of local-store keys for this kind. Local
// lists always belong to the anonymous session, so the owner is baked
// into the base.
func (k Kind) LocalKeyBase() string {
	return string(k) + "-anonymous"
}
