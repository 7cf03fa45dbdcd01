// Package api provides a client for the hosted document store that backs
// the tracker: two owner-scoped collections (tasks, goals) with create,
// partial-update, delete and polling live queries.
package api

import (
	"time"

	"github.com/sojwal094-prodex/my-task-manager-app/internal/dateutil"
)

// Logical collection names. Each is namespaced under the configured
// application identifier on the server side.
const (
	CollectionTasks = "tasks"
	CollectionGoals = "goals"
)

// Task is a daily task owned by a single user. TaskDate partitions tasks
// into disjoint daily buckets and is set once at creation; it never changes
// afterwards.
type Task struct {
	ID        string
	Text      string
	Notes     string
	Completed bool
	TaskDate  string // YYYY-MM-DD, the day the task belongs to
	DueDate   string // YYYY-MM-DD, optional, independent of TaskDate
	DueTime   string // HH:MM, optional
	Time      string // legacy free-text slot, shown only without a DueDate
	Assignee  string
	CreatedBy string
	CreatedAt time.Time // server-assigned; zero means "order earliest"
}

// Goal is a long-term objective. Goals have no date fields.
type Goal struct {
	ID        string
	Title     string
	Completed bool
	CreatedBy string
	CreatedAt time.Time
}

// TaskStatus classifies a task against today's date.
type TaskStatus int

const (
	StatusNone TaskStatus = iota
	StatusOverdue
	StatusDueToday
)

// String returns the display label for a status.
func (s TaskStatus) String() string {
	switch s {
	case StatusOverdue:
		return "Overdue"
	case StatusDueToday:
		return "Due Today"
	}
	return ""
}

// Status derives the task's Overdue / Due Today classification.
// Completed tasks and tasks without a due date carry no status, and a
// malformed due date is bypassed rather than compared. The comparison is
// lexicographic, which is valid because the format is fixed-width
// zero-padded.
func (t *Task) Status(today time.Time) TaskStatus {
	if t.Completed || t.DueDate == "" {
		return StatusNone
	}
	if _, err := dateutil.ParseDay(t.DueDate); err != nil {
		return StatusNone
	}

	todayStr := dateutil.FormatDay(today)
	switch {
	case t.DueDate < todayStr:
		return StatusOverdue
	case t.DueDate == todayStr:
		return StatusDueToday
	}
	return StatusNone
}

// NewTask describes a task to create. Text must be non-empty after
// trimming; the remaining Task fields get their creation defaults.
type NewTask struct {
	Text     string
	TaskDate string
}

// TaskFieldUpdate is a partial update: nil fields are left untouched on the
// server. TaskDate, CreatedBy and CreatedAt are deliberately absent; they
// are immutable after creation.
type TaskFieldUpdate struct {
	Text      *string
	Notes     *string
	Completed *bool
	DueDate   *string
	DueTime   *string
}

// GoalFieldUpdate is a partial update for a goal.
type GoalFieldUpdate struct {
	Title     *string
	Completed *bool
}

// String returns a pointer to s, for building field updates.
func String(s string) *string { return &s }

// Bool returns a pointer to b, for building field updates.
func Bool(b bool) *bool { return &b }
