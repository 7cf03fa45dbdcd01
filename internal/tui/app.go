// Package tui implements the terminal interface: a Daily / Progress /
// Goals view over the live task and goal snapshots, with inline editing
// and confirmation-gated deletes. The model is the single owner of all
// view state; the displayed lists only ever change when a subscription
// delivers a new snapshot, never optimistically on a write.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sojwal094-prodex/my-task-manager-app/internal/api"
	"github.com/sojwal094-prodex/my-task-manager-app/internal/config"
	"github.com/sojwal094-prodex/my-task-manager-app/internal/dateutil"
	"github.com/sojwal094-prodex/my-task-manager-app/internal/tui/styles"
)

// ViewMode is the current top-level view.
type ViewMode int

const (
	ViewDaily ViewMode = iota
	ViewProgress
	ViewGoals
)

// Title returns the header shown for a view.
func (v ViewMode) Title() string {
	switch v {
	case ViewProgress:
		return "My Progress"
	case ViewGoals:
		return "My Goals"
	}
	return "My Day"
}

// ItemKind distinguishes what a pending delete confirmation targets.
type ItemKind int

const (
	KindTask ItemKind = iota
	KindGoal
)

func (k ItemKind) String() string {
	if k == KindGoal {
		return "goal"
	}
	return "task"
}

// editFocus enumerates the inline edit inputs in tab order.
const (
	editFocusText = iota
	editFocusNotes
	editFocusDueDate
	editFocusDueTime
	editFieldCount
)

// App is the main Bubble Tea model.
type App struct {
	// Dependencies
	client *api.Client
	config *config.Config
	userID string

	// View state
	viewMode  ViewMode
	viewedDay time.Time

	// Data, replaced wholesale on each snapshot
	tasks []api.Task
	goals []api.Goal

	// Live subscriptions. generation guards against deliveries from a
	// superseded subscription pair being applied.
	taskSub    *api.Subscription[api.Task]
	goalSub    *api.Subscription[api.Goal]
	generation int

	// Add drafts
	taskInput textinput.Model
	goalInput textinput.Model
	adding    bool

	// Inline edit state; editingID empty means no edit in progress
	editingID   string
	editText    textinput.Model
	editNotes   textinput.Model
	editDueDate textinput.Model
	editDueTime textinput.Model
	editFocus   int

	// Pending delete confirmation; deleteID empty means none
	deleteID   string
	deleteKind ItemKind

	// UI state
	cursor   int
	loading  bool
	errText  string
	status   string
	width    int
	height   int
	spinner  spinner.Model
	styles   styles.Theme
	notified map[string]bool

	// List scrolling; the viewport exists once the first window size
	// arrives, until then lists render unclipped.
	listViewport  viewport.Model
	viewportReady bool

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

// NewApp creates the application model. The user is already signed in;
// userID scopes every query and write.
func NewApp(client *api.Client, cfg *config.Config, userID string, initialView string) *App {
	s := spinner.New()
	s.Spinner = spinner.Dot

	taskInput := textinput.New()
	taskInput.Placeholder = "Add a task..."
	taskInput.CharLimit = 200

	goalInput := textinput.New()
	goalInput.Placeholder = "Add a new long-term goal..."
	goalInput.CharLimit = 200

	app := &App{
		client:    client,
		config:    cfg,
		userID:    userID,
		viewMode:  ViewDaily,
		taskInput: taskInput,
		goalInput: goalInput,
		spinner:   s,
		styles:    styles.New(cfg.DarkMode()),
		loading:   true,
		notified:  make(map[string]bool),
		now:       time.Now,
	}
	app.viewedDay = dateutil.NormalizeToDay(app.now())

	switch initialView {
	case "progress":
		app.viewMode = ViewProgress
	case "goals":
		app.viewMode = ViewGoals
	}

	return app
}

// Init implements tea.Model: it opens the live subscriptions and starts
// waiting on them.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.spinner.Tick,
		a.resubscribe(),
	)
}

// resubscribe tears down the current subscription pair and opens a new one
// for the current identity. Deliveries tagged with an older generation are
// ignored when they arrive.
func (a *App) resubscribe() tea.Cmd {
	if a.taskSub != nil {
		a.taskSub.Unsubscribe()
	}
	if a.goalSub != nil {
		a.goalSub.Unsubscribe()
	}

	a.generation++
	interval := a.config.API.PollInterval
	a.taskSub = a.client.SubscribeTasks(a.userID, interval)
	a.goalSub = a.client.SubscribeGoals(a.userID, interval)

	return tea.Batch(
		waitForTasks(a.taskSub, a.generation),
		waitForGoals(a.goalSub, a.generation),
	)
}

// Message types
type tasksSnapshotMsg struct {
	gen   int
	tasks []api.Task
}

type goalsSnapshotMsg struct {
	gen   int
	goals []api.Goal
}

// subscriptionErrMsg reports a poll failure from one subscription; kind
// names which one, so only that waiter re-arms.
type subscriptionErrMsg struct {
	gen  int
	kind ItemKind
	err  error
}

// writeDoneMsg reports the outcome of a create/update/delete intent.
type writeDoneMsg struct {
	action string
	err    error
}

type themeSavedMsg struct{ err error }
