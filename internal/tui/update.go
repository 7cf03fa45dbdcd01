package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sojwal094-prodex/my-task-manager-app/internal/api"
	"github.com/sojwal094-prodex/my-task-manager-app/internal/dateutil"
	"github.com/sojwal094-prodex/my-task-manager-app/internal/stats"
	"github.com/sojwal094-prodex/my-task-manager-app/internal/tui/styles"
)

// loadFailedText is the banner for a failed subscription poll. It is its
// own constant so a later successful snapshot can clear exactly this
// message without touching a pending write-failure one.
const loadFailedText = "Failed to load data. Please try again."

// listChromeHeight is the number of screen lines around the scrollable
// list: tabs, title, date navigation, summary, bar, add input and footer.
const listChromeHeight = 14

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		vpWidth := msg.Width - 4
		if vpWidth < 20 {
			vpWidth = 20
		}
		vpHeight := msg.Height - listChromeHeight
		if vpHeight < 5 {
			vpHeight = 5
		}
		if !a.viewportReady {
			a.listViewport = viewport.New(vpWidth, vpHeight)
			a.listViewport.MouseWheelEnabled = true
			a.viewportReady = true
		} else {
			a.listViewport.Width = vpWidth
			a.listViewport.Height = vpHeight
		}
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tasksSnapshotMsg:
		// A late delivery from a superseded subscription is discarded, and
		// its waiter is not re-armed.
		if msg.gen != a.generation {
			return a, nil
		}
		a.loading = false
		if a.errText == loadFailedText {
			a.errText = ""
		}
		a.tasks = msg.tasks
		a.clampCursor()
		return a, tea.Batch(
			waitForTasks(a.taskSub, a.generation),
			a.notifyDue(msg.tasks),
		)

	case goalsSnapshotMsg:
		if msg.gen != a.generation {
			return a, nil
		}
		a.loading = false
		if a.errText == loadFailedText {
			a.errText = ""
		}
		a.goals = msg.goals
		a.clampCursor()
		return a, waitForGoals(a.goalSub, a.generation)

	case subscriptionErrMsg:
		if msg.gen != a.generation {
			return a, nil
		}
		// Prior data stays frozen and the loop keeps polling. Only the
		// failed subscription's waiter re-arms; the other waiter is still
		// parked on its own channels.
		a.loading = false
		a.errText = loadFailedText
		if msg.kind == KindGoal {
			return a, waitForGoals(a.goalSub, a.generation)
		}
		return a, waitForTasks(a.taskSub, a.generation)

	case writeDoneMsg:
		if msg.err != nil {
			a.errText = "Failed to " + msg.action + ". Please try again."
			return a, nil
		}
		a.errText = ""
		a.status = strings.ToUpper(msg.action[:1]) + msg.action[1:] + " done"
		return a, nil

	case themeSavedMsg:
		if msg.err != nil {
			a.errText = "Failed to save theme preference."
		}
		return a, nil
	}

	return a, nil
}

// handleKeyMsg routes keys by the current modal state: delete confirmation
// first, then inline edit, then the add inputs, then list navigation.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.deleteID != "" {
		return a.handleDeleteDialogKey(msg)
	}
	if a.editingID != "" {
		return a.handleEditKey(msg)
	}
	if a.adding {
		return a.handleAddKey(msg)
	}
	return a.handleNormalKey(msg)
}

func (a *App) handleDeleteDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		return a, a.confirmDelete()
	case "n", "esc":
		a.cancelDelete()
	}
	return a, nil
}

func (a *App) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return a, a.saveEdit()
	case "esc":
		a.cancelEdit()
		return a, nil
	case "tab", "down":
		a.focusEditField((a.editFocus + 1) % editFieldCount)
		return a, nil
	case "shift+tab", "up":
		a.focusEditField((a.editFocus + editFieldCount - 1) % editFieldCount)
		return a, nil
	}

	var cmd tea.Cmd
	switch a.editFocus {
	case editFocusNotes:
		a.editNotes, cmd = a.editNotes.Update(msg)
	case editFocusDueDate:
		a.editDueDate, cmd = a.editDueDate.Update(msg)
	case editFocusDueTime:
		a.editDueTime, cmd = a.editDueTime.Update(msg)
	default:
		a.editText, cmd = a.editText.Update(msg)
	}
	return a, cmd
}

func (a *App) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if a.viewMode == ViewGoals {
			return a, a.submitAddGoal()
		}
		return a, a.submitAddTask()
	case "esc":
		a.adding = false
		a.taskInput.Blur()
		a.goalInput.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	if a.viewMode == ViewGoals {
		a.goalInput, cmd = a.goalInput.Update(msg)
	} else {
		a.taskInput, cmd = a.taskInput.Update(msg)
	}
	return a, cmd
}

func (a *App) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		a.teardown()
		return a, tea.Quit

	case "1":
		a.switchView(ViewDaily)
	case "2":
		a.switchView(ViewProgress)
	case "3":
		a.switchView(ViewGoals)
	case "tab":
		a.switchView((a.viewMode + 1) % 3)

	case "j", "down":
		a.moveCursor(1)
	case "k", "up":
		a.moveCursor(-1)

	case "h", "left":
		a.navigateDays(-1)
	case "l", "right":
		a.navigateDays(1)
	case "t":
		a.goToToday()

	case "a", "i":
		a.startAdd()
		return a, textinput.Blink

	case "e", "enter":
		if a.viewMode == ViewDaily {
			if t, ok := a.selectedTask(); ok {
				a.startEdit(t)
				return a, textinput.Blink
			}
		}

	case "x", " ":
		return a, a.toggleSelected()

	case "d":
		a.requestDeleteSelected()

	case "y":
		if t, ok := a.selectedTask(); ok && a.viewMode == ViewDaily {
			return a, yankText(t.Text)
		}

	case "T":
		a.config.ToggleTheme()
		a.styles = styles.New(a.config.DarkMode())
		return a, saveTheme(a.config)
	}

	return a, nil
}

// switchView changes the top-level view and resets the list cursor.
func (a *App) switchView(v ViewMode) {
	if a.viewMode == v {
		return
	}
	a.viewMode = v
	a.cursor = 0
	a.adding = false
	a.taskInput.Blur()
	a.goalInput.Blur()
}

// navigateDays moves the viewed day. Allowed in any mode; only the Daily
// view renders it.
func (a *App) navigateDays(delta int) {
	a.viewedDay = dateutil.NormalizeToDay(a.viewedDay.AddDate(0, 0, delta))
	a.cursor = 0
}

// goToToday jumps the viewed day back to today.
func (a *App) goToToday() {
	a.viewedDay = dateutil.NormalizeToDay(a.now())
	a.cursor = 0
}

// dailyTasks returns the aggregated view of the currently viewed day.
func (a *App) dailyTasks() stats.DailySummary {
	return stats.DailyView(a.tasks, a.viewedDay)
}

// selectedTask returns the task under the cursor in the Daily view.
func (a *App) selectedTask() (api.Task, bool) {
	items := a.dailyTasks().Items
	if a.cursor < 0 || a.cursor >= len(items) {
		return api.Task{}, false
	}
	return items[a.cursor], true
}

// selectedGoal returns the goal under the cursor in the Goals view.
func (a *App) selectedGoal() (api.Goal, bool) {
	if a.cursor < 0 || a.cursor >= len(a.goals) {
		return api.Goal{}, false
	}
	return a.goals[a.cursor], true
}

func (a *App) moveCursor(delta int) {
	a.cursor += delta
	a.clampCursor()
}

func (a *App) clampCursor() {
	var max int
	switch a.viewMode {
	case ViewGoals:
		max = len(a.goals) - 1
	case ViewProgress:
		max = 0
	default:
		max = a.dailyTasks().Total - 1
	}
	if a.cursor > max {
		a.cursor = max
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// startAdd focuses the add input of the current view.
func (a *App) startAdd() {
	if a.viewMode == ViewProgress {
		return
	}
	a.adding = true
	a.errText = ""
	if a.viewMode == ViewGoals {
		a.goalInput.Focus()
	} else {
		a.taskInput.Focus()
	}
}

// submitAddTask emits a create intent for the viewed day. Empty input and
// a missing identity are silent no-ops.
func (a *App) submitAddTask() tea.Cmd {
	text := strings.TrimSpace(a.taskInput.Value())
	if text == "" || a.userID == "" {
		return nil
	}

	a.taskInput.SetValue("")
	a.adding = false
	a.taskInput.Blur()
	return a.createTask(text, dateutil.FormatDay(a.viewedDay))
}

// submitAddGoal emits a create intent for a goal.
func (a *App) submitAddGoal() tea.Cmd {
	title := strings.TrimSpace(a.goalInput.Value())
	if title == "" || a.userID == "" {
		return nil
	}

	a.goalInput.SetValue("")
	a.adding = false
	a.goalInput.Blur()
	return a.createGoal(title)
}

// startEdit seeds the draft inputs from the task. Only one edit can be in
// progress at a time.
func (a *App) startEdit(t api.Task) {
	if a.editingID != "" {
		return
	}

	a.editingID = t.ID
	a.editText = textinput.New()
	a.editText.Placeholder = "Task Title"
	a.editText.SetValue(t.Text)
	a.editNotes = textinput.New()
	a.editNotes.Placeholder = "Add notes..."
	a.editNotes.SetValue(t.Notes)
	a.editDueDate = textinput.New()
	a.editDueDate.Placeholder = "YYYY-MM-DD"
	a.editDueDate.SetValue(t.DueDate)
	a.editDueTime = textinput.New()
	a.editDueTime.Placeholder = "HH:MM"
	a.editDueTime.SetValue(t.DueTime)
	a.focusEditField(editFocusText)
}

func (a *App) focusEditField(field int) {
	a.editFocus = field
	inputs := []*textinput.Model{&a.editText, &a.editNotes, &a.editDueDate, &a.editDueTime}
	for i, input := range inputs {
		if i == field {
			input.Focus()
		} else {
			input.Blur()
		}
	}
}

// saveEdit emits an update intent with the trimmed drafts. A draft title
// that trims to empty discards the whole edit, exactly like cancel; there
// is no partial save. The drafts are cleared either way, so a rejected
// write is not retried implicitly.
func (a *App) saveEdit() tea.Cmd {
	id := a.editingID
	text := strings.TrimSpace(a.editText.Value())
	if text == "" {
		a.cancelEdit()
		return nil
	}

	upd := api.TaskFieldUpdate{
		Text:    api.String(text),
		Notes:   api.String(strings.TrimSpace(a.editNotes.Value())),
		DueDate: api.String(a.editDueDate.Value()),
		DueTime: api.String(a.editDueTime.Value()),
	}
	a.cancelEdit()
	return a.updateTask(id, upd)
}

// cancelEdit discards the draft without any persistence call.
func (a *App) cancelEdit() {
	a.editingID = ""
	a.editText.Blur()
	a.editNotes.Blur()
	a.editDueDate.Blur()
	a.editDueTime.Blur()
}

// requestDeleteSelected opens the confirmation dialog for the item under
// the cursor. Nothing is deleted yet.
func (a *App) requestDeleteSelected() {
	switch a.viewMode {
	case ViewDaily:
		if t, ok := a.selectedTask(); ok {
			a.requestDelete(t.ID, KindTask)
		}
	case ViewGoals:
		if g, ok := a.selectedGoal(); ok {
			a.requestDelete(g.ID, KindGoal)
		}
	}
}

func (a *App) requestDelete(id string, kind ItemKind) {
	a.deleteID = id
	a.deleteKind = kind
}

// confirmDelete emits the delete intent and closes the dialog. The dialog
// does not reopen on failure; the error is surfaced instead.
func (a *App) confirmDelete() tea.Cmd {
	if a.deleteID == "" {
		return nil
	}
	id, kind := a.deleteID, a.deleteKind
	a.cancelDelete()
	return a.deleteItem(id, kind)
}

// cancelDelete closes the dialog without emitting anything.
func (a *App) cancelDelete() {
	a.deleteID = ""
}

// toggleSelected emits an update intent flipping the completed flag of the
// item under the cursor. The list itself is untouched until the next
// snapshot confirms the change.
func (a *App) toggleSelected() tea.Cmd {
	switch a.viewMode {
	case ViewDaily:
		if t, ok := a.selectedTask(); ok {
			return a.updateTask(t.ID, api.TaskFieldUpdate{Completed: api.Bool(!t.Completed)})
		}
	case ViewGoals:
		if g, ok := a.selectedGoal(); ok {
			return a.updateGoal(g.ID, api.GoalFieldUpdate{Completed: api.Bool(!g.Completed)})
		}
	}
	return nil
}

// teardown stops the live subscriptions.
func (a *App) teardown() {
	if a.taskSub != nil {
		a.taskSub.Unsubscribe()
	}
	if a.goalSub != nil {
		a.goalSub.Unsubscribe()
	}
}
