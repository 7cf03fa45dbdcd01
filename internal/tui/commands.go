package tui

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sojwal094-prodex/my-task-manager-app/internal/api"
	"github.com/sojwal094-prodex/my-task-manager-app/internal/config"
)

// waitForTasks blocks on the task subscription and wraps the next delivery
// with the generation it belongs to.
func waitForTasks(sub *api.Subscription[api.Task], gen int) tea.Cmd {
	return func() tea.Msg {
		select {
		case tasks := <-sub.C:
			return tasksSnapshotMsg{gen: gen, tasks: tasks}
		case err := <-sub.Errs:
			return subscriptionErrMsg{gen: gen, kind: KindTask, err: err}
		}
	}
}

// waitForGoals blocks on the goal subscription.
func waitForGoals(sub *api.Subscription[api.Goal], gen int) tea.Cmd {
	return func() tea.Msg {
		select {
		case goals := <-sub.C:
			return goalsSnapshotMsg{gen: gen, goals: goals}
		case err := <-sub.Errs:
			return subscriptionErrMsg{gen: gen, kind: KindGoal, err: err}
		}
	}
}

// createTask emits a create intent bound to the given day.
func (a *App) createTask(text, taskDate string) tea.Cmd {
	return func() tea.Msg {
		_, err := a.client.CreateTask(a.userID, api.NewTask{Text: text, TaskDate: taskDate})
		return writeDoneMsg{action: "add task", err: err}
	}
}

// createGoal emits a create intent for a bare-title goal.
func (a *App) createGoal(title string) tea.Cmd {
	return func() tea.Msg {
		_, err := a.client.CreateGoal(a.userID, title)
		return writeDoneMsg{action: "add goal", err: err}
	}
}

// updateTask emits a partial-update intent.
func (a *App) updateTask(id string, upd api.TaskFieldUpdate) tea.Cmd {
	return func() tea.Msg {
		return writeDoneMsg{action: "update task", err: a.client.UpdateTaskFields(id, upd)}
	}
}

// updateGoal emits a partial-update intent.
func (a *App) updateGoal(id string, upd api.GoalFieldUpdate) tea.Cmd {
	return func() tea.Msg {
		return writeDoneMsg{action: "update goal", err: a.client.UpdateGoalFields(id, upd)}
	}
}

// deleteItem emits a delete intent for a task or goal.
func (a *App) deleteItem(id string, kind ItemKind) tea.Cmd {
	return func() tea.Msg {
		var err error
		if kind == KindGoal {
			err = a.client.DeleteGoal(id)
		} else {
			err = a.client.DeleteTask(id)
		}
		return writeDoneMsg{action: "delete " + kind.String(), err: err}
	}
}

// yankText copies text to the system clipboard.
func yankText(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return writeDoneMsg{action: "copy", err: err}
		}
		return writeDoneMsg{action: "copy"}
	}
}

// saveTheme persists the toggled theme choice.
func saveTheme(cfg *config.Config) tea.Cmd {
	return func() tea.Msg {
		return themeSavedMsg{err: config.Save(cfg)}
	}
}
