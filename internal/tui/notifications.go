package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"
	"github.com/sojwal094-prodex/my-task-manager-app/internal/api"
)

// notifyDue sends a desktop notification for tasks that arrive Overdue or
// Due Today, at most once per task per session. Notification failures are
// ignored: the badge in the list is the authoritative signal.
func (a *App) notifyDue(tasks []api.Task) tea.Cmd {
	if !a.config.UI.Notifications {
		return nil
	}

	today := a.now()
	type pending struct {
		title string
		body  string
	}
	var toNotify []pending

	for _, t := range tasks {
		if a.notified[t.ID] {
			continue
		}
		status := t.Status(today)
		if status == api.StatusNone {
			continue
		}
		a.notified[t.ID] = true
		toNotify = append(toNotify, pending{
			title: status.String(),
			body:  t.Text,
		})
	}

	if len(toNotify) == 0 {
		return nil
	}

	return func() tea.Msg {
		for _, n := range toNotify {
			_ = beeep.Notify("My Day: "+n.title, n.body, "")
		}
		return nil
	}
}
