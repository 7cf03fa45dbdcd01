package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sojwal094-prodex/my-task-manager-app/internal/api"
	"github.com/sojwal094-prodex/my-task-manager-app/internal/dateutil"
	"github.com/sojwal094-prodex/my-task-manager-app/internal/stats"
)

const (
	barWidth      = 30
	maxTitleWidth = 60
)

// View implements tea.Model.
func (a *App) View() string {
	if a.deleteID != "" {
		return a.styles.App.Render(a.renderDeleteDialog())
	}

	var b strings.Builder

	b.WriteString(a.renderTabs())
	b.WriteString("\n")
	b.WriteString(a.styles.Title.Render(a.viewMode.Title()))
	b.WriteString("\n\n")

	if a.errText != "" {
		b.WriteString(a.styles.ErrorBar.Render(a.errText))
		b.WriteString("\n\n")
	}

	if a.loading {
		b.WriteString(a.spinner.View())
		b.WriteString(" Loading Task Manager...")
		return a.styles.App.Render(b.String())
	}

	switch a.viewMode {
	case ViewProgress:
		b.WriteString(a.renderProgress())
	case ViewGoals:
		b.WriteString(a.renderGoals())
	default:
		b.WriteString(a.renderDaily())
	}

	b.WriteString("\n")
	b.WriteString(a.renderFooter())

	return a.styles.App.Render(b.String())
}

func (a *App) renderTabs() string {
	labels := []string{"Day", "Progress", "Goals"}
	parts := make([]string, len(labels))
	for i, label := range labels {
		if ViewMode(i) == a.viewMode {
			parts[i] = a.styles.TabActive.Render(label)
		} else {
			parts[i] = a.styles.TabInactive.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a *App) renderDaily() string {
	var b strings.Builder

	display := dateutil.DisplayDay(a.viewedDay, a.now())
	b.WriteString(a.styles.Subtle.Render("< h"))
	b.WriteString("  ")
	b.WriteString(a.styles.Title.Render(display))
	b.WriteString("  ")
	b.WriteString(a.styles.Subtle.Render("l >"))
	b.WriteString("   ")
	b.WriteString(a.styles.Subtle.Render("(t: go to today)"))
	b.WriteString("\n\n")

	summary := a.dailyTasks()
	b.WriteString(fmt.Sprintf("%d/%d tasks completed (%.0f%%)\n", summary.Completed, summary.Total, summary.Percentage))
	b.WriteString(a.renderBar(summary.Percentage))
	b.WriteString("\n\n")

	if summary.Total == 0 {
		b.WriteString(a.styles.Subtle.Render(fmt.Sprintf("No tasks for %s! Press 'a' to add one.", display)))
		b.WriteString("\n")
	} else {
		b.WriteString(a.renderTaskList(summary))
	}

	b.WriteString("\n")
	b.WriteString(a.renderAddInput(&a.taskInput, fmt.Sprintf("Add task for %s...", display)))

	return b.String()
}

// renderTaskList renders the day's rows through the scroll viewport. Rows
// span a varying number of lines (notes, meta, the edit form), so the
// cursor's first line is tracked while building the content.
func (a *App) renderTaskList(summary stats.DailySummary) string {
	var content strings.Builder
	cursorLine := 0
	line := 0
	for i, t := range summary.Items {
		var row string
		if t.ID == a.editingID {
			row = a.renderEditForm()
		} else {
			row = a.renderTaskRow(t, i == a.cursor)
		}
		if i == a.cursor {
			cursorLine = line
		}
		line += strings.Count(row, "\n")
		content.WriteString(row)
	}
	return a.renderScrollable(content.String(), cursorLine)
}

// renderScrollable shows list content through the viewport once the
// terminal size is known, keeping the cursor line visible. Before the
// first window size arrives the content renders unclipped.
func (a *App) renderScrollable(content string, cursorLine int) string {
	if !a.viewportReady {
		return content
	}
	a.listViewport.SetContent(strings.TrimRight(content, "\n"))
	a.syncViewportToCursor(cursorLine)
	return a.listViewport.View() + "\n"
}

// syncViewportToCursor scrolls just far enough to bring the cursor line
// back into view.
func (a *App) syncViewportToCursor(cursorLine int) {
	vpHeight := a.listViewport.Height
	if vpHeight <= 0 {
		return
	}

	top := a.listViewport.YOffset
	bottom := top + vpHeight - 1

	if cursorLine < top {
		a.listViewport.SetYOffset(cursorLine)
	} else if cursorLine > bottom {
		a.listViewport.SetYOffset(cursorLine - vpHeight + 1)
	}
}

func (a *App) renderTaskRow(t api.Task, selected bool) string {
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}

	title := runewidth.Truncate(t.Text, maxTitleWidth, "…")
	if t.Completed {
		title = a.styles.TaskDone.Render(title)
	}

	line := check + " " + title

	var meta []string
	status := t.Status(a.now())
	if t.DueDate != "" {
		due := t.DueDate
		if t.DueTime != "" {
			due += " " + t.DueTime
		}
		switch status {
		case api.StatusOverdue:
			meta = append(meta, a.styles.Overdue.Render(due+" (Overdue)"))
		case api.StatusDueToday:
			meta = append(meta, a.styles.DueToday.Render(due+" (Due Today)"))
		default:
			meta = append(meta, a.styles.TaskMeta.Render(due))
		}
	} else if t.Time != "" {
		meta = append(meta, a.styles.TaskMeta.Render("Time: "+t.Time))
	}
	if t.Assignee != "" {
		meta = append(meta, a.styles.TaskMeta.Render("- "+t.Assignee))
	}

	var b strings.Builder
	style := a.styles.TaskItem
	if selected {
		style = a.styles.TaskSelected
	}
	b.WriteString(style.Render(line))
	b.WriteString("\n")
	if t.Notes != "" {
		b.WriteString(a.styles.TaskNotes.Render("      " + runewidth.Truncate(t.Notes, maxTitleWidth, "…")))
		b.WriteString("\n")
	}
	if len(meta) > 0 {
		b.WriteString("      " + strings.Join(meta, " "))
		b.WriteString("\n")
	}
	return b.String()
}

func (a *App) renderEditForm() string {
	labels := []string{"Title", "Notes", "Due Date", "Due Time"}
	inputs := []string{
		a.editText.View(),
		a.editNotes.View(),
		a.editDueDate.View(),
		a.editDueTime.View(),
	}

	var b strings.Builder
	for i := range labels {
		marker := "  "
		if i == a.editFocus {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("  %s%-9s %s\n", marker, labels[i]+":", inputs[i]))
	}
	b.WriteString(a.styles.Subtle.Render("    enter: save   esc: cancel   tab: next field"))
	b.WriteString("\n")
	return b.String()
}

func (a *App) renderProgress() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Weekly Progress"))
	b.WriteString("\n")
	b.WriteString(a.renderRollups(stats.WeeklyRollup(a.tasks), "No weekly data available yet. Complete some tasks!"))
	b.WriteString("\n")

	b.WriteString(a.styles.Title.Render("Monthly Progress"))
	b.WriteString("\n")
	b.WriteString(a.renderRollups(stats.MonthlyRollup(a.tasks), "No monthly data available yet. Keep going!"))

	return b.String()
}

func (a *App) renderRollups(rollups []stats.Rollup, emptyText string) string {
	if len(rollups) == 0 {
		return a.styles.Subtle.Render(emptyText) + "\n"
	}

	var b strings.Builder
	for _, r := range rollups {
		b.WriteString(fmt.Sprintf("%s: %d/%d tasks completed\n", r.Period, r.Completed, r.Total))
		b.WriteString(a.renderBar(r.Percentage))
		b.WriteString(a.styles.Subtle.Render(fmt.Sprintf(" %.0f%% complete", r.Percentage)))
		b.WriteString("\n")
	}
	return b.String()
}

func (a *App) renderGoals() string {
	var b strings.Builder

	b.WriteString(a.renderAddInput(&a.goalInput, "Add a new long-term goal..."))
	b.WriteString("\n")

	if len(a.goals) == 0 {
		b.WriteString(a.styles.Subtle.Render("No goals yet! Set some long-term objectives."))
		b.WriteString("\n")
		return b.String()
	}

	var content strings.Builder
	for i, g := range a.goals {
		check := "[ ]"
		title := runewidth.Truncate(g.Title, maxTitleWidth, "…")
		if g.Completed {
			check = "[x]"
			title = a.styles.TaskDone.Render(title)
		}

		style := a.styles.TaskItem
		if i == a.cursor {
			style = a.styles.TaskSelected
		}
		content.WriteString(style.Render(check + " " + title))
		content.WriteString("\n")
	}
	// Goal rows are one line each, so the cursor line is the cursor itself.
	b.WriteString(a.renderScrollable(content.String(), a.cursor))
	return b.String()
}

func (a *App) renderAddInput(input *textinput.Model, placeholder string) string {
	if a.adding {
		return a.styles.Input.Render(input.View()) + "\n"
	}
	return a.styles.Subtle.Render("a: "+placeholder) + "\n"
}

func (a *App) renderDeleteDialog() string {
	msg := fmt.Sprintf("Are you sure you want to delete this %s?", a.deleteKind)

	body := lipgloss.JoinVertical(lipgloss.Center,
		msg,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top,
			a.styles.Danger.Render("y: Yes, Delete"),
			"   ",
			a.styles.Subtle.Render("n: Cancel"),
		),
	)
	return a.styles.Dialog.Render(body)
}

func (a *App) renderBar(percentage float64) string {
	filled := int(percentage/100*barWidth + 0.5)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	return a.styles.ProgressBar.Render(strings.Repeat("█", filled)) +
		a.styles.ProgressTrack.Render(strings.Repeat("░", barWidth-filled))
}

func (a *App) renderFooter() string {
	var b strings.Builder
	if a.status != "" {
		b.WriteString(a.styles.Status.Render(a.status))
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Subtle.Render("User ID: " + a.userID))
	b.WriteString("\n")
	b.WriteString(a.styles.Subtle.Render("1/2/3: views  j/k: move  x: toggle  e: edit  d: delete  y: yank  T: theme  q: quit"))
	return b.String()
}
