// Package styles provides Lip Gloss styles for the TUI. The app carries an
// explicit light/dark theme that the user can toggle and persist, so styles
// are built per theme rather than relying on terminal detection.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme is the resolved style set for one color scheme.
type Theme struct {
	Dark bool

	App      lipgloss.Style
	Title    lipgloss.Style
	Subtle   lipgloss.Style
	ErrorBar lipgloss.Style
	Status   lipgloss.Style

	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	TaskItem     lipgloss.Style
	TaskSelected lipgloss.Style
	TaskDone     lipgloss.Style
	TaskNotes    lipgloss.Style
	TaskMeta     lipgloss.Style

	Overdue  lipgloss.Style
	DueToday lipgloss.Style

	ProgressBar   lipgloss.Style
	ProgressTrack lipgloss.Style

	Input  lipgloss.Style
	Dialog lipgloss.Style
	Danger lipgloss.Style
}

// New builds the theme for the given scheme.
func New(dark bool) Theme {
	var (
		text      = lipgloss.Color("#1F2937")
		subtle    = lipgloss.Color("#6B7280")
		accent    = lipgloss.Color("#3B82F6")
		danger    = lipgloss.Color("#DC2626")
		warn      = lipgloss.Color("#2563EB")
		barTrack  = lipgloss.Color("#DBEAFE")
		tabIdle   = lipgloss.Color("#4B5563")
		dialogBrd = lipgloss.Color("#9CA3AF")
	)
	if dark {
		text = lipgloss.Color("#F3F4F6")
		subtle = lipgloss.Color("#9CA3AF")
		accent = lipgloss.Color("#60A5FA")
		danger = lipgloss.Color("#F87171")
		warn = lipgloss.Color("#93C5FD")
		barTrack = lipgloss.Color("#1E3A5F")
		tabIdle = lipgloss.Color("#D1D5DB")
		dialogBrd = lipgloss.Color("#6B7280")
	}

	return Theme{
		Dark: dark,

		App: lipgloss.NewStyle().
			Padding(1, 2),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(text),
		Subtle: lipgloss.NewStyle().
			Foreground(subtle),
		ErrorBar: lipgloss.NewStyle().
			Bold(true).
			Foreground(danger),
		Status: lipgloss.NewStyle().
			Foreground(accent),

		TabActive: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 2).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(accent),
		TabInactive: lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(tabIdle),

		TaskItem: lipgloss.NewStyle().
			PaddingLeft(2),
		TaskSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Bold(true).
			BorderLeft(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeftForeground(accent),
		TaskDone: lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(subtle),
		TaskNotes: lipgloss.NewStyle().
			Foreground(subtle),
		TaskMeta: lipgloss.NewStyle().
			Foreground(subtle),

		Overdue: lipgloss.NewStyle().
			Bold(true).
			Foreground(danger),
		DueToday: lipgloss.NewStyle().
			Bold(true).
			Foreground(warn),

		ProgressBar: lipgloss.NewStyle().
			Foreground(accent),
		ProgressTrack: lipgloss.NewStyle().
			Foreground(barTrack),

		Input: lipgloss.NewStyle().
			Foreground(text),
		Dialog: lipgloss.NewStyle().
			Padding(1, 3).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dialogBrd),
		Danger: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(danger).
			Padding(0, 2),
	}
}
