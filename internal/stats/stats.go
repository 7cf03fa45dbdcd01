// Package stats derives the daily, weekly and monthly completion views
// from an in-memory task list. All functions are pure: they never mutate
// their inputs and are deterministic for a given list.
package stats

import (
	"sort"
	"time"

	"github.com/sojwal094-prodex/my-task-manager-app/internal/api"
	"github.com/sojwal094-prodex/my-task-manager-app/internal/dateutil"
)

// DailySummary is the filtered task set for one viewed day together with
// its completion counters.
type DailySummary struct {
	Items      []api.Task
	Completed  int
	Total      int
	Percentage float64
}

// Rollup is the aggregated completed/total/percentage tuple for one period
// (a week or month key).
type Rollup struct {
	Period     string
	Completed  int
	Total      int
	Percentage float64
}

func percentage(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// DailyView returns the tasks whose TaskDate equals the viewed day, in list
// order, with completion counters. Percentage is 0 when the day is empty.
func DailyView(tasks []api.Task, viewedDay time.Time) DailySummary {
	dayStr := dateutil.FormatDay(viewedDay)

	var s DailySummary
	for _, t := range tasks {
		if t.TaskDate != dayStr {
			continue
		}
		s.Items = append(s.Items, t)
		s.Total++
		if t.Completed {
			s.Completed++
		}
	}
	s.Percentage = percentage(s.Completed, s.Total)
	return s
}

// PeriodRollup groups all tasks by keyFn of their task date and returns one
// entry per distinct key, sorted lexicographically ascending by period key.
// Tasks with an unparsable TaskDate are excluded rather than failing the
// rollup. The lexicographic order is chronological for month keys and for
// week keys within one week-year; ordering across week-year boundaries is
// an accepted limitation.
func PeriodRollup(tasks []api.Task, keyFn func(time.Time) string) []Rollup {
	type counter struct {
		completed int
		total     int
	}
	buckets := make(map[string]*counter)

	for _, t := range tasks {
		if t.TaskDate == "" {
			continue
		}
		day, err := dateutil.ParseDay(t.TaskDate)
		if err != nil {
			continue
		}

		key := keyFn(day)
		c := buckets[key]
		if c == nil {
			c = &counter{}
			buckets[key] = c
		}
		c.total++
		if t.Completed {
			c.completed++
		}
	}

	rollups := make([]Rollup, 0, len(buckets))
	for key, c := range buckets {
		rollups = append(rollups, Rollup{
			Period:     key,
			Completed:  c.completed,
			Total:      c.total,
			Percentage: percentage(c.completed, c.total),
		})
	}
	sort.Slice(rollups, func(i, j int) bool {
		return rollups[i].Period < rollups[j].Period
	})
	return rollups
}

// WeeklyRollup aggregates all tasks by ISO week key.
func WeeklyRollup(tasks []api.Task) []Rollup {
	return PeriodRollup(tasks, dateutil.WeekKey)
}

// MonthlyRollup aggregates all tasks by calendar month key.
func MonthlyRollup(tasks []api.Task) []Rollup {
	return PeriodRollup(tasks, dateutil.MonthKey)
}
