package services

import (
	"sort"
	"strings"
	"time"

	"github.com/taskmaster/planner/internal/domain/entities"
)

// DueTask is a task together with the number of calendar days until it is due
type DueTask struct {
	entities.Task
	DaysUntilDue int
}

// ReminderBuckets groups incomplete tasks by reminder rule.
// A task may appear in several buckets.
type ReminderBuckets struct {
	Tomorrow      []entities.Task
	UrgentToday   []entities.Task
	Overdue       []entities.Task
	ImportantWeek []entities.Task
	LowProgress   []DueTask
}

// Empty reports whether no rule matched any task
func (b ReminderBuckets) Empty() bool {
	return len(b.Tomorrow) == 0 &&
		len(b.UrgentToday) == 0 &&
		len(b.Overdue) == 0 &&
		len(b.ImportantWeek) == 0 &&
		len(b.LowProgress) == 0
}

// ClassifyReminders sorts tasks into reminder buckets relative to the local
// day of now. Completed tasks and tasks without a parseable due date are skipped.
func ClassifyReminders(tasks []entities.Task, now time.Time) ReminderBuckets {
	var b ReminderBuckets

	for _, task := range tasks {
		if task.Completed {
			continue
		}
		days, ok := daysUntil(task.DueDate, now)
		if !ok {
			continue
		}

		if days == 1 {
			b.Tomorrow = append(b.Tomorrow, task)
		}
		if days == 0 && task.Priority == entities.PriorityHigh {
			b.UrgentToday = append(b.UrgentToday, task)
		}
		if days < 0 {
			b.Overdue = append(b.Overdue, task)
		}
		if days > 0 && days <= 7 && task.Priority == entities.PriorityHigh {
			b.ImportantWeek = append(b.ImportantWeek, task)
		}
		if days >= 0 && days <= 3 && task.Progress < 50 {
			b.LowProgress = append(b.LowProgress, DueTask{Task: task, DaysUntilDue: days})
		}
	}

	sort.SliceStable(b.LowProgress, func(i, j int) bool {
		return b.LowProgress[i].DaysUntilDue < b.LowProgress[j].DaysUntilDue
	})

	return b
}

// daysUntil returns the calendar-day distance from now's local date to due
func daysUntil(due string, now time.Time) (int, bool) {
	date, ok := parseDueDate(due, now.Location())
	if !ok {
		return 0, false
	}

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	y, m, d = date.Date()
	target := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	return int(target.Sub(today).Hours() / 24), true
}

func parseDueDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), true
	}
	if len(s) > 10 {
		s = s[:10]
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func priorityText(p entities.Priority) string {
	switch p {
	case entities.PriorityHigh:
		return "High"
	case entities.PriorityMedium:
		return "Medium"
	case entities.PriorityLow:
		return "Low"
	default:
		return "Normal"
	}
}

func timeText(t string) string {
	if t == "" {
		return "not set"
	}
	return t
}
