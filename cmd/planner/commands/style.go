package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskmaster/planner/internal/domain/entities"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	doneStyle   = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	priorityStyles = map[entities.Priority]lipgloss.Style{
		entities.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		entities.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		entities.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}

	notificationStyles = map[entities.NotificationType]lipgloss.Style{
		entities.NotificationWarning:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		entities.NotificationTask:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		entities.NotificationCalendar: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	}
)

// row lays cells out in columns of the given widths
func row(widths []int, cells ...string) string {
	var b strings.Builder
	for i, cell := range cells {
		if i < len(widths) {
			b.WriteString(lipgloss.NewStyle().Width(widths[i]).MaxWidth(widths[i]).Render(cell))
			b.WriteString(" ")
			continue
		}
		b.WriteString(cell)
	}
	return strings.TrimRight(b.String(), " ")
}

func renderTask(t entities.Task) string {
	check := "[ ]"
	title := t.Title
	if t.Completed {
		check = "[x]"
		title = doneStyle.Render(title)
	}

	priority := string(t.Priority)
	if style, ok := priorityStyles[t.Priority]; ok {
		priority = style.Render(priority)
	}

	due := t.DueDate
	if len(due) > 10 {
		due = due[:10]
	}
	if t.Time != "" {
		due += " " + t.Time
	}

	return row([]int{5, 4, 8, 17, 10, 5}, fmt.Sprint(t.ID), check, priority, due, t.Category, fmt.Sprintf("%d%%", t.Progress), title)
}

func renderNotification(n entities.Notification) string {
	marker := "*"
	if n.IsRead {
		marker = " "
	}
	kind := string(n.Type)
	if style, ok := notificationStyles[n.Type]; ok {
		kind = style.Render(kind)
	}
	created := n.CreatedAt
	if len(created) > 16 {
		created = strings.Replace(created[:16], "T", " ", 1)
	}
	return row([]int{5, 2, 9, 17}, fmt.Sprint(n.ID), marker, kind, created, n.Title) +
		"\n" + mutedStyle.Render(indent(n.Message, 6))
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	return pad + strings.ReplaceAll(s, "\n", "\n"+pad)
}
