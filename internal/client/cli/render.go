package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/tasktracker/internal/client/models"
	"github.com/dmitrijs2005/tasktracker/internal/weekday"
)

const deadlineFormat = "Mon 2006-01-02 15:04"

var (
	colorOverdue = lipgloss.Color("#E74C3C")
	colorHigh    = lipgloss.Color("#E67E22")
	colorMedium  = lipgloss.Color("#F4D03F")
	colorLow     = lipgloss.Color("#2ECC71")
	colorMuted   = lipgloss.Color("#7F8C8D")
)

var styles = struct {
	Priority map[models.Priority]lipgloss.Style
	Done     lipgloss.Style
	Muted    lipgloss.Style
	Title    lipgloss.Style
	Error    lipgloss.Style
	Online   lipgloss.Style
	Offline  lipgloss.Style
}{
	Priority: map[models.Priority]lipgloss.Style{
		models.PriorityOverdue: lipgloss.NewStyle().Bold(true).Foreground(colorOverdue),
		models.PriorityHigh:    lipgloss.NewStyle().Foreground(colorHigh),
		models.PriorityMedium:  lipgloss.NewStyle().Foreground(colorMedium),
		models.PriorityLow:     lipgloss.NewStyle().Foreground(colorLow),
		models.PriorityNone:    lipgloss.NewStyle().Foreground(colorMuted),
	},
	Done:    lipgloss.NewStyle().Strikethrough(true).Foreground(colorMuted),
	Muted:   lipgloss.NewStyle().Foreground(colorMuted),
	Title:   lipgloss.NewStyle().Bold(true),
	Error:   lipgloss.NewStyle().Foreground(colorOverdue),
	Online:  lipgloss.NewStyle().Foreground(colorLow),
	Offline: lipgloss.NewStyle().Foreground(colorOverdue),
}

// renderBoard draws tasks (already in display order) with row numbers and a
// completion summary.
func renderBoard(tasks []*models.Task, now time.Time, loc *time.Location) string {
	var b strings.Builder

	if len(tasks) == 0 {
		b.WriteString(styles.Muted.Render("No tasks yet. Use 'add' to create one."))
		b.WriteString("\n")
	}

	completed := 0
	for i, t := range tasks {
		if t.Completed {
			completed++
		}
		b.WriteString(renderTask(i+1, t, now, loc))
		b.WriteString("\n")
	}

	b.WriteString(renderSummary(completed, len(tasks)))
	b.WriteString("\n")
	return b.String()
}

func renderTask(row int, t *models.Task, now time.Time, loc *time.Location) string {
	check := "[ ]"
	text := t.Text
	if t.Completed {
		check = "[x]"
		text = styles.Done.Render(text)
	}

	parts := []string{fmt.Sprintf("%3d. %s %s", row, check, text)}

	p := models.Classify(t, now)
	label := p.String()
	if hrs, ok := t.HoursLeft(now); ok && hrs >= 0 {
		label += fmt.Sprintf(" (%dh left)", int(math.Floor(hrs)))
	}
	parts = append(parts, styles.Priority[p].Render(label))

	if t.Deadline != nil {
		parts = append(parts, styles.Muted.Render("due "+t.Deadline.In(loc).Format(deadlineFormat)))
	}
	if len(t.RepeatDays) > 0 {
		days := make([]string, len(t.RepeatDays))
		for i, d := range t.RepeatDays {
			days[i] = weekday.Abbrev(d)
		}
		parts = append(parts, styles.Muted.Render("repeats "+strings.Join(days, ",")))
	}

	return strings.Join(parts, "  ")
}

// renderSummary prints "Completed: x/y (p%)" with p rounded to a whole number.
func renderSummary(completed, total int) string {
	percent := 0
	if total > 0 {
		percent = int(math.Round(float64(completed) / float64(total) * 100))
	}
	return styles.Title.Render(fmt.Sprintf("Completed: %d/%d (%d%%)", completed, total, percent))
}

func renderStats(p *models.Performance) string {
	lines := []string{
		styles.Title.Render("Performance"),
		fmt.Sprintf("  Total:             %d", p.Total),
		fmt.Sprintf("  Completed:         %d", p.Completed),
		fmt.Sprintf("  Completion rate:   %.1f%%", p.CompletionRate),
		fmt.Sprintf("  Overdue:           %d", p.Overdue),
		fmt.Sprintf("  Completed on time: %d", p.CompletedOnTime),
		fmt.Sprintf("  Completed late:    %d", p.CompletedLate),
	}
	return strings.Join(lines, "\n") + "\n"
}
