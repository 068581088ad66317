package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tasktracker/internal/client/client"
	"github.com/dmitrijs2005/tasktracker/internal/client/models"
	"github.com/dmitrijs2005/tasktracker/internal/weekday"
)

const (
	deadlinePrompt = "Deadline (YYYY-MM-DD HH:MM, empty for none)"
	repeatPrompt   = "Repeat on (e.g. mon,wed,fri; empty for none)"
	clearMark      = "-"
)

// List prints the board as last fetched.
func (a *App) List(ctx context.Context) error {
	fmt.Fprint(a.out, renderBoard(a.taskService.Board().Sorted(), a.now(), a.loc))
	return nil
}

// Refresh re-fetches every task and prints the board.
func (a *App) Refresh(ctx context.Context) error {
	tasks, err := a.taskService.Refresh(ctx)
	if err != nil {
		a.printError(err)
		return err
	}
	fmt.Fprint(a.out, renderBoard(tasks, a.now(), a.loc))
	return nil
}

// Add fills the compose form and creates a task from it. The form survives a
// failed create so the input is not lost.
func (a *App) Add(ctx context.Context) error {
	text, err := getSimpleText(a.reader, a.withDefault("Task text", a.draft.Text), a.out)
	if err != nil {
		return err
	}
	if text != "" {
		a.draft.Text = text
	}

	line, err := getSimpleText(a.reader, deadlinePrompt, a.out)
	if err != nil {
		return err
	}
	deadline, err := models.ParseDeadline(line, a.loc)
	if err != nil {
		a.printError(err)
		return err
	}
	a.draft.Deadline = deadline

	line, err = getSimpleText(a.reader, repeatPrompt, a.out)
	if err != nil {
		return err
	}
	days, err := ParseWeekdays(line)
	if err != nil {
		a.printError(err)
		return err
	}
	a.draft.RepeatDays = days

	t, err := a.taskService.Create(ctx, a.draft)
	if err != nil {
		a.printError(err)
		return err
	}
	a.draft.Reset()

	a.printf("Added: %s\n", t.Text)
	return a.List(ctx)
}

// Done toggles the completion of a task.
func (a *App) Done(ctx context.Context, ref string) error {
	t, err := a.taskService.Toggle(ctx, ref)
	if err != nil {
		a.printError(err)
		return err
	}
	if t.Completed {
		a.printf("Completed: %s\n", t.Text)
	} else {
		a.printf("Reopened: %s\n", t.Text)
	}
	return a.List(ctx)
}

// Edit prompts for each field; an empty answer keeps the current value and
// "-" clears an optional one.
func (a *App) Edit(ctx context.Context, ref string) error {
	cur, err := a.taskService.Board().Resolve(ref)
	if err != nil {
		a.printError(err)
		return err
	}

	var in client.UpdateTask

	text, err := getSimpleText(a.reader, a.withDefault("Task text", cur.Text), a.out)
	if err != nil {
		return err
	}
	if text != "" && text != cur.Text {
		in.Text = &text
	}

	current := ""
	if cur.Deadline != nil {
		current = cur.Deadline.In(a.loc).Format(models.DeadlineLayout)
	}
	line, err := getSimpleText(a.reader, a.withDefault(deadlinePrompt+", - to clear", current), a.out)
	if err != nil {
		return err
	}
	switch line {
	case "":
	case clearMark:
		in.ClearDeadline = cur.Deadline != nil
	default:
		d, err := models.ParseDeadline(line, a.loc)
		if err != nil {
			a.printError(err)
			return err
		}
		in.Deadline = d
	}

	line, err = getSimpleText(a.reader, a.withDefault(repeatPrompt+", - to clear", joinDays(cur.RepeatDays)), a.out)
	if err != nil {
		return err
	}
	switch line {
	case "":
	case clearMark:
		none := []string{}
		in.RepeatDays = &none
	default:
		days, err := ParseWeekdays(line)
		if err != nil {
			a.printError(err)
			return err
		}
		in.RepeatDays = &days
	}

	if in.Text == nil && in.Deadline == nil && !in.ClearDeadline && in.RepeatDays == nil {
		a.printf("Nothing to change\n")
		return nil
	}

	if _, err := a.taskService.Edit(ctx, cur.ID, in); err != nil {
		a.printError(err)
		return err
	}
	a.printf("Updated\n")
	return a.List(ctx)
}

func (a *App) Delete(ctx context.Context, ref string) error {
	t, err := a.taskService.Delete(ctx, ref)
	if err != nil {
		a.printError(err)
		return err
	}
	a.printf("Deleted: %s\n", t.Text)
	return a.List(ctx)
}

// Stats prints the server-side performance figures.
func (a *App) Stats(ctx context.Context) error {
	p, err := a.taskService.Stats(ctx)
	if err != nil {
		a.printError(err)
		return err
	}
	fmt.Fprint(a.out, renderStats(p))
	return nil
}

func (a *App) withDefault(prompt, current string) string {
	if current == "" {
		return prompt
	}
	return fmt.Sprintf("%s [%s]", prompt, current)
}

func joinDays(days []string) string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = weekday.Abbrev(d)
	}
	return strings.Join(out, ",")
}
