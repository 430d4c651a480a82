package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/taskboard/internal/client/cache"
	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/filter"
	"github.com/dmitrijs2005/taskboard/internal/models"
	"github.com/dmitrijs2005/taskboard/internal/validation"
)

var getEdit = GetEdit
var getMultiline = GetMultiline

const shortIDLen = 8

// parseListArgs reads "[text...] [-s status] [-p priority]".
func parseListArgs(args []string) (filter.Criteria, error) {
	c := filter.Criteria{Status: common.FilterAll, Priority: common.FilterAll}
	var words []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-s", "-p":
			if i+1 >= len(args) {
				return c, fmt.Errorf("%s needs a value", args[i])
			}
			v := args[i+1]
			i++
			if args[i-1] == "-s" {
				if v != common.FilterAll && !models.TaskStatus(v).Valid() {
					return c, fmt.Errorf("unknown status %q", v)
				}
				c.Status = v
			} else {
				if v != common.FilterAll && !models.Priority(v).Valid() {
					return c, fmt.Errorf("unknown priority %q", v)
				}
				c.Priority = v
			}
		default:
			words = append(words, args[i])
		}
	}
	c.Query = strings.Join(words, " ")
	return c, nil
}

func (a *App) loadTasks(ctx context.Context) ([]models.Task, error) {
	snap, err := a.tasks.List(ctx, a.owner())
	if errors.Is(err, cache.ErrSuperseded) {
		return nil, errors.New("session changed while loading tasks")
	}
	if err != nil {
		return nil, err
	}
	return snap.Data, nil
}

// List prints the signed-in user's tasks narrowed by args.
func (a *App) List(ctx context.Context, args []string) error {
	crit, err := parseListArgs(args)
	if err != nil {
		return err
	}
	all, err := a.loadTasks(ctx)
	if err != nil {
		return err
	}

	rows := filter.Apply(all, crit)
	a.mu.Lock()
	a.shown = rows
	a.mu.Unlock()

	if len(rows) == 0 {
		fmt.Fprintln(a.out, "No tasks found")
		return nil
	}

	t := newTable(a.out, "#", "ID", "TITLE", "STATUS", "PRIORITY", "DUE")
	for i, task := range rows {
		t.AddRow(strconv.Itoa(i+1), shortID(task.ID), task.Title, string(task.Status), string(task.Priority), formatDue(task))
	}
	if err := t.Render(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d of %d tasks\n", len(rows), len(all))
	return nil
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

func formatDue(t models.Task) string {
	if t.DueDate == nil {
		return "-"
	}
	return t.DueDate.Format(models.DateLayout)
}

var errNoListing = errors.New(`no current listing, run "list" to number the tasks`)

// resolveTask finds a task by its row number in the last list or by an id
// prefix. A change to the tasks forgets the list.
func (a *App) resolveTask(ctx context.Context, ref string) (models.Task, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		a.mu.Lock()
		shown := a.shown
		a.mu.Unlock()
		if len(shown) == 0 {
			return models.Task{}, errNoListing
		}
		if n >= 1 && n <= len(shown) {
			return shown[n-1], nil
		}
	}

	all, err := a.loadTasks(ctx)
	if err != nil {
		return models.Task{}, err
	}
	var found []models.Task
	for _, t := range all {
		if strings.HasPrefix(t.ID, ref) {
			found = append(found, t)
		}
	}
	switch len(found) {
	case 0:
		return models.Task{}, fmt.Errorf("no task matches %q", ref)
	case 1:
		return found[0], nil
	}
	return models.Task{}, fmt.Errorf("%q matches %d tasks", ref, len(found))
}

func oneArg(args []string, usage string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("usage: " + usage)
	}
	return args[0], nil
}

// Add prompts for a new task. Invalid answers are returned as an error
// before anything is sent; server failures are reported by the notifier.
func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	desc, err := getMultiline(a.reader, "Description (optional)", a.out)
	if err != nil {
		return err
	}
	status, _, err := getEdit(a.reader, "Status (todo, in_progress, done)", string(models.StatusTodo), a.out)
	if err != nil {
		return err
	}
	priority, _, err := getEdit(a.reader, "Priority (low, medium, high)", string(models.PriorityMedium), a.out)
	if err != nil {
		return err
	}
	due, err := getSimpleText(a.reader, "Due date YYYY-MM-DD (optional)", a.out)
	if err != nil {
		return err
	}

	in := models.TaskInput{
		Title:    title,
		Status:   models.TaskStatus(status),
		Priority: models.Priority(priority),
	}
	if desc != "" {
		in.Description = &desc
	}
	d, verrs := validation.DueDate(due)
	if verrs != nil {
		return errors.New(joinMessages(verrs))
	}
	in.DueDate = d
	if verrs := validation.Task(in); len(verrs) > 0 {
		return errors.New(joinMessages(verrs))
	}

	task, err := a.tasks.Create(ctx, a.owner(), in)
	if err != nil {
		// already shown by the notifier
		return nil
	}
	a.logger.Debug(ctx, "task created", "task_id", task.ID)
	return nil
}

// Edit prompts for new values of every field of a task. An empty answer
// keeps a field, "-" clears the description or the due date.
func (a *App) Edit(ctx context.Context, args []string) error {
	ref, err := oneArg(args, "edit <n|id>")
	if err != nil {
		return err
	}
	task, err := a.resolveTask(ctx, ref)
	if err != nil {
		return err
	}

	var patch models.TaskPatch

	title, changed, err := getEdit(a.reader, "Title", task.Title, a.out)
	if err != nil {
		return err
	}
	if changed {
		patch.Title = &title
	}

	desc, changed, err := getEdit(a.reader, "Description", task.DescriptionText(), a.out)
	if err != nil {
		return err
	}
	if changed {
		patch.Description = &desc
	}

	status, changed, err := getEdit(a.reader, "Status", string(task.Status), a.out)
	if err != nil {
		return err
	}
	if changed {
		s := models.TaskStatus(status)
		patch.Status = &s
	}

	priority, changed, err := getEdit(a.reader, "Priority", string(task.Priority), a.out)
	if err != nil {
		return err
	}
	if changed {
		p := models.Priority(priority)
		patch.Priority = &p
	}

	due, changed, err := getEdit(a.reader, "Due date", dueText(task), a.out)
	if err != nil {
		return err
	}
	if changed {
		if due == "" {
			patch.ClearDueDate = true
		} else {
			d, verrs := validation.DueDate(due)
			if verrs != nil {
				return errors.New(joinMessages(verrs))
			}
			patch.DueDate = d
		}
	}

	if patch.IsEmpty() {
		fmt.Fprintln(a.out, "Nothing to change")
		return nil
	}
	if verrs := validation.TaskPatch(patch); len(verrs) > 0 {
		return errors.New(joinMessages(verrs))
	}
	_, _ = a.tasks.Update(ctx, a.owner(), task.ID, patch)
	return nil
}

func dueText(t models.Task) string {
	if t.DueDate == nil {
		return ""
	}
	return t.DueDate.Format(models.DateLayout)
}

// SetStatus moves a task: "status <n|id> <status>".
func (a *App) SetStatus(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: status <n|id> <todo|in_progress|done>")
	}
	status := models.TaskStatus(args[1])
	if !status.Valid() {
		return fmt.Errorf("unknown status %q", args[1])
	}
	task, err := a.resolveTask(ctx, args[0])
	if err != nil {
		return err
	}
	_, _ = a.tasks.Update(ctx, a.owner(), task.ID, models.TaskPatch{Status: &status})
	return nil
}

// Delete removes a task after a confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	ref, err := oneArg(args, "delete <n|id>")
	if err != nil {
		return err
	}
	task, err := a.resolveTask(ctx, ref)
	if err != nil {
		return err
	}

	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete %q? (y/N)", task.Title), a.out)
	if err != nil {
		return err
	}
	if ans := strings.ToLower(answer); ans != "y" && ans != "yes" {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	_ = a.tasks.Delete(ctx, a.owner(), task.ID)
	return nil
}

// Stats prints the dashboard counters.
func (a *App) Stats(ctx context.Context) error {
	all, err := a.loadTasks(ctx)
	if err != nil {
		return err
	}
	s := filter.Summarize(all)

	t := newTable(a.out, "METRIC", "VALUE")
	t.AddRow("Total", strconv.Itoa(s.Total))
	t.AddRow("To do", strconv.Itoa(s.Todo))
	t.AddRow("In progress", strconv.Itoa(s.InProgress))
	t.AddRow("Done", strconv.Itoa(s.Done))
	t.AddRow("Completion", fmt.Sprintf("%d%%", s.CompletionRate))
	return t.Render()
}
