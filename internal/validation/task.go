package validation

import (
	"time"

	"github.com/dmitrijs2005/taskboard/internal/models"
)

var (
	TaskTitle = StringRule{
		Field: "title", Required: true, Trim: true, Min: 1, Max: 200,
		RequiredMsg: "Title is required",
		MinMsg:      "Title is required",
		MaxMsg:      "Title must be less than 200 characters",
	}
	TaskDescription = StringRule{
		Field: "description", Max: 1000,
		MaxMsg: "Description must be less than 1000 characters",
	}
	TaskStatus   = EnumRule{Field: "status", Allowed: statusNames()}
	TaskPriority = EnumRule{Field: "priority", Allowed: priorityNames()}
)

func statusNames() []string {
	out := make([]string, 0, len(models.TaskStatuses))
	for _, s := range models.TaskStatuses {
		out = append(out, string(s))
	}
	return out
}

func priorityNames() []string {
	out := make([]string, 0, len(models.Priorities))
	for _, p := range models.Priorities {
		out = append(out, string(p))
	}
	return out
}

// Task validates the fields of a new task.
func Task(in models.TaskInput) Errors {
	var errs Errors
	errs.add(TaskTitle.Check(&in.Title))
	errs.add(TaskDescription.Check(in.Description))
	errs.add(TaskStatus.Check(string(in.Status)))
	errs.add(TaskPriority.Check(string(in.Priority)))
	return errs
}

// TaskPatch validates only the fields present in p.
func TaskPatch(p models.TaskPatch) Errors {
	var errs Errors
	if p.Title != nil {
		errs.add(TaskTitle.Check(p.Title))
	}
	errs.add(TaskDescription.Check(p.Description))
	if p.Status != nil {
		errs.add(TaskStatus.Check(string(*p.Status)))
	}
	if p.Priority != nil {
		errs.add(TaskPriority.Check(string(*p.Priority)))
	}
	if p.DueDate != nil && p.ClearDueDate {
		errs = append(errs, FieldError{Field: "due_date", Message: "Due date cannot be set and cleared at once"})
	}
	return errs
}

// DueDate parses raw as a YYYY-MM-DD date. An empty string means no date.
func DueDate(raw string) (*time.Time, Errors) {
	if raw == "" {
		return nil, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, Errors{{Field: "due_date", Message: "Due date must be in YYYY-MM-DD format"}}
	}
	return &d, nil
}
