// Package filter narrows an in-memory task list by free-text search, status
// and priority, and summarises it for the dashboard counters. Everything here
// is pure: no I/O, inputs are never modified.
package filter

import (
	"math"
	"strings"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/models"
)

// Criteria selects tasks. Status and Priority accept common.FilterAll (or
// "") to disable the constraint.
type Criteria struct {
	Query    string
	Status   string
	Priority string
}

// Matches reports whether t satisfies every predicate of c.
func (c Criteria) Matches(t models.Task) bool {
	return matchesQuery(t, strings.ToLower(c.Query)) &&
		matchesExact(c.Status, string(t.Status)) &&
		matchesExact(c.Priority, string(t.Priority))
}

// Apply returns the tasks matching c in their original order.
func Apply(tasks []models.Task, c Criteria) []models.Task {
	q := strings.ToLower(c.Query)
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if matchesQuery(t, q) && matchesExact(c.Status, string(t.Status)) && matchesExact(c.Priority, string(t.Priority)) {
			out = append(out, t)
		}
	}
	return out
}

func matchesQuery(t models.Task, lowered string) bool {
	if lowered == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), lowered) ||
		strings.Contains(strings.ToLower(t.DescriptionText()), lowered)
}

func matchesExact(filter, value string) bool {
	return filter == "" || filter == common.FilterAll || filter == value
}

// Stats are the dashboard counters of a task list.
type Stats struct {
	Total          int
	Todo           int
	InProgress     int
	Done           int
	CompletionRate int // percent, rounded
}

// Summarize counts tasks per status. CompletionRate is 0 for an empty list.
func Summarize(tasks []models.Task) Stats {
	var s Stats
	s.Total = len(tasks)
	for _, t := range tasks {
		switch t.Status {
		case models.StatusTodo:
			s.Todo++
		case models.StatusInProgress:
			s.InProgress++
		case models.StatusDone:
			s.Done++
		}
	}
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Done) / float64(s.Total) * 100))
	}
	return s
}
