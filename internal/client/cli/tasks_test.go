package cli

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/filter"
	"github.com/dmitrijs2005/taskboard/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBoard(t *testing.T, ta *testApp) string {
	t.Helper()
	id := ta.signIn(t)
	ta.fake.Seed(id, models.Task{Title: "Write docs", Status: models.StatusTodo, Priority: models.PriorityLow})
	ta.fake.Seed(id, models.Task{Title: "Report", Status: models.StatusDone, Priority: models.PriorityHigh})
	ta.fake.Seed(id, models.Task{Title: "Fix bug", Status: models.StatusInProgress, Priority: models.PriorityHigh})
	return id
}

func findTask(t *testing.T, ta *testApp, title string) (models.Task, bool) {
	t.Helper()
	all, err := ta.loadTasks(context.Background())
	require.NoError(t, err)
	for _, task := range all {
		if task.Title == title {
			return task, true
		}
	}
	return models.Task{}, false
}

func TestParseListArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    filter.Criteria
		wantErr string
	}{
		{name: "no args", want: filter.Criteria{Status: common.FilterAll, Priority: common.FilterAll}},
		{name: "text", args: []string{"weekly", "report"},
			want: filter.Criteria{Query: "weekly report", Status: common.FilterAll, Priority: common.FilterAll}},
		{name: "filters around text", args: []string{"-s", "done", "report", "-p", "high"},
			want: filter.Criteria{Query: "report", Status: "done", Priority: "high"}},
		{name: "explicit all", args: []string{"-s", "all"},
			want: filter.Criteria{Status: common.FilterAll, Priority: common.FilterAll}},
		{name: "unknown status", args: []string{"-s", "later"}, wantErr: `unknown status "later"`},
		{name: "unknown priority", args: []string{"-p", "urgent"}, wantErr: `unknown priority "urgent"`},
		{name: "missing value", args: []string{"-p"}, wantErr: "-p needs a value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseListArgs(tt.args)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("criteria mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestList_StatusFilter(t *testing.T) {
	ta := newTestApp(t)
	seedBoard(t, ta)

	require.NoError(t, ta.List(context.Background(), []string{"-s", "done"}))

	out := ta.buf.String()
	assert.Contains(t, out, "Report")
	assert.NotContains(t, out, "Fix bug")
	assert.NotContains(t, out, "Write docs")
	assert.Contains(t, out, "1 of 3 tasks")
	require.Len(t, ta.shown, 1)
	assert.Equal(t, "Report", ta.shown[0].Title)
}

func TestList_SearchIsCaseInsensitive(t *testing.T) {
	ta := newTestApp(t)
	seedBoard(t, ta)

	require.NoError(t, ta.List(context.Background(), []string{"FIX"}))
	assert.Contains(t, ta.buf.String(), "Fix bug")
	assert.Contains(t, ta.buf.String(), "1 of 3 tasks")
}

func TestList_ServedFromCache(t *testing.T) {
	ta := newTestApp(t)
	seedBoard(t, ta)

	require.NoError(t, ta.List(context.Background(), nil))
	require.NoError(t, ta.List(context.Background(), []string{"-p", "high"}))
	assert.Equal(t, 1, ta.fake.Calls("ListTasks"))
}

func TestList_Empty(t *testing.T) {
	ta := newTestApp(t)
	ta.signIn(t)

	require.NoError(t, ta.List(context.Background(), nil))
	assert.Contains(t, ta.buf.String(), "No tasks found")
}

func TestAdd_CreatesTask(t *testing.T) {
	ta := newTestApp(t)
	ta.signIn(t)
	ta.input("Write report", "Quarterly numbers", "", "", "high", "2025-03-01")

	require.NoError(t, ta.Add(context.Background()))
	assert.Equal(t, "Task created successfully", lastTitle(t, ta.rec))

	task, ok := findTask(t, ta, "Write report")
	require.True(t, ok)
	assert.Equal(t, "Quarterly numbers", task.DescriptionText())
	assert.Equal(t, models.StatusTodo, task.Status)
	assert.Equal(t, models.PriorityHigh, task.Priority)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *task.DueDate)
}

func TestAdd_InvalidTitleIsRejected(t *testing.T) {
	ta := newTestApp(t)
	ta.signIn(t)
	ta.input("   ", "", "", "", "")

	err := ta.Add(context.Background())
	require.EqualError(t, err, "Title is required")
	assert.Empty(t, ta.rec.All())
	assert.Zero(t, ta.fake.Calls("CreateTask"))
}

func TestAdd_UnknownPriorityIsRejected(t *testing.T) {
	ta := newTestApp(t)
	ta.signIn(t)
	ta.input("Write report", "", "", "urgent", "")

	err := ta.Add(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid priority")
	assert.Empty(t, ta.rec.All())
	assert.Zero(t, ta.fake.Calls("CreateTask"))
}

func TestAdd_InvalidDueDate(t *testing.T) {
	ta := newTestApp(t)
	ta.signIn(t)
	ta.input("Write report", "", "", "", "01/03/2025")

	err := ta.Add(context.Background())
	require.EqualError(t, err, "Due date must be in YYYY-MM-DD format")
	assert.Zero(t, ta.fake.Calls("CreateTask"))
	assert.Empty(t, ta.rec.All())
}

func TestSetStatus_ByRowNumber(t *testing.T) {
	ta := newTestApp(t)
	seedBoard(t, ta)
	require.NoError(t, ta.List(context.Background(), nil))

	// row 1 is the newest task
	require.NoError(t, ta.SetStatus(context.Background(), []string{"1", "done"}))
	assert.Equal(t, "Task updated successfully", lastTitle(t, ta.rec))

	task, ok := findTask(t, ta, "Fix bug")
	require.True(t, ok)
	assert.Equal(t, models.StatusDone, task.Status)
	assert.Equal(t, models.PriorityHigh, task.Priority)
}

func TestSetStatus_MutationRetiresRowNumbers(t *testing.T) {
	ta := newTestApp(t)
	seedBoard(t, ta)

	require.ErrorIs(t, ta.SetStatus(context.Background(), []string{"1", "done"}), errNoListing)

	require.NoError(t, ta.List(context.Background(), nil))
	require.NoError(t, ta.SetStatus(context.Background(), []string{"1", "done"}))
	assert.Empty(t, ta.shown)

	require.ErrorIs(t, ta.SetStatus(context.Background(), []string{"2", "done"}), errNoListing)
	assert.Equal(t, 1, ta.fake.Calls("UpdateTask"))

	require.NoError(t, ta.List(context.Background(), nil))
	assert.Len(t, ta.shown, 3)
}

func TestSetStatus_ByIDPrefix(t *testing.T) {
	ta := newTestApp(t)
	id := ta.signIn(t)
	ta.fake.Seed(id, models.Task{ID: "aaaa1111-0000", Title: "One", Status: models.StatusTodo, Priority: models.PriorityLow})
	ta.fake.Seed(id, models.Task{ID: "aaaa2222-0000", Title: "Two", Status: models.StatusTodo, Priority: models.PriorityLow})

	err := ta.SetStatus(context.Background(), []string{"aaaa", "done"})
	require.EqualError(t, err, `"aaaa" matches 2 tasks`)

	err = ta.SetStatus(context.Background(), []string{"zzzz", "done"})
	require.EqualError(t, err, `no task matches "zzzz"`)

	require.NoError(t, ta.SetStatus(context.Background(), []string{"aaaa2", "in_progress"}))
	task, ok := findTask(t, ta, "Two")
	require.True(t, ok)
	assert.Equal(t, models.StatusInProgress, task.Status)
}

func TestSetStatus_Usage(t *testing.T) {
	ta := newTestApp(t)
	ta.signIn(t)

	require.Error(t, ta.SetStatus(context.Background(), []string{"1"}))
	require.EqualError(t, ta.SetStatus(context.Background(), []string{"1", "later"}), `unknown status "later"`)
	assert.Zero(t, ta.fake.Calls("UpdateTask"))
}

func TestEdit_ChangesOnlyAnsweredFields(t *testing.T) {
	ta := newTestApp(t)
	id := ta.signIn(t)
	due := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	ta.fake.Seed(id, models.Task{Title: "Report", Status: models.StatusTodo, Priority: models.PriorityLow, DueDate: &due})
	require.NoError(t, ta.List(context.Background(), nil))

	// keep title, new description, keep status and priority, clear due date
	ta.input("", "Numbers for Q1", "", "", "-")
	require.NoError(t, ta.Edit(context.Background(), []string{"1"}))
	assert.Equal(t, "Task updated successfully", lastTitle(t, ta.rec))

	task, ok := findTask(t, ta, "Report")
	require.True(t, ok)
	assert.Equal(t, "Numbers for Q1", task.DescriptionText())
	assert.Equal(t, models.StatusTodo, task.Status)
	assert.Equal(t, models.PriorityLow, task.Priority)
	assert.Nil(t, task.DueDate)
}

func TestEdit_NothingToChange(t *testing.T) {
	ta := newTestApp(t)
	seedBoard(t, ta)
	require.NoError(t, ta.List(context.Background(), nil))

	ta.input("", "", "", "", "")
	require.NoError(t, ta.Edit(context.Background(), []string{"2"}))
	assert.Contains(t, ta.buf.String(), "Nothing to change")
	assert.Zero(t, ta.fake.Calls("UpdateTask"))
}

func TestEdit_InvalidStatusIsRejected(t *testing.T) {
	ta := newTestApp(t)
	seedBoard(t, ta)
	require.NoError(t, ta.List(context.Background(), nil))

	ta.input("", "", "later", "", "")
	err := ta.Edit(context.Background(), []string{"1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid status")
	assert.Empty(t, ta.rec.All())
	assert.Zero(t, ta.fake.Calls("UpdateTask"))
}

func TestDelete_Confirmed(t *testing.T) {
	ta := newTestApp(t)
	seedBoard(t, ta)
	require.NoError(t, ta.List(context.Background(), nil))

	ta.input("y")
	require.NoError(t, ta.Delete(context.Background(), []string{"2"}))
	assert.Equal(t, "Task deleted successfully", lastTitle(t, ta.rec))

	_, ok := findTask(t, ta, "Report")
	assert.False(t, ok)
}

func TestDelete_Cancelled(t *testing.T) {
	ta := newTestApp(t)
	seedBoard(t, ta)
	require.NoError(t, ta.List(context.Background(), nil))

	ta.input("n")
	require.NoError(t, ta.Delete(context.Background(), []string{"2"}))
	assert.Contains(t, ta.buf.String(), "Cancelled")
	assert.Zero(t, ta.fake.Calls("DeleteTask"))
}

func TestStats(t *testing.T) {
	ta := newTestApp(t)
	id := seedBoard(t, ta)
	ta.fake.Seed(id, models.Task{Title: "Ship", Status: models.StatusDone, Priority: models.PriorityMedium})

	require.NoError(t, ta.Stats(context.Background()))
	out := ta.buf.String()
	assert.Contains(t, out, "Completion")
	assert.Contains(t, out, "50%")
}
