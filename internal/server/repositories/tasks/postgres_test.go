package tasks

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cols = []string{"id", "user_id", "title", "description", "status", "priority", "due_date", "created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewPostgresRepository(db), mock
}

func ptr[T any](v T) *T { return &v }

func TestList_OrdersByCreatedAtAndScansNulls(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	due := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)^SELECT id, user_id, title, description, status, priority, due_date, created_at, updated_at FROM tasks WHERE user_id = \$1 ORDER BY created_at DESC$`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("t2", "u1", "Report", "weekly", "todo", "high", due, created.Add(time.Hour), created.Add(time.Hour)).
			AddRow("t1", "u1", "Groceries", nil, "done", "low", nil, created, created))

	got, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)

	want := []models.Task{
		{ID: "t2", UserID: "u1", Title: "Report", Description: ptr("weekly"), Status: models.StatusTodo,
			Priority: models.PriorityHigh, DueDate: &due, CreatedAt: created.Add(time.Hour), UpdatedAt: created.Add(time.Hour)},
		{ID: "t1", UserID: "u1", Title: "Groceries", Status: models.StatusDone,
			Priority: models.PriorityLow, CreatedAt: created, UpdatedAt: created},
	}
	assert.Empty(t, cmp.Diff(want, got))
}

func TestList_EmptyIsNonNil(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM tasks`).WithArgs("u1").WillReturnRows(sqlmock.NewRows(cols))

	got, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestList_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM tasks`).WithArgs("u1").WillReturnError(errors.New("boom"))

	_, err := repo.List(context.Background(), "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`(?s)^INSERT INTO tasks \(user_id, title, description, status, priority, due_date\) VALUES \(\$1, \$2, \$3, \$4, \$5, \$6\) RETURNING id, user_id`).
		WithArgs("u1", "Report", nil, "todo", "medium", nil).
		WillReturnRows(sqlmock.NewRows(cols).AddRow("t1", "u1", "Report", nil, "todo", "medium", nil, now, now))

	got, err := repo.Create(context.Background(), "u1", models.TaskInput{
		Title: "Report", Description: ptr(""), Status: models.StatusTodo, Priority: models.PriorityMedium,
	})
	require.NoError(t, err)
	assert.Equal(t, "t1", got.ID)
	assert.Nil(t, got.Description)
	assert.Nil(t, got.DueDate)
}

func TestUpdate_OnlyStatus(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`(?s)^UPDATE tasks SET status = \$1, updated_at = now\(\) WHERE id = \$2 AND user_id = \$3 RETURNING id`).
		WithArgs("done", "t1", "u1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("t1", "u1", "Report", nil, "done", "high", nil, now, now))

	got, err := repo.Update(context.Background(), "u1", "t1", models.TaskPatch{Status: ptr(models.StatusDone)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, got.Status)
}

func TestUpdate_ClearsDescriptionAndDueDate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`(?s)^UPDATE tasks SET title = \$1, description = \$2, due_date = \$3, updated_at = now\(\) WHERE id = \$4 AND user_id = \$5`).
		WithArgs("New", nil, nil, "t1", "u1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("t1", "u1", "New", nil, "todo", "low", nil, now, now))

	_, err := repo.Update(context.Background(), "u1", "t1", models.TaskPatch{
		Title: ptr("New"), Description: ptr(""), ClearDueDate: true,
	})
	require.NoError(t, err)
}

func TestUpdate_NotOwnedIsNotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`^UPDATE tasks`).
		WithArgs("low", "t1", "intruder").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), "intruder", "t1", models.TaskPatch{Priority: ptr(models.PriorityLow)})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	q := `(?s)^DELETE FROM tasks WHERE id = \$1 AND user_id = \$2$`

	mock.ExpectExec(q).WithArgs("t1", "u1").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "u1", "t1"))

	mock.ExpectExec(q).WithArgs("t1", "u1").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "u1", "t1"), common.ErrorNotFound)

	mock.ExpectExec(q).WithArgs("t1", "u1").WillReturnError(errors.New("boom"))
	assert.Error(t, repo.Delete(context.Background(), "u1", "t1"))
}
