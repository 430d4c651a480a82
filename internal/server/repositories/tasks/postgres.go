package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/dbx"
	"github.com/dmitrijs2005/taskboard/internal/models"
)

const taskColumns = `id, user_id, title, description, status, priority, due_date, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var (
		t           models.Task
		description sql.NullString
		dueDate     sql.NullTime
	)
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &description, &t.Status, &t.Priority,
		&dueDate, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		t.Description = &description.String
	}
	if dueDate.Valid {
		d := dueDate.Time.UTC()
		t.DueDate = &d
	}
	return &t, nil
}

// nullableText maps a nil or empty string to SQL NULL.
func nullableText(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		 WHERE user_id = $1
		 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tasks, nil
}

func (r *PostgresRepository) Create(ctx context.Context, userID string, in models.TaskInput) (*models.Task, error) {
	query := `INSERT INTO tasks (user_id, title, description, status, priority, due_date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING ` + taskColumns

	var due sql.NullTime
	if in.DueDate != nil {
		due = sql.NullTime{Time: *in.DueDate, Valid: true}
	}

	t, err := scanTask(r.db.QueryRowContext(ctx, query,
		userID, in.Title, nullableText(in.Description), string(in.Status), string(in.Priority), due))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

// setList accumulates "column = $n" assignments of an UPDATE.
type setList struct {
	cols []string
	args []any
}

func (s *setList) add(col string, v any) {
	s.args = append(s.args, v)
	s.cols = append(s.cols, fmt.Sprintf("%s = $%d", col, len(s.args)))
}

func (r *PostgresRepository) Update(ctx context.Context, userID, id string, patch models.TaskPatch) (*models.Task, error) {
	var set setList
	if patch.Title != nil {
		set.add("title", *patch.Title)
	}
	if patch.Description != nil {
		set.add("description", nullableText(patch.Description))
	}
	if patch.Status != nil {
		set.add("status", string(*patch.Status))
	}
	if patch.Priority != nil {
		set.add("priority", string(*patch.Priority))
	}
	switch {
	case patch.ClearDueDate:
		set.add("due_date", sql.NullTime{})
	case patch.DueDate != nil:
		set.add("due_date", sql.NullTime{Time: *patch.DueDate, Valid: true})
	}
	set.cols = append(set.cols, "updated_at = now()")

	args := append(set.args, id, userID)
	query := fmt.Sprintf(`UPDATE tasks SET %s
		 WHERE id = $%d AND user_id = $%d
		 RETURNING %s`, strings.Join(set.cols, ", "), len(args)-1, len(args), taskColumns)

	t, err := scanTask(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM tasks
		 WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}
