package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/models"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskboard/internal/validation"
	"github.com/google/uuid"
)

// TaskService runs the owner-scoped task operations. userID always comes
// from the verified access token, never from the request body.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

// checkTaskID maps ids that cannot name a row to common.ErrorNotFound.
func checkTaskID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrorNotFound
	}
	return nil
}

func (s *TaskService) List(ctx context.Context, userID string) ([]models.Task, error) {
	return s.repomanager.Tasks(s.db).List(ctx, userID)
}

func (s *TaskService) Create(ctx context.Context, userID string, in models.TaskInput) (*models.Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validation.Task(in).Err(); err != nil {
		return nil, err
	}
	return s.repomanager.Tasks(s.db).Create(ctx, userID, in)
}

func (s *TaskService) Update(ctx context.Context, userID, id string, patch models.TaskPatch) (*models.Task, error) {
	if err := checkTaskID(id); err != nil {
		return nil, err
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		patch.Title = &title
	}
	if err := validation.TaskPatch(patch).Err(); err != nil {
		return nil, err
	}
	return s.repomanager.Tasks(s.db).Update(ctx, userID, id, patch)
}

func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	if err := checkTaskID(id); err != nil {
		return err
	}
	return s.repomanager.Tasks(s.db).Delete(ctx, userID, id)
}
