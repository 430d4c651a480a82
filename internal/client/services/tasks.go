package services

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/client/cache"
	"github.com/dmitrijs2005/taskboard/internal/client/client"
	"github.com/dmitrijs2005/taskboard/internal/client/notify"
	"github.com/dmitrijs2005/taskboard/internal/models"
	"github.com/dmitrijs2005/taskboard/internal/validation"
)

// TaskService is the task repository hook.
//
// List and Peek read the (tasks, owner) cache entry; an empty owner disables
// them. Create, Update and Delete never write the cache: a success
// invalidates the entry so the next List fetches again. Without an owner
// they return nil values and contact nobody.
type TaskService interface {
	List(ctx context.Context, owner string) (cache.Snapshot[[]models.Task], error)
	Peek(owner string) cache.Snapshot[[]models.Task]
	Create(ctx context.Context, owner string, in models.TaskInput) (*models.Task, error)
	Update(ctx context.Context, owner, id string, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, owner, id string) error
}

type taskService struct {
	client   client.Client
	store    *cache.Store
	notifier notify.Notifier
}

func NewTaskService(c client.Client, store *cache.Store, n notify.Notifier) TaskService {
	return &taskService{client: c, store: store, notifier: n}
}

func tasksKey(owner string) cache.Key {
	return cache.Key{Kind: cache.KindTasks, Owner: owner}
}

func (s *taskService) List(ctx context.Context, owner string) (cache.Snapshot[[]models.Task], error) {
	return cache.Fetch(ctx, s.store, tasksKey(owner), s.client.ListTasks)
}

func (s *taskService) Peek(owner string) cache.Snapshot[[]models.Task] {
	return cache.Peek[[]models.Task](s.store, tasksKey(owner))
}

func (s *taskService) Create(ctx context.Context, owner string, in models.TaskInput) (*models.Task, error) {
	var out *models.Task
	err := mutation(ctx, s.store, s.notifier, tasksKey(owner), "Task created successfully", "Failed to create task",
		func() error {
			if err := validation.Task(in).Err(); err != nil {
				return err
			}
			t, err := s.client.CreateTask(ctx, in)
			out = t
			return err
		})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *taskService) Update(ctx context.Context, owner, id string, patch models.TaskPatch) (*models.Task, error) {
	var out *models.Task
	err := mutation(ctx, s.store, s.notifier, tasksKey(owner), "Task updated successfully", "Failed to update task",
		func() error {
			if err := validation.TaskPatch(patch).Err(); err != nil {
				return err
			}
			t, err := s.client.UpdateTask(ctx, id, patch)
			out = t
			return err
		})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *taskService) Delete(ctx context.Context, owner, id string) error {
	return mutation(ctx, s.store, s.notifier, tasksKey(owner), "Task deleted successfully", "Failed to delete task",
		func() error {
			return s.client.DeleteTask(ctx, id)
		})
}
