package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finchworks/tasks-backend/internal/domain"
	"github.com/finchworks/tasks-backend/internal/repository"
)

// TaskResponse is the wire representation of a task. Timestamps are rendered
// as RFC 3339 strings so the JSON shape is stable regardless of store driver.
type TaskResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// TaskService holds the business operations over tasks. Inputs arrive already
// validated; the service translates them into repository calls and maps rows
// to responses. It never touches the HTTP layer.
type TaskService interface {
	ListTasks(ctx context.Context, filter repository.ListFilter) ([]TaskResponse, error)
	GetTask(ctx context.Context, id uuid.UUID) (*TaskResponse, error)
	CreateTask(ctx context.Context, title string) (*TaskResponse, error)
	ReplaceTask(ctx context.Context, id uuid.UUID, title string, completed bool) (*TaskResponse, error)
	PatchCompleted(ctx context.Context, id uuid.UUID, completed *bool) (*TaskResponse, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
}

type taskService struct {
	repo repository.TaskRepository
}

// NewTaskService creates the service with its repository dependency.
func NewTaskService(repo repository.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

func (s *taskService) ListTasks(ctx context.Context, filter repository.ListFilter) ([]TaskResponse, error) {
	tasks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, toResponse(&tasks[i]))
	}
	return responses, nil
}

func (s *taskService) GetTask(ctx context.Context, id uuid.UUID) (*TaskResponse, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(task)
	return &resp, nil
}

func (s *taskService) CreateTask(ctx context.Context, title string) (*TaskResponse, error) {
	task := &domain.Task{Title: title, Completed: false}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}
	resp := toResponse(task)
	return &resp, nil
}

func (s *taskService) ReplaceTask(ctx context.Context, id uuid.UUID, title string, completed bool) (*TaskResponse, error) {
	task, err := s.repo.Replace(ctx, id, title, completed)
	if err != nil {
		return nil, err
	}
	resp := toResponse(task)
	return &resp, nil
}

// PatchCompleted sets the flag when the caller supplied one and toggles it
// otherwise.
func (s *taskService) PatchCompleted(ctx context.Context, id uuid.UUID, completed *bool) (*TaskResponse, error) {
	var task *domain.Task
	var err error
	if completed != nil {
		task, err = s.repo.SetCompleted(ctx, id, *completed)
	} else {
		task, err = s.repo.ToggleCompleted(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	resp := toResponse(task)
	return &resp, nil
}

// DeleteTask reports not-found when nothing was removed so the handler can
// distinguish 204 from 404.
func (s *taskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrTaskNotFound
	}
	return nil
}

func toResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:        task.ID.String(),
		Title:     task.Title,
		Completed: task.Completed,
		CreatedAt: task.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: task.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
