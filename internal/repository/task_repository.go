package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finchworks/tasks-backend/internal/domain"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100

	defaultSortColumn = "created_at"
	defaultSortOrder  = "desc"
)

// sortColumns is the allow-list of sortable columns. Caller-supplied sort
// fields are mapped through it and never reach the query text directly;
// anything not listed falls back to the default.
var sortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"title":      "title",
}

// ListFilter carries the optional list parameters as the client sent them.
// Normalization (defaults, limit cap, allow-list mapping) happens inside
// List, so an out-of-range page or an unknown sort field is substituted, not
// rejected.
type ListFilter struct {
	Page      int
	Limit     int
	Completed *bool
	SortBy    string
	SortOrder string
}

// TaskRepository is the only component that reads or writes task rows.
type TaskRepository interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Task, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) error
	Replace(ctx context.Context, id uuid.UUID, title string, completed bool) (*domain.Task, error)
	SetCompleted(ctx context.Context, id uuid.UUID, completed bool) (*domain.Task, error)
	ToggleCompleted(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type gormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a GORM-backed task repository.
func NewGormTaskRepository(db *gorm.DB) TaskRepository {
	return &gormTaskRepository{db: db}
}

func (r *gormTaskRepository) List(ctx context.Context, filter ListFilter) ([]domain.Task, error) {
	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = defaultSortColumn
	}
	order := strings.ToLower(filter.SortOrder)
	if order != "asc" && order != "desc" {
		order = defaultSortOrder
	}

	page := filter.Page
	if page < 1 {
		page = defaultPage
	}
	limit := filter.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	q := r.db.WithContext(ctx).Model(&domain.Task{})
	if filter.Completed != nil {
		q = q.Where("completed = ?", *filter.Completed)
	}

	tasks := make([]domain.Task, 0, limit)
	result := q.Order(column + " " + order).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&tasks)
	if result.Error != nil {
		return nil, &domain.StoreError{Op: "list tasks", Err: result.Error}
	}
	return tasks, nil
}

func (r *gormTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	result := r.db.WithContext(ctx).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, &domain.StoreError{Op: "find task", Err: result.Error}
	}
	return &task, nil
}

func (r *gormTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if result := r.db.WithContext(ctx).Create(task); result.Error != nil {
		return &domain.StoreError{Op: "create task", Err: result.Error}
	}
	return nil
}

func (r *gormTaskRepository) Replace(ctx context.Context, id uuid.UUID, title string, completed bool) (*domain.Task, error) {
	return r.updateReturning(ctx, id, "replace task", map[string]any{
		"title":     title,
		"completed": completed,
	})
}

func (r *gormTaskRepository) SetCompleted(ctx context.Context, id uuid.UUID, completed bool) (*domain.Task, error) {
	return r.updateReturning(ctx, id, "set completed", map[string]any{
		"completed": completed,
	})
}

// ToggleCompleted flips the flag in a single conditional update rather than a
// read-then-write pair, so two concurrent toggles on the same id cannot lose
// an update.
func (r *gormTaskRepository) ToggleCompleted(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return r.updateReturning(ctx, id, "toggle completed", map[string]any{
		"completed": gorm.Expr("NOT completed"),
	})
}

// updateReturning applies the given column updates to one row and scans the
// updated row back via RETURNING. GORM stamps updated_at as part of the same
// statement. Zero rows affected means the id matched nothing.
func (r *gormTaskRepository) updateReturning(ctx context.Context, id uuid.UUID, op string, updates map[string]any) (*domain.Task, error) {
	var task domain.Task
	result := r.db.WithContext(ctx).
		Model(&task).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return nil, &domain.StoreError{Op: op, Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrTaskNotFound
	}
	return &task, nil
}

func (r *gormTaskRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ?", id)
	if result.Error != nil {
		return false, &domain.StoreError{Op: "delete task", Err: result.Error}
	}
	return result.RowsAffected > 0, nil
}
