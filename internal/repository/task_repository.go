package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskboard/internal/model"
	"taskboard/internal/paginate"
	"taskboard/internal/taskquery"
)

// TaskQuery carries the list parameters as received from the request.
type TaskQuery struct {
	CategoryID string
	Priority   string
	Completed  string
	Search     string
	Sort       string
	Page       string
}

// TaskRepository handles CRUD for tasks. Every single-task lookup is scoped to
// the owner.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// Save writes every mutable column of task. CreatedDate is never updated.
func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Preload("Category").
		Where("user_id = ? AND id = ?", userID, taskID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ForUser returns the base query of all tasks owned by userID.
func (r *TaskRepository) ForUser(ctx context.Context, userID uint) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Task{}).Where("user_id = ?", userID)
}

// Page filters, sorts and slices the owner's tasks.
func (r *TaskRepository) Page(ctx context.Context, userID uint, q TaskQuery, perPage int) (paginate.Page[model.Task], error) {
	filtered := taskquery.Filter(r.ForUser(ctx, userID), q.CategoryID, q.Priority, q.Completed, q.Search)

	var count int64
	if err := filtered.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return paginate.Page[model.Task]{}, fmt.Errorf("count tasks: %w", err)
	}

	number := paginate.Number(q.Page, int(count), perPage)
	var tasks []model.Task
	err := taskquery.Sort(filtered, q.Sort).
		Preload("Category").
		Offset(paginate.Offset(number, perPage)).
		Limit(perPage).
		Find(&tasks).Error
	if err != nil {
		return paginate.Page[model.Task]{}, fmt.Errorf("list tasks: %w", err)
	}

	return paginate.Page[model.Task]{
		Items:    tasks,
		Number:   number,
		NumPages: paginate.NumPagesFor(int(count), perPage),
		Count:    int(count),
		PerPage:  perPage,
	}, nil
}

// ListOpen returns the owner's incomplete tasks, soonest due first.
func (r *TaskRepository) ListOpen(ctx context.Context, userID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Preload("Category").
		Where("user_id = ? AND completed = ?", userID, false).
		Order("due_date IS NULL, due_date ASC, created_date DESC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list open tasks: %w", err)
	}
	return tasks, nil
}

// Delete removes a task owned by userID.
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).Delete(&model.Task{})
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
