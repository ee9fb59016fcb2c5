package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/paginate"
	"taskboard/internal/repository"
)

// TasksPerPage is the fixed list page size.
const TasksPerPage = 10

// TaskInput represents the editable fields of a task.
type TaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	CategoryID  *uint
	Priority    model.Priority
}

// TaskService wraps task-related business logic. Every operation is scoped to
// the given owner; tasks of other users look missing.
type TaskService struct {
	taskRepo     *repository.TaskRepository
	categoryRepo *repository.CategoryRepository
}

func NewTaskService(taskRepo *repository.TaskRepository, categoryRepo *repository.CategoryRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, categoryRepo: categoryRepo}
}

// CreateTask stores a new task owned by user.
func (s *TaskService) CreateTask(ctx context.Context, user *model.User, input TaskInput) (*model.Task, error) {
	task := model.Task{UserID: user.ID}
	if err := s.apply(ctx, &task, input); err != nil {
		return nil, err
	}
	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask overwrites the editable fields of one of user's tasks.
func (s *TaskService) UpdateTask(ctx context.Context, user *model.User, taskID uint, input TaskInput) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, user.ID, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, task, input); err != nil {
		return nil, err
	}
	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, user *model.User, taskID uint) (*model.Task, error) {
	return s.taskRepo.FindByID(ctx, user.ID, taskID)
}

// ListTasks returns one page of user's tasks narrowed and ordered by q.
func (s *TaskService) ListTasks(ctx context.Context, user *model.User, q repository.TaskQuery) (paginate.Page[model.Task], error) {
	return s.taskRepo.Page(ctx, user.ID, q, TasksPerPage)
}

// ToggleComplete flips the completion flag and returns the updated task.
func (s *TaskService) ToggleComplete(ctx context.Context, user *model.User, taskID uint) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, user.ID, taskID)
	if err != nil {
		return nil, err
	}
	task.Completed = !task.Completed
	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes one of user's tasks.
func (s *TaskService) DeleteTask(ctx context.Context, user *model.User, taskID uint) error {
	return s.taskRepo.Delete(ctx, user.ID, taskID)
}

func (s *TaskService) apply(ctx context.Context, task *model.Task, input TaskInput) error {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return fmt.Errorf("title is required")
	}
	priority := input.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.Valid() {
		return fmt.Errorf("unknown priority %q", priority)
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *input.CategoryID); err != nil {
			return fmt.Errorf("find category: %w", err)
		}
	}

	task.Title = title
	task.Description = input.Description
	task.Priority = priority
	task.CategoryID = input.CategoryID
	task.Category = nil
	task.DueDate = nil
	if input.DueDate != nil {
		due := input.DueDate.UTC()
		task.DueDate = &due
	}
	return nil
}
