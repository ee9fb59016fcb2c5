package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

type testEnv struct {
	db         *gorm.DB
	tasks      *TaskService
	categories *CategoryService
	users      *UserService
	sessions   *SessionService
	taskRepo   *repository.TaskRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	taskRepo := repository.NewTaskRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	users := NewUserService(repository.NewUserRepository(db))
	users.cost = bcrypt.MinCost

	return &testEnv{
		db:         db,
		tasks:      NewTaskService(taskRepo, categoryRepo),
		categories: NewCategoryService(categoryRepo),
		users:      users,
		sessions:   NewSessionService(repository.NewSessionRepository(db), time.Hour),
		taskRepo:   taskRepo,
	}
}

func (e *testEnv) user(t *testing.T, username string) *model.User {
	t.Helper()
	user, err := e.users.Register(context.Background(), username, "s3cret-pass")
	if err != nil {
		t.Fatalf("Register(%q): %v", username, err)
	}
	return user
}
