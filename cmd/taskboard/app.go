package main

import (
	"fmt"

	"gorm.io/gorm"

	"taskboard/internal/config"
	"taskboard/internal/repository"
	"taskboard/internal/service"
)

// cliApp holds what the management commands need.
type cliApp struct {
	db         *gorm.DB
	categories *service.CategoryService
	users      *service.UserService
}

func openApp() (*cliApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}
	return &cliApp{
		db:         db,
		categories: service.NewCategoryService(repository.NewCategoryRepository(db)),
		users:      service.NewUserService(repository.NewUserRepository(db)),
	}, nil
}

func (a *cliApp) Close() {
	if sqlDB, err := a.db.DB(); err == nil {
		sqlDB.Close()
	}
}
