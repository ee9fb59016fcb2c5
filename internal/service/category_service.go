package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// CategoryInput describes one category, as typed on the command line or
// listed in an import file.
type CategoryInput struct {
	Name        string `yaml:"name" validate:"required,max=100"`
	DisplayName string `yaml:"display_name" validate:"max=100"`
	Color       string `yaml:"color" validate:"omitempty,hexcolor,max=7"`
}

type categoryFile struct {
	Categories []CategoryInput `yaml:"categories"`
}

// CategoryService provides helpers around the shared category list.
type CategoryService struct {
	repo     *repository.CategoryRepository
	validate *validator.Validate
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo, validate: validator.New()}
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.repo.List(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*model.Category, error) {
	return s.repo.GetByID(ctx, id)
}

// Add creates a category. The display name defaults to the name and the
// color to model.DefaultCategoryColor.
func (s *CategoryService) Add(ctx context.Context, input CategoryInput) (*model.Category, error) {
	category, err := s.build(input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes the named category. Tasks using it lose their category.
func (s *CategoryService) Delete(ctx context.Context, name string) error {
	category, err := s.repo.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, category.ID)
}

// ImportYAML upserts every category listed under the top-level "categories"
// key and returns how many were written. Nothing is written when any entry is
// invalid.
func (s *CategoryService) ImportYAML(ctx context.Context, r io.Reader) (int, error) {
	var file categoryFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("decode categories: %w", err)
	}

	categories := make([]*model.Category, 0, len(file.Categories))
	for i, input := range file.Categories {
		category, err := s.build(input)
		if err != nil {
			return 0, fmt.Errorf("category %d: %w", i+1, err)
		}
		categories = append(categories, category)
	}
	for _, category := range categories {
		if err := s.repo.Upsert(ctx, category); err != nil {
			return 0, err
		}
	}
	return len(categories), nil
}

func (s *CategoryService) build(input CategoryInput) (*model.Category, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.DisplayName = strings.TrimSpace(input.DisplayName)
	input.Color = strings.TrimSpace(input.Color)
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid category %q: %w", input.Name, err)
	}
	return &model.Category{
		Name:        input.Name,
		DisplayName: input.DisplayName,
		Color:       input.Color,
	}, nil
}
