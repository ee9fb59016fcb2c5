package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// DefaultCategoryColor is used when a category is saved without a color.
const DefaultCategoryColor = "#007bff"

// Category groups tasks by area (work, health, study, etc.). Categories are
// shared by every user.
type Category struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;uniqueIndex;not null"`
	DisplayName string `gorm:"size:100"`
	Color       string `gorm:"size:7;default:'#007bff'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Label is the text shown to users.
func (c Category) Label() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Name
}

// BeforeSave falls back to the name when no display name is given.
func (c *Category) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(c.DisplayName) == "" {
		c.DisplayName = c.Name
	}
	if c.Color == "" {
		c.Color = DefaultCategoryColor
	}
	return nil
}
