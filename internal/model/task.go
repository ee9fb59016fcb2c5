package model

import "time"

// Priority is the urgency code stored on a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists the accepted codes in display order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Valid reports whether p is one of the known codes.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Label returns a human readable name.
func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	}
	return string(p)
}

// Task represents a single to-do item owned by one user.
type Task struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"index;not null"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE"`
	CategoryID  *uint     `gorm:"index"`
	Category    *Category `gorm:"constraint:OnDelete:SET NULL"`
	Title       string    `gorm:"size:200;not null"`
	Description string
	DueDate     *time.Time `gorm:"index"`
	Completed   bool       `gorm:"default:false"`
	Priority    Priority   `gorm:"size:10;default:'medium'"`
	CreatedDate time.Time  `gorm:"autoCreateTime;<-:create"`
	UpdatedAt   time.Time
}

// Overdue reports whether the task is open and past its due date.
func (t Task) Overdue(now time.Time) bool {
	return !t.Completed && t.DueDate != nil && now.After(*t.DueDate)
}
