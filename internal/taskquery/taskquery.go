// Package taskquery narrows and orders task queries from list parameters.
//
// Both functions take a *gorm.DB already scoped to model.Task and return a
// derived query; the argument is left untouched so callers can reuse it.
package taskquery

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// DefaultSort is used when the sort parameter is absent or unknown.
const DefaultSort = "-created_date"

var sortColumns = map[string]string{
	"due_date":      "due_date ASC",
	"-due_date":     "due_date DESC",
	"priority":      "priority DESC",
	"-priority":     "priority ASC",
	"created_date":  "created_date ASC",
	"-created_date": "created_date DESC",
}

// Filter applies each non-empty parameter as an AND condition.
//
// completed matches completed tasks only for the literal "True"; every other
// non-empty value selects open tasks.
func Filter(tasks *gorm.DB, categoryID, priority, completed, search string) *gorm.DB {
	tasks = tasks.Session(&gorm.Session{})

	if categoryID != "" {
		id, err := strconv.ParseUint(categoryID, 10, 64)
		if err != nil {
			tasks = tasks.Where("1 = 0")
		} else {
			tasks = tasks.Where("category_id = ?", uint(id))
		}
	}
	if priority != "" {
		tasks = tasks.Where("priority = ?", priority)
	}
	if completed != "" {
		tasks = tasks.Where("completed = ?", completed == "True")
	}
	if search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		tasks = tasks.Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	return tasks
}

// Sort orders tasks by sortParam.
//
// "priority" sorts the stored codes in descending lexical order, so "low"
// comes before "high".
func Sort(tasks *gorm.DB, sortParam string) *gorm.DB {
	order, ok := sortColumns[sortParam]
	if !ok {
		order = sortColumns[DefaultSort]
	}
	tie := "id DESC"
	if strings.HasSuffix(order, "ASC") {
		tie = "id ASC"
	}
	return tasks.Session(&gorm.Session{}).Order(order).Order(tie)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
