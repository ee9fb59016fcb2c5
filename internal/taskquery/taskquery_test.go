package taskquery

import (
	"path/filepath"
	"reflect"
	"sort"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taskboard/internal/model"
)

// fixture ids, in insertion order
const (
	milk uint = iota + 1
	report
	call
	trip
)

func seed(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "query.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	if err := db.AutoMigrate(&model.User{}, &model.Category{}, &model.Task{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	users := []model.User{{Username: "alice", PasswordHash: "x"}, {Username: "bob", PasswordHash: "x"}}
	if err := db.Create(&users).Error; err != nil {
		t.Fatalf("create users: %v", err)
	}
	categories := []model.Category{{Name: "work"}, {Name: "home"}}
	if err := db.Create(&categories).Error; err != nil {
		t.Fatalf("create categories: %v", err)
	}

	work, home := categories[0].ID, categories[1].ID
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	dueSoon := base.Add(24 * time.Hour)
	dueLater := base.Add(48 * time.Hour)

	tasks := []model.Task{
		{UserID: users[0].ID, Title: "Buy milk", Description: "From the store", CategoryID: &work, Priority: model.PriorityHigh, CreatedDate: base},
		{UserID: users[0].ID, Title: "Write report", Description: "Quarterly, 100% done", CategoryID: &home, Priority: model.PriorityMedium, Completed: true, DueDate: &dueLater, CreatedDate: base.Add(time.Hour)},
		{UserID: users[0].ID, Title: "Call mom", Priority: model.PriorityLow, DueDate: &dueSoon, CreatedDate: base.Add(2 * time.Hour)},
		{UserID: users[0].ID, Title: "plan_trip", CategoryID: &work, Priority: model.PriorityMedium, Completed: true, CreatedDate: base.Add(3 * time.Hour)},
		{UserID: users[1].ID, Title: "Buy bread", CategoryID: &work, Priority: model.PriorityHigh, CreatedDate: base},
	}
	for i := range tasks {
		if err := db.Omit("User", "Category").Create(&tasks[i]).Error; err != nil {
			t.Fatalf("create task: %v", err)
		}
	}
	return db
}

func aliceTasks(db *gorm.DB) *gorm.DB {
	return db.Model(&model.Task{}).Where("user_id = ?", 1)
}

func ids(t *testing.T, q *gorm.DB) []uint {
	t.Helper()
	var tasks []model.Task
	if err := q.Find(&tasks).Error; err != nil {
		t.Fatalf("query: %v", err)
	}
	out := make([]uint, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.ID)
	}
	return out
}

func sortedIDs(t *testing.T, q *gorm.DB) []uint {
	out := ids(t, q)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func TestFilter(t *testing.T) {
	db := seed(t)

	tests := []struct {
		name                                  string
		category, priority, completed, search string
		want                                  []uint
	}{
		{name: "no filters", want: []uint{milk, report, call, trip}},
		{name: "category", category: "1", want: []uint{milk, trip}},
		{name: "unknown category", category: "999", want: []uint{}},
		{name: "non-numeric category", category: "work", want: []uint{}},
		{name: "priority", priority: "medium", want: []uint{report, trip}},
		{name: "unknown priority", priority: "urgent", want: []uint{}},
		{name: "completed True", completed: "True", want: []uint{report, trip}},
		{name: "completed False", completed: "False", want: []uint{milk, call}},
		{name: "completed lowercase", completed: "true", want: []uint{milk, call}},
		{name: "completed garbage", completed: "yes", want: []uint{milk, call}},
		{name: "search title ignores case", search: "BUY", want: []uint{milk}},
		{name: "search description", search: "store", want: []uint{milk}},
		{name: "search percent is literal", search: "%", want: []uint{report}},
		{name: "search underscore is literal", search: "_", want: []uint{trip}},
		{name: "search no match", search: "dentist", want: []uint{}},
		{name: "combined", category: "1", completed: "True", want: []uint{trip}},
		{name: "combined empty", priority: "high", completed: "True", want: []uint{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sortedIDs(t, Filter(aliceTasks(db), tt.category, tt.priority, tt.completed, tt.search))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Filter = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterComposesAsIntersection(t *testing.T) {
	db := seed(t)

	byCategory := sortedIDs(t, Filter(aliceTasks(db), "1", "", "", ""))
	byPriority := sortedIDs(t, Filter(aliceTasks(db), "", "medium", "", ""))
	both := sortedIDs(t, Filter(aliceTasks(db), "1", "medium", "", ""))

	inPriority := map[uint]bool{}
	for _, id := range byPriority {
		inPriority[id] = true
	}
	want := []uint{}
	for _, id := range byCategory {
		if inPriority[id] {
			want = append(want, id)
		}
	}
	if !reflect.DeepEqual(both, want) {
		t.Fatalf("combined = %v, want intersection %v", both, want)
	}
}

func TestFilterLeavesBaseQueryUntouched(t *testing.T) {
	db := seed(t)

	base := aliceTasks(db).Session(&gorm.Session{})
	_ = sortedIDs(t, Filter(base, "1", "high", "False", "milk"))

	if got := sortedIDs(t, base); len(got) != 4 {
		t.Fatalf("base query now returns %v, want all 4 tasks", got)
	}
}

func TestSort(t *testing.T) {
	db := seed(t)

	tests := []struct {
		sort string
		want []uint
	}{
		{sort: "", want: []uint{trip, call, report, milk}},
		{sort: "bogus", want: []uint{trip, call, report, milk}},
		{sort: "-created_date", want: []uint{trip, call, report, milk}},
		{sort: "created_date", want: []uint{milk, report, call, trip}},
		{sort: "due_date", want: []uint{milk, trip, call, report}},
		{sort: "-due_date", want: []uint{report, call, trip, milk}},
		{sort: "priority", want: []uint{trip, report, call, milk}},
		{sort: "-priority", want: []uint{milk, call, report, trip}},
	}
	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			got := ids(t, Sort(aliceTasks(db), tt.sort))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Sort(%q) = %v, want %v", tt.sort, got, tt.want)
			}
		})
	}
}

func TestSortAfterFilter(t *testing.T) {
	db := seed(t)

	got := ids(t, Sort(Filter(aliceTasks(db), "", "", "False", ""), "created_date"))
	if want := []uint{milk, call}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestEscapeLike(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"plain": "plain",
		"50%":   `50\%`,
		"a_b":   `a\_b`,
		`back\`: `back\\`,
		`%_\`:   `\%\_\\`,
	}
	for in, want := range tests {
		if got := escapeLike(in); got != want {
			t.Errorf("escapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}
