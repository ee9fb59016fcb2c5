package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// dueSoonWindow marks open tasks due within this span.
const dueSoonWindow = 48 * time.Hour

// DigestService builds human-readable summaries of open tasks for
// notifications.
type DigestService struct {
	taskRepo *repository.TaskRepository
}

func NewDigestService(taskRepo *repository.TaskRepository) *DigestService {
	return &DigestService{taskRepo: taskRepo}
}

// Summary renders the user's open tasks as Telegram HTML. It returns an empty
// string when nothing is open.
func (s *DigestService) Summary(ctx context.Context, user model.User, now time.Time) (string, error) {
	tasks, err := s.taskRepo.ListOpen(ctx, user.ID)
	if err != nil {
		return "", err
	}
	if len(tasks) == 0 {
		return "", nil
	}

	var overdue int
	for _, task := range tasks {
		if task.Overdue(now) {
			overdue++
		}
	}

	var builder strings.Builder
	builder.WriteString("📋 <b>Open tasks</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s · %d open", now.Format("2006-01-02"), len(tasks)))
	if overdue > 0 {
		builder.WriteString(fmt.Sprintf(", %d overdue", overdue))
	}
	builder.WriteString("\n\n")
	for _, task := range tasks {
		builder.WriteString(formatTask(task, now))
	}
	return strings.TrimSpace(builder.String()), nil
}

func formatTask(task model.Task, now time.Time) string {
	var sb strings.Builder

	icon := "🟢"
	if task.DueDate != nil {
		d := task.DueDate.In(now.Location())
		switch {
		case now.After(d):
			icon = "⚠️"
		case d.Sub(now) <= dueSoonWindow:
			icon = "⏳"
		}
	}

	sb.WriteString(fmt.Sprintf("%s %s", icon, html.EscapeString(strings.TrimSpace(task.Title))))
	if task.Priority == model.PriorityHigh {
		sb.WriteString(" ❗")
	}
	if task.Category != nil {
		if label := strings.TrimSpace(task.Category.Label()); label != "" {
			sb.WriteString(fmt.Sprintf(" <i>(%s)</i>", html.EscapeString(label)))
		}
	}

	if task.DueDate != nil {
		d := task.DueDate.In(now.Location())
		if now.After(d) {
			sb.WriteString(fmt.Sprintf("\n   ⏰ due %s · <b>overdue</b>", d.Format("2006-01-02 15:04")))
		} else {
			daysLeft := int(d.Sub(now).Hours()/24) + 1
			sb.WriteString(fmt.Sprintf("\n   ⏰ due %s · ≈%d day(s) left", d.Format("2006-01-02 15:04"), daysLeft))
		}
	}

	sb.WriteByte('\n')
	return sb.String()
}
