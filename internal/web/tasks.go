package web

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"gorm.io/gorm"

	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/service"
	"taskboard/internal/taskquery"
)

func (s *Server) handleTaskList(c *gin.Context) {
	ctx := c.Request.Context()
	q := repository.TaskQuery{
		CategoryID: c.Query("category"),
		Priority:   c.Query("priority"),
		Completed:  c.Query("completed"),
		Search:     c.DefaultQuery("search", ""),
		Sort:       c.DefaultQuery("sort", taskquery.DefaultSort),
		Page:       c.Query("page"),
	}

	page, err := s.tasks.ListTasks(ctx, mustUser(c), q)
	if err != nil {
		s.serverError(c, err)
		return
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		s.serverError(c, err)
		return
	}

	params := c.Request.URL.Query()
	params.Del("page")
	params.Del("sort")

	s.render(c, http.StatusOK, "task_list.html", gin.H{
		"page":             page,
		"tasks":            page.Items,
		"categories":       categories,
		"priorities":       model.Priorities,
		"currentCategory":  q.CategoryID,
		"currentPriority":  q.Priority,
		"currentCompleted": q.Completed,
		"currentSort":      q.Sort,
		"searchQuery":      q.Search,
		"queryParams":      template.URL(params.Encode()),
	})
}

func (s *Server) handleTaskDetail(c *gin.Context) {
	task, ok := s.ownedTask(c)
	if !ok {
		return
	}
	s.render(c, http.StatusOK, "task_detail.html", gin.H{"task": task})
}

func (s *Server) handleTaskCreateForm(c *gin.Context) {
	s.renderTaskForm(c, nil, newTaskForm(), FormErrors{})
}

func (s *Server) handleTaskCreate(c *gin.Context) {
	form, input, errs, err := s.bindTaskForm(c)
	if err != nil {
		s.serverError(c, err)
		return
	}
	if errs.Any() {
		s.renderTaskForm(c, nil, form, errs)
		return
	}

	// The owner always comes from the session, never from the form.
	if _, err := s.tasks.CreateTask(c.Request.Context(), mustUser(c), input); err != nil {
		s.serverError(c, err)
		return
	}
	s.writeFlash(c, noticeSuccess("Task created."))
	c.Redirect(http.StatusFound, "/")
}

func (s *Server) handleTaskUpdateForm(c *gin.Context) {
	task, ok := s.ownedTask(c)
	if !ok {
		return
	}
	s.renderTaskForm(c, task, taskFormFrom(task), FormErrors{})
}

func (s *Server) handleTaskUpdate(c *gin.Context) {
	task, ok := s.ownedTask(c)
	if !ok {
		return
	}
	form, input, errs, err := s.bindTaskForm(c)
	if err != nil {
		s.serverError(c, err)
		return
	}
	if errs.Any() {
		s.renderTaskForm(c, task, form, errs)
		return
	}

	_, err = s.tasks.UpdateTask(c.Request.Context(), mustUser(c), task.ID, input)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.notFound(c)
		return
	}
	if err != nil {
		s.serverError(c, err)
		return
	}
	s.writeFlash(c, noticeSuccess("Task updated."))
	c.Redirect(http.StatusFound, "/")
}

func (s *Server) handleTaskDeleteConfirm(c *gin.Context) {
	task, ok := s.ownedTask(c)
	if !ok {
		return
	}
	s.render(c, http.StatusOK, "task_confirm_delete.html", gin.H{"task": task})
}

func (s *Server) handleTaskDelete(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		s.notFound(c)
		return
	}
	err := s.tasks.DeleteTask(c.Request.Context(), mustUser(c), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.notFound(c)
		return
	}
	if err != nil {
		s.serverError(c, err)
		return
	}
	s.writeFlash(c, noticeSuccess("Task deleted."))
	c.Redirect(http.StatusFound, "/")
}

func (s *Server) handleTaskToggle(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		s.notFound(c)
		return
	}
	task, err := s.tasks.ToggleComplete(c.Request.Context(), mustUser(c), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.notFound(c)
		return
	}
	if err != nil {
		s.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"completed": task.Completed,
	})
}

// ownedTask loads the :id task of the current user. Missing and foreign tasks
// both render 404.
func (s *Server) ownedTask(c *gin.Context) (*model.Task, bool) {
	id, ok := taskID(c)
	if !ok {
		s.notFound(c)
		return nil, false
	}
	task, err := s.tasks.GetTask(c.Request.Context(), mustUser(c), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.notFound(c)
		return nil, false
	}
	if err != nil {
		s.serverError(c, err)
		return nil, false
	}
	return task, true
}

func taskID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// bindTaskForm reads and validates the posted task fields. A non-nil error is
// a store failure; validation problems are reported through FormErrors.
func (s *Server) bindTaskForm(c *gin.Context) (taskForm, service.TaskInput, FormErrors, error) {
	errs := FormErrors{}
	var form taskForm
	if err := c.ShouldBindWith(&form, binding.FormPost); err != nil {
		errs.Add(nonFieldErrors, "The submitted form could not be read.")
		return form, service.TaskInput{}, errs, nil
	}
	form.normalize()

	if err := s.validate.Struct(form); err != nil && !collectErrors(err, errs) {
		return form, service.TaskInput{}, errs, err
	}

	input := service.TaskInput{
		Title:       form.Title,
		Description: form.Description,
		Priority:    model.Priority(form.Priority),
	}

	due, err := parseDueDate(form.DueDate)
	if err != nil {
		errs.Add("due_date", msgInvalidDate)
	}
	input.DueDate = due

	if form.Category != "" {
		id, err := strconv.ParseUint(form.Category, 10, 64)
		if err != nil {
			errs.Add("category", msgInvalidChoice)
		} else {
			_, err := s.categories.Get(c.Request.Context(), uint(id))
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				errs.Add("category", msgInvalidChoice)
			case err != nil:
				return form, input, errs, err
			default:
				categoryID := uint(id)
				input.CategoryID = &categoryID
			}
		}
	}

	return form, input, errs, nil
}

func (s *Server) renderTaskForm(c *gin.Context, task *model.Task, form taskForm, errs FormErrors) {
	categories, err := s.categories.List(c.Request.Context())
	if err != nil {
		s.serverError(c, err)
		return
	}
	s.render(c, http.StatusOK, "task_form.html", gin.H{
		"task":       task,
		"form":       form,
		"errors":     errs,
		"categories": categories,
		"priorities": model.Priorities,
	})
}
