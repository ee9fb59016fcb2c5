package web

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"taskboard/internal/model"
)

// nonFieldErrors is the FormErrors key for errors not tied to one input.
const nonFieldErrors = "__all__"

const (
	msgRequired      = "This field is required."
	msgInvalidChoice = "Select a valid choice. That choice is not one of the available choices."
	msgInvalidDate   = "Enter a valid date/time."
	msgInvalidNumber = "Enter a whole number."
	msgUsernameTaken = "A user with that username already exists."
	msgBadLogin      = "Please enter a correct username and password. Note that both fields may be case-sensitive."
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

var dueDateLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// dueDateInputLayout matches <input type="datetime-local">.
const dueDateInputLayout = "2006-01-02T15:04"

// FormErrors maps a form field to its messages.
type FormErrors map[string][]string

func (e FormErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e FormErrors) Has(field string) bool {
	return len(e[field]) > 0
}

func (e FormErrors) Any() bool {
	return len(e) > 0
}

type taskForm struct {
	Title       string `form:"title" validate:"required,max=200"`
	Description string `form:"description"`
	DueDate     string `form:"due_date"`
	Category    string `form:"category"`
	Priority    string `form:"priority" validate:"required,oneof=low medium high"`
}

func (f *taskForm) normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.DueDate = strings.TrimSpace(f.DueDate)
	f.Category = strings.TrimSpace(f.Category)
	f.Priority = strings.TrimSpace(f.Priority)
}

func newTaskForm() taskForm {
	return taskForm{Priority: string(model.PriorityMedium)}
}

func taskFormFrom(task *model.Task) taskForm {
	form := taskForm{
		Title:       task.Title,
		Description: task.Description,
		Priority:    string(task.Priority),
	}
	if task.DueDate != nil {
		form.DueDate = task.DueDate.In(time.Local).Format(dueDateInputLayout)
	}
	if task.CategoryID != nil {
		form.Category = strconv.FormatUint(uint64(*task.CategoryID), 10)
	}
	return form
}

type registerForm struct {
	Username  string `form:"username" validate:"required,max=150,username"`
	Password1 string `form:"password1" validate:"required,min=8"`
	Password2 string `form:"password2" validate:"required,eqfield=Password1"`
}

type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
	Next     string `form:"next"`
}

type profileForm struct {
	TelegramChatID string `form:"telegram_chat_id"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return v
}

// collectErrors copies validator failures into errs. It returns false when err
// is not a validation failure.
func collectErrors(err error, errs FormErrors) bool {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	for _, fe := range verrs {
		errs.Add(fe.Field(), validationMessage(fe))
	}
	return true
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "max":
		value, _ := fe.Value().(string)
		return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).", fe.Param(), utf8.RuneCountInString(value))
	case "min":
		return fmt.Sprintf("This password is too short. It must contain at least %s characters.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Select a valid choice. %v is not one of the available choices.", fe.Value())
	case "eqfield":
		return "The two password fields didn't match."
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	}
	return "Enter a valid value."
}

func parseDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized date %q", raw)
}

func parseChatID(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func formatChatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// safeRedirect keeps post-login redirects on this site.
func safeRedirect(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, `/\`) {
		return "/"
	}
	return next
}
