// Package web serves the task board over HTTP.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"taskboard/internal/service"
)

const shutdownTimeout = 10 * time.Second

// Deps are the services the handlers call.
type Deps struct {
	Tasks      *service.TaskService
	Categories *service.CategoryService
	Users      *service.UserService
	Sessions   *service.SessionService
}

// Options tune transport behavior.
type Options struct {
	SessionTTL    time.Duration
	SecureCookies bool
	// AccessLog enables gin's request logger.
	AccessLog bool
}

// Server is the task board web server.
type Server struct {
	tasks      *service.TaskService
	categories *service.CategoryService
	users      *service.UserService
	sessions   *service.SessionService
	opts       Options
	validate   *validator.Validate
	router     *gin.Engine
}

// NewServer builds the router with every route registered.
func NewServer(deps Deps, opts Options) (*Server, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	if opts.AccessLog {
		router.Use(gin.Logger())
	}
	router.Use(gin.Recovery())
	router.HandleMethodNotAllowed = true
	router.SetHTMLTemplate(tmpl)

	s := &Server{
		tasks:      deps.Tasks,
		categories: deps.Categories,
		users:      deps.Users,
		sessions:   deps.Sessions,
		opts:       opts,
		validate:   newValidator(),
		router:     router,
	}

	router.Use(s.loadUser)
	router.NoRoute(s.notFound)

	router.GET("/register", s.handleRegisterForm)
	router.POST("/register", s.handleRegister)
	router.GET("/login", s.handleLoginForm)
	router.POST("/login", s.handleLogin)
	router.POST("/logout", s.handleLogout)

	authed := router.Group("/", s.requireLogin)
	{
		authed.GET("/", s.handleTaskList)
		authed.GET("/create", s.handleTaskCreateForm)
		authed.POST("/create", s.handleTaskCreate)
		authed.GET("/task/:id", s.handleTaskDetail)
		authed.GET("/task/:id/update", s.handleTaskUpdateForm)
		authed.POST("/task/:id/update", s.handleTaskUpdate)
		authed.GET("/task/:id/delete", s.handleTaskDeleteConfirm)
		authed.POST("/task/:id/delete", s.handleTaskDelete)
		authed.POST("/task/:id/toggle", s.handleTaskToggle)
		authed.GET("/profile", s.handleProfileForm)
		authed.POST("/profile", s.handleProfile)
	}

	return s, nil
}

// Handler exposes the router for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[info] listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
