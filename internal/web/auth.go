package web

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"taskboard/internal/model"
	"taskboard/internal/service"
)

const userContextKey = "taskboard.user"

// loadUser resolves the session cookie into the current user, if any.
func (s *Server) loadUser(c *gin.Context) {
	sessionID, ok := s.readSessionCookie(c)
	if !ok {
		c.Next()
		return
	}
	user, err := s.sessions.Resolve(c.Request.Context(), sessionID)
	switch {
	case err == nil:
		c.Set(userContextKey, user)
	case errors.Is(err, service.ErrSessionNotFound):
		s.clearSessionCookie(c)
	default:
		s.serverError(c, err)
		return
	}
	c.Next()
}

// requireLogin redirects anonymous visitors to the login page.
func (s *Server) requireLogin(c *gin.Context) {
	if _, ok := currentUser(c); ok {
		c.Next()
		return
	}
	c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
	c.Abort()
}

func currentUser(c *gin.Context) (*model.User, bool) {
	value, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok && user != nil
}

// mustUser is only called behind requireLogin.
func mustUser(c *gin.Context) *model.User {
	user, _ := currentUser(c)
	return user
}

// startSession logs user in on this response.
func (s *Server) startSession(c *gin.Context, user *model.User) error {
	session, err := s.sessions.Start(c.Request.Context(), user)
	if err != nil {
		return err
	}
	s.writeSessionCookie(c, session.ID)
	return nil
}
