package web

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"formatTime": func(v any) string {
		switch t := v.(type) {
		case time.Time:
			return t.In(time.Local).Format("2006-01-02 15:04")
		case *time.Time:
			if t != nil {
				return t.In(time.Local).Format("2006-01-02 15:04")
			}
		}
		return ""
	},
	"idString": func(id uint) string {
		return strconv.FormatUint(uint64(id), 10)
	},
	"now": time.Now,
}

func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// render adds the current user and any pending notice to data.
func (s *Server) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if user, ok := currentUser(c); ok {
		data["user"] = user
	}
	if notice, ok := s.readFlash(c); ok {
		data["flash"] = notice
	}
	c.HTML(status, name, data)
}

func (s *Server) notFound(c *gin.Context) {
	s.render(c, http.StatusNotFound, "not_found.html", nil)
	c.Abort()
}

func (s *Server) serverError(c *gin.Context, err error) {
	log.Printf("[error] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	s.render(c, http.StatusInternalServerError, "error.html", nil)
	c.Abort()
}
