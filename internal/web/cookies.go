package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookieName = "taskboard_session"
	flashCookieName   = "taskboard_flash"
)

// Notice is a one-time message shown on the next rendered page.
type Notice struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func noticeSuccess(message string) Notice {
	return Notice{Kind: "success", Message: message}
}

func (s *Server) readSessionCookie(c *gin.Context) (string, bool) {
	cookie, err := c.Request.Cookie(sessionCookieName)
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	return value, true
}

func (s *Server) writeSessionCookie(c *gin.Context, sessionID string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(s.opts.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(c *gin.Context) {
	s.expireCookie(c, sessionCookieName)
}

// writeFlash stores a notice cookie for the next page render.
func (s *Server) writeFlash(c *gin.Context, notice Notice) {
	payload, err := json.Marshal(notice)
	if err != nil {
		return
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// readFlash reads and clears the notice cookie.
func (s *Server) readFlash(c *gin.Context) (Notice, bool) {
	cookie, err := c.Request.Cookie(flashCookieName)
	if err != nil || cookie == nil {
		return Notice{}, false
	}
	s.expireCookie(c, flashCookieName)

	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(cookie.Value))
	if err != nil {
		return Notice{}, false
	}
	var notice Notice
	if err := json.Unmarshal(decoded, &notice); err != nil || notice.Message == "" {
		return Notice{}, false
	}
	return notice, true
}

func (s *Server) expireCookie(c *gin.Context, name string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
