package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"taskboard/internal/service"
)

func (s *Server) handleRegisterForm(c *gin.Context) {
	s.renderRegister(c, registerForm{}, FormErrors{})
}

func (s *Server) handleRegister(c *gin.Context) {
	errs := FormErrors{}
	var form registerForm
	if err := c.ShouldBindWith(&form, binding.FormPost); err != nil {
		errs.Add(nonFieldErrors, "The submitted form could not be read.")
		s.renderRegister(c, form, errs)
		return
	}
	if err := s.validate.Struct(form); err != nil && !collectErrors(err, errs) {
		s.serverError(c, err)
		return
	}
	if errs.Any() {
		s.renderRegister(c, form, errs)
		return
	}

	ctx := c.Request.Context()
	user, err := s.users.Register(ctx, form.Username, form.Password1)
	if errors.Is(err, service.ErrUsernameTaken) {
		errs.Add("username", msgUsernameTaken)
		s.renderRegister(c, form, errs)
		return
	}
	if err != nil {
		s.serverError(c, err)
		return
	}
	if err := s.startSession(c, user); err != nil {
		s.serverError(c, err)
		return
	}
	s.writeFlash(c, noticeSuccess("Registration successful."))
	c.Redirect(http.StatusFound, "/")
}

func (s *Server) renderRegister(c *gin.Context, form registerForm, errs FormErrors) {
	// Passwords are never echoed back.
	form.Password1, form.Password2 = "", ""
	s.render(c, http.StatusOK, "register.html", gin.H{"form": form, "errors": errs})
}

func (s *Server) handleLoginForm(c *gin.Context) {
	s.render(c, http.StatusOK, "login.html", gin.H{
		"form":   loginForm{Next: c.Query("next")},
		"errors": FormErrors{},
	})
}

func (s *Server) handleLogin(c *gin.Context) {
	errs := FormErrors{}
	var form loginForm
	if err := c.ShouldBindWith(&form, binding.FormPost); err != nil {
		errs.Add(nonFieldErrors, "The submitted form could not be read.")
	} else if err := s.validate.Struct(form); err != nil && !collectErrors(err, errs) {
		s.serverError(c, err)
		return
	}

	if !errs.Any() {
		user, err := s.users.Authenticate(c.Request.Context(), form.Username, form.Password)
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			errs.Add(nonFieldErrors, msgBadLogin)
		case err != nil:
			s.serverError(c, err)
			return
		default:
			if err := s.startSession(c, user); err != nil {
				s.serverError(c, err)
				return
			}
			c.Redirect(http.StatusFound, safeRedirect(form.Next))
			return
		}
	}

	form.Password = ""
	s.render(c, http.StatusOK, "login.html", gin.H{"form": form, "errors": errs})
}

func (s *Server) handleLogout(c *gin.Context) {
	if sessionID, ok := s.readSessionCookie(c); ok {
		if err := s.sessions.End(c.Request.Context(), sessionID); err != nil {
			s.serverError(c, err)
			return
		}
	}
	s.clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/login")
}

func (s *Server) handleProfileForm(c *gin.Context) {
	form := profileForm{}
	if user := mustUser(c); user.TelegramChatID != nil {
		form.TelegramChatID = formatChatID(*user.TelegramChatID)
	}
	s.render(c, http.StatusOK, "profile.html", gin.H{"form": form, "errors": FormErrors{}})
}

func (s *Server) handleProfile(c *gin.Context) {
	errs := FormErrors{}
	var form profileForm
	if err := c.ShouldBindWith(&form, binding.FormPost); err != nil {
		errs.Add(nonFieldErrors, "The submitted form could not be read.")
	}
	chatID, err := parseChatID(form.TelegramChatID)
	if err != nil {
		errs.Add("telegram_chat_id", msgInvalidNumber)
	}
	if errs.Any() {
		s.render(c, http.StatusOK, "profile.html", gin.H{"form": form, "errors": errs})
		return
	}

	if err := s.users.LinkTelegram(c.Request.Context(), mustUser(c), chatID); err != nil {
		s.serverError(c, err)
		return
	}
	s.writeFlash(c, noticeSuccess("Profile saved."))
	c.Redirect(http.StatusFound, "/profile")
}
