package adapthttp

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JorgeGarcia-Dev/todoapp/internal/app"

	"go.uber.org/zap"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.render(w, r, "register.html", page{})
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	err := s.auth.Register(r.Context(), username, password)
	switch {
	case err == nil:
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
	case errors.Is(err, app.ErrUsernameRequired):
		s.flash(r, "Username is required.")
		s.render(w, r, "register.html", page{})
	case errors.Is(err, app.ErrPasswordRequired):
		s.flash(r, "Password is required.")
		s.render(w, r, "register.html", page{})
	case errors.Is(err, app.ErrUsernameTaken):
		s.flash(r, fmt.Sprintf("User %s is already registered.", username))
		s.render(w, r, "register.html", page{})
	default:
		s.log.Error("register", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.render(w, r, "login.html", page{})
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	token, err := s.auth.Login(r.Context(), username, password)
	if errors.Is(err, app.ErrInvalidCredentials) {
		s.flash(r, "Invalid username and/or password.")
		s.render(w, r, "login.html", page{})
		return
	}
	if err != nil {
		s.log.Error("login", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.establishSession(w, r, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	if token, ok := sess.Values["token"].(string); ok && token != "" {
		_ = s.auth.Logout(r.Context(), token)
	}

	delete(sess.Values, "token")
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		s.log.Error("save session", zap.Error(err))
	}

	http.Redirect(w, r, "/auth/login", http.StatusFound)
}

// establishSession replaces any previous login in the cookie session with
// the new token. The prior server-side session row, if any, is deleted.
func (s *Server) establishSession(w http.ResponseWriter, r *http.Request, token string) {
	sess := s.session(r)
	if prior, ok := sess.Values["token"].(string); ok && prior != "" && prior != token {
		_ = s.auth.Logout(r.Context(), prior)
	}

	for k := range sess.Values {
		delete(sess.Values, k)
	}
	sess.Values["token"] = token
	if err := sess.Save(r, w); err != nil {
		s.log.Error("save session", zap.Error(err))
	}
}
