package adapthttp

import (
	"encoding/json"
	"net/http"

	"github.com/JorgeGarcia-Dev/todoapp/internal/domain"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// page carries everything a template may render.
type page struct {
	User    *domain.User
	Flashes []string
	Todos   []domain.Todo
	Todo    *domain.Todo
}

// session returns the request's cookie session. A corrupt cookie yields a
// fresh session.
func (s *Server) session(r *http.Request) *sessions.Session {
	sess, _ := s.cookie.Get(r, sessionName)
	return sess
}

// sessionToken returns the login token held in the cookie session, if any.
func (s *Server) sessionToken(r *http.Request) string {
	token, _ := s.session(r).Values["token"].(string)
	return token
}

// flash queues a one-shot message for the next rendered page. The session
// is persisted by render, which always follows a flash in the same request.
func (s *Server) flash(r *http.Request, msg string) {
	s.session(r).AddFlash(msg)
}

// render pops queued flashes into the page and executes the named template.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data page) {
	sess := s.session(r)
	for _, f := range sess.Flashes() {
		if msg, ok := f.(string); ok {
			data.Flashes = append(data.Flashes, msg)
		}
	}
	if err := sess.Save(r, w); err != nil {
		s.log.Error("save session", zap.Error(err))
	}

	data.User = userFrom(r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.log.Error("render template", zap.String("template", name), zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func withNoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
