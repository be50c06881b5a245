// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/JorgeGarcia-Dev/todoapp/internal/app"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// sessionName is the cookie session under which the login token and flash
// messages travel.
const sessionName = "todoapp"

// Server is the driving HTTP adapter that renders pages and routes requests
// to the application services.
type Server struct {
	todos  *app.TodoService
	auth   *app.AuthService
	cookie sessions.Store
	tmpl   *template.Template
	sso    *SSO
	webDir string
	log    *zap.Logger
}

// New creates a Server wired to the given application services, parsing the
// page templates from webDir/templates.
func New(todos *app.TodoService, auth *app.AuthService, cookie sessions.Store, sso *SSO, webDir string, log *zap.Logger) (*Server, error) {
	tmpl, err := template.ParseGlob(filepath.Join(webDir, "templates", "*.html"))
	if err != nil {
		return nil, err
	}
	return &Server{
		todos:  todos,
		auth:   auth,
		cookie: cookie,
		tmpl:   tmpl,
		sso:    sso,
		webDir: webDir,
		log:    log,
	}, nil
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.loggingMiddleware, s.sessionMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}).Methods(http.MethodGet)
	r.HandleFunc("/hola", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("TodoER"))
	}).Methods(http.MethodGet)

	r.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodGet)

	if s.sso.Enabled() {
		r.HandleFunc("/auth/sso/login", s.handleSSOLogin).Methods(http.MethodGet)
		r.HandleFunc("/auth/sso/callback", s.handleSSOCallback).Methods(http.MethodGet)
	}

	static := http.FileServer(http.Dir(filepath.Join(s.webDir, "static")))
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", static))

	protected := r.NewRoute().Subrouter()
	protected.Use(s.requireUser)
	protected.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	protected.HandleFunc("/create", s.handleCreate).Methods(http.MethodGet, http.MethodPost)
	protected.HandleFunc("/{id:[0-9]+}/update", s.handleUpdate).Methods(http.MethodGet, http.MethodPost)
	protected.HandleFunc("/{id:[0-9]+}/delete", s.handleDelete).Methods(http.MethodPost)

	return withNoCache(r)
}
