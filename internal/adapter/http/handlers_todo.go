package adapthttp

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/JorgeGarcia-Dev/todoapp/internal/app"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)

	todos, err := s.todos.List(r.Context(), user.ID)
	if err != nil {
		s.log.Error("list todos", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.render(w, r, "index.html", page{Todos: todos})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.render(w, r, "create.html", page{})
		return
	}

	user := userFrom(r)
	description := r.PostFormValue("description")

	_, err := s.todos.Create(r.Context(), user.ID, description)
	if errors.Is(err, app.ErrDescriptionRequired) {
		s.flash(r, "Description is required.")
		s.render(w, r, "create.html", page{})
		return
	}
	if err != nil {
		s.log.Error("create todo", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	todo, err := s.todos.Get(r.Context(), id)
	if errors.Is(err, app.ErrTodoNotFound) {
		http.Error(w, fmt.Sprintf("Todo with id %d doesn't exist.", id), http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Error("get todo", zap.Int64("id", id), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if r.Method == http.MethodGet {
		s.render(w, r, "update.html", page{Todo: todo})
		return
	}

	user := userFrom(r)
	description := r.PostFormValue("description")
	completed := r.PostFormValue("completed") == "on"

	err = s.todos.Update(r.Context(), id, user.ID, description, completed)
	if errors.Is(err, app.ErrDescriptionRequired) {
		s.flash(r, "Description is required.")
		s.render(w, r, "update.html", page{Todo: todo})
		return
	}
	if err != nil {
		s.log.Error("update todo", zap.Int64("id", id), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	user := userFrom(r)
	if err := s.todos.Delete(r.Context(), id, user.ID); err != nil {
		s.log.Error("delete todo", zap.Int64("id", id), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}
