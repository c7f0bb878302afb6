package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"blog/internal/models"
	"blog/internal/todos"
)

const maxBodyBytes = 1 << 20

var errBadJSON = errors.New("invalid JSON body")

// createTodoInput is the body of POST /api/todos. Text is required.
type createTodoInput struct {
	Text *string `json:"text"`
}

func (in createTodoInput) validate() error {
	if in.Text == nil || todos.TrimText(*in.Text) == "" {
		return todos.ErrEmptyText
	}
	return nil
}

// patchTodoInput is the body of PATCH /api/todos/{id}. Completed is only
// applied when it is a JSON boolean; any other value leaves the todo as is.
type patchTodoInput struct {
	Completed any `json:"completed"`
}

func (in patchTodoInput) completed() *bool {
	if b, ok := in.Completed.(bool); ok {
		return &b
	}
	return nil
}

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.todos.List())
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	var in createTodoInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := in.validate(); err != nil {
		s.apiError(w, r, err)
		return
	}
	todo, err := s.todos.Create(*in.Text)
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, todo)
}

func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(r)
	if !ok {
		s.apiError(w, r, todos.ErrTodoNotFound)
		return
	}
	var in patchTodoInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	todo, err := s.todos.Update(id, in.completed())
	if err != nil {
		s.apiError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(r)
	if !ok {
		s.apiError(w, r, todos.ErrTodoNotFound)
		return
	}
	if err := s.todos.Delete(id); err != nil {
		s.apiError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// apiError maps the error taxonomy onto status codes.
func (s *Server) apiError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		s.serverError(w, r, err)
	}
}

func todoID(r *http.Request) (int, bool) {
	raw, ok := pathVar(r, "id")
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	return id, err == nil
}

// decodeJSON reads exactly one JSON value into v. An empty body leaves v
// zero; anything after the value is rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errBadJSON
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errBadJSON
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
