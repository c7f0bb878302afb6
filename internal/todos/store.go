// Package todos owns the in-memory task list and its id counter.
package todos

import (
	"slices"
	"strings"
	"sync"
	"unicode"

	"blog/internal/models"
)

// Store is safe for concurrent use. Ids are allocated from a counter that
// only grows, so an id is never handed out twice, even after a delete.
type Store struct {
	mu     sync.Mutex
	todos  []models.Todo
	nextID int
}

func NewStore() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// Reset drops every todo and restarts id allocation at 1.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos = nil
	s.nextID = 1
}

// List returns the todos in creation order.
func (s *Store) List() []models.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := slices.Clone(s.todos)
	if out == nil {
		out = []models.Todo{}
	}
	return out
}

// TrimText strips leading and trailing whitespace, including the byte order
// mark.
func TrimText(text string) string {
	return strings.TrimFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\ufeff'
	})
}

// Create stores a new, incomplete todo with the trimmed text.
func (s *Store) Create(text string) (models.Todo, error) {
	text = TrimText(text)
	if text == "" {
		return models.Todo{}, ErrEmptyText
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	todo := models.Todo{ID: s.nextID, Text: text}
	s.nextID++
	s.todos = append(s.todos, todo)
	return todo, nil
}

// Update sets the completed flag of the todo with the given id. A nil
// completed leaves the record as it is.
func (s *Store) Update(id int, completed *bool) (models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.Todo{}, ErrTodoNotFound
	}
	if completed != nil {
		s.todos[i].Completed = *completed
	}
	return s.todos[i], nil
}

func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return ErrTodoNotFound
	}
	s.todos = slices.Delete(s.todos, i, i+1)
	return nil
}

// indexOf expects s.mu to be held.
func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.todos, func(t models.Todo) bool { return t.ID == id })
}
