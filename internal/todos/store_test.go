package todos

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog/internal/models"
)

func boolPtr(b bool) *bool { return &b }

func TestCreate(t *testing.T) {
	s := NewStore()

	todo, err := s.Create(" groceries ")
	require.NoError(t, err)
	assert.Equal(t, models.Todo{ID: 1, Text: "groceries", Completed: false}, todo)
	assert.Equal(t, []models.Todo{todo}, s.List())
}

func TestCreateRejectsBlankText(t *testing.T) {
	s := NewStore()

	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := s.Create(text)
		assert.ErrorIs(t, err, ErrEmptyText, "%q", text)
		assert.ErrorIs(t, err, models.ErrValidation, "%q", text)
	}
	assert.Empty(t, s.List())

	_, err := s.Create("\ufeff \u00a0")
	assert.ErrorIs(t, err, ErrEmptyText)

	// A rejected create does not consume an id.
	todo, err := s.Create("\ufefffirst\u00a0")
	require.NoError(t, err)
	assert.Equal(t, 1, todo.ID)
	assert.Equal(t, "first", todo.Text)
}

func TestIDsNeverReused(t *testing.T) {
	s := NewStore()

	var last int
	for i := 0; i < 5; i++ {
		todo, err := s.Create("task")
		require.NoError(t, err)
		assert.Greater(t, todo.ID, last)
		last = todo.ID
		if i%2 == 1 {
			require.NoError(t, s.Delete(todo.ID))
		}
	}
	// Deleting the most recent todo must not free its id.
	require.NoError(t, s.Delete(last))

	todo, err := s.Create("after deletes")
	require.NoError(t, err)
	assert.Equal(t, last+1, todo.ID)
}

func TestListKeepsCreationOrder(t *testing.T) {
	s := NewStore()
	for _, text := range []string{"c", "a", "b"} {
		_, err := s.Create(text)
		require.NoError(t, err)
	}
	_, err := s.Update(1, boolPtr(true))
	require.NoError(t, err)

	var texts []string
	for _, todo := range s.List() {
		texts = append(texts, todo.Text)
	}
	assert.Equal(t, []string{"c", "a", "b"}, texts)
}

func TestListReturnsCopy(t *testing.T) {
	s := NewStore()
	_, err := s.Create("milk")
	require.NoError(t, err)

	list := s.List()
	list[0].Completed = true

	assert.False(t, s.List()[0].Completed)
}

func TestUpdate(t *testing.T) {
	s := NewStore()
	created, err := s.Create("Buy milk")
	require.NoError(t, err)

	updated, err := s.Update(created.ID, boolPtr(true))
	require.NoError(t, err)
	assert.Equal(t, models.Todo{ID: created.ID, Text: "Buy milk", Completed: true}, updated)

	unchanged, err := s.Update(created.ID, nil)
	require.NoError(t, err)
	assert.True(t, unchanged.Completed)

	updated, err = s.Update(created.ID, boolPtr(false))
	require.NoError(t, err)
	assert.False(t, updated.Completed)
}

func TestUnknownID(t *testing.T) {
	s := NewStore()

	_, err := s.Update(42, boolPtr(true))
	assert.ErrorIs(t, err, ErrTodoNotFound)
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.ErrorIs(t, s.Delete(42), ErrTodoNotFound)
}

func TestDeleteThenAccess(t *testing.T) {
	s := NewStore()
	keep, err := s.Create("keep")
	require.NoError(t, err)
	gone, err := s.Create("gone")
	require.NoError(t, err)

	require.NoError(t, s.Delete(gone.ID))

	assert.Equal(t, []models.Todo{keep}, s.List())
	_, err = s.Update(gone.ID, boolPtr(true))
	assert.ErrorIs(t, err, ErrTodoNotFound)
	assert.ErrorIs(t, s.Delete(gone.ID), ErrTodoNotFound)
}

func TestReset(t *testing.T) {
	s := NewStore()
	_, err := s.Create("one")
	require.NoError(t, err)
	_, err = s.Create("two")
	require.NoError(t, err)

	s.Reset()

	assert.Empty(t, s.List())
	todo, err := s.Create("fresh")
	require.NoError(t, err)
	assert.Equal(t, 1, todo.ID)
}

func TestConcurrentCreatesGetDistinctIDs(t *testing.T) {
	s := NewStore()
	const n = 200

	ids := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			todo, err := s.Create("task")
			if err == nil {
				ids <- todo.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool, n)
	for id := range ids {
		assert.False(t, seen[id], "id %d allocated twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	assert.Len(t, s.List(), n)
}
