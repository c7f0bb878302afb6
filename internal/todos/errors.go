package todos

import (
	"fmt"

	"blog/internal/models"
)

var (
	ErrEmptyText    = fmt.Errorf("%w: todo text cannot be empty", models.ErrValidation)
	ErrTodoNotFound = fmt.Errorf("todo %w", models.ErrNotFound)
)
