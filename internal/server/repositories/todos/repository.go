package todos

import (
	"context"

	"github.com/yamoo9/todo-list-api-for-learning/internal/server/models"
)

// Repository persists per-user todos. Every operation that touches an
// existing row takes the owner's user id and matches on it, so a todo is
// only ever visible to its owner.
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]*models.Todo, error)
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	Replace(ctx context.Context, userID, id, text string, completed bool) (*models.Todo, error)
	Patch(ctx context.Context, userID, id string, text *string, completed *bool) (*models.Todo, error)
	Delete(ctx context.Context, userID, id string) error
	DeleteByUser(ctx context.Context, userID string) error
}
