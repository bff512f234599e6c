package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/yamoo9/todo-list-api-for-learning/internal/common"
	"github.com/yamoo9/todo-list-api-for-learning/internal/server/models"
	"github.com/yamoo9/todo-list-api-for-learning/internal/server/repositories/repomanager"
)

// TodoService exposes the owner-scoped todo operations. The userID argument
// is always the identity resolved from the caller's session token; the
// repository filters every statement by it, so a todo belonging to another
// account is indistinguishable from a missing one.
type TodoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTodoService constructs a TodoService over the given repositories.
func NewTodoService(db *sql.DB, m repomanager.RepositoryManager) *TodoService {
	return &TodoService{db: db, repomanager: m}
}

// List returns all todos owned by userID. Order is not guaranteed.
func (s *TodoService) List(ctx context.Context, userID string) ([]*models.Todo, error) {
	todos, err := s.repomanager.Todos(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return todos, nil
}

// Create adds a new todo for userID with completed=false.
func (s *TodoService) Create(ctx context.Context, userID, text string) (*models.Todo, error) {
	todo := &models.Todo{UserID: userID, Text: text, Completed: false}
	created, err := s.repomanager.Todos(s.db).Create(ctx, todo)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return created, nil
}

// Replace fully overwrites the todo's text and completed flag.
func (s *TodoService) Replace(ctx context.Context, userID, id, text string, completed bool) (*models.Todo, error) {
	todo, err := s.repomanager.Todos(s.db).Replace(ctx, userID, id, text, completed)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return todo, nil
}

// Patch applies only the supplied fields; nil pointers leave the stored
// values untouched.
func (s *TodoService) Patch(ctx context.Context, userID, id string, text *string, completed *bool) (*models.Todo, error) {
	todo, err := s.repomanager.Todos(s.db).Patch(ctx, userID, id, text, completed)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return todo, nil
}

// Delete removes the todo if it exists and belongs to userID. Deleting an
// already-gone todo succeeds; the deleted id is echoed back either way.
func (s *TodoService) Delete(ctx context.Context, userID, id string) (string, error) {
	if err := s.repomanager.Todos(s.db).Delete(ctx, userID, id); err != nil {
		return "", common.ErrorInternal
	}
	return id, nil
}
