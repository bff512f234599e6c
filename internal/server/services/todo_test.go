package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/yamoo9/todo-list-api-for-learning/internal/common"
	"github.com/yamoo9/todo-list-api-for-learning/internal/dbx"
	"github.com/yamoo9/todo-list-api-for-learning/internal/server/models"
	todosrepo "github.com/yamoo9/todo-list-api-for-learning/internal/server/repositories/todos"
	usersrepo "github.com/yamoo9/todo-list-api-for-learning/internal/server/repositories/users"
)

type stubTodosRepo struct {
	listOut []*models.Todo
	listErr error

	createErr error

	replaceOut *models.Todo
	replaceErr error

	patchOut *models.Todo
	patchErr error

	deleteErr error

	lastCreated *models.Todo
}

func (s *stubTodosRepo) ListByUser(ctx context.Context, userID string) ([]*models.Todo, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.listOut, nil
}

func (s *stubTodosRepo) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	todo.ID = "t-1"
	s.lastCreated = todo
	return todo, nil
}

func (s *stubTodosRepo) Replace(ctx context.Context, userID, id, text string, completed bool) (*models.Todo, error) {
	if s.replaceErr != nil {
		return nil, s.replaceErr
	}
	return s.replaceOut, nil
}

func (s *stubTodosRepo) Patch(ctx context.Context, userID, id string, text *string, completed *bool) (*models.Todo, error) {
	if s.patchErr != nil {
		return nil, s.patchErr
	}
	return s.patchOut, nil
}

func (s *stubTodosRepo) Delete(ctx context.Context, userID, id string) error {
	return s.deleteErr
}

func (s *stubTodosRepo) DeleteByUser(ctx context.Context, userID string) error { return nil }

type stubRepoManager struct {
	todos *stubTodosRepo
}

func (m *stubRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *stubRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return &fakeUsersRepo{} }
func (m *stubRepoManager) Todos(db dbx.DBTX) todosrepo.Repository       { return m.todos }

func newTodoService(t *testing.T, repo *stubTodosRepo) *TodoService {
	t.Helper()
	return NewTodoService(newSQLMockDB(t), &stubRepoManager{todos: repo})
}

func TestTodoList_PassesThrough(t *testing.T) {
	repo := &stubTodosRepo{listOut: []*models.Todo{
		{ID: "t-1", UserID: "u-1", Text: "buy milk"},
	}}
	s := newTodoService(t, repo)

	got, err := s.List(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "t-1" {
		t.Fatalf("unexpected todos: %+v", got)
	}
}

func TestTodoList_RepoFailureIsInternal(t *testing.T) {
	s := newTodoService(t, &stubTodosRepo{listErr: errors.New("db down")})

	_, err := s.List(context.Background(), "u-1")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want common.ErrorInternal, got %v", err)
	}
}

func TestTodoCreate_SetsOwnerAndDefaults(t *testing.T) {
	repo := &stubTodosRepo{}
	s := newTodoService(t, repo)

	got, err := s.Create(context.Background(), "u-1", "buy milk")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.UserID != "u-1" || got.Text != "buy milk" || got.Completed {
		t.Fatalf("unexpected todo: %+v", got)
	}
	if repo.lastCreated == nil || repo.lastCreated.UserID != "u-1" {
		t.Fatalf("repository did not receive the owner id: %+v", repo.lastCreated)
	}
}

func TestTodoReplace_NotFoundPassesThrough(t *testing.T) {
	s := newTodoService(t, &stubTodosRepo{replaceErr: common.ErrorNotFound})

	_, err := s.Replace(context.Background(), "u-1", "t-404", "x", true)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestTodoPatch_NotFoundPassesThrough(t *testing.T) {
	s := newTodoService(t, &stubTodosRepo{patchErr: common.ErrorNotFound})

	_, err := s.Patch(context.Background(), "u-1", "t-404", nil, nil)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestTodoPatch_RepoFailureIsInternal(t *testing.T) {
	s := newTodoService(t, &stubTodosRepo{patchErr: errors.New("db down")})

	_, err := s.Patch(context.Background(), "u-1", "t-1", nil, nil)
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want common.ErrorInternal, got %v", err)
	}
}

func TestTodoDelete_EchoesIDEvenIfAbsent(t *testing.T) {
	s := newTodoService(t, &stubTodosRepo{})

	id, err := s.Delete(context.Background(), "u-1", "t-gone")
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if id != "t-gone" {
		t.Fatalf("deleted id = %q, want t-gone", id)
	}
}
