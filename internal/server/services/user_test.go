package services

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/yamoo9/todo-list-api-for-learning/internal/common"
	"github.com/yamoo9/todo-list-api-for-learning/internal/dbx"
	"github.com/yamoo9/todo-list-api-for-learning/internal/logging"
	"github.com/yamoo9/todo-list-api-for-learning/internal/server/auth"
	"github.com/yamoo9/todo-list-api-for-learning/internal/server/config"
	"github.com/yamoo9/todo-list-api-for-learning/internal/server/models"
	"github.com/yamoo9/todo-list-api-for-learning/internal/server/repositories/repomanager"
	todosrepo "github.com/yamoo9/todo-list-api-for-learning/internal/server/repositories/todos"
	usersrepo "github.com/yamoo9/todo-list-api-for-learning/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newUserService(t *testing.T, rm repomanager.RepositoryManager, logger logging.Logger) *UserService {
	t.Helper()
	if logger == nil {
		logger = discardLogger()
	}
	cfg := &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Hour,
	}
	return NewUserService(newSQLMockDB(t), rm, cfg, logger)
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error

	deleteErr error

	ops *[]string
}

func (f *fakeUsersRepo) record(op string) {
	if f.ops != nil {
		*f.ops = append(*f.ops, op)
	}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.record("users.Create")
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = "u-1"
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.record("users.GetByEmail")
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id string) error {
	f.record("users.Delete")
	return f.deleteErr
}

type fakeTodosRepo struct {
	created   []*models.Todo
	createErr error

	deleteByUserErr error

	ops *[]string
}

func (f *fakeTodosRepo) record(op string) {
	if f.ops != nil {
		*f.ops = append(*f.ops, op)
	}
}

func (f *fakeTodosRepo) ListByUser(ctx context.Context, userID string) ([]*models.Todo, error) {
	return nil, nil
}

func (f *fakeTodosRepo) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	f.record("todos.Create")
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, todo)
	return todo, nil
}

func (f *fakeTodosRepo) Replace(ctx context.Context, userID, id, text string, completed bool) (*models.Todo, error) {
	return nil, nil
}

func (f *fakeTodosRepo) Patch(ctx context.Context, userID, id string, text *string, completed *bool) (*models.Todo, error) {
	return nil, nil
}

func (f *fakeTodosRepo) Delete(ctx context.Context, userID, id string) error { return nil }

func (f *fakeTodosRepo) DeleteByUser(ctx context.Context, userID string) error {
	f.record("todos.DeleteByUser")
	return f.deleteByUserErr
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	t *fakeTodosRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Todos(db dbx.DBTX) todosrepo.Repository       { return m.t }

// --- tests ---

func TestRegister_SeedsStarterTodos(t *testing.T) {
	rm := &fakeRepoManager{u: &fakeUsersRepo{}, t: &fakeTodosRepo{}}
	s := newUserService(t, rm, nil)

	u, err := s.Register(context.Background(), "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if u.ID == "" || u.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.PasswordHash == "pw1" {
		t.Fatal("password must be stored hashed")
	}

	if len(rm.t.created) != len(seedTodoTexts) {
		t.Fatalf("expected %d seeded todos, got %d", len(seedTodoTexts), len(rm.t.created))
	}
	for i, todo := range rm.t.created {
		if todo.UserID != u.ID {
			t.Fatalf("seed todo %d has wrong owner: %q", i, todo.UserID)
		}
		if todo.Text != seedTodoTexts[i] {
			t.Fatalf("seed todo %d has wrong text: %q", i, todo.Text)
		}
		if todo.Completed {
			t.Fatalf("seed todo %d must start uncompleted", i)
		}
	}
}

func TestRegister_SeedFailureDoesNotFailRegistration(t *testing.T) {
	rm := &fakeRepoManager{
		u: &fakeUsersRepo{},
		t: &fakeTodosRepo{createErr: errors.New("db down")},
	}

	var buf bytes.Buffer
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	s := newUserService(t, rm, logger)

	u, err := s.Register(context.Background(), "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("Register must not fail when seeding fails: %v", err)
	}
	if u == nil {
		t.Fatal("expected a created user")
	}
	if !strings.Contains(buf.String(), "failed to seed starter todo") {
		t.Fatalf("expected seed failure to be logged, got:\n%s", buf.String())
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	rm := &fakeRepoManager{
		u: &fakeUsersRepo{createErr: common.ErrorAlreadyExists},
		t: &fakeTodosRepo{},
	}
	s := newUserService(t, rm, nil)

	_, err := s.Register(context.Background(), "a@x.com", "pw1")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
	if len(rm.t.created) != 0 {
		t.Fatal("no todos must be seeded for a failed registration")
	}
}

func TestLogin_Success_TokenResolvesToUser(t *testing.T) {
	hash, err := auth.HashPassword("pw1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	rm := &fakeRepoManager{
		u: &fakeUsersRepo{getOut: &models.User{ID: "u-42", Email: "a@x.com", PasswordHash: hash}},
		t: &fakeTodosRepo{},
	}
	s := newUserService(t, rm, nil)

	token, err := s.Login(context.Background(), "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	userID, err := auth.GetUserIDFromToken(token, []byte("k"))
	if err != nil {
		t.Fatalf("token must verify against the service secret: %v", err)
	}
	if userID != "u-42" {
		t.Fatalf("token resolves to %q, want u-42", userID)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	rm := &fakeRepoManager{
		u: &fakeUsersRepo{getErr: common.ErrorNotFound},
		t: &fakeTodosRepo{},
	}
	s := newUserService(t, rm, nil)

	_, err := s.Login(context.Background(), "ghost@x.com", "pw1")
	if !errors.Is(err, common.ErrorEmailNotRegistered) {
		t.Fatalf("want common.ErrorEmailNotRegistered, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("right")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	rm := &fakeRepoManager{
		u: &fakeUsersRepo{getOut: &models.User{ID: "u-1", Email: "a@x.com", PasswordHash: hash}},
		t: &fakeTodosRepo{},
	}
	s := newUserService(t, rm, nil)

	_, err = s.Login(context.Background(), "a@x.com", "wrong")
	if !errors.Is(err, common.ErrorPasswordMismatch) {
		t.Fatalf("want common.ErrorPasswordMismatch, got %v", err)
	}
}

func TestLogin_RepoFailureIsInternal(t *testing.T) {
	rm := &fakeRepoManager{
		u: &fakeUsersRepo{getErr: errors.New("db down")},
		t: &fakeTodosRepo{},
	}
	s := newUserService(t, rm, nil)

	_, err := s.Login(context.Background(), "a@x.com", "pw1")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want common.ErrorInternal, got %v", err)
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	rm := &fakeRepoManager{
		u: &fakeUsersRepo{getErr: common.ErrorNotFound},
		t: &fakeTodosRepo{},
	}
	s := newUserService(t, rm, nil)

	_, err := s.GetByEmail(context.Background(), "ghost@x.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDeleteCascade_TodosGoBeforeUser(t *testing.T) {
	var ops []string
	rm := &fakeRepoManager{
		u: &fakeUsersRepo{getOut: &models.User{ID: "u-1", Email: "a@x.com"}, ops: &ops},
		t: &fakeTodosRepo{ops: &ops},
	}
	s := newUserService(t, rm, nil)

	u, err := s.DeleteCascade(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("DeleteCascade error: %v", err)
	}
	if u.ID != "u-1" || u.Email != "a@x.com" {
		t.Fatalf("unexpected deleted user: %+v", u)
	}

	want := []string{"users.GetByEmail", "todos.DeleteByUser", "users.Delete"}
	if len(ops) != len(want) {
		t.Fatalf("unexpected op sequence: %v", ops)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("op %d = %q, want %q (full sequence %v)", i, ops[i], want[i], ops)
		}
	}
}

func TestDeleteCascade_UnknownEmail(t *testing.T) {
	var ops []string
	rm := &fakeRepoManager{
		u: &fakeUsersRepo{getErr: common.ErrorNotFound, ops: &ops},
		t: &fakeTodosRepo{ops: &ops},
	}
	s := newUserService(t, rm, nil)

	_, err := s.DeleteCascade(context.Background(), "ghost@x.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
	for _, op := range ops {
		if op == "todos.DeleteByUser" || op == "users.Delete" {
			t.Fatalf("nothing must be deleted for an unknown email, got ops %v", ops)
		}
	}
}

func TestDeleteCascade_TodoDeleteFailureStopsCascade(t *testing.T) {
	var ops []string
	rm := &fakeRepoManager{
		u: &fakeUsersRepo{getOut: &models.User{ID: "u-1", Email: "a@x.com"}, ops: &ops},
		t: &fakeTodosRepo{deleteByUserErr: errors.New("db down"), ops: &ops},
	}
	s := newUserService(t, rm, nil)

	_, err := s.DeleteCascade(context.Background(), "a@x.com")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want common.ErrorInternal, got %v", err)
	}
	for _, op := range ops {
		if op == "users.Delete" {
			t.Fatalf("user must not be deleted when todo cleanup fails, got ops %v", ops)
		}
	}
}
