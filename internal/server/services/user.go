// Package services contains server-side business logic. This file implements
// UserService: registration (with starter-todo seeding), login, account
// lookup, and the cascading account delete.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/yamoo9/todo-list-api-for-learning/internal/common"
	"github.com/yamoo9/todo-list-api-for-learning/internal/logging"
	"github.com/yamoo9/todo-list-api-for-learning/internal/server/auth"
	"github.com/yamoo9/todo-list-api-for-learning/internal/server/config"
	"github.com/yamoo9/todo-list-api-for-learning/internal/server/models"
	"github.com/yamoo9/todo-list-api-for-learning/internal/server/repositories/repomanager"
)

// seedTodoTexts are the starter todos every new account receives.
var seedTodoTexts = []string{
	"Add your first todo",
	"Explore the todo list",
}

// UserService provides account-related operations:
// - Register: create users and seed their starter todos
// - Login: verify credentials and mint a session token
// - GetByEmail: public account lookup
// - DeleteCascade: remove an account together with everything it owns
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	logger                      logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		logger:                      logger.With("module", "user_service"),
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a new account with a bcrypt-hashed password and then seeds
// the starter todos. A duplicate email surfaces as common.ErrorAlreadyExists.
// Seeding failures are logged and swallowed: registration has already
// succeeded at that point and must not be reported as failed.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{Email: email, PasswordHash: hash}
	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.seedTodos(ctx, u.ID)

	return u, nil
}

// seedTodos provisions the fixed starter todos for a freshly created account.
func (s *UserService) seedTodos(ctx context.Context, userID string) {
	repo := s.repomanager.Todos(s.db)
	for _, text := range seedTodoTexts {
		todo := &models.Todo{UserID: userID, Text: text, Completed: false}
		if _, err := repo.Create(ctx, todo); err != nil {
			s.logger.Error(ctx, "failed to seed starter todo", "user_id", userID, "error", err.Error())
			return
		}
	}
}

// Login verifies the email/password pair and returns a signed session token.
// An unknown email and a wrong password are distinguished for the caller's
// messages but both are 400-equivalent outcomes.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorEmailNotRegistered
		}
		return "", common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", common.ErrorPasswordMismatch
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// GetByEmail resolves an account by its email for the public lookup endpoint.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// DeleteCascade removes the account with the given email and every todo it
// owns, dependents first, so no todo ever outlives its owner. The two deletes
// are intentionally not wrapped in a transaction: a crash in between leaves an
// account without todos, which is the accepted (and documented) gap.
func (s *UserService) DeleteCascade(ctx context.Context, email string) (*models.User, error) {
	userRepo := s.repomanager.Users(s.db)
	user, err := userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	if err := s.repomanager.Todos(s.db).DeleteByUser(ctx, user.ID); err != nil {
		return nil, common.ErrorInternal
	}

	if err := userRepo.Delete(ctx, user.ID); err != nil {
		return nil, common.ErrorInternal
	}

	return user, nil
}
