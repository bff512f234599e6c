package repomanager

import (
	"context"
	"database/sql"

	"github.com/yamoo9/todo-list-api-for-learning/internal/dbx"
	"github.com/yamoo9/todo-list-api-for-learning/internal/server/repositories/todos"
	"github.com/yamoo9/todo-list-api-for-learning/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Todos(db dbx.DBTX) todos.Repository
}
