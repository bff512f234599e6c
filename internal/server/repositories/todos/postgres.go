package todos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/yamoo9/todo-list-api-for-learning/internal/common"
	"github.com/yamoo9/todo-list-api-for-learning/internal/dbx"
	"github.com/yamoo9/todo-list-api-for-learning/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Todo, error) {
	query :=
		`SELECT id, user_id, todo, completed FROM todos
		 WHERE user_id = $1
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	todos := make([]*models.Todo, 0)
	for rows.Next() {
		t := &models.Todo{}
		if err := rows.Scan(&t.ID, &t.UserID, &t.Text, &t.Completed); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		todos = append(todos, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todos, nil
}

func (r *PostgresRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {

	query :=
		`INSERT INTO todos (id, user_id, todo, completed)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	todo.ID = uuid.NewString()

	err := r.db.QueryRowContext(ctx, query,
		todo.ID, todo.UserID, todo.Text, todo.Completed).Scan(&todo.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}

// Replace fully overwrites text and completed of the todo matching both id
// and userID. A todo owned by someone else behaves exactly like a missing
// one: common.ErrorNotFound.
func (r *PostgresRepository) Replace(ctx context.Context, userID, id, text string, completed bool) (*models.Todo, error) {
	query :=
		`UPDATE todos SET todo = $3, completed = $4
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, todo, completed
		 `

	todo := &models.Todo{}
	err := r.db.QueryRowContext(ctx, query, id, userID, text, completed).
		Scan(&todo.ID, &todo.UserID, &todo.Text, &todo.Completed)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}

// Patch updates only the supplied fields; nil pointers keep the stored
// values. Ownership scoping and the not-found rule match Replace.
func (r *PostgresRepository) Patch(ctx context.Context, userID, id string, text *string, completed *bool) (*models.Todo, error) {
	query :=
		`UPDATE todos SET todo = COALESCE($3, todo), completed = COALESCE($4, completed)
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, todo, completed
		 `

	var textArg sql.NullString
	if text != nil {
		textArg = sql.NullString{String: *text, Valid: true}
	}
	var completedArg sql.NullBool
	if completed != nil {
		completedArg = sql.NullBool{Bool: *completed, Valid: true}
	}

	todo := &models.Todo{}
	err := r.db.QueryRowContext(ctx, query, id, userID, textArg, completedArg).
		Scan(&todo.ID, &todo.UserID, &todo.Text, &todo.Completed)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}

// Delete removes at most one todo matching both id and userID. Zero matched
// rows is still a success; the caller cannot tell "deleted" from "nothing to
// delete".
func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query :=
		`DELETE FROM todos
		 WHERE id = $1 AND user_id = $2
		 `

	if _, err := r.db.ExecContext(ctx, query, id, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// DeleteByUser bulk-deletes every todo owned by userID. Used by the account
// cascade, which removes dependents before the owner.
func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID string) error {
	query :=
		`DELETE FROM todos
		 WHERE user_id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
