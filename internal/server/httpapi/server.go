// Package httpapi exposes the service over HTTP: public registration and
// login endpoints, user lookup/delete, and token-guarded todo routes.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/yamoo9/todo-list-api-for-learning/internal/logging"
	"github.com/yamoo9/todo-list-api-for-learning/internal/server/models"
)

// UserService is the slice of the user service the HTTP layer needs.
type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	DeleteCascade(ctx context.Context, email string) (*models.User, error)
}

// TodoService is the slice of the todo service the HTTP layer needs.
type TodoService interface {
	List(ctx context.Context, userID string) ([]*models.Todo, error)
	Create(ctx context.Context, userID, text string) (*models.Todo, error)
	Replace(ctx context.Context, userID, id, text string, completed bool) (*models.Todo, error)
	Patch(ctx context.Context, userID, id string, text *string, completed *bool) (*models.Todo, error)
	Delete(ctx context.Context, userID, id string) (string, error)
}

type Server struct {
	address   string
	users     UserService
	todos     TodoService
	logger    logging.Logger
	jwtSecret []byte
}

func NewServer(addr string, l logging.Logger, us UserService, ts TodoService, secretKey string) *Server {
	return &Server{
		address:   addr,
		logger:    l.With("module", "http_server"),
		users:     us,
		todos:     ts,
		jwtSecret: []byte(secretKey),
	}
}

// Router builds the full route table. Todo routes sit on a subrouter behind
// the auth middleware; everything else is public.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/users/{email}", s.handleGetUser).Methods(http.MethodGet)
	r.HandleFunc("/users/{email}", s.handleDeleteUser).Methods(http.MethodDelete)

	private := r.NewRoute().Subrouter()
	private.Use(s.authMiddleware)
	private.HandleFunc("/todos", s.handleListTodos).Methods(http.MethodGet)
	private.HandleFunc("/todos", s.handleCreateTodo).Methods(http.MethodPost)
	private.HandleFunc("/todos/{id}", s.handleReplaceTodo).Methods(http.MethodPut)
	private.HandleFunc("/todos/{id}", s.handlePatchTodo).Methods(http.MethodPatch)
	private.HandleFunc("/todos/{id}", s.handleDeleteTodo).Methods(http.MethodDelete)

	c := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	return c.Handler(r)
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
