package httpapi

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/yamoo9/todo-list-api-for-learning/internal/common"
)

type createTodoRequest struct {
	Todo string `json:"todo"`
}

type replaceTodoRequest struct {
	Todo      string `json:"todo"`
	Completed bool   `json:"completed"`
}

// patchTodoRequest carries an arbitrary subset of the mutable todo fields;
// nil means "field not supplied".
type patchTodoRequest struct {
	Todo      *string `json:"todo"`
	Completed *bool   `json:"completed"`
}

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, MsgUnauthorized)
		return
	}

	todos, err := s.todos.List(r.Context(), userID)
	if err != nil {
		s.logger.Error(r.Context(), "listing todos failed", "error", err.Error())
		writeMessage(w, http.StatusInternalServerError, MsgInternalError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"todos":   todos,
		"message": MsgTodosFetched,
	})
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, MsgUnauthorized)
		return
	}

	var req createTodoRequest
	if err := parseJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	todo, err := s.todos.Create(r.Context(), userID, req.Todo)
	if err != nil {
		s.logger.Error(r.Context(), "creating todo failed", "error", err.Error())
		writeMessage(w, http.StatusInternalServerError, MsgInternalError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"todo":    todo,
		"message": MsgTodoCreated,
	})
}

func (s *Server) handleReplaceTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, MsgUnauthorized)
		return
	}

	var req replaceTodoRequest
	if err := parseJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	todo, err := s.todos.Replace(r.Context(), userID, mux.Vars(r)["id"], req.Todo, req.Completed)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeMessage(w, http.StatusNotFound, MsgTodoNotFound)
			return
		}
		s.logger.Error(r.Context(), "replacing todo failed", "error", err.Error())
		writeMessage(w, http.StatusInternalServerError, MsgInternalError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"todo":    todo,
		"message": MsgTodoReplaced,
	})
}

func (s *Server) handlePatchTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, MsgUnauthorized)
		return
	}

	var req patchTodoRequest
	if err := parseJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	todo, err := s.todos.Patch(r.Context(), userID, mux.Vars(r)["id"], req.Todo, req.Completed)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeMessage(w, http.StatusNotFound, MsgTodoNotFound)
			return
		}
		s.logger.Error(r.Context(), "patching todo failed", "error", err.Error())
		writeMessage(w, http.StatusInternalServerError, MsgInternalError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"todo":    todo,
		"message": MsgTodoPatched,
	})
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, MsgUnauthorized)
		return
	}

	deletedID, err := s.todos.Delete(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		s.logger.Error(r.Context(), "deleting todo failed", "error", err.Error())
		writeMessage(w, http.StatusInternalServerError, MsgInternalError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"deletedId": deletedID,
		"message":   MsgTodoDeleted,
	})
}
