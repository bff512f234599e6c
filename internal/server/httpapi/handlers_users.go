package httpapi

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/yamoo9/todo-list-api-for-learning/internal/common"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := parseJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, MsgRegisterInvalid)
		return
	}

	user, err := s.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeMessage(w, http.StatusBadRequest, MsgRegisterConflict)
			return
		}
		s.logger.Error(r.Context(), "registration failed", "error", err.Error())
		writeMessage(w, http.StatusInternalServerError, MsgInternalError)
		return
	}

	s.logger.Info(r.Context(), "registered", "user_id", user.ID)
	writeMessage(w, http.StatusOK, MsgRegisterSuccess)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := parseJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorEmailNotRegistered):
			writeMessage(w, http.StatusBadRequest, MsgLoginUnknownEmail)
		case errors.Is(err, common.ErrorPasswordMismatch):
			writeMessage(w, http.StatusBadRequest, MsgLoginWrongPassword)
		default:
			s.logger.Error(r.Context(), "login failed", "error", err.Error())
			writeMessage(w, http.StatusInternalServerError, MsgInternalError)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"token":   token,
		"message": MsgLoginSuccess,
	})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	user, err := s.users.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeMessage(w, http.StatusNotFound, MsgUserNotFound)
			return
		}
		writeMessage(w, http.StatusInternalServerError, MsgInternalError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":    user,
		"message": MsgUserFound,
	})
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	user, err := s.users.DeleteCascade(r.Context(), email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeMessage(w, http.StatusNotFound, MsgUserNotFound)
			return
		}
		writeMessage(w, http.StatusInternalServerError, MsgInternalError)
		return
	}

	s.logger.Info(r.Context(), "account deleted", "user_id", user.ID)
	writeJSON(w, http.StatusOK, map[string]any{
		"deletedUser": user,
		"message":     MsgUserDeleted,
	})
}
