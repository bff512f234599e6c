package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/yamoo9/todo-list-api-for-learning/internal/server/auth"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// authMiddleware guards the todo routes. It accepts exactly one credential
// shape, a bearer token in the Authorization header, and rejects everything
// else with the same fixed 401 message so the reason for rejection never
// leaks. On success the resolved user id is attached to the request context.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeMessage(w, http.StatusUnauthorized, MsgUnauthorized)
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, MsgUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userIDFromContext returns the user id stored by authMiddleware.
func userIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}
