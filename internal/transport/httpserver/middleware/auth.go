package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	userdomain "expense-tracker-go/internal/domain/user"
	"expense-tracker-go/pkg/logger"
)

type contextKey int

const userKey contextKey = iota

// UserResolver turns a bearer token into the user it belongs to. Satisfied by
// *user.Service.
type UserResolver interface {
	Authenticate(ctx context.Context, token string) (*userdomain.User, error)
}

type TokenAuth struct {
	users UserResolver
	log   logger.Logger
}

func NewTokenAuth(users UserResolver, log logger.Logger) *TokenAuth {
	return &TokenAuth{users: users, log: log}
}

func (a *TokenAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		account, err := a.users.Authenticate(r.Context(), token)
		if err != nil {
			if !errors.Is(err, userdomain.ErrInvalidSession) && !errors.Is(err, userdomain.ErrUserNotFound) {
				a.log.InternalError("auth: authenticate failed", err)
			}
			unauthorized(w)
			return
		}

		ctx := WithUser(r.Context(), *account)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func WithUser(ctx context.Context, account userdomain.User) context.Context {
	return context.WithValue(ctx, userKey, account)
}

func UserFromContext(ctx context.Context) (userdomain.User, bool) {
	value := ctx.Value(userKey)
	account, ok := value.(userdomain.User)
	if !ok || account.ID == "" {
		return userdomain.User{}, false
	}
	return account, true
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Error: errorBody{Code: code, Message: message}})
}
