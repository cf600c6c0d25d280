package handler

import (
	"errors"
	"net/http"
	"strings"

	userdomain "expense-tracker-go/internal/domain/user"
	"expense-tracker-go/internal/transport/httpserver/middleware"
)

type updateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if strings.TrimSpace(req.Name) == "" && strings.TrimSpace(req.Email) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "nothing to update")
		return
	}

	updated, err := h.Users.UpdateProfile(r.Context(), userdomain.UpdateProfileInput{
		UserID: account.ID,
		Name:   req.Name,
		Email:  req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, userdomain.ErrUserNotFound):
			h.log.BusinessError("users.update: user not found", err, "user_id", account.ID)
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		case errors.Is(err, userdomain.ErrEmailTaken):
			h.log.BusinessError("users.update: email taken", err, "user_id", account.ID)
			writeError(w, http.StatusConflict, "email_taken", "email already registered")
		default:
			h.log.InternalError("users.update: update profile failed", err, "user_id", account.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeData(w, http.StatusOK, toUserResponse(updated))
}

func (h *Handlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if len(req.NewPassword) < 8 {
		writeError(w, http.StatusBadRequest, "invalid_request", "password must be at least 8 characters")
		return
	}

	err := h.Users.ChangePassword(r.Context(), account.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, userdomain.ErrInvalidCredentials):
			h.log.BusinessError("users.password: wrong current password", err, "user_id", account.ID)
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "current password is incorrect")
		case errors.Is(err, userdomain.ErrUserNotFound):
			h.log.BusinessError("users.password: user not found", err, "user_id", account.ID)
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		default:
			h.log.InternalError("users.password: change password failed", err, "user_id", account.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
