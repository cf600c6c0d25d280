package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	categoriesdomain "expense-tracker-go/internal/domain/categories"
	"expense-tracker-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type createCategoryRequest struct {
	Name  string  `json:"name"`
	Icon  *string `json:"icon"`
	Color *string `json:"color"`
}

type updateCategoryRequest struct {
	Name  string                 `json:"name"`
	Icon  optionalNullableString `json:"icon"`
	Color optionalNullableString `json:"color"`
}

type optionalNullableString struct {
	Set   bool
	Value *string
}

func (o *optionalNullableString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	o.Value = &value
	return nil
}

type categoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      *string   `json:"icon"`
	Color     *string   `json:"color"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	items, err := h.Categories.List(r.Context(), account.ID)
	if err != nil {
		h.log.InternalError("categories.list: list failed", err, "user_id", account.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]categoryResponse, 0, len(items))
	for _, category := range items {
		response = append(response, toCategoryResponse(category))
	}

	writeData(w, http.StatusOK, response)
}

func (h *Handlers) GetCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := strings.TrimSpace(chi.URLParam(r, "id"))
	if categoryID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	category, err := h.Categories.Get(r.Context(), account.ID, categoryID)
	if err != nil {
		if errors.Is(err, categoriesdomain.ErrCategoryNotFound) {
			h.log.BusinessError("categories.get: category not found", err, "user_id", account.ID, "category_id", categoryID)
			writeError(w, http.StatusNotFound, "category_not_found", "category not found")
			return
		}
		h.log.InternalError("categories.get: get failed", err, "user_id", account.ID, "category_id", categoryID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeData(w, http.StatusOK, toCategoryResponse(*category))
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	created, err := h.Categories.Create(r.Context(), categoriesdomain.CreateInput{
		UserID: account.ID,
		Name:   req.Name,
		Icon:   req.Icon,
		Color:  req.Color,
	})
	if err != nil {
		if errors.Is(err, categoriesdomain.ErrCategoryNameTaken) {
			h.log.BusinessError("categories.create: name taken", err, "user_id", account.ID)
			writeError(w, http.StatusConflict, "category_name_taken", "category name already exists")
			return
		}
		h.log.InternalError("categories.create: create failed", err, "user_id", account.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeData(w, http.StatusCreated, toCategoryResponse(*created))
}

func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req updateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	categoryID := strings.TrimSpace(chi.URLParam(r, "id"))
	if categoryID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	updated, err := h.Categories.Update(r.Context(), categoriesdomain.UpdateInput{
		UserID:     account.ID,
		CategoryID: categoryID,
		Name:       req.Name,
		Icon:       categoriesdomain.OptionalNullableString{Set: req.Icon.Set, Value: req.Icon.Value},
		Color:      categoriesdomain.OptionalNullableString{Set: req.Color.Set, Value: req.Color.Value},
	})
	if err != nil {
		switch {
		case errors.Is(err, categoriesdomain.ErrCategoryNotFound):
			h.log.BusinessError("categories.update: category not found", err, "user_id", account.ID, "category_id", categoryID)
			writeError(w, http.StatusNotFound, "category_not_found", "category not found")
		case errors.Is(err, categoriesdomain.ErrCategoryProtected):
			h.log.BusinessError("categories.update: category protected", err, "user_id", account.ID, "category_id", categoryID)
			writeError(w, http.StatusForbidden, "category_protected", "default categories cannot be modified")
		case errors.Is(err, categoriesdomain.ErrCategoryNameTaken):
			h.log.BusinessError("categories.update: name taken", err, "user_id", account.ID, "category_id", categoryID)
			writeError(w, http.StatusConflict, "category_name_taken", "category name already exists")
		default:
			h.log.InternalError("categories.update: update failed", err, "user_id", account.ID, "category_id", categoryID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeData(w, http.StatusOK, toCategoryResponse(*updated))
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := strings.TrimSpace(chi.URLParam(r, "id"))
	if categoryID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if err := h.Categories.Delete(r.Context(), account.ID, categoryID); err != nil {
		switch {
		case errors.Is(err, categoriesdomain.ErrCategoryNotFound):
			h.log.BusinessError("categories.delete: category not found", err, "user_id", account.ID, "category_id", categoryID)
			writeError(w, http.StatusNotFound, "category_not_found", "category not found")
		case errors.Is(err, categoriesdomain.ErrCategoryProtected):
			h.log.BusinessError("categories.delete: category protected", err, "user_id", account.ID, "category_id", categoryID)
			writeError(w, http.StatusForbidden, "category_protected", "default categories cannot be deleted")
		case errors.Is(err, categoriesdomain.ErrCategoryInUse):
			h.log.BusinessError("categories.delete: category in use", err, "user_id", account.ID, "category_id", categoryID)
			writeError(w, http.StatusConflict, "category_in_use", "category is referenced by expenses")
		default:
			h.log.InternalError("categories.delete: delete failed", err, "user_id", account.ID, "category_id", categoryID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toCategoryResponse(category categoriesdomain.Category) categoryResponse {
	return categoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Icon:      category.Icon,
		Color:     category.Color,
		IsDefault: category.IsDefault,
		CreatedAt: category.CreatedAt,
	}
}
