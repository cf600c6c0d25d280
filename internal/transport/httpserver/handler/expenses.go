package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	categoriesdomain "expense-tracker-go/internal/domain/categories"
	expensesdomain "expense-tracker-go/internal/domain/expenses"
	"expense-tracker-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type createExpenseRequest struct {
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	CategoryID string  `json:"category_id"`
	Date       string  `json:"date"`
	Notes      *string `json:"notes"`
}

type updateExpenseRequest struct {
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	CategoryID string  `json:"category_id"`
	Date       string  `json:"date"`
	Notes      *string `json:"notes"`
}

type expenseResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Amount     float64   `json:"amount"`
	CategoryID string    `json:"category_id"`
	Date       time.Time `json:"date"`
	Notes      *string   `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	query := r.URL.Query()

	from, err := parseDateParam(query.Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid from date")
		return
	}
	to, err := parseDateParam(query.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid to date")
		return
	}
	minAmount, err := parseFloatParam(query.Get("min_amount"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid min_amount")
		return
	}
	maxAmount, err := parseFloatParam(query.Get("max_amount"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid max_amount")
		return
	}
	page, err := parseIntParam(query.Get("page"), 1)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid page")
		return
	}
	limit, err := parseIntParam(query.Get("limit"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid limit")
		return
	}

	filter := expensesdomain.ListFilter{
		From:      from,
		To:        to,
		MinAmount: minAmount,
		MaxAmount: maxAmount,
		Page:      page,
		Limit:     limit,
		SortField: strings.TrimSpace(query.Get("sort_by")),
		SortOrder: strings.TrimSpace(query.Get("sort_order")),
	}
	if categoryID := strings.TrimSpace(query.Get("category_id")); categoryID != "" {
		filter.CategoryID = &categoryID
	}

	result, err := h.Expenses.List(r.Context(), account.ID, filter)
	if err != nil {
		h.log.InternalError("expenses.list: list failed", err, "user_id", account.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]expenseResponse, 0, len(result.Items))
	for _, expense := range result.Items {
		response = append(response, toExpenseResponse(expense))
	}

	writePage(w, http.StatusOK, response, pagination{
		Total:      result.Total,
		Page:       result.PageNumber,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

func (h *Handlers) RecentExpenses(w http.ResponseWriter, r *http.Request) {
	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	limit, err := parseIntParam(r.URL.Query().Get("limit"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid limit")
		return
	}

	items, err := h.Expenses.Recent(r.Context(), account.ID, limit)
	if err != nil {
		h.log.InternalError("expenses.recent: list failed", err, "user_id", account.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]expenseResponse, 0, len(items))
	for _, expense := range items {
		response = append(response, toExpenseResponse(expense))
	}

	writeData(w, http.StatusOK, response)
}

func (h *Handlers) GetExpense(w http.ResponseWriter, r *http.Request) {
	expenseID := strings.TrimSpace(chi.URLParam(r, "id"))
	if expenseID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	expense, err := h.Expenses.Get(r.Context(), account.ID, expenseID)
	if err != nil {
		if errors.Is(err, expensesdomain.ErrExpenseNotFound) {
			h.log.BusinessError("expenses.get: expense not found", err, "user_id", account.ID, "expense_id", expenseID)
			writeError(w, http.StatusNotFound, "expense_not_found", "expense not found")
			return
		}
		h.log.InternalError("expenses.get: get failed", err, "user_id", account.ID, "expense_id", expenseID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeData(w, http.StatusOK, toExpenseResponse(*expense))
}

func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}
	if req.Amount < 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "amount must not be negative")
		return
	}
	if strings.TrimSpace(req.CategoryID) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "category_id is required")
		return
	}

	date, err := parseDateParam(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid date")
		return
	}

	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	created, err := h.Expenses.Create(r.Context(), expensesdomain.CreateInput{
		UserID:     account.ID,
		Name:       req.Name,
		Amount:     req.Amount,
		CategoryID: req.CategoryID,
		Date:       date,
		Notes:      req.Notes,
	})
	if err != nil {
		if errors.Is(err, categoriesdomain.ErrCategoryNotFound) {
			h.log.BusinessError("expenses.create: category not found", err, "user_id", account.ID)
			writeError(w, http.StatusNotFound, "category_not_found", "category not found")
			return
		}
		h.log.InternalError("expenses.create: create failed", err, "user_id", account.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeData(w, http.StatusCreated, toExpenseResponse(*created))
}

func (h *Handlers) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req updateExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	expenseID := strings.TrimSpace(chi.URLParam(r, "id"))
	if expenseID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}
	if req.Amount < 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "amount must not be negative")
		return
	}
	if strings.TrimSpace(req.CategoryID) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "category_id is required")
		return
	}

	date, err := parseDateRequired(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid date")
		return
	}

	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	updated, err := h.Expenses.Update(r.Context(), expensesdomain.UpdateInput{
		ID:         expenseID,
		UserID:     account.ID,
		Name:       req.Name,
		Amount:     req.Amount,
		CategoryID: req.CategoryID,
		Date:       date,
		Notes:      req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, expensesdomain.ErrExpenseNotFound):
			h.log.BusinessError("expenses.update: expense not found", err, "user_id", account.ID, "expense_id", expenseID)
			writeError(w, http.StatusNotFound, "expense_not_found", "expense not found")
		case errors.Is(err, categoriesdomain.ErrCategoryNotFound):
			h.log.BusinessError("expenses.update: category not found", err, "user_id", account.ID, "expense_id", expenseID)
			writeError(w, http.StatusNotFound, "category_not_found", "category not found")
		default:
			h.log.InternalError("expenses.update: update failed", err, "user_id", account.ID, "expense_id", expenseID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeData(w, http.StatusOK, toExpenseResponse(*updated))
}

func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	expenseID := strings.TrimSpace(chi.URLParam(r, "id"))
	if expenseID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	account, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if err := h.Expenses.Delete(r.Context(), account.ID, expenseID); err != nil {
		if errors.Is(err, expensesdomain.ErrExpenseNotFound) {
			h.log.BusinessError("expenses.delete: expense not found", err, "user_id", account.ID, "expense_id", expenseID)
			writeError(w, http.StatusNotFound, "expense_not_found", "expense not found")
			return
		}
		h.log.InternalError("expenses.delete: delete failed", err, "user_id", account.ID, "expense_id", expenseID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toExpenseResponse(expense expensesdomain.Expense) expenseResponse {
	return expenseResponse{
		ID:         expense.ID,
		Name:       expense.Name,
		Amount:     expense.Amount,
		CategoryID: expense.CategoryID,
		Date:       expense.Date,
		Notes:      expense.Notes,
		CreatedAt:  expense.CreatedAt,
		UpdatedAt:  expense.UpdatedAt,
	}
}
